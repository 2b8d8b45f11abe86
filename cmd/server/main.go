// Command server runs the booking directory: the HTTP site and the schema
// migrations it depends on.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iliyamo/booking-directory/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "booking-directory",
		Short:        "Venue, artist and show booking directory",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd(), newMigrateCmd())
	return root
}

// newLogger returns the JSON logger shared by every component.  APP_ENV=dev
// also enables debug output.
func newLogger(cfg config.Config) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Env == "dev" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
