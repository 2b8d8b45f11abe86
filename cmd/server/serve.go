package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/database"
	"github.com/iliyamo/booking-directory/internal/handler"
	"github.com/iliyamo/booking-directory/internal/middleware"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/router"
	"github.com/iliyamo/booking-directory/internal/service"
	"github.com/iliyamo/booking-directory/internal/web"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, config.Load(), migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", true, "apply pending migrations before serving")
	return cmd
}

func serve(ctx context.Context, cfg config.Config, migrate bool) error {
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	if migrate {
		if err := database.Migrate(db, cfg.DBDriver); err != nil {
			return err
		}
	}

	var events queue.Publisher = queue.NopPublisher{}
	if cfg.EventsEnabled {
		events = queue.NewAMQPPublisher(cfg.AMQPURL, logger)
	}
	svc := service.New(db, service.WithPublisher(events), service.WithLogger(logger))

	rl := config.LoadRateLimitConfig()
	var limiterStore redis.Scripter
	if rl.Enabled {
		rdb, err := config.NewRedisClient(ctx, config.LoadRedisConfig())
		if err != nil {
			logger.Warn("redis unavailable, rate limiting disabled", "err", err)
		} else {
			defer rdb.Close()
			limiterStore = rdb
		}
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		return err
	}
	flasher := middleware.NewFlasher(middleware.NewCookieStore(cfg.SessionSecret, cfg.Env == "prod"), logger)
	e := router.New(router.Options{
		Handler:   handler.New(svc, db, flasher, logger),
		Flasher:   flasher,
		Renderer:  renderer,
		RateLimit: rl,
		Redis:     limiterStore,
		Logger:    logger,
	})

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info(fmt.Sprintf("listening on %s (env=%s)", addr, cfg.Env))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down")
		return e.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
