package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCommands_SQLite(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "cli.db"))

	run := func(args ...string) string {
		t.Helper()
		var out bytes.Buffer
		root := newRootCmd()
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		require.NoError(t, root.Execute(), out.String())
		return out.String()
	}

	run("migrate", "up")
	assert.Contains(t, run("migrate", "status"), "sqlite schema version: 1")
	run("migrate", "down")
	assert.Contains(t, run("migrate", "status"), "sqlite schema version: 0")
}

func TestRootCommand_Subcommands(t *testing.T) {
	root := newRootCmd()

	for _, name := range []string{"serve", "migrate"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
