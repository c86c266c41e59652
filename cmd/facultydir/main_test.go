package main

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

func TestSetupLogger(t *testing.T) {
	originalLogger := slog.Default()
	defer slog.SetDefault(originalLogger)

	newContext := func(level string) *cli.Context {
		app := &cli.App{
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "log-level", Value: level},
			},
		}
		var captured *cli.Context
		app.Action = func(c *cli.Context) error {
			captured = c
			return nil
		}
		require.NoError(t, app.Run([]string{"facultydir"}))
		return captured
	}

	t.Run("valid levels accepted", func(t *testing.T) {
		for _, level := range []string{"debug", "info", "warn", "error", "DEBUG", "Info"} {
			assert.NoError(t, setupLogger(newContext(level)), level)
		}
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		err := setupLogger(newContext("verbose"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "verbose")
	})

	t.Run("configures default logger", func(t *testing.T) {
		require.NoError(t, setupLogger(newContext("error")))
		ctx := context.Background()
		assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
		assert.True(t, slog.Default().Enabled(ctx, slog.LevelError))
	})
}

func TestSearchCommandRequiresQuery(t *testing.T) {
	app := &cli.App{
		Commands: []*cli.Command{
			{
				Name:   "search",
				Action: searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "db", Required: true},
					&cli.IntFlag{Name: "limit", Value: 20},
				},
			},
		},
	}

	err := app.Run([]string{"facultydir", "search", "--db", os.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
