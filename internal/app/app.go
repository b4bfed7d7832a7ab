package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/topasparse/internal/ctxlog"
	"github.com/vk/topasparse/internal/settings"
)

// App encapsulates the tool's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	settings *settings.Settings
}

// NewApp is the constructor for the main application. It returns a
// fully initialized App instance with its own isolated logger and the
// resolved settings. Logs go to logW; CSV summaries go to outW.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	resolved := settings.Default()
	if cfg.SettingsPath != "" {
		var err error
		resolved, err = settings.Load(ctx, cfg.SettingsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load settings: %w", err)
		}
	}
	logger.Debug("Settings resolved.")

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		settings: resolved,
	}, nil
}

// Settings returns the resolved settings. This is primarily for testing.
func (a *App) Settings() *settings.Settings {
	return a.settings
}
