// Package app wires configuration, storage and services into a ready
// Editor. The HTTP server and the CLI share it so both run the same stack.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/fsr-protokoll/editor/internal/config"
	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/logging"
	"github.com/fsr-protokoll/editor/internal/repo"
	"github.com/fsr-protokoll/editor/internal/service"
)

// App is a loaded editor with its backing store.
type App struct {
	Editor *service.Editor
	Roster domain.Roster
	close  func() error
}

// NewLogger builds the configured logger on w. Publish secrets are read on
// every record so a rotated webhook stays masked.
func NewLogger(cfg config.Config, w io.Writer) *slog.Logger {
	return logging.New(w, cfg.LogLevel, cfg.LogFormat, func() []string {
		p, _ := cfg.PublishSettings()
		return []string{p.Password}
	})
}

// New opens the configured store, loads the session and returns the App.
// Callers must Close it.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (*App, error) {
	slots, closeStore, err := repo.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("app.New: %w", err)
	}
	logger.Debug("storage ready", "driver", cfg.Storage.Driver)

	langs := service.NewLanguages(repo.NewLanguageRepo(slots), cfg.DefaultLanguage, logger)
	session := service.NewSession(repo.NewSessionRepo(slots), langs, logger)
	session.Load(ctx)

	publisher := service.NewPublisher(publishSettings(cfg, logger), &http.Client{}, logger)

	return &App{
		Editor: service.NewEditor(session, publisher, logger),
		Roster: domain.Roster{FSR: cfg.FSRMembers, Associated: cfg.AssociatedMembers},
		close:  closeStore,
	}, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.close()
}

// publishSettings re-reads the webhook settings from the environment for
// every publish.
func publishSettings(cfg config.Config, logger *slog.Logger) func() service.PublishSettings {
	return func() service.PublishSettings {
		p, err := cfg.PublishSettings()
		if err != nil {
			logger.Warn("publish settings", "error", err)
		}
		return service.PublishSettings{
			WebhookURL:     p.WebhookURL,
			Password:       p.Password,
			FilenamePrefix: p.FilenamePrefix,
			Timeout:        p.Timeout,
		}
	}
}
