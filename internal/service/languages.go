// Package service contains the business logic for the Protokoll editor.
// Services own the editing session, run the user-facing flows (import,
// export, publish, reset) and orchestrate repo calls.
// No storage code lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
	"github.com/fsr-protokoll/editor/internal/repo"
)

// Languages resolves and stores the UI language.
type Languages struct {
	repo     repo.LanguageRepo
	fallback i18n.Language
	logger   *slog.Logger
}

// NewLanguages constructs a Languages service. fallback is used until a
// language has been stored and is itself normalized.
func NewLanguages(r repo.LanguageRepo, fallback string, logger *slog.Logger) *Languages {
	return &Languages{repo: r, fallback: i18n.Normalize(fallback), logger: logger}
}

// Current returns the stored language, or the fallback when none is stored
// or the store cannot be read.
func (l *Languages) Current(ctx context.Context) i18n.Language {
	lang, err := l.repo.Get(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			l.logger.Warn("language: read failed", "error", err)
		}
		return l.fallback
	}
	return lang
}

// Set normalizes raw, stores it and returns the stored language.
// A storage failure is logged; the normalized language is still returned.
func (l *Languages) Set(ctx context.Context, raw string) i18n.Language {
	lang := i18n.Normalize(raw)
	if err := l.repo.Set(ctx, lang); err != nil {
		l.logger.Error("language: write failed", "error", err)
	}
	return lang
}
