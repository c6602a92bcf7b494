package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fsr-protokoll/editor/internal/codec"
	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
)

// Export is an encoded document ready for download.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Sender is the publish capability used by Editor.Send.
type Sender interface {
	Send(ctx context.Context, content []byte, dateLabel, password string, lang i18n.Language) (PublishResult, error)
}

// Editor runs the user-facing flows around a Session: confirmation gates,
// import and paste, export, publishing and the language preference.
type Editor struct {
	session   *Session
	langs     *Languages
	publisher Sender
	logger    *slog.Logger
	now       func() time.Time
	newID     func() string
}

// NewEditor wires an Editor around an already constructed Session. It
// shares the session's language preference.
func NewEditor(session *Session, publisher Sender, logger *slog.Logger) *Editor {
	return &Editor{
		session:   session,
		langs:     session.langs,
		publisher: publisher,
		logger:    logger,
		now:       session.now,
		newID:     session.newID,
	}
}

// Session returns the underlying session.
func (e *Editor) Session() *Session { return e.session }

// Language returns the current UI language.
func (e *Editor) Language(ctx context.Context) i18n.Language {
	return e.langs.Current(ctx)
}

// SetLanguage stores the UI language and returns it normalized.
func (e *Editor) SetLanguage(ctx context.Context, raw string) i18n.Language {
	return e.langs.Set(ctx, raw)
}

// Reset asks for confirmation, then clears the session.
func (e *Editor) Reset(ctx context.Context, dlg Dialog) error {
	lang := e.Language(ctx)
	ok := dlg.Confirm(ctx, Question{
		Title:       i18n.T(lang, i18n.ResetTitle),
		Message:     i18n.T(lang, i18n.ResetMessage),
		Destructive: true,
	})
	if !ok {
		return fmt.Errorf("service.Editor.Reset: %w", domain.ErrCancelled)
	}
	e.session.Reset()
	return nil
}

// Import replaces the session with the document read from r. When topics
// exist the user is asked first. A document that cannot be decoded leaves
// the session untouched and raises an alert.
func (e *Editor) Import(ctx context.Context, dlg Dialog, r io.Reader) error {
	lang := e.Language(ctx)
	if !e.confirmOverwrite(ctx, dlg, lang, i18n.ImportConfirmTitle, i18n.ImportConfirmMessage) {
		return fmt.Errorf("service.Editor.Import: %w", domain.ErrCancelled)
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("service.Editor.Import: read: %w", err)
	}
	if err := e.apply(ctx, dlg, lang, string(raw)); err != nil {
		return fmt.Errorf("service.Editor.Import: %w", err)
	}
	return nil
}

// Paste is Import with the clipboard as the source.
func (e *Editor) Paste(ctx context.Context, dlg Dialog, clip Clipboard) error {
	lang := e.Language(ctx)
	if !e.confirmOverwrite(ctx, dlg, lang, i18n.PasteConfirmTitle, i18n.PasteConfirmMessage) {
		return fmt.Errorf("service.Editor.Paste: %w", domain.ErrCancelled)
	}

	text, err := clip.ReadText(ctx)
	if err != nil {
		e.logger.Warn("editor: clipboard read failed", "error", err)
		dlg.Alert(ctx, Notice{
			Title:       i18n.T(lang, i18n.ErrorTitle),
			Message:     i18n.T(lang, i18n.ClipboardDenied),
			Destructive: true,
		})
		return fmt.Errorf("service.Editor.Paste: %w: %v", domain.ErrClipboardDenied, err)
	}
	if text == "" {
		dlg.Alert(ctx, Notice{Message: i18n.T(lang, i18n.ClipboardEmpty)})
		return fmt.Errorf("service.Editor.Paste: %w", domain.ErrClipboardEmpty)
	}

	if err := e.apply(ctx, dlg, lang, text); err != nil {
		return fmt.Errorf("service.Editor.Paste: %w", err)
	}
	return nil
}

// Export encodes the session under its localized file name.
func (e *Editor) Export(ctx context.Context) (Export, error) {
	snap := e.session.Snapshot()
	content, err := codec.Encode(snap)
	if err != nil {
		return Export{}, fmt.Errorf("service.Editor.Export: %w", err)
	}
	lang := e.Language(ctx)
	return Export{
		Filename:    codec.Filename(i18n.T(lang, i18n.ExportFilenamePrefix), snap.Meta.Date, i18n.T(lang, i18n.ExportFilenameFallback)),
		ContentType: codec.MediaType,
		Content:     content,
	}, nil
}

// Send asks for confirmation and the shared password, publishes the encoded
// session and reports the outcome through dlg. Declining either question
// returns domain.ErrCancelled before anything is sent.
func (e *Editor) Send(ctx context.Context, dlg Dialog) (PublishResult, error) {
	lang := e.Language(ctx)
	ok := dlg.Confirm(ctx, Question{
		Title:   i18n.T(lang, i18n.DiscordConfirmTitle),
		Message: i18n.T(lang, i18n.DiscordConfirmMessage),
	})
	if !ok {
		return PublishResult{}, fmt.Errorf("service.Editor.Send: %w", domain.ErrCancelled)
	}

	password, ok := dlg.Prompt(ctx, PromptRequest{
		Title:   i18n.T(lang, i18n.DiscordPasswordTitle),
		Message: i18n.T(lang, i18n.DiscordPasswordMessage),
		Hidden:  true,
	})
	if !ok {
		return PublishResult{}, fmt.Errorf("service.Editor.Send: %w", domain.ErrCancelled)
	}

	snap := e.session.Snapshot()
	content, err := codec.Encode(snap)
	if err != nil {
		return PublishResult{}, fmt.Errorf("service.Editor.Send: %w", err)
	}
	dateLabel := snap.Meta.Date
	if dateLabel == "" {
		dateLabel = i18n.T(lang, i18n.ExportFilenameFallback)
	}

	result, err := e.publisher.Send(ctx, content, dateLabel, password, lang)
	title := i18n.SuccessTitle
	if !result.Success {
		title = i18n.ErrorTitle
	}
	dlg.Alert(ctx, Notice{Title: i18n.T(lang, title), Message: result.Message, Destructive: !result.Success})
	if err != nil {
		return result, fmt.Errorf("service.Editor.Send: %w", err)
	}
	return result, nil
}

// confirmOverwrite asks before replacing a session that has topics.
func (e *Editor) confirmOverwrite(ctx context.Context, dlg Dialog, lang i18n.Language, title, message i18n.Key) bool {
	if len(e.session.Snapshot().Topics) == 0 {
		return true
	}
	return dlg.Confirm(ctx, Question{
		Title:       i18n.T(lang, title),
		Message:     i18n.T(lang, message),
		Destructive: true,
	})
}

// apply decodes text and swaps it in. On a format error the session is kept
// and the user is told.
func (e *Editor) apply(ctx context.Context, dlg Dialog, lang i18n.Language, text string) error {
	next, err := codec.Decode(text, e.now(), e.newID)
	if err != nil {
		if errors.Is(err, domain.ErrFormat) {
			e.logger.Warn("editor: document rejected", "error", err)
			dlg.Alert(ctx, Notice{
				Title:       i18n.T(lang, i18n.ErrorTitle),
				Message:     i18n.T(lang, i18n.YAMLReadError),
				Destructive: true,
			})
		}
		return err
	}
	e.session.Replace(next)
	return nil
}
