// Package logging builds the application's slog logger and masks webhook
// credentials before records reach the output.
package logging

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
)

const mask = "***"

// webhookToken matches the secret segment of a Discord webhook URL.
var webhookToken = regexp.MustCompile(`(/api/webhooks/\d+/)[A-Za-z0-9_.-]+`)

// New returns a logger writing to w in the given format ("json" or "text")
// at level. secrets is consulted on every record; its values are replaced
// with a mask wherever they appear. level must already be validated.
func New(w io.Writer, level, format string, secrets func() []string) *slog.Logger {
	var lvl slog.Level
	_ = lvl.UnmarshalText([]byte(level))

	opts := &slog.HandlerOptions{Level: lvl}
	var h slog.Handler
	if format == "text" {
		h = slog.NewTextHandler(w, opts)
	} else {
		h = slog.NewJSONHandler(w, opts)
	}
	return slog.New(NewMaskingHandler(h, secrets))
}

// MaskingHandler wraps a slog.Handler and masks webhook tokens and the
// configured secrets in messages and attribute values.
type MaskingHandler struct {
	handler slog.Handler
	secrets func() []string
}

// NewMaskingHandler wraps handler. secrets may be nil.
func NewMaskingHandler(handler slog.Handler, secrets func() []string) *MaskingHandler {
	return &MaskingHandler{handler: handler, secrets: secrets}
}

func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *MaskingHandler) Handle(ctx context.Context, record slog.Record) error {
	m := h.masker()

	// A fresh record; Clone would keep the unmasked attrs.
	r := slog.NewRecord(record.Time, record.Level, m.mask(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(m.attr(a))
		return true
	})
	return h.handler.Handle(ctx, r)
}

func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	m := h.masker()
	masked := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		masked[i] = m.attr(a)
	}
	return &MaskingHandler{handler: h.handler.WithAttrs(masked), secrets: h.secrets}
}

func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{handler: h.handler.WithGroup(name), secrets: h.secrets}
}

func (h *MaskingHandler) masker() masker {
	var m masker
	if h.secrets != nil {
		for _, s := range h.secrets() {
			if s != "" {
				m.secrets = append(m.secrets, s)
			}
		}
	}
	return m
}

type masker struct {
	secrets []string
}

func (m masker) mask(s string) string {
	s = webhookToken.ReplaceAllString(s, "${1}"+mask)
	for _, secret := range m.secrets {
		s = strings.ReplaceAll(s, secret, mask)
	}
	return s
}

func (m masker) attr(a slog.Attr) slog.Attr {
	return slog.Attr{Key: a.Key, Value: m.value(a.Value)}
}

func (m masker) value(v slog.Value) slog.Value {
	switch v.Kind() {
	case slog.KindString:
		return slog.StringValue(m.mask(v.String()))
	case slog.KindAny:
		// Errors from the HTTP client quote the full webhook URL.
		if err, ok := v.Any().(error); ok {
			return slog.StringValue(m.mask(err.Error()))
		}
		return v
	case slog.KindLogValuer:
		return m.value(v.Resolve())
	case slog.KindGroup:
		group := v.Group()
		masked := make([]slog.Attr, len(group))
		for i, a := range group {
			masked[i] = m.attr(a)
		}
		return slog.GroupValue(masked...)
	default:
		return v
	}
}
