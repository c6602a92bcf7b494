package service

import (
	"bytes"
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/fsr-protokoll/editor/internal/codec"
	"github.com/fsr-protokoll/editor/internal/domain"
	"github.com/fsr-protokoll/editor/internal/i18n"
)

// DefaultPublishTimeout bounds one webhook delivery when settings leave
// Timeout unset.
const DefaultPublishTimeout = 15 * time.Second

// PublishSettings is read fresh for every Send.
type PublishSettings struct {
	WebhookURL string
	// Password, when set, must be supplied by the caller before anything is
	// sent. The webhook itself remains the authority on access.
	Password string
	// FilenamePrefix overrides the localized file name prefix.
	FilenamePrefix string
	Timeout        time.Duration
}

// PublishResult is the outcome shown to the user. Message is localized for
// both success and failure.
type PublishResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Publisher uploads an encoded document to a chat webhook as a file.
type Publisher struct {
	settings func() PublishSettings
	client   *http.Client
	logger   *slog.Logger
}

// NewPublisher constructs a Publisher. settings is called on every Send so
// configuration changes apply without a restart. A nil client uses
// http.DefaultClient.
func NewPublisher(settings func() PublishSettings, client *http.Client, logger *slog.Logger) *Publisher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Publisher{settings: settings, client: client, logger: logger}
}

// Send delivers content as "<prefix>_<dateLabel>.yaml".
//
// It returns domain.ErrNotConfigured without a webhook URL,
// domain.ErrMissingCredential or domain.ErrInvalidCredential when a password
// is configured and not matched, a *domain.DeliveryError for a non-2xx reply
// and domain.ErrNetwork when the request could not complete. The result
// carries a localized message in every case.
func (p *Publisher) Send(ctx context.Context, content []byte, dateLabel, password string, lang i18n.Language) (PublishResult, error) {
	cfg := p.settings()

	if cfg.WebhookURL == "" {
		return failure(lang, i18n.DiscordWebhookMissing), fmt.Errorf("service.Publisher.Send: %w", domain.ErrNotConfigured)
	}
	if cfg.Password != "" {
		if password == "" {
			return failure(lang, i18n.DiscordPasswordRequired), fmt.Errorf("service.Publisher.Send: %w", domain.ErrMissingCredential)
		}
		if subtle.ConstantTimeCompare([]byte(password), []byte(cfg.Password)) != 1 {
			return failure(lang, i18n.DiscordPasswordWrong), fmt.Errorf("service.Publisher.Send: %w", domain.ErrInvalidCredential)
		}
	}

	prefix := cfg.FilenamePrefix
	if prefix == "" {
		prefix = i18n.T(lang, i18n.ExportFilenamePrefix)
	}
	filename := codec.Filename(prefix, dateLabel, i18n.T(lang, i18n.ExportFilenameFallback))

	body, contentType, err := multipartFile(filename, content)
	if err != nil {
		return failure(lang, i18n.DiscordNetworkError), fmt.Errorf("service.Publisher.Send: build body: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultPublishTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.WebhookURL, body)
	if err != nil {
		return failure(lang, i18n.DiscordNetworkError), fmt.Errorf("service.Publisher.Send: %w: %v", domain.ErrNetwork, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("publish: request failed", "error", err)
		return failure(lang, i18n.DiscordNetworkError), fmt.Errorf("service.Publisher.Send: %w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Error("publish: webhook rejected upload",
			"status", resp.StatusCode,
			"body", string(detail),
		)
		derr := &domain.DeliveryError{StatusCode: resp.StatusCode, StatusText: http.StatusText(resp.StatusCode)}
		msg := fmt.Sprintf("%s: %d %s", i18n.T(lang, i18n.DiscordSendFailed), derr.StatusCode, derr.StatusText)
		return PublishResult{Success: false, Message: msg}, fmt.Errorf("service.Publisher.Send: %w", derr)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	p.logger.Info("publish: delivered", "filename", filename, "bytes", len(content))
	return PublishResult{Success: true, Message: i18n.T(lang, i18n.DiscordSent)}, nil
}

// multipartFile builds a body with a single "file" part.
func multipartFile(filename string, content []byte) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, filename))
	h.Set("Content-Type", codec.MediaType)
	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(content); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func failure(lang i18n.Language, key i18n.Key) PublishResult {
	return PublishResult{Success: false, Message: i18n.T(lang, key)}
}

// IsPublishError reports whether err is one of the publish failures that
// should be shown to the user rather than treated as a server fault.
func IsPublishError(err error) bool {
	var derr *domain.DeliveryError
	return errors.Is(err, domain.ErrNotConfigured) ||
		errors.Is(err, domain.ErrMissingCredential) ||
		errors.Is(err, domain.ErrInvalidCredential) ||
		errors.Is(err, domain.ErrNetwork) ||
		errors.As(err, &derr)
}
