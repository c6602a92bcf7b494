package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by slot stores when a key holds no value.
// Callers treat it as "use the default"; it never reaches a handler.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when HTTP or CLI input fails a business rule
// (unknown attendee kind, malformed date, point index that is not a number).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrFormat is returned by the codec when a document is not usable YAML.
// Handlers should map this to HTTP 422.
var ErrFormat = errors.New("invalid document format")

// ErrCancelled is returned when the user declines a confirmation or aborts a
// prompt. Nothing has been changed when it is returned.
// Handlers should map this to HTTP 409.
var ErrCancelled = errors.New("cancelled")

// ErrClipboardEmpty and ErrClipboardDenied are returned by the paste flow.
var (
	ErrClipboardEmpty  = errors.New("clipboard is empty")
	ErrClipboardDenied = errors.New("clipboard access denied")
)

// Publish errors. Handlers map them to 503, 401, 403, 502 and 504.
var (
	ErrNotConfigured     = errors.New("publishing is not configured")
	ErrMissingCredential = errors.New("password required")
	ErrInvalidCredential = errors.New("wrong password")
	ErrDelivery          = errors.New("delivery rejected")
	ErrNetwork           = errors.New("network error")
)

// DeliveryError carries the status of a rejected webhook delivery.
// errors.Is(err, ErrDelivery) holds for every *DeliveryError.
type DeliveryError struct {
	StatusCode int
	StatusText string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery rejected: %d %s", e.StatusCode, e.StatusText)
}

func (e *DeliveryError) Unwrap() error { return ErrDelivery }
