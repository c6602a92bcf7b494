package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fsr-protokoll/editor/internal/domain"
)

// errorResponse is the body of every non-2xx reply.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Question is set on confirmation_required: the UI shows it and retries
	// with the answer.
	Question *questionBody `json:"question,omitempty"`
	// Notices are the alerts the flow raised before failing.
	Notices []noticeBody `json:"notices,omitempty"`
}

// status maps a service error to an HTTP status and error code.
func status(err error) (int, string) {
	var derr *domain.DeliveryError
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge, "payload_too_large"
	case errors.Is(err, domain.ErrFormat):
		return http.StatusUnprocessableEntity, "invalid_document"
	case errors.Is(err, domain.ErrValidation):
		return http.StatusUnprocessableEntity, "validation_error"
	case errors.Is(err, domain.ErrCancelled):
		return http.StatusConflict, "confirmation_required"
	case errors.Is(err, domain.ErrNotConfigured):
		return http.StatusServiceUnavailable, "not_configured"
	case errors.Is(err, domain.ErrMissingCredential):
		return http.StatusUnauthorized, "missing_credential"
	case errors.Is(err, domain.ErrInvalidCredential):
		return http.StatusForbidden, "invalid_credential"
	case errors.As(err, &derr):
		return http.StatusBadGateway, "delivery_failed"
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusGatewayTimeout, "network_error"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError replies with the mapped status. dlg, when not nil, supplies the
// localized message, the pending question and the collected notices.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, dlg *requestDialog) {
	code, name := status(err)
	detail := errorDetail{Code: name, Message: validationMessage(err)}

	switch {
	case code == http.StatusInternalServerError:
		s.logger.ErrorContext(r.Context(), "handler: request failed", "path", r.URL.Path, "error", err)
		detail.Message = http.StatusText(code)
	case code == http.StatusRequestEntityTooLarge:
		detail.Message = http.StatusText(code)
	}

	if dlg != nil {
		detail.Notices = dlg.noticeBodies()
		if q := dlg.pending(); q != nil {
			detail.Question = q
			detail.Message = q.Message
		} else if n := len(detail.Notices); n > 0 {
			detail.Message = detail.Notices[n-1].Message
		}
	}
	writeJSON(w, code, errorResponse{Error: detail})
}

// validationMessage extracts the human-readable part from a wrapped sentinel
// error, e.g. "handler.patchMeta: validation error: date must be YYYY-MM-DD"
// becomes "date must be YYYY-MM-DD".
func validationMessage(err error) string {
	msg := err.Error()
	prefix := domain.ErrValidation.Error() + ": "
	if _, after, ok := strings.Cut(msg, prefix); ok {
		return after
	}
	return msg
}

// invalid wraps domain.ErrValidation with a client-facing message.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, fmt.Sprintf(format, args...))
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON reads a JSON body into v. Unknown fields are rejected.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, domain.ErrValidation) {
			return err
		}
		return invalid("request body: %v", err)
	}
	return nil
}
