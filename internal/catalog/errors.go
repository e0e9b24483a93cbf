package catalog

import (
	"alcyxob/plan-admin/internal/domain"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error taxonomy surfaced to the console. Everything a repository call
// returns matches exactly one of these with errors.Is.
var (
	ErrValidation = domain.ErrValidation
	ErrAuth       = errors.New("authentication required")
	ErrNotFound   = errors.New("plan not found")
	ErrNetwork    = errors.New("catalog service unavailable")
)

// errorBody is the catalog service's error envelope.
type errorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// statusError maps a non-2xx response onto the taxonomy.
func statusError(status int, body errorBody) error {
	msg := strings.TrimSpace(body.Error)
	if msg == "" {
		msg = http.StatusText(status)
	}
	switch {
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		if len(body.Fields) > 0 {
			return &domain.ValidationError{Fields: body.Fields}
		}
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrAuth, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, msg)
	}
	return fmt.Errorf("%w: status %d: %s", ErrNetwork, status, msg)
}
