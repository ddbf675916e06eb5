package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Failure kinds reported in ErrorResponse.Kind.
const (
	KindValidation   = "validation"
	KindConflict     = "conflict"
	KindNotFound     = "not_found"
	KindExpired      = "expired"
	KindInvalidCode  = "invalid_code"
	KindUnauthorized = "unauthorized"
	KindForbidden    = "forbidden"
	KindDelivery     = "delivery"
	KindInternal     = "internal"
)

// APIError is a non-2xx response from the service.
type APIError struct {
	StatusCode int
	Kind       string
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Kind, e.Message)
}

// IsKind reports whether err is an *APIError of the given kind.
func IsKind(err error, kind string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// parseErrorResponse turns a non-2xx response body into an *APIError.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var errResp ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       errResp.Kind,
			Message:    errResp.Error,
			Fields:     errResp.Fields,
		}
	}

	// Fallback: create generic error from status code
	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindInternal,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
