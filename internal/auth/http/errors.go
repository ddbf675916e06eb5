package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/getsentry/sentry-go"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// statusFor maps a failure kind to its HTTP status. Conflicts are reported as
// 400 to stay compatible with existing clients.
func statusFor(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation, domain.KindConflict, domain.KindExpired, domain.KindInvalidCode:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError writes err as an ErrorResponse. Internal failures are reported to Sentry.
func writeError(w http.ResponseWriter, r *http.Request, handler string, err error) {
	kind := domain.KindOf(err)
	resp := authsdk.ErrorResponse{
		Error: err.Error(),
		Kind:  string(kind),
	}
	var derr *domain.Error
	if errors.As(err, &derr) {
		resp.Fields = derr.Fields
	}

	if kind == domain.KindInternal {
		resp.Error = domain.ErrInternal.Message
		slogx.FromContext(r.Context()).Error("request failed",
			slog.String("handler", handler),
			slog.Any("error", err),
		)
		captureException(r, handler, err)
	}

	httpx.WriteJSON(w, statusFor(kind), resp)
}

// writeBadRequest reports a body that could not be decoded.
func writeBadRequest(w http.ResponseWriter, err error) {
	httpx.WriteJSON(w, http.StatusBadRequest, authsdk.ErrorResponse{
		Error: err.Error(),
		Kind:  string(domain.KindValidation),
	})
}

func captureException(r *http.Request, handler string, err error) {
	hub := sentry.GetHubFromContext(r.Context())
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("handler", handler)
		if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
			scope.SetTag("request_id", reqID)
		}
		hub.CaptureException(err)
	})
}
