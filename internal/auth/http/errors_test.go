package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/pkg/authsdk"
)

func TestStatusFor(t *testing.T) {
	cases := map[domain.Kind]int{
		domain.KindValidation:   http.StatusBadRequest,
		domain.KindConflict:     http.StatusBadRequest,
		domain.KindExpired:      http.StatusBadRequest,
		domain.KindInvalidCode:  http.StatusBadRequest,
		domain.KindUnauthorized: http.StatusUnauthorized,
		domain.KindNotFound:     http.StatusNotFound,
		domain.KindDelivery:     http.StatusInternalServerError,
		domain.KindInternal:     http.StatusInternalServerError,
	}
	for kind, want := range cases {
		require.Equal(t, want, statusFor(kind), "kind %s", kind)
	}
}

func decodeErrorResponse(t *testing.T, rec *httptest.ResponseRecorder) authsdk.ErrorResponse {
	t.Helper()
	var resp authsdk.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestWriteError(t *testing.T) {
	t.Run("validation carries fields", func(t *testing.T) {
		err := domain.Errorf(domain.KindValidation, "invalid input")
		err.Fields = map[string]string{"email": "must be a valid email address"}

		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodPost, "/api/auth/signup", nil), "signup", err)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeErrorResponse(t, rec)
		require.Equal(t, "validation", resp.Kind)
		require.Equal(t, "invalid input", resp.Error)
		require.Contains(t, resp.Fields, "email")
	})

	t.Run("internal is masked", func(t *testing.T) {
		rec := httptest.NewRecorder()
		cause := errors.New("dial tcp 10.0.0.5:5432: connection refused")
		writeError(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", nil), "login", domain.Internal(cause))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		resp := decodeErrorResponse(t, rec)
		require.Equal(t, "internal", resp.Kind)
		require.Equal(t, "internal error", resp.Error)
		require.NotContains(t, rec.Body.String(), "10.0.0.5")
	})

	t.Run("plain errors are internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		writeError(rec, httptest.NewRequest(http.MethodGet, "/", nil), "x", errors.New("boom"))

		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.Equal(t, "internal error", decodeErrorResponse(t, rec).Error)
	})
}
