package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/tracehealth/trace/internal/auth/store"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
	"github.com/tracehealth/trace/pkg/jwtx"
	"github.com/tracehealth/trace/pkg/slogx"
)

// readyzTimeout bounds the database ping behind /readyz.
const readyzTimeout = 2 * time.Second

// SystemHandler serves the probes and the published signing keys.
type SystemHandler struct {
	Store   store.Store
	Keys    *jwtx.KeySet
	Version string
	Started time.Time
}

func (h *SystemHandler) base(status string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(h.Started).Round(time.Second).String(),
		Version: h.Version,
	}
}

// HandleLivez godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse
//	@Router			/livez [get]
func (h *SystemHandler) HandleLivez(w http.ResponseWriter, r *http.Request) {
	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, h.base("ok"))
}

// HandleReadyz godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the credential store and that session signing keys are loaded
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse
//	@Failure		503	{object}	authsdk.HealthResponse
//	@Router			/readyz [get]
func (h *SystemHandler) HandleReadyz(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())
	checks := &authsdk.HealthChecks{Database: "ok", Signer: "ok"}

	ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
	defer cancel()
	if err := h.Store.Ping(ctx); err != nil {
		log.Warn("readiness: store ping failed", slog.Any("error", err))
		checks.Database = "unavailable"
	}
	if !h.Keys.IsReady() {
		checks.Signer = "no keys loaded"
	}

	status, code := "ok", http.StatusOK
	if checks.Database != "ok" || checks.Signer != "ok" {
		status, code = "degraded", http.StatusServiceUnavailable
	}

	resp := h.base(status)
	resp.Checks = checks
	httpx.NoCache(w)
	httpx.WriteJSON(w, code, resp)
}

// HandleJWKS godoc
//
//	@Summary		Session token verification keys
//	@Description	Public keys for verifying session tokens. Keys are regenerated when the service restarts.
//	@Tags			well-known
//	@Produce		json
//	@Success		200	{object}	authsdk.JWKSResponse
//	@Router			/.well-known/jwks.json [get]
func (h *SystemHandler) HandleJWKS(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "public, max-age=300")
	httpx.WriteJSON(w, http.StatusOK, authsdk.JWKSResponse(h.Keys.PublicJWKS()))
}
