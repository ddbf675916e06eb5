package http

import (
	"net/http"

	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
)

type LoginHandler struct {
	LoginService *service.LoginService
}

// ServeHTTP godoc
//
//	@Summary		Log In
//	@Description	Authenticates a user or administrator and returns a session token valid for 24 hours.
//	@Description	The token's ns claim is "user" or "admin" depending on where the email is registered.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	authsdk.LoginResponse	"token and profile"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation"
//	@Failure		401		{object}	authsdk.ErrorResponse	"wrong password"
//	@Failure		404		{object}	authsdk.ErrorResponse	"unknown email"
//	@Failure		500		{object}	authsdk.ErrorResponse	"internal"
//	@Router			/api/auth/login [post]
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := h.LoginService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, "login", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.LoginResponse{
		Message: "Login Successful",
		Token:   res.Token,
		User: authsdk.UserProfile{
			FullName: res.Identity.FullName,
			Email:    res.Identity.Email,
			Role:     string(res.Identity.Role),
		},
	})
}
