package http

import (
	"net/http"

	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
)

type PasswordResetHandler struct {
	ResetService *service.ResetService
}

// HandleForgot godoc
//
//	@Summary		Request Password Reset
//	@Description	Emails a reset OTP valid for 5 minutes. Repeating the request replaces any earlier OTP.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ForgotPasswordRequest	true	"Registered email"
//	@Success		200		{object}	authsdk.MessageResponse			"OTP sent"
//	@Failure		400		{object}	authsdk.ErrorResponse			"validation"
//	@Failure		404		{object}	authsdk.ErrorResponse			"unknown email"
//	@Failure		500		{object}	authsdk.ErrorResponse			"delivery or internal"
//	@Router			/api/auth/forgot-password [post]
func (h *PasswordResetHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ForgotPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	if err := h.ResetService.RequestReset(r.Context(), req.Email); err != nil {
		writeError(w, r, "forgot_password", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Reset code sent to email"})
}

// HandleReset godoc
//
//	@Summary		Reset Password
//	@Description	Replaces the password once the reset OTP matches.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.ResetPasswordRequest	true	"Email, OTP and new password"
//	@Success		200		{object}	authsdk.MessageResponse			"Password changed"
//	@Failure		400		{object}	authsdk.ErrorResponse			"validation, expired or invalid_code"
//	@Failure		404		{object}	authsdk.ErrorResponse			"no outstanding reset"
//	@Failure		500		{object}	authsdk.ErrorResponse			"internal"
//	@Router			/api/auth/reset-password [post]
func (h *PasswordResetHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req authsdk.ResetPasswordRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	err := h.ResetService.ConfirmReset(r.Context(), service.ResetInput{
		Email:       req.Email,
		OTP:         req.OTP,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		writeError(w, r, "reset_password", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{
		Message: "Password changed successfully. Please Login.",
	})
}
