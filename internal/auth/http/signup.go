package http

import (
	"net/http"

	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
)

type SignupHandler struct {
	SignupService *service.SignupService
}

// HandleSignup godoc
//
//	@Summary		Start Registration
//	@Description	Records a pending registration and emails a six-digit OTP valid for 5 minutes.
//	@Description	Repeating the request replaces any earlier OTP. Roles other than Student, Clinician and Doctor become Student.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.SignupRequest	true	"Registration details"
//	@Success		200		{object}	authsdk.MessageResponse	"OTP sent"
//	@Failure		400		{object}	authsdk.ErrorResponse	"validation or conflict"
//	@Failure		500		{object}	authsdk.ErrorResponse	"delivery or internal"
//	@Router			/api/auth/signup [post]
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	var req authsdk.SignupRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	err := h.SignupService.RequestSignup(r.Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		writeError(w, r, "signup", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "OTP sent successfully"})
}

// HandleVerifyOTP godoc
//
//	@Summary		Confirm Registration
//	@Description	Confirms a pending registration with its OTP and creates the user.
//	@Description	An expired OTP discards the pending registration; a wrong OTP leaves it in place.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.VerifyOTPRequest	true	"Email and OTP"
//	@Success		201		{object}	authsdk.VerifyOTPResponse	"Account created"
//	@Failure		400		{object}	authsdk.ErrorResponse		"validation, expired, invalid_code or conflict"
//	@Failure		404		{object}	authsdk.ErrorResponse		"no pending registration"
//	@Failure		500		{object}	authsdk.ErrorResponse		"internal"
//	@Router			/api/auth/verify-otp [post]
func (h *SignupHandler) HandleVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req authsdk.VerifyOTPRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		writeBadRequest(w, err)
		return
	}

	ident, err := h.SignupService.ConfirmSignup(r.Context(), req.Email, req.OTP)
	if err != nil {
		writeError(w, r, "verify_otp", err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.VerifyOTPResponse{
		Message: "Account Verified!",
		User:    toUserSummary(ident.Public()),
	})
}
