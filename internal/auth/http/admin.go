package http

import (
	"net/http"

	"github.com/tracehealth/trace/internal/auth/domain"
	"github.com/tracehealth/trace/internal/auth/service"
	"github.com/tracehealth/trace/pkg/authsdk"
	"github.com/tracehealth/trace/pkg/httpx"
)

type AdminHandler struct {
	AdminService *service.AdminService
}

// HandleListUsers godoc
//
//	@Summary		List Users
//	@Description	Lists every registered user, oldest first. Administrators are not included.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{array}		authsdk.UserSummary
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"not an administrator"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.AdminService.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, "list_users", err)
		return
	}

	out := make([]authsdk.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, toUserSummary(u))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleDeleteUser godoc
//
//	@Summary		Delete User
//	@Description	Deletes a registered user and any outstanding password reset for them.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	authsdk.MessageResponse	"Deleted"
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"not an administrator"
//	@Failure		404	{object}	authsdk.ErrorResponse	"unknown user"
//	@Failure		500	{object}	authsdk.ErrorResponse	"internal"
//	@Router			/api/admin/users/{id} [delete]
func (h *AdminHandler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.AdminService.DeleteUser(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, r, "delete_user", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Message: "Deleted"})
}

// HandleAnalytics godoc
//
//	@Summary		User Analytics
//	@Description	Counts registered users by role, plus administrators.
//	@Tags			Admin
//	@Produce		json
//	@Security		BearerAuth
//	@Success		200	{object}	authsdk.AnalyticsResponse
//	@Failure		401	{object}	authsdk.ErrorResponse	"missing or invalid token"
//	@Failure		403	{object}	authsdk.ErrorResponse	"not an administrator"
//	@Router			/api/admin/analytics [get]
func (h *AdminHandler) HandleAnalytics(w http.ResponseWriter, r *http.Request) {
	a, err := h.AdminService.Analytics(r.Context())
	if err != nil {
		writeError(w, r, "analytics", err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.AnalyticsResponse{
		TotalUsers: a.TotalUsers,
		Students:   a.Students,
		Clinicians: a.Clinicians,
		Admins:     a.Admins,
	})
}

func toUserSummary(p domain.PublicIdentity) authsdk.UserSummary {
	return authsdk.UserSummary{
		ID:        p.ID,
		FullName:  p.FullName,
		Email:     p.Email,
		Role:      string(p.Role),
		CreatedAt: p.CreatedAt,
	}
}
