package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Admin operations. The session token must belong to an admin.

// ListUsers returns every registered user.
func (s *Session) ListUsers(ctx context.Context) ([]UserSummary, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/admin/users", nil)
	if err != nil {
		return nil, err
	}

	var users []UserSummary
	if err := decodeJSON(resp, &users, http.StatusOK); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser removes the user with id.
func (s *Session) DeleteUser(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/api/admin/users/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

func (s *Session) GetAnalytics(ctx context.Context) (*AnalyticsResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/api/admin/analytics", nil)
	if err != nil {
		return nil, err
	}

	var out AnalyticsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
