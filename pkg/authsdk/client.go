package authsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// SDKClient is a client for the TRACE account service.
// It provides the public auth endpoints and can create authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewSDKClient creates a new account service client.
func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Session carries a session token for the endpoints that require one.
type Session struct {
	client *SDKClient
	token  string

	// User is the profile returned at login, if the session came from Login.
	User UserProfile
}

// AuthenticateWithPassword logs in and returns a session for the resulting token.
func (c *SDKClient) AuthenticateWithPassword(ctx context.Context, email, password string) (*Session, error) {
	resp, err := c.Login(ctx, LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	return &Session{client: c, token: resp.Token, User: resp.User}, nil
}

// NewSessionFromToken wraps an existing session token.
func (c *SDKClient) NewSessionFromToken(token string) *Session {
	return &Session{client: c, token: token}
}

// Token returns the session token.
func (s *Session) Token() string {
	return s.token
}
