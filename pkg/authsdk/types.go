package authsdk

import (
	"time"

	"github.com/tracehealth/trace/pkg/jwtx"
)

// ============================================================================
// Error Types
// ============================================================================

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	// Error is a human-readable message.
	Error string `json:"error" example:"invalid OTP"`

	// Kind is a stable machine-readable failure class.
	Kind string `json:"kind" example:"invalid_code" enums:"validation,conflict,not_found,expired,invalid_code,unauthorized,forbidden,delivery,internal"`

	// Fields holds per-field validation messages.
	Fields map[string]string `json:"fields,omitempty"`
}

// MessageResponse is returned by operations that have nothing else to report.
type MessageResponse struct {
	Message string `json:"message" example:"OTP sent successfully"`
}

// ============================================================================
// Signup Types
// ============================================================================

type SignupRequest struct {
	FullName string `json:"fullName" example:"Ann Lee"`
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password" example:"correct horse battery staple"`

	// Role is one of Student, Clinician or Doctor. Anything else becomes Student.
	Role string `json:"role,omitempty" example:"Clinician"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" example:"ann@example.com"`
	OTP   string `json:"otp" example:"482913"`
}

// VerifyOTPResponse confirms a completed registration.
type VerifyOTPResponse struct {
	Message string      `json:"message" example:"Account Verified!"`
	User    UserSummary `json:"user"`
}

// ============================================================================
// Login Types
// ============================================================================

type LoginRequest struct {
	Email    string `json:"email" example:"ann@example.com"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Message string      `json:"message" example:"Login Successful"`
	Token   string      `json:"token"`
	User    UserProfile `json:"user"`
}

// UserProfile is the public view of the logged-in identity.
type UserProfile struct {
	FullName string `json:"fullName" example:"Ann Lee"`
	Email    string `json:"email" example:"ann@example.com"`
	Role     string `json:"role" example:"Clinician"`
}

// ============================================================================
// Password Reset Types
// ============================================================================

type ForgotPasswordRequest struct {
	Email string `json:"email" example:"ann@example.com"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" example:"ann@example.com"`
	OTP         string `json:"otp" example:"482913"`
	NewPassword string `json:"newPassword"`
}

// ============================================================================
// Admin Types
// ============================================================================

// UserSummary is a user as listed to administrators. It never carries a password hash.
type UserSummary struct {
	ID        string    `json:"_id" example:"01J9Z3K4M5N6P7Q8R9S0T1V2W3"`
	FullName  string    `json:"fullName" example:"Ann Lee"`
	Email     string    `json:"email" example:"ann@example.com"`
	Role      string    `json:"role" example:"Clinician"`
	CreatedAt time.Time `json:"createdAt"`
}

// AnalyticsResponse summarizes registered identities.
type AnalyticsResponse struct {
	TotalUsers int64 `json:"totalUsers" example:"4"`
	Students   int64 `json:"students" example:"2"`

	// Clinicians counts both Clinician and Doctor roles.
	Clinicians int64 `json:"clinicians" example:"2"`
	Admins     int64 `json:"admins" example:"1"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse represents the response structure for health check endpoints.
// Used by both /livez and /readyz endpoints (readyz includes additional Checks field).
type HealthResponse struct {
	// Status indicates the overall health status (e.g., "ok")
	Status string `json:"status"`

	// Uptime is the service uptime duration as a string (e.g., "1h23m45s")
	Uptime string `json:"uptime,omitempty"`

	// Version is the service version string
	Version string `json:"version,omitempty"`

	// Checks contains readiness check results for critical dependencies (only for /readyz)
	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks represents the status of critical service dependencies.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse contains the public keys that verify session tokens.
type JWKSResponse jwtx.JWKS
