package domain

import "time"

// PendingSignup is an unconfirmed registration awaiting its OTP. At most one
// exists per email; a newer request replaces it.
type PendingSignup struct {
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	OTP          string
	CreatedAt    time.Time
}

// PasswordResetRequest is an outstanding password reset awaiting its OTP.
type PasswordResetRequest struct {
	Email     string
	OTP       string
	CreatedAt time.Time
}

// Analytics is the account summary shown on the admin dashboard.
type Analytics struct {
	TotalUsers int64 // User namespace only
	Students   int64
	Clinicians int64 // Clinician and Doctor
	Admins     int64 // Admin namespace
}
