/*
Package authsdk provides a client SDK for the TRACE account service.

# Overview

The service registers users behind an emailed one-time code, logs users and
administrators in, resets passwords behind a second emailed code, and exposes
a small set of administrator endpoints.

# SDKClient vs Session

  - SDKClient: public endpoints (signup, verify, login, password reset, health, JWKS)
  - Session: endpoints that need a session token (the admin endpoints)

Registration is two calls; the OTP arrives by email:

	client := authsdk.NewSDKClient("https://trace.example.com")

	_, err := client.Signup(ctx, authsdk.SignupRequest{
		FullName: "Ann Lee",
		Email:    "ann@example.com",
		Password: "correct horse battery staple",
		Role:     "Clinician",
	})

	verified, err := client.VerifyOTP(ctx, authsdk.VerifyOTPRequest{
		Email: "ann@example.com",
		OTP:   otpFromEmail,
	})

Log in to get a Session:

	session, err := client.AuthenticateWithPassword(ctx, "root@example.com", password)
	users, err := session.ListUsers(ctx)
	stats, err := session.GetAnalytics(ctx)

Session tokens last 24 hours and are not refreshed; log in again once a call
fails with KindUnauthorized.

# Error Handling

Every non-2xx response is returned as an *APIError carrying the HTTP status,
a stable Kind and the server's message:

	_, err := client.VerifyOTP(ctx, req)
	if authsdk.IsKind(err, authsdk.KindExpired) {
		// Ask the user to sign up again.
	}
*/
package authsdk
