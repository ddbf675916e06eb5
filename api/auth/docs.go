// Package auth registers the OpenAPI document served at /swagger/.
//
// Keep it in step with the handler annotations in internal/auth/http; it can
// be regenerated with `swag init -g internal/auth/http/router.go -o api/auth`.
package auth

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/.well-known/jwks.json": {
            "get": {
                "produces": ["application/json"],
                "tags": ["well-known"],
                "summary": "Get JWKS",
                "responses": {
                    "200": {"description": "The JSON Web Key Set", "schema": {"$ref": "#/definitions/authsdk.JWKSResponse"}}
                }
            }
        },
        "/api/auth/signup": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Start Registration",
                "parameters": [
                    {"description": "Registration details", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.SignupRequest"}}
                ],
                "responses": {
                    "200": {"description": "OTP sent", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "validation or conflict", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "delivery or internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/verify-otp": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Confirm Registration",
                "parameters": [
                    {"description": "Email and OTP", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.VerifyOTPRequest"}}
                ],
                "responses": {
                    "201": {"description": "Account created", "schema": {"$ref": "#/definitions/authsdk.VerifyOTPResponse"}},
                    "400": {"description": "validation, expired, invalid_code or conflict", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "no pending registration", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Log In",
                "parameters": [
                    {"description": "Credentials", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "token and profile", "schema": {"$ref": "#/definitions/authsdk.LoginResponse"}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "401": {"description": "wrong password", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "unknown email", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/forgot-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Request Password Reset",
                "parameters": [
                    {"description": "Registered email", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ForgotPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "OTP sent", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "validation", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "unknown email", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "delivery or internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/auth/reset-password": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Auth"],
                "summary": "Reset Password",
                "parameters": [
                    {"description": "Email, OTP and new password", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/authsdk.ResetPasswordRequest"}}
                ],
                "responses": {
                    "200": {"description": "Password changed", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "400": {"description": "validation, expired or invalid_code", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "no outstanding reset", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/admin/users": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "List Users",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/authsdk.UserSummary"}}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "not an administrator", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/admin/users/{id}": {
            "delete": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "Delete User",
                "parameters": [
                    {"type": "string", "description": "User ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "Deleted", "schema": {"$ref": "#/definitions/authsdk.MessageResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "not an administrator", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "404": {"description": "unknown user", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "500": {"description": "internal", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/api/admin/analytics": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["Admin"],
                "summary": "User Analytics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/authsdk.AnalyticsResponse"}},
                    "401": {"description": "missing or invalid token", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}},
                    "403": {"description": "not an administrator", "schema": {"$ref": "#/definitions/authsdk.ErrorResponse"}}
                }
            }
        },
        "/livez": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Health Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        },
        "/readyz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "Readiness Check Endpoint",
                "responses": {
                    "200": {"description": "status, uptime, version, checks", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}},
                    "503": {"description": "service not ready", "schema": {"$ref": "#/definitions/authsdk.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "authsdk.AnalyticsResponse": {
            "type": "object",
            "properties": {
                "admins": {"type": "integer", "example": 1},
                "clinicians": {"type": "integer", "example": 2},
                "students": {"type": "integer", "example": 2},
                "totalUsers": {"type": "integer", "example": 4}
            }
        },
        "authsdk.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "invalid OTP"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}},
                "kind": {
                    "type": "string",
                    "enum": ["validation", "conflict", "not_found", "expired", "invalid_code", "unauthorized", "forbidden", "delivery", "internal"],
                    "example": "invalid_code"
                }
            }
        },
        "authsdk.ForgotPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"}
            }
        },
        "authsdk.HealthChecks": {
            "type": "object",
            "properties": {
                "database": {"type": "string"},
                "signer": {"type": "string"}
            }
        },
        "authsdk.HealthResponse": {
            "type": "object",
            "properties": {
                "checks": {"$ref": "#/definitions/authsdk.HealthChecks"},
                "status": {"type": "string"},
                "uptime": {"type": "string"},
                "version": {"type": "string"}
            }
        },
        "authsdk.JWKSResponse": {
            "type": "object",
            "properties": {
                "keys": {"type": "array", "items": {"type": "object"}}
            }
        },
        "authsdk.LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"},
                "password": {"type": "string"}
            }
        },
        "authsdk.LoginResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Login Successful"},
                "token": {"type": "string"},
                "user": {"$ref": "#/definitions/authsdk.UserProfile"}
            }
        },
        "authsdk.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "OTP sent successfully"}
            }
        },
        "authsdk.ResetPasswordRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"},
                "newPassword": {"type": "string"},
                "otp": {"type": "string", "example": "482913"}
            }
        },
        "authsdk.SignupRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"},
                "fullName": {"type": "string", "example": "Ann Lee"},
                "password": {"type": "string", "example": "correct horse battery staple"},
                "role": {"type": "string", "example": "Clinician"}
            }
        },
        "authsdk.UserProfile": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"},
                "fullName": {"type": "string", "example": "Ann Lee"},
                "role": {"type": "string", "example": "Clinician"}
            }
        },
        "authsdk.UserSummary": {
            "type": "object",
            "properties": {
                "_id": {"type": "string", "example": "01J9Z3K4M5N6P7Q8R9S0T1V2W3"},
                "createdAt": {"type": "string"},
                "email": {"type": "string", "example": "ann@example.com"},
                "fullName": {"type": "string", "example": "Ann Lee"},
                "role": {"type": "string", "example": "Clinician"}
            }
        },
        "authsdk.VerifyOTPRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string", "example": "ann@example.com"},
                "otp": {"type": "string", "example": "482913"}
            }
        },
        "authsdk.VerifyOTPResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string", "example": "Account Verified!"},
                "user": {"$ref": "#/definitions/authsdk.UserSummary"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Session token. Format: \"Bearer {token}\".",
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "0.1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "TRACE Account Service API",
	Description:      "Email-verified registration, login and password reset for TRACE users and administrators.\nSession tokens are JWTs verifiable against the JWKS endpoint.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
