package domain

import "strings"

type Role string

const (
	RoleStudent   Role = "Student"
	RoleClinician Role = "Clinician"
	RoleDoctor    Role = "Doctor"
	RoleAdmin     Role = "Admin"
)

// SignupRoles are the roles a self-registering user may pick.
var SignupRoles = []Role{RoleStudent, RoleClinician, RoleDoctor}

// ClampSignupRole maps a requested role onto SignupRoles, ignoring case and
// surrounding whitespace. Anything else, Admin included, becomes RoleStudent.
func ClampSignupRole(requested string) Role {
	requested = strings.TrimSpace(requested)
	for _, r := range SignupRoles {
		if strings.EqualFold(requested, string(r)) {
			return r
		}
	}
	return RoleStudent
}
