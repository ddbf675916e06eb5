package service

import (
	"errors"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/tracehealth/trace/internal/auth/domain"
)

// Validator checks request input before any store access.
type Validator struct {
	// CheckDeliverability additionally requires a signup email's domain to
	// accept mail (MX record, or A/AAAA as a fallback).
	CheckDeliverability bool

	// LookupDomain overrides the DNS check. Nil uses govalidator.IsExistingEmail.
	LookupDomain func(email string) bool
}

// signupEmailRules are the syntax rules plus, when enabled, the deliverability check.
func (v Validator) signupEmailRules() []validation.Rule {
	rules := []validation.Rule{validation.Required, is.Email}
	if !v.CheckDeliverability {
		return rules
	}
	lookup := v.LookupDomain
	if lookup == nil {
		lookup = govalidator.IsExistingEmail
	}
	return append(rules, validation.NewStringRule(lookup, "must be a deliverable email address"))
}

// SignupInput is a self-registration request.
type SignupInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

func (v Validator) ValidateSignup(in SignupInput) error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, v.signupEmailRules()...),
		validation.Field(&in.Password, validation.Required),
		validation.Field(&in.FullName, validation.Required, validation.Length(1, 200)),
	))
}

// ValidateEmail checks the syntax of a lone email address, as used by reset.
// Deliverability is not rechecked for accounts that already exist.
func (v Validator) ValidateEmail(email string) error {
	in := struct {
		Email string `json:"email"`
	}{email}
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required, is.Email),
	))
}

// ResetInput confirms a password reset.
type ResetInput struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"newPassword"`
}

func (v Validator) ValidateReset(in ResetInput) error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.OTP, validation.Required),
		validation.Field(&in.NewPassword, validation.Required),
	))
}

// asValidationError converts ozzo field errors into a domain validation error.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return domain.Internal(err)
	}
	fields := make(map[string]string, len(fieldErrs))
	for name, ferr := range fieldErrs {
		fields[name] = ferr.Error()
	}
	return &domain.Error{
		Kind:    domain.KindValidation,
		Message: fieldErrs.Error(),
		Fields:  fields,
	}
}
