package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the only password rule: no character-class requirements.
const MinPasswordLength = 6

const (
	MaxNameLength  = 100
	MaxEmailLength = 100
	MaxPhoneLength = 15
)

var (
	emailRegex = regexp.MustCompile(`^[A-Za-z0-9._%+\-]+@[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?(?:\.[A-Za-z0-9](?:[A-Za-z0-9\-]*[A-Za-z0-9])?)+$`)
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 ().\-]*$`)
)

// ValidateEmail checks the address shape and the 254-character limit.
func ValidateEmail(email string) error {
	if len(email) > 254 {
		return fmt.Errorf("email must be at most 254 characters")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum length.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", MinPasswordLength)
	}
	return nil
}

// ValidatePhone accepts digits with common separators and an optional leading plus.
func ValidatePhone(phone string) error {
	if !phoneRegex.MatchString(phone) {
		return fmt.Errorf("invalid phone number")
	}
	return nil
}

// EmployeeRegistration is the sign-up form of a job seeker.
type EmployeeRegistration struct {
	FirstName       string
	LastName        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// ValidateEmployeeRegistration returns field errors for an employee sign-up.
func ValidateEmployeeRegistration(in EmployeeRegistration) FieldErrors {
	errs := FieldErrors{}
	errs.Required("FirstName", in.FirstName, MaxNameLength)
	errs.Required("LastName", in.LastName, MaxNameLength)
	errs.emailField("Email", in.Email)
	errs.Required("PhoneNumber", in.PhoneNumber, MaxPhoneLength)
	if _, bad := errs["PhoneNumber"]; !bad {
		if err := ValidatePhone(strings.TrimSpace(in.PhoneNumber)); err != nil {
			errs.Add("PhoneNumber", "The PhoneNumber field is not a valid phone number.")
		}
	}
	errs.passwordFields(in.Password, in.ConfirmPassword)
	return errs
}

// EmployerRegistration is the sign-up form of a company.
type EmployerRegistration struct {
	CompanyName     string
	ContactEmail    string
	Password        string
	ConfirmPassword string
}

// ValidateEmployerRegistration returns field errors for an employer sign-up.
func ValidateEmployerRegistration(in EmployerRegistration) FieldErrors {
	errs := FieldErrors{}
	errs.Required("CompanyName", in.CompanyName, MaxNameLength)
	errs.emailField("ContactEmail", in.ContactEmail)
	errs.passwordFields(in.Password, in.ConfirmPassword)
	return errs
}

func (f FieldErrors) emailField(field, value string) {
	f.Required(field, value, MaxEmailLength)
	if _, bad := f[field]; bad {
		return
	}
	if err := ValidateEmail(strings.TrimSpace(value)); err != nil {
		f.Add(field, fmt.Sprintf("The %s field is not a valid e-mail address.", field))
	}
}

func (f FieldErrors) passwordFields(password, confirm string) {
	if password == "" {
		f.Add("Password", "The Password field is required.")
		return
	}
	if err := ValidatePassword(password); err != nil {
		f.Add("Password", fmt.Sprintf("The Password must be at least %d characters long.", MinPasswordLength))
	}
	if password != confirm {
		f.Add("ConfirmPassword", "The password and confirmation password do not match.")
	}
}
