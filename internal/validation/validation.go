// Package validation holds the input policy shared by registration, profile
// updates and the resource schemas.
package validation

import "regexp"

const (
	PasswordMinLength = 8
	PasswordMaxLength = 100
	NameMinLength     = 2
	NameMaxLength     = 50
)

var (
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	upperRe    = regexp.MustCompile(`[A-Z]`)
	lowerRe    = regexp.MustCompile(`[a-z]`)
	digitRe    = regexp.MustCompile(`\d`)
)

// FieldError is one schema violation; a 422 response carries a list of these.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidHexColor(color string) bool {
	return hexColorRe.MatchString(color)
}

// ValidatePassword returns every policy violation, not just the first.
func ValidatePassword(password string) []string {
	var errs []string
	if len(password) < PasswordMinLength {
		errs = append(errs, "password must be at least 8 characters long")
	}
	if len(password) > PasswordMaxLength {
		errs = append(errs, "password must be no more than 100 characters long")
	}
	if !upperRe.MatchString(password) {
		errs = append(errs, "password must contain at least one uppercase letter")
	}
	if !lowerRe.MatchString(password) {
		errs = append(errs, "password must contain at least one lowercase letter")
	}
	if !digitRe.MatchString(password) {
		errs = append(errs, "password must contain at least one number")
	}
	return errs
}

func ValidateName(name string) string {
	if len(name) < NameMinLength {
		return "name must be at least 2 characters long"
	}
	if len(name) > NameMaxLength {
		return "name must be no more than 50 characters long"
	}
	return ""
}

// OneOf reports whether v is a member of the allowed enum values.
func OneOf(v string, allowed []string) bool {
	for _, item := range allowed {
		if item == v {
			return true
		}
	}
	return false
}
