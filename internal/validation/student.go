// Package validation holds the pure input checks for student registration.
// Messages are user-facing and surface to the client untouched, so they are
// written in Portuguese like the rest of the app's vocabulary.
package validation

import (
	"regexp"
	"strings"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// Brazilian mobile shape, checked after stripping whitespace:
	// optional (DD) area code, 5-digit prefix, optional hyphen, 4-digit suffix.
	phoneRegex = regexp.MustCompile(`^(\(\d{2}\))?\d{5}-?\d{4}$`)

	whitespace = regexp.MustCompile(`\s`)
)

// RuleError is a violated validation rule. Its message is exactly what the
// user should see.
type RuleError struct {
	Message string
}

func (e *RuleError) Error() string {
	return e.Message
}

// IsValidEmail reports whether email has a local@domain.tld shape.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// IsValidPhone reports whether phone, with whitespace stripped, matches the
// (XX) XXXXX-XXXX pattern or its unformatted variants.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(whitespace.ReplaceAllString(phone, ""))
}

// ValidateStudent checks the student registration fields in order and
// returns the first violated rule, or nil when everything passes.
// Phone is optional: an empty phone is accepted.
func ValidateStudent(name, email, phone string) error {
	if strings.TrimSpace(name) == "" {
		return &RuleError{Message: "O nome é obrigatório"}
	}
	if len([]rune(strings.TrimSpace(name))) < 3 {
		return &RuleError{Message: "O nome deve ter pelo menos 3 caracteres"}
	}

	if strings.TrimSpace(email) == "" {
		return &RuleError{Message: "O email é obrigatório"}
	}
	if !IsValidEmail(email) {
		return &RuleError{Message: "Email inválido"}
	}

	if phone != "" && !IsValidPhone(phone) {
		return &RuleError{Message: "Celular inválido. Use o formato (XX) XXXXX-XXXX"}
	}

	return nil
}
