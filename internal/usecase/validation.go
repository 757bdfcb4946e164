package usecase

import (
	"regexp"
	"strings"
)

var (
	emailPattern     = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneCharPattern = regexp.MustCompile(`^[0-9+\- ]+$`)
	nonDigitPattern  = regexp.MustCompile(`\D`)
)

const (
	minPhoneDigits = 10
	maxPhoneDigits = 15
)

// ValidateLead checks the contact form before any network call. Phone is
// optional; an empty phone is always accepted.
func ValidateLead(name, email, phone string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" {
		return &DomainError{Code: CodeMissingField, Message: "name and email are required"}
	}

	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &DomainError{Code: CodeInvalidEmail, Message: "invalid email format"}
	}

	if !isValidPhone(phone) {
		return &DomainError{Code: CodeInvalidPhone, Message: "invalid phone format"}
	}

	return nil
}

func isValidPhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return true
	}
	if !phoneCharPattern.MatchString(phone) {
		return false
	}
	digits := normalizeDigits(phone)
	return len(digits) >= minPhoneDigits && len(digits) <= maxPhoneDigits
}

func normalizeDigits(s string) string {
	return nonDigitPattern.ReplaceAllString(s, "")
}
