package session

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrWeakPassword     = errors.New("password must be 8+ characters with uppercase, lowercase, number and special character")
	ErrMissingUsername  = errors.New("username is required")
)

const (
	minPasswordLength = 8
	passwordSpecials  = "@$!%*?&"
)

type Registration struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	Role            Role   `json:"role"`
}

// ValidateRegistration checks a registration form. Valid registrations are
// not stored anywhere.
func ValidateRegistration(r Registration) error {
	if strings.TrimSpace(r.Username) == "" {
		return ErrMissingUsername
	}
	if r.Password != r.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if !IsStrongPassword(r.Password) {
		return ErrWeakPassword
	}
	return nil
}

// IsStrongPassword requires at least 8 characters drawn from letters, digits
// and @$!%*?&, with at least one of each class.
func IsStrongPassword(password string) bool {
	if len(password) < minPasswordLength {
		return false
	}
	var lower, upper, digit, special bool
	for _, r := range password {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		default:
			return false
		}
	}
	return lower && upper && digit && special
}
