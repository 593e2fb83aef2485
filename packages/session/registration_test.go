package session

import (
	"errors"
	"testing"
)

func TestIsStrongPassword(t *testing.T) {
	cases := map[string]bool{
		"Secret1!":      true,
		"LongerPass9&x": true,
		"Sh0rt!":        false,
		"alllower1!":    false,
		"ALLUPPER1!":    false,
		"NoDigits!!":    false,
		"NoSpecial12":   false,
		"Bad#Char1!":    false,
		"Ümlaut1!a":     false,
	}
	for password, expected := range cases {
		if got := IsStrongPassword(password); got != expected {
			t.Errorf("%q: expected %v, got %v", password, expected, got)
		}
	}
}

func TestValidateRegistration(t *testing.T) {
	valid := Registration{
		Username:        "analyst",
		Email:           "analyst@example.com",
		Password:        "Secret1!",
		ConfirmPassword: "Secret1!",
		Role:            RoleUser,
	}
	if err := ValidateRegistration(valid); err != nil {
		t.Errorf("expected valid registration, got %v", err)
	}

	mismatch := valid
	mismatch.ConfirmPassword = "Secret2!"
	if err := ValidateRegistration(mismatch); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("expected ErrPasswordMismatch, got %v", err)
	}

	weak := valid
	weak.Password = "password"
	weak.ConfirmPassword = "password"
	if err := ValidateRegistration(weak); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("expected ErrWeakPassword, got %v", err)
	}

	anonymous := valid
	anonymous.Username = "  "
	if err := ValidateRegistration(anonymous); !errors.Is(err, ErrMissingUsername) {
		t.Errorf("expected ErrMissingUsername, got %v", err)
	}
}
