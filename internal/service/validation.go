package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"storehub/internal/errors"
)

// passwordSymbols is the fixed punctuation set a password must draw its
// special character from.
const passwordSymbols = "!@#$%^&*"

const (
	nameMinLen     = 20
	nameMaxLen     = 60
	passwordMinLen = 8
	passwordMaxLen = 16
	addressMaxLen  = 400
)

// ValidateName checks the display-name length rule. Each rule carries its own
// user-facing message so a caller learns exactly which rule failed.
func ValidateName(name string) error {
	if len(name) < nameMinLen || len(name) > nameMaxLen {
		return errors.NewValidationError("Name must be between 20-60 characters")
	}
	return nil
}

// ValidatePassword checks length, uppercase, and special-character rules.
func ValidatePassword(password string) error {
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		return errors.NewValidationError("Password must be between 8-16 characters")
	}
	if !strings.ContainsFunc(password, func(r rune) bool { return r >= 'A' && r <= 'Z' }) {
		return errors.NewValidationError("Password must contain at least one uppercase letter")
	}
	if !strings.ContainsAny(password, passwordSymbols) {
		return errors.NewValidationError("Password must contain at least one special character")
	}
	return nil
}

// ValidateAddress checks the optional postal-address length cap.
func ValidateAddress(address string) error {
	if len(address) > addressMaxLen {
		return errors.NewValidationError("Address must be maximum 400 characters")
	}
	return nil
}

// FormatAverage renders a rating average with one decimal place, the wire
// representation used everywhere aggregates appear.
func FormatAverage(average float64) string {
	return decimal.NewFromFloat(average).StringFixed(1)
}
