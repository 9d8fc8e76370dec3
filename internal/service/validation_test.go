package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName_Boundaries(t *testing.T) {
	tests := []struct {
		name   string
		length int
		valid  bool
	}{
		{"one below minimum", 19, false},
		{"at minimum", 20, true},
		{"at maximum", 60, true},
		{"one above maximum", 61, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(strings.Repeat("a", tt.length))
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.EqualError(t, err, "Name must be between 20-60 characters")
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"too short", "Ab@1", "Password must be between 8-16 characters"},
		{"too long", "Abcdefgh@1234567890", "Password must be between 8-16 characters"},
		{"no uppercase", "abc@1234", "Password must contain at least one uppercase letter"},
		{"no special character", "Abc12345", "Password must contain at least one special character"},
		{"valid", "Abc@1234", ""},
		{"valid at max length", "Abcdefgh@1234567", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.EqualError(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateAddress(t *testing.T) {
	assert.NoError(t, ValidateAddress(""))
	assert.NoError(t, ValidateAddress(strings.Repeat("a", 400)))
	assert.EqualError(t, ValidateAddress(strings.Repeat("a", 401)), "Address must be maximum 400 characters")
}

func TestFormatAverage(t *testing.T) {
	assert.Equal(t, "0.0", FormatAverage(0))
	assert.Equal(t, "4.0", FormatAverage(4))
	assert.Equal(t, "4.5", FormatAverage(4.5))
	assert.Equal(t, "3.7", FormatAverage(3.6667))
}
