package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsPasswordStrong(t *testing.T) {
	tests := []struct {
		name     string
		password string
		expected bool
	}{
		{"letters and digits", "password1", true},
		{"too short", "pass1", false},
		{"letters only", "passwordonly", false},
		{"digits only", "12345678", false},
		{"symbols still need letter and digit", "!!!!!!!!", false},
		{"mixed with symbols", "p4ssw0rd!", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, isPasswordStrong(tt.password))
		})
	}
}

func TestIsEmailValid(t *testing.T) {
	assert.True(t, isEmailValid("jane@example.com"))
	assert.True(t, isEmailValid("jane.doe+tag@sub.example.co"))
	assert.True(t, isEmailValid("jane%doe@example.com"))
	assert.False(t, isEmailValid("not-an-email"))
	assert.False(t, isEmailValid("missing@tld"))
	assert.False(t, isEmailValid(""))
}

func TestUsernamePattern(t *testing.T) {
	assert.True(t, usernamePattern.MatchString("jane_doe"))
	assert.True(t, usernamePattern.MatchString("jane-doe-42"))
	assert.False(t, usernamePattern.MatchString("jd"))            // too short
	assert.False(t, usernamePattern.MatchString("jane doe"))     // spaces
	assert.False(t, usernamePattern.MatchString("jane@example")) // symbols
}
