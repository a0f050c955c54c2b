package policy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	reserved := DefaultReservedUsernames

	tests := []struct {
		name     string
		username string
		valid    bool
		message  string
	}{
		{
			name:     "valid simple",
			username: "alice",
			valid:    true,
			message:  "Username is valid",
		},
		{
			name:     "valid two chars",
			username: "ad",
			valid:    true,
			message:  "Username is valid",
		},
		{
			name:     "valid with separators",
			username: "john.doe_jr-2",
			valid:    true,
			message:  "Username is valid",
		},
		{
			name:     "too short",
			username: "a",
			valid:    false,
			message:  "Username must be 2-30 characters long",
		},
		{
			name:     "empty",
			username: "",
			valid:    false,
			message:  "Username must be 2-30 characters long",
		},
		{
			name:     "too long",
			username: strings.Repeat("a", 31),
			valid:    false,
			message:  "Username must be 2-30 characters long",
		},
		{
			name:     "max length ok",
			username: strings.Repeat("a", 30),
			valid:    true,
			message:  "Username is valid",
		},
		{
			name:     "invalid characters",
			username: "john doe",
			valid:    false,
			message:  "Username can only contain letters, numbers, dots, hyphens, and underscores",
		},
		{
			name:     "invalid unicode",
			username: "jöhn",
			valid:    false,
			message:  "Username can only contain letters, numbers, dots, hyphens, and underscores",
		},
		{
			name:     "leading dot",
			username: ".alice",
			valid:    false,
			message:  "Username cannot start or end with special characters",
		},
		{
			name:     "trailing hyphen",
			username: "alice-",
			valid:    false,
			message:  "Username cannot start or end with special characters",
		},
		{
			name:     "trailing underscore",
			username: "alice_",
			valid:    false,
			message:  "Username cannot start or end with special characters",
		},
		{
			name:     "reserved lowercase",
			username: "admin",
			valid:    false,
			message:  "This username is reserved",
		},
		{
			name:     "reserved mixed case",
			username: "PostMaster",
			valid:    false,
			message:  "This username is reserved",
		},
		{
			name:     "reserved with hyphen",
			username: "no-reply",
			valid:    false,
			message:  "This username is reserved",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ValidateUsername(tt.username, reserved)
			assert.Equal(t, tt.valid, got.Valid)
			assert.Equal(t, tt.message, got.Message)
		})
	}
}

func TestValidateUsernameAllReservedNames(t *testing.T) {
	for _, name := range DefaultReservedUsernames {
		got := ValidateUsername(name, DefaultReservedUsernames)
		assert.False(t, got.Valid, "expected %q to be reserved", name)

		upper := strings.ToUpper(name)
		got = ValidateUsername(upper, DefaultReservedUsernames)
		assert.False(t, got.Valid, "expected %q to be reserved", upper)
	}
}

func TestPasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		want     int
	}{
		{"", 0},
		{"Abc12345!", 5},
		{"abcdefgh", 2},
		{"abc", 1},
		{"ABC", 1},
		{"123", 1},
		{"!!!", 1},
		{"abcDEF", 2},
		{"abcDEF12", 4},
		{"P@ssw0rd", 5},
		{"password1", 3},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordStrength(tt.password))
		})
	}
}
