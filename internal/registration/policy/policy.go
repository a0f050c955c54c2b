package policy

import (
	"regexp"
	"strings"
)

// DefaultReservedUsernames are local-parts that must never become mailboxes.
// They are role addresses per RFC 2142 plus common admin aliases.
var DefaultReservedUsernames = []string{
	"admin",
	"administrator",
	"root",
	"postmaster",
	"webmaster",
	"hostmaster",
	"noreply",
	"no-reply",
}

const (
	// MinStrength is the lowest password strength accepted at registration.
	MinStrength = 3

	minUsernameLen = 2
	maxUsernameLen = 30
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)

// Validation carries the result of a username policy check. Message is
// user-facing and returned verbatim by the HTTP layer.
type Validation struct {
	Valid   bool
	Message string
}

// ValidateUsername checks a candidate local-part against the account policy.
// It is pure; case folding for the reserved check happens here, everything
// else compares the input as given.
func ValidateUsername(username string, reserved []string) Validation {
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return Validation{Valid: false, Message: "Username must be 2-30 characters long"}
	}

	if !usernamePattern.MatchString(username) {
		return Validation{Valid: false, Message: "Username can only contain letters, numbers, dots, hyphens, and underscores"}
	}

	if isBoundaryChar(username[0]) || isBoundaryChar(username[len(username)-1]) {
		return Validation{Valid: false, Message: "Username cannot start or end with special characters"}
	}

	lowered := strings.ToLower(username)
	for _, name := range reserved {
		if lowered == strings.ToLower(name) {
			return Validation{Valid: false, Message: "This username is reserved"}
		}
	}

	return Validation{Valid: true, Message: "Username is valid"}
}

func isBoundaryChar(c byte) bool {
	return c == '.' || c == '-' || c == '_'
}

// PasswordStrength scores a password 0..5, one point each for length of at
// least 8, an uppercase letter, a lowercase letter, a digit, and a
// non-alphanumeric character.
func PasswordStrength(password string) int {
	strength := 0
	if len(password) >= 8 {
		strength++
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for i := 0; i < len(password); i++ {
		c := password[i]
		switch {
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			hasSpecial = true
		}
	}

	if hasUpper {
		strength++
	}
	if hasLower {
		strength++
	}
	if hasDigit {
		strength++
	}
	if hasSpecial {
		strength++
	}
	return strength
}
