package credential

import "golang.org/x/crypto/bcrypt"

// HashCost matches the cost Dovecot verifies against for BLF-CRYPT schemes.
// Changing it invalidates nothing existing but slows every registration.
const HashCost = 12

// Hash returns the bcrypt hash stored in the mail directory.
func Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), HashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify checks whether a password matches the stored bcrypt hash.
func Verify(password, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(password)) == nil
}
