package credential

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abc12345!")
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$12$"), "expected bcrypt cost 12 hash, got %q", hash)

	assert.True(t, Verify("Abc12345!", hash))
	assert.False(t, Verify("wrong-password", hash))
}

func TestVerifyRejectsGarbageHash(t *testing.T) {
	assert.False(t, Verify("Abc12345!", "not-a-hash"))
	assert.False(t, Verify("Abc12345!", ""))
}

func TestHashProducesUniqueSalts(t *testing.T) {
	first, err := Hash("Abc12345!")
	assert.NoError(t, err)
	second, err := Hash("Abc12345!")
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}
