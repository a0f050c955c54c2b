package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultPolicyConfig(t *testing.T) {
	cfg := DefaultPolicyConfig()
	assert.Len(t, cfg.ReservedUsernames, 8)
	assert.Contains(t, cfg.ReservedUsernames, "admin")
	assert.Contains(t, cfg.ReservedUsernames, "no-reply")
	assert.Equal(t, 3, cfg.MinPasswordStrength)
	assert.NoError(t, validatePolicyConfig(cfg))
}

func TestValidatePolicyConfig(t *testing.T) {
	assert.Error(t, validatePolicyConfig(PolicyConfig{
		ReservedUsernames:   nil,
		MinPasswordStrength: 3,
	}))
	assert.Error(t, validatePolicyConfig(PolicyConfig{
		ReservedUsernames:   []string{"admin"},
		MinPasswordStrength: 0,
	}))
	assert.Error(t, validatePolicyConfig(PolicyConfig{
		ReservedUsernames:   []string{"admin"},
		MinPasswordStrength: 6,
	}))
}

func TestStaticPolicyConfigHolder(t *testing.T) {
	cfg := PolicyConfig{
		ReservedUsernames:   []string{"admin"},
		MinPasswordStrength: 4,
	}

	holder := NewStaticPolicyConfigHolder(cfg)
	assert.Equal(t, cfg, holder.Get())
}
