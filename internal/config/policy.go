package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// PolicyConfig controls the registration rules that operators tune without a
// redeploy: the reserved local-part list and the minimum password strength.
type PolicyConfig struct {
	ReservedUsernames   []string `mapstructure:"reservedUsernames"`
	MinPasswordStrength int      `mapstructure:"minPasswordStrength"`
}

func DefaultPolicyConfig() PolicyConfig {
	return PolicyConfig{
		ReservedUsernames: []string{
			"admin", "administrator", "root", "postmaster",
			"webmaster", "hostmaster", "noreply", "no-reply",
		},
		MinPasswordStrength: 3,
	}
}

type PolicyConfigHolder struct {
	current atomic.Value // holds PolicyConfig
}

// NewPolicyConfigHolder reads policy.yml and keeps it hot-reloaded. A missing
// file falls back to the built-in defaults.
func NewPolicyConfigHolder() (*PolicyConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("policy")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/mailportal/config")
	v.AddConfigPath("/etc/mailportal")
	v.AddConfigPath(".")

	v.SetEnvPrefix("MAILPORTAL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		defaults := DefaultPolicyConfig()
		v.SetDefault("registration.reservedUsernames", defaults.ReservedUsernames)
		v.SetDefault("registration.minPasswordStrength", defaults.MinPasswordStrength)
	}

	var cfg PolicyConfig
	if err := v.UnmarshalKey("registration", &cfg); err != nil {
		return nil, err
	}
	if err := validatePolicyConfig(cfg); err != nil {
		return nil, err
	}

	holder := &PolicyConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated PolicyConfig
		if err := v.UnmarshalKey("registration", &updated); err != nil {
			log.Printf("[policy-config] reload failed: %v", err)
			return
		}
		if err := validatePolicyConfig(updated); err != nil {
			log.Printf("[policy-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[policy-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// NewStaticPolicyConfigHolder wraps a fixed config with no file watching.
func NewStaticPolicyConfigHolder(cfg PolicyConfig) *PolicyConfigHolder {
	holder := &PolicyConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func (h *PolicyConfigHolder) Get() PolicyConfig {
	return h.current.Load().(PolicyConfig)
}

func validatePolicyConfig(cfg PolicyConfig) error {
	if len(cfg.ReservedUsernames) == 0 {
		return errors.New("registration.reservedUsernames cannot be empty")
	}
	if cfg.MinPasswordStrength < 1 || cfg.MinPasswordStrength > 5 {
		return errors.New("registration.minPasswordStrength must be between 1 and 5")
	}
	return nil
}
