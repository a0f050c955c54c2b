package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string

	HTTPAddr string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int

	// MailDomain is the domain mailboxes are provisioned under. Exactly one
	// virtual_domains row is expected for it.
	MailDomain   string
	MailHostname string
	PortalDomain string

	Provisioner ProvisionerConfig
	RateLimit   RateLimitConfig
}

// ProvisionerConfig points at the mail backend that creates physical
// mailboxes. An empty Host disables provisioning entirely.
type ProvisionerConfig struct {
	Host           string
	Port           string
	APIKey         string
	TimeoutSeconds int
}

func (p ProvisionerConfig) Enabled() bool {
	return strings.TrimSpace(p.Host) != ""
}

// RateLimitConfig controls redis-backed throttling of the public endpoints.
type RateLimitConfig struct {
	Enabled       bool
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RegisterRate       float64
	RegisterBurst      int
	CheckUsernameRate  float64
	CheckUsernameBurst int
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "mailportal"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),

		HTTPAddr: getenv("HTTP_ADDR", ":8080"),

		OTLPEndpoint: getenv("OTLP_ENDPOINT", "localhost:4317"),

		DBType:            getenv("DATABASE_TYPE", "mysql"),
		DBHost:            getenv("DATABASE_HOST", "127.0.0.1"),
		DBPort:            getenv("DATABASE_PORT", "3306"),
		DBName:            getenv("DATABASE_NAME", "mailserver"),
		DBUser:            getenv("DATABASE_USER", "mailuser"),
		DBPassword:        getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:         getenv("DATABASE_SSLMODE", "disable"),
		DBMaxIdleConn:     getenvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     getenvInt("DATABASE_MAX_OPEN_CONN", 25),
		DBConnMaxLifetime: getenvInt("DATABASE_CONN_MAX_LIFETIME", 3600),

		MailDomain:   getenv("DOMAIN", "aurafarming.co"),
		MailHostname: getenv("MAIL_DOMAIN", "mail.aurafarming.co"),
		PortalDomain: getenv("PORTAL_DOMAIN", "portal.aurafarming.co"),

		Provisioner: ProvisionerConfig{
			Host:           strings.TrimSpace(getenv("BACKEND_HOST", "")),
			Port:           getenv("BACKEND_PORT", "3001"),
			APIKey:         strings.TrimSpace(getenv("BACKEND_API_KEY", "")),
			TimeoutSeconds: getenvInt("PROVISION_TIMEOUT_SECONDS", 5),
		},

		RateLimit: RateLimitConfig{
			Enabled:            getenvBool("RATE_LIMIT_ENABLED", false),
			RedisAddr:          strings.TrimSpace(getenv("RATE_LIMIT_REDIS_ADDR", "")),
			RedisPassword:      getenv("RATE_LIMIT_REDIS_PASSWORD", ""),
			RedisDB:            getenvInt("RATE_LIMIT_REDIS_DB", 0),
			RegisterRate:       getenvFloat("RATE_LIMIT_REGISTER_RATE", 1),
			RegisterBurst:      getenvInt("RATE_LIMIT_REGISTER_BURST", 5),
			CheckUsernameRate:  getenvFloat("RATE_LIMIT_CHECK_RATE", 5),
			CheckUsernameBurst: getenvInt("RATE_LIMIT_CHECK_BURST", 20),
		},
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return def
	}
	return parsed
}

func getenvBool(key string, def bool) bool {
	value := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if value == "" {
		return def
	}
	switch value {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	default:
		return def
	}
}

func getenvFloat(key string, def float64) float64 {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return def
	}
	return parsed
}
