package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseDriver string // Optional: store driver (sqlite, redis) (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./accounts.db)
	RedisAddr      string // Optional: Redis address when the redis driver is selected
	RedisPassword  string // Optional: Redis password
	RedisDB        int    // Optional: Redis database number

	IDPMode    string // Optional: identity provider mode (http, local) (default: local)
	IDPBaseURL string // Required for http mode: provider base URL
	IDPAPIKey  string // Required for http mode: provider API key
	IDPSecret  string // Optional: token signing secret for local mode

	MailMode   string // Optional: mail delivery mode (api, smtp, log) (default: log)
	MailAPIURL string // Required for api mode: delivery endpoint
	MailAPIKey string // Required for api mode: bearer key
	MailFrom   string // Optional: sender address for api mode

	OTPTTL         time.Duration // Optional: passcode time-to-live (default: 10m)
	OTPMaxAttempts int           // Optional: wrong-code tolerance (default: 5)
	CallTimeout    time.Duration // Optional: per-external-call deadline (default: 15s)
	FlowTTL        time.Duration // Optional: unfinished flow retention (default: 30m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 5m)
}

func LoadConfig() Config {
	return Config{
		DatabaseDriver: getEnvOrDefault("ACCOUNT_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("ACCOUNT_DATABASE_FILE", "accounts.db"),
		RedisAddr:      getEnvOrDefault("ACCOUNT_REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("ACCOUNT_REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("ACCOUNT_REDIS_DB", 0),

		IDPMode:    getEnvOrDefault("ACCOUNT_IDP_MODE", "local"),
		IDPBaseURL: os.Getenv("ACCOUNT_IDP_BASE_URL"),
		IDPAPIKey:  os.Getenv("ACCOUNT_IDP_API_KEY"),
		IDPSecret:  getEnvOrDefault("ACCOUNT_IDP_SECRET", "dev-only-secret"),

		MailMode:   getEnvOrDefault("ACCOUNT_MAIL_MODE", "log"),
		MailAPIURL: os.Getenv("ACCOUNT_MAIL_API_URL"),
		MailAPIKey: os.Getenv("ACCOUNT_MAIL_API_KEY"),
		MailFrom:   getEnvOrDefault("ACCOUNT_MAIL_FROM", "no-reply@localhost"),

		OTPTTL:         getEnvDurationOrDefault("ACCOUNT_OTP_TTL", 10*time.Minute),
		OTPMaxAttempts: getEnvIntOrDefault("ACCOUNT_OTP_MAX_ATTEMPTS", 5),
		CallTimeout:    getEnvDurationOrDefault("ACCOUNT_CALL_TIMEOUT", 15*time.Second),
		FlowTTL:        getEnvDurationOrDefault("ACCOUNT_FLOW_TTL", 30*time.Minute),

		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 5*time.Minute),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Integer values are read as minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
