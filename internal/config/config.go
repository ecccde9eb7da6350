package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Submission policies for new reservations.
const (
	SubmissionPending   = "pending"
	SubmissionImmediate = "immediate"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	DBMaxConns        int
	DBMinConns        int
	DBMaxConnIdle     time.Duration
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	LogLevel  string
	LogFormat string

	MigrationsPath string
	AutoMigrate    bool

	// RefreshSchedule is a cron spec for the background status sweep. Empty disables it.
	RefreshSchedule        string
	SubmissionPolicy       string
	DefaultRejectionReason string

	IoTDeviceKey string

	RedisAddr     string
	RedisUser     string
	RedisPassword string
	RedisDB       int

	AdminUsername string
	AdminPassword string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from the current process environment only.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	var err error

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
	}
	cfg.DBMinConns, err = getEnvAsInt("DB_MIN_CONNS", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MIN_CONNS: %w", err)
	}
	cfg.DBMaxConnIdle, err = time.ParseDuration(getEnv("DB_MAX_CONN_IDLE_TIME", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_MAX_CONN_IDLE_TIME: %w", err)
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	cfg.JWTAccessTokenTTL, err = time.ParseDuration(getEnv("JWT_ACCESS_TOKEN_TTL", "8h"))
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	cfg.MigrationsPath = getEnv("MIGRATIONS_PATH", "file://migrations")
	cfg.AutoMigrate, err = getEnvAsBool("AUTO_MIGRATE", true)
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_MIGRATE: %w", err)
	}

	cfg.RefreshSchedule = strings.TrimSpace(getEnv("REFRESH_SCHEDULE", "@every 1m"))

	cfg.SubmissionPolicy = strings.ToLower(getEnv("SUBMISSION_POLICY", SubmissionPending))
	if cfg.SubmissionPolicy != SubmissionPending && cfg.SubmissionPolicy != SubmissionImmediate {
		return nil, fmt.Errorf("invalid SUBMISSION_POLICY %q: want %q or %q",
			cfg.SubmissionPolicy, SubmissionPending, SubmissionImmediate)
	}

	cfg.DefaultRejectionReason = getEnv("DEFAULT_REJECTION_REASON", "Schedule conflict")

	// The pulse endpoint is open in dev when no key is set; production must set one.
	cfg.IoTDeviceKey = os.Getenv("IOT_DEVICE_KEY")
	if cfg.IsProduction && cfg.IoTDeviceKey == "" {
		return nil, fmt.Errorf("IOT_DEVICE_KEY is required when APP_ENV=%s", PROD_STRING)
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisUser = getEnv("REDIS_USER", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB, err = getEnvAsInt("REDIS_DB", 0)
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg.AdminUsername = getEnv("ADMIN_USERNAME", "")
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "")
	if (cfg.AdminUsername == "") != (cfg.AdminPassword == "") {
		return nil, fmt.Errorf("ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid bool: %w", key, valStr, err)
	}

	return val, nil
}
