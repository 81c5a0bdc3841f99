package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/Interreferences/NoWayDpl-back/internal/constants"
)

// Config holds all application configuration
type Config struct {
	Port          string
	DBDriver      string
	DBPath        string
	DatabaseURL   string
	PGHost        string
	PGPort        string
	PGUser        string
	PGPassword    string
	PGDatabase    string
	StaticDir     string
	MaxUploadMB   int
	BcryptCost    int
	AuthRateLimit float64
	AuthRateBurst int
	LogLevel      string
	LogFormat     string
}

// Load loads configuration from environment variables with defaults.
// A .env file in the working directory is read first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", constants.DefaultPort),
		DBDriver:      getEnv("DB_DRIVER", constants.DefaultDBDriver),
		DBPath:        getEnv("DB_PATH", constants.DefaultDBPath),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		PGHost:        getEnv("POSTGRES_HOST", constants.DefaultPostgresHost),
		PGPort:        getEnv("POSTGRES_PORT", constants.DefaultPostgresPort),
		PGUser:        getEnv("POSTGRES_USER", constants.DefaultPostgresUser),
		PGPassword:    getEnv("POSTGRES_PASSWORD", constants.DefaultPostgresPassword),
		PGDatabase:    getEnv("POSTGRES_DB", constants.DefaultPostgresDB),
		StaticDir:     getEnv("STATIC_DIR", constants.DefaultStaticDir),
		MaxUploadMB:   getEnvInt("MAX_UPLOAD_MB", constants.DefaultMaxUploadMB),
		BcryptCost:    getEnvInt("BCRYPT_COST", constants.DefaultBcryptCost),
		AuthRateLimit: getEnvFloat("AUTH_RATE_LIMIT", constants.DefaultAuthRateLimit),
		AuthRateBurst: getEnvInt("AUTH_RATE_BURST", constants.DefaultAuthRateBurst),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
	}
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == constants.DriverPostgres {
		if c.DatabaseURL != "" {
			return c.DatabaseURL
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.PGUser, c.PGPassword),
			Host:     net.JoinHostPort(c.PGHost, c.PGPort),
			Path:     "/" + c.PGDatabase,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	}
	return c.DBPath
}

// MaxUploadBytes returns the multipart size limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errors []string

	// Validate Port
	if c.Port == "" {
		errors = append(errors, "PORT cannot be empty")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("PORT must be between 1 and 65535, got: %d", port))
		}
	}

	// Validate database settings
	switch c.DBDriver {
	case constants.DriverSQLite:
		if c.DBPath == "" {
			errors = append(errors, "DB_PATH cannot be empty")
		}
	case constants.DriverPostgres:
		if c.DatabaseURL == "" && (c.PGHost == "" || c.PGDatabase == "") {
			errors = append(errors, "POSTGRES_HOST and POSTGRES_DB are required when DATABASE_URL is empty")
		}
		if c.DatabaseURL != "" {
			if _, err := url.Parse(c.DatabaseURL); err != nil {
				errors = append(errors, fmt.Sprintf("DATABASE_URL is not a valid URL: %s", c.DatabaseURL))
			}
		}
	default:
		errors = append(errors, fmt.Sprintf("DB_DRIVER must be one of: sqlite, postgres, got: %s", c.DBDriver))
	}

	if c.StaticDir == "" {
		errors = append(errors, "STATIC_DIR cannot be empty")
	}

	if c.MaxUploadMB < 1 {
		errors = append(errors, fmt.Sprintf("MAX_UPLOAD_MB must be positive, got: %d", c.MaxUploadMB))
	}

	// bcrypt accepts costs 4..31
	if c.BcryptCost < 4 || c.BcryptCost > 31 {
		errors = append(errors, fmt.Sprintf("BCRYPT_COST must be between 4 and 31, got: %d", c.BcryptCost))
	}

	if c.AuthRateLimit <= 0 {
		errors = append(errors, fmt.Sprintf("AUTH_RATE_LIMIT must be positive, got: %g", c.AuthRateLimit))
	}
	if c.AuthRateBurst < 1 {
		errors = append(errors, fmt.Sprintf("AUTH_RATE_BURST must be at least 1, got: %d", c.AuthRateBurst))
	}

	// Validate LogLevel
	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", c.LogLevel))
	}

	// Validate LogFormat
	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[c.LogFormat] {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", c.LogFormat))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt parses an integer variable. Unparseable values yield -1 so Validate reports them.
func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return -1
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return -1
	}
	return f
}
