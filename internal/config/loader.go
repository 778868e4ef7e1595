// Package config provides configuration loading and environment management
package config

import (
	"errors"
	"fmt"
	"log"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation failed for %s='%s': %s", e.Field, e.Value, e.Message)
}

// ValidationErrors represents multiple validation errors
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return ""
	}

	msg := "configuration validation errors:\n"
	for _, err := range ve {
		msg += fmt.Sprintf("  - %s\n", err.Error())
	}
	return msg
}

// Defaults for the core deployment variables
const (
	DefaultPort          = 3000
	DefaultEnvironment   = "development"
	DefaultDatabaseURI   = "mongodb://localhost:27017/drifti"
	DefaultAllowedOrigin = "http://localhost:3000"
)

var (
	integerVariables  = []string{"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_IDLE_TIMEOUT", "SHUTDOWN_TIMEOUT", "MAX_BODY_BYTES", "DB_MAX_RETRIES", "DB_MAX_POOL_SIZE", "RATE_LIMIT_REQUESTS"}
	durationVariables = []string{"DB_RETRY_DELAY", "DB_SERVER_SELECTION_TIMEOUT", "DB_SOCKET_TIMEOUT", "RATE_LIMIT_WINDOW"}
	boolVariables     = []string{"METRICS_ENABLED", "TRUST_PROXY"}
)

// ValidatePort validates that a port number is in valid range
func ValidatePort(envVar string) error {
	portStr := os.Getenv(envVar)
	if portStr == "" {
		return nil // skip validation if not set
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be a valid integer",
		}
	}

	if port < 1 || port > 65535 {
		return ValidationError{
			Field:   envVar,
			Value:   portStr,
			Message: "must be between 1 and 65535",
		}
	}

	return nil
}

// ValidateInteger validates that a variable, when set, parses as an integer
func ValidateInteger(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseInt(value, 10, 64); err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be a valid integer"}
	}
	return nil
}

// ValidateDuration validates that a variable, when set, parses as a Go duration
func ValidateDuration(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := time.ParseDuration(value); err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be a valid duration (e.g. 5s, 1m)"}
	}
	return nil
}

// ValidateBool validates that a variable, when set, parses as a boolean
func ValidateBool(envVar string) error {
	value := os.Getenv(envVar)
	if value == "" {
		return nil
	}
	if _, err := strconv.ParseBool(value); err != nil {
		return ValidationError{Field: envVar, Value: value, Message: "must be a valid boolean"}
	}
	return nil
}

// ValidateLogLevel validates log level value
func ValidateLogLevel() error {
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		return nil
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[level] {
		return ValidationError{
			Field:   "LOG_LEVEL",
			Value:   level,
			Message: "must be one of: debug, info, warn, error",
		}
	}

	return nil
}

// ValidateAll performs comprehensive environment validation
func ValidateAll() error {
	var errs ValidationErrors

	collect := func(err error) {
		var validationErr ValidationError
		if errors.As(err, &validationErr) {
			errs = append(errs, validationErr)
		}
	}

	collect(ValidatePort("PORT"))
	for _, envVar := range integerVariables {
		collect(ValidateInteger(envVar))
	}
	for _, envVar := range durationVariables {
		collect(ValidateDuration(envVar))
	}
	for _, envVar := range boolVariables {
		collect(ValidateBool(envVar))
	}
	collect(ValidateLogLevel())

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Load loads and validates configuration from environment variables
func Load() (*Config, error) {
	// 1. Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	// 2. Reject malformed values before they are silently replaced by defaults
	if err := ValidateAll(); err != nil {
		return nil, fmt.Errorf("environment validation failed: %w", err)
	}

	// 3. Load configuration with defaults
	config := &Config{
		Server: ServerConfig{
			Port:         getEnvInt("PORT", DefaultPort),
			Host:         getEnv("APP_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 120),
			MaxBodyBytes: getEnvInt64("MAX_BODY_BYTES", 1<<20),
			TrustProxy:   getEnvBool("TRUST_PROXY", false),
		},
		Database: DatabaseConfig{
			URI:                    getEnv("MONGODB_URI", DefaultDatabaseURI),
			MaxRetries:             getEnvInt("DB_MAX_RETRIES", 5),
			RetryDelay:             getEnvDuration("DB_RETRY_DELAY", 5*time.Second),
			ServerSelectionTimeout: getEnvDuration("DB_SERVER_SELECTION_TIMEOUT", 5*time.Second),
			SocketTimeout:          getEnvDuration("DB_SOCKET_TIMEOUT", 45*time.Second),
			MaxPoolSize:            getEnvInt("DB_MAX_POOL_SIZE", 10),
		},
		Security: SecurityConfig{
			AllowedOrigin: getEnv("FRONTEND_URL", DefaultAllowedOrigin),
			JWTSecret:     getEnv("JWT_SECRET", PlaceholderJWTSecret),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
			Dir:    getEnv("LOG_DIR", ""),
		},
		Application: ApplicationConfig{
			Environment:       getEnv("NODE_ENV", DefaultEnvironment),
			ShutdownTimeout:   getEnvInt("SHUTDOWN_TIMEOUT", 30),
			RateLimitRequests: getEnvInt("RATE_LIMIT_REQUESTS", 100),
			RateLimitWindow:   getEnv("RATE_LIMIT_WINDOW", "1m"),
			MetricsEnabled:    getEnvBool("METRICS_ENABLED", false),
		},
	}

	// 4. Post-load configuration validation
	if err := Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func joinHostPort(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets environment variable as integer with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets environment variable as boolean with default value
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets environment variable as duration with default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
