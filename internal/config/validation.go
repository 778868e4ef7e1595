package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate validates the configuration and returns any errors
func Validate(config *Config) error {
	var validationErrors []string

	if err := validateServerConfig(&config.Server); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	// The database URI itself is not checked here: an empty URI is a failed
	// connect attempt, not a configuration error.
	if err := validateDatabaseConfig(&config.Database); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateSecurityConfig(&config.Security); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateLoggingConfig(&config.Logging); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if err := validateApplicationConfig(&config.Application); err != nil {
		validationErrors = append(validationErrors, err.Error())
	}

	if len(validationErrors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(validationErrors, "; "))
	}

	return nil
}

// validateServerConfig validates server configuration
func validateServerConfig(server *ServerConfig) error {
	if server.Port <= 0 || server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}

	if server.ReadTimeout <= 0 {
		return errors.New("server read timeout must be positive")
	}

	if server.WriteTimeout <= 0 {
		return errors.New("server write timeout must be positive")
	}

	if server.IdleTimeout <= 0 {
		return errors.New("server idle timeout must be positive")
	}

	if server.MaxBodyBytes <= 0 {
		return errors.New("max body bytes must be positive")
	}

	return nil
}

// validateDatabaseConfig validates the retry and pool settings
func validateDatabaseConfig(db *DatabaseConfig) error {
	if db.MaxRetries < 1 {
		return errors.New("database max retries must be at least 1")
	}

	if db.RetryDelay < 0 {
		return errors.New("database retry delay must not be negative")
	}

	if db.ServerSelectionTimeout <= 0 {
		return errors.New("database server selection timeout must be positive")
	}

	if db.SocketTimeout <= 0 {
		return errors.New("database socket timeout must be positive")
	}

	if db.MaxPoolSize <= 0 {
		return errors.New("database max pool size must be positive")
	}

	return nil
}

// validateSecurityConfig validates the allowed origin
func validateSecurityConfig(security *SecurityConfig) error {
	origin, err := url.Parse(security.AllowedOrigin)
	if err != nil || origin.Scheme == "" || origin.Host == "" {
		return fmt.Errorf("invalid allowed origin: %q must be an absolute URL", security.AllowedOrigin)
	}

	if security.JWTSecret == "" {
		return errors.New("jwt secret must not be empty")
	}

	return nil
}

// validateLoggingConfig validates logging configuration
func validateLoggingConfig(logging *LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if logging.Level == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s, must be one of: %s", logging.Level, strings.Join(validLevels, ", "))
	}

	validFormats := []string{"json", "text"}
	validFormat := false
	for _, format := range validFormats {
		if logging.Format == format {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid log format: %s, must be one of: %s", logging.Format, strings.Join(validFormats, ", "))
	}

	return nil
}

// validateApplicationConfig validates application configuration
func validateApplicationConfig(app *ApplicationConfig) error {
	if app.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}

	if app.RateLimitRequests <= 0 {
		return errors.New("rate limit requests must be positive")
	}

	if app.RateLimitWindow == "" {
		return errors.New("rate limit window is required")
	}

	return nil
}
