// Package config provides configuration types and structures for the driftiAPI service.
package config

import "time"

// PlaceholderJWTSecret is the fallback signing secret. Any real deployment must override it.
const PlaceholderJWTSecret = "your-secret-key"

// Config represents the application configuration
type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Security    SecurityConfig
	Logging     LoggingConfig
	Application ApplicationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int    // Server port number (PORT)
	Host         string // Server host address
	ReadTimeout  int    // Read timeout in seconds
	WriteTimeout int    // Write timeout in seconds
	IdleTimeout  int    // Idle timeout in seconds
	MaxBodyBytes int64  // Request body size cap
	TrustProxy   bool   // Take the client address from X-Forwarded-For / X-Real-IP
}

// DatabaseConfig holds database connection and retry configuration
type DatabaseConfig struct {
	URI                    string        // Connection string (MONGODB_URI)
	MaxRetries             int           // Connect attempts before giving up
	RetryDelay             time.Duration // Fixed wait between attempts
	ServerSelectionTimeout time.Duration // Bound on a single connect attempt
	SocketTimeout          time.Duration
	MaxPoolSize            int
}

// SecurityConfig holds cross-origin and token signing configuration
type SecurityConfig struct {
	AllowedOrigin string // CORS origin (FRONTEND_URL)
	JWTSecret     string // Signing secret (JWT_SECRET)
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string // Log level (debug, info, warn, error)
	Format string // Log format (json, text)
	Dir    string // Optional directory for a log file sink
}

// ApplicationConfig holds application-specific configuration
type ApplicationConfig struct {
	Environment       string // Environment (NODE_ENV)
	ShutdownTimeout   int    // Shutdown timeout in seconds
	RateLimitRequests int    // Rate limit requests per window
	RateLimitWindow   string // Rate limit time window
	MetricsEnabled    bool   // Expose /metrics
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return joinHostPort(c.Server.Host, c.Server.Port)
}

// UsesPlaceholderSecret reports whether the signing secret was never overridden
func (c *Config) UsesPlaceholderSecret() bool {
	return c.Security.JWTSecret == PlaceholderJWTSecret
}

// IsDevelopment reports whether the service runs in the development environment
func (c *Config) IsDevelopment() bool {
	return c.Application.Environment == "development"
}

// RateLimitPerSecond converts the request budget per window into a per-second rate
func (c *Config) RateLimitPerSecond() float64 {
	window, err := time.ParseDuration(c.Application.RateLimitWindow)
	if err != nil || window <= 0 {
		return 0
	}
	return float64(c.Application.RateLimitRequests) / window.Seconds()
}
