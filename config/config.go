// Package config provides centralized configuration for the portal backend
// with validation and clear documentation for SRE/DevOps teams.
//
// Configuration Sources (12-factor app principles):
//  1. Default values (hardcoded)
//  2. .env file (local development via godotenv)
//  3. Environment variables (runtime)
//
// Usage:
//
//	cfg := config.Load()
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the portal backend.
type Config struct {
	Service   ServiceConfig   // Service-specific settings (port, name, version)
	Tracing   TracingConfig   // OpenTelemetry configuration
	Profiling ProfilingConfig // Pyroscope continuous profiling
	Logging   LoggingConfig   // Structured logging (Zap)
	Metrics   MetricsConfig   // Prometheus metrics
	Database  DatabaseConfig  // Optional PostgreSQL store; in-memory when unset
	Auth      AuthConfig      // Bearer token signing
	// ShutdownTimeout is the graceful shutdown timeout in seconds - from SHUTDOWN_TIMEOUT env (default: 10).
	ShutdownTimeout int
	// ReadinessDrainDelay: delay after failing readiness before shutting down the
	// HTTP server, giving routing time to stop sending new traffic.
	// From READINESS_DRAIN_DELAY env (default: 5s, max: 30s).
	ReadinessDrainDelay int
}

// ServiceConfig defines basic service configuration.
type ServiceConfig struct {
	Name    string // Service name - from SERVICE_NAME env (default: "portal")
	Port    string // HTTP server port (default: "8080") - from PORT env
	Version string // Service version (optional) - from VERSION env
	Env     string // Environment (dev/staging/production) - from ENV env
}

// TracingConfig defines OpenTelemetry tracing configuration.
type TracingConfig struct {
	Enabled            bool    // Enable tracing (default: true) - from TRACING_ENABLED env
	Endpoint           string  // OTel Collector endpoint - from OTEL_COLLECTOR_ENDPOINT env
	SampleRate         float64 // Trace sampling rate (0.0-1.0) - from OTEL_SAMPLE_RATE env
	ServiceName        string  // Service name for traces (defaults to ServiceConfig.Name)
	MaxExportBatchSize int     // Max spans per batch (default: 512)
}

// ProfilingConfig defines Pyroscope continuous profiling configuration.
type ProfilingConfig struct {
	Enabled     bool   // Enable profiling (default: false) - from PROFILING_ENABLED env
	Endpoint    string // Pyroscope endpoint - from PYROSCOPE_ENDPOINT env
	ServiceName string // Service name for profiling (defaults to ServiceConfig.Name)
}

// LoggingConfig defines structured logging configuration.
type LoggingConfig struct {
	Level  string // Log level: debug, info, warn, error (default: "info") - from LOG_LEVEL env
	Format string // Log format: json, console (default: "json") - from LOG_FORMAT env
}

// MetricsConfig defines Prometheus metrics configuration.
type MetricsConfig struct {
	Enabled bool   // Enable metrics (default: true) - from METRICS_ENABLED env
	Path    string // Metrics endpoint path (default: "/metrics") - from METRICS_PATH env
}

// DatabaseConfig defines optional PostgreSQL configuration. When Host is
// empty the portal runs on the in-memory store.
type DatabaseConfig struct {
	Host           string // Database host - from DB_HOST env
	Port           string // Database port - from DB_PORT env (default: "5432")
	Name           string // Database name - from DB_NAME env
	User           string // Database user - from DB_USER env
	Password       string // Database password - from DB_PASSWORD env
	SSLMode        string // SSL mode - from DB_SSLMODE env (default: "disable")
	MaxConnections int    // Max connections - from DB_POOL_MAX_CONNECTIONS env (default: 25)
}

// AuthConfig defines bearer token signing configuration.
type AuthConfig struct {
	JWTSecret string        // HS256 signing secret - from JWT_SECRET env (required)
	JWTIssuer string        // Token issuer claim - from JWT_ISSUER env (default: "logistics-portal")
	JWTTTL    time.Duration // Token lifetime - from JWT_TTL_MINUTES env (default: 60m)
}

// Enabled reports whether a PostgreSQL store is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.Host != ""
}

// BuildDSN constructs a PostgreSQL connection string from config.
func (c *DatabaseConfig) BuildDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s&pool_max_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConnections,
	)
}

// Load reads configuration from environment variables with defaults.
// It automatically loads a .env file if present (for local development).
//
// Priority: .env file < environment variables.
func Load() *Config {
	// godotenv.Load() fails silently if .env doesn't exist - fine in production
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "portal"),
			Port:    getEnv("PORT", "8080"),
			Version: getEnv("VERSION", "dev"),
			Env:     getEnv("ENV", "development"),
		},
		Tracing: TracingConfig{
			Enabled:            getEnvBool("TRACING_ENABLED", true),
			Endpoint:           getEnv("OTEL_COLLECTOR_ENDPOINT", "otel-collector.monitoring.svc.cluster.local:4318"),
			SampleRate:         getEnvFloat("OTEL_SAMPLE_RATE", 0.1),
			ServiceName:        getEnv("SERVICE_NAME", "portal"),
			MaxExportBatchSize: getEnvInt("OTEL_BATCH_SIZE", 512),
		},
		Profiling: ProfilingConfig{
			Enabled:     getEnvBool("PROFILING_ENABLED", false),
			Endpoint:    getEnv("PYROSCOPE_ENDPOINT", "http://pyroscope.monitoring.svc.cluster.local:4040"),
			ServiceName: getEnv("SERVICE_NAME", "portal"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Metrics: MetricsConfig{
			Enabled: getEnvBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
		Database: DatabaseConfig{
			Host:           getEnv("DB_HOST", ""),
			Port:           getEnv("DB_PORT", "5432"),
			Name:           getEnv("DB_NAME", ""),
			User:           getEnv("DB_USER", ""),
			Password:       getEnv("DB_PASSWORD", ""),
			SSLMode:        getEnv("DB_SSLMODE", "disable"),
			MaxConnections: getEnvInt("DB_POOL_MAX_CONNECTIONS", 25),
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", ""),
			JWTIssuer: getEnv("JWT_ISSUER", "logistics-portal"),
			JWTTTL:    time.Duration(getEnvInt("JWT_TTL_MINUTES", 60)) * time.Minute,
		},
		ShutdownTimeout:     getEnvDurationSeconds("SHUTDOWN_TIMEOUT", 10, 60),
		ReadinessDrainDelay: getEnvDurationSeconds("READINESS_DRAIN_DELAY", 5, 30),
	}
}

// Validate performs comprehensive validation of all configuration fields.
// Returns detailed error messages for troubleshooting.
func (c *Config) Validate() error {
	var errors []string

	if c.Service.Port == "" {
		errors = append(errors, "PORT is required (e.g. '8080')")
	}
	if _, err := strconv.Atoi(c.Service.Port); err != nil {
		errors = append(errors, fmt.Sprintf("PORT must be a valid number, got: %s", c.Service.Port))
	}
	validEnvs := []string{"development", "dev", "staging", "stage", "production", "prod"}
	if !contains(validEnvs, c.Service.Env) {
		errors = append(errors, fmt.Sprintf("ENV must be one of %v, got: %s", validEnvs, c.Service.Env))
	}

	if c.Tracing.Enabled {
		if c.Tracing.Endpoint == "" {
			errors = append(errors, "OTEL_COLLECTOR_ENDPOINT is required when tracing is enabled")
		}
		if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1.0 {
			errors = append(errors, fmt.Sprintf("OTEL_SAMPLE_RATE must be between 0.0 and 1.0, got: %.2f", c.Tracing.SampleRate))
		}
	}

	if c.Profiling.Enabled && c.Profiling.Endpoint == "" {
		errors = append(errors, "PYROSCOPE_ENDPOINT is required when profiling is enabled")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, strings.ToLower(c.Logging.Level)) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of %v, got: %s", validLogLevels, c.Logging.Level))
	}
	validLogFormats := []string{"json", "console"}
	if !contains(validLogFormats, strings.ToLower(c.Logging.Format)) {
		errors = append(errors, fmt.Sprintf("LOG_FORMAT must be one of %v, got: %s", validLogFormats, c.Logging.Format))
	}

	if c.Auth.JWTSecret == "" {
		errors = append(errors, "JWT_SECRET is required")
	}
	if c.Auth.JWTTTL <= 0 {
		errors = append(errors, "JWT_TTL_MINUTES must be positive")
	}

	if c.Database.Enabled() {
		if c.Database.Name == "" {
			errors = append(errors, "DB_NAME is required when DB_HOST is set")
		}
		if c.Database.User == "" {
			errors = append(errors, "DB_USER is required when DB_HOST is set")
		}
		if c.Database.Password == "" {
			errors = append(errors, "DB_PASSWORD is required when DB_HOST is set")
		}
		if c.Database.Port != "" {
			if _, err := strconv.Atoi(c.Database.Port); err != nil {
				errors = append(errors, fmt.Sprintf("DB_PORT must be a valid number, got: %s", c.Database.Port))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in a development environment.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "development" || env == "dev"
}

// IsProduction returns true if running in a production environment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Service.Env)
	return env == "production" || env == "prod"
}

// GetShutdownTimeoutDuration returns the shutdown timeout as time.Duration.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	return time.Duration(c.ShutdownTimeout) * time.Second
}

// GetReadinessDrainDelayDuration returns the readiness drain delay as time.Duration.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	return time.Duration(c.ReadinessDrainDelay) * time.Second
}

// Helper functions for environment variable parsing

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool reads a boolean environment variable with a default fallback.
// Accepts: "true", "1", "yes" for true | "false", "0", "no" for false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	value = strings.ToLower(value)
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt reads an integer environment variable with a default fallback.
// Returns the default if parsing fails.
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat reads a float64 environment variable with a default fallback.
// Returns the default if parsing fails.
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvDurationSeconds reads a Go-duration env var (e.g. "10s", "1m") and
// returns whole seconds, falling back to the default on invalid or
// out-of-range values (silent fallback for startup safety).
func getEnvDurationSeconds(key string, defaultValueSeconds, maxSeconds int) int {
	timeoutStr := os.Getenv(key)
	if timeoutStr == "" {
		return defaultValueSeconds
	}

	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return defaultValueSeconds
	}

	seconds := int(timeout.Seconds())
	if seconds <= 0 || seconds > maxSeconds {
		return defaultValueSeconds
	}

	return seconds
}

// contains checks if a string slice contains a specific value.
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
