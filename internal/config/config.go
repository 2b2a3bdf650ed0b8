package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database configuration
	Database DatabaseConfig

	// Server configuration
	Server ServerConfig

	// Auth provider configuration
	Auth AuthConfig

	// Maps service configuration
	Maps MapsConfig

	// Distance cache configuration
	Distance DistanceConfig

	// Booking event broker
	Events EventsConfig

	// CORS configuration
	CORS CORSConfig

	// Logging configuration
	Logging LoggingConfig

	// SeedDemoData inserts the demo clubs at startup when the tables are empty
	SeedDemoData bool
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL      string // Full PostgreSQL URL
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port int
	Host string
}

// Addr returns the listen address for http.Server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AuthConfig holds the auth provider's token secret and session lifetime
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// MapsConfig holds the mapping service credentials
type MapsConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// DistanceConfig tunes the distance resolution pass
type DistanceConfig struct {
	RedisAddr     string // empty selects the in-process cache
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	Concurrency   int
}

// EventsConfig holds the RabbitMQ settings; empty URL disables publishing
type EventsConfig struct {
	RabbitURL string
	Exchange  string
}

// CORSConfig holds CORS settings
type CORSConfig struct {
	AllowedOrigins []string
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// Load reads configuration from config/local.env (if present) and the environment
func Load() (*Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := &Config{}

	if err := cfg.LoadDatabase(); err != nil {
		return nil, fmt.Errorf("load database config: %w", err)
	}

	if err := cfg.loadServer(); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}

	if err := cfg.loadAuth(); err != nil {
		return nil, fmt.Errorf("load auth config: %w", err)
	}

	if err := cfg.loadMaps(); err != nil {
		return nil, fmt.Errorf("load maps config: %w", err)
	}

	if err := cfg.loadDistance(); err != nil {
		return nil, fmt.Errorf("load distance config: %w", err)
	}

	cfg.loadEvents()
	cfg.loadCORS()
	cfg.loadLogging()
	cfg.SeedDemoData = strings.EqualFold(os.Getenv("SEED_DEMO_DATA"), "true")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// LoadDatabase reads DATABASE_URL, falling back to the DB_* parts.
func (c *Config) LoadDatabase() error {
	c.Database.URL = os.Getenv("DATABASE_URL")

	// If not present, construct from individual parameters
	if c.Database.URL == "" {
		c.Database.Host = getEnvOrDefault("DB_HOST", "localhost")
		c.Database.User = os.Getenv("DB_USER")
		c.Database.Password = os.Getenv("DB_PASSWORD")
		c.Database.Name = os.Getenv("DB_NAME")
		c.Database.SSLMode = getEnvOrDefault("DB_SSLMODE", "disable")

		port, err := strconv.Atoi(getEnvOrDefault("DB_PORT", "5432"))
		if err != nil {
			return fmt.Errorf("invalid DB_PORT: %w", err)
		}
		c.Database.Port = port

		if c.Database.Host != "" && c.Database.User != "" && c.Database.Name != "" {
			c.Database.URL = fmt.Sprintf(
				"postgresql://%s:%s@%s:%d/%s?sslmode=%s",
				c.Database.User,
				c.Database.Password,
				c.Database.Host,
				c.Database.Port,
				c.Database.Name,
				c.Database.SSLMode,
			)
		}
	}

	return nil
}

func (c *Config) loadServer() error {
	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Server.Port = port
	c.Server.Host = getEnvOrDefault("HOST", "0.0.0.0")
	return nil
}

func (c *Config) loadAuth() error {
	c.Auth.JWTSecret = os.Getenv("AUTH_JWT_SECRET")

	ttl, err := time.ParseDuration(getEnvOrDefault("SESSION_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	c.Auth.SessionTTL = ttl
	return nil
}

func (c *Config) loadMaps() error {
	c.Maps.APIKey = os.Getenv("MAPS_API_KEY")
	c.Maps.BaseURL = getEnvOrDefault("MAPS_BASE_URL", "https://maps.googleapis.com/maps/api")

	timeout, err := time.ParseDuration(getEnvOrDefault("MAPS_TIMEOUT", "10s"))
	if err != nil {
		return fmt.Errorf("invalid MAPS_TIMEOUT: %w", err)
	}
	c.Maps.Timeout = timeout
	return nil
}

func (c *Config) loadDistance() error {
	c.Distance.RedisAddr = os.Getenv("REDIS_ADDR")
	c.Distance.RedisPassword = os.Getenv("REDIS_PASSWORD")

	db, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	c.Distance.RedisDB = db

	ttl, err := time.ParseDuration(getEnvOrDefault("DISTANCE_CACHE_TTL", "24h"))
	if err != nil {
		return fmt.Errorf("invalid DISTANCE_CACHE_TTL: %w", err)
	}
	c.Distance.CacheTTL = ttl

	concurrency, err := strconv.Atoi(getEnvOrDefault("DISTANCE_CONCURRENCY", "4"))
	if err != nil {
		return fmt.Errorf("invalid DISTANCE_CONCURRENCY: %w", err)
	}
	c.Distance.Concurrency = concurrency
	return nil
}

func (c *Config) loadEvents() {
	c.Events.RabbitURL = os.Getenv("RABBIT_URL")
	c.Events.Exchange = getEnvOrDefault("BOOKING_EXCHANGE", "booking.exchange")
}

func (c *Config) loadCORS() {
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv != "" {
		var origins []string
		for _, origin := range strings.Split(originsEnv, ",") {
			if trimmed := strings.TrimSpace(origin); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
		c.CORS.AllowedOrigins = origins
	} else {
		// Default for local development
		c.CORS.AllowedOrigins = []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}
	}
}

func (c *Config) loadLogging() {
	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", "info")
	c.Logging.Format = getEnvOrDefault("LOG_FORMAT", "json")
}

// Validate checks that all required configuration is present and valid
func (c *Config) Validate() error {
	var errors []string

	if c.Database.URL == "" {
		errors = append(errors, "DATABASE_URL is required (or DB_HOST, DB_USER, DB_NAME)")
	}

	if c.Maps.APIKey == "" {
		errors = append(errors, "MAPS_API_KEY is required")
	}

	if len(c.Auth.JWTSecret) < 16 {
		errors = append(errors, "AUTH_JWT_SECRET is required and must be at least 16 characters")
	}
	if c.Auth.SessionTTL <= 0 {
		errors = append(errors, "SESSION_TTL must be positive")
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errors = append(errors, "PORT must be between 1 and 65535")
	}

	if c.Distance.Concurrency < 1 {
		errors = append(errors, "DISTANCE_CONCURRENCY must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		errors = append(errors, "LOG_LEVEL must be one of: debug, info, warn, error")
	}

	validLogFormats := map[string]bool{"json": true, "text": true}
	if !validLogFormats[c.Logging.Format] {
		errors = append(errors, "LOG_FORMAT must be one of: json, text")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(os.Getenv("ENV"))
	return env == "" || env == "development"
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
