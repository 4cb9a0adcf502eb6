package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	App       AppConfig
	RateLimit RateLimitConfig
	LogLevel  string
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret    string
	ExpiresIn int // seconds
}

// AppConfig holds domain settings
type AppConfig struct {
	Environment     string
	TimeZone        string // IANA name; calendar days are cut in this zone
	DeleteBatchSize int
	SnowflakeNode   int64

	location *time.Location
}

// RateLimitConfig holds the public verification limits
type RateLimitConfig struct {
	Requests       int
	WindowSeconds  int
	TrustedProxies []string
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// setDefaults sets default values for configuration. Every key gets one so
// that AutomaticEnv can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "sorteos")
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 24*60*60) // 24 hours
	v.SetDefault("LogLevel", "info")
	v.SetDefault("App.Environment", "development")
	v.SetDefault("App.TimeZone", "America/Caracas")
	v.SetDefault("App.DeleteBatchSize", 100)
	v.SetDefault("App.SnowflakeNode", 1)
	v.SetDefault("RateLimit.Requests", 30)
	v.SetDefault("RateLimit.WindowSeconds", 60)
	v.SetDefault("RateLimit.TrustedProxies", []string{})
}

// Validate checks the settings the service cannot start without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWT.Secret) == "" {
		return errors.New("JWT.Secret is required")
	}
	loc, err := time.LoadLocation(c.App.TimeZone)
	if err != nil {
		return fmt.Errorf("invalid App.TimeZone %q: %w", c.App.TimeZone, err)
	}
	c.App.location = loc
	if c.App.DeleteBatchSize <= 0 {
		return errors.New("App.DeleteBatchSize must be positive")
	}
	if c.App.SnowflakeNode < 0 || c.App.SnowflakeNode > 1023 {
		return errors.New("App.SnowflakeNode must be between 0 and 1023")
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0 {
		return errors.New("RateLimit.Requests and RateLimit.WindowSeconds must be positive")
	}
	return nil
}

// Location returns the configured time zone, UTC before Validate has run
func (c *Config) Location() *time.Location {
	if c.App.location == nil {
		return time.UTC
	}
	return c.App.location
}

// RateWindow returns the rate limit window as a duration
func (c *Config) RateWindow() time.Duration {
	return time.Duration(c.RateLimit.WindowSeconds) * time.Second
}

// TokenTTL returns the lifetime of issued tokens
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpiresIn) * time.Second
}

// IsProduction reports whether the service runs in production mode
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, "production")
}
