package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains optional bootstrap credentials. When both fields are
// set, the server ensures a user with these credentials exists at startup
// so a fresh deployment can authenticate against the write endpoints.
type AuthConfig struct {
	SeedEmail    string `mapstructure:"seed_email" validate:"omitempty,email"`
	SeedPassword string `mapstructure:"seed_password" validate:"omitempty,min=12,max=72"`
}

// RedisConfig contains the response-cache settings. Addr may be empty to
// run without a cache; list queries then always hit the database.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	CacheTTL time.Duration `mapstructure:"cache_ttl" validate:"required,gt=0"`
}
