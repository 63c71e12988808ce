package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
// Driver selects the storage backend; URL is a file path or DSN for sqlite
// and a connection URL for postgres.
type DatabaseConfig struct {
	Driver      string `mapstructure:"driver" validate:"required,oneof=sqlite postgres"`
	URL         string `mapstructure:"url" validate:"required"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	PasswordPepper       string `mapstructure:"password_pepper"`
	HashIterations       int    `mapstructure:"hash_iterations" validate:"gte=0"`
}
