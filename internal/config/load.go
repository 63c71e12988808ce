package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from environment variables and an optional
// config.yaml file. Environment variables take precedence over values from
// the config file. path names an explicit config file; when empty, Load
// falls back to config.yaml in the working directory if one exists. Returns
// a populated Config struct or an error if loading or validation fails.
func Load(path string) (*Config, error) {
	// A .env file is a development convenience; real environments set
	// variables directly, so a missing file is not an error.
	_ = godotenv.Load()

	v := viper.New()

	// Every key needs a default registered, otherwise AutomaticEnv will not
	// surface the matching environment variable during Unmarshal.
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.url", "tradegate.db")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.token_lifetime_minutes", 1440)
	v.SetDefault("auth.password_pepper", "")
	v.SetDefault("auth.hash_iterations", 0)

	if path != "" {
		// An explicitly named file must exist and parse.
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix("TRADEGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
