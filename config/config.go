package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/edgectl/edgectl/api"
)

// Load loads the configuration from file. A missing config file is not an
// error: every setting has a default or an environment override, and the
// token may come from the keyring.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("EDGECTL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly for env overrides
	// to survive Unmarshal.
	v.BindEnv("platform.token", "EDGECTL_TOKEN")
	v.BindEnv("platform.base_url", "EDGECTL_BASE_URL")
	v.BindEnv("platform.environment", "EDGECTL_ENVIRONMENT")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".edgectl"))
		}

		v.AddConfigPath("/etc/edgectl/")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		if configPath != "" {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("platform.environment", string(api.EnvProduction))

	v.SetDefault("upload.concurrency", 10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Platform.BaseURL == "" {
		env := api.Environment(cfg.Platform.Environment)
		if !env.Valid() {
			return fmt.Errorf("invalid platform.environment: %s", cfg.Platform.Environment)
		}
	}

	if cfg.Upload.Concurrency <= 0 {
		return fmt.Errorf("upload.concurrency must be positive")
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// ResolveBaseURL returns the origin API calls should target: the explicit
// override when set, otherwise the fixed origin of the configured
// environment.
func (c *Config) ResolveBaseURL() (string, error) {
	if c.Platform.BaseURL != "" {
		return c.Platform.BaseURL, nil
	}
	return api.Environment(c.Platform.Environment).BaseURL()
}

// ResolveToken returns the credential to attach to API calls: the config
// or environment token when set, otherwise the keyring entry. An empty
// result means no credential is available.
func (c *Config) ResolveToken(store *TokenStore) (string, error) {
	if c.Platform.Token != "" {
		return c.Platform.Token, nil
	}
	if store == nil {
		return "", nil
	}

	token, err := store.Load()
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return "", nil
		}
		return "", err
	}
	return token, nil
}
