package config

// Config represents the complete configuration structure
type Config struct {
	Platform PlatformConfig `mapstructure:"platform"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PlatformConfig holds API connection details
type PlatformConfig struct {
	// Environment selects the fixed platform origin: production,
	// staging or development.
	Environment string `mapstructure:"environment"`
	// BaseURL overrides the environment origin when set. Mainly useful
	// for pointing the CLI at a local test server.
	BaseURL string `mapstructure:"base_url"`
	// Token is the personal token. When empty the keyring store is
	// consulted.
	Token string `mapstructure:"token"`
	// Debug enables verbose request/response logging.
	Debug bool `mapstructure:"debug"`
}

// UploadConfig contains batch upload settings
type UploadConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
