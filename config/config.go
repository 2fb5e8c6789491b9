package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Load loads the configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	// Credentials are usually supplied through the environment rather than
	// written into the config file.
	v.SetEnvPrefix("AIRCALL")
	v.AutomaticEnv()
	_ = v.BindEnv("aircall.api_id", "AIRCALL_API_ID")
	_ = v.BindEnv("aircall.api_token", "AIRCALL_API_TOKEN")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".aircall"))
		}

		// Check /etc
		v.AddConfigPath("/etc/aircall/")
	}

	// A missing config file is fine when the credentials come from the
	// environment.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Aircall defaults
	v.SetDefault("aircall.base_url", "https://api.aircall.io/v1")
	v.SetDefault("aircall.timeout", 30*time.Second)
	v.SetDefault("aircall.page_size", 50)
	v.SetDefault("aircall.verbose", false)

	// Safety defaults
	v.SetDefault("safety.dry_run", true)
	v.SetDefault("safety.confirm_delete", true)
	v.SetDefault("safety.show_details", true)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Aircall.APIID == "" {
		return fmt.Errorf("aircall.api_id is required (or set AIRCALL_API_ID)")
	}

	if cfg.Aircall.APIToken == "" || cfg.Aircall.APIToken == "your-api-token-here" {
		return fmt.Errorf("aircall.api_token must be set to a valid token (or set AIRCALL_API_TOKEN)")
	}

	if cfg.Aircall.PageSize < 1 || cfg.Aircall.PageSize > 100 {
		return fmt.Errorf("aircall.page_size must be between 1 and 100")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
