package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Aircall AircallConfig `mapstructure:"aircall"`
	Filter  FilterConfig  `mapstructure:"filter"`
	Safety  SafetyConfig  `mapstructure:"safety"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// AircallConfig holds Aircall API credentials and connection details.
// APIID and APIToken can also come from the AIRCALL_API_ID and
// AIRCALL_API_TOKEN environment variables.
type AircallConfig struct {
	APIID    string        `mapstructure:"api_id"`
	APIToken string        `mapstructure:"api_token"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
	PageSize int           `mapstructure:"page_size"`
	Verbose  bool          `mapstructure:"verbose"`
}

// FilterConfig contains filter expression settings
type FilterConfig struct {
	DefaultExpression string            `mapstructure:"default_expression"`
	Presets           map[string]string `mapstructure:"presets"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmDelete bool `mapstructure:"confirm_delete"`
	ShowDetails   bool `mapstructure:"show_details"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
