package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Aircall: AircallConfig{
			APIID:    "id-123",
			APIToken: "token-456",
			BaseURL:  "https://api.aircall.io/v1",
			Timeout:  30 * time.Second,
			PageSize: 50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:    "missing api id",
			mutate:  func(c *Config) { c.Aircall.APIID = "" },
			wantErr: "api_id is required",
		},
		{
			name:    "missing api token",
			mutate:  func(c *Config) { c.Aircall.APIToken = "" },
			wantErr: "api_token must be set",
		},
		{
			name:    "placeholder api token",
			mutate:  func(c *Config) { c.Aircall.APIToken = "your-api-token-here" },
			wantErr: "api_token must be set",
		},
		{
			name:    "page size too small",
			mutate:  func(c *Config) { c.Aircall.PageSize = 0 },
			wantErr: "page_size must be between 1 and 100",
		},
		{
			name:    "page size too large",
			mutate:  func(c *Config) { c.Aircall.PageSize = 500 },
			wantErr: "page_size must be between 1 and 100",
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: "invalid logging level",
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: "invalid logging format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("AIRCALL_API_ID", "")
	t.Setenv("AIRCALL_API_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
aircall:
  api_id: file-id
  api_token: file-token
  page_size: 25
  verbose: true

filter:
  default_expression: 'Missed && daysSince(Started) < 7'
  presets:
    missed: 'Missed'

safety:
  dry_run: false

logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.Aircall.APIID)
	assert.Equal(t, "file-token", cfg.Aircall.APIToken)
	assert.Equal(t, 25, cfg.Aircall.PageSize)
	assert.True(t, cfg.Aircall.Verbose)
	assert.Equal(t, "Missed && daysSince(Started) < 7", cfg.Filter.DefaultExpression)
	assert.Equal(t, "Missed", cfg.Filter.Presets["missed"])
	assert.False(t, cfg.Safety.DryRun)
	assert.Equal(t, "debug", cfg.Logging.Level)

	// Defaults fill the rest.
	assert.Equal(t, "https://api.aircall.io/v1", cfg.Aircall.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Aircall.Timeout)
	assert.True(t, cfg.Safety.ConfirmDelete)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoadCredentialsFromEnv(t *testing.T) {
	t.Setenv("AIRCALL_API_ID", "env-id")
	t.Setenv("AIRCALL_API_TOKEN", "env-token")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("safety:\n  dry_run: true\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-id", cfg.Aircall.APIID)
	assert.Equal(t, "env-token", cfg.Aircall.APIToken)
}

func TestLoadMissingCredentials(t *testing.T) {
	t.Setenv("AIRCALL_API_ID", "")
	t.Setenv("AIRCALL_API_TOKEN", "")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: info\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_id is required")
}
