package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, 90*time.Second, cfg.Generator.Timeout)
	assert.InDelta(t, 0.8, cfg.Generator.Temperature, 1e-9)
	assert.Equal(t, 6000, cfg.Generator.ThinkingBudget)
	assert.Equal(t, 12, cfg.Studio.ClassSize)
	assert.Equal(t, 12*time.Hour, cfg.JWT.Expiration)
	assert.False(t, cfg.Auth.Enabled)
	assert.False(t, cfg.BackupsEnabled())
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
store:
  driver: redis
  redis:
    address: "cache:6379"
studio:
  locale: es
generator:
  timeout: 30s
s3:
  bucket_name: backups
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	t.Setenv("GENERATOR_MODEL", "gemini-test")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "cache:6379", cfg.Store.Redis.Address)
	assert.Equal(t, "es", cfg.Studio.Locale)
	assert.Equal(t, 30*time.Second, cfg.Generator.Timeout)
	assert.Equal(t, "gemini-test", cfg.Generator.Model)
	assert.True(t, cfg.BackupsEnabled())
}

func TestValidate(t *testing.T) {
	base := func() Config {
		return Config{
			Store:     StoreConfig{Driver: DriverMemory},
			Generator: GeneratorConfig{Temperature: 0.8},
			Studio:    StudioConfig{ClassSize: 12},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "unknown driver", mutate: func(c *Config) { c.Store.Driver = "bolt" }, wantErr: true},
		{name: "temperature too high", mutate: func(c *Config) { c.Generator.Temperature = 2.5 }, wantErr: true},
		{name: "zero class size", mutate: func(c *Config) { c.Studio.ClassSize = 0 }, wantErr: true},
		{name: "auth without secret", mutate: func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, CoachEmail: "coach@lab.test", PasswordHash: "x"}
		}, wantErr: true},
		{name: "auth complete", mutate: func(c *Config) {
			c.Auth = AuthConfig{Enabled: true, CoachEmail: "coach@lab.test", PasswordHash: "x"}
			c.JWT.Secret = "s3cret"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
