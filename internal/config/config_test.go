package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:                     "8080",
		Env:                      "development",
		DBDriver:                 "sqlite",
		DBPath:                   "jobboard.db",
		SessionSecret:            "secure-secret-at-least-32-chars-long",
		DBPassword:               "secure-password",
		DBConnMaxLifetimeMinutes: 1,
		TracingSamplerRatio:      1,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{"valid development config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing secret", func(c *Config) { c.SessionSecret = "" }, true},
		{"unknown driver", func(c *Config) { c.DBDriver = "mysql" }, true},
		{"sqlite without path", func(c *Config) { c.DBPath = "" }, true},
		{"postgres without path", func(c *Config) { c.DBDriver = "postgres"; c.DBPath = "" }, false},
		{"sampler ratio too high", func(c *Config) { c.TracingSamplerRatio = 1.5 }, true},
		{"admin email without password", func(c *Config) { c.AdminEmail = "admin@example.com" }, true},
		{"admin email with password", func(c *Config) {
			c.AdminEmail = "admin@example.com"
			c.AdminPassword = "secret1"
		}, false},
		{"production with default secret", func(c *Config) {
			c.Env = "production"
			c.SessionSecret = defaultSessionSecret
		}, true},
		{"production with short secret", func(c *Config) {
			c.Env = "prod"
			c.SessionSecret = "short"
		}, true},
		{"production postgres with weak password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
			c.DBPassword = "password"
		}, true},
		{"production postgres with strong password", func(c *Config) {
			c.Env = "production"
			c.DBDriver = "postgres"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Durations(t *testing.T) {
	c := validConfig()
	assert.Equal(t, 24*time.Hour, c.SessionTTL())
	assert.Equal(t, 5*time.Minute, c.LockoutDuration())

	c.SessionTTLHours = 2
	c.LockoutMinutes = 15
	assert.Equal(t, 2*time.Hour, c.SessionTTL())
	assert.Equal(t, 15*time.Minute, c.LockoutDuration())
}

func TestLoadConfig_EnvOverridesAndNormalization(t *testing.T) {
	defer os.Unsetenv("APP_ENV")
	defer os.Unsetenv("DB_DRIVER")
	defer os.Unsetenv("LOCKOUT_MAX_ATTEMPTS")
	defer viper.Reset()

	os.Setenv("APP_ENV", "development")
	os.Setenv("DB_DRIVER", "  SQLite ")
	os.Setenv("LOCKOUT_MAX_ATTEMPTS", "3")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, 3, c.LockoutMaxAttempts)
	assert.Equal(t, "8080", c.Port)
	assert.True(t, c.SeedSampleJobs)
	assert.Equal(t, "info", c.LogLevel)
}
