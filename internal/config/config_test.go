package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func devConfig() *Config {
	return &Config{
		Port:          "5000",
		DBPassword:    "password",
		SessionSecret: defaultSessionSecret,
		Env:           "development",
	}
}

func prodConfig() *Config {
	return &Config{
		Port:             "5000",
		DBPassword:       "s0me-Strong-P4ssword!",
		DBSSLMode:        "require",
		SessionSecret:    strings.Repeat("s", 32),
		CloudinarySecret: "cld-secret",
		Env:              "production",
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: ""}).IsProduction())
}

func TestValidateDevelopment(t *testing.T) {
	// Defaults are acceptable outside production.
	assert.NoError(t, devConfig().Validate())
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := devConfig()
	cfg.Port = ""
	assert.EqualError(t, cfg.Validate(), "PORT is required")

	cfg = devConfig()
	cfg.SessionSecret = ""
	assert.EqualError(t, cfg.Validate(), "SESSION_SECRET is required")
}

func TestValidateProduction(t *testing.T) {
	assert.NoError(t, prodConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		errSub string
	}{
		{
			name:   "default session secret",
			mutate: func(c *Config) { c.SessionSecret = defaultSessionSecret },
			errSub: "SESSION_SECRET must be changed",
		},
		{
			name:   "short session secret",
			mutate: func(c *Config) { c.SessionSecret = "short" },
			errSub: "at least 32 characters",
		},
		{
			name:   "weak db password",
			mutate: func(c *Config) { c.DBPassword = "password" },
			errSub: "DB_PASSWORD",
		},
		{
			name:   "empty db password",
			mutate: func(c *Config) { c.DBPassword = "" },
			errSub: "DB_PASSWORD",
		},
		{
			name:   "missing cloudinary secret",
			mutate: func(c *Config) { c.CloudinarySecret = "" },
			errSub: "CLOUDINARY_API_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := prodConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.errSub)
			}
		})
	}
}
