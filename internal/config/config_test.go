package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProdConfig() *Config {
	return &Config{
		JWTSecret:  strings.Repeat("s", 32),
		Port:       "8080",
		DBPassword: "a-real-password",
		DBSSLMode:  "require",
		Env:        "production",
	}
}

func TestIsProduction(t *testing.T) {
	assert.True(t, (&Config{Env: "production"}).IsProduction())
	assert.True(t, (&Config{Env: "prod"}).IsProduction())
	assert.False(t, (&Config{Env: "development"}).IsProduction())
	assert.False(t, (&Config{Env: "test"}).IsProduction())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid production config", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Port = "" }, true},
		{"missing jwt secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"default jwt secret in production", func(c *Config) {
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"short jwt secret in production", func(c *Config) { c.JWTSecret = "short" }, true},
		{"default db password in production", func(c *Config) { c.DBPassword = "password" }, true},
		{"weak values allowed outside production", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "dev"
			c.DBPassword = "password"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validProdConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
