package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// SecurityConfig is the optional YAML policy file for authentication.
// Values set here are defaults; environment variables still override them.
type SecurityConfig struct {
	Security struct {
		JWT struct {
			SecretEnv     string   `yaml:"secret_env"`
			ExpiryHours   int      `yaml:"expiry_hours"`
			WeakSecrets   []string `yaml:"weak_secrets"`
			MinSecretSize int      `yaml:"min_secret_size"`
		} `yaml:"jwt"`
		Cookie struct {
			Name       string `yaml:"name"`
			ExpireDays int    `yaml:"expire_days"`
		} `yaml:"cookie"`
		Password struct {
			MinLength int `yaml:"min_length"`
		} `yaml:"password"`
		Login struct {
			RequestsPerMinute int `yaml:"requests_per_minute"`
		} `yaml:"login"`
	} `yaml:"security"`
}

// DefaultSecurityConfig mirrors config/security.yaml.
func DefaultSecurityConfig() *SecurityConfig {
	c := &SecurityConfig{}
	c.Security.JWT.SecretEnv = "JWT_SECRET"
	c.Security.JWT.ExpiryHours = 30 * 24
	c.Security.JWT.WeakSecrets = []string{"secret", "password", "test", "admin", "default"}
	c.Security.JWT.MinSecretSize = 32
	c.Security.Cookie.Name = "token"
	c.Security.Cookie.ExpireDays = 30
	c.Security.Password.MinLength = 6
	c.Security.Login.RequestsPerMinute = 5
	return c
}

// LoadSecurityConfig reads path over the defaults. A missing file yields the defaults.
// The path parameter is expected to come from a trusted source (flag or env).
func LoadSecurityConfig(path string) (*SecurityConfig, error) {
	config := DefaultSecurityConfig()
	if path == "" {
		return config, nil
	}

	// #nosec G304 -- path is provided by the operator, not user input
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := validateSecurityConfig(config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return config, nil
}

func validateSecurityConfig(config *SecurityConfig) error {
	if config.Security.JWT.SecretEnv == "" {
		return fmt.Errorf("jwt secret_env is required")
	}
	if config.Security.JWT.ExpiryHours <= 0 {
		return fmt.Errorf("jwt expiry_hours must be positive")
	}
	if config.Security.JWT.MinSecretSize < 32 {
		return fmt.Errorf("jwt min_secret_size must be at least 32")
	}
	if config.Security.Cookie.Name == "" {
		return fmt.Errorf("cookie name is required")
	}
	if config.Security.Cookie.ExpireDays <= 0 {
		return fmt.Errorf("cookie expire_days must be positive")
	}
	if config.Security.Password.MinLength <= 0 {
		return fmt.Errorf("password min_length must be positive")
	}
	if config.Security.Login.RequestsPerMinute <= 0 {
		return fmt.Errorf("login requests_per_minute must be positive")
	}
	return nil
}

// TokenTTL returns the configured credential lifetime.
func (c *SecurityConfig) TokenTTL() time.Duration {
	return time.Duration(c.Security.JWT.ExpiryHours) * time.Hour
}

// CookieTTL returns the configured cookie lifetime.
func (c *SecurityConfig) CookieTTL() time.Duration {
	return time.Duration(c.Security.Cookie.ExpireDays) * 24 * time.Hour
}
