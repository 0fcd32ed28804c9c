// Package pagination turns page/limit query parameters into offsets and
// builds the pagination block of list responses.
package pagination

import (
	envcfg "news-portal/pkg/config"
)

// Config holds pagination configuration settings.
type Config struct {
	DefaultPage  int
	DefaultLimit int
	MaxLimit     int
}

// DefaultConfig returns page=1, limit=10, max=100.
func DefaultConfig() Config {
	return Config{
		DefaultPage:  1,
		DefaultLimit: 10,
		MaxLimit:     100,
	}
}

// LoadFromEnv reads PAGINATION_DEFAULT_PAGE, PAGINATION_DEFAULT_LIMIT and
// PAGINATION_MAX_LIMIT. Nonsensical combinations fall back to DefaultConfig.
func LoadFromEnv() Config {
	cfg := Config{
		DefaultPage:  envcfg.GetEnvInt("PAGINATION_DEFAULT_PAGE", 1),
		DefaultLimit: envcfg.GetEnvInt("PAGINATION_DEFAULT_LIMIT", 10),
		MaxLimit:     envcfg.GetEnvInt("PAGINATION_MAX_LIMIT", 100),
	}
	if cfg.DefaultPage < 1 || cfg.DefaultLimit < 1 || cfg.MaxLimit < cfg.DefaultLimit {
		return DefaultConfig()
	}
	return cfg
}
