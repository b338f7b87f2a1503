// internal/inventory/fetcher/config.go
package fetcher

import (
	"time"

	"availability-api/internal/common/config"
)

type Config struct {
	BaseURL string
	Path    string
	UserKey string
	Timeout time.Duration

	// MaxBodyBytes caps the listing body; zero or negative means DefaultMaxBodyBytes.
	MaxBodyBytes int64
}

func LoadConfig(cfg config.UpstreamConfig) *Config {
	return &Config{
		BaseURL: cfg.BaseURL,
		Path:    cfg.Path,
		UserKey: cfg.UserKey,
		Timeout: config.GetDuration(cfg.Timeout),

		MaxBodyBytes: cfg.MaxBodyBytes,
	}
}
