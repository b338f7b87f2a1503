// internal/inventory/matcher/config.go
package matcher

import "availability-api/internal/common/config"

const DefaultMaxResults = 10

type Config struct {
	// MaxResults caps the matches returned. Zero or negative means no cap.
	MaxResults int
}

func LoadConfig(cfg config.MatcherConfig) *Config {
	return &Config{MaxResults: cfg.MaxResults}
}
