// internal/websearch/config.go
package websearch

import (
	"time"

	"availability-api/internal/common/config"
)

type Config struct {
	BaseURL        string
	SearchPath     string
	QueryParam     string
	ResultSelector string
	MaxResults     int
	Timeout        time.Duration
	RateLimit      time.Duration
	UserAgent      string
}

func LoadConfig(cfg config.WebSearchConfig) *Config {
	return &Config{
		BaseURL:        cfg.BaseURL,
		SearchPath:     cfg.SearchPath,
		QueryParam:     cfg.QueryParam,
		ResultSelector: cfg.ResultSelector,
		MaxResults:     cfg.MaxResults,
		Timeout:        config.GetDuration(cfg.Timeout),
		RateLimit:      config.GetDuration(cfg.RateLimit),
		UserAgent:      cfg.UserAgent,
	}
}
