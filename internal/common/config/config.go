// internal/common/config/config.go
package config

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Server    ServerConfig    `mapstructure:"server"`
	Upstream  UpstreamConfig  `mapstructure:"upstream"`
	Cache     CacheConfig     `mapstructure:"cache"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Matcher   MatcherConfig   `mapstructure:"matcher"`
	WebSearch WebSearchConfig `mapstructure:"websearch"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
}

// UpstreamConfig points at the inventory service that owns stock, price and status.
type UpstreamConfig struct {
	BaseURL      string `mapstructure:"base_url"`
	Path         string `mapstructure:"path"`
	UserKey      string `mapstructure:"user_key"`
	Timeout      int    `mapstructure:"timeout"` // milliseconds
	MaxBodyBytes int64  `mapstructure:"max_body_bytes"`
}

// CacheConfig controls the available-products cache.
type CacheConfig struct {
	TTL     int    `mapstructure:"ttl"` // milliseconds
	Backend string `mapstructure:"backend"`
	// SkipDegraded keeps failure-induced empty results out of the cache.
	SkipDegraded bool   `mapstructure:"skip_degraded"`
	KeyPrefix    string `mapstructure:"key_prefix"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type MatcherConfig struct {
	MaxResults int `mapstructure:"max_results"`
}

// WebSearchConfig describes the storefront search page scraped for listings.
type WebSearchConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	SearchPath     string `mapstructure:"search_path"`
	QueryParam     string `mapstructure:"query_param"`
	ResultSelector string `mapstructure:"result_selector"`
	MaxResults     int    `mapstructure:"max_results"`
	Timeout        int    `mapstructure:"timeout"`    // milliseconds
	RateLimit      int    `mapstructure:"rate_limit"` // milliseconds between requests
	UserAgent      string `mapstructure:"user_agent"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}
