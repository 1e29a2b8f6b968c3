// Package config loads and validates urinfo configuration via Viper.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultUserAgent identifies outbound probe and fetch requests.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/534.34 " +
	"(KHTML, like Gecko) Qt/4.8.3 Safari/534.34 urinfo"

// Config captures all service configuration knobs loaded via Viper.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Resolver ResolverConfig `mapstructure:"resolver"`
	Cache    CacheConfig    `mapstructure:"cache"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig controls HTTP server behavior.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ResolverConfig configures the outbound probe and fetch requests.
type ResolverConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxRedirects int           `mapstructure:"max_redirects"`
	MaxBodyBytes int           `mapstructure:"max_body_bytes"`
}

// CacheConfig controls the in-process result cache.
type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Size    int           `mapstructure:"size"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// HTTPConfig sets response caching headers.
type HTTPConfig struct {
	CacheMaxAgeSeconds int `mapstructure:"cache_max_age_seconds"`
}

// LoggingConfig toggles zap development features.
type LoggingConfig struct {
	Development bool `mapstructure:"development"`
}

// Load builds a Config from disk/environment.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("URINFO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	applyPlatformEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("resolver.user_agent", DefaultUserAgent)
	v.SetDefault("resolver.timeout", 4*time.Second)
	v.SetDefault("resolver.max_redirects", 10)
	v.SetDefault("resolver.max_body_bytes", 10*1024*1024)
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.size", 512)
	v.SetDefault("cache.ttl", 10*time.Minute)
	v.SetDefault("http.cache_max_age_seconds", 600)
	v.SetDefault("logging.development", false)
}

// applyPlatformEnv honors the unprefixed variables set by hosting platforms:
// PORT for the listen port and DEBUG (> 1) for development logging.
func applyPlatformEnv(cfg *Config) {
	if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil && port > 0 {
		cfg.Server.Port = port
	}
	if debug, err := strconv.Atoi(os.Getenv("DEBUG")); err == nil && debug > 1 {
		cfg.Logging.Development = true
	}
}

// Validate enforces required values and reasonable limits.
func (c Config) Validate() error {
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be > 0")
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("server.request_timeout must be > 0")
	}
	if c.Resolver.Timeout <= 0 {
		return fmt.Errorf("resolver.timeout must be > 0")
	}
	if c.Resolver.MaxRedirects <= 0 {
		return fmt.Errorf("resolver.max_redirects must be > 0")
	}
	if c.Resolver.MaxBodyBytes <= 0 {
		return fmt.Errorf("resolver.max_body_bytes must be > 0")
	}
	if c.Cache.Enabled && c.Cache.Size <= 0 {
		return fmt.Errorf("cache.size must be > 0 when the cache is enabled")
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be > 0 when the cache is enabled")
	}
	if c.HTTP.CacheMaxAgeSeconds < 0 {
		return fmt.Errorf("http.cache_max_age_seconds must be >= 0")
	}
	return nil
}

// CacheControl returns the Cache-Control value attached to every response.
func (c Config) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", c.HTTP.CacheMaxAgeSeconds)
}
