// Package config loads service configuration from an optional config file
// plus SKYFARE_-prefixed environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port    string
	Amadeus AmadeusConfig
	Cache   CacheConfig
	Refresh RefreshConfig
	Log     LogConfig
}

type AmadeusConfig struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
	MaxRetries   int
}

type CacheConfig struct {
	Enabled   bool
	RedisHost string
	RedisPort string
	TTL       time.Duration
}

type RefreshConfig struct {
	Interval time.Duration
}

type LogConfig struct {
	Level string
}

// Load reads configuration. A missing config file is fine; defaults plus
// environment variables are enough to run. Missing Amadeus credentials are
// deliberately not an error here: the search path degrades to fallback data.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("port", "8080")
	v.SetDefault("amadeus.base_url", "https://test.api.amadeus.com")
	v.SetDefault("amadeus.client_id", "")
	v.SetDefault("amadeus.client_secret", "")
	v.SetDefault("amadeus.timeout", "20s")
	v.SetDefault("amadeus.max_retries", 2)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.redis_host", "localhost")
	v.SetDefault("cache.redis_port", "6379")
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("refresh.interval", "1m")
	v.SetDefault("log.level", "info")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/skyfare")
	v.AddConfigPath(".")

	if configPath := os.Getenv("SKYFARE_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("SKYFARE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		Port: v.GetString("port"),
		Amadeus: AmadeusConfig{
			BaseURL:      v.GetString("amadeus.base_url"),
			ClientID:     v.GetString("amadeus.client_id"),
			ClientSecret: v.GetString("amadeus.client_secret"),
			Timeout:      v.GetDuration("amadeus.timeout"),
			MaxRetries:   v.GetInt("amadeus.max_retries"),
		},
		Cache: CacheConfig{
			Enabled:   v.GetBool("cache.enabled"),
			RedisHost: v.GetString("cache.redis_host"),
			RedisPort: v.GetString("cache.redis_port"),
			TTL:       v.GetDuration("cache.ttl"),
		},
		Refresh: RefreshConfig{
			Interval: v.GetDuration("refresh.interval"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("port is required")
	}
	if cfg.Amadeus.BaseURL == "" {
		return fmt.Errorf("amadeus.base_url is required")
	}
	if cfg.Amadeus.Timeout <= 0 {
		return fmt.Errorf("amadeus.timeout must be positive")
	}
	if cfg.Refresh.Interval <= 0 {
		return fmt.Errorf("refresh.interval must be positive")
	}
	return nil
}
