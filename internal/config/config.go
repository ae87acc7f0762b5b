// Package config loads service settings from the environment via viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service settings, populated from VENUE_* environment
// variables with defaults applied where unset.
type Config struct {
	FeedURL  string
	HTTPAddr string

	// Venue coordinates used for weather lookups.
	Latitude  float64
	Longitude float64

	LogLevel  string
	LogFormat string

	FeedCacheTTL    time.Duration
	WeatherCacheTTL time.Duration
	RefreshInterval time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("VENUE")
	v.AutomaticEnv()

	v.SetDefault("feed_url", "https://raw.githubusercontent.com/JFT51/ExRest/refs/heads/main/ikxe.csv")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("latitude", 50.8503)
	v.SetDefault("longitude", 4.3517)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("feed_cache_ttl", "1h")
	v.SetDefault("weather_cache_ttl", "24h")
	v.SetDefault("refresh_interval", "1h")
	v.SetDefault("shutdown_timeout", "10s")

	cfg := &Config{
		FeedURL:         v.GetString("feed_url"),
		HTTPAddr:        v.GetString("http_addr"),
		Latitude:        v.GetFloat64("latitude"),
		Longitude:       v.GetFloat64("longitude"),
		LogLevel:        v.GetString("log_level"),
		LogFormat:       v.GetString("log_format"),
		FeedCacheTTL:    v.GetDuration("feed_cache_ttl"),
		WeatherCacheTTL: v.GetDuration("weather_cache_ttl"),
		RefreshInterval: v.GetDuration("refresh_interval"),
		ShutdownTimeout: v.GetDuration("shutdown_timeout"),
	}

	if cfg.FeedURL == "" {
		return nil, errors.New("VENUE_FEED_URL is required")
	}
	if cfg.Latitude < -90 || cfg.Latitude > 90 {
		return nil, fmt.Errorf("VENUE_LATITUDE out of range: %v", cfg.Latitude)
	}
	if cfg.Longitude < -180 || cfg.Longitude > 180 {
		return nil, fmt.Errorf("VENUE_LONGITUDE out of range: %v", cfg.Longitude)
	}
	for name, d := range map[string]time.Duration{
		"VENUE_FEED_CACHE_TTL":    cfg.FeedCacheTTL,
		"VENUE_WEATHER_CACHE_TTL": cfg.WeatherCacheTTL,
		"VENUE_REFRESH_INTERVAL":  cfg.RefreshInterval,
		"VENUE_SHUTDOWN_TIMEOUT":  cfg.ShutdownTimeout,
	} {
		if d <= 0 {
			return nil, fmt.Errorf("%s must be a positive duration", name)
		}
	}

	return cfg, nil
}
