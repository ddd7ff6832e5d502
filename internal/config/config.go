// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

// Package config provides layered configuration loading for Reelrank.
//
// Configuration is loaded via Koanf v2 with the following precedence
// (highest wins):
//
//  1. Environment variables
//  2. Config file (config.yaml)
//  3. Built-in defaults
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server       ServerConfig       `koanf:"server"`
	Database     DatabaseConfig     `koanf:"database"`
	Security     SecurityConfig     `koanf:"security"`
	Logging      LoggingConfig      `koanf:"logging"`
	API          APIConfig          `koanf:"api"`
	Recommend    RecommendConfig    `koanf:"recommend"`
	Segmentation SegmentationConfig `koanf:"segmentation"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// Addr returns the listen address in host:port form.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the DuckDB database file. ":memory:" is valid for tests.
	Path string `koanf:"path"`

	// MaxMemory caps DuckDB's memory usage (e.g. "2GB").
	MaxMemory string `koanf:"max_memory"`

	// Threads is the DuckDB thread count. 0 = runtime.NumCPU().
	Threads int `koanf:"threads"`

	// SeedMockData populates the database with synthetic demo data on startup.
	SeedMockData bool `koanf:"seed_mock_data"`

	// SeedRandomSeed drives the mock data generator for reproducible demos.
	SeedRandomSeed int64 `koanf:"seed_random_seed"`
}

// SecurityConfig holds authentication settings.
type SecurityConfig struct {
	// JWTSecret signs session tokens. Minimum 32 characters.
	JWTSecret string `koanf:"jwt_secret"`

	// SessionTimeout is how long issued tokens stay valid.
	SessionTimeout time.Duration `koanf:"session_timeout"`

	// RateLimitReqs is the per-IP request budget per RateLimitWindow.
	RateLimitReqs   int           `koanf:"rate_limit_reqs"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`

	// CORSOrigins lists allowed origins. "*" allows all.
	CORSOrigins []string `koanf:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// APIConfig holds API pagination settings.
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// RecommendConfig holds serving-path settings for the recommendation engine.
type RecommendConfig struct {
	// DefaultTopN is the recommendation list length when the request
	// does not specify one.
	DefaultTopN int `koanf:"default_top_n"`

	// MaxTopN caps the requestable list length.
	MaxTopN int `koanf:"max_top_n"`
}

// SegmentationConfig holds offline segmentation job settings.
type SegmentationConfig struct {
	// Enabled turns the periodic segmentation service on.
	Enabled bool `koanf:"enabled"`

	// KMin and KMax bound the candidate segment counts evaluated by
	// silhouette-based selection.
	KMin int `koanf:"k_min"`
	KMax int `koanf:"k_max"`

	// MaxIterations bounds Lloyd iterations per clustering fit.
	MaxIterations int `koanf:"max_iterations"`

	// Seed drives centroid initialization for reproducible runs.
	Seed int64 `koanf:"seed"`

	// TrainInterval is how often the offline job reruns.
	TrainInterval time.Duration `koanf:"train_interval"`

	// TrainOnStartup triggers a run when the service starts.
	TrainOnStartup bool `koanf:"train_on_startup"`
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8001,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:           "/data/reelrank.duckdb",
			MaxMemory:      "2GB",
			Threads:        0, // 0 = use runtime.NumCPU()
			SeedMockData:   false,
			SeedRandomSeed: 42,
		},
		Security: SecurityConfig{
			JWTSecret:       "",
			SessionTimeout:  24 * time.Hour,
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
			CORSOrigins:     []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		API: APIConfig{
			DefaultPageSize: 20,
			MaxPageSize:     100,
		},
		Recommend: RecommendConfig{
			DefaultTopN: 10,
			MaxTopN:     100,
		},
		Segmentation: SegmentationConfig{
			Enabled:        true,
			KMin:           2,
			KMax:           10,
			MaxIterations:  300,
			Seed:           42,
			TrainInterval:  24 * time.Hour,
			TrainOnStartup: false,
		},
	}
}

// Validate checks the configuration for invalid or inconsistent values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}
	if c.Security.JWTSecret != "" && len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("security.jwt_secret must be at least 32 characters")
	}
	if c.API.DefaultPageSize < 1 || c.API.DefaultPageSize > c.API.MaxPageSize {
		return fmt.Errorf("api.default_page_size must be in [1, max_page_size]")
	}
	if c.Recommend.DefaultTopN < 1 || c.Recommend.DefaultTopN > c.Recommend.MaxTopN {
		return fmt.Errorf("recommend.default_top_n must be in [1, max_top_n]")
	}
	if err := c.Segmentation.validate(); err != nil {
		return err
	}
	return nil
}

func (c *SegmentationConfig) validate() error {
	if c.KMin < 2 {
		return fmt.Errorf("segmentation.k_min must be >= 2, got %d", c.KMin)
	}
	if c.KMax < c.KMin {
		return fmt.Errorf("segmentation.k_max (%d) must be >= k_min (%d)", c.KMax, c.KMin)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("segmentation.max_iterations must be >= 1, got %d", c.MaxIterations)
	}
	return nil
}
