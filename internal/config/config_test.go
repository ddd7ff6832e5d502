// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := defaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }},
		{"port too large", func(c *Config) { c.Server.Port = 70000 }},
		{"empty db path", func(c *Config) { c.Database.Path = "" }},
		{"short jwt secret", func(c *Config) { c.Security.JWTSecret = "too-short" }},
		{"page size zero", func(c *Config) { c.API.DefaultPageSize = 0 }},
		{"top n above max", func(c *Config) { c.Recommend.DefaultTopN = 101 }},
		{"k min below two", func(c *Config) { c.Segmentation.KMin = 1 }},
		{"k max below k min", func(c *Config) { c.Segmentation.KMax = 1 }},
		{"zero iterations", func(c *Config) { c.Segmentation.MaxIterations = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestValidateAcceptsLongJWTSecret(t *testing.T) {
	cfg := defaultConfig()
	cfg.Security.JWTSecret = "0123456789abcdef0123456789abcdef"
	assert.NoError(t, cfg.Validate())
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"HTTP_PORT", "server.port"},
		{"DUCKDB_PATH", "database.path"},
		{"JWT_SECRET", "security.jwt_secret"},
		{"LOG_LEVEL", "logging.level"},
		{"SEGMENTATION_K_MAX", "segmentation.k_max"},
		{"SEGMENTATION_SEED", "segmentation.seed"},
		{"RECOMMEND_DEFAULT_TOP_N", "recommend.default_top_n"},
		{"RANDOM_UNRELATED_VAR", ""},
		{"PATH", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, envTransformFunc(tt.env), "env var %s", tt.env)
	}
}

func TestServerAddr(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8001}
	assert.Equal(t, "127.0.0.1:8001", cfg.Addr())
}

func TestLoadUsesEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Security.CORSOrigins)
}
