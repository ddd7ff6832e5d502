// Reelrank - Movie Recommendation Engine for Streaming Platforms
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package recommend

import "fmt"

// Config holds the serving-side engine settings.
type Config struct {
	// DefaultTopN is the list length when the request does not ask for one.
	DefaultTopN int `json:"default_top_n"`

	// MaxTopN caps the list length a single request can ask for.
	MaxTopN int `json:"max_top_n"`
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() *Config {
	return &Config{
		DefaultTopN: 10,
		MaxTopN:     100,
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if c.DefaultTopN < 1 {
		return fmt.Errorf("default_top_n must be >= 1, got %d", c.DefaultTopN)
	}
	if c.MaxTopN < c.DefaultTopN {
		return fmt.Errorf("max_top_n (%d) must be >= default_top_n (%d)", c.MaxTopN, c.DefaultTopN)
	}
	return nil
}

// clampTopN resolves the effective list length for one request.
func (c *Config) clampTopN(topN int) int {
	if topN <= 0 {
		return c.DefaultTopN
	}
	if topN > c.MaxTopN {
		return c.MaxTopN
	}
	return topN
}
