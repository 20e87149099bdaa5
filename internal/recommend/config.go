// Reelmatch - Movie Recommendation Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "fmt"

// DefaultK is the number of neighbours returned per lookup.
const DefaultK = 5

// MaxK is the largest accepted K. Each neighbour costs one poster fetch.
const MaxK = 50

// Config contains configuration for the recommendation engine.
type Config struct {
	// K is the maximum number of recommendations per lookup.
	K int `json:"k"`
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{K: DefaultK}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.K < 1 || c.K > MaxK {
		return fmt.Errorf("k must be in [1, %d], got %d", MaxK, c.K)
	}
	return nil
}
