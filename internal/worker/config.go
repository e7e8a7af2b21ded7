// Package worker provides background job processing for Packwise.
package worker

import (
	"time"
)

// WarmupConfig holds configuration for the weather warm-up job.
type WarmupConfig struct {
	// Lookahead is how far ahead trip start dates are considered.
	// Default: 7 days
	Lookahead time.Duration

	// Concurrency is the number of concurrent weather lookups.
	// Default: 3
	Concurrency int

	// Timeout is the timeout for each lookup.
	// Default: 30 seconds
	Timeout time.Duration

	// HealthCheckLocation is looked up by the health_check job.
	// Default: London
	HealthCheckLocation string
}

// DefaultWarmupConfig returns the default warm-up configuration.
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Lookahead:           7 * 24 * time.Hour,
		Concurrency:         3,
		Timeout:             30 * time.Second,
		HealthCheckLocation: "London",
	}
}

// withDefaults fills unset fields from DefaultWarmupConfig.
func (c WarmupConfig) withDefaults() WarmupConfig {
	def := DefaultWarmupConfig()
	if c.Lookahead <= 0 {
		c.Lookahead = def.Lookahead
	}
	if c.Concurrency <= 0 {
		c.Concurrency = def.Concurrency
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.HealthCheckLocation == "" {
		c.HealthCheckLocation = def.HealthCheckLocation
	}
	return c
}
