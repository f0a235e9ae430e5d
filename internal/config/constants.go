package config

import "time"

// HTTP server timeouts
const (
	ServerRequestTimeout  = 60 * time.Second
	ServerReadTimeout     = 15 * time.Second
	ServerIdleTimeout     = 120 * time.Second
	ServerShutdownTimeout = 30 * time.Second
)

// Background job intervals
const SessionSweepInterval = 5 * time.Minute

// Default rate limiting
const DefaultRateLimitPerMin = 60
