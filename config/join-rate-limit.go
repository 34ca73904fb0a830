package config

import "time"

// Join rate limit configuration
type JoinRateLimitConfig struct {
	Window      time.Duration // Sliding window for counting attempts
	MaxAttempts int           // Attempts allowed per (code, nickname) within the window
}

var DefaultJoinRateLimitConfig = JoinRateLimitConfig{
	Window:      15 * time.Minute,
	MaxAttempts: 5,
}
