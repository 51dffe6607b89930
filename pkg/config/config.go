package config

import (
	"time"
)

type AppConfig struct {
	RateLimitEnabled bool
	RateLimitConfigs map[string]RateLimitConfig

	EnforceHTTPS bool

	SessionTTL time.Duration

	Environment string
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

func GetDefaultConfig() *AppConfig {
	return &AppConfig{
		RateLimitEnabled: true,
		RateLimitConfigs: map[string]RateLimitConfig{
			"/api/signup": {
				Requests: 5,
				Window:   time.Minute,
			},
			"/api/login": {
				Requests: 10,
				Window:   time.Minute,
			},
			"/api/todos": {
				Requests: 100,
				Window:   time.Minute,
			},
		},
		EnforceHTTPS: false,
		SessionTTL:   30 * time.Minute,
		Environment:  "development",
	}
}
