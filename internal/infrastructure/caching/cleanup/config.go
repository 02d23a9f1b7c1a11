package cleanup

import (
	"time"

	"github.com/tennisshoppro/shop-assistant-go/pkg/config"
)

// Config holds cleanup worker configuration, sourced from the central config package.
type Config struct {
	CleanupInterval time.Duration
	SessionTimeout  time.Duration
}

// NewConfig creates a new cleanup configuration by reading values
// from the already-initialized variables in the centralized /pkg/config package.
func NewConfig() *Config {
	return &Config{
		CleanupInterval: config.SessionCleanupInterval,
		SessionTimeout:  config.SessionTimeout,
	}
}
