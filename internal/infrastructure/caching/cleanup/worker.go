// Package cleanup provides the background session sweep worker
package cleanup

import (
	"context"
	"time"

	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// Worker periodically sweeps idle sessions out of the store. A single ticker
// drives it, so sweeps never overlap with each other.
type Worker struct {
	store  *stores.SessionStore
	config *Config
	logger *logging.ChanneledLogger
}

// NewWorker creates a new cleanup worker with injected configuration
func NewWorker(store *stores.SessionStore, config *Config, logger *logging.ChanneledLogger) *Worker {
	return &Worker{
		store:  store,
		config: config,
		logger: logger,
	}
}

// Start begins the cleanup routine, using the configured interval. It blocks
// until ctx is cancelled and is meant to run in its own goroutine for the
// process lifetime.
func (w *Worker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.config.CleanupInterval)
	defer ticker.Stop()

	if w.logger != nil {
		w.logger.Cache().Info("Session cleanup worker started", "interval", w.config.CleanupInterval, "sessionTimeout", w.config.SessionTimeout)
	}

	for {
		select {
		case <-ctx.Done():
			if w.logger != nil {
				w.logger.Cache().Info("Session cleanup worker stopping")
			}
			return
		case <-ticker.C:
			w.performCleanup()
		}
	}
}

// performCleanup executes a single sweep pass
func (w *Worker) performCleanup() {
	start := time.Now()
	removed := w.store.Sweep(w.config.SessionTimeout)

	if w.logger != nil {
		if removed > 0 {
			w.logger.Cache().Info("Session cleanup finished", "removed", removed, "duration", time.Since(start))
		} else {
			w.logger.Cache().Debug("Session cleanup completed - no idle sessions found", "duration", time.Since(start))
		}
	}
}
