// Package performance provides performance tracking with bounded retention
// of operation markers.
package performance

import (
	"fmt"
	"sync"
	"time"
)

// Tracker manages performance markers and provides metrics aggregation
type Tracker struct {
	markers map[string]*Marker // Active and completed markers by unique ID
	order   []string           // Insertion order for bounded retention
	mu      sync.RWMutex       // Protects concurrent access
	started time.Time          // When tracking started
	config  *TrackerConfig     // Tracker configuration
	counter uint64             // Monotonic marker ID suffix
}

// TrackerConfig contains configuration options for the performance tracker
type TrackerConfig struct {
	MaxMarkers int `json:"maxMarkers"` // Maximum number of markers to retain
}

// DefaultTrackerConfig returns a sensible default configuration
func DefaultTrackerConfig() *TrackerConfig {
	return &TrackerConfig{
		MaxMarkers: 10000,
	}
}

// NewTracker creates a new performance tracker with the given configuration
func NewTracker(config *TrackerConfig) *Tracker {
	if config == nil {
		config = DefaultTrackerConfig()
	}

	return &Tracker{
		markers: make(map[string]*Marker),
		config:  config,
		started: time.Now(),
	}
}

// StartOperation begins tracking a new operation and returns its marker
func (t *Tracker) StartOperation(operation, sessionID string) *Marker {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.counter++
	id := fmt.Sprintf("%s:%d", operation, t.counter)

	marker := &Marker{
		Operation: operation,
		SessionID: sessionID,
		StartTime: time.Now(),
		Metadata:  make(map[string]any),
	}

	t.markers[id] = marker
	t.order = append(t.order, id)

	// Bounded retention: drop the oldest markers once over capacity
	if len(t.order) > t.config.MaxMarkers {
		overflow := len(t.order) - t.config.MaxMarkers
		for _, oldID := range t.order[:overflow] {
			delete(t.markers, oldID)
		}
		t.order = t.order[overflow:]
	}

	return marker
}

// Summary aggregates completed markers into per-operation statistics
func (t *Tracker) Summary() map[string]OperationStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	stats := make(map[string]OperationStats)
	for _, marker := range t.markers {
		if !marker.Completed {
			continue
		}

		s := stats[marker.Operation]
		s.Count++
		s.TotalDuration += marker.Duration
		if marker.Success {
			s.Successes++
		}
		if marker.Duration > s.MaxDuration {
			s.MaxDuration = marker.Duration
		}
		stats[marker.Operation] = s
	}

	return stats
}

// OperationStats holds aggregate timing figures for one operation kind
type OperationStats struct {
	Count         int           `json:"count"`
	Successes     int           `json:"successes"`
	TotalDuration time.Duration `json:"totalDuration"`
	MaxDuration   time.Duration `json:"maxDuration"`
}

// Uptime reports how long the tracker has been running
func (t *Tracker) Uptime() time.Duration {
	return time.Since(t.started)
}
