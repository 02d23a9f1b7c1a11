// Package stores provides the in-memory session registry
package stores

import (
	"sync"
	"time"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
)

// SessionStore owns the process-wide session mapping. It is constructed once
// at startup and passed by handle to request handlers; entries are reclaimed
// only by Sweep.
type SessionStore struct {
	sessions map[string]*conversation.Session
	timeout  time.Duration
	mu       sync.RWMutex
	logger   *logging.ChanneledLogger
}

// NewSessionStore creates a new session store with the given idle timeout
func NewSessionStore(timeout time.Duration, logger *logging.ChanneledLogger) *SessionStore {
	if logger != nil {
		logger.Session().Info("Initializing session store", "timeout", timeout)
	}
	return &SessionStore{
		sessions: make(map[string]*conversation.Session),
		timeout:  timeout,
		logger:   logger,
	}
}

// GetOrCreate returns the session for sessionID, creating it with zeroed
// counters on first sight. Every call bumps LastActivity; sessions older
// than the configured timeout are flagged expired but not removed — expiry
// is advisory, deletion happens only in Sweep.
func (ss *SessionStore) GetOrCreate(sessionID string) *conversation.Session {
	start := time.Now()
	now := time.Now().UTC()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	session, exists := ss.sessions[sessionID]
	if !exists {
		session = &conversation.Session{
			ID:                  sessionID,
			CreatedAt:           now,
			LastActivity:        now,
			ConversationHistory: []conversation.Message{},
		}
		ss.sessions[sessionID] = session

		if ss.logger != nil {
			ss.logger.WithSession(logging.ChannelSession, sessionID).Info("Session created", "duration", time.Since(start))
		}
		return session
	}

	session.LastActivity = now
	if now.Sub(session.CreatedAt) > ss.timeout {
		session.IsExpired = true
	}

	if ss.logger != nil {
		ss.logger.WithSession(logging.ChannelSession, sessionID).Debug("Session fetched", "expired", session.IsExpired, "duration", time.Since(start))
	}
	return session
}

// Get returns the session for sessionID without creating or mutating it
func (ss *SessionStore) Get(sessionID string) (*conversation.Session, bool) {
	ss.mu.RLock()
	defer ss.mu.RUnlock()

	session, exists := ss.sessions[sessionID]
	return session, exists
}

// ResetChat starts a new chat cycle on the session: the chat counter
// advances, per-chat cost and history clear, and any active flow is
// abandoned. Cumulative token and cost totals are untouched.
func (ss *SessionStore) ResetChat(session *conversation.Session) {
	session.ChatCount++
	session.CurrentChatCost = 0
	session.ConversationHistory = []conversation.Message{}
	session.Flow = nil

	if ss.logger != nil {
		ss.logger.WithSession(logging.ChannelSession, session.ID).Info("Chat reset", "chatCount", session.ChatCount)
	}
}

// Sweep removes every session idle beyond the given timeout and returns the
// number of sessions removed
func (ss *SessionStore) Sweep(timeout time.Duration) int {
	start := time.Now()
	now := time.Now().UTC()

	ss.mu.Lock()
	defer ss.mu.Unlock()

	removed := 0
	for sessionID, session := range ss.sessions {
		if now.Sub(session.LastActivity) > timeout {
			delete(ss.sessions, sessionID)
			removed++

			if ss.logger != nil {
				ss.logger.WithSession(logging.ChannelSession, sessionID).Info("Session removed for inactivity")
			}
		}
	}

	if ss.logger != nil && removed > 0 {
		ss.logger.Session().Info("Session sweep completed", "removed", removed, "remaining", len(ss.sessions), "duration", time.Since(start))
	}
	return removed
}

// Count returns the number of live sessions
func (ss *SessionStore) Count() int {
	ss.mu.RLock()
	defer ss.mu.RUnlock()
	return len(ss.sessions)
}
