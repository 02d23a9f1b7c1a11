// Package conversation defines the per-session conversation state tracked by
// the assistant: usage counters, rolling history, and guided-flow progress.
package conversation

import (
	"sync"
	"time"
)

// Role values for conversation history entries
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged entry in a session's rolling history
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// FlowType identifies one of the scripted guided flows
type FlowType string

const (
	FlowProductConsultation FlowType = "product_consultation"
	FlowSizeGuide           FlowType = "size_guide"
	FlowOrderSupport        FlowType = "order_support"
)

// FlowState tracks progress through an active guided flow. A nil *FlowState
// on the session means no flow is active; a non-nil one always satisfies
// 0 <= Step <= number of steps for its type (Step == len means pending
// finalization).
type FlowState struct {
	Type FlowType          `json:"type"`
	Step int               `json:"step"`
	Data map[string]string `json:"data"`
}

// UserPreferences is the preference snapshot mirrored out of flow answers
type UserPreferences struct {
	Level          string `json:"level,omitempty"`
	Budget         string `json:"budget,omitempty"`
	PlayingSurface string `json:"playingSurface,omitempty"`
	PlayingStyle   string `json:"playingStyle,omitempty"`
}

// Session is the server-side state bound to a client-supplied session ID.
// Counters accumulate across chat cycles; CurrentChatCost and history reset
// on every chat reset.
type Session struct {
	ID           string    `json:"sessionId"`
	CreatedAt    time.Time `json:"createdAt"`
	LastActivity time.Time `json:"lastActivity"`
	IsExpired    bool      `json:"isExpired"`

	TokenCount      int     `json:"tokenCount"`
	FlowCount       int     `json:"flowCount"`
	ChatCount       int     `json:"chatCount"`
	TotalCost       float64 `json:"totalCost"`
	CurrentChatCost float64 `json:"currentChatCost"`

	ConversationHistory []Message       `json:"conversationHistory"`
	Flow                *FlowState      `json:"flow,omitempty"`
	UserPreferences     UserPreferences `json:"userPreferences"`

	// mu serializes request handling for a single session ID. The store's
	// own lock only covers map access; concurrent requests against the same
	// session take this lock for their full read-modify-write cycle.
	mu sync.Mutex
}

// Lock acquires the per-session mutex
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session mutex
func (s *Session) Unlock() { s.mu.Unlock() }

// FlowActive reports whether a guided flow is currently in progress
func (s *Session) FlowActive() bool {
	return s.Flow != nil
}

// CurrentFlowName returns the active flow type as a string, or "" when idle.
// Response payloads use it so an idle session serializes as an absent flow.
func (s *Session) CurrentFlowName() string {
	if s.Flow == nil {
		return ""
	}
	return string(s.Flow.Type)
}

// FlowData returns the accumulated flow answers, never nil
func (s *Session) FlowData() map[string]string {
	if s.Flow == nil {
		return map[string]string{}
	}
	return s.Flow.Data
}

// FlowStep returns the current step index within the active flow, 0 when idle
func (s *Session) FlowStep() int {
	if s.Flow == nil {
		return 0
	}
	return s.Flow.Step
}

// AppendExchange pushes a user/assistant exchange onto the rolling history,
// trimming to the most recent max entries
func (s *Session) AppendExchange(userMsg, assistantMsg string, max int) {
	s.ConversationHistory = append(s.ConversationHistory,
		Message{Role: RoleUser, Content: userMsg},
		Message{Role: RoleAssistant, Content: assistantMsg},
	)
	if len(s.ConversationHistory) > max {
		s.ConversationHistory = s.ConversationHistory[len(s.ConversationHistory)-max:]
	}
}

// RecentHistory returns up to n of the most recent history entries
func (s *Session) RecentHistory(n int) []Message {
	if len(s.ConversationHistory) <= n {
		return s.ConversationHistory
	}
	return s.ConversationHistory[len(s.ConversationHistory)-n:]
}
