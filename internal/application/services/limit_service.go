// Package services provides application-level orchestration services
package services

import (
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

// Limits holds the configured usage ceilings for a session
type Limits struct {
	MaxTokensPerSession int
	MaxChatsPerSession  int
	MaxFlowsPerSession  int
	MaxCostPerChat      float64
	InputTokenCost      float64 // per 1000 input tokens
	OutputTokenCost     float64 // per 1000 output tokens
}

// LimitsSnapshot is the derived gate computed from session counters and the
// configured ceilings. It is never stored.
type LimitsSnapshot struct {
	TokenLimitReached bool    `json:"tokenLimitReached"`
	FlowLimitReached  bool    `json:"flowLimitReached"`
	ChatLimitReached  bool    `json:"chatLimitReached"`
	CostLimitReached  bool    `json:"costLimitReached"`
	SessionExpired    bool    `json:"sessionExpired"`
	CurrentChatCost   float64 `json:"currentChatCost"`
	RemainingChats    int     `json:"remainingChats"`
	RemainingBudget   float64 `json:"remainingBudget"`
}

// LimitService computes usage gates and call costs. All methods are pure
// functions of their inputs and the configured ceilings.
type LimitService struct {
	limits Limits
}

// NewLimitService creates a limit service with the given ceilings
func NewLimitService(limits Limits) *LimitService {
	return &LimitService{limits: limits}
}

// Limits returns the configured ceilings
func (s *LimitService) Limits() Limits {
	return s.limits
}

// CheckLimits compares session counters against the configured ceilings
func (s *LimitService) CheckLimits(session *conversation.Session) LimitsSnapshot {
	return LimitsSnapshot{
		TokenLimitReached: session.TokenCount >= s.limits.MaxTokensPerSession,
		FlowLimitReached:  session.FlowCount >= s.limits.MaxFlowsPerSession,
		ChatLimitReached:  session.ChatCount >= s.limits.MaxChatsPerSession,
		CostLimitReached:  session.CurrentChatCost >= s.limits.MaxCostPerChat,
		SessionExpired:    session.IsExpired,
		CurrentChatCost:   session.CurrentChatCost,
		RemainingChats:    s.limits.MaxChatsPerSession - session.ChatCount,
		RemainingBudget:   s.limits.MaxCostPerChat - session.CurrentChatCost,
	}
}

// CalculateCost prices one model call, linear in tokens at the configured
// per-1000-token rates
func (s *LimitService) CalculateCost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*s.limits.InputTokenCost/1000 +
		float64(outputTokens)*s.limits.OutputTokenCost/1000
}
