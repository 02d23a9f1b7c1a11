package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

func TestCheckLimitsFreshSession(t *testing.T) {
	svc := NewLimitService(testLimits())
	session := &conversation.Session{ID: "test-session"}

	snapshot := svc.CheckLimits(session)

	assert.False(t, snapshot.TokenLimitReached)
	assert.False(t, snapshot.FlowLimitReached)
	assert.False(t, snapshot.ChatLimitReached)
	assert.False(t, snapshot.CostLimitReached)
	assert.False(t, snapshot.SessionExpired)
	assert.Equal(t, 3, snapshot.RemainingChats)
	assert.InDelta(t, 0.05, snapshot.RemainingBudget, 1e-9)
}

func TestCheckLimitsAtCeiling(t *testing.T) {
	svc := NewLimitService(testLimits())

	tests := []struct {
		name    string
		session *conversation.Session
		check   func(t *testing.T, s LimitsSnapshot)
	}{
		{
			name:    "token ceiling is inclusive",
			session: &conversation.Session{TokenCount: 8000},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.True(t, s.TokenLimitReached)
			},
		},
		{
			name:    "one token below ceiling",
			session: &conversation.Session{TokenCount: 7999},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.False(t, s.TokenLimitReached)
			},
		},
		{
			name:    "chat ceiling is inclusive",
			session: &conversation.Session{ChatCount: 3},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.True(t, s.ChatLimitReached)
				assert.Equal(t, 0, s.RemainingChats)
			},
		},
		{
			name:    "flow ceiling is inclusive",
			session: &conversation.Session{FlowCount: 5},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.True(t, s.FlowLimitReached)
			},
		},
		{
			name:    "cost ceiling is inclusive",
			session: &conversation.Session{CurrentChatCost: 0.05},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.True(t, s.CostLimitReached)
			},
		},
		{
			name:    "expired flag passes through",
			session: &conversation.Session{IsExpired: true},
			check: func(t *testing.T, s LimitsSnapshot) {
				assert.True(t, s.SessionExpired)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, svc.CheckLimits(tt.session))
		})
	}
}

func TestCalculateCost(t *testing.T) {
	svc := NewLimitService(testLimits())

	assert.InDelta(t, 0.0, svc.CalculateCost(0, 0), 1e-9)

	// 1000 input tokens at 0.00015/1k plus 1000 output at 0.0006/1k
	assert.InDelta(t, 0.00075, svc.CalculateCost(1000, 1000), 1e-9)

	// linear in both components
	single := svc.CalculateCost(300, 150)
	double := svc.CalculateCost(600, 300)
	assert.InDelta(t, 2*single, double, 1e-9)

	// input and output priced independently
	assert.InDelta(t,
		svc.CalculateCost(500, 0)+svc.CalculateCost(0, 200),
		svc.CalculateCost(500, 200), 1e-9)
}
