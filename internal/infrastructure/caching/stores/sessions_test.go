package stores

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
)

func newTestStore(t *testing.T, timeout time.Duration) *SessionStore {
	t.Helper()
	return NewSessionStore(timeout, nil)
}

func TestGetOrCreateNewSession(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	session := store.GetOrCreate("s1")

	require.NotNil(t, session)
	assert.Equal(t, "s1", session.ID)
	assert.Zero(t, session.TokenCount)
	assert.Zero(t, session.ChatCount)
	assert.False(t, session.IsExpired)
	assert.NotNil(t, session.ConversationHistory)
	assert.Equal(t, 1, store.Count())
}

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	first := store.GetOrCreate("s1")
	first.TokenCount = 123

	second := store.GetOrCreate("s1")

	assert.Same(t, first, second)
	assert.Equal(t, 123, second.TokenCount)
	assert.Equal(t, 1, store.Count())
}

func TestGetOrCreateFlagsExpiredSession(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	session := store.GetOrCreate("s1")
	session.CreatedAt = time.Now().UTC().Add(-time.Hour)

	session = store.GetOrCreate("s1")

	// expiry is advisory: the session is flagged but still served
	assert.True(t, session.IsExpired)
	assert.Equal(t, 1, store.Count())
}

func TestGetDoesNotCreate(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	_, exists := store.Get("missing")

	assert.False(t, exists)
	assert.Zero(t, store.Count())
}

func TestGetDoesNotBumpActivity(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	session := store.GetOrCreate("s1")
	stale := time.Now().UTC().Add(-time.Minute)
	session.LastActivity = stale

	got, exists := store.Get("s1")

	require.True(t, exists)
	assert.Equal(t, stale, got.LastActivity)
}

func TestResetChatClearsPerChatState(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	session := store.GetOrCreate("s1")
	session.TokenCount = 500
	session.TotalCost = 0.02
	session.CurrentChatCost = 0.02
	session.ConversationHistory = []conversation.Message{
		{Role: conversation.RoleUser, Content: "ciao"},
	}
	session.Flow = &conversation.FlowState{Type: conversation.FlowSizeGuide}

	store.ResetChat(session)

	assert.Equal(t, 1, session.ChatCount)
	assert.Zero(t, session.CurrentChatCost)
	assert.Empty(t, session.ConversationHistory)
	assert.Nil(t, session.Flow)

	// cumulative counters survive the reset
	assert.Equal(t, 500, session.TokenCount)
	assert.InDelta(t, 0.02, session.TotalCost, 1e-9)
}

func TestSweepRemovesIdleSessions(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	idle := store.GetOrCreate("idle")
	idle.LastActivity = time.Now().UTC().Add(-2 * time.Hour)
	store.GetOrCreate("active")

	removed := store.Sweep(45 * time.Minute)

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, store.Count())
	_, exists := store.Get("idle")
	assert.False(t, exists)
	_, exists = store.Get("active")
	assert.True(t, exists)
}

func TestSweepEmptyStore(t *testing.T) {
	store := newTestStore(t, 45*time.Minute)

	assert.Zero(t, store.Sweep(45*time.Minute))
}
