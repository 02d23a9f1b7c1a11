package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/services"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/middleware"
)

// SessionHandlers contains the session inspection and reset handlers
type SessionHandlers struct {
	sessionStore *stores.SessionStore
	limitService *services.LimitService
	logger       *logging.ChanneledLogger
}

// NewSessionHandlers creates session handlers with injected dependencies
func NewSessionHandlers(sessionStore *stores.SessionStore, limitService *services.LimitService, logger *logging.ChanneledLogger) *SessionHandlers {
	return &SessionHandlers{
		sessionStore: sessionStore,
		limitService: limitService,
		logger:       logger,
	}
}

// GetSessionInfo reports the usage state of a session without creating or
// touching it. Unknown sessions answer with zeroed counters so the storefront
// widget can render before the first message.
func (h *SessionHandlers) GetSessionInfo(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = middleware.GetSessionID(c)
	}

	limits := h.limitService.Limits()

	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		c.JSON(http.StatusOK, gin.H{
			"sessionId":      sessionID,
			"isNew":          true,
			"tokenCount":     0,
			"maxTokens":      limits.MaxTokensPerSession,
			"currentFlow":    "",
			"flowData":       map[string]string{},
			"flowStep":       0,
			"flowCount":      0,
			"chatCount":      0,
			"maxChats":       limits.MaxChatsPerSession,
			"totalCost":      0,
			"isExpired":      false,
			"remainingChats": limits.MaxChatsPerSession,
			"limits": services.LimitsSnapshot{
				RemainingChats:  limits.MaxChatsPerSession,
				RemainingBudget: limits.MaxCostPerChat,
			},
		})
		return
	}

	session.Lock()
	defer session.Unlock()

	snapshot := h.limitService.CheckLimits(session)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":          session.ID,
		"isNew":              false,
		"createdAt":          session.CreatedAt,
		"lastActivity":       session.LastActivity,
		"tokenCount":         session.TokenCount,
		"maxTokens":          limits.MaxTokensPerSession,
		"currentFlow":        session.CurrentFlowName(),
		"flowData":           session.FlowData(),
		"flowStep":           session.FlowStep(),
		"flowCount":          session.FlowCount,
		"chatCount":          session.ChatCount,
		"maxChats":           limits.MaxChatsPerSession,
		"totalCost":          session.TotalCost,
		"currentChatCost":    session.CurrentChatCost,
		"conversationLength": len(session.ConversationHistory),
		"isExpired":          session.IsExpired,
		"userPreferences":    session.UserPreferences,
		"remainingChats":     snapshot.RemainingChats,
		"limits":             snapshot,
	})
}

// ResetSessionRequest is the reset endpoint payload
type ResetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

// PostResetSession starts a new chat cycle on an existing session. The
// session is identified by the X-Session-ID header; a JSON body with a
// sessionId is accepted but optional. Resetting an unknown session is a
// no-op that still answers OK.
func (h *SessionHandlers) PostResetSession(c *gin.Context) {
	var req ResetSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.GetSessionID(c)
	}

	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		c.JSON(http.StatusOK, gin.H{
			"sessionId":      sessionID,
			"newChatStarted": false,
			"message":        "Sessione non trovata, nessun reset necessario",
		})
		return
	}

	session.Lock()
	defer session.Unlock()

	h.sessionStore.ResetChat(session)
	snapshot := h.limitService.CheckLimits(session)

	h.logger.Session().Info("Session reset via API", "chatCount", session.ChatCount)

	c.JSON(http.StatusOK, gin.H{
		"sessionId":        session.ID,
		"newChatStarted":   true,
		"chatCount":        session.ChatCount,
		"remainingChats":   snapshot.RemainingChats,
		"chatLimitReached": snapshot.ChatLimitReached,
	})
}
