// Package handlers provides HTTP handlers for the assistant endpoints
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/services"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/middleware"
)

// ChatHandlers contains the chat endpoint handlers
type ChatHandlers struct {
	chatService *services.ChatService
	logger      *logging.ChanneledLogger
	perfTracker *performance.Tracker
}

// NewChatHandlers creates chat handlers with injected dependencies
func NewChatHandlers(chatService *services.ChatService, logger *logging.ChanneledLogger, perfTracker *performance.Tracker) *ChatHandlers {
	return &ChatHandlers{
		chatService: chatService,
		logger:      logger,
		perfTracker: perfTracker,
	}
}

// PostChat processes one chat message and returns the assistant's reply
func (h *ChatHandlers) PostChat(c *gin.Context) {
	start := time.Now()

	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}

	// body sessionId wins over the header-derived one so existing clients
	// keep their conversation
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = middleware.GetSessionID(c)
	}

	response, err := h.chatService.HandleMessage(c.Request.Context(), sessionID, req)
	if err != nil {
		h.logger.Chat().Error("Chat request failed", "duration", time.Since(start), "error", err.Error())
		c.JSON(http.StatusInternalServerError, response)
		return
	}

	h.logger.Chat().Info("Chat request completed", "duration", time.Since(start))
	c.JSON(http.StatusOK, response)
}
