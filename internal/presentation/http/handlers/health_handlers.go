package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/services"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
	"github.com/tennisshoppro/shop-assistant-go/pkg/config"
)

// HealthHandlers reports process health and feature availability
type HealthHandlers struct {
	sessionStore *stores.SessionStore
	limitService *services.LimitService
	perfTracker  *performance.Tracker
	aiConfigured bool
	emailEnabled bool
}

// NewHealthHandlers creates health handlers with injected dependencies
func NewHealthHandlers(sessionStore *stores.SessionStore, limitService *services.LimitService, perfTracker *performance.Tracker, aiConfigured, emailEnabled bool) *HealthHandlers {
	return &HealthHandlers{
		sessionStore: sessionStore,
		limitService: limitService,
		perfTracker:  perfTracker,
		aiConfigured: aiConfigured,
		emailEnabled: emailEnabled,
	}
}

// GetHealth returns the service status, configured model and limits, live
// session count and feature flags
func (h *HealthHandlers) GetHealth(c *gin.Context) {
	limits := h.limitService.Limits()

	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    h.perfTracker.Uptime().String(),
		"model":     config.OpenAIModel,
		"sessions":  h.sessionStore.Count(),
		"limits": gin.H{
			"maxTokensPerSession": limits.MaxTokensPerSession,
			"maxChatsPerSession":  limits.MaxChatsPerSession,
			"maxFlowsPerSession":  limits.MaxFlowsPerSession,
			"maxCostPerChat":      limits.MaxCostPerChat,
		},
		"features": gin.H{
			"ai":    h.aiConfigured,
			"email": h.emailEnabled,
		},
	})
}

// GetPerformanceSummary returns aggregated operation statistics
func (h *HealthHandlers) GetPerformanceSummary(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"uptime":     h.perfTracker.Uptime().String(),
		"operations": h.perfTracker.Summary(),
	})
}
