// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/tennisshoppro/shop-assistant-go/internal/application/services"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/ai"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/email"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
	"github.com/tennisshoppro/shop-assistant-go/pkg/config"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	ChatService           *services.ChatService
	FlowService           *services.FlowService
	LimitService          *services.LimitService
	PromptService         *services.PromptService
	RecommendationService *services.RecommendationService

	// Infrastructure Dependencies
	SessionStore *stores.SessionStore
	ProductInfo  *catalog.ProductInfo
	Completer    ai.Completer
	EmailService email.Service
	Logger       *logging.ChanneledLogger
	PerfTracker  *performance.Tracker
}

// NewContainer creates and wires all singleton services. Completer and
// emailService may be nil; the chat service answers in degraded mode without
// them.
func NewContainer(
	productInfo *catalog.ProductInfo,
	sessionStore *stores.SessionStore,
	completer ai.Completer,
	emailService email.Service,
	logger *logging.ChanneledLogger,
	perfTracker *performance.Tracker,
) *Container {
	limitService := services.NewLimitService(services.Limits{
		MaxTokensPerSession: config.MaxTokensPerSession,
		MaxChatsPerSession:  config.MaxChatsPerSession,
		MaxFlowsPerSession:  config.MaxFlowsPerSession,
		MaxCostPerChat:      config.MaxCostPerChat,
		InputTokenCost:      config.InputTokenCost,
		OutputTokenCost:     config.OutputTokenCost,
	})
	recommendationService := services.NewRecommendationService(productInfo, logger)
	flowService := services.NewFlowService(recommendationService, logger)
	promptService := services.NewPromptService(productInfo)

	chatService := services.NewChatService(services.ChatServiceDeps{
		Sessions:      sessionStore,
		LimitSvc:      limitService,
		FlowSvc:       flowService,
		PromptSvc:     promptService,
		Completer:     completer,
		Email:         emailService,
		ProductInfo:   productInfo,
		PerfTracker:   perfTracker,
		Logger:        logger,
		HistoryWindow: config.HistoryWindow,
		HistoryMax:    config.HistoryMax,
		AITimeout:     config.AIRequestTimeout,
	})

	return &Container{
		ChatService:           chatService,
		FlowService:           flowService,
		LimitService:          limitService,
		PromptService:         promptService,
		RecommendationService: recommendationService,

		SessionStore: sessionStore,
		ProductInfo:  productInfo,
		Completer:    completer,
		EmailService: emailService,
		Logger:       logger,
		PerfTracker:  perfTracker,
	}
}
