package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/conversation"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/ai"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/email"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
)

// demoOrderPattern matches order numbers anywhere in a message: "TS" followed
// by at least six digits
var demoOrderPattern = regexp.MustCompile(`(?i)\bTS\d{6,}\b`)

// ChatContext is the optional storefront context sent with a message: a
// catalog excerpt rendered by the widget and preferences the client already
// knows about
type ChatContext struct {
	ProductCatalog  []catalog.Product             `json:"productCatalog,omitempty"`
	UserPreferences *conversation.UserPreferences `json:"userPreferences,omitempty"`
}

// ChatRequest is the inbound chat payload
type ChatRequest struct {
	Message         string       `json:"message" binding:"required"`
	SessionID       string       `json:"sessionId"`
	ForceNewSession bool         `json:"forceNewSession"`
	Context         *ChatContext `json:"context,omitempty"`
}

// CostInfo reports the money side of one chat exchange
type CostInfo struct {
	ThisCall         float64 `json:"thisCall"`
	CurrentChatCost  float64 `json:"currentChatCost"`
	TotalSessionCost float64 `json:"totalSessionCost"`
	RemainingBudget  float64 `json:"remainingBudget"`
}

// ChatInfo reports where the session stands against its chat allowance
type ChatInfo struct {
	CurrentChat    int `json:"currentChat"`
	MaxChats       int `json:"maxChats"`
	RemainingChats int `json:"remainingChats"`
}

// ChatResponse is the outbound chat payload. Most fields are situational and
// omitted when they do not apply to the branch that produced the response.
type ChatResponse struct {
	Response  string `json:"response"`
	SessionID string `json:"sessionId"`

	CurrentFlow   string            `json:"currentFlow,omitempty"`
	FlowStep      int               `json:"flowStep,omitempty"`
	FlowData      map[string]string `json:"flowData,omitempty"`
	Progress      string            `json:"progress,omitempty"`
	FlowCompleted bool              `json:"flowCompleted,omitempty"`

	Recommendations string                        `json:"recommendations,omitempty"`
	Products        []catalog.Product             `json:"products,omitempty"`
	UserPreferences *conversation.UserPreferences `json:"userPreferences,omitempty"`

	TokensUsed      int       `json:"tokensUsed,omitempty"`
	TotalTokens     int       `json:"totalTokens,omitempty"`
	RemainingTokens int       `json:"remainingTokens,omitempty"`
	Cost            *CostInfo `json:"costInfo,omitempty"`
	ChatInfo        *ChatInfo `json:"chatInfo,omitempty"`

	LimitReached     bool `json:"limitReached,omitempty"`
	ChatLimitReached bool `json:"chatLimitReached,omitempty"`
	NewChatStarted   bool `json:"newChatStarted,omitempty"`
	OrderTracking    bool `json:"orderTracking,omitempty"`
	Error            bool `json:"error,omitempty"`
}

// ChatService orchestrates one chat exchange: usage gating, demo order
// lookups, guided flows, and the AI fallback for everything scripted logic
// does not cover.
type ChatService struct {
	sessions    *stores.SessionStore
	limitSvc    *LimitService
	flowSvc     *FlowService
	promptSvc   *PromptService
	completer   ai.Completer
	emailSvc    email.Service
	productInfo *catalog.ProductInfo
	perfTracker *performance.Tracker
	logger      *logging.ChanneledLogger

	historyWindow int
	historyMax    int
	aiTimeout     time.Duration
}

// ChatServiceDeps bundles the orchestrator's collaborators. Completer and
// Email may be nil; the service degrades instead of failing.
type ChatServiceDeps struct {
	Sessions    *stores.SessionStore
	LimitSvc    *LimitService
	FlowSvc     *FlowService
	PromptSvc   *PromptService
	Completer   ai.Completer
	Email       email.Service
	ProductInfo *catalog.ProductInfo
	PerfTracker *performance.Tracker
	Logger      *logging.ChanneledLogger

	HistoryWindow int
	HistoryMax    int
	AITimeout     time.Duration
}

func NewChatService(deps ChatServiceDeps) *ChatService {
	return &ChatService{
		sessions:      deps.Sessions,
		limitSvc:      deps.LimitSvc,
		flowSvc:       deps.FlowSvc,
		promptSvc:     deps.PromptSvc,
		completer:     deps.Completer,
		emailSvc:      deps.Email,
		productInfo:   deps.ProductInfo,
		perfTracker:   deps.PerfTracker,
		logger:        deps.Logger,
		historyWindow: deps.HistoryWindow,
		historyMax:    deps.HistoryMax,
		aiTimeout:     deps.AITimeout,
	}
}

// HandleMessage processes one message for sessionID and returns the response
// payload. A non-nil error means the AI call itself failed; the returned
// response still carries the user-facing fallback text for a 500 reply.
func (s *ChatService) HandleMessage(ctx context.Context, sessionID string, req ChatRequest) (*ChatResponse, error) {
	marker := s.perfTracker.StartOperation("chat_message", sessionID)
	defer marker.Complete()

	_, existed := s.sessions.Get(sessionID)
	session := s.sessions.GetOrCreate(sessionID)

	session.Lock()
	defer session.Unlock()

	if req.ForceNewSession && existed {
		s.sessions.ResetChat(session)
	}

	if s.completer == nil {
		marker.SetSuccess(true)
		marker.AddMetadata("branch", "ai_unconfigured")
		return &ChatResponse{
			Response: "⚠️ L'assistente AI non è al momento disponibile. Puoi comunque contattarci direttamente:<br>" +
				s.storeContacts(),
			SessionID: sessionID,
			Error:     true,
		}, nil
	}

	snapshot := s.limitSvc.CheckLimits(session)

	if snapshot.ChatLimitReached {
		marker.SetSuccess(true)
		marker.AddMetadata("branch", "chat_limit")
		return s.exhaustedResponse(session), nil
	}

	if snapshot.CostLimitReached {
		s.sessions.ResetChat(session)
		snapshot = s.limitSvc.CheckLimits(session)

		if snapshot.ChatLimitReached {
			s.notifySessionExhausted(session)
			marker.SetSuccess(true)
			marker.AddMetadata("branch", "chat_limit_after_reset")
			return s.exhaustedResponse(session), nil
		}

		marker.SetSuccess(true)
		marker.AddMetadata("branch", "cost_reset")
		return &ChatResponse{
			Response: "💰 Il budget di questa chat è esaurito, quindi ne ho aperta una nuova per te!<br><br>" +
				"La conversazione riparte da zero: come posso aiutarti? 😊",
			SessionID:      sessionID,
			NewChatStarted: true,
			ChatInfo:       s.chatInfo(session),
		}, nil
	}

	if response, ok := s.handleDemoOrder(session, req.Message); ok {
		marker.SetSuccess(true)
		marker.AddMetadata("branch", "order_tracking")
		return response, nil
	}

	if session.FlowActive() {
		marker.SetSuccess(true)
		marker.AddMetadata("branch", "flow_step")
		return s.flowResponse(session, s.flowSvc.ProcessStep(session, req.Message), req.Message), nil
	}

	if flowType, ok := s.flowSvc.DetectIntent(req.Message); ok {
		marker.SetSuccess(true)
		marker.AddMetadata("branch", "flow_start")
		return s.flowResponse(session, s.flowSvc.StartFlow(session, flowType), req.Message), nil
	}

	return s.handleAIFallback(ctx, session, req, marker)
}

// handleDemoOrder short-circuits messages containing an order number when a
// demo order record exists. The matching number gets the tracking record,
// any other number a polite miss with orderTracking false. Without a demo
// record the message falls through to the flows and the AI.
func (s *ChatService) handleDemoOrder(session *conversation.Session, message string) (*ChatResponse, bool) {
	demo := s.productInfo.OrdineDemo
	if demo == nil {
		return nil, false
	}

	match := demoOrderPattern.FindString(message)
	if match == "" {
		return nil, false
	}

	orderNumber := strings.ToUpper(match)
	found := strings.EqualFold(orderNumber, demo.NumeroOrdine)

	var response string
	if found {
		response = fmt.Sprintf(
			"📦 <strong>Ordine %s</strong><br><br>"+
				"Stato: <strong>%s</strong><br>"+
				"Tracking: %s<br><br>"+
				"🔗 Segui la spedizione: %s<br><br>"+
				"Posso aiutarti con altro? 😊",
			demo.NumeroOrdine, demo.Stato, demo.Tracking, demo.LinkTracking)
	} else {
		response = fmt.Sprintf(
			"❌ Il codice ordine <strong>%s</strong> non risulta nei nostri sistemi demo.<br>"+
				"Verifica di aver inserito il codice corretto o contattaci per assistenza.<br><br>%s",
			orderNumber, s.storeContacts())
	}

	s.logger.Chat().Info("Order lookup", "found", found)

	session.AppendExchange(message, response, s.historyMax)

	return &ChatResponse{
		Response:      response,
		SessionID:     session.ID,
		OrderTracking: found,
	}, true
}

// flowResponse maps a flow engine result onto the wire payload and records
// the exchange in history
func (s *ChatService) flowResponse(session *conversation.Session, result FlowResult, message string) *ChatResponse {
	session.AppendExchange(message, result.Response, s.historyMax)

	response := &ChatResponse{
		Response:    result.Response,
		SessionID:   session.ID,
		CurrentFlow: session.CurrentFlowName(),
		FlowStep:    session.FlowStep(),
		FlowData:    session.FlowData(),
		ChatInfo:    s.chatInfo(session),
	}

	if result.Completed {
		response.FlowCompleted = true
		response.Recommendations = result.Recommendations
		response.Products = result.Products
		if result.CompletedFlow == conversation.FlowProductConsultation {
			prefs := session.UserPreferences
			response.UserPreferences = &prefs
		}
		return response
	}

	response.Progress = result.Progress
	return response
}

// handleAIFallback sends the message to the model with the store context and
// a bounded history window, then accounts tokens and cost on the session.
func (s *ChatService) handleAIFallback(ctx context.Context, session *conversation.Session, req ChatRequest, marker *performance.Marker) (*ChatResponse, error) {
	message := req.Message

	var contextProducts []catalog.Product
	if req.Context != nil {
		contextProducts = req.Context.ProductCatalog
		if prefs := req.Context.UserPreferences; prefs != nil {
			if prefs.Level != "" {
				session.UserPreferences.Level = prefs.Level
			}
			if prefs.Budget != "" {
				session.UserPreferences.Budget = prefs.Budget
			}
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.aiTimeout)
	defer cancel()

	completion, err := s.completer.Complete(callCtx, ai.Request{
		SystemPrompt: s.promptSvc.BuildSystemPrompt(session, contextProducts),
		History:      session.RecentHistory(s.historyWindow),
		UserMessage:  message,
	})
	if err != nil {
		marker.SetError(err)
		s.logger.LogError(logging.ChannelAI, "chat_completion", err, map[string]any{
			"sessionId": session.ID,
		})
		return &ChatResponse{
			Response: "😔 Mi dispiace, sto avendo qualche difficoltà tecnica in questo momento.<br><br>" +
				"Riprova tra qualche istante, oppure contattaci direttamente:<br>" + s.storeContacts(),
			SessionID: session.ID,
			Error:     true,
		}, fmt.Errorf("ai fallback failed: %w", err)
	}

	callCost := s.limitSvc.CalculateCost(completion.PromptTokens, completion.CompletionTokens)
	session.TokenCount += completion.TotalTokens
	session.TotalCost += callCost
	session.CurrentChatCost += callCost
	session.AppendExchange(message, completion.Content, s.historyMax)

	limits := s.limitSvc.Limits()
	marker.SetSuccess(true)
	marker.AddMetadata("branch", "ai")
	marker.AddMetadata("tokens", completion.TotalTokens)

	s.logger.Chat().Info("AI exchange completed",
		"tokens", completion.TotalTokens,
		"cost", callCost,
		"chatCost", session.CurrentChatCost)

	return &ChatResponse{
		Response:        completion.Content,
		SessionID:       session.ID,
		TokensUsed:      completion.TotalTokens,
		TotalTokens:     session.TokenCount,
		RemainingTokens: limits.MaxTokensPerSession - session.TokenCount,
		Cost: &CostInfo{
			ThisCall:         callCost,
			CurrentChatCost:  session.CurrentChatCost,
			TotalSessionCost: session.TotalCost,
			RemainingBudget:  limits.MaxCostPerChat - session.CurrentChatCost,
		},
		ChatInfo: s.chatInfo(session),
	}, nil
}

// exhaustedResponse is the terminal reply once every chat in the session has
// been used
func (s *ChatService) exhaustedResponse(session *conversation.Session) *ChatResponse {
	limits := s.limitSvc.Limits()
	return &ChatResponse{
		Response: fmt.Sprintf(
			"🙏 Hai utilizzato tutte le %d chat disponibili per questa sessione demo.<br><br>"+
				"Per continuare a parlare con noi, contattaci direttamente:<br>%s",
			limits.MaxChatsPerSession, s.storeContacts()),
		SessionID:        session.ID,
		LimitReached:     true,
		ChatLimitReached: true,
		ChatInfo:         s.chatInfo(session),
	}
}

// notifySessionExhausted dispatches the store notification off the request
// path; a configured email service is optional.
func (s *ChatService) notifySessionExhausted(session *conversation.Session) {
	if s.emailSvc == nil {
		return
	}

	sessionID := session.ID
	chatCount := session.ChatCount
	totalCost := session.TotalCost

	go func() {
		if err := s.emailSvc.SendSessionExhausted(sessionID, chatCount, totalCost); err != nil {
			s.logger.LogError(logging.ChannelEmail, "session_exhausted_notification", err, map[string]any{
				"sessionId": sessionID,
			})
		}
	}()
}

func (s *ChatService) chatInfo(session *conversation.Session) *ChatInfo {
	limits := s.limitSvc.Limits()
	current := session.ChatCount + 1
	if current > limits.MaxChatsPerSession {
		current = limits.MaxChatsPerSession
	}
	return &ChatInfo{
		CurrentChat:    current,
		MaxChats:       limits.MaxChatsPerSession,
		RemainingChats: limits.MaxChatsPerSession - session.ChatCount,
	}
}

func (s *ChatService) storeContacts() string {
	store := s.productInfo.Store
	return fmt.Sprintf("📞 %s<br>📧 %s", store.Telefono, store.Email)
}
