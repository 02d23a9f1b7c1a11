package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tennisshoppro/shop-assistant-go/internal/application/services"
	"github.com/tennisshoppro/shop-assistant-go/internal/domain/entities/catalog"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/caching/stores"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/logging"
	"github.com/tennisshoppro/shop-assistant-go/internal/infrastructure/observability/performance"
	"github.com/tennisshoppro/shop-assistant-go/internal/presentation/http/middleware"
)

type handlerFixture struct {
	router *gin.Engine
	store  *stores.SessionStore
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	config := logging.DefaultLoggerConfig()
	config.OutputToConsole = false
	logger, err := logging.NewChanneledLogger(config)
	require.NoError(t, err)

	info := &catalog.ProductInfo{
		Store: catalog.Store{
			Nome:     "TennisShop Pro",
			Telefono: "+39 02 1234567",
			Email:    "info@tennisshoppro.it",
		},
		Prodotti: []catalog.Product{
			{ID: "p1", Name: "Test Racket", Price: 99.9, Category: "racchette"},
		},
	}

	store := stores.NewSessionStore(45*time.Minute, logger)
	limitSvc := services.NewLimitService(services.Limits{
		MaxTokensPerSession: 8000,
		MaxChatsPerSession:  3,
		MaxFlowsPerSession:  5,
		MaxCostPerChat:      0.05,
		InputTokenCost:      0.00015,
		OutputTokenCost:     0.0006,
	})
	recommendations := services.NewRecommendationService(info, logger)
	flowSvc := services.NewFlowService(recommendations, logger)
	promptSvc := services.NewPromptService(info)
	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	chatSvc := services.NewChatService(services.ChatServiceDeps{
		Sessions:      store,
		LimitSvc:      limitSvc,
		FlowSvc:       flowSvc,
		PromptSvc:     promptSvc,
		ProductInfo:   info,
		PerfTracker:   perfTracker,
		Logger:        logger,
		HistoryWindow: 6,
		HistoryMax:    12,
		AITimeout:     5 * time.Second,
	})

	chatHandlers := NewChatHandlers(chatSvc, logger, perfTracker)
	sessionHandlers := NewSessionHandlers(store, limitSvc, logger)
	catalogHandlers := NewCatalogHandlers(info, logger)
	healthHandlers := NewHealthHandlers(store, limitSvc, perfTracker, false, false)

	router := gin.New()
	router.Use(middleware.SessionMiddleware())
	api := router.Group("/api")
	api.POST("/chat", chatHandlers.PostChat)
	api.GET("/session-info", sessionHandlers.GetSessionInfo)
	api.POST("/reset-session", sessionHandlers.PostResetSession)
	api.GET("/product-info", catalogHandlers.GetProductInfo)
	api.GET("/health", healthHandlers.GetHealth)

	return &handlerFixture{router: router, store: store}
}

func (f *handlerFixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload
}

func TestPostChatRequiresMessage(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/chat", map[string]any{"sessionId": "s1"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostChatDegradedWithoutAI(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/chat", map[string]any{
		"message":   "ciao",
		"sessionId": "s1",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, true, payload["error"])
	assert.Equal(t, "s1", payload["sessionId"])
}

func TestPostChatMintsSessionIDWhenAbsent(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/chat", map[string]any{"message": "ciao"})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.NotEmpty(t, payload["sessionId"])
	assert.Equal(t, payload["sessionId"], w.Header().Get("X-Session-ID"))
}

func TestGetSessionInfoUnknownSession(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodGet, "/api/session-info?sessionId=ghost", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, true, payload["isNew"])
	assert.Equal(t, float64(0), payload["chatCount"])
	assert.Equal(t, float64(3), payload["remainingChats"])
	assert.Equal(t, float64(8000), payload["maxTokens"])
	assert.Equal(t, float64(3), payload["maxChats"])
	assert.Equal(t, float64(0), payload["flowStep"])
	assert.Equal(t, map[string]any{}, payload["flowData"])
	assert.Equal(t, false, payload["isExpired"])

	// inspection must not create the session
	assert.Zero(t, f.store.Count())
}

func TestGetSessionInfoIsIdempotent(t *testing.T) {
	f := newHandlerFixture(t)

	session := f.store.GetOrCreate("s1")
	session.TokenCount = 250
	session.ChatCount = 1
	lastActivity := session.LastActivity

	first := decode(t, f.do(t, http.MethodGet, "/api/session-info?sessionId=s1", nil))
	second := decode(t, f.do(t, http.MethodGet, "/api/session-info?sessionId=s1", nil))

	assert.Equal(t, first, second)
	assert.Equal(t, float64(250), first["tokenCount"])
	assert.Equal(t, false, first["isNew"])
	assert.Equal(t, float64(8000), first["maxTokens"])
	assert.Equal(t, float64(3), first["maxChats"])
	assert.Equal(t, float64(0), first["flowStep"])
	assert.Equal(t, false, first["isExpired"])

	got, _ := f.store.Get("s1")
	assert.Equal(t, lastActivity, got.LastActivity)
}

func TestPostResetSession(t *testing.T) {
	f := newHandlerFixture(t)

	session := f.store.GetOrCreate("s1")
	session.CurrentChatCost = 0.03

	w := f.do(t, http.MethodPost, "/api/reset-session", map[string]any{"sessionId": "s1"})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, true, payload["newChatStarted"])
	assert.Equal(t, float64(1), payload["chatCount"])

	got, _ := f.store.Get("s1")
	assert.Zero(t, got.CurrentChatCost)
}

func TestPostResetSessionHeaderOnly(t *testing.T) {
	f := newHandlerFixture(t)

	session := f.store.GetOrCreate("s1")
	session.CurrentChatCost = 0.03

	// the widget sends no body, just the session header
	req := httptest.NewRequest(http.MethodPost, "/api/reset-session", nil)
	req.Header.Set("X-Session-ID", "s1")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, true, payload["newChatStarted"])
	assert.Equal(t, "s1", payload["sessionId"])

	got, _ := f.store.Get("s1")
	assert.Zero(t, got.CurrentChatCost)
}

func TestPostResetSessionUnknownIsNoOp(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodPost, "/api/reset-session", map[string]any{"sessionId": "ghost"})

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, false, payload["newChatStarted"])
	assert.Zero(t, f.store.Count())
}

func TestGetProductInfo(t *testing.T) {
	f := newHandlerFixture(t)

	w := f.do(t, http.MethodGet, "/api/product-info", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	store, ok := payload["store"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "TennisShop Pro", store["nome"])
}

func TestGetHealth(t *testing.T) {
	f := newHandlerFixture(t)
	f.store.GetOrCreate("s1")

	w := f.do(t, http.MethodGet, "/api/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	payload := decode(t, w)
	assert.Equal(t, "ok", payload["status"])
	assert.Equal(t, float64(1), payload["sessions"])

	features, ok := payload["features"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, features["ai"])
}
