package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(mw gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, GetSessionID(c))
	})
	return r
}

func TestSessionMiddlewareEchoesClientID(t *testing.T) {
	r := newRouter(SessionMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(SessionIDHeader, "client-session")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "client-session", w.Body.String())
	assert.Equal(t, "client-session", w.Header().Get(SessionIDHeader))
}

func TestSessionMiddlewareMintsULID(t *testing.T) {
	r := newRouter(SessionMiddleware())

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	minted := w.Header().Get(SessionIDHeader)
	require.Len(t, minted, 26)
	assert.Equal(t, minted, w.Body.String())

	// a second request without a header gets a different ID
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.NotEqual(t, minted, w2.Header().Get(SessionIDHeader))
}

func TestCanonicalHostRedirect(t *testing.T) {
	r := newRouter(CanonicalHostMiddleware("www.tennisshoppro.it"))

	req := httptest.NewRequest(http.MethodGet, "/ping?x=1", nil)
	req.Host = "tennisshoppro.it"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "https://www.tennisshoppro.it/ping?x=1", w.Header().Get("Location"))
}

func TestCanonicalHostDisabledWhenEmpty(t *testing.T) {
	r := newRouter(CanonicalHostMiddleware(""))

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Host = "anything.example"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
