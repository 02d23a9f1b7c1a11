package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
)

// SessionIDKey is the gin context key holding the resolved session ID
const SessionIDKey = "sessionID"

// SessionIDHeader carries the session ID on requests and responses
const SessionIDHeader = "X-Session-ID"

// SessionMiddleware resolves the session ID for the request: the client's
// X-Session-ID header when present, a freshly minted ULID otherwise. The
// resolved ID is always echoed back on the response so clients can persist it.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetHeader(SessionIDHeader)
		if sessionID == "" {
			sessionID = ulid.Make().String()
		}

		c.Set(SessionIDKey, sessionID)
		c.Header(SessionIDHeader, sessionID)
		c.Next()
	}
}

// GetSessionID returns the session ID resolved for this request
func GetSessionID(c *gin.Context) string {
	return c.GetString(SessionIDKey)
}
