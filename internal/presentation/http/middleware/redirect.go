package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CanonicalHostMiddleware permanently redirects requests addressed to any
// other host onto the configured canonical host. An empty canonical host
// disables the redirect.
func CanonicalHostMiddleware(canonicalHost string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if canonicalHost == "" || c.Request.Host == canonicalHost {
			c.Next()
			return
		}

		target := "https://" + canonicalHost + c.Request.URL.RequestURI()
		c.Redirect(http.StatusMovedPermanently, target)
		c.Abort()
	}
}
