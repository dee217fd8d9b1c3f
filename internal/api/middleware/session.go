package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/agribot/internal/domain"
)

// SessionHeader carries the session id on API calls
const SessionHeader = "X-Session-ID"

const sessionKey = "session_id"

// Session reads the session id from the header, or from the session_id
// query parameter for clients that cannot set headers (WebSocket).
func Session() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(SessionHeader)
		if id == "" {
			id = c.Query(sessionKey)
		}
		if id != "" {
			c.Set(sessionKey, id)
		}
		c.Next()
	}
}

// RequireSession rejects requests that carry no session id
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if SessionID(c) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domain.ErrNoSession.Error()})
			return
		}
		c.Next()
	}
}

// SessionID returns the session id of the request, if any
func SessionID(c *gin.Context) string {
	return c.GetString(sessionKey)
}
