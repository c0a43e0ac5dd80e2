package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/models"
	"go.uber.org/zap"
)

const sessionKey = "session"

// BearerToken returns the token from the Authorization header, or the
// "token" query parameter for websocket clients that cannot set headers.
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	if header != "" {
		return strings.TrimSpace(header)
	}
	return c.Query("token")
}

// RequireRole lets a request through only when the gate authorizes it for
// role. Everyone else gets 401 with the login redirect target.
func RequireRole(gate *auth.Gate, role models.Role, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Evaluate(c.Request.Context(), BearerToken(c), role)
		if decision.State != auth.StateAuthorized {
			if decision.Err != nil && logger != nil {
				logger.Error("session lookup failed", zap.Error(decision.Err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":    "Unauthorized",
				"state":    decision.State,
				"redirect": decision.Redirect,
			})
			return
		}
		c.Set(sessionKey, decision.Session)
		c.Next()
	}
}

// OptionalSession attaches the caller's session when a valid token is sent
// and otherwise lets the request through anonymously.
func OptionalSession(provider *auth.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := BearerToken(c); token != "" {
			if sess, err := provider.Session(c.Request.Context(), token); err == nil {
				c.Set(sessionKey, sess)
			}
		}
		c.Next()
	}
}

func SessionFrom(c *gin.Context) *auth.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*auth.Session)
	return sess
}
