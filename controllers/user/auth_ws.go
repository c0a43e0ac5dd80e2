package userControllers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/realtime"
	"go.uber.org/zap"
)

// GET /auth/ws?token=&role= streams gate decisions: checking first, then a
// fresh decision whenever the user's auth state changes.
func AuthStateWebSocket(gate *auth.Gate, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.BearerToken(c)
		role := models.Role(c.Query("role"))
		err := realtime.Stream(c.Writer, c.Request, "auth.state", func(ctx context.Context) <-chan auth.Decision {
			return gate.Watch(ctx, token, role)
		})
		if err != nil {
			logger.Warn("auth state stream ended", zap.Error(err))
		}
	}
}
