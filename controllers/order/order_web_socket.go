package orderControllers

import (
	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/realtime"
)

// GET /admin/orders/ws streams order.created and order.updated events.
func OrderWebSocketHandler(hub *realtime.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub.ServeWS(c.Writer, c.Request)
	}
}
