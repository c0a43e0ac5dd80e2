package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/masum-diu/nishaan/controllers/user"
)

// SetupAuthRoutes registers all "/auth/*" endpoints plus customer sign-up.
func SetupAuthRoutes(r *gin.Engine, d *Deps) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/login", userControllers.Login(d.Provider, d.Logger))
		authGroup.POST("/logout", userControllers.Logout(d.Provider, d.Logger))
		authGroup.GET("/session", userControllers.CurrentSession(d.Gate))
		authGroup.GET("/ws", userControllers.AuthStateWebSocket(d.Gate, d.Logger))
		authGroup.POST("/guest", userControllers.CreateGuestSession())
	}

	r.POST("/api/admin/customer", userControllers.RegisterCustomer(d.Provider, d.Logger))
}
