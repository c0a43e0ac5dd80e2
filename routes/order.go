package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/masum-diu/nishaan/controllers/order"
	userControllers "github.com/masum-diu/nishaan/controllers/user"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/models"
)

func SetupOrderRoutes(r *gin.Engine, d *Deps) {
	orders := r.Group("/orders")
	orders.Use(middleware.OptionalSession(d.Provider))
	{
		orders.POST("/place", orderControllers.PlaceOrderHandler(d.Checkout, d.Sessions, d.Logger))
	}

	account := r.Group("/account")
	account.Use(middleware.RequireRole(d.Gate, models.RoleCustomer, d.Logger))
	{
		account.GET("/orders", orderControllers.GetUserOrdersHandler(d.Orders, d.Logger))
		account.GET("/profile", userControllers.GetProfile(d.Provider, d.Logger))
		account.PATCH("/profile", userControllers.UpdateProfile(d.Provider, d.Logger))
	}
}
