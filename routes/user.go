package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/masum-diu/nishaan/controllers/cart"
	productControllers "github.com/masum-diu/nishaan/controllers/product"
	"github.com/masum-diu/nishaan/middleware"
)

// SetupUserRoutes registers the storefront: catalog reads and the cart.
func SetupUserRoutes(r *gin.Engine, d *Deps) {
	r.GET("/products", productControllers.GetProducts(d.Products, d.Logger))
	r.GET("/products/:id", productControllers.GetProduct(d.Products, d.Logger))
	r.GET("/categories", productControllers.GetCategories(d.Categories, d.Logger))
	r.GET("/banners", productControllers.GetActiveBanners(d.Banners, d.Logger))

	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.OptionalSession(d.Provider))
	{
		cartGroup.GET("", cartControllers.GetCart(d.Sessions, d.Shipping))
		cartGroup.POST("/items", cartControllers.AddCartItem(d.Sessions, d.Products, d.Shipping, d.Logger))
		cartGroup.PUT("/items/:product_id/:variant_id", cartControllers.UpdateCartItem(d.Sessions, d.Shipping, d.Logger))
		cartGroup.DELETE("/items/:product_id/:variant_id", cartControllers.DeleteCartItem(d.Sessions, d.Shipping, d.Logger))
		cartGroup.DELETE("", cartControllers.ClearCart(d.Sessions, d.Shipping, d.Logger))
	}
}
