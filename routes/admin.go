package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/masum-diu/nishaan/controllers/admin"
	orderControllers "github.com/masum-diu/nishaan/controllers/order"
	productcontroller "github.com/masum-diu/nishaan/controllers/product"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/models"
)

// SetupAdminRoutes registers all "/admin/*" endpoints behind the admin gate.
func SetupAdminRoutes(r *gin.Engine, d *Deps) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireRole(d.Gate, models.RoleAdmin, d.Logger))
	{
		adminGroup.GET("/customers", adminController.GetAllCustomers(d.Customers, d.Logger))

		productAdmin := adminGroup.Group("/products")
		{
			productAdmin.GET("", productcontroller.ListProducts(d.AdminProducts, d.Logger))
			productAdmin.POST("", productcontroller.CreateProduct(d.AdminProducts, d.Logger))
			productAdmin.PUT("/:id", productcontroller.UpdateProduct(d.AdminProducts, d.Logger))
			productAdmin.DELETE("/:id", productcontroller.DeleteProduct(d.AdminProducts, d.Logger))
			productAdmin.GET("/export-excel", productcontroller.ExportProductsToExcel(d.AdminProducts, d.Logger))
		}

		categoryAdmin := adminGroup.Group("/categories")
		{
			categoryAdmin.GET("", productcontroller.GetCategories(d.Categories, d.Logger))
			categoryAdmin.POST("", productcontroller.CreateCategory(d.AdminCategories, d.Logger))
			categoryAdmin.PUT("/:id", productcontroller.UpdateCategory(d.AdminCategories, d.Logger))
			categoryAdmin.DELETE("/:id", productcontroller.DeleteCategory(d.AdminCategories, d.Logger))
		}

		bannerAdmin := adminGroup.Group("/banners")
		{
			bannerAdmin.GET("", adminController.GetBanners(d.AdminBanners, d.Logger))
			bannerAdmin.POST("", adminController.UploadBanner(d.AdminBanners, d.Logger))
			bannerAdmin.PUT("/:id", adminController.UpdateBanner(d.AdminBanners, d.Logger))
			bannerAdmin.PATCH("/:id/active", adminController.ToggleBanner(d.AdminBanners, d.Logger))
			bannerAdmin.DELETE("/:id", adminController.DeleteBanner(d.AdminBanners, d.Logger))
		}

		orderAdmin := adminGroup.Group("/orders")
		{
			orderAdmin.GET("", orderControllers.GetAllOrdersHandler(d.AdminOrders, d.Logger))
			orderAdmin.GET("/ws", orderControllers.OrderWebSocketHandler(d.Hub))
			orderAdmin.GET("/:orderID", orderControllers.GetOrderByIDHandler(d.AdminOrders, d.Logger))
			orderAdmin.PUT("/:orderID/status", orderControllers.UpdateOrderStatusHandler(d.AdminOrders, d.Logger))
			orderAdmin.DELETE("/:orderID", orderControllers.DeleteOrderHandler(d.AdminOrders, d.Logger))
		}
	}
}
