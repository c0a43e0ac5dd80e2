package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/checkout"
	"github.com/masum-diu/nishaan/realtime"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

// Deps is everything the route groups hand to their controllers.
type Deps struct {
	Logger *zap.Logger

	Provider *auth.Provider
	Gate     *auth.Gate

	Products   repository.ProductRepository
	Categories repository.CategoryRepository
	Banners    repository.BannerRepository
	Orders     repository.OrderRepository

	Sessions *cart.Sessions
	Shipping cart.ShippingTable
	Checkout *checkout.Service

	AdminProducts   *admin.Products
	AdminCategories *admin.Categories
	AdminBanners    *admin.Banners
	AdminOrders     *admin.Orders
	Customers       *admin.Customers

	Hub *realtime.Hub
}

// SetupRoutes is the single entry point that wires up every route group.
func SetupRoutes(r *gin.Engine, d *Deps) {
	// Public auth routes
	SetupAuthRoutes(r, d)

	// Storefront: catalog and cart, guest or signed in
	SetupUserRoutes(r, d)

	// Checkout and customer order history
	SetupOrderRoutes(r, d)

	// Admin console (role admin)
	SetupAdminRoutes(r, d)
}
