package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/cart"
	"github.com/masum-diu/nishaan/checkout"
	"github.com/masum-diu/nishaan/controllers"
	cartControllers "github.com/masum-diu/nishaan/controllers/cart"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

type PlaceOrderRequest struct {
	FullName      string `json:"full_name"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	Zone          string `json:"zone"`
	PaymentMethod string `json:"payment_method"`
	TransactionID string `json:"transaction_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders/place. Guests and signed-in customers both check out; the
// order is linked to the user when a session is present.
func PlaceOrderHandler(svc *checkout.Service, sessions *cart.Sessions, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		store, release, ok := cartControllers.OpenStore(c, sessions)
		if !ok {
			return
		}
		defer release()

		in := checkout.Request{
			FullName:      req.FullName,
			Phone:         req.Phone,
			Address:       req.Address,
			City:          req.City,
			PostalCode:    req.PostalCode,
			Zone:          req.Zone,
			PaymentMethod: req.PaymentMethod,
			TransactionID: req.TransactionID,
		}
		if sess := middleware.SessionFrom(c); sess != nil {
			in.UserID = sess.UserID
		}

		order, err := svc.Submit(c.Request.Context(), store, in)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to place order")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Order placed successfully", "order": order})
	}
}

// GET /account/orders
func GetUserOrdersHandler(orders repository.OrderRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFrom(c)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		list, err := orders.ListByUser(c.Request.Context(), sess.UserID)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /admin/orders
func GetAllOrdersHandler(orders *admin.Orders, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := orders.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// GET /admin/orders/:orderID
func GetOrderByIDHandler(orders *admin.Orders, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "orderID")
		if !ok {
			return
		}
		order, err := orders.Get(c.Request.Context(), id)
		if err != nil {
			if repository.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			controllers.RespondError(c, logger, err, "Failed to fetch order")
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /admin/orders/:orderID/status
func UpdateOrderStatusHandler(orders *admin.Orders, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "orderID")
		if !ok {
			return
		}
		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		order, err := orders.UpdateStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			controllers.RespondError(c, logger, err, "failed to update order status")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order status updated successfully", "order": order})
	}
}

// DELETE /admin/orders/:orderID
func DeleteOrderHandler(orders *admin.Orders, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "orderID")
		if !ok {
			return
		}
		if err := orders.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, logger, err, "failed to delete order")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
	}
}
