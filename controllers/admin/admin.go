package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

// GET /admin/customers
func GetAllCustomers(customers *admin.Customers, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := customers.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch customers")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
