package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

// DELETE /admin/products/:id
func DeleteProduct(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		if err := products.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, logger, err, "Failed to delete product")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}
