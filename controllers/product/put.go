package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

// PUT /admin/products/:id. Omitting the variants field keeps the stored
// variants; sending it replaces them.
func UpdateProduct(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		in, closers, err := productInput(c, false)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer closeAll(closers)

		product, err := products.Update(c.Request.Context(), id, in)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to update product")
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
