package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

// POST /admin/products (multipart: name, description, category_id, flags,
// variants JSON, variant_images_<i> files)
func CreateProduct(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		in, closers, err := productInput(c, true)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		defer closeAll(closers)

		product, err := products.Create(c.Request.Context(), in)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to create product")
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// GET /admin/products
func ListProducts(products *admin.Products, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := products.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
