package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/catalog"
	"github.com/masum-diu/nishaan/controllers"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

// GET /products?category=&in_stock=&sizes=
func GetProducts(products repository.ProductRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		all, err := products.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch products")
			return
		}
		filtered := catalog.Apply(all, catalog.ParseFilter(c.Request.URL.Query()))
		c.JSON(http.StatusOK, catalog.NewListings(filtered))
	}
}
