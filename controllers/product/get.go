package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/catalog"
	"github.com/masum-diu/nishaan/controllers"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

// GET /products/:id
func GetProduct(products repository.ProductRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		product, err := products.GetByID(c.Request.Context(), id)
		if err != nil {
			if repository.IsNotFound(err) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			controllers.RespondError(c, logger, err, "Failed to fetch product")
			return
		}
		c.JSON(http.StatusOK, catalog.Listing{Product: *product, Summary: catalog.Summarize(product.Variants)})
	}
}

// GET /banners
func GetActiveBanners(banners repository.BannerRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := banners.List(c.Request.Context(), true)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch banners")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}
