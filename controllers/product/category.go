package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

// GET /categories
func GetCategories(categories repository.CategoryRepository, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := categories.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch categories")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// POST /admin/categories (multipart: name, optional image)
func CreateCategory(categories *admin.Categories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		image, closer, err := controllers.FormImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
			return
		}
		if closer != nil {
			defer closer.Close()
		}

		category, err := categories.Create(c.Request.Context(), name, image)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to create category")
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}

// PUT /admin/categories/:id
func UpdateCategory(categories *admin.Categories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		name := c.PostForm("name")
		if name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
			return
		}
		image, closer, err := controllers.FormImage(c)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read image"})
			return
		}
		if closer != nil {
			defer closer.Close()
		}

		category, err := categories.Update(c.Request.Context(), id, name, image)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to update category")
			return
		}
		c.JSON(http.StatusOK, category)
	}
}

// DELETE /admin/categories/:id
func DeleteCategory(categories *admin.Categories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		if err := categories.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, logger, err, "Failed to delete category")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Category deleted successfully"})
	}
}
