package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/admin"
	"github.com/masum-diu/nishaan/controllers"
	"go.uber.org/zap"
)

type ToggleBannerRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// POST /admin/banners (multipart: title, image)
func UploadBanner(banners *admin.Banners, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		image, closer, err := controllers.FormImage(c)
		if err != nil || image == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No image uploaded"})
			return
		}
		defer closer.Close()

		banner, err := banners.Create(c.Request.Context(), c.PostForm("title"), image)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to save banner")
			return
		}
		c.JSON(http.StatusCreated, banner)
	}
}

// GET /admin/banners
func GetBanners(banners *admin.Banners, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := banners.List(c.Request.Context())
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to fetch banners")
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

// PUT /admin/banners/:id (multipart: title, optional image)
func UpdateBanner(banners *admin.Banners, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
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
		banner, err := banners.Update(c.Request.Context(), id, c.PostForm("title"), image)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to update banner")
			return
		}
		c.JSON(http.StatusOK, banner)
	}
}

// PATCH /admin/banners/:id/active
func ToggleBanner(banners *admin.Banners, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		var req ToggleBannerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
			return
		}
		if err := banners.SetActive(c.Request.Context(), id, *req.IsActive); err != nil {
			controllers.RespondError(c, logger, err, "Failed to update banner")
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "is_active": *req.IsActive})
	}
}

// DELETE /admin/banners/:id
func DeleteBanner(banners *admin.Banners, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := controllers.ParseID(c, "id")
		if !ok {
			return
		}
		if err := banners.Delete(c.Request.Context(), id); err != nil {
			controllers.RespondError(c, logger, err, "Failed to delete banner")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
	}
}
