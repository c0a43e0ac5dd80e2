// Package controllers holds helpers shared by the per-area handler packages.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/checkout"
	"github.com/masum-diu/nishaan/models"
	"github.com/masum-diu/nishaan/repository"
	"go.uber.org/zap"
)

// RespondError maps domain errors to status codes. Anything unrecognised is
// logged and answered with a generic 500.
func RespondError(c *gin.Context, logger *zap.Logger, err error, fallback string) {
	var verr *checkout.ValidationError
	var uerr *checkout.UnavailableError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Validation failed", "fields": verr.Fields})
	case errors.As(err, &uerr):
		c.JSON(http.StatusConflict, gin.H{"error": "Some items are no longer available", "items": uerr.Lines})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, repository.ErrDuplicate), errors.Is(err, auth.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, repository.ErrInvalidInput), errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, auth.ErrRoleMismatch):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		if logger != nil {
			logger.Error(fallback, zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// ParseID reads a positive numeric path parameter, answering 400 itself when
// it is malformed.
func ParseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}
