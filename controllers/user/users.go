package userControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/masum-diu/nishaan/auth"
	"github.com/masum-diu/nishaan/controllers"
	"github.com/masum-diu/nishaan/middleware"
	"github.com/masum-diu/nishaan/models"
	"go.uber.org/zap"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

type ProfileRequest struct {
	FullName string `json:"full_name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// POST /api/admin/customer. Always creates a customer; there is no way to
// register an admin through the API.
func RegisterCustomer(provider *auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		_, err := provider.SignUp(c.Request.Context(), req.Email, req.Password, req.FullName)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, gin.H{"message": "Customer registered successfully. Please check your email."})
		case errors.Is(err, auth.ErrMissingFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		case errors.Is(err, auth.ErrWeakPassword), errors.Is(err, auth.ErrEmailTaken):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("customer registration failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register customer"})
		}
	}
}

// POST /auth/login {email, password, role}. role defaults to customer; a
// profile with a different role is signed straight back out.
func Login(provider *auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		role := models.RoleCustomer
		switch models.Role(req.Role) {
		case "", models.RoleCustomer:
		case models.RoleAdmin:
			role = models.RoleAdmin
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}

		sess, err := provider.SignInAs(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			if errors.Is(err, auth.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
				return
			}
			controllers.RespondError(c, logger, err, "Login failed")
			return
		}
		c.JSON(http.StatusOK, sess)
	}
}

// POST /auth/logout
func Logout(provider *auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := middleware.BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}
		if err := provider.SignOut(c.Request.Context(), token); err != nil {
			controllers.RespondError(c, logger, err, "Logout failed")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
	}
}

// GET /auth/session reports the gate decision for the caller, optionally
// against ?role=.
func CurrentSession(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		decision := gate.Evaluate(c.Request.Context(), middleware.BearerToken(c), models.Role(c.Query("role")))
		status := http.StatusOK
		if decision.State != auth.StateAuthorized {
			status = http.StatusUnauthorized
		}
		c.JSON(status, decision)
	}
}

// POST /auth/guest hands out an id for an anonymous cart.
func CreateGuestSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"guest_id": uuid.NewString()})
	}
}

// GET /account/profile
func GetProfile(provider *auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFrom(c)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			return
		}
		profile, err := provider.Profile(c.Request.Context(), sess.UserID)
		if err != nil {
			controllers.RespondError(c, logger, err, "Failed to load profile")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}

// PATCH /account/profile {full_name}
func UpdateProfile(provider *auth.Provider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := middleware.SessionFrom(c)
		if sess == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Not signed in"})
			return
		}
		var req ProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}
		profile, err := provider.UpdateProfile(c.Request.Context(), sess.UserID, req.FullName)
		if err != nil {
			if errors.Is(err, auth.ErrMissingFields) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Full name is required"})
				return
			}
			controllers.RespondError(c, logger, err, "Failed to update profile")
			return
		}
		c.JSON(http.StatusOK, profile)
	}
}
