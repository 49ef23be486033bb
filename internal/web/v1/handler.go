// Package v1 exposes the stub account service's HTTP surface: the three
// endpoints the client pipeline talks to, with gin binding standing in for
// the real service's request validation.
package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/duynhne/account-sdk/internal/core/domain"
	"github.com/duynhne/account-sdk/middleware"
)

// AccountHandler handles HTTP requests of the stub account service.
type AccountHandler struct {
	accounts domain.Accounts
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(accounts domain.Accounts) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type createUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type updateProfileRequest struct {
	Name                 string `json:"name" binding:"required"`
	Email                string `json:"email" binding:"required,email"`
	OldPassword          string `json:"old_password"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

// CreateUser handles POST /users.
func (h *AccountHandler) CreateUser(c *gin.Context) {
	_, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": sanitizeBindError(err)})
		return
	}

	user, err := h.accounts.Create(req.Name, req.Email, req.Password)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to create account", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrUserExists):
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info("Account created", zap.String("user_id", user.ID))
	c.JSON(http.StatusCreated, user)
}

// UpdateProfile handles PUT /profile, scoped to the authenticated identity.
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	_, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.GetString("user_id")
	if userID == "" {
		logger.Warn("UpdateProfile: no user_id in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		span.RecordError(err)
		logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": sanitizeBindError(err)})
		return
	}

	// The password group is all-or-nothing on the wire.
	if req.OldPassword != "" && req.Password != req.PasswordConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password confirmation does not match"})
		return
	}

	user, err := h.accounts.UpdateProfile(userID, domain.AccountRecord{
		Name:                 req.Name,
		Email:                req.Email,
		OldPassword:          req.OldPassword,
		Password:             req.Password,
		PasswordConfirmation: req.PasswordConfirmation,
	})
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to update profile", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrWrongPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong password"})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info("Profile updated", zap.String("user_id", userID))
	c.JSON(http.StatusOK, user)
}

// UpdateAvatar handles PATCH /users/avatar with multipart form content.
func (h *AccountHandler) UpdateAvatar(c *gin.Context) {
	_, span := middleware.StartSpan(c.Request.Context(), "http.request", trace.WithAttributes(
		attribute.String("layer", "web"),
		attribute.String("method", c.Request.Method),
		attribute.String("path", c.Request.URL.Path),
	))
	defer span.End()

	logger := middleware.GetLoggerFromGinContext(c)

	userID := c.GetString("user_id")
	if userID == "" {
		logger.Warn("UpdateAvatar: no user_id in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		span.RecordError(err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Avatar file is unreadable"})
		return
	}
	defer file.Close()

	user, err := h.accounts.SetAvatar(userID, fileHeader.Filename, file)
	if err != nil {
		span.RecordError(err)
		logger.Error("Failed to update avatar", zap.Error(err))

		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	logger.Info("Avatar updated", zap.String("user_id", userID))
	c.JSON(http.StatusOK, user)
}
