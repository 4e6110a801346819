package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nexview/nexview-backend/internal/auth"
	"github.com/nexview/nexview-backend/internal/users/domain"
	"github.com/nexview/nexview-backend/internal/users/service"
)

type Handler struct {
	userService *service.UserService
}

func New(userService *service.UserService) *Handler {
	return &Handler{userService: userService}
}

func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/sync", h.SyncUser)
	rg.GET("/me", h.GetMe)
	rg.GET("/me/profile", h.GetProfile)
	rg.PUT("/me/profile", h.UpdateProfile)
}

// GetMe returns the full user aggregate including every session.
func (h *Handler) GetMe(c *gin.Context) {
	user, err := h.userService.GetAggregate(c.Request.Context(), auth.UserEmail(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

// SyncUser ensures a user record exists for the authenticated identity.
// Called by the client right after sign-in, mirroring the first-login
// account creation of the Google auth flow.
func (h *Handler) SyncUser(c *gin.Context) {
	req := domain.SyncUserRequest{
		Email:    auth.UserEmail(c),
		Username: c.GetString("name"),
		Avatar:   c.GetString("picture"),
	}

	user, err := h.userService.SyncUser(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sync user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetProfile(c.Request.Context(), auth.UserEmail(c))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req struct {
		Username *string `json:"username,omitempty"`
		Avatar   *string `json:"avatar,omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), auth.UserEmail(c), domain.UpdateProfileRequest{
		Username: req.Username,
		Avatar:   req.Avatar,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}
