package controller

import (
	"errors"
	"net/http"

	"video-app/pkg/logger"
	userService "video-app/service-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the authenticated user's profile
func (ctrl *controller) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	profile, err := ctrl.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, userService.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		logger.Error(err, "failed to load user profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": profile})
}
