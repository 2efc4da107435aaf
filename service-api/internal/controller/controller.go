package controller

import (
	"net/http"

	"video-app/pkg/auth"
	authService "video-app/service-api/internal/service/auth"

	"github.com/gin-gonic/gin"
)

// ControllerProvider defines the controller interface
type ControllerProvider interface {
	Signup(c *gin.Context)
	Login(c *gin.Context)
	Logout(c *gin.Context)
	GetProfile(c *gin.Context)
}

// controller implements the controller interface
type controller struct {
	authService authService.Service
}

// NewController creates a new controller instance
func NewController(authService authService.Service) ControllerProvider {
	return &controller{
		authService: authService,
	}
}

// currentUserID reads the identity set by the auth middleware, aborting with
// 401 when a route was mounted without it.
func currentUserID(c *gin.Context) (string, bool) {
	userID, ok := auth.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
	}
	return userID, ok
}
