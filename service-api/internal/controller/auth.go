package controller

import (
	"errors"
	"net/http"

	"video-app/pkg/logger"
	"video-app/pkg/model"
	authService "video-app/service-api/internal/service/auth"
	userService "video-app/service-api/internal/service/user"

	"github.com/gin-gonic/gin"
)

// Signup handles user registration
func (ctrl *controller) Signup(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required"})
		return
	}

	response, err := ctrl.authService.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrMissingRegisterFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Name, email, and password are required"})
		case errors.Is(err, authService.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 6 characters"})
		case errors.Is(err, authService.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at most 72 bytes"})
		case errors.Is(err, userService.ErrUserAlreadyExists):
			logger.Event(logger.WarnLevel, "registration_duplicate_email", map[string]string{"email": userService.NormalizeEmail(req.Email)})
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		default:
			logger.Error(err, "failed to register user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Infof("new user registered: %s", response.User.Email)
	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"token":   response.Token,
		"user":    response.User,
	})
}

// Login handles user authentication
func (ctrl *controller) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	response, err := ctrl.authService.Login(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, authService.ErrMissingLoginFields):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		case errors.Is(err, authService.ErrInvalidCredentials):
			logger.Event(logger.WarnLevel, "login_failed", map[string]string{"email": userService.NormalizeEmail(req.Email)})
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		default:
			logger.Error(err, "failed to login user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Infof("successful login for: %s", response.User.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"token":   response.Token,
		"user":    response.User.Summary(),
	})
}

// Logout acknowledges a logout; session tokens are stateless, the client discards them
func (ctrl *controller) Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logger.Infof("user logged out: %s", userID)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}
