package app

import (
	"net/http"
	"time"

	"video-app/pkg/auth"
	"video-app/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (a *appServer) RegisterHandlers() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	handler := gin.New()

	// rate limits key on ClientIP, which only honours X-Forwarded-For from these
	err := handler.SetTrustedProxies(a.config.TrustedProxies)
	if err != nil {
		logger.Error(err, "invalid TRUSTED_PROXIES, trusting no proxy")
		_ = handler.SetTrustedProxies(nil)
	}

	// middlewares
	logger.Debugf("allowing CORS origins: %v", a.config.CORS.AllowedOrigins)
	logger.Debugf("allowing CORS methods: %v", a.config.CORS.AllowedMethods)
	logger.Debugf("allowing CORS headers: %v", a.config.CORS.AllowedHeaders)

	// cors middleware
	corsConfig := cors.Config{
		AllowMethods: a.config.CORS.AllowedMethods,
		AllowHeaders: a.config.CORS.AllowedHeaders,
		MaxAge:       12 * time.Hour,
	}
	if a.config.CORS.AllowsAnyOrigin() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = a.config.CORS.AllowedOrigins
	}
	handler.Use(cors.New(corsConfig))
	handler.Use(gin.Logger())
	handler.Use(gin.Recovery())

	authMiddleware := auth.AuthMiddleware(a.jwtManager)

	// health check
	handler.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "video-app-api"})
	})

	api := handler.Group("")
	api.Use(a.middleware.GlobalRateLimit())

	// auth routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", a.controller.Signup)
		authRoutes.POST("/login", a.middleware.LoginRateLimit(), a.controller.Login)
		authRoutes.GET("/me", authMiddleware, a.controller.GetProfile)
		authRoutes.POST("/logout", authMiddleware, a.controller.Logout)
	}

	// authenticated video routes
	videoRoutes := api.Group("")
	videoRoutes.Use(authMiddleware)
	{
		videoRoutes.GET("/dashboard", a.videoController.GetDashboard)
		videoRoutes.GET("/video/:video_id/stream", a.videoController.GetVideoStream)
	}

	return handler
}
