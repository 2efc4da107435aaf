package main

import (
	"video-app/pkg/config"
	"video-app/pkg/logger"
	"video-app/service-api/internal/app"
)

func main() {
	// Initialize configuration
	cfg := config.NewConfig()

	// Initialize logger
	logger.InitLogger(cfg)

	// Create and start the application server
	server := app.NewAppServer(cfg)
	server.Serve()
}
