package helper

import (
	"video-app/pkg/config"
	"video-app/service-api/internal/app"
)

// Server is the runnable API service
type Server interface {
	Serve()
}

func NewAppServer(
	cfg *config.Config,
) Server {
	return app.NewAppServer(cfg)
}
