package main

import (
	"video-app/pkg/logger"
	api "video-app/service-api"
)

func main() {
	logger.Info("starting video-app standalone: embedded PostgreSQL, embedded Redis and the API service")

	db, dbPort, err := startEmbeddedDB()
	if err != nil {
		logger.Fatalf("failed to start embedded PostgreSQL: %v", err)
	}
	defer stopEmbeddedDB(db)

	rds, err := startEmbeddedRedis()
	if err != nil {
		logger.Fatalf("failed to start embedded Redis: %v", err)
	}
	defer rds.Close()

	cfg, err := createEmbeddedConfig(dbPort, rds.Addr())
	if err != nil {
		logger.Fatalf("failed to build standalone configuration: %v", err)
	}
	logger.InitLogger(cfg)

	// blocks until SIGINT/SIGTERM, then the embedded services are stopped
	api.NewAppServer(cfg).Serve()

	logger.Info("standalone shutdown complete")
}
