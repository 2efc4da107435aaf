package main

import (
	"fmt"
	"net"
	"time"

	"video-app/pkg/config"
)

const (
	embeddedDBName     = "video_app"
	embeddedDBUser     = "postgres"
	embeddedDBPassword = "postgres"
)

// createEmbeddedConfig builds a hardcoded configuration pointing at the
// embedded services.
func createEmbeddedConfig(dbPort uint32, redisAddr string) (*config.Config, error) {
	redisHost, redisPort, err := net.SplitHostPort(redisAddr)
	if err != nil {
		return nil, fmt.Errorf("invalid redis address %q: %w", redisAddr, err)
	}

	return &config.Config{
		Port: "8080",
		Auth: config.AuthConfig{
			JWTSecret:      "embedded-jwt-secret-key-change-in-production",
			JWTExpiryHours: 24,
			PlaybackSecret: "embedded-playback-secret-change-in-production",
		},
		Database: config.DatabaseConfig{
			Name:            embeddedDBName,
			Host:            "localhost",
			Port:            fmt.Sprintf("%d", dbPort),
			Username:        embeddedDBUser,
			Password:        embeddedDBPassword,
			MaxOpenConns:    25,
			MaxIdleConns:    25,
			ConnMaxLifetime: 5 * time.Minute,
			SSLMode:         "disable",
		},
		Redis: config.RedisConfig{
			Host: redisHost,
			Port: redisPort,
		},
		Log: config.LogConfig{
			Level:  "info",
			Format: "console",
		},
		CORS: config.CORSConfig{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Origin", "Content-Type", "Authorization"},
		},
		RateLimit: config.RateLimitConfig{
			LoginPerMinute: 5,
			GlobalPerHour:  50,
			GlobalPerDay:   200,
		},
	}, nil
}
