package main

import (
	"video-app/pkg/logger"

	"github.com/alicebob/miniredis/v2"
)

// startEmbeddedRedis backs the shared login rate limiter in standalone mode.
func startEmbeddedRedis() (*miniredis.Miniredis, error) {
	rds, err := miniredis.Run()
	if err != nil {
		return nil, err
	}

	logger.Infof("embedded Redis started on %s", rds.Addr())
	return rds, nil
}
