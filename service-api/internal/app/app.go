package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"video-app/pkg/auth"
	"video-app/pkg/config"
	"video-app/pkg/database"
	"video-app/pkg/logger"
	"video-app/pkg/redis"
	mdw "video-app/service-api/internal/app/middleware"
	ctl "video-app/service-api/internal/controller"
	userRepo "video-app/service-api/internal/repository/user"
	videoRepo "video-app/service-api/internal/repository/video"
	authService "video-app/service-api/internal/service/auth"
	userService "video-app/service-api/internal/service/user"
	videoService "video-app/service-api/internal/service/video"
)

const shutdownTimeout = 10 * time.Second

type appServer struct {
	config          *config.Config
	db              *sql.DB
	redisClient     *redis.Client
	jwtManager      *auth.JWTManager
	middleware      mdw.MiddlewareProvider
	controller      ctl.ControllerProvider
	videoController *ctl.VideoController
	videoService    videoService.Service
}

// NewAppServer connects to Postgres (and Redis when configured), applies the
// schema, seeds the catalog and wires the HTTP layer.
func NewAppServer(cfg *config.Config) *appServer {
	for _, key := range cfg.InsecureDefaults() {
		logger.Warnf("%s is not set, using the insecure development default", key)
	}

	// initialize database
	db, err := database.NewPgDB(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}

	err = database.Migrate(context.Background(), db)
	if err != nil {
		logger.Fatalf("failed to apply database schema: %v", err)
	}

	// optional shared rate limit store
	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.NewClient(cfg)
		if err != nil {
			logger.Error(err, "redis unavailable, falling back to in-memory rate limiting")
			redisClient = nil
		}
	}

	server := newAppServer(cfg, userRepo.NewRepository(db), videoRepo.NewRepository(db), redisClient)
	server.db = db

	seeded, err := server.videoService.SeedDefaults(context.Background())
	if err != nil {
		logger.Fatalf("failed to seed videos: %v", err)
	}
	if seeded > 0 {
		logger.Infof("seeded %d videos into database", seeded)
	}

	return server
}

// newAppServer wires services and controllers over the given repositories.
func newAppServer(
	cfg *config.Config,
	users userRepo.Repository,
	videos videoRepo.Repository,
	redisClient *redis.Client,
) *appServer {
	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTL())
	playbackTokens := auth.NewPlaybackTokenService(cfg.Auth.PlaybackSecret)

	// initialize services
	userSvc := userService.NewUserService(users)
	authSvc := authService.NewAuthService(jwtManager, userSvc)
	videoSvc := videoService.NewVideoService(videos, playbackTokens)

	return &appServer{
		config:          cfg,
		redisClient:     redisClient,
		jwtManager:      jwtManager,
		middleware:      mdw.NewMiddleware(cfg, redisClient),
		controller:      ctl.NewController(authSvc),
		videoController: ctl.NewVideoController(videoSvc),
		videoService:    videoSvc,
	}
}

func (a *appServer) Serve() {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", a.config.Port),
		Handler:           a.RegisterHandlers(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// serve the server
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("server failed to start: %v", err)
		}
	}()

	logger.Infof("server started on port %s", a.config.Port)

	a.gracefulShutdown(server)

	logger.Info("server shutdown complete")
}

func (a *appServer) gracefulShutdown(server *http.Server) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP) // wait for the sigterm
	<-signals

	// we received an os signal, shut down.
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		logger.Error(err, "server shutdown error")
	} else {
		logger.Info("server graceful shutdown")
	}

	a.close()
}

// close releases the database pool and the Redis connection.
func (a *appServer) close() {
	if a.redisClient != nil {
		err := a.redisClient.Close()
		if err != nil {
			logger.Error(err, "failed to close redis client")
		}
	}

	if a.db != nil {
		err := a.db.Close()
		if err != nil {
			logger.Error(err, "failed to close database")
		}
	}
}
