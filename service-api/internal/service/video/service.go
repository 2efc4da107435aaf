package video

import (
	"context"
	"errors"
	"fmt"
	"time"

	"video-app/pkg/auth"
	"video-app/pkg/logger"
	"video-app/pkg/model"
	videoRepo "video-app/service-api/internal/repository/video"

	"github.com/google/uuid"
)

// DashboardLimit is the number of videos shown on the dashboard.
const DashboardLimit = 2

var (
	ErrPlaybackTokenRequired = errors.New("playback token required")
	ErrInvalidPlaybackToken  = errors.New("invalid or expired playback token")
	ErrVideoNotFound         = errors.New("video not found")
)

// PlaybackTokens mints and checks playback tokens.
type PlaybackTokens interface {
	GenerateToken(videoID, userID string) (string, error)
	ParseToken(token, expectedVideoID string) (*auth.PlaybackClaims, error)
}

// Service defines the video service interface
type Service interface {
	Dashboard(ctx context.Context, userID string) ([]model.DashboardVideo, error)
	Stream(ctx context.Context, userID, videoID, playbackToken string) (*model.StreamResponse, error)
	SeedDefaults(ctx context.Context) (int, error)
}

type videoService struct {
	videoRepo videoRepo.Repository
	tokens    PlaybackTokens
}

// NewVideoService creates a new video service instance.
func NewVideoService(videoRepo videoRepo.Repository, tokens PlaybackTokens) Service {
	return &videoService{
		videoRepo: videoRepo,
		tokens:    tokens,
	}
}

// Dashboard lists the active videos with a fresh playback token each.
func (s *videoService) Dashboard(ctx context.Context, userID string) ([]model.DashboardVideo, error) {
	videos, err := s.videoRepo.ListActive(ctx, DashboardLimit)
	if err != nil {
		return nil, err
	}

	dashboard := make([]model.DashboardVideo, 0, len(videos))
	for i := range videos {
		entry := videos[i].ToDashboard()

		entry.PlaybackToken, err = s.tokens.GenerateToken(videos[i].ID.String(), userID)
		if err != nil {
			return nil, fmt.Errorf("failed to mint playback token for video %s: %w", videos[i].ID, err)
		}

		dashboard = append(dashboard, entry)
	}

	return dashboard, nil
}

// Stream reveals the embed URL of videoID once playbackToken checks out.
// The token is checked before the catalog is consulted.
func (s *videoService) Stream(ctx context.Context, userID, videoID, playbackToken string) (*model.StreamResponse, error) {
	if playbackToken == "" {
		return nil, ErrPlaybackTokenRequired
	}

	claims, err := s.tokens.ParseToken(playbackToken, videoID)
	if err != nil {
		logger.Event(logger.WarnLevel, "playback_token_rejected", map[string]string{
			"video_id": videoID,
			"user_id":  userID,
			"reason":   err.Error(),
		})
		return nil, ErrInvalidPlaybackToken
	}

	// capability semantics: the bearer need not be the user the token was minted for
	if claims.UserID != userID {
		logger.Event(logger.WarnLevel, "playback_token_foreign_user", map[string]string{
			"video_id":    videoID,
			"user_id":     userID,
			"token_owner": claims.UserID,
		})
	}

	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, ErrVideoNotFound
	}

	video, err := s.videoRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, ErrVideoNotFound
	}

	return &model.StreamResponse{
		VideoID:  video.ID,
		Title:    video.Title,
		EmbedURL: video.EmbedURL(),
	}, nil
}

// SeedDefaults inserts the default catalog when no videos exist yet and
// returns the number of videos inserted.
func (s *videoService) SeedDefaults(ctx context.Context) (int, error) {
	count, err := s.videoRepo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	videos := model.DefaultCatalog()
	now := time.Now().UTC()
	for i := range videos {
		videos[i].ID = uuid.New()
		// distinct timestamps keep the dashboard order stable
		videos[i].CreatedAt = now.Add(time.Duration(i) * time.Millisecond)
	}

	err = s.videoRepo.CreateMany(ctx, videos)
	if err != nil {
		return 0, err
	}

	return len(videos), nil
}
