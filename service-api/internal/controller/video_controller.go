package controller

import (
	"errors"
	"net/http"

	"video-app/pkg/logger"
	"video-app/pkg/model"
	videoService "video-app/service-api/internal/service/video"

	"github.com/gin-gonic/gin"
)

// VideoController serves the dashboard and the playback-token gated stream endpoint
type VideoController struct {
	videoService videoService.Service
}

// NewVideoController creates a new video controller
func NewVideoController(videoService videoService.Service) *VideoController {
	return &VideoController{
		videoService: videoService,
	}
}

// GetDashboard lists the dashboard videos, each with its own playback token
func (vc *VideoController) GetDashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	logger.Infof("dashboard accessed by user_id: %s", userID)

	videos, err := vc.videoService.Dashboard(c.Request.Context(), userID)
	if err != nil {
		logger.Error(err, "failed to build dashboard")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, model.DashboardResponse{Videos: videos})
}

// GetVideoStream returns the embed URL after the playback token in ?token= is verified
func (vc *VideoController) GetVideoStream(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	videoID := c.Param("video_id")
	token := c.Query("token")

	stream, err := vc.videoService.Stream(c.Request.Context(), userID, videoID, token)
	if err != nil {
		switch {
		case errors.Is(err, videoService.ErrPlaybackTokenRequired):
			logger.Warnf("missing playback token for video: %s by user: %s", videoID, userID)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Playback token required"})
		case errors.Is(err, videoService.ErrInvalidPlaybackToken):
			logger.Warnf("invalid playback token for video: %s by user: %s", videoID, userID)
			c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired playback token"})
		case errors.Is(err, videoService.ErrVideoNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		default:
			logger.Error(err, "failed to resolve video stream")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	logger.Event(logger.InfoLevel, "video_stream_authorized", map[string]string{
		"video_id": videoID,
		"title":    stream.Title,
		"user_id":  userID,
	})
	c.JSON(http.StatusOK, stream)
}
