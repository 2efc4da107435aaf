package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const embedURLTemplate = "https://www.youtube.com/embed/%s?autoplay=1&controls=1"

// Video is the full catalog entry. YouTubeID is internal only and must not
// reach clients before a playback token has been verified.
type Video struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	YouTubeID    string    `json:"youtube_id" db:"youtube_id"`
	ThumbnailURL string    `json:"thumbnail_url" db:"thumbnail_url"`
	IsActive     bool      `json:"is_active" db:"is_active"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// DashboardVideo is the public view of a catalog entry.
type DashboardVideo struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	ThumbnailURL  string    `json:"thumbnail_url"`
	PlaybackToken string    `json:"playback_token,omitempty"`
}

// DashboardResponse wraps the dashboard listing.
type DashboardResponse struct {
	Videos []DashboardVideo `json:"videos"`
}

// StreamResponse is returned once a playback token has been accepted.
type StreamResponse struct {
	VideoID  uuid.UUID `json:"video_id"`
	Title    string    `json:"title"`
	EmbedURL string    `json:"embed_url"`
}

// ToDashboard strips the internal fields from a video.
func (v *Video) ToDashboard() DashboardVideo {
	return DashboardVideo{
		ID:           v.ID,
		Title:        v.Title,
		Description:  v.Description,
		ThumbnailURL: v.ThumbnailURL,
	}
}

// EmbedURL returns the embeddable player URL for the video.
func (v *Video) EmbedURL() string {
	return fmt.Sprintf(embedURLTemplate, v.YouTubeID)
}

// DefaultCatalog is seeded into an empty videos table.
func DefaultCatalog() []Video {
	return []Video{
		{
			Title:        "How Startups Fail",
			Description:  "Lessons from real founders about common startup mistakes and how to avoid them.",
			YouTubeID:    "dQw4w9WgXcQ",
			ThumbnailURL: "https://img.youtube.com/vi/dQw4w9WgXcQ/maxresdefault.jpg",
			IsActive:     true,
		},
		{
			Title:        "Building Great Products",
			Description:  "Learn the fundamentals of product development from industry experts.",
			YouTubeID:    "9bZkp7q19f0",
			ThumbnailURL: "https://img.youtube.com/vi/9bZkp7q19f0/maxresdefault.jpg",
			IsActive:     true,
		},
	}
}
