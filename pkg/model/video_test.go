package model

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideo_ToDashboardHidesYouTubeID(t *testing.T) {
	v := Video{
		ID:           uuid.New(),
		Title:        "t",
		Description:  "d",
		YouTubeID:    "secret-id",
		ThumbnailURL: "https://img.example/t.jpg",
		IsActive:     true,
	}

	raw, err := json.Marshal(v.ToDashboard())
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.NotContains(t, fields, "youtube_id")
	assert.NotContains(t, fields, "is_active")
	assert.NotContains(t, string(raw), "secret-id")
}

func TestVideo_EmbedURL(t *testing.T) {
	v := Video{YouTubeID: "abc123"}
	assert.Equal(t, "https://www.youtube.com/embed/abc123?autoplay=1&controls=1", v.EmbedURL())
}

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	u := User{ID: uuid.New(), Name: "A", Email: "a@x.com", PasswordHash: "$2a$10$hash"}

	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")

	raw, err = json.Marshal(u.ToProfile())
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}
