package video

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"video-app/pkg/auth"
	"video-app/pkg/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inMemoryVideoRepo struct {
	mu      sync.Mutex
	videos  []model.Video
	failAll error
}

func (r *inMemoryVideoRepo) ListActive(_ context.Context, limit int) ([]model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	sorted := append([]model.Video(nil), r.videos...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.Before(sorted[j].CreatedAt) })

	var out []model.Video
	for _, v := range sorted {
		if v.IsActive && len(out) < limit {
			out = append(out, v)
		}
	}
	return out, nil
}

func (r *inMemoryVideoRepo) GetByID(_ context.Context, id uuid.UUID) (*model.Video, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.videos {
		if v.ID == id {
			v := v
			return &v, nil
		}
	}
	return nil, nil
}

func (r *inMemoryVideoRepo) Count(_ context.Context) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.videos), nil
}

func (r *inMemoryVideoRepo) CreateMany(_ context.Context, videos []model.Video) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.videos = append(r.videos, videos...)
	return nil
}

func newVideo(title string, active bool, created time.Time) model.Video {
	return model.Video{
		ID:           uuid.New(),
		Title:        title,
		Description:  title + " description",
		YouTubeID:    "yt-" + title,
		ThumbnailURL: "https://img.example/" + title + ".jpg",
		IsActive:     active,
		CreatedAt:    created,
	}
}

func newTestService(videos ...model.Video) (Service, *auth.PlaybackTokenService, *inMemoryVideoRepo) {
	repo := &inMemoryVideoRepo{videos: videos}
	tokens := auth.NewPlaybackTokenService("playback-test-secret")
	return NewVideoService(repo, tokens), tokens, repo
}

func TestDashboard_LimitsAndMintsTokens(t *testing.T) {
	base := time.Now()
	a := newVideo("a", true, base)
	b := newVideo("b", true, base.Add(time.Second))
	c := newVideo("c", true, base.Add(2*time.Second))
	hidden := newVideo("hidden", false, base.Add(-time.Second))

	svc, tokens, _ := newTestService(c, hidden, b, a)
	userID := uuid.NewString()

	dashboard, err := svc.Dashboard(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, dashboard, DashboardLimit)

	assert.Equal(t, a.ID, dashboard[0].ID)
	assert.Equal(t, b.ID, dashboard[1].ID)
	for _, entry := range dashboard {
		require.NotEmpty(t, entry.PlaybackToken)
		claims, err := tokens.ParseToken(entry.PlaybackToken, entry.ID.String())
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
	}
}

func TestDashboard_FewerActiveVideos(t *testing.T) {
	tests := []struct {
		name   string
		videos []model.Video
		want   int
	}{
		{name: "empty catalog", want: 0},
		{name: "one active", videos: []model.Video{newVideo("a", true, time.Now())}, want: 1},
		{name: "one active one inactive", videos: []model.Video{newVideo("a", true, time.Now()), newVideo("b", false, time.Now())}, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(tt.videos...)
			dashboard, err := svc.Dashboard(context.Background(), uuid.NewString())
			require.NoError(t, err)
			assert.Len(t, dashboard, tt.want)
			assert.NotNil(t, dashboard)
		})
	}
}

func TestDashboard_RepositoryError(t *testing.T) {
	svc, _, repo := newTestService()
	repo.failAll = errors.New("db down")

	_, err := svc.Dashboard(context.Background(), uuid.NewString())
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	a := newVideo("a", true, time.Now())
	b := newVideo("b", true, time.Now())
	svc, tokens, _ := newTestService(a, b)
	userID := uuid.NewString()

	tokenA, err := tokens.GenerateToken(a.ID.String(), userID)
	require.NoError(t, err)

	resp, err := svc.Stream(context.Background(), userID, a.ID.String(), tokenA)
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.VideoID)
	assert.Equal(t, "a", resp.Title)
	assert.Equal(t, "https://www.youtube.com/embed/yt-a?autoplay=1&controls=1", resp.EmbedURL)

	_, err = svc.Stream(context.Background(), userID, b.ID.String(), tokenA)
	assert.ErrorIs(t, err, ErrInvalidPlaybackToken)

	_, err = svc.Stream(context.Background(), userID, a.ID.String(), "")
	assert.ErrorIs(t, err, ErrPlaybackTokenRequired)

	_, err = svc.Stream(context.Background(), userID, a.ID.String(), "garbage")
	assert.ErrorIs(t, err, ErrInvalidPlaybackToken)
}

func TestStream_TokenForUnknownVideo(t *testing.T) {
	svc, tokens, _ := newTestService()
	userID := uuid.NewString()
	missing := uuid.NewString()

	token, err := tokens.GenerateToken(missing, userID)
	require.NoError(t, err)

	_, err = svc.Stream(context.Background(), userID, missing, token)
	assert.ErrorIs(t, err, ErrVideoNotFound)

	token, err = tokens.GenerateToken("not-a-uuid", userID)
	require.NoError(t, err)

	_, err = svc.Stream(context.Background(), userID, "not-a-uuid", token)
	assert.ErrorIs(t, err, ErrVideoNotFound)
}

func TestStream_TokenPresentedByAnotherUser(t *testing.T) {
	a := newVideo("a", true, time.Now())
	svc, tokens, _ := newTestService(a)

	token, err := tokens.GenerateToken(a.ID.String(), uuid.NewString())
	require.NoError(t, err)

	resp, err := svc.Stream(context.Background(), uuid.NewString(), a.ID.String(), token)
	require.NoError(t, err)
	assert.Equal(t, a.ID, resp.VideoID)
}

func TestSeedDefaults(t *testing.T) {
	svc, _, repo := newTestService()
	ctx := context.Background()

	inserted, err := svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)
	require.Len(t, repo.videos, 2)
	assert.NotEqual(t, uuid.Nil, repo.videos[0].ID)

	inserted, err = svc.SeedDefaults(ctx)
	require.NoError(t, err)
	assert.Zero(t, inserted)
	assert.Len(t, repo.videos, 2)

	dashboard, err := svc.Dashboard(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Equal(t, "How Startups Fail", dashboard[0].Title)
}
