package video

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"video-app/pkg/model"

	"github.com/google/uuid"
)

// Repository defines the video catalog repository interface
type Repository interface {
	ListActive(ctx context.Context, limit int) ([]model.Video, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	Count(ctx context.Context) (int, error)
	CreateMany(ctx context.Context, videos []model.Video) error
}

// repository implements the video repository
type repository struct {
	db *sql.DB
}

// NewRepository creates a new video repository
func NewRepository(db *sql.DB) Repository {
	return &repository{
		db: db,
	}
}

// ListActive returns up to limit active videos, oldest first
func (r *repository) ListActive(ctx context.Context, limit int) ([]model.Video, error) {
	query := `
		SELECT id, title, description, youtube_id, thumbnail_url, is_active, created_at
		FROM videos
		WHERE is_active = TRUE
		ORDER BY created_at ASC, id ASC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query active videos: %w", err)
	}
	defer rows.Close()

	var videos []model.Video
	for rows.Next() {
		var v model.Video
		err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.YouTubeID, &v.ThumbnailURL, &v.IsActive, &v.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate videos: %w", err)
	}

	return videos, nil
}

// GetByID retrieves a video by ID, active or not
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	v := &model.Video{}
	query := `
		SELECT id, title, description, youtube_id, thumbnail_url, is_active, created_at
		FROM videos
		WHERE id = $1`

	row := r.db.QueryRowContext(ctx, query, id)
	err := row.Scan(&v.ID, &v.Title, &v.Description, &v.YouTubeID, &v.ThumbnailURL, &v.IsActive, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Video not found
		}
		return nil, err
	}

	return v, nil
}

// Count returns the total number of catalog entries
func (r *repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM videos").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count videos: %w", err)
	}
	return count, nil
}

// CreateMany inserts videos in a single transaction
func (r *repository) CreateMany(ctx context.Context, videos []model.Video) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO videos (id, title, description, youtube_id, thumbnail_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for _, v := range videos {
		_, err := tx.ExecContext(ctx, query, v.ID, v.Title, v.Description, v.YouTubeID, v.ThumbnailURL, v.IsActive, v.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert video %q: %w", v.Title, err)
		}
	}

	return tx.Commit()
}
