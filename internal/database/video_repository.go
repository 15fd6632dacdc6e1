package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

const videoColumns = `id, owner_id, title, description, video_url, video_key, thumbnail, thumbnail_key,
	       duration, views, is_published, created_at, updated_at`

func scanVideo(row pgx.Row) (*models.Video, error) {
	var video models.Video
	err := row.Scan(
		&video.ID, &video.OwnerID, &video.Title, &video.Description, &video.VideoURL,
		&video.VideoKey, &video.Thumbnail, &video.ThumbnailKey, &video.Duration,
		&video.Views, &video.IsPublished, &video.CreatedAt, &video.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// CreateVideo creates a new video record
func (r *Repository) CreateVideo(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}

	query := `
		INSERT INTO videos (id, owner_id, title, description, video_url, video_key,
		                    thumbnail, thumbnail_key, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING views, created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		video.ID, video.OwnerID, video.Title, video.Description, video.VideoURL,
		video.VideoKey, video.Thumbnail, video.ThumbnailKey, video.Duration, video.IsPublished,
	).Scan(&video.Views, &video.CreatedAt, &video.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create video: %w", err)
	}

	return nil
}

// GetVideo retrieves a video by ID
func (r *Repository) GetVideo(ctx context.Context, id string) (*models.Video, error) {
	query := fmt.Sprintf(`SELECT %s FROM videos WHERE id = $1`, videoColumns)

	video, err := scanVideo(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get video: %w", err)
	}

	return video, nil
}

// VideoExists reports whether a video with the given ID exists
func (r *Repository) VideoExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM videos WHERE id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check video existence: %w", err)
	}

	return exists, nil
}

// UpdateVideoDetails updates the title and description of a video
func (r *Repository) UpdateVideoDetails(ctx context.Context, id, title, description string) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos
		SET title = $2, description = $3, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, videoColumns)

	video, err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, title, description))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update video: %w", err)
	}

	return video, nil
}

// UpdateVideoThumbnail replaces the stored thumbnail reference
func (r *Repository) UpdateVideoThumbnail(ctx context.Context, id, thumbnailURL, thumbnailKey string) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos
		SET thumbnail = $2, thumbnail_key = $3, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, videoColumns)

	video, err := scanVideo(r.db.Pool.QueryRow(ctx, query, id, thumbnailURL, thumbnailKey))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update thumbnail: %w", err)
	}

	return video, nil
}

// TogglePublishStatus flips the publish flag in a single atomic UPDATE
// so concurrent toggles never lose an update.
func (r *Repository) TogglePublishStatus(ctx context.Context, id string) (*models.Video, error) {
	query := fmt.Sprintf(`
		UPDATE videos
		SET is_published = NOT is_published, updated_at = now()
		WHERE id = $1
		RETURNING %s
	`, videoColumns)

	video, err := scanVideo(r.db.Pool.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "video does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle publish status: %w", err)
	}

	return video, nil
}

// IncrementViews bumps the view counter atomically
func (r *Repository) IncrementViews(ctx context.Context, id string) error {
	query := `UPDATE videos SET views = views + 1 WHERE id = $1`

	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

// DeleteVideo removes a video record
func (r *Repository) DeleteVideo(ctx context.Context, id string) error {
	query := `DELETE FROM videos WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete video: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "video does not exist")
	}

	return nil
}
