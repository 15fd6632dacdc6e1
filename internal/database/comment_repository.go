package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// CreateComment creates a comment. The (video, owner) unique
// constraint enforces one comment per user per video.
func (r *Repository) CreateComment(ctx context.Context, comment *models.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	query := `
		INSERT INTO comments (id, video_id, owner_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		comment.ID, comment.VideoID, comment.OwnerID, comment.Content,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)

	if isUniqueViolation(err) {
		return apperr.New(apperr.KindConflict, "a comment already exists")
	}
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// GetComment retrieves a comment by ID
func (r *Repository) GetComment(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "comment does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get comment: %w", err)
	}

	return &comment, nil
}

// CommentExists reports whether a comment with the given ID exists
func (r *Repository) CommentExists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM comments WHERE id = $1)`

	var exists bool
	if err := r.db.Pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check comment existence: %w", err)
	}

	return exists, nil
}

// UpdateComment replaces the content of a comment
func (r *Repository) UpdateComment(ctx context.Context, id, content string) (*models.Comment, error) {
	query := `
		UPDATE comments
		SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING id, video_id, owner_id, content, created_at, updated_at
	`

	var comment models.Comment
	err := r.db.Pool.QueryRow(ctx, query, id, content).Scan(
		&comment.ID, &comment.VideoID, &comment.OwnerID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "comment does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return &comment, nil
}

// DeleteComment removes a comment
func (r *Repository) DeleteComment(ctx context.Context, id string) error {
	query := `DELETE FROM comments WHERE id = $1`

	tag, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "comment does not exist")
	}

	return nil
}
