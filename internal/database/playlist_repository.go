package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// CreatePlaylist creates a playlist record
func (r *Repository) CreatePlaylist(ctx context.Context, playlist *models.Playlist) error {
	if playlist.ID == "" {
		playlist.ID = uuid.New().String()
	}

	query := `
		INSERT INTO playlists (id, owner_id, name, description)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at
	`

	err := r.db.Pool.QueryRow(ctx, query,
		playlist.ID, playlist.OwnerID, playlist.Name, playlist.Description,
	).Scan(&playlist.CreatedAt, &playlist.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	playlist.VideoIDs = make([]string, 0)
	return nil
}

// GetPlaylist retrieves a playlist with its members in append order
func (r *Repository) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE id = $1
	`

	var playlist models.Playlist
	err := r.db.Pool.QueryRow(ctx, query, id).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist: %w", err)
	}

	videoIDs, err := r.playlistVideoIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.VideoIDs = videoIDs

	return &playlist, nil
}

func (r *Repository) playlistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	query := `SELECT video_id FROM playlist_videos WHERE playlist_id = $1 ORDER BY position`

	rows, err := r.db.Pool.Query(ctx, query, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlist videos: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan playlist video: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// UpdatePlaylist changes playlist metadata
func (r *Repository) UpdatePlaylist(ctx context.Context, id, name, description string) (*models.Playlist, error) {
	query := `
		UPDATE playlists
		SET name = COALESCE(NULLIF($2, ''), name),
		    description = COALESCE(NULLIF($3, ''), description),
		    updated_at = now()
		WHERE id = $1
		RETURNING id, owner_id, name, description, created_at, updated_at
	`

	var playlist models.Playlist
	err := r.db.Pool.QueryRow(ctx, query, id, name, description).Scan(
		&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
		&playlist.CreatedAt, &playlist.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update playlist: %w", err)
	}

	videoIDs, err := r.playlistVideoIDs(ctx, id)
	if err != nil {
		return nil, err
	}
	playlist.VideoIDs = videoIDs

	return &playlist, nil
}

// DeletePlaylist removes a playlist and, via cascade, its membership
func (r *Repository) DeletePlaylist(ctx context.Context, id string) error {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete playlist: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.New(apperr.KindNotFound, "playlist does not exist")
	}

	return nil
}

// PlaylistsByOwner lists the playlists a user owns
func (r *Repository) PlaylistsByOwner(ctx context.Context, ownerID string) ([]*models.Playlist, error) {
	query := `
		SELECT id, owner_id, name, description, created_at, updated_at
		FROM playlists
		WHERE owner_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list playlists: %w", err)
	}
	defer rows.Close()

	playlists := make([]*models.Playlist, 0)
	for rows.Next() {
		var playlist models.Playlist
		err := rows.Scan(
			&playlist.ID, &playlist.OwnerID, &playlist.Name, &playlist.Description,
			&playlist.CreatedAt, &playlist.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan playlist: %w", err)
		}
		playlists = append(playlists, &playlist)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, playlist := range playlists {
		videoIDs, err := r.playlistVideoIDs(ctx, playlist.ID)
		if err != nil {
			return nil, err
		}
		playlist.VideoIDs = videoIDs
	}

	return playlists, nil
}

// AddPlaylistVideos appends the given videos to a playlist inside one
// transaction. Any duplicate aborts the whole batch: either every
// video is appended or none is.
func (r *Repository) AddPlaylistVideos(ctx context.Context, playlistID string, videoIDs []string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	// Lock the playlist row so concurrent batches cannot interleave
	// positions, then append after the current tail.
	var lockedID string
	err = tx.QueryRow(ctx, `SELECT id FROM playlists WHERE id = $1 FOR UPDATE`, playlistID).Scan(&lockedID)
	if err == pgx.ErrNoRows {
		return apperr.New(apperr.KindNotFound, "playlist does not exist")
	}
	if err != nil {
		return fmt.Errorf("failed to lock playlist: %w", err)
	}

	var nextPosition int64
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(position), 0) + 1
		FROM playlist_videos
		WHERE playlist_id = $1
	`, playlistID).Scan(&nextPosition)
	if err != nil {
		return fmt.Errorf("failed to read playlist tail: %w", err)
	}

	for i, videoID := range videoIDs {
		_, err := tx.Exec(ctx, `
			INSERT INTO playlist_videos (playlist_id, video_id, position)
			VALUES ($1, $2, $3)
		`, playlistID, videoID, nextPosition+int64(i))

		if isUniqueViolation(err) {
			return apperr.New(apperr.KindConflict, "video already exists in the playlist")
		}
		if err != nil {
			return fmt.Errorf("failed to add playlist video: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID); err != nil {
		return fmt.Errorf("failed to touch playlist: %w", err)
	}

	return tx.Commit(ctx)
}

// RemovePlaylistVideos removes the given videos from a playlist inside
// one transaction. Any absent member aborts the whole batch. Positions
// of the remaining members are untouched, preserving relative order.
func (r *Repository) RemovePlaylistVideos(ctx context.Context, playlistID string, videoIDs []string) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for _, videoID := range videoIDs {
		tag, err := tx.Exec(ctx, `
			DELETE FROM playlist_videos
			WHERE playlist_id = $1 AND video_id = $2
		`, playlistID, videoID)

		if err != nil {
			return fmt.Errorf("failed to remove playlist video: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperr.New(apperr.KindNotFound, "video does not exist in playlist")
		}
	}

	if _, err := tx.Exec(ctx, `UPDATE playlists SET updated_at = now() WHERE id = $1`, playlistID); err != nil {
		return fmt.Errorf("failed to touch playlist: %w", err)
	}

	return tx.Commit(ctx)
}
