package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// The toggle queries delete the relation if present and insert it
// otherwise, in one statement, so concurrent toggles on the same pair
// can never produce duplicates. When both arms report false a
// concurrent request won the insert between snapshot and conflict
// check; that surfaces as Conflict rather than a silent duplicate.

const toggleSubscriptionQuery = `
	WITH removed AS (
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
		RETURNING id
	), added AS (
		INSERT INTO subscriptions (id, subscriber_id, channel_id)
		SELECT $3, $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING
		RETURNING id
	)
	SELECT
		EXISTS (SELECT 1 FROM added),
		EXISTS (SELECT 1 FROM removed)
`

// ToggleSubscription creates the (subscriber, channel) relation if
// absent and deletes it if present. Returns true when the relation was
// added.
func (r *Repository) ToggleSubscription(ctx context.Context, subscriberID, channelID string) (bool, error) {
	var added, removed bool
	err := r.db.Pool.QueryRow(ctx, toggleSubscriptionQuery,
		subscriberID, channelID, uuid.New().String(),
	).Scan(&added, &removed)
	if err != nil {
		return false, fmt.Errorf("failed to toggle subscription: %w", err)
	}

	if !added && !removed {
		return false, apperr.New(apperr.KindConflict, "subscription was modified concurrently")
	}

	return added, nil
}

const toggleVideoLikeQuery = `
	WITH removed AS (
		DELETE FROM likes
		WHERE user_id = $1 AND video_id = $2
		RETURNING id
	), added AS (
		INSERT INTO likes (id, user_id, video_id)
		SELECT $3, $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		ON CONFLICT (user_id, video_id) WHERE video_id IS NOT NULL DO NOTHING
		RETURNING id
	)
	SELECT
		EXISTS (SELECT 1 FROM added),
		EXISTS (SELECT 1 FROM removed)
`

const toggleCommentLikeQuery = `
	WITH removed AS (
		DELETE FROM likes
		WHERE user_id = $1 AND comment_id = $2
		RETURNING id
	), added AS (
		INSERT INTO likes (id, user_id, comment_id)
		SELECT $3, $1, $2
		WHERE NOT EXISTS (SELECT 1 FROM removed)
		ON CONFLICT (user_id, comment_id) WHERE comment_id IS NOT NULL DO NOTHING
		RETURNING id
	)
	SELECT
		EXISTS (SELECT 1 FROM added),
		EXISTS (SELECT 1 FROM removed)
`

// ToggleLike creates or removes the like for the given target. The
// target kind selects one of two static queries, one per target
// column. Returns true when the like was added.
func (r *Repository) ToggleLike(ctx context.Context, userID string, target models.LikeTarget) (bool, error) {
	var query string
	switch target.Kind {
	case models.LikeTargetVideo:
		query = toggleVideoLikeQuery
	case models.LikeTargetComment:
		query = toggleCommentLikeQuery
	default:
		return false, apperr.New(apperr.KindValidation, "unknown like target kind")
	}

	var added, removed bool
	err := r.db.Pool.QueryRow(ctx, query, userID, target.ID, uuid.New().String()).Scan(&added, &removed)
	if err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}

	if !added && !removed {
		return false, apperr.New(apperr.KindConflict, "like was modified concurrently")
	}

	return added, nil
}

// Subscribers lists the user IDs subscribed to a channel
func (r *Repository) Subscribers(ctx context.Context, channelID string) ([]string, error) {
	query := `SELECT subscriber_id FROM subscriptions WHERE channel_id = $1 ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, channelID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	defer rows.Close()

	subscribers := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, id)
	}

	return subscribers, rows.Err()
}

// Subscriptions lists the channel IDs a user subscribes to
func (r *Repository) Subscriptions(ctx context.Context, userID string) ([]string, error) {
	query := `SELECT channel_id FROM subscriptions WHERE subscriber_id = $1 ORDER BY created_at`

	rows, err := r.db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	channels := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		channels = append(channels, id)
	}

	return channels, rows.Err()
}
