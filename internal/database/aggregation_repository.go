package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aditya-4747/VideoStreamAPI/pkg/apperr"
	"github.com/aditya-4747/VideoStreamAPI/pkg/models"
)

// ChannelStats computes the derived channel view in a single query:
// subscriber count, published video count, total views, and whether
// the viewer subscribes to the channel. viewerID may be empty for
// anonymous reads.
func (r *Repository) ChannelStats(ctx context.Context, channelID, viewerID string) (*models.ChannelStats, error) {
	query := `
		SELECT u.id, u.username, u.full_name, u.avatar, u.cover_image,
		       (SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id),
		       (SELECT count(*) FROM videos v WHERE v.owner_id = u.id AND v.is_published),
		       (SELECT COALESCE(sum(v.views), 0) FROM videos v WHERE v.owner_id = u.id AND v.is_published),
		       ($2 <> '' AND EXISTS (
		           SELECT 1 FROM subscriptions s
		           WHERE s.channel_id = u.id AND s.subscriber_id::text = $2
		       ))
		FROM users u
		WHERE u.id = $1
	`

	var stats models.ChannelStats
	err := r.db.Pool.QueryRow(ctx, query, channelID, viewerID).Scan(
		&stats.ChannelID, &stats.Username, &stats.FullName, &stats.Avatar, &stats.CoverImage,
		&stats.SubscriberCount, &stats.VideoCount, &stats.TotalViews, &stats.IsSubscribed,
	)

	if err == pgx.ErrNoRows {
		return nil, apperr.New(apperr.KindNotFound, "channel does not exist")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to compute channel stats: %w", err)
	}

	return &stats, nil
}

const videoSummaryColumns = `v.id, v.title, v.description, v.thumbnail, v.duration, v.views,
	       v.owner_id, u.username, u.avatar, v.created_at`

func (r *Repository) scanVideoSummaries(ctx context.Context, query string, args ...interface{}) ([]*models.VideoSummary, error) {
	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	defer rows.Close()

	videos := make([]*models.VideoSummary, 0)
	for rows.Next() {
		var v models.VideoSummary
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.Thumbnail, &v.Duration, &v.Views,
			&v.OwnerID, &v.OwnerUsername, &v.OwnerAvatar, &v.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan video: %w", err)
		}
		videos = append(videos, &v)
	}

	return videos, rows.Err()
}

// ChannelVideos lists a channel's published videos newest first
func (r *Repository) ChannelVideos(ctx context.Context, channelID string, limit, offset int) ([]*models.VideoSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE v.owner_id = $1 AND v.is_published
		ORDER BY v.created_at DESC
		LIMIT $2 OFFSET $3
	`, videoSummaryColumns)

	return r.scanVideoSummaries(ctx, query, channelID, limit, offset)
}

// sortColumns is the allow-list mapping API sort fields to SQL sort
// keys. Caller input never reaches the ORDER BY clause directly.
var sortColumns = map[models.SortField]string{
	models.SortByCreatedAt: "v.created_at",
	models.SortByViews:     "v.views",
	models.SortByDuration:  "v.duration",
	models.SortByTitle:     "v.title",
}

// SearchVideos lists published videos matching the filter. Query and
// OwnerID combine with OR when both are set; published is always
// required.
func (r *Repository) SearchVideos(ctx context.Context, filter models.VideoFilter) ([]*models.VideoSummary, error) {
	column, ok := sortColumns[filter.SortBy]
	if !ok {
		return nil, apperr.New(apperr.KindValidation, "unknown sort field %q", string(filter.SortBy))
	}

	direction := "DESC"
	if filter.SortOrder == models.SortAscending {
		direction = "ASC"
	}

	where := "v.is_published"
	args := []interface{}{}

	switch {
	case filter.Query != "" && filter.OwnerID != "":
		where += " AND (v.title ILIKE '%' || $1 || '%' OR v.owner_id::text = $2)"
		args = append(args, filter.Query, filter.OwnerID)
	case filter.Query != "":
		where += " AND v.title ILIKE '%' || $1 || '%'"
		args = append(args, filter.Query)
	case filter.OwnerID != "":
		where += " AND v.owner_id::text = $1"
		args = append(args, filter.OwnerID)
	}

	limitArg := len(args) + 1
	offsetArg := len(args) + 2
	args = append(args, filter.PageSize, (filter.Page-1)*filter.PageSize)

	query := fmt.Sprintf(`
		SELECT %s
		FROM videos v
		JOIN users u ON u.id = v.owner_id
		WHERE %s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d
	`, videoSummaryColumns, where, column, direction, limitArg, offsetArg)

	return r.scanVideoSummaries(ctx, query, args...)
}

// LikedVideos lists the videos a user has liked
func (r *Repository) LikedVideos(ctx context.Context, userID string) ([]*models.VideoSummary, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM likes l
		JOIN videos v ON v.id = l.video_id
		JOIN users u ON u.id = v.owner_id
		WHERE l.user_id = $1 AND l.video_id IS NOT NULL
		ORDER BY l.created_at DESC
	`, videoSummaryColumns)

	return r.scanVideoSummaries(ctx, query, userID)
}

// LikeCount counts likes whose target, video or comment, matches the
// given ID.
func (r *Repository) LikeCount(ctx context.Context, targetID string) (int64, error) {
	query := `SELECT count(*) FROM likes WHERE video_id = $1 OR comment_id = $1`

	var count int64
	if err := r.db.Pool.QueryRow(ctx, query, targetID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}

// CommentsOf lists a video's comments in insertion order
func (r *Repository) CommentsOf(ctx context.Context, videoID string, limit, offset int) ([]*models.Comment, error) {
	query := `
		SELECT id, video_id, owner_id, content, created_at, updated_at
		FROM comments
		WHERE video_id = $1
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, videoID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := make([]*models.Comment, 0)
	for rows.Next() {
		var c models.Comment
		err := rows.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &c)
	}

	return comments, rows.Err()
}
