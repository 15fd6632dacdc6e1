package models

import (
	"time"
)

// Subscription links a subscriber to a channel. At most one row exists
// per (subscriber, channel) pair; self-subscription is rejected before
// the store is touched.
type Subscription struct {
	ID           string    `json:"id" db:"id"`
	SubscriberID string    `json:"subscriber_id" db:"subscriber_id"`
	ChannelID    string    `json:"channel_id" db:"channel_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// LikeTargetKind discriminates what a like points at.
type LikeTargetKind string

const (
	LikeTargetVideo   LikeTargetKind = "video"
	LikeTargetComment LikeTargetKind = "comment"
)

// LikeTarget is a tagged reference to either a video or a comment,
// so exactly one target is set by construction.
type LikeTarget struct {
	Kind LikeTargetKind
	ID   string
}

// VideoTarget builds a like target pointing at a video.
func VideoTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetVideo, ID: id}
}

// CommentTarget builds a like target pointing at a comment.
func CommentTarget(id string) LikeTarget {
	return LikeTarget{Kind: LikeTargetComment, ID: id}
}

// Like records that a user liked a video or a comment. Exactly one of
// VideoID and CommentID is set, enforced by a table check constraint.
type Like struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	VideoID   *string   `json:"video_id,omitempty" db:"video_id"`
	CommentID *string   `json:"comment_id,omitempty" db:"comment_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ToggleResult reports which way a toggle went.
type ToggleResult struct {
	Added bool `json:"added"`
}

// ChannelStats is the derived view of a channel computed at read time.
type ChannelStats struct {
	ChannelID       string `json:"channel_id"`
	Username        string `json:"username"`
	FullName        string `json:"full_name"`
	Avatar          string `json:"avatar"`
	CoverImage      string `json:"cover_image"`
	SubscriberCount int64  `json:"subscriber_count"`
	VideoCount      int64  `json:"video_count"`
	TotalViews      int64  `json:"total_views"`
	IsSubscribed    bool   `json:"is_subscribed"`
}
