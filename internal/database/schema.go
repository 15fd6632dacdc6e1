package database

import (
	"context"
	"fmt"
)

// Every uniqueness invariant lives here as a constraint: one
// subscription per (subscriber, channel), one like per (user, target),
// no duplicate playlist entries, one comment per user per video.
// Toggles stay race-free because the store enforces these, not the
// application.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            UUID PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	full_name     TEXT NOT NULL,
	avatar        TEXT NOT NULL DEFAULT '',
	avatar_key    TEXT NOT NULL DEFAULT '',
	cover_image   TEXT NOT NULL DEFAULT '',
	cover_key     TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	refresh_token TEXT,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS videos (
	id            UUID PRIMARY KEY,
	owner_id      UUID NOT NULL REFERENCES users(id),
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	video_url     TEXT NOT NULL,
	video_key     TEXT NOT NULL,
	thumbnail     TEXT NOT NULL DEFAULT '',
	thumbnail_key TEXT NOT NULL DEFAULT '',
	duration      DOUBLE PRECISION NOT NULL DEFAULT 0,
	views         BIGINT NOT NULL DEFAULT 0,
	is_published  BOOLEAN NOT NULL DEFAULT true,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_videos_owner ON videos(owner_id);
CREATE INDEX IF NOT EXISTS idx_videos_created_at ON videos(created_at DESC);

CREATE TABLE IF NOT EXISTS comments (
	id         UUID PRIMARY KEY,
	video_id   UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	owner_id   UUID NOT NULL REFERENCES users(id),
	content    TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (video_id, owner_id)
);

CREATE TABLE IF NOT EXISTS subscriptions (
	id            UUID PRIMARY KEY,
	subscriber_id UUID NOT NULL REFERENCES users(id),
	channel_id    UUID NOT NULL REFERENCES users(id),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (subscriber_id, channel_id),
	CHECK (subscriber_id <> channel_id)
);

CREATE INDEX IF NOT EXISTS idx_subscriptions_channel ON subscriptions(channel_id);

CREATE TABLE IF NOT EXISTS likes (
	id         UUID PRIMARY KEY,
	user_id    UUID NOT NULL REFERENCES users(id),
	video_id   UUID REFERENCES videos(id) ON DELETE CASCADE,
	comment_id UUID REFERENCES comments(id) ON DELETE CASCADE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	CHECK ((video_id IS NULL) <> (comment_id IS NULL))
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_user_video
	ON likes(user_id, video_id) WHERE video_id IS NOT NULL;
CREATE UNIQUE INDEX IF NOT EXISTS idx_likes_user_comment
	ON likes(user_id, comment_id) WHERE comment_id IS NOT NULL;

CREATE TABLE IF NOT EXISTS playlists (
	id          UUID PRIMARY KEY,
	owner_id    UUID NOT NULL REFERENCES users(id),
	name        TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS playlist_videos (
	playlist_id UUID NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
	video_id    UUID NOT NULL REFERENCES videos(id) ON DELETE CASCADE,
	position    BIGINT NOT NULL,
	PRIMARY KEY (playlist_id, video_id)
);
`

// Migrate applies the schema. Statements are idempotent so this runs
// on every startup.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.Pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}
