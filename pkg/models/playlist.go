package models

import (
	"time"
)

// Playlist is an owner-curated, ordered set of unique videos. VideoIDs
// is populated on reads in append order; membership itself lives in the
// playlist_videos table.
type Playlist struct {
	ID          string    `json:"id" db:"id"`
	OwnerID     string    `json:"owner_id" db:"owner_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	VideoIDs    []string  `json:"video_ids"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
