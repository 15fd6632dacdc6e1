package models

import (
	"time"
)

// Video represents an uploaded video and its stored media objects.
type Video struct {
	ID           string    `json:"id" db:"id"`
	OwnerID      string    `json:"owner_id" db:"owner_id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	VideoURL     string    `json:"video_url" db:"video_url"`
	VideoKey     string    `json:"-" db:"video_key"`
	Thumbnail    string    `json:"thumbnail" db:"thumbnail"`
	ThumbnailKey string    `json:"-" db:"thumbnail_key"`
	Duration     float64   `json:"duration" db:"duration"`
	Views        int64     `json:"views" db:"views"`
	IsPublished  bool      `json:"is_published" db:"is_published"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// VideoSummary is the projection returned by listing and feed queries.
type VideoSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Thumbnail     string    `json:"thumbnail"`
	Duration      float64   `json:"duration"`
	Views         int64     `json:"views"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username,omitempty"`
	OwnerAvatar   string    `json:"owner_avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SortField enumerates the columns a video listing may be sorted by.
// Caller input is mapped onto this allow-list, never into SQL directly.
type SortField string

const (
	SortByCreatedAt SortField = "created_at"
	SortByViews     SortField = "views"
	SortByDuration  SortField = "duration"
	SortByTitle     SortField = "title"
)

// ValidSortField reports whether the given field is sortable.
func ValidSortField(f SortField) bool {
	switch f {
	case SortByCreatedAt, SortByViews, SortByDuration, SortByTitle:
		return true
	}
	return false
}

// Sort directions, matching the +1/-1 convention of the API.
const (
	SortAscending  = 1
	SortDescending = -1
)

// VideoFilter describes a video search. Query and OwnerID are optional
// and combine with OR; only published videos ever match.
type VideoFilter struct {
	Query     string
	OwnerID   string
	SortBy    SortField
	SortOrder int
	Page      int
	PageSize  int
}
