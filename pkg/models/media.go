package models

// MediaObject identifies a file held by the media store. URL is the
// public address; Key is the store identifier used for deletion.
type MediaObject struct {
	URL string `json:"url"`
	Key string `json:"key"`
}
