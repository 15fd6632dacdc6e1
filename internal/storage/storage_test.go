package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetContentType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"video.mp4", "video/mp4"},
		{"clip.MOV", "video/quicktime"},
		{"movie.webm", "video/webm"},
		{"thumb.jpg", "image/jpeg"},
		{"thumb.jpeg", "image/jpeg"},
		{"avatar.png", "image/png"},
		{"cover.webp", "image/webp"},
		{"unknown.bin", "application/octet-stream"},
		{"noextension", "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, getContentType(tt.filename))
		})
	}
}
