package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMediaSlot_FieldAndFolder(t *testing.T) {
	tests := []struct {
		slot   MediaSlot
		field  string
		folder string
	}{
		{SlotImage, "imageUrl", "news-portal/images"},
		{SlotVideo, "videoUrl", "news-portal/videos"},
		{SlotAudio, "audioUrl", "news-portal/audio"},
	}

	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			assert.Equal(t, tt.field, tt.slot.FieldName())
			assert.Equal(t, tt.folder, tt.slot.Folder())
		})
	}
}

func TestIsAllowedMedia(t *testing.T) {
	tests := []struct {
		name        string
		filename    string
		contentType string
		want        bool
	}{
		{"jpeg image", "photo.jpg", "image/jpeg", true},
		{"upper case extension", "PHOTO.PNG", "image/png", true},
		{"svg", "logo.svg", "image/svg+xml", true},
		{"mp4 video", "clip.mp4", "video/mp4", true},
		{"quicktime", "clip.mov", "video/quicktime", true},
		{"mp3 audio", "track.mp3", "audio/mpeg", true},
		{"wav audio", "track.wav", "audio/x-wav", true},
		{"content type with params", "a.webp", "image/webp; charset=binary", true},
		{"pdf rejected", "doc.pdf", "application/pdf", false},
		{"spoofed extension", "evil.jpg", "application/x-msdownload", false},
		{"no extension", "photo", "image/jpeg", false},
		{"missing content type", "photo.jpg", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAllowedMedia(tt.filename, tt.contentType))
		})
	}
}
