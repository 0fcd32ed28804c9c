package entity

import (
	"io"
	"path/filepath"
	"regexp"
	"strings"
)

// MediaSlot names one of the three attachment positions of an article.
type MediaSlot string

const (
	SlotImage MediaSlot = "image"
	SlotVideo MediaSlot = "video"
	SlotAudio MediaSlot = "audio"
)

// MediaSlots lists every slot in submission order.
var MediaSlots = []MediaSlot{SlotImage, SlotVideo, SlotAudio}

// RootFolder is the media store folder every upload lands under.
const RootFolder = "news-portal"

// FieldName returns the multipart form field carrying the slot's file.
func (s MediaSlot) FieldName() string {
	return string(s) + "Url"
}

// Folder returns the destination folder in the media store.
func (s MediaSlot) Folder() string {
	switch s {
	case SlotImage:
		return RootFolder + "/images"
	case SlotVideo:
		return RootFolder + "/videos"
	case SlotAudio:
		return RootFolder + "/audio"
	}
	return RootFolder
}

// MediaFile is a file submitted for one slot. Body is read once.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// MediaAsset is a stored asset as reported by the media store.
type MediaAsset struct {
	URL      string
	PublicID string
}

// MediaExtensions lists the accepted file extensions. The media store's
// public-id extraction is built from the same list.
var MediaExtensions = []string{
	"jpeg", "jpg", "png", "gif", "webp", "bmp", "svg", "tiff", "ico", "heic",
	"mp4", "mov", "avi", "mkv", "webm", "flv", "wmv", "3gp",
	"mp3", "wav", "aac", "ogg", "m4a", "flac",
}

var allowedMedia = regexp.MustCompile(`^(` + strings.Join(MediaExtensions, "|") + `)$`)

// IsAllowedMedia reports whether both the filename extension and the MIME
// subtype belong to the accepted media formats.
func IsAllowedMedia(filename, contentType string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !allowedMedia.MatchString(ext) {
		return false
	}
	_, sub, ok := strings.Cut(strings.ToLower(contentType), "/")
	if !ok {
		return false
	}
	sub, _, _ = strings.Cut(sub, ";")
	sub = strings.TrimSpace(sub)
	// image/svg+xml, audio/x-wav and similar
	sub = strings.TrimPrefix(sub, "x-")
	sub, _, _ = strings.Cut(sub, "+")
	switch sub {
	case "mpeg":
		sub = "mp3"
	case "quicktime":
		sub = "mov"
	case "msvideo":
		sub = "avi"
	case "matroska":
		sub = "mkv"
	case "mp4a", "m4a-latm":
		sub = "m4a"
	case "3gpp":
		sub = "3gp"
	case "ms-wmv":
		sub = "wmv"
	case "icon", "vnd.microsoft.icon":
		sub = "ico"
	}
	return allowedMedia.MatchString(sub)
}
