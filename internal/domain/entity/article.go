// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Article, User and Principal,
// the category taxonomy and media slots, along with their validation rules and
// domain-specific errors.
package entity

import "time"

// ArticleID is the opaque identifier assigned by the repository at creation.
type ArticleID string

// String returns the raw identifier.
func (id ArticleID) String() string { return string(id) }

// Field length limits shared by server validation and the admin client.
const (
	MaxTitleLength   = 200
	MaxSummaryLength = 300
)

// Article represents a published news article and its attached media.
// VideoURL and AudioURL are empty when the slot holds no asset.
// The max tags repeat MaxTitleLength and MaxSummaryLength.
type Article struct {
	ID        ArticleID
	Title     string `validate:"required,max=200"`
	Summary   string `validate:"required,max=300"`
	Content   string `validate:"required"`
	Category  string `validate:"required,category"`
	Author    string `validate:"required"`
	ImageURL  string `validate:"required"`
	VideoURL  string
	AudioURL  string
	CreatedBy UserID
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MediaURL returns the URL stored in the given slot.
func (a *Article) MediaURL(slot MediaSlot) string {
	switch slot {
	case SlotImage:
		return a.ImageURL
	case SlotVideo:
		return a.VideoURL
	case SlotAudio:
		return a.AudioURL
	}
	return ""
}

// SetMediaURL stores url in the given slot.
func (a *Article) SetMediaURL(slot MediaSlot, url string) {
	switch slot {
	case SlotImage:
		a.ImageURL = url
	case SlotVideo:
		a.VideoURL = url
	case SlotAudio:
		a.AudioURL = url
	}
}

// Clone returns a shallow copy of the article.
func (a *Article) Clone() *Article {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}

// CanModify reports whether p may update or delete the article.
// Owners and admins may; everyone else may not.
func CanModify(p Principal, a *Article) bool {
	if a == nil {
		return false
	}
	return p.ID.Equal(a.CreatedBy) || p.Role == RoleAdmin
}
