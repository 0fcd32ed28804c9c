// Package article provides the HTTP handlers of the article API: listing
// with filters and projection, detail, the RSS feed, the category list and
// the multipart create, update, delete and upload endpoints.
package article

import (
	"time"

	"news-portal/internal/domain/entity"
)

// DTO represents the JSON structure for article data transfer.
type DTO struct {
	ID        string    `json:"id" example:"665f1c2e9b1d4a0012345678"`
	Title     string    `json:"title" example:"Parliament passes budget"`
	Summary   string    `json:"summary" example:"The vote ended a week of negotiations."`
	Content   string    `json:"content" example:"<p>After a week of negotiations...</p>"`
	Category  string    `json:"category" example:"Politics"`
	Author    string    `json:"author" example:"Jane Doe"`
	ImageURL  string    `json:"imageUrl" example:"https://res.cloudinary.com/demo/image/upload/v1/news-portal/images/a.jpg"`
	VideoURL  *string   `json:"videoUrl"`
	AudioURL  *string   `json:"audioUrl"`
	CreatedBy string    `json:"createdBy" example:"665f1c2e9b1d4a0000000001"`
	CreatedAt time.Time `json:"createdAt" example:"2025-10-26T12:00:00Z"`
	UpdatedAt time.Time `json:"updatedAt" example:"2025-10-26T12:00:00Z"`
}

func toDTO(a *entity.Article) DTO {
	return DTO{
		ID:        a.ID.String(),
		Title:     a.Title,
		Summary:   a.Summary,
		Content:   a.Content,
		Category:  a.Category,
		Author:    a.Author,
		ImageURL:  a.ImageURL,
		VideoURL:  optional(a.VideoURL),
		AudioURL:  optional(a.AudioURL),
		CreatedBy: a.CreatedBy.String(),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// optional maps an empty slot to JSON null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// project keeps id and the requested wire fields.
func (d DTO) project(fields []string) map[string]any {
	out := map[string]any{"id": d.ID}
	for _, f := range fields {
		switch f {
		case "title":
			out[f] = d.Title
		case "summary":
			out[f] = d.Summary
		case "content":
			out[f] = d.Content
		case "category":
			out[f] = d.Category
		case "author":
			out[f] = d.Author
		case "imageUrl":
			out[f] = d.ImageURL
		case "videoUrl":
			out[f] = d.VideoURL
		case "audioUrl":
			out[f] = d.AudioURL
		case "createdBy":
			out[f] = d.CreatedBy
		case "createdAt":
			out[f] = d.CreatedAt
		case "updatedAt":
			out[f] = d.UpdatedAt
		}
	}
	return out
}

// MediaURLs is the body of the upload endpoint.
type MediaURLs struct {
	ImageURL string `json:"imageUrl,omitempty"`
	VideoURL string `json:"videoUrl,omitempty"`
	AudioURL string `json:"audioUrl,omitempty"`
}

func toMediaURLs(assets map[entity.MediaSlot]entity.MediaAsset) MediaURLs {
	return MediaURLs{
		ImageURL: assets[entity.SlotImage].URL,
		VideoURL: assets[entity.SlotVideo].URL,
		AudioURL: assets[entity.SlotAudio].URL,
	}
}
