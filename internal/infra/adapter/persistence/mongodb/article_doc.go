package mongodb

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"news-portal/internal/domain/entity"
)

// articleDoc is the stored shape of an article. Absent media are null.
type articleDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Title     string             `bson:"title"`
	Summary   string             `bson:"summary"`
	Content   string             `bson:"content"`
	Category  string             `bson:"category"`
	Author    string             `bson:"author"`
	ImageURL  string             `bson:"imageUrl"`
	VideoURL  *string            `bson:"videoUrl"`
	AudioURL  *string            `bson:"audioUrl"`
	CreatedBy primitive.ObjectID `bson:"createdBy,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toArticleDoc(a *entity.Article) (*articleDoc, error) {
	doc := &articleDoc{
		Title:     a.Title,
		Summary:   a.Summary,
		Content:   a.Content,
		Category:  a.Category,
		Author:    a.Author,
		ImageURL:  a.ImageURL,
		VideoURL:  optional(a.VideoURL),
		AudioURL:  optional(a.AudioURL),
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if a.CreatedBy != "" {
		oid, err := primitive.ObjectIDFromHex(a.CreatedBy.String())
		if err != nil {
			return nil, &entity.ValidationError{Field: "createdBy", Message: "must be a valid id"}
		}
		doc.CreatedBy = oid
	}
	return doc, nil
}

func (d *articleDoc) toEntity() *entity.Article {
	a := &entity.Article{
		ID:        entity.ArticleID(d.ID.Hex()),
		Title:     d.Title,
		Summary:   d.Summary,
		Content:   d.Content,
		Category:  d.Category,
		Author:    d.Author,
		ImageURL:  d.ImageURL,
		VideoURL:  deref(d.VideoURL),
		AudioURL:  deref(d.AudioURL),
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
	if !d.CreatedBy.IsZero() {
		a.CreatedBy = entity.UserID(d.CreatedBy.Hex())
	}
	return a
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Name         string             `bson:"name"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	Role         string             `bson:"role"`
	CreatedAt    time.Time          `bson:"createdAt"`
}

func (d *userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:           entity.UserID(d.ID.Hex()),
		Name:         d.Name,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Role:         entity.Role(d.Role),
		CreatedAt:    d.CreatedAt.UTC(),
	}
}
