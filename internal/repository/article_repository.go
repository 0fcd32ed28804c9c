package repository

import (
	"context"

	"news-portal/internal/domain/entity"
)

// ArticleRepository persists articles.
//
// Implementations assign ID, CreatedAt and UpdatedAt on Create, refresh
// UpdatedAt on UpdateByID and validate the article on every write.
type ArticleRepository interface {
	// Find returns the page of articles matching q and the total number of
	// matches ignoring Skip and Limit.
	Find(ctx context.Context, q Query) ([]*entity.Article, int64, error)
	// FindByID returns (nil, nil) when no article has the id, malformed ids included.
	FindByID(ctx context.Context, id entity.ArticleID) (*entity.Article, error)
	Create(ctx context.Context, article *entity.Article) error
	// UpdateByID replaces the stored fields of the article and returns the
	// stored result, or (nil, nil) if it no longer exists.
	UpdateByID(ctx context.Context, id entity.ArticleID, article *entity.Article) (*entity.Article, error)
	// DeleteByID reports whether a record was removed.
	DeleteByID(ctx context.Context, id entity.ArticleID) (bool, error)
}

// UserRepository persists accounts.
type UserRepository interface {
	// Create returns entity.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id entity.UserID) (*entity.User, error)
	// FindByEmail returns (nil, nil) when no account matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
