package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

const articleColumns = `id, title, summary, content, category, author,
image_url, video_url, audio_url, created_by, created_at, updated_at`

type ArticleRepo struct {
	db           *sql.DB
	queryBuilder *ArticleQueryBuilder
	now          func() time.Time
}

func NewArticleRepo(db *sql.DB) repository.ArticleRepository {
	return &ArticleRepo{
		db:           db,
		queryBuilder: NewArticleQueryBuilder(),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanArticle(row rowScanner) (*entity.Article, error) {
	var (
		a                       entity.Article
		id                      string
		video, audio, createdBy sql.NullString
	)
	if err := row.Scan(&id, &a.Title, &a.Summary, &a.Content, &a.Category, &a.Author,
		&a.ImageURL, &video, &audio, &createdBy, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.ID = entity.ArticleID(id)
	a.VideoURL = video.String
	a.AudioURL = audio.String
	a.CreatedBy = entity.UserID(createdBy.String)
	return &a, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// validID reports whether id can be a primary key; anything else cannot match a row.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (repo *ArticleRepo) Find(ctx context.Context, q repository.Query) ([]*entity.Article, int64, error) {
	if err := q.Validate(); err != nil {
		return nil, 0, err
	}
	where, args, err := repo.queryBuilder.BuildWhereClause(q.Filter)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM articles " + where
	if err := repo.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("Find: Count: %w", err)
	}

	query := fmt.Sprintf("SELECT %s FROM articles %s %s", articleColumns, where, repo.queryBuilder.BuildOrderBy(q.Ordering()))
	if q.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", len(args)+1)
		args = append(args, q.Limit)
	}
	if q.Skip > 0 {
		query += fmt.Sprintf(" OFFSET $%d", len(args)+1)
		args = append(args, q.Skip)
	}

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("Find: %w", err)
	}
	defer func() { _ = rows.Close() }()

	articles := make([]*entity.Article, 0, q.Limit)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("Find: Scan: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("Find: %w", err)
	}
	return articles, total, nil
}

func (repo *ArticleRepo) FindByID(ctx context.Context, id entity.ArticleID) (*entity.Article, error) {
	if !validID(id.String()) {
		return nil, nil
	}
	query := "SELECT " + articleColumns + " FROM articles WHERE id = $1 LIMIT 1"
	a, err := scanArticle(repo.db.QueryRowContext(ctx, query, id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return a, nil
}

func (repo *ArticleRepo) Create(ctx context.Context, a *entity.Article) error {
	if err := entity.ValidateArticle(a); err != nil {
		return err
	}
	const query = `
INSERT INTO articles (id, title, summary, content, category, author,
                      image_url, video_url, audio_url, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	id := uuid.NewString()
	now := repo.now()
	_, err := repo.db.ExecContext(ctx, query,
		id, a.Title, a.Summary, a.Content, a.Category, a.Author,
		a.ImageURL, nullable(a.VideoURL), nullable(a.AudioURL), nullable(a.CreatedBy.String()),
		now, now)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	a.ID = entity.ArticleID(id)
	a.CreatedAt = now
	a.UpdatedAt = now
	return nil
}

func (repo *ArticleRepo) UpdateByID(ctx context.Context, id entity.ArticleID, a *entity.Article) (*entity.Article, error) {
	if err := entity.ValidateArticle(a); err != nil {
		return nil, err
	}
	if !validID(id.String()) {
		return nil, nil
	}
	query := `
UPDATE articles
SET title = $1, summary = $2, content = $3, category = $4, author = $5,
    image_url = $6, video_url = $7, audio_url = $8, updated_at = $9
WHERE id = $10
RETURNING ` + articleColumns

	updated, err := scanArticle(repo.db.QueryRowContext(ctx, query,
		a.Title, a.Summary, a.Content, a.Category, a.Author,
		a.ImageURL, nullable(a.VideoURL), nullable(a.AudioURL), repo.now(),
		id.String()))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UpdateByID: %w", err)
	}
	return updated, nil
}

func (repo *ArticleRepo) DeleteByID(ctx context.Context, id entity.ArticleID) (bool, error) {
	if !validID(id.String()) {
		return false, nil
	}
	res, err := repo.db.ExecContext(ctx, `DELETE FROM articles WHERE id = $1`, id.String())
	if err != nil {
		return false, fmt.Errorf("DeleteByID: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("DeleteByID: RowsAffected: %w", err)
	}
	return n > 0, nil
}
