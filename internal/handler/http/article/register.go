package article

import (
	"context"
	"log/slog"
	"net/http"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/handler/http/auth"
	artUC "news-portal/internal/usecase/article"
)

// Service is the article lifecycle used by the handlers.
type Service interface {
	List(ctx context.Context, in artUC.ListInput) (*artUC.PaginatedResult, error)
	Get(ctx context.Context, id entity.ArticleID) (*entity.Article, error)
	Create(ctx context.Context, p entity.Principal, in artUC.CreateInput) (*entity.Article, error)
	Update(ctx context.Context, p entity.Principal, in artUC.UpdateInput) (*entity.Article, error)
	Delete(ctx context.Context, p entity.Principal, id entity.ArticleID) error
	UploadFiles(ctx context.Context, files map[entity.MediaSlot]entity.MediaFile) (map[entity.MediaSlot]entity.MediaAsset, error)
}

// Config carries the settings the article routes need.
type Config struct {
	Pagination  pagination.Config
	MaxFileSize int64
	CookieName  string
	Feed        FeedConfig
}

// Register mounts the article routes on mux.
// Reads are public. Create and upload require an admin; update and delete
// require a signed-in owner or admin, checked by the service.
func Register(mux *http.ServeMux, svc Service, authn auth.Authenticator, cfg Config, logger *slog.Logger) {
	protect := auth.Protect(authn, cfg.CookieName)
	admin := func(h http.Handler) http.Handler {
		return protect(auth.RequireRole(entity.RoleAdmin)(h))
	}

	mux.Handle("GET /api/articles", ListHandler{Svc: svc, PaginationCfg: cfg.Pagination, Logger: logger})
	mux.Handle("GET /api/articles/feed.rss", FeedHandler{Svc: svc, Feed: cfg.Feed, Logger: logger})
	mux.Handle("GET /api/articles/{id}", GetHandler{Svc: svc})
	mux.HandleFunc("GET /api/categories", CategoriesHandler)

	mux.Handle("POST /api/articles", admin(CreateHandler{Svc: svc, MaxFileSize: cfg.MaxFileSize}))
	mux.Handle("POST /api/articles/upload/files", admin(UploadHandler{Svc: svc, MaxFileSize: cfg.MaxFileSize}))
	mux.Handle("PUT /api/articles/{id}", protect(UpdateHandler{Svc: svc, MaxFileSize: cfg.MaxFileSize}))
	mux.Handle("DELETE /api/articles/{id}", protect(DeleteHandler{Svc: svc}))
}
