package article

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/observability/metrics"
	"news-portal/internal/observability/tracing"
	"news-portal/internal/repository"
	"news-portal/internal/utils/text"
)

// MediaStore uploads and deletes attachment assets.
// Errors are expected to be *entity.UploadError.
type MediaStore interface {
	Upload(ctx context.Context, file entity.MediaFile, folder string) (entity.MediaAsset, error)
	Delete(ctx context.Context, publicID string) error
}

// IdentifierFunc recovers the media store id from a stored URL.
// ok is false for URLs the store did not produce.
type IdentifierFunc func(url string) (publicID string, ok bool)

// pendingUpload stands in for a media URL while the file is validated but not yet stored.
const pendingUpload = "pending-upload"

// CreateInput represents the input parameters for creating a new article.
// Files is keyed by slot; the image is required.
type CreateInput struct {
	Title    string
	Summary  string
	Content  string
	Category string
	Author   string
	Files    map[entity.MediaSlot]entity.MediaFile
}

// UpdateInput represents the input parameters for updating an existing article.
// Fields with nil values will not be updated. Slots without a file keep their asset.
type UpdateInput struct {
	ID       entity.ArticleID
	Title    *string
	Summary  *string
	Content  *string
	Category *string
	Author   *string
	Files    map[entity.MediaSlot]entity.MediaFile
}

// ListInput selects a page of articles.
type ListInput struct {
	Filter []repository.Condition
	Sort   []repository.SortField
	Page   pagination.Params
}

// PaginatedResult represents the result of a paginated query.
type PaginatedResult struct {
	Data       []*entity.Article
	Pagination pagination.Metadata
}

// Service provides article management use cases.
// Same-id updates are not serialized; the last write wins.
type Service struct {
	repo      repository.ArticleRepository
	media     MediaStore
	extractID IdentifierFunc
}

// NewService wires the service.
func NewService(repo repository.ArticleRepository, media MediaStore, extractID IdentifierFunc) *Service {
	return &Service{repo: repo, media: media, extractID: extractID}
}

// List returns one page of articles matching the filter.
func (s *Service) List(ctx context.Context, in ListInput) (_ *PaginatedResult, err error) {
	ctx, finish := s.observe(ctx, "list")
	defer func() { finish(err) }()

	q := repository.Query{
		Filter: in.Filter,
		Sort:   in.Sort,
		Skip:   in.Page.Offset(),
		Limit:  in.Page.Limit,
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	items, total, err := s.repo.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	if len(in.Filter) == 0 {
		metrics.UpdateArticlesTotal(total)
	}

	return &PaginatedResult{
		Data:       items,
		Pagination: pagination.BuildMetadata(in.Page, total),
	}, nil
}

// Get retrieves a single article by its ID.
// Returns ErrArticleNotFound if the article does not exist.
func (s *Service) Get(ctx context.Context, id entity.ArticleID) (_ *entity.Article, err error) {
	ctx, finish := s.observe(ctx, "get", attribute.String("article.id", id.String()))
	defer func() { finish(err) }()

	return s.load(ctx, id)
}

// Create validates the input, uploads every file, then stores the article
// owned by p. No upload happens when validation fails. Assets uploaded
// before a sibling upload failed are not removed.
func (s *Service) Create(ctx context.Context, p entity.Principal, in CreateInput) (_ *entity.Article, err error) {
	ctx, finish := s.observe(ctx, "create")
	defer func() { finish(err) }()

	art := &entity.Article{
		Title:     in.Title,
		Summary:   in.Summary,
		Content:   cleanContent(in.Content),
		Category:  in.Category,
		Author:    in.Author,
		CreatedBy: p.ID,
	}
	if err := validateWithFiles(art, in.Files); err != nil {
		return nil, err
	}

	assets, err := s.uploadAll(ctx, in.Files)
	if err != nil {
		return nil, err
	}
	for _, slot := range entity.MediaSlots {
		art.SetMediaURL(slot, assets[slot].URL)
	}

	if err := s.repo.Create(ctx, art); err != nil {
		return nil, fmt.Errorf("create article: %w", err)
	}

	slog.InfoContext(ctx, "article created",
		slog.String("article_id", art.ID.String()),
		slog.String("created_by", p.ID.String()),
		slog.Int("media", len(assets)))
	return art, nil
}

// Update changes the submitted fields of an article owned by p (or any
// article when p is an admin). For each slot with a new file the new asset
// is uploaded first and the superseded one deleted only after that
// succeeded. URLs the media store does not recognise are left alone.
func (s *Service) Update(ctx context.Context, p entity.Principal, in UpdateInput) (_ *entity.Article, err error) {
	ctx, finish := s.observe(ctx, "update", attribute.String("article.id", in.ID.String()))
	defer func() { finish(err) }()

	current, err := s.load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if !entity.CanModify(p, current) {
		return nil, entity.ErrNotOwner
	}

	merged := current.Clone()
	applyFields(merged, in)
	if err := validateWithFiles(merged, in.Files); err != nil {
		return nil, err
	}
	// validateWithFiles may have put placeholders in slots receiving a file
	for slot := range in.Files {
		merged.SetMediaURL(slot, current.MediaURL(slot))
	}

	if err := s.reconcileMedia(ctx, merged, in.Files); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateByID(ctx, in.ID, merged)
	if err != nil {
		return nil, fmt.Errorf("update article: %w", err)
	}
	if updated == nil {
		return nil, ErrArticleNotFound
	}

	slog.InfoContext(ctx, "article updated",
		slog.String("article_id", in.ID.String()),
		slog.String("updated_by", p.ID.String()),
		slog.Int("replaced_media", len(in.Files)))
	return updated, nil
}

// Delete removes every attached asset and then the article. Any failed
// asset deletion aborts before the record is removed.
func (s *Service) Delete(ctx context.Context, p entity.Principal, id entity.ArticleID) (err error) {
	ctx, finish := s.observe(ctx, "delete", attribute.String("article.id", id.String()))
	defer func() { finish(err) }()

	art, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if !entity.CanModify(p, art) {
		return entity.ErrNotOwner
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, slot := range entity.MediaSlots {
		url := art.MediaURL(slot)
		if url == "" {
			continue
		}
		publicID, ok := s.extractID(url)
		if !ok {
			slog.WarnContext(ctx, "media url not recognised, asset left in place",
				slog.String("article_id", id.String()),
				slog.String("slot", string(slot)))
			continue
		}
		g.Go(func() error {
			return asUploadError("delete", publicID, s.media.Delete(gctx, publicID))
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete article: %w", err)
	}
	if !removed {
		return ErrArticleNotFound
	}

	slog.InfoContext(ctx, "article deleted",
		slog.String("article_id", id.String()),
		slog.String("deleted_by", p.ID.String()))
	return nil
}

// UploadFiles stores files without touching any article and returns the
// resulting assets by slot.
func (s *Service) UploadFiles(ctx context.Context, files map[entity.MediaSlot]entity.MediaFile) (_ map[entity.MediaSlot]entity.MediaAsset, err error) {
	ctx, finish := s.observe(ctx, "upload")
	defer func() { finish(err) }()

	if len(files) == 0 {
		return nil, ErrNoFiles
	}
	return s.uploadAll(ctx, files)
}

func (s *Service) load(ctx context.Context, id entity.ArticleID) (*entity.Article, error) {
	art, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get article: %w", err)
	}
	if art == nil {
		return nil, ErrArticleNotFound
	}
	return art, nil
}

// uploadAll uploads files concurrently. Either every upload succeeds or an
// *entity.UploadError is returned.
func (s *Service) uploadAll(ctx context.Context, files map[entity.MediaSlot]entity.MediaFile) (map[entity.MediaSlot]entity.MediaAsset, error) {
	var mu sync.Mutex
	assets := make(map[entity.MediaSlot]entity.MediaAsset, len(files))

	g, gctx := errgroup.WithContext(ctx)
	for slot, file := range files {
		g.Go(func() error {
			asset, err := s.media.Upload(gctx, file, slot.Folder())
			if err != nil {
				return asUploadError("upload", slot.Folder(), err)
			}
			mu.Lock()
			assets[slot] = asset
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return assets, nil
}

// reconcileMedia replaces the asset of every slot in files. All uploads
// finish before any superseded asset is deleted, so a failed upload leaves
// the stored media untouched.
func (s *Service) reconcileMedia(ctx context.Context, art *entity.Article, files map[entity.MediaSlot]entity.MediaFile) error {
	assets, err := s.uploadAll(ctx, files)
	if err != nil {
		return err
	}

	// 旧アセットの識別子は URL を差し替える前に控える
	superseded := map[entity.MediaSlot]string{}
	for slot, asset := range assets {
		if oldURL := art.MediaURL(slot); oldURL != "" {
			if publicID, ok := s.extractID(oldURL); ok {
				superseded[slot] = publicID
			}
		}
		art.SetMediaURL(slot, asset.URL)
	}

	g, gctx := errgroup.WithContext(ctx)
	for slot, publicID := range superseded {
		g.Go(func() error {
			if err := s.media.Delete(gctx, publicID); err != nil {
				return asUploadError("delete", publicID, err)
			}
			metrics.RecordMediaReplaced(slot)
			return nil
		})
	}
	return g.Wait()
}

// observe opens a span for op and returns a func recording its outcome.
func (s *Service) observe(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := tracing.Start(ctx, "article."+op, attrs...)
	return ctx, func(err error) {
		tracing.End(span, err)
		metrics.RecordArticleOperation(op, err, time.Since(start))
	}
}

func applyFields(art *entity.Article, in UpdateInput) {
	if in.Title != nil {
		art.Title = *in.Title
	}
	if in.Summary != nil {
		art.Summary = *in.Summary
	}
	if in.Content != nil {
		art.Content = cleanContent(*in.Content)
	}
	if in.Category != nil {
		art.Category = *in.Category
	}
	if in.Author != nil {
		art.Author = *in.Author
	}
}

// validateWithFiles validates art as it will look once files are stored.
// It leaves placeholder URLs in the slots that receive a file.
func validateWithFiles(art *entity.Article, files map[entity.MediaSlot]entity.MediaFile) error {
	for slot := range files {
		art.SetMediaURL(slot, pendingUpload)
	}
	if err := entity.ValidateArticle(art); err != nil {
		var verrs entity.ValidationErrors
		if errors.As(err, &verrs) {
			for _, v := range verrs {
				if v.Field == entity.SlotImage.FieldName() {
					v.Message = "please upload an image"
				}
			}
		}
		return err
	}
	return nil
}

// cleanContent sanitizes the body and empties it when no visible text remains.
func cleanContent(content string) string {
	clean := text.SanitizeHTML(content)
	if text.PlainText(clean) == "" {
		return ""
	}
	return clean
}

func asUploadError(op, target string, err error) error {
	if err == nil {
		return nil
	}
	var ue *entity.UploadError
	if errors.As(err, &ue) {
		return err
	}
	return &entity.UploadError{Op: op, Target: target, Err: err}
}
