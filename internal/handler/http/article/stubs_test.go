package article

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"news-portal/internal/common/pagination"
	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
	artUC "news-portal/internal/usecase/article"
)

/* ───────── スタブ実装 ───────── */

type memRepo struct {
	mu     sync.Mutex
	data   map[entity.ArticleID]*entity.Article
	nextID int
}

func newMemRepo() *memRepo {
	return &memRepo{data: map[entity.ArticleID]*entity.Article{}, nextID: 1}
}

func (r *memRepo) Find(_ context.Context, q repository.Query) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var all []*entity.Article
	for _, a := range r.data {
		all = append(all, a.Clone())
	}
	// 新しい順
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	total := int64(len(all))
	if q.Skip >= len(all) {
		return nil, total, nil
	}
	all = all[q.Skip:]
	if q.Limit > 0 && len(all) > q.Limit {
		all = all[:q.Limit]
	}
	return all, total, nil
}

func (r *memRepo) FindByID(_ context.Context, id entity.ArticleID) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[id].Clone(), nil
}

func (r *memRepo) Create(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := entity.ValidateArticle(a); err != nil {
		return err
	}
	a.ID = entity.ArticleID(fmt.Sprintf("art-%03d", r.nextID))
	r.nextID++
	a.CreatedAt = time.Date(2025, 1, r.nextID, 0, 0, 0, 0, time.UTC)
	a.UpdatedAt = a.CreatedAt
	r.data[a.ID] = a.Clone()
	return nil
}

func (r *memRepo) UpdateByID(_ context.Context, id entity.ArticleID, a *entity.Article) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return nil, nil
	}
	if err := entity.ValidateArticle(a); err != nil {
		return nil, err
	}
	stored := a.Clone()
	stored.ID = id
	r.data[id] = stored
	return stored.Clone(), nil
}

func (r *memRepo) DeleteByID(_ context.Context, id entity.ArticleID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[id]; !ok {
		return false, nil
	}
	delete(r.data, id)
	return true, nil
}

func (r *memRepo) get(id entity.ArticleID) *entity.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[id].Clone()
}

const mediaBase = "https://media.test/"

type memMedia struct {
	mu       sync.Mutex
	uploaded []string
	deleted  []string
}

func (m *memMedia) Upload(_ context.Context, f entity.MediaFile, folder string) (entity.MediaAsset, error) {
	if _, err := io.Copy(io.Discard, f.Body); err != nil {
		return entity.MediaAsset{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := fmt.Sprintf("%s/%d-%s", folder, len(m.uploaded), f.Filename)
	m.uploaded = append(m.uploaded, id)
	return entity.MediaAsset{URL: mediaBase + id, PublicID: id}, nil
}

func (m *memMedia) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, publicID)
	return nil
}

func extractID(url string) (string, bool) {
	if !strings.HasPrefix(url, mediaBase) {
		return "", false
	}
	return strings.TrimPrefix(url, mediaBase), true
}

// トークン文字列をそのまま Principal に対応させる
type stubAuthenticator map[string]entity.Principal

func (s stubAuthenticator) Authenticate(_ context.Context, credential string) (entity.Principal, error) {
	p, ok := s[credential]
	if !ok {
		return entity.Principal{}, entity.ErrNotAuthenticated
	}
	return p, nil
}

var (
	adminP = entity.Principal{ID: "admin-1", Name: "Admin", Role: entity.RoleAdmin}
	userP  = entity.Principal{ID: "user-1", Name: "User", Role: entity.RoleUser}
	otherP = entity.Principal{ID: "user-2", Name: "Other", Role: entity.RoleUser}
)

type fixture struct {
	mux   *http.ServeMux
	repo  *memRepo
	media *memMedia
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{repo: newMemRepo(), media: &memMedia{}}
	svc := artUC.NewService(f.repo, f.media, extractID)
	f.mux = http.NewServeMux()
	Register(f.mux, svc, stubAuthenticator{"admin": adminP, "user": userP, "other": otherP}, Config{
		Pagination:  pagination.DefaultConfig(),
		MaxFileSize: 1 << 20,
		CookieName:  "token",
		Feed:        FeedConfig{Title: "News Portal", Description: "latest", BaseURL: "https://news.test"},
	}, discardLogger())
	return f
}

// seed stores an article owned by owner directly in the repository.
func (f *fixture) seed(t *testing.T, title string, owner entity.UserID) *entity.Article {
	t.Helper()
	a := &entity.Article{
		Title:     title,
		Summary:   "summary of " + title,
		Content:   "<p>body</p>",
		Category:  "Sports",
		Author:    "Jane",
		ImageURL:  mediaBase + "news-portal/images/seed-" + title + ".jpg",
		CreatedBy: owner,
	}
	require.NoError(t, f.repo.Create(context.Background(), a))
	return a
}

type filePart struct {
	field, filename, contentType, body string
}

func multipartBody(t *testing.T, fields map[string]string, files ...filePart) (io.Reader, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, fp := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fp.field, fp.filename))
		h.Set("Content-Type", fp.contentType)
		w, err := mw.CreatePart(h)
		require.NoError(t, err)
		_, err = w.Write([]byte(fp.body))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func (f *fixture) do(method, target, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m), rec.Body.String())
	return m
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
