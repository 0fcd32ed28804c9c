package article_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"news-portal/internal/domain/entity"
	"news-portal/internal/repository"
)

/* ───────── スタブ実装 ───────── */

// インメモリ ArticleRepository。保存・返却時は常にコピーを扱う
type stubRepo struct {
	mu     sync.Mutex
	data   map[entity.ArticleID]*entity.Article
	nextID int
	err    error
	// findErr 強制的に Find/FindByID でエラーを返したいとき用
	findErr error
}

func newStubRepo(arts ...*entity.Article) *stubRepo {
	r := &stubRepo{data: map[entity.ArticleID]*entity.Article{}, nextID: 1}
	for _, a := range arts {
		r.data[a.ID] = a.Clone()
	}
	return r
}

func (r *stubRepo) Find(_ context.Context, q repository.Query) ([]*entity.Article, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, 0, r.findErr
	}
	var all []*entity.Article
	for _, a := range r.data {
		all = append(all, a.Clone())
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
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

func (r *stubRepo) FindByID(_ context.Context, id entity.ArticleID) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	return r.data[id].Clone(), nil
}

func (r *stubRepo) Create(_ context.Context, a *entity.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	if err := entity.ValidateArticle(a); err != nil {
		return err
	}
	a.ID = entity.ArticleID(fmt.Sprintf("art-%d", r.nextID))
	r.nextID++
	a.CreatedAt = time.Now()
	a.UpdatedAt = a.CreatedAt
	r.data[a.ID] = a.Clone()
	return nil
}

func (r *stubRepo) UpdateByID(_ context.Context, id entity.ArticleID, a *entity.Article) (*entity.Article, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	if _, ok := r.data[id]; !ok {
		return nil, nil
	}
	if err := entity.ValidateArticle(a); err != nil {
		return nil, err
	}
	stored := a.Clone()
	stored.ID = id
	stored.UpdatedAt = time.Now()
	r.data[id] = stored
	return stored.Clone(), nil
}

func (r *stubRepo) DeleteByID(_ context.Context, id entity.ArticleID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	if _, ok := r.data[id]; !ok {
		return false, nil
	}
	delete(r.data, id)
	return true, nil
}

func (r *stubRepo) get(id entity.ArticleID) *entity.Article {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data[id].Clone()
}

// 呼び出し順を記録する MediaStore
type stubMedia struct {
	mu      sync.Mutex
	calls   []string // "upload:<folder>" / "delete:<publicID>"
	deleted []string
	seq     int

	uploadErr map[string]error // folder -> error
	deleteErr map[string]error // publicID -> error

	// beforeUpload はアップロード前に呼ばれる（レース再現用）
	beforeUpload func()
}

func newStubMedia() *stubMedia {
	return &stubMedia{uploadErr: map[string]error{}, deleteErr: map[string]error{}}
}

func (m *stubMedia) Upload(_ context.Context, f entity.MediaFile, folder string) (entity.MediaAsset, error) {
	if m.beforeUpload != nil {
		m.beforeUpload()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "upload:"+folder)
	if err := m.uploadErr[folder]; err != nil {
		return entity.MediaAsset{}, &entity.UploadError{Op: "upload", Target: folder, Err: err}
	}
	m.seq++
	name := strings.TrimSuffix(f.Filename, filepathExt(f.Filename))
	id := fmt.Sprintf("%s/%s-%d", folder, name, m.seq)
	return entity.MediaAsset{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + id + filepathExt(f.Filename),
		PublicID: id,
	}, nil
}

func (m *stubMedia) Delete(_ context.Context, publicID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, "delete:"+publicID)
	if err := m.deleteErr[publicID]; err != nil {
		return &entity.UploadError{Op: "delete", Target: publicID, Err: err}
	}
	m.deleted = append(m.deleted, publicID)
	return nil
}

func (m *stubMedia) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *stubMedia) count(prefix string) int {
	n := 0
	for _, c := range m.snapshot() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func filepathExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i:]
	}
	return ""
}

// テスト用の識別子抽出（本番は media.ExtractPublicID）
func extractID(url string) (string, bool) {
	const marker = "/upload/v1/"
	i := strings.Index(url, marker)
	if i < 0 {
		return "", false
	}
	rest := url[i+len(marker):]
	return strings.TrimSuffix(rest, filepathExt(rest)), true
}

var errStorageDown = errors.New("storage down")

func file(name, contentType string) entity.MediaFile {
	return entity.MediaFile{Filename: name, ContentType: contentType, Size: 4, Body: strings.NewReader("data")}
}

func cdnURL(publicID, ext string) string {
	return "https://res.cloudinary.com/demo/image/upload/v1/" + publicID + ext
}

var (
	owner = entity.Principal{ID: "user-1", Name: "Owner", Role: entity.RoleUser}
	other = entity.Principal{ID: "user-2", Name: "Other", Role: entity.RoleUser}
	admin = entity.Principal{ID: "admin-1", Name: "Admin", Role: entity.RoleAdmin}
)

func existingArticle() *entity.Article {
	return &entity.Article{
		ID:        "art-100",
		Title:     "Old title",
		Summary:   "Old summary",
		Content:   "<p>Old content</p>",
		Category:  "Politics",
		Author:    "Reporter",
		ImageURL:  cdnURL("news-portal/images/old", ".jpg"),
		VideoURL:  cdnURL("news-portal/videos/oldclip", ".mp4"),
		CreatedBy: owner.ID,
	}
}
