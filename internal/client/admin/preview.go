package admin

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Preview is a local rendition of a selected file. It must be released once
// the selection is replaced or the draft goes away.
type Preview interface {
	Location() string
	Release() error
}

// PreviewStore hands out previews.
type PreviewStore interface {
	Acquire(path string) (Preview, error)
}

// TempPreviewStore copies selected files into a private temp directory.
type TempPreviewStore struct {
	dir string

	mu   sync.Mutex
	live int
}

// NewTempPreviewStore creates the backing directory under os.TempDir.
func NewTempPreviewStore() (*TempPreviewStore, error) {
	dir, err := os.MkdirTemp("", "newsctl-preview-*")
	if err != nil {
		return nil, fmt.Errorf("create preview dir: %w", err)
	}
	return &TempPreviewStore{dir: dir}, nil
}

// Acquire copies path into the store.
func (s *TempPreviewStore) Acquire(path string) (Preview, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open selection: %w", err)
	}
	defer func() { _ = src.Close() }()

	dst, err := os.CreateTemp(s.dir, "*-"+filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("create preview: %w", err)
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(dst.Name())
		return nil, fmt.Errorf("copy preview: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(dst.Name())
		return nil, err
	}

	s.mu.Lock()
	s.live++
	s.mu.Unlock()
	return &tempPreview{store: s, path: dst.Name()}, nil
}

// Live returns the number of previews not yet released.
func (s *TempPreviewStore) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Close removes the directory and every preview left in it.
func (s *TempPreviewStore) Close() error {
	return os.RemoveAll(s.dir)
}

type tempPreview struct {
	store *TempPreviewStore
	path  string
	once  sync.Once
}

func (p *tempPreview) Location() string { return p.path }

// Release is idempotent.
func (p *tempPreview) Release() error {
	var err error
	p.once.Do(func() {
		err = os.Remove(p.path)
		if os.IsNotExist(err) {
			err = nil
		}
		p.store.mu.Lock()
		p.store.live--
		p.store.mu.Unlock()
	})
	return err
}
