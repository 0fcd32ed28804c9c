package admin

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTempPreviewStore(t *testing.T) {
	store, err := NewTempPreviewStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	src := filepath.Join(t.TempDir(), "cover.jpg")
	require.NoError(t, os.WriteFile(src, []byte("jpeg"), 0o600))

	p, err := store.Acquire(src)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Live())

	data, err := os.ReadFile(p.Location())
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	require.NoError(t, p.Release())
	require.NoError(t, p.Release())
	assert.Zero(t, store.Live())
	_, err = os.Stat(p.Location())
	assert.True(t, os.IsNotExist(err))

	_, err = store.Acquire(filepath.Join(t.TempDir(), "missing.jpg"))
	assert.Error(t, err)
	assert.Zero(t, store.Live())
}
