package inspection

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carscope/carscope/pkg/config"
)

func TestLocalStoragePutGet(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir)
	ctx := context.Background()

	data := []byte(`{"revision":1}`)
	key := revisionKey("company1", "rev1")
	require.NoError(t, s.Put(ctx, key, data))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, data, got)

	// Verify file path layout
	assert.FileExists(t, filepath.Join(dir, "company1", "revisions", "rev1.json"))
}

func TestLocalStorageOverwrite(t *testing.T) {
	s := NewLocalStorage(t.TempDir())
	ctx := context.Background()
	key := reportKey("company1", "insp1", 1)

	require.NoError(t, s.Put(ctx, key, []byte(`{"title":"old"}`)))
	require.NoError(t, s.Put(ctx, key, []byte(`{"title":"new"}`)))

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"new"}`, string(got))
}

func TestLocalStorageGetNotFound(t *testing.T) {
	s := NewLocalStorage(t.TempDir())

	_, err := s.Get(context.Background(), revisionKey("company1", "nonexistent"))
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestBlobKeys(t *testing.T) {
	assert.Equal(t, "c1/revisions/r1.json", revisionKey("c1", "r1"))
	assert.Equal(t, "c1/reports/i1-r2.json", reportKey("c1", "i1", 2))
}

func TestNewStorage(t *testing.T) {
	ctx := context.Background()

	s, err := NewStorage(ctx, config.StorageConfig{Backend: "local", LocalPath: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &LocalStorage{}, s)

	for _, cfg := range []config.StorageConfig{
		{Backend: "local"},
		{Backend: "s3"},
		{Backend: "gcs"},
		{Backend: "ftp"},
	} {
		_, err := NewStorage(ctx, cfg)
		assert.Error(t, err, "%+v", cfg)
	}
}
