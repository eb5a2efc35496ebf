package inspection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ErrBlobNotFound is returned when a stored blob does not exist.
var ErrBlobNotFound = errors.New("blob not found")

// Blob kinds, used as the middle segment of storage keys.
const (
	kindRevisions = "revisions"
	kindReports   = "reports"
)

// BlobStore holds revision snapshots and rendered report summaries.
// The service owns the key layout, <companyID>/<kind>/<id>.json, so every
// backend stores the same keys.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte) error
	Get(ctx context.Context, key string) ([]byte, error)
}

func blobKey(companyID, kind, id string) string {
	return companyID + "/" + kind + "/" + id + ".json"
}

// revisionKey is where a finalized snapshot lives. It is also the storage_ref
// recorded on the revision row.
func revisionKey(companyID, revisionID string) string {
	return blobKey(companyID, kindRevisions, revisionID)
}

// reportKey is where the summary rendered for revision n is cached.
func reportKey(companyID, inspectionID string, n int) string {
	return blobKey(companyID, kindReports, inspectionID+"-r"+strconv.Itoa(n))
}

// LocalStorage keeps blobs as files under BaseDir. Used in development and tests.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(key string) string {
	return filepath.Join(s.BaseDir, filepath.FromSlash(key))
}

// Put writes data to key, creating parent directories as needed.
func (s *LocalStorage) Put(ctx context.Context, key string, data []byte) error {
	path := s.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Get reads the blob at key.
func (s *LocalStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", key, ErrBlobNotFound)
	}
	return data, err
}
