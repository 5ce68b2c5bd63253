package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// DiskStore implements ObjectStore on the local filesystem. It backs local
// development and tests where no MinIO instance is available; PresignGet
// returns a plain URL under the configured base URL instead of a signed one.
type DiskStore struct {
	basePath string
	baseURL  string
}

// NewDiskStore creates the base directory if missing.
func NewDiskStore(basePath, baseURL string) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &DiskStore{
		basePath: basePath,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}, nil
}

// Put writes the object under the base directory.
func (d *DiskStore) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	target := filepath.Join(d.basePath, safeKey(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// PresignGet returns the object's URL under the base URL.
func (d *DiskStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return d.baseURL + "/" + safeKey(key), nil
}

// Delete removes the object; missing objects are not an error.
func (d *DiskStore) Delete(_ context.Context, key string) error {
	err := os.Remove(filepath.Join(d.basePath, safeKey(key)))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete file: %w", err)
	}
	return nil
}

// safeKey keeps keys inside the base directory. Path traversal segments are
// stripped rather than rejected.
func safeKey(key string) string {
	key = strings.TrimSpace(key)
	parts := strings.Split(key, "/")
	clean := parts[:0]
	for _, p := range parts {
		p = filepath.Base(p)
		if p == "" || p == "." || p == ".." {
			continue
		}
		clean = append(clean, p)
	}
	if len(clean) == 0 {
		return "object"
	}
	return strings.Join(clean, "/")
}
