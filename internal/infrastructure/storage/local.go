package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Ensure LocalArchiveStore implements ArchiveStore
var _ ArchiveStore = (*LocalArchiveStore)(nil)

// LocalArchiveStore writes report documents to a directory on disk. It is the
// default backend for development and single-host deployments.
type LocalArchiveStore struct {
	dir       string
	urlPrefix string
}

// NewLocalArchiveStore creates a LocalArchiveStore rooted at dir. The
// directory is created if it does not exist. When urlPrefix is empty the
// returned URLs use the file scheme.
func NewLocalArchiveStore(dir, urlPrefix string) (*LocalArchiveStore, error) {
	if dir == "" {
		return nil, errors.New("archive directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create archive directory: %w", err)
	}
	return &LocalArchiveStore{dir: dir, urlPrefix: strings.TrimSuffix(urlPrefix, "/")}, nil
}

// Store writes the document under key and returns its URL
func (s *LocalArchiveStore) Store(_ context.Context, key string, data []byte, _ string) (string, error) {
	if key == "" {
		return "", errors.New("archive key is required")
	}
	// Keys may carry a prefix path (e.g. "2025/REP-2025-013.pdf"); reject
	// anything that escapes the archive root.
	cleaned := filepath.Clean(key)
	if strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid archive key: %s", key)
	}

	path := filepath.Join(s.dir, cleaned)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create archive subdirectory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write archive file: %w", err)
	}

	if s.urlPrefix != "" {
		return s.urlPrefix + "/" + filepath.ToSlash(cleaned), nil
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve archive path: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}
