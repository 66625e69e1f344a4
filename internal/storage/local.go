package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

type LocalStore struct {
	dir string
}

// NewLocalStore ensures the upload directory exists before the server
// starts taking requests.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(_ context.Context, filename string, content []byte, _ string) (string, error) {
	dest := filepath.Join(s.dir, filepath.Base(filename))
	if err := os.WriteFile(dest, content, 0o644); err != nil {
		return "", fmt.Errorf("writing upload: %w", err)
	}
	return "/uploads/" + filepath.Base(filename), nil
}
