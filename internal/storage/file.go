package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore reads trip data objects from a local directory tree instead
// of S3; the bucket maps to a subdirectory. Useful for local runs.
type FileStore struct {
	root string
}

func NewFileStore(root string) *FileStore {
	return &FileStore{root: root}
}

func (s *FileStore) GetJSON(_ context.Context, bucket, key string, v any) error {
	path := filepath.Join(s.root, bucket, key)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("storage: read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("storage: decode %s: %w", path, err)
	}
	return nil
}
