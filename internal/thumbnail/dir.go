package thumbnail

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirStore keeps thumbnails in a local directory
type DirStore struct {
	dir string
}

// NewDirStore creates a store rooted at dir. The directory is created on first save.
func NewDirStore(dir string) *DirStore {
	return &DirStore{dir: dir}
}

func (s *DirStore) Find(_ context.Context, hash string) (string, bool, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, hash+".*"))
	if err != nil {
		return "", false, err
	}
	if len(matches) == 0 {
		return "", false, nil
	}
	return filepath.ToSlash(matches[0]), true, nil
}

func (s *DirStore) Save(_ context.Context, name, _ string, data []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgCreateDir, err)
	}

	target := filepath.Join(s.dir, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", ErrMsgWriteFile, err)
	}
	return filepath.ToSlash(target), nil
}
