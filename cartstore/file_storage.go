package cartstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStorage persists cart state as JSON files under a directory, one
// file per key.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return data, err
}

func (f *FileStorage) Write(key string, data []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(f.path(key), data, 0o644)
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}
