package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

type Local struct {
	dir string
}

func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %v", err)
	}
	return &Local{dir: dir}, nil
}

func (l *Local) Upload(file io.Reader, key string, _ string) (string, error) {
	path := filepath.Join(l.dir, filepath.Base(key))
	out, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %v", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return path, nil
}

func (l *Local) Delete(key string) error {
	return os.Remove(filepath.Join(l.dir, filepath.Base(key)))
}
