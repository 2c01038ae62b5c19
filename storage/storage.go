// Package storage persists submitted artwork files. The S3 backend is
// used in production; the local backend keeps files on disk for
// development and tests.
package storage

import (
	"fmt"
	"io"
	"os"
)

type Uploader interface {
	// Upload stores the file under key and returns a URL or path the
	// backend serves it from.
	Upload(file io.Reader, key string, contentType string) (string, error)

	Delete(key string) error
}

// NewUploader picks the backend from STORAGE_BACKEND ("s3" or "local",
// default local).
func NewUploader() (Uploader, error) {
	switch backend := os.Getenv("STORAGE_BACKEND"); backend {
	case "s3":
		return NewS3FromEnv()
	case "", "local":
		dir := os.Getenv("UPLOAD_DIR")
		if dir == "" {
			dir = "uploads"
		}
		return NewLocal(dir)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", backend)
	}
}
