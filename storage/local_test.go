package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalUploadAndDelete(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	path, err := l.Upload(strings.NewReader("artwork-bytes"), "KK25-ART-000001-abc.png", "image/png")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "artwork-bytes", string(data))

	require.NoError(t, l.Delete("KK25-ART-000001-abc.png"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLocalUploadStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	l, err := NewLocal(dir)
	require.NoError(t, err)

	path, err := l.Upload(strings.NewReader("x"), "../escape.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.png"), path, "keys must not escape the upload dir")
}

func TestNewUploaderDefaultsToLocal(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("UPLOAD_DIR", t.TempDir())

	u, err := NewUploader()
	require.NoError(t, err)
	_, ok := u.(*Local)
	assert.True(t, ok)

	t.Setenv("STORAGE_BACKEND", "ftp")
	_, err = NewUploader()
	assert.Error(t, err)
}
