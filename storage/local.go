package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Local stores blobs under a root directory on disk. The HTTP layer
// serves the same directory at /uploads/*.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

// Root returns the directory blobs are written under
func (l *Local) Root() string {
	return l.root
}

func (l *Local) Put(ctx context.Context, kind, originalName string, r io.Reader) (string, error) {
	name := blobName(originalName)
	dir := filepath.Join(l.root, kind)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("creating upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("writing upload file: %w", err)
	}

	return "/uploads/" + kind + "/" + name, nil
}

func (l *Local) Remove(ctx context.Context, relativePath string) error {
	key := objectKey(relativePath)
	if key == "" {
		return nil
	}
	err := os.Remove(filepath.Join(l.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
