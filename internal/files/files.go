// Package files reads attachment bytes from the host application's file
// storage on behalf of the message composer.
package files

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store exposes read access to stored attachment content. Paths are relative
// to a known attachment root.
type Store interface {
	ReadBytes(relPath string) ([]byte, error)
}

// ErrOutsideRoot reports a path that escapes the attachment root.
var ErrOutsideRoot = errors.New("path escapes attachment root")

// DirStore serves attachment bytes from a directory tree.
type DirStore struct {
	root string
}

// NewDirStore returns a Store rooted at dir.
func NewDirStore(dir string) *DirStore {
	return &DirStore{root: filepath.Clean(dir)}
}

// ReadBytes loads the file at relPath under the attachment root.
func (s *DirStore) ReadBytes(relPath string) ([]byte, error) {
	relPath = strings.TrimSpace(relPath)
	if relPath == "" {
		return nil, errors.New("empty attachment path")
	}
	full := filepath.Join(s.root, relPath)
	if !strings.HasPrefix(full, s.root+string(os.PathSeparator)) && full != s.root {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, relPath)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("read attachment %s: %w", relPath, err)
	}
	return data, nil
}
