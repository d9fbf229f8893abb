package files

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadBytes(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "ab", "cd"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "ab", "cd", "pic.png"), []byte("png-bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	store := NewDirStore(root)
	data, err := store.ReadBytes("ab/cd/pic.png")
	if err != nil {
		t.Fatalf("ReadBytes: %v", err)
	}
	if string(data) != "png-bytes" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestReadBytesMissingFile(t *testing.T) {
	store := NewDirStore(t.TempDir())
	if _, err := store.ReadBytes("nope.png"); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestReadBytesRejectsTraversal(t *testing.T) {
	store := NewDirStore(t.TempDir())
	_, err := store.ReadBytes("../outside.png")
	if !errors.Is(err, ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}

func TestReadBytesRejectsEmptyPath(t *testing.T) {
	store := NewDirStore(t.TempDir())
	if _, err := store.ReadBytes("  "); err == nil {
		t.Fatal("expected an error for an empty path")
	}
}
