package storage

import (
	"fmt"
	"os"
	"path/filepath"
)

// DiskBackend persists every document as one regular file under root.
// There is no in-memory cache: each operation round-trips to the
// filesystem, exactly as last written.
type DiskBackend struct {
	root string
}

func NewDiskBackend(root string) *DiskBackend {
	return &DiskBackend{root: root}
}

func (b *DiskBackend) EnsureRoot() error {
	if err := os.MkdirAll(b.root, 0o755); err != nil {
		return fmt.Errorf("creating document root %s: %w", b.root, err)
	}
	return nil
}

func (b *DiskBackend) Exists(name string) (bool, error) {
	_, err := os.Stat(filepath.Join(b.root, name))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (b *DiskBackend) Read(name string) (string, error) {
	bytes, err := os.ReadFile(filepath.Join(b.root, name))
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (b *DiskBackend) Write(name, content string) error {
	return os.WriteFile(filepath.Join(b.root, name), []byte(content), 0o644)
}

// ListRegularEntries returns the names of regular files under root.
// Directories and other non-regular entries are skipped.
func (b *DiskBackend) ListRegularEntries() ([]string, error) {
	entries, err := os.ReadDir(b.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	return names, nil
}
