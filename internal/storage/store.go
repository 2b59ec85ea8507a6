package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrSaveNotFound is returned by Load when the slot holds no save.
var ErrSaveNotFound = errors.New("storage: save not found")

// Store keeps save blobs by slot name.
type Store interface {
	// Save writes blob to slot, replacing any previous save.
	Save(ctx context.Context, slot string, blob []byte) error
	// Load returns the blob in slot or ErrSaveNotFound.
	Load(ctx context.Context, slot string) ([]byte, error)
	// Delete removes slot; deleting an empty slot is not an error.
	Delete(ctx context.Context, slot string) error
	// Close releases the store's resources.
	Close() error
}

// FileStore keeps each slot as a file in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it when missing.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: creating save dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(slot string) (string, error) {
	if slot == "" || slot != filepath.Base(slot) || slot == "." || slot == ".." {
		return "", fmt.Errorf("storage: invalid slot name %q", slot)
	}
	return filepath.Join(s.dir, slot), nil
}

// Save writes blob through a temporary file renamed over the slot, so a
// crash never leaves a half-written save.
func (s *FileStore) Save(_ context.Context, slot string, blob []byte) error {
	p, err := s.path(slot)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(s.dir, slot+".*.tmp")
	if err != nil {
		return fmt.Errorf("storage: creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename
	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("storage: writing %q: %w", slot, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("storage: writing %q: %w", slot, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		return fmt.Errorf("storage: replacing %q: %w", slot, err)
	}
	return nil
}

// Load reads slot.
func (s *FileStore) Load(_ context.Context, slot string) ([]byte, error) {
	p, err := s.path(slot)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSaveNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("storage: reading %q: %w", slot, err)
	}
	return data, nil
}

// Delete removes slot.
func (s *FileStore) Delete(_ context.Context, slot string) error {
	p, err := s.path(slot)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: deleting %q: %w", slot, err)
	}
	return nil
}

// Close is a no-op.
func (s *FileStore) Close() error { return nil }
