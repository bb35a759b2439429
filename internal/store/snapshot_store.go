package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"keyshare/internal/domain"
)

const snapshotDir = "snapshots"

// ErrInvalidName is returned for snapshot names that are empty or contain a
// path separator.
var ErrInvalidName = errors.New("invalid snapshot name")

// SnapshotFileStore keeps named key-query snapshots on disk.
type SnapshotFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewSnapshotFileStore returns a SnapshotFileStore rooted at home.
func NewSnapshotFileStore(home string) *SnapshotFileStore {
	return &SnapshotFileStore{dir: filepath.Join(home, snapshotDir)}
}

// SaveSnapshot writes snapshot under name, replacing any previous one.
func (s *SnapshotFileStore) SaveSnapshot(_ context.Context, name string, snapshot domain.KeyQueryResponse) error {
	path, err := s.path(name)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return WriteSnapshot(path, snapshot)
}

// LoadSnapshot returns the snapshot saved under name and whether it was present.
func (s *SnapshotFileStore) LoadSnapshot(_ context.Context, name string) (domain.KeyQueryResponse, bool, error) {
	path, err := s.path(name)
	if err != nil {
		return domain.KeyQueryResponse{}, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var snap domain.KeyQueryResponse
	found, err := readJSON(path, &snap)
	if err != nil {
		return domain.KeyQueryResponse{}, false, fmt.Errorf("load snapshot %q: %w", name, err)
	}
	return snap, found, nil
}

func (s *SnapshotFileStore) path(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name+".json"), nil
}

// ValidateName rejects snapshot names that could not be used as a file name.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

// ReadSnapshot decodes the snapshot file at path. Unlike LoadSnapshot a
// missing file is an error.
func ReadSnapshot(path string) (domain.KeyQueryResponse, error) {
	var snap domain.KeyQueryResponse
	found, err := readJSON(path, &snap)
	if err != nil {
		return domain.KeyQueryResponse{}, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	if !found {
		return domain.KeyQueryResponse{}, fmt.Errorf("read snapshot %s: %w", path, os.ErrNotExist)
	}
	return snap, nil
}

// WriteSnapshot atomically writes snapshot to path.
func WriteSnapshot(path string, snapshot domain.KeyQueryResponse) error {
	return writeJSON(path, snapshot, 0o600)
}

// Compile-time assertion that SnapshotFileStore implements domain.SnapshotStore.
var _ domain.SnapshotStore = (*SnapshotFileStore)(nil)
