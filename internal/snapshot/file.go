package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// filePrefix namespaces snapshot files so the state directory can be shared
// with other tools.
const filePrefix = "onboarding_"

// FileStore persists snapshots as JSON files under a state directory,
// one file per session key.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-backed store rooted at dir, creating the
// directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("snapshot directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Load returns the stored snapshot, or nil when none exists.
func (s *FileStore) Load(key string) (*Snapshot, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return Decode(data)
}

// Save stores the snapshot, replacing any previous one. The write goes
// through a temp file and rename so a crash never leaves a half-written
// snapshot behind.
func (s *FileStore) Save(key string, snap *Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path(key)); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Clear deletes the stored snapshot. Clearing an absent key is not an error.
func (s *FileStore) Clear(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, filePrefix+sanitizeKey(key)+".json")
}

// sanitizeKey keeps session keys filesystem-safe.
func sanitizeKey(key string) string {
	var sb strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}
