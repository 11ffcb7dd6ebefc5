package snapshot

import "sync"

// Store persists wizard snapshots under a session key. Implementations stand
// in for the dashboard's local persistence; the controller depends only on
// this interface, never on a concrete backend.
type Store interface {
	// Load returns the stored snapshot, or nil when none exists.
	Load(key string) (*Snapshot, error)
	// Save stores the snapshot, replacing any previous one.
	Save(key string, snap *Snapshot) error
	// Clear deletes the stored snapshot. Clearing an absent key is not an error.
	Clear(key string) error
}

// MemoryStore is an in-memory Store used in tests and for ephemeral sessions.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: map[string][]byte{}}
}

// Load returns the stored snapshot, or nil when none exists.
func (s *MemoryStore) Load(key string) (*Snapshot, error) {
	s.mu.RLock()
	data, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	return Decode(data)
}

// Save stores the snapshot, replacing any previous one.
func (s *MemoryStore) Save(key string, snap *Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.items[key] = data
	s.mu.Unlock()
	return nil
}

// Clear deletes the stored snapshot.
func (s *MemoryStore) Clear(key string) error {
	s.mu.Lock()
	delete(s.items, key)
	s.mu.Unlock()
	return nil
}
