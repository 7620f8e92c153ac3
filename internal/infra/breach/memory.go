package breach

import (
	"context"
	"io"
	"sync"
)

// MemoryLookup keeps leaked-password digests in process memory.
type MemoryLookup struct {
	mu      sync.RWMutex
	digests map[string]struct{}
}

// NewMemoryLookup returns a lookup seeded with the given passwords.
func NewMemoryLookup(seed ...string) *MemoryLookup {
	m := &MemoryLookup{digests: make(map[string]struct{}, len(seed))}
	for _, p := range seed {
		m.digests[Digest(p)] = struct{}{}
	}
	return m
}

func (m *MemoryLookup) Contains(_ context.Context, password string) (bool, error) {
	d := Digest(password)
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.digests[d]
	return ok, nil
}

// Load adds every entry of a corpus.
func (m *MemoryLookup) Load(r io.Reader) (int, error) {
	return ReadCorpus(r, func(digest string) error {
		m.mu.Lock()
		m.digests[digest] = struct{}{}
		m.mu.Unlock()
		return nil
	})
}

func (m *MemoryLookup) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.digests)
}
