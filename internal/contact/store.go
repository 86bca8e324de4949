package contact

import (
	"context"
	"sync"
	"time"
)

// Store persists contact messages.
type Store interface {
	Insert(ctx context.Context, m Message) (Record, error)
}

// MemoryStore keeps messages in process memory.
type MemoryStore struct {
	mu      sync.Mutex
	records []Record
	now     func() time.Time
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

// Insert appends m and returns the stored record.
func (s *MemoryStore) Insert(ctx context.Context, m Message) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r := Record{
		ID:        int64(len(s.records) + 1),
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		CreatedAt: s.now().UTC(),
	}
	s.records = append(s.records, r)
	return r, nil
}

// Records returns a copy of everything stored.
func (s *MemoryStore) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Record(nil), s.records...)
}
