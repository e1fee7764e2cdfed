package transcript

import (
	"context"
	"sync"

	"docchat/internal/domain/entities"
)

// InMemoryStore is the transcript store used when persistence is disabled.
// Open-Closed: swaps with SQLiteStore without touching the usecases.
type InMemoryStore struct {
	mu       sync.RWMutex
	messages []entities.Message
}

// NewInMemoryStore creates an empty in-memory transcript.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Append stores one message at the end of the transcript.
func (s *InMemoryStore) Append(ctx context.Context, msg entities.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// Load returns all stored messages in append order.
func (s *InMemoryStore) Load(ctx context.Context) ([]entities.Message, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entities.Message, len(s.messages))
	copy(out, s.messages)
	return out, nil
}

// Clear removes the whole transcript.
func (s *InMemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = nil
	return nil
}
