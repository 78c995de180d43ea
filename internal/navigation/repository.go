package navigation

import (
	"context"
	"fmt"
	"sync"
)

// Repository persists navigation state between requests
type Repository interface {
	// Get returns the stored state and whether one was found
	Get(ctx context.Context, key string) (State, bool, error)
	Set(ctx context.Context, key string, state State) error
}

// StateKey builds the persistence key for a user's shell
func StateKey(variant Variant, userID string) string {
	return fmt.Sprintf("nav:state:%s:%s", variant, userID)
}

// MemoryRepository keeps state in process memory.
// Used when neither Redis nor a database is configured, and in tests.
type MemoryRepository struct {
	mu     sync.RWMutex
	states map[string]State
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{states: make(map[string]State)}
}

func (r *MemoryRepository) Get(_ context.Context, key string) (State, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.states[key]
	return s, ok, nil
}

func (r *MemoryRepository) Set(_ context.Context, key string, state State) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.states[key] = state
	return nil
}
