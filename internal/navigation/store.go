package navigation

import (
	"context"
	"log/slog"
	"sync"
)

// State is the persisted navigation state of one user session.
// An empty ActiveGroupID means no group is selected.
type State struct {
	ActiveGroupID  string `json:"activeGroupId"`
	IsExpanded     bool   `json:"isExpanded"`
	IsMoreMenuOpen bool   `json:"isMoreMenuOpen"`
}

// Store holds the navigation state of a single session. Every method is one atomic transition.
type Store struct {
	mu       sync.Mutex
	state    State
	hydrated bool
}

// NewStore creates a store in the initial collapsed state
func NewStore() *Store {
	return &Store{}
}

// NewStoreWithState creates an already hydrated store, mainly for tests and tooling
func NewStoreWithState(s State) *Store {
	return &Store{state: s, hydrated: true}
}

// State returns a snapshot of the current state
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Hydrated reports whether Rehydrate has completed
func (s *Store) Hydrated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hydrated
}

// SetActiveGroup overwrites the selected group. Path sync only, never during a manual browse.
func (s *Store) SetActiveGroup(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.ActiveGroupID = id
}

// SwitchToGroup selects a group and opens its submenu in one step
func (s *Store) SwitchToGroup(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{ActiveGroupID: id, IsExpanded: true, IsMoreMenuOpen: false}
}

func (s *Store) SetExpanded(expanded bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsExpanded = expanded
}

// Collapse closes both the submenu and the overflow sheet, keeping the selection
func (s *Store) Collapse() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.IsExpanded = false
	s.state.IsMoreMenuOpen = false
}

// ToggleMoreMenu flips the overflow menu. Opening it closes the submenu first.
func (s *Store) ToggleMoreMenu() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsMoreMenuOpen {
		s.state.IsExpanded = false
	}
	s.state.IsMoreMenuOpen = !s.state.IsMoreMenuOpen
}

// DropStaleGroup clears a selected group that is not in groups and closes its
// submenu. It reports whether the state changed.
func (s *Store) DropStaleGroup(groups []NavGroup) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cleaned := withoutStaleGroup(s.state, groups)
	if cleaned == s.state {
		return false
	}
	s.state = cleaned
	return true
}

// withoutStaleGroup forgets an ActiveGroupID no longer present in the menu
// (role change, edited menu).
func withoutStaleGroup(state State, groups []NavGroup) State {
	if state.ActiveGroupID == "" {
		return state
	}
	if _, ok := FindGroup(groups, state.ActiveGroupID); ok {
		return state
	}
	state.ActiveGroupID = ""
	state.IsExpanded = false
	return state
}

// Reset returns to the initial state (logout, session teardown)
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{}
}

// Rehydrate loads the persisted state. Missing or unreadable state leaves the
// initial state in place; the store is marked hydrated either way.
func (s *Store) Rehydrate(ctx context.Context, repo Repository, key string) {
	loaded, found, err := repo.Get(ctx, key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.hydrated = true

	if err != nil {
		slog.Warn("navigation state unreadable, using initial state", "key", key, "error", err)
		s.state = State{}
		return
	}
	if !found {
		s.state = State{}
		return
	}
	s.state = loaded
}

// Persist writes the current state back
func (s *Store) Persist(ctx context.Context, repo Repository, key string) error {
	return repo.Set(ctx, key, s.State())
}

// EffectiveActiveGroup picks the group to highlight.
// A manual selection wins while its submenu is open; otherwise the path decides,
// and the stored selection is the last fallback.
func EffectiveActiveGroup(state State, match Match) string {
	if state.IsExpanded && state.ActiveGroupID != "" {
		return state.ActiveGroupID
	}
	if match.Found && match.Group != nil {
		return match.Group.ID
	}
	return state.ActiveGroupID
}
