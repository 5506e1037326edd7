package session

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/theirongolddev/wattboard/internal/energy"
)

var (
	// ErrNotFound is returned for unknown session ids.
	ErrNotFound = errors.New("session not found")
	// ErrFull is returned by Create once the registry holds its limit.
	ErrFull = errors.New("session limit reached")
)

// Registry tracks live sessions by id.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	limit    int
}

// NewRegistry returns an empty registry holding at most limit sessions;
// limit <= 0 means unlimited.
func NewRegistry(limit int) *Registry {
	return &Registry{sessions: make(map[string]*Session), limit: limit}
}

// Create registers a new session with its own empty ledger.
func (r *Registry) Create(size energy.DwellingSize, h Household) (*Session, error) {
	s, err := New(uuid.NewString(), size)
	if err != nil {
		return nil, err
	}
	s.SetHousehold(h)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.limit > 0 && len(r.sessions) >= r.limit {
		return nil, ErrFull
	}
	r.sessions[s.ID] = s
	return s, nil
}

// Get returns the session for id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete drops a session.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(r.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// IDs lists session ids, oldest first.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	list := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		list = append(list, s)
	}
	r.mu.RUnlock()

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.Before(list[j].CreatedAt)
	})
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}
