package artifact

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Handle is one previewable artifact: a transient, locally generated
// document exposed via a temporary token for display.
type Handle struct {
	Token       string
	OwnerID     uuid.UUID
	ContentType string
	Data        []byte
	CreatedAt   time.Time
}

// Store keeps at most one live artifact per owner. Storing a new
// artifact for an owner releases the prior handle, so repeated preview
// regenerations cannot accumulate.
type Store struct {
	mu      sync.RWMutex
	byToken map[string]*Handle
	byOwner map[uuid.UUID]*Handle
}

// NewStore creates an empty artifact store.
func NewStore() *Store {
	return &Store{
		byToken: make(map[string]*Handle),
		byOwner: make(map[uuid.UUID]*Handle),
	}
}

// Put installs a new artifact for the owner, releasing any prior one.
func (s *Store) Put(ownerID uuid.UUID, contentType string, data []byte) *Handle {
	h := &Handle{
		Token:       uuid.New().String(),
		OwnerID:     ownerID,
		ContentType: contentType,
		Data:        data,
		CreatedAt:   time.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.byOwner[ownerID]; ok {
		delete(s.byToken, prev.Token)
	}
	s.byOwner[ownerID] = h
	s.byToken[h.Token] = h
	return h
}

// Get looks up an artifact by its token.
func (s *Store) Get(token string) (*Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byToken[token]
	return h, ok
}

// GetByOwner returns the owner's current artifact, if any.
func (s *Store) GetByOwner(ownerID uuid.UUID) (*Handle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h, ok := s.byOwner[ownerID]
	return h, ok
}

// Release drops the owner's artifact. Called on owner teardown.
func (s *Store) Release(ownerID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if h, ok := s.byOwner[ownerID]; ok {
		delete(s.byToken, h.Token)
		delete(s.byOwner, ownerID)
	}
}

// Len reports how many artifacts are currently held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}
