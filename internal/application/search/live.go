// Package search implements debounced live-search sessions. A client
// streams keystrokes into a session; the session waits for typing to
// pause before issuing a fetch, and delivers only the newest result so
// a slow early fetch can never overwrite a later one.
package search

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultDebounce is the typing pause that triggers a fetch.
const DefaultDebounce = 500 * time.Millisecond

// fetchTimeout bounds a single background fetch.
const fetchTimeout = 10 * time.Second

// FetchFunc runs one search against the backing store.
type FetchFunc func(ctx context.Context, query string, limit, offset int) (interface{}, error)

// Result is one delivered search response. Seq is the session-local
// sequence number of the fetch that produced it.
type Result struct {
	Seq     uint64      `json:"seq"`
	Query   string      `json:"query"`
	Limit   int         `json:"limit"`
	Offset  int         `json:"offset"`
	Payload interface{} `json:"payload,omitempty"`
	Err     error       `json:"-"`
}

// Session is one live-search conversation. Keystrokes restart the
// debounce timer; window changes fetch immediately. Each fetch is
// stamped with a monotonically increasing sequence number at issue
// time, and a result is dropped if a newer fetch has been issued since.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	fetch    FetchFunc
	debounce time.Duration
	query    string
	limit    int
	offset   int
	seq      uint64
	timer    *time.Timer
	results  chan Result
	closed   bool
}

// NewSession creates a live-search session with the given fetcher and
// typing-pause duration. A non-positive debounce falls back to the
// default.
func NewSession(fetch FetchFunc, debounce time.Duration, limit int) *Session {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Session{
		ID:       uuid.New(),
		fetch:    fetch,
		debounce: debounce,
		limit:    limit,
		results:  make(chan Result, 1),
	}
}

// Keystroke records the current query text and restarts the debounce
// timer. The fetch fires only after the operator pauses typing; a query
// edit also rewinds the window to the first page.
func (s *Session) Keystroke(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}

	s.query = query
	s.offset = 0

	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.debounce, s.fire)
}

// SetWindow changes the page window and fetches immediately; page
// navigation has no typing pause to wait for.
func (s *Session) SetWindow(limit, offset int) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if limit > 0 {
		s.limit = limit
	}
	if offset >= 0 {
		s.offset = offset
	}
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.mu.Unlock()

	s.fire()
}

// Results delivers search responses, newest only. The channel is
// closed when the session is.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Query returns the session's current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Close tears the session down: stops any pending debounce timer and
// closes the result channel. In-flight fetches are discarded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	close(s.results)
}

// fire issues a fetch for the current query and window. The sequence
// number is taken while the parameters are read, so any later fetch
// supersedes this one even if this one returns last.
func (s *Session) fire() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	query, limit, offset := s.query, s.limit, s.offset
	s.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		payload, err := s.fetch(ctx, query, limit, offset)
		s.deliver(Result{
			Seq:     seq,
			Query:   query,
			Limit:   limit,
			Offset:  offset,
			Payload: payload,
			Err:     err,
		})
	}()
}

// deliver hands a result to the channel if it is still the newest.
// A stale buffered result is displaced rather than queued behind.
func (s *Session) deliver(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || r.Seq != s.seq {
		return
	}

	for {
		select {
		case s.results <- r:
			return
		default:
			select {
			case <-s.results:
			default:
			}
		}
	}
}

// Manager tracks live-search sessions by id.
type Manager struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[uuid.UUID]*Session)}
}

// Create opens a new session and registers it.
func (m *Manager) Create(fetch FetchFunc, debounce time.Duration, limit int) *Session {
	s := NewSession(fetch, debounce, limit)
	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks up a session by id.
func (m *Manager) Get(id uuid.UUID) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Delete closes a session and removes it from the manager.
func (m *Manager) Delete(id uuid.UUID) bool {
	m.mu.Lock()
	s, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		s.Close()
	}
	return ok
}
