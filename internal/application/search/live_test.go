package search

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitResult(t *testing.T, s *Session, timeout time.Duration) Result {
	t.Helper()
	select {
	case r, ok := <-s.Results():
		require.True(t, ok, "results channel closed before a result arrived")
		return r
	case <-time.After(timeout):
		t.Fatal("timed out waiting for a search result")
		return Result{}
	}
}

func TestKeystrokesCoalesceIntoOneFetch(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		atomic.AddInt32(&fetches, 1)
		return query, nil
	}

	s := NewSession(fetch, 200*time.Millisecond, 25)
	defer s.Close()

	s.Keystroke("b")
	time.Sleep(100 * time.Millisecond)
	s.Keystroke("be")
	time.Sleep(100 * time.Millisecond)
	s.Keystroke("beef")

	r := waitResult(t, s, 2*time.Second)
	require.Equal(t, "beef", r.Query)
	require.Equal(t, "beef", r.Payload)

	time.Sleep(300 * time.Millisecond)
	require.EqualValues(t, 1, atomic.LoadInt32(&fetches), "earlier keystrokes should not have fired")
}

func TestKeystrokeResetsWindowToFirstPage(t *testing.T) {
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		return nil, nil
	}

	s := NewSession(fetch, 50*time.Millisecond, 25)
	defer s.Close()

	s.SetWindow(25, 75)
	r := waitResult(t, s, 2*time.Second)
	require.Equal(t, 75, r.Offset)

	s.Keystroke("goat")
	r = waitResult(t, s, 2*time.Second)
	require.Equal(t, "goat", r.Query)
	require.Equal(t, 0, r.Offset)
}

func TestSetWindowFetchesWithoutDebounce(t *testing.T) {
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		return nil, nil
	}

	// Debounce far longer than the wait below, so only an immediate
	// fetch can satisfy it.
	s := NewSession(fetch, 10*time.Second, 25)
	defer s.Close()

	s.SetWindow(10, 20)

	r := waitResult(t, s, time.Second)
	require.Equal(t, 10, r.Limit)
	require.Equal(t, 20, r.Offset)
}

func TestStaleResultIsDropped(t *testing.T) {
	gates := map[string]chan struct{}{
		"first":  make(chan struct{}),
		"second": make(chan struct{}),
	}
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		<-gates[query]
		return query, nil
	}

	s := NewSession(fetch, 10*time.Millisecond, 25)
	defer s.Close()

	s.Keystroke("first")
	time.Sleep(100 * time.Millisecond) // first fetch in flight, blocked
	s.Keystroke("second")
	time.Sleep(100 * time.Millisecond) // second fetch in flight, blocked

	// Release the newer fetch first, then the stale one.
	close(gates["second"])
	r := waitResult(t, s, 2*time.Second)
	require.Equal(t, "second", r.Query)

	close(gates["first"])
	select {
	case r2 := <-s.Results():
		t.Fatalf("stale result %q should have been dropped", r2.Query)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestCloseStopsPendingFetch(t *testing.T) {
	var fetches int32
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		atomic.AddInt32(&fetches, 1)
		return nil, nil
	}

	s := NewSession(fetch, 100*time.Millisecond, 25)
	s.Keystroke("lamb")
	s.Close()

	time.Sleep(300 * time.Millisecond)
	require.EqualValues(t, 0, atomic.LoadInt32(&fetches))

	_, ok := <-s.Results()
	require.False(t, ok, "results channel should be closed")
}

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()
	fetch := func(ctx context.Context, query string, limit, offset int) (interface{}, error) {
		return nil, nil
	}

	s := m.Create(fetch, 0, 25)
	require.Equal(t, DefaultDebounce, s.debounce)

	got, ok := m.Get(s.ID)
	require.True(t, ok)
	require.Same(t, s, got)

	require.True(t, m.Delete(s.ID))
	_, ok = m.Get(s.ID)
	require.False(t, ok)
	require.False(t, m.Delete(s.ID), "second delete should report missing")

	_, open := <-s.Results()
	require.False(t, open, "deleting the session should close its results channel")
}
