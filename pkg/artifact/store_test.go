package artifact

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPutReplacesAndReleasesPriorHandle(t *testing.T) {
	s := NewStore()
	owner := uuid.New()

	first := s.Put(owner, "application/pdf", []byte("v1"))
	second := s.Put(owner, "application/pdf", []byte("v2"))

	require.NotEqual(t, first.Token, second.Token)
	require.Equal(t, 1, s.Len())

	// Old token is gone, new one resolves.
	_, ok := s.Get(first.Token)
	require.False(t, ok)
	h, ok := s.Get(second.Token)
	require.True(t, ok)
	require.Equal(t, []byte("v2"), h.Data)

	h, ok = s.GetByOwner(owner)
	require.True(t, ok)
	require.Equal(t, second.Token, h.Token)
}

func TestReleaseOnTeardown(t *testing.T) {
	s := NewStore()
	owner := uuid.New()

	h := s.Put(owner, "application/pdf", []byte("v1"))
	s.Release(owner)

	require.Equal(t, 0, s.Len())
	_, ok := s.Get(h.Token)
	require.False(t, ok)
	_, ok = s.GetByOwner(owner)
	require.False(t, ok)

	// Releasing again is harmless.
	s.Release(owner)
}

func TestIndependentOwners(t *testing.T) {
	s := NewStore()
	a, b := uuid.New(), uuid.New()

	ha := s.Put(a, "application/pdf", []byte("a"))
	hb := s.Put(b, "application/pdf", []byte("b"))

	s.Release(a)

	_, ok := s.Get(ha.Token)
	require.False(t, ok)
	got, ok := s.Get(hb.Token)
	require.True(t, ok)
	require.Equal(t, []byte("b"), got.Data)
}
