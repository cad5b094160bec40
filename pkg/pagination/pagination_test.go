package pagination

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	p := &Params{Limit: 0, Offset: -10}
	p.Validate()
	require.Equal(t, DefaultLimit, p.Limit)
	require.Equal(t, 0, p.Offset)

	p = &Params{Limit: 500, Offset: 25}
	p.Validate()
	require.Equal(t, MaxLimit, p.Limit)
	require.Equal(t, 25, p.Offset)
}

func TestNewWindowBoundaries(t *testing.T) {
	w := NewWindow(60, 25, 0)
	require.Equal(t, 1, w.CurrentPage)
	require.Equal(t, 3, w.TotalPages)
	require.True(t, w.HasNext)
	require.False(t, w.HasPrev)
	require.Equal(t, 25, w.NextOffset)
	require.Equal(t, 0, w.PrevOffset)

	w = NewWindow(60, 25, 50)
	require.Equal(t, 3, w.CurrentPage)
	require.False(t, w.HasNext)
	require.True(t, w.HasPrev)
	require.Equal(t, 25, w.PrevOffset)
}

func TestNewWindowEmptyCollection(t *testing.T) {
	w := NewWindow(0, 25, 0)
	require.Equal(t, 0, w.TotalPages)
	require.False(t, w.HasNext)
	require.False(t, w.HasPrev)
}
