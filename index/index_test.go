package index

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLookupInsertRemove(t *testing.T) {
	x := New[string](8)

	_, ok := x.Lookup("a")
	require.False(t, ok)

	x.Insert("a", 2)
	x.Insert("b", 3)

	i, ok := x.Lookup("a")
	require.True(t, ok)
	require.Equal(t, 2, i)
	require.Equal(t, 2, x.Len())

	x.Remove("a")
	_, ok = x.Lookup("a")
	require.False(t, ok)
	require.Equal(t, 1, x.Len())
}

func TestClearAndEach(t *testing.T) {
	x := New[int](4)
	x.Insert(1, 2)
	x.Insert(2, 3)
	x.Insert(3, 4)

	seen := map[int]int{}
	x.Each(func(k, slot int) { seen[k] = slot })
	require.Equal(t, map[int]int{1: 2, 2: 3, 3: 4}, seen)

	x.Clear()
	require.Equal(t, 0, x.Len())
	x.Each(func(k, slot int) { t.Fatalf("unexpected mapping %d → %d after clear", k, slot) })
}
