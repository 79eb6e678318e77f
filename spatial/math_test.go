package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBoxValid(t *testing.T) {
	require.True(t, NewBox(Vector3f{0, 0, 0}, Vector3f{1, 1, 1}).Valid())
	require.True(t, NewBox(Vector3f{2, 2, 2}, Vector3f{2, 2, 2}).Valid())
	require.False(t, NewBox(Vector3f{0, 2, 0}, Vector3f{1, 1, 1}).Valid())
	require.False(t, NewBox(Vector3f{5, 0, 0}, Vector3f{1, 1, 1}).Valid())
}

func TestBoxFromCenterExtents(t *testing.T) {
	b := NewBoxFromCenterExtents(Vector3f{1, 2, 3}, Vector3f{1, 1, 1})
	require.True(t, b.Min.Equal(Vector3f{0, 1, 2}))
	require.True(t, b.Max.Equal(Vector3f{2, 3, 4}))
	require.True(t, b.Center().Equal(Vector3f{1, 2, 3}))
	require.True(t, b.Size().Equal(Vector3f{2, 2, 2}))
}

func TestBoxContainsPoint(t *testing.T) {
	b := NewBox(Vector3f{0, 0, 0}, Vector3f{10, 10, 10})

	t.Run("ContainsPoint: inside", func(t *testing.T) {
		require.True(t, b.ContainsPoint(Vector3f{5, 5, 5}))
	})

	t.Run("ContainsPoint: faces are inclusive", func(t *testing.T) {
		require.True(t, b.ContainsPoint(Vector3f{0, 0, 0}))
		require.True(t, b.ContainsPoint(Vector3f{10, 10, 10}))
		require.True(t, b.ContainsPoint(Vector3f{10, 5, 0}))
	})

	t.Run("ContainsPoint: outside", func(t *testing.T) {
		require.False(t, b.ContainsPoint(Vector3f{10.001, 5, 5}))
		require.False(t, b.ContainsPoint(Vector3f{5, -0.001, 5}))
	})
}

func TestBoxMaxHorizontalExtent(t *testing.T) {
	wide := NewBox(Vector3f{0, 0, 0}, Vector3f{60, 5, 10})
	require.True(t, wide.MaxHorizontalExtent() == 60)

	deep := NewBox(Vector3f{0, 0, 0}, Vector3f{10, 5, 42})
	require.True(t, deep.MaxHorizontalExtent() == 42)

	// vertical extent never drives routing.
	tall := NewBox(Vector3f{0, 0, 0}, Vector3f{10, 500, 10})
	require.True(t, tall.MaxHorizontalExtent() == 10)
}
