package spatial

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testVolume is the pointer-identity registrant used across the package
// tests.
type testVolume struct {
	bounds   Box
	priority int32
}

func (v *testVolume) Bounds() Box {
	return v.bounds
}

func (v *testVolume) Priority() int32 {
	return v.priority
}

func newTestVolume(min, max Vector3f, priority int32) *testVolume {
	return &testVolume{bounds: NewBox(min, max), priority: priority}
}

func TestHashGridCreation(t *testing.T) {
	grid := NewHashGrid(0)
	require.True(t, grid.CellSize() == 1)
	require.Zero(t, grid.TrackedCount())
	require.Zero(t, grid.CellCount())

	grid = NewHashGrid(10)
	require.True(t, grid.CellSize() == 10)
}

func TestHashGridAdd(t *testing.T) {
	grid := NewHashGrid(10)

	// spans cell coordinates 0..2 on every axis.
	volume := newTestVolume(Vector3f{0, 0, 0}, Vector3f{25, 25, 25}, 1)
	grid.Add(volume)

	require.True(t, grid.Contains(volume))
	require.Equal(t, 1, grid.TrackedCount())
	require.Equal(t, 27, grid.CellCount())

	hits := grid.QueryCell(Vector3f{5, 5, 5}, nil)
	require.Len(t, hits, 1)
	require.Equal(t, Volume(volume), hits[0])

	t.Run("Add: already tracked is a no-op", func(t *testing.T) {
		grid.Add(volume)
		require.Equal(t, 1, grid.TrackedCount())
		require.Equal(t, 27, grid.CellCount())
		require.Len(t, grid.QueryCell(Vector3f{5, 5, 5}, nil), 1)
	})

	t.Run("Add: malformed bounds are refused", func(t *testing.T) {
		malformed := newTestVolume(Vector3f{10, 0, 0}, Vector3f{0, 10, 10}, 1)
		grid.Add(malformed)
		require.False(t, grid.Contains(malformed))
		require.Equal(t, 1, grid.TrackedCount())
	})
}

func TestHashGridAddNegativeCoordinates(t *testing.T) {
	grid := NewHashGrid(10)

	volume := newTestVolume(Vector3f{-15, -15, -15}, Vector3f{-11, -11, -11}, 1)
	grid.Add(volume)

	// the whole box fits in cell (-2,-2,-2).
	require.Equal(t, 1, grid.CellCount())
	require.Len(t, grid.QueryCell(Vector3f{-12, -12, -12}, nil), 1)
	require.Empty(t, grid.QueryCell(Vector3f{-5, -5, -5}, nil))
}

func TestHashGridRemove(t *testing.T) {
	grid := NewHashGrid(10)

	volume := newTestVolume(Vector3f{0, 0, 0}, Vector3f{25, 25, 25}, 1)
	grid.Add(volume)
	require.Equal(t, 27, grid.CellCount())

	grid.Remove(volume)
	require.False(t, grid.Contains(volume))
	require.Zero(t, grid.TrackedCount())
	require.Empty(t, grid.QueryCell(Vector3f{5, 5, 5}, nil))

	t.Run("Remove: cells are retained when empty", func(t *testing.T) {
		require.Equal(t, 27, grid.CellCount())
	})

	t.Run("Remove: untracked is a no-op", func(t *testing.T) {
		grid.Remove(volume)
		require.Zero(t, grid.TrackedCount())
	})
}

func TestHashGridRemoveAfterBoundsMutation(t *testing.T) {
	grid := NewHashGrid(10)

	volume := newTestVolume(Vector3f{0, 0, 0}, Vector3f{5, 5, 5}, 1)
	grid.Add(volume)

	// mutate the bounds without telling the grid, then remove. Removal works
	// off the last-known bounds, so no stale membership survives.
	volume.bounds = NewBox(Vector3f{100, 100, 100}, Vector3f{105, 105, 105})
	grid.Remove(volume)

	require.Empty(t, grid.QueryCell(Vector3f{2, 2, 2}, nil))
	require.Zero(t, grid.TrackedCount())
}

func TestHashGridUpdate(t *testing.T) {
	grid := NewHashGrid(10)

	volume := newTestVolume(Vector3f{0, 0, 0}, Vector3f{5, 5, 5}, 1)
	grid.Add(volume)
	require.Len(t, grid.QueryCell(Vector3f{2, 2, 2}, nil), 1)

	volume.bounds = NewBox(Vector3f{30, 0, 0}, Vector3f{35, 5, 5})
	grid.Update(volume)

	require.Empty(t, grid.QueryCell(Vector3f{2, 2, 2}, nil))
	require.Len(t, grid.QueryCell(Vector3f{32, 2, 2}, nil), 1)
	require.Equal(t, 1, grid.TrackedCount())
}

func TestHashGridQueryCellAppends(t *testing.T) {
	grid := NewHashGrid(10)

	a := newTestVolume(Vector3f{0, 0, 0}, Vector3f{5, 5, 5}, 1)
	b := newTestVolume(Vector3f{1, 1, 1}, Vector3f{4, 4, 4}, 2)
	grid.Add(a)
	grid.Add(b)

	buf := make([]Volume, 0, 8)
	buf = append(buf, a)

	// QueryCell never clears the buffer, clearing is the caller's job.
	buf = grid.QueryCell(Vector3f{2, 2, 2}, buf)
	require.Len(t, buf, 3)
	require.Equal(t, Volume(a), buf[0])
}

func TestHashGridCompact(t *testing.T) {
	grid := NewHashGrid(10)

	a := newTestVolume(Vector3f{0, 0, 0}, Vector3f{25, 25, 25}, 1)
	b := newTestVolume(Vector3f{2, 2, 2}, Vector3f{4, 4, 4}, 1)
	grid.Add(a)
	grid.Add(b)
	grid.Remove(a)

	// only the cell still holding b survives.
	released := grid.Compact()
	require.Equal(t, 26, released)
	require.Equal(t, 1, grid.CellCount())
	require.Len(t, grid.QueryCell(Vector3f{3, 3, 3}, nil), 1)
}
