package spatial

import (
	"math"
)

// Spatial Hash Grid
//
// A sparse uniform grid mapping integer cell coordinates to the volumes
// overlapping that cell. The particularities are:
//  - the grid has a cell size that defines how large a cell is. A volume is
//    inserted into every cell whose cube intersects its bounds, so insertion
//    cost grows with the number of overlapped cells. Volumes far larger than
//    the cell size belong in a coarser grid (see Dispatcher).
//  - cells live in a hash map keyed by a mix of the three cell coordinates,
//    so the grid is unbounded and only occupied regions cost memory.
//  - a cell is created lazily on first insertion and kept when it empties.
//    Volumes oscillating across a cell boundary then reuse the existing cell
//    instead of churning allocations every frame.

// Per-axis multipliers for mixing cell coordinates into one map key. Large
// odd constants keep grid-aligned coordinates from clustering.
const (
	cellHashX uint64 = 0x9e3779b185ebca87
	cellHashY uint64 = 0xc2b2ae3d27d4eb4f
	cellHashZ uint64 = 0x165667b19e3779f9
)

func cellHash(x, y, z int64) uint64 {
	return uint64(x)*cellHashX ^ uint64(y)*cellHashY ^ uint64(z)*cellHashZ
}

// cell holds the volumes whose bounds intersect one cube of the grid. The
// collection is unordered; removal swaps with the last element.
type cell struct {
	volumes []Volume
}

func (c *cell) add(v Volume) {
	c.volumes = append(c.volumes, v)
}

func (c *cell) remove(v Volume) {
	for i := range c.volumes {
		if c.volumes[i] == v {
			last := len(c.volumes) - 1
			c.volumes[i] = c.volumes[last]
			c.volumes[last] = nil
			c.volumes = c.volumes[:last]
			return
		}
	}
}

// HashGrid maintains cell membership for one fixed cell size.
//
// Not safe for concurrent use. All mutation and queries are expected to come
// from the single goroutine driving the simulation tick.
type HashGrid struct {
	cellSize float32
	cells    map[uint64]*cell
	tracked  map[Volume]Box
}

func NewHashGrid(cellSize float32) *HashGrid {
	if cellSize <= 0 {
		cellSize = 1
	}

	return &HashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64]*cell),
		tracked:  make(map[Volume]Box),
	}
}

func (g *HashGrid) CellSize() float32 {
	return g.cellSize
}

// cellCoord maps a world coordinate to a cell coordinate. Cell i covers the
// half-open range [i*size, (i+1)*size).
func (g *HashGrid) cellCoord(v float32) int64 {
	return int64(math.Floor(float64(v) / float64(g.cellSize)))
}

func (g *HashGrid) Contains(v Volume) bool {
	_, ok := g.tracked[v]
	return ok
}

// Add inserts v into every cell its bounds intersect. Adding an already
// tracked volume is a no-op. Bounds with min > max on some axis are refused:
// the volume ends up untracked and occupies no cells.
func (g *HashGrid) Add(v Volume) {
	if _, ok := g.tracked[v]; ok {
		return
	}

	b := v.Bounds()
	if !b.Valid() {
		return
	}

	minX := g.cellCoord(b.Min.X)
	minY := g.cellCoord(b.Min.Y)
	minZ := g.cellCoord(b.Min.Z)
	maxX := g.cellCoord(b.Max.X)
	maxY := g.cellCoord(b.Max.Y)
	maxZ := g.cellCoord(b.Max.Z)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				key := cellHash(x, y, z)
				c := g.cells[key]
				if c == nil {
					c = &cell{}
					g.cells[key] = c
				}
				c.add(v)
			}
		}
	}

	// remember the bounds the cells were derived from, so Remove stays exact
	// after the owner mutates the volume.
	g.tracked[v] = b
}

// Remove takes v out of every cell recorded by its last-known bounds. It is
// a no-op when v is not tracked, so double removal during teardown is safe.
// Emptied cells are kept.
func (g *HashGrid) Remove(v Volume) {
	b, ok := g.tracked[v]
	if !ok {
		return
	}
	delete(g.tracked, v)

	minX := g.cellCoord(b.Min.X)
	minY := g.cellCoord(b.Min.Y)
	minZ := g.cellCoord(b.Min.Z)
	maxX := g.cellCoord(b.Max.X)
	maxY := g.cellCoord(b.Max.Y)
	maxZ := g.cellCoord(b.Max.Z)

	for z := minZ; z <= maxZ; z++ {
		for y := minY; y <= maxY; y++ {
			for x := minX; x <= maxX; x++ {
				if c := g.cells[cellHash(x, y, z)]; c != nil {
					c.remove(v)
				}
			}
		}
	}
}

// Update rebuckets v under its current bounds. Between removal and
// reinsertion the volume is transiently absent, which is fine in the
// single-goroutine model because no query can interleave.
func (g *HashGrid) Update(v Volume) {
	g.Remove(v)
	g.Add(v)
}

// QueryCell appends the volumes of the single cell containing p to buf and
// returns the extended buffer. It never clears buf and performs no
// allocation when buf has capacity. Neighboring cells are intentionally not
// visited: insertion already covered every cell a volume's bounds intersect.
func (g *HashGrid) QueryCell(p Vector3f, buf []Volume) []Volume {
	key := cellHash(g.cellCoord(p.X), g.cellCoord(p.Y), g.cellCoord(p.Z))
	if c := g.cells[key]; c != nil {
		buf = append(buf, c.volumes...)
	}
	return buf
}

func (g *HashGrid) TrackedCount() int {
	return len(g.tracked)
}

func (g *HashGrid) CellCount() int {
	return len(g.cells)
}

func (g *HashGrid) maxOccupancy() int {
	max := 0
	for _, c := range g.cells {
		if len(c.volumes) > max {
			max = len(c.volumes)
		}
	}
	return max
}

// Compact releases cells that no volume currently occupies and returns how
// many were released. Meant for a low-frequency maintenance pass; the steady
// state never calls it.
func (g *HashGrid) Compact() int {
	count := 0
	for key, c := range g.cells {
		if len(c.volumes) == 0 {
			delete(g.cells, key)
			count++
		}
	}
	return count
}
