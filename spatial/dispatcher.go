package spatial

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
)

// Config sets the grid resolutions and the routing threshold. It is read
// once at construction.
type Config struct {
	// FineCellSize is the cell size of the grid holding small volumes.
	FineCellSize float32

	// CoarseCellSize is the cell size of the grid holding large volumes. It
	// should be materially larger than FineCellSize so large volumes never
	// span many cells.
	CoarseCellSize float32

	// LargeVolumeThreshold is the horizontal extent above which a volume is
	// routed to the coarse grid.
	LargeVolumeThreshold float32

	// CandidateBufferSize pre-sizes the reusable query buffer.
	CandidateBufferSize int
}

func DefaultConfig() Config {
	return Config{
		FineCellSize:         10,
		CoarseCellSize:       100,
		LargeVolumeThreshold: 50,
		CandidateBufferSize:  64,
	}
}

// Dispatcher hides the two-resolution structure behind a single
// register/unregister/query surface. Each registered volume lives in exactly
// one of the two grids, picked by its horizontal extent at registration
// time.
//
// Like HashGrid, a Dispatcher is owned by the goroutine driving the
// simulation and provides no internal locking.
type Dispatcher struct {
	conf   Config
	fine   *HashGrid
	coarse *HashGrid

	// registration order per volume, the tie-break key for equal priorities.
	order   map[Volume]uint64
	nextSeq uint64

	candidates []Volume
}

func NewDispatcher(conf Config) *Dispatcher {
	def := DefaultConfig()
	if conf.FineCellSize <= 0 {
		conf.FineCellSize = def.FineCellSize
	}
	if conf.CoarseCellSize <= conf.FineCellSize {
		conf.CoarseCellSize = def.CoarseCellSize
	}
	if conf.LargeVolumeThreshold <= 0 {
		conf.LargeVolumeThreshold = def.LargeVolumeThreshold
	}
	if conf.CandidateBufferSize <= 0 {
		conf.CandidateBufferSize = def.CandidateBufferSize
	}

	return &Dispatcher{
		conf:       conf,
		fine:       NewHashGrid(conf.FineCellSize),
		coarse:     NewHashGrid(conf.CoarseCellSize),
		order:      make(map[Volume]uint64),
		candidates: make([]Volume, 0, conf.CandidateBufferSize),
	}
}

// Register inserts v into the grid matching its current size. Re-registering
// an already registered volume re-evaluates routing, so a volume whose size
// crossed the threshold moves between grids.
//
// Bounds with min > max on some axis are rejected: the volume ends up
// unregistered and an error is returned.
func (d *Dispatcher) Register(v Volume) error {
	if v == nil {
		return errors.New("volume is nil")
	}

	// drop stale memberships first. At most one grid holds the volume.
	d.fine.Remove(v)
	d.coarse.Remove(v)

	b := v.Bounds()
	if !b.Valid() {
		delete(d.order, v)
		return errors.New("volume bounds are malformed").
			WithTag("min_x", b.Min.X).
			WithTag("min_y", b.Min.Y).
			WithTag("min_z", b.Min.Z).
			WithTag("max_x", b.Max.X).
			WithTag("max_y", b.Max.Y).
			WithTag("max_z", b.Max.Z)
	}

	if b.MaxHorizontalExtent() > d.conf.LargeVolumeThreshold {
		d.coarse.Add(v)
	} else {
		d.fine.Add(v)
	}

	// the tie-break sequence survives re-registration so a resized volume
	// keeps its rank.
	if _, ok := d.order[v]; !ok {
		d.nextSeq++
		d.order[v] = d.nextSeq
	}

	return nil
}

// Unregister removes v from both grids. Routing history is not tracked; the
// grid that does not hold the volume treats the removal as a no-op, and so
// does unregistering an unknown volume.
func (d *Dispatcher) Unregister(v Volume) {
	if v == nil {
		return
	}
	d.fine.Remove(v)
	d.coarse.Remove(v)
	delete(d.order, v)
}

func (d *Dispatcher) Registered(v Volume) bool {
	_, ok := d.order[v]
	return ok
}

func (d *Dispatcher) VolumeCount() int {
	return len(d.order)
}

// Compact prunes empty cells from both grids.
func (d *Dispatcher) Compact() int {
	return d.fine.Compact() + d.coarse.Compact()
}

func (d *Dispatcher) DebugInfo() DebugInfo {
	maxOccupancy := d.fine.maxOccupancy()
	if coarse := d.coarse.maxOccupancy(); coarse > maxOccupancy {
		maxOccupancy = coarse
	}

	return DebugInfo{
		FineCellSize:         d.conf.FineCellSize,
		CoarseCellSize:       d.conf.CoarseCellSize,
		LargeVolumeThreshold: d.conf.LargeVolumeThreshold,
		VolumeCount:          len(d.order),
		FineVolumeCount:      d.fine.TrackedCount(),
		CoarseVolumeCount:    d.coarse.TrackedCount(),
		FineCellCount:        d.fine.CellCount(),
		CoarseCellCount:      d.coarse.CellCount(),
		MaxCellOccupancy:     maxOccupancy,
	}
}
