package simulation

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/raido/featureflag"
	"github.com/aukilabs/raido/models"
	"github.com/aukilabs/raido/spatial"
	"github.com/google/uuid"
)

// Options configures the synthetic host. Zero values fall back to defaults.
type Options struct {
	// Scene names the prometheus scene label.
	Scene string

	// VolumeCount is how many volumes Populate creates.
	VolumeCount int

	// MoverCount is how many of those volumes move every tick.
	MoverCount int

	// QueriesPerTick is how many random point queries each tick issues.
	QueriesPerTick int

	// WorldExtent bounds volume centers and query points to
	// [-WorldExtent, WorldExtent] on x and z.
	WorldExtent float32

	// MaxVolumeExtent caps the horizontal extent of generated volumes. Kept
	// above the routing threshold so both grids see traffic.
	MaxVolumeExtent float32

	// CompactEvery triggers the empty-cell maintenance pass every n ticks.
	CompactEvery uint64

	Seed         int64
	FeatureFlags featureflag.FeatureFlag
}

func (o Options) withDefaults() Options {
	if o.Scene == "" {
		o.Scene = "default"
	}
	if o.VolumeCount <= 0 {
		o.VolumeCount = 256
	}
	if o.MoverCount < 0 || o.MoverCount > o.VolumeCount {
		o.MoverCount = o.VolumeCount / 4
	}
	if o.QueriesPerTick <= 0 {
		o.QueriesPerTick = 32
	}
	if o.WorldExtent <= 0 {
		o.WorldExtent = 500
	}
	if o.MaxVolumeExtent <= 0 {
		o.MaxVolumeExtent = 80
	}
	if o.CompactEvery == 0 {
		o.CompactEvery = 600
	}
	return o
}

// Simulation drives a spatial index the way a host engine would: it owns the
// volume lifecycle, mutates bounds, re-registers after each mutation and
// issues per-tick point queries. All index access happens on the goroutine
// calling Tick; other goroutines only read published snapshots.
type Simulation struct {
	RunID string

	opts   Options
	rng    *rand.Rand
	index  spatial.VolumeIndex
	store  models.VolumeStore
	movers []*models.Volume
	tick   uint64

	snapshotMutex sync.RWMutex
	snapshot      spatial.DebugInfo
}

func New(index spatial.VolumeIndex, opts Options) *Simulation {
	opts = opts.withDefaults()

	return &Simulation{
		RunID: uuid.NewString(),
		opts:  opts,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		index: index,
	}
}

func (s *Simulation) Store() *models.VolumeStore {
	return &s.store
}

// Populate creates and registers the configured number of volumes. The first
// MoverCount of them move on every tick.
func (s *Simulation) Populate() error {
	s.store.Scene = s.opts.Scene

	for i := 0; i < s.opts.VolumeCount; i++ {
		volume := models.NewVolume(
			s.store.NewID(),
			uuid.NewString(),
			s.randomPosition(),
			s.randomExtents(),
			int32(s.rng.Intn(10)),
		)

		if err := s.index.Register(volume); err != nil {
			return errors.New("registering volume failed").
				WithTag("volume_id", volume.ID).
				WithTag("volume_name", volume.Name).
				Wrap(err)
		}
		s.store.Add(volume)

		if len(s.movers) < s.opts.MoverCount {
			s.movers = append(s.movers, volume)
		}
	}

	s.publishSnapshot()

	s.opts.FeatureFlags.IfNotSet(featureflag.FlagDisablePopulateLogging, func() {
		info := s.DebugInfo()
		logs.WithTag("run_id", s.RunID).
			WithTag("volume_count", info.VolumeCount).
			WithTag("fine_volume_count", info.FineVolumeCount).
			WithTag("coarse_volume_count", info.CoarseVolumeCount).
			WithTag("mover_count", len(s.movers)).
			Info("populated spatial index")
	})

	return nil
}

// Tick advances the host by one frame: movers drift and re-register, random
// points are queried, and the low-frequency maintenance runs when due.
func (s *Simulation) Tick() error {
	s.tick++

	s.opts.FeatureFlags.IfNotSet(featureflag.FlagDisableVolumeMovement, func() {
		for _, volume := range s.movers {
			center := volume.Center()
			center.X += s.rng.Float32()*2 - 1
			center.Z += s.rng.Float32()*2 - 1
			volume.SetCenter(center)
		}
	})

	for _, volume := range s.movers {
		if err := s.index.Register(volume); err != nil {
			return errors.New("re-registering moved volume failed").
				WithTag("volume_id", volume.ID).
				Wrap(err)
		}
	}

	queryMetrics := !s.opts.FeatureFlags.IsSet(featureflag.FlagDisableQueryMetrics)
	for i := 0; i < s.opts.QueriesPerTick; i++ {
		best := s.index.FindBest(s.randomPosition())
		if queryMetrics {
			instrumentQuery(best != nil)
		}
	}

	if s.tick%s.opts.CompactEvery == 0 {
		s.opts.FeatureFlags.IfNotSet(featureflag.FlagDisableCellCompaction, func() {
			released := s.index.Compact()
			instrumentCompaction(released)

			logs.WithTag("run_id", s.RunID).
				WithTag("tick", s.tick).
				WithTag("released_cells", released).
				Info("compacted spatial index")
		})
	}

	s.publishSnapshot()
	return nil
}

// Run drives Tick on the given interval until the context is canceled. It is
// the single goroutine allowed to touch the index.
func (s *Simulation) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-ticker.C:
			if err := s.Tick(); err != nil {
				return errors.New("simulation tick failed").
					WithTag("run_id", s.RunID).
					WithTag("tick", s.tick).
					Wrap(err)
			}
		}
	}
}

// Teardown unregisters and removes every volume. Unregistration is
// idempotent, so tearing down twice is harmless.
func (s *Simulation) Teardown() {
	for _, volume := range s.store.List() {
		s.index.Unregister(volume)
		s.store.Remove(volume)
	}
	s.movers = s.movers[:0]
	s.publishSnapshot()
}

// DebugInfo returns the snapshot published by the last Tick. Safe to call
// from other goroutines.
func (s *Simulation) DebugInfo() spatial.DebugInfo {
	s.snapshotMutex.RLock()
	defer s.snapshotMutex.RUnlock()

	return s.snapshot
}

func (s *Simulation) publishSnapshot() {
	info := s.index.DebugInfo()

	s.snapshotMutex.Lock()
	s.snapshot = info
	s.snapshotMutex.Unlock()

	instrumentGridCells(info)
}

func (s *Simulation) randomPosition() spatial.Vector3f {
	extent := s.opts.WorldExtent
	return spatial.NewVector3f(
		s.rng.Float32()*2*extent-extent,
		s.rng.Float32()*10,
		s.rng.Float32()*2*extent-extent,
	)
}

func (s *Simulation) randomExtents() spatial.Vector3f {
	half := s.opts.MaxVolumeExtent / 2
	return spatial.NewVector3f(
		1+s.rng.Float32()*(half-1),
		1+s.rng.Float32()*5,
		1+s.rng.Float32()*(half-1),
	)
}
