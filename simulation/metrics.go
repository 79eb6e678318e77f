package simulation

import (
	"github.com/aukilabs/raido/spatial"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultLabel = "result"
	gridLabel   = "grid"

	resultHit  = "hit"
	resultMiss = "miss"

	gridFine   = "fine"
	gridCoarse = "coarse"
)

var (
	raidoQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "spatial_queries_total",
		Help: "The number of point queries issued against the spatial index.",
	}, []string{resultLabel})

	raidoGridCells = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spatial_grid_cells",
		Help: "The number of allocated cells per grid.",
	}, []string{gridLabel})

	raidoGridVolumes = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "spatial_grid_volumes",
		Help: "The number of volumes tracked per grid.",
	}, []string{gridLabel})

	raidoCompactedCells = promauto.NewCounter(prometheus.CounterOpts{
		Name: "spatial_compacted_cells_total",
		Help: "The number of empty cells released by maintenance passes.",
	})
)

func instrumentQuery(hit bool) {
	result := resultMiss
	if hit {
		result = resultHit
	}
	raidoQueries.
		With(prometheus.Labels{resultLabel: result}).
		Inc()
}

func instrumentCompaction(released int) {
	raidoCompactedCells.Add(float64(released))
}

func instrumentGridCells(info spatial.DebugInfo) {
	raidoGridCells.
		With(prometheus.Labels{gridLabel: gridFine}).
		Set(float64(info.FineCellCount))
	raidoGridCells.
		With(prometheus.Labels{gridLabel: gridCoarse}).
		Set(float64(info.CoarseCellCount))

	raidoGridVolumes.
		With(prometheus.Labels{gridLabel: gridFine}).
		Set(float64(info.FineVolumeCount))
	raidoGridVolumes.
		With(prometheus.Labels{gridLabel: gridCoarse}).
		Set(float64(info.CoarseVolumeCount))
}
