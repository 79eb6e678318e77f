package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"reflect"
	"syscall"
	"time"

	"github.com/aukilabs/go-tooling/pkg/cli"
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
	"github.com/aukilabs/go-tooling/pkg/metrics"
	"github.com/aukilabs/raido/featureflag"
	raidohttp "github.com/aukilabs/raido/http"
	"github.com/aukilabs/raido/simulation"
	"github.com/aukilabs/raido/spatial"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/segmentio/encoding/json"
)

var (
	// The Raido version number. Set at build.
	version = "v0.1.0"

	infoGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name:        "raido_info",
		Help:        "Raido information.",
		ConstLabels: prometheus.Labels{"version": version},
	})
)

// This will effectively disable obfuscation of the config struct. Without it, the keys would get obfuscated causing the cli package to generate garbled command-line options.
// https://github.com/burrowers/garble/issues/403
var _ = reflect.TypeOf(config{})

type config struct {
	Addr                 string        `cli:""        env:"RAIDO_ADDR"                   help:"Listening address for the debug surface."`
	AdminAddr            string        `cli:""        env:"RAIDO_ADMIN_ADDR"             help:"Admin listening address."`
	LogLevel             string        `cli:""        env:"RAIDO_LOG_LEVEL"              help:"Log level (debug|info|warning|error)."`
	LogIndent            bool          `cli:""        env:"RAIDO_LOG_INDENT"             help:"Indent logs."`
	Scene                string        `cli:""        env:"RAIDO_SCENE"                  help:"Scene label reported in metrics."`
	FineCellSize         float64       `cli:",hidden" env:"RAIDO_FINE_CELL_SIZE"         help:"Cell size of the fine grid."`
	CoarseCellSize       float64       `cli:",hidden" env:"RAIDO_COARSE_CELL_SIZE"       help:"Cell size of the coarse grid."`
	LargeVolumeThreshold float64       `cli:",hidden" env:"RAIDO_LARGE_VOLUME_THRESHOLD" help:"Horizontal extent above which a volume routes to the coarse grid."`
	VolumeCount          int           `cli:""        env:"RAIDO_VOLUME_COUNT"           help:"Number of simulated volumes."`
	MoverCount           int           `cli:""        env:"RAIDO_MOVER_COUNT"            help:"Number of simulated volumes that move every tick."`
	QueriesPerTick       int           `cli:",hidden" env:"RAIDO_QUERIES_PER_TICK"       help:"Number of point queries issued per tick."`
	WorldExtent          float64       `cli:",hidden" env:"RAIDO_WORLD_EXTENT"           help:"Half-size of the simulated world on x and z."`
	MaxVolumeExtent      float64       `cli:",hidden" env:"RAIDO_MAX_VOLUME_EXTENT"      help:"Maximum horizontal extent of simulated volumes."`
	TickInterval         time.Duration `cli:",hidden" env:"RAIDO_TICK_INTERVAL"          help:"The duration of a simulation tick."`
	WatchInterval        time.Duration `cli:",hidden" env:"RAIDO_WATCH_INTERVAL"         help:"The duration between debug watch snapshots."`
	CompactEvery         uint64        `cli:",hidden" env:"RAIDO_COMPACT_EVERY"          help:"Number of ticks between empty-cell maintenance passes."`
	Seed                 int64         `cli:",hidden" env:"RAIDO_SEED"                   help:"Simulation random seed."`
	FeatureFlags         []string      `cli:",hidden" env:"RAIDO_FEATURE_FLAGS"          help:"Comma separated feature flags"`
	Version              bool          `cli:""        env:"-"                            help:"Show version."`
	Help                 bool          `cli:""        env:"-"                            help:"Show help."`
}

func main() {
	conf := config{
		Addr:                 ":4100",
		AdminAddr:            ":18200",
		LogLevel:             logs.InfoLevel.String(),
		Scene:                "default",
		FineCellSize:         10,
		CoarseCellSize:       100,
		LargeVolumeThreshold: 50,
		VolumeCount:          256,
		MoverCount:           64,
		QueriesPerTick:       32,
		WorldExtent:          500,
		MaxVolumeExtent:      80,
		TickInterval:         time.Millisecond * 15,
		WatchInterval:        time.Second,
		CompactEvery:         600,
	}

	// set the information gauge to 1, useful for SUM query
	infoGauge.Set(1)

	ctx, cancel := cli.ContextWithSignals(context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cli.Register().
		Help("Starts the Raido spatial index host.").
		Options(&conf)
	cli.Load()

	if conf.Version {
		fmt.Println(version)
		os.Exit(0)
	}

	if err := validateConfig(conf); err != nil {
		logs.Fatal(err)
	}

	logs.SetLevel(logs.ParseLevel(conf.LogLevel))
	logs.Encoder = json.Marshal
	if conf.LogIndent {
		logs.Encoder = func(v any) ([]byte, error) {
			return json.MarshalIndent(v, "", "  ")
		}
	}

	errors.Encoder = json.Marshal

	flags := featureflag.New(conf.FeatureFlags)

	index := spatial.NewDispatcher(spatial.Config{
		FineCellSize:         float32(conf.FineCellSize),
		CoarseCellSize:       float32(conf.CoarseCellSize),
		LargeVolumeThreshold: float32(conf.LargeVolumeThreshold),
	})

	sim := simulation.New(index, simulation.Options{
		Scene:           conf.Scene,
		VolumeCount:     conf.VolumeCount,
		MoverCount:      conf.MoverCount,
		QueriesPerTick:  conf.QueriesPerTick,
		WorldExtent:     float32(conf.WorldExtent),
		MaxVolumeExtent: float32(conf.MaxVolumeExtent),
		CompactEvery:    conf.CompactEvery,
		Seed:            conf.Seed,
		FeatureFlags:    flags,
	})

	if err := sim.Populate(); err != nil {
		logs.Fatal(errors.New("populating the simulation failed").Wrap(err))
	}

	readinessCheck := func() bool {
		return sim.DebugInfo().VolumeCount > 0
	}

	var service http.ServeMux
	service.Handle("/health", raidohttp.HandleWithCORS(http.HandlerFunc(raidohttp.HandleHealthCheck)))
	service.Handle("/version", raidohttp.HandleWithCORS(http.HandlerFunc(raidohttp.HandleVersion(version))))
	service.Handle("/ready", raidohttp.HandleWithCORS(http.HandlerFunc(raidohttp.HandleReadyCheck(readinessCheck))))

	flags.IfNotSet(featureflag.FlagDisableDebugEndpoints, func() {
		service.Handle("/spatial/debug-info", raidohttp.HandleWithCORS(raidohttp.HandleDebugInfo(sim)))
		service.Handle("/spatial/watch", raidohttp.HandleWatch(sim, conf.WatchInterval))
	})

	simDone := make(chan struct{})
	go func() {
		defer close(simDone)

		err := sim.Run(ctx, conf.TickInterval)
		if err != nil && err != context.Canceled {
			logs.Fatal(errors.New("simulation stopped").
				WithTag("run_id", sim.RunID).
				Wrap(err))
		}
	}()

	var admin http.ServeMux
	admin.Handle("/metrics", promhttp.Handler())
	admin.HandleFunc("/health", raidohttp.HandleHealthCheck)
	admin.HandleFunc("/debug/pprof/", pprof.Index)
	admin.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	admin.HandleFunc("/debug/pprof/profile", pprof.Profile)
	admin.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	admin.HandleFunc("/debug/pprof/trace", pprof.Trace)
	admin.Handle("/debug/pprof/goroutine", pprof.Handler("goroutine"))
	admin.Handle("/debug/pprof/heap", pprof.Handler("heap"))
	admin.HandleFunc("/ready", raidohttp.HandleReadyCheck(readinessCheck))

	logs.WithTag("version", version).
		WithTag("log_level", conf.LogLevel).
		WithTag("scene", conf.Scene).
		WithTag("run_id", sim.RunID).
		WithTag("volume_count", conf.VolumeCount).
		Info("starting raido host")

	raidohttp.ListenAndServe(ctx,
		&http.Server{Addr: conf.Addr, Handler: metrics.HTTPHandler(&service,
			raidohttp.MetricsPathFormatter)},
		&http.Server{Addr: conf.AdminAddr, Handler: &admin},
	)

	// the simulation owns the index, so wait for its goroutine before the
	// final teardown.
	<-simDone
	sim.Teardown()
}

func validateConfig(conf config) error {
	if conf.FineCellSize <= 0 {
		return errors.New("fine cell size must be positive")
	}

	if conf.CoarseCellSize <= conf.FineCellSize {
		return errors.New("coarse cell size must exceed the fine cell size").
			WithTag("fine_cell_size", conf.FineCellSize).
			WithTag("coarse_cell_size", conf.CoarseCellSize)
	}

	if conf.LargeVolumeThreshold <= 0 {
		return errors.New("large volume threshold must be positive")
	}

	if conf.VolumeCount <= 0 {
		return errors.New("volume count must be positive")
	}

	if conf.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}

	return nil
}
