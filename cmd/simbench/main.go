// simbench 无界面地运行模拟并报告耗时，可选 CPU/内存剖析
//
// Profiling:
//
//	go run ./cmd/simbench --bodies 500 --ticks 2000 --profile cpu
//	go tool pprof -http=":8000" ./cpu.pprof
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/game"
	"github.com/decker502/simcore/pkg/navigation"
)

type options struct {
	bodies   int
	ticks    int
	paths    int
	seed     int64
	mode     string
	out      string
	width    int
	height   int
	tileSize float64
}

// report 一次运行的统计
type report struct {
	Ticks      uint64
	Contacts   int
	Paths      int
	PathHits   int
	Elapsed    time.Duration
	PerTick    time.Duration
	GridBuilds int
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "simbench",
		Short:        "Run the simulation headless over random bodies and report timings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stop, err := startProfile(opts.mode, opts.out)
			if err != nil {
				return err
			}
			r, err := run(opts)
			stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(),
				"ticks=%d contacts(last)=%d paths=%d cache_hits=%d grid_builds=%d elapsed=%s per_tick=%s\n",
				r.Ticks, r.Contacts, r.Paths, r.PathHits, r.GridBuilds, r.Elapsed, r.PerTick)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.bodies, "bodies", 200, "number of moving bodies")
	flags.IntVar(&opts.ticks, "ticks", 1000, "number of fixed steps to run")
	flags.IntVar(&opts.paths, "paths", 100, "path queries issued every 10 ticks")
	flags.Int64Var(&opts.seed, "seed", 1, "random seed")
	flags.StringVar(&opts.mode, "profile", "", "profile mode: cpu, mem or empty")
	flags.StringVar(&opts.out, "profile-path", ".", "directory for profile output")
	flags.IntVar(&opts.width, "width", 64, "grid width in tiles")
	flags.IntVar(&opts.height, "height", 64, "grid height in tiles")
	flags.Float64Var(&opts.tileSize, "tile", 32, "tile size in pixels")
	return cmd
}

func startProfile(mode, out string) (func(), error) {
	switch mode {
	case "":
		return func() {}, nil
	case "cpu":
		return profile.Start(profile.CPUProfile, profile.ProfilePath(out), profile.NoShutdownHook).Stop, nil
	case "mem":
		return profile.Start(profile.MemProfileAllocs, profile.ProfilePath(out), profile.NoShutdownHook).Stop, nil
	default:
		return nil, eris.Errorf("unknown profile mode %q", mode)
	}
}

// openMap 生成没有障碍的地图
func openMap(width, height int, tileSize float64) (*config.TileMapConfig, error) {
	data := make([]int, width*height)
	for i := range data {
		data[i] = 1
	}
	m := &config.TileMapConfig{
		Width:      width,
		Height:     height,
		TileWidth:  tileSize,
		TileHeight: tileSize,
		Tiles:      []config.TileDefConfig{{ID: 1}},
		Layers:     []config.LayerConfig{{Name: "ground", Data: data}},
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func run(opts *options) (report, error) {
	if opts.bodies < 0 || opts.ticks < 0 || opts.paths < 0 {
		return report{}, eris.New("counts must not be negative")
	}
	tiles, err := openMap(opts.width, opts.height, opts.tileSize)
	if err != nil {
		return report{}, err
	}

	cfg := config.DefaultSimConfig()
	sim := game.NewSimulation(&cfg, tiles, nil, zerolog.Nop())

	rng := rand.New(rand.NewSource(opts.seed))
	worldW := float64(opts.width) * opts.tileSize
	worldH := float64(opts.height) * opts.tileSize
	for i := 0; i < opts.bodies; i++ {
		e := sim.Store.Create()
		e.AddComponent(&components.TransformComponent{X: rng.Float64() * worldW, Y: rng.Float64() * worldH})
		e.AddComponent(&components.PhysicsComponent{VX: rng.Float64()*200 - 100, VY: rng.Float64()*200 - 100})
		e.AddComponent(&components.ColliderComponent{Width: 12, Height: 12})
	}

	r := report{}
	begin := time.Now()
	for i := 0; i < opts.ticks; i++ {
		sim.Scheduler.Tick(cfg.Step())
		if i%10 != 0 {
			continue
		}
		for j := 0; j < opts.paths; j++ {
			start := navigation.Point{X: rng.Intn(opts.width), Y: rng.Intn(opts.height)}
			end := navigation.Point{X: rng.Intn(opts.width), Y: rng.Intn(opts.height)}
			sim.Pathfinder.FindPath(start, end)
			r.Paths++
		}
	}
	r.Elapsed = time.Since(begin)

	r.Ticks = sim.Scheduler.TickCount()
	r.Contacts = sim.Collision.Contacts()
	r.PathHits = sim.Pathfinder.Stats().Hits
	r.GridBuilds = sim.Grid.RebuildCount()
	if r.Ticks > 0 {
		r.PerTick = r.Elapsed / time.Duration(r.Ticks)
	}
	return r, nil
}
