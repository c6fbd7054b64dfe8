// navgrid 打印地图的可行走网格，并可选地求一条路径
//
// 用法:
//
//	go run ./cmd/navgrid show
//	go run ./cmd/navgrid path 0,0 15,9
//	go run ./cmd/navgrid path 0,0 15,9 --scene "" --heights
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/game"
	"github.com/decker502/simcore/pkg/logging"
	"github.com/decker502/simcore/pkg/navigation"
)

type options struct {
	mapPath     string
	assetsPath  string
	scenePath   string
	groundLayer string
	heights     bool
	verbose     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := config.DefaultSimConfig()
	opts := &options{}

	root := &cobra.Command{
		Use:          "navgrid",
		Short:        "Inspect the navigation grid built from a tile map and entity placements",
		SilenceUsage: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.mapPath, "map", defaults.MapPath, "tile map file")
	flags.StringVar(&opts.assetsPath, "assets", defaults.AssetsPath, "asset catalog file")
	flags.StringVar(&opts.scenePath, "scene", defaults.ScenePath, "entity placement file (empty for none)")
	flags.StringVar(&opts.groundLayer, "ground-layer", defaults.GroundLayer, "layer that provides tile heights")
	flags.BoolVar(&opts.heights, "heights", false, "print cell heights instead of walkability")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the walkability grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sim, err := load(opts)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), render(sim.Grid, nil, opts.heights))
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "path START END",
		Short: "Find a path between two cells given as x,y",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parsePoint(args[0])
			if err != nil {
				return err
			}
			end, err := parsePoint(args[1])
			if err != nil {
				return err
			}
			sim, err := load(opts)
			if err != nil {
				return err
			}

			path := sim.Pathfinder.FindPath(start, end)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, render(sim.Grid, path, opts.heights))
			if len(path) == 0 {
				fmt.Fprintf(out, "no path from %d,%d to %d,%d\n", start.X, start.Y, end.X, end.Y)
				return nil
			}
			fmt.Fprintf(out, "path length %d: %s\n", len(path)-1, formatPath(path))
			return nil
		},
	})

	return root
}

func load(opts *options) (*game.Simulation, error) {
	cfg := config.DefaultSimConfig()
	cfg.MapPath = opts.mapPath
	cfg.AssetsPath = opts.assetsPath
	cfg.ScenePath = opts.scenePath
	cfg.GroundLayer = opts.groundLayer
	cfg.Verbose = opts.verbose
	if opts.verbose {
		cfg.LogLevel = "debug"
	}

	var logger zerolog.Logger
	if opts.verbose {
		logger = logging.New(logging.FromConfig(&cfg))
	} else {
		logger = zerolog.Nop()
	}
	return game.LoadSimulation(&cfg, logger)
}

// render 渲染网格
//
// '.' 可行走，'#' 阻挡，'*' 路径，'S'/'E' 起终点；
// heights 为 true 时可行走格显示高度（大于 9 显示 '+'）
func render(grid *navigation.NavGrid, path []navigation.Point, heights bool) string {
	w, h := grid.Size()
	cells := make([][]byte, h)
	for y := 0; y < h; y++ {
		cells[y] = make([]byte, w)
		for x := 0; x < w; x++ {
			switch {
			case !grid.IsWalkable(x, y):
				cells[y][x] = '#'
			case heights:
				cells[y][x] = heightSymbol(grid.HeightAt(x, y))
			default:
				cells[y][x] = '.'
			}
		}
	}
	for i, p := range path {
		switch i {
		case 0:
			cells[p.Y][p.X] = 'S'
		case len(path) - 1:
			cells[p.Y][p.X] = 'E'
		default:
			cells[p.Y][p.X] = '*'
		}
	}

	var b strings.Builder
	for _, row := range cells {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func heightSymbol(height int) byte {
	switch {
	case height < 0:
		return '-'
	case height > 9:
		return '+'
	default:
		return byte('0' + height)
	}
}

func parsePoint(s string) (navigation.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return navigation.Point{}, eris.Errorf("cell %q must be written as x,y", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return navigation.Point{}, eris.Wrapf(err, "bad x in %q", s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return navigation.Point{}, eris.Wrapf(err, "bad y in %q", s)
	}
	return navigation.Point{X: x, Y: y}, nil
}

func formatPath(path []navigation.Point) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = fmt.Sprintf("%d,%d", p.X, p.Y)
	}
	return strings.Join(parts, " ")
}
