package main

import (
	"flag"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"

	"github.com/decker502/simcore/pkg/app"
	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/embedded"
	"github.com/decker502/simcore/pkg/game"
	"github.com/decker502/simcore/pkg/logging"
)

var (
	configPath = flag.String("config", config.DefaultSimConfigPath, "模拟配置文件路径")
	verbose    = flag.Bool("verbose", false, "显示详细日志")
	mapPath    = flag.String("map", "", "覆盖配置中的地图文件")
)

func main() {
	flag.Parse()

	// 初始化嵌入数据，本地 data/ 目录中的同名文件优先级更低
	embedded.Init(dataFS)

	cfg, err := config.LoadSimConfig(*configPath)
	if err != nil {
		bootstrap := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
		bootstrap.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if *verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	if *mapPath != "" {
		cfg.MapPath = *mapPath
	}

	logger := logging.New(logging.FromConfig(cfg))

	sim, err := game.LoadSimulation(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load simulation")
	}

	gameApp, err := app.NewApp(sim, app.Config{DebugOverlay: cfg.DebugOverlay}, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create app")
	}

	w, h := gameApp.ScreenSize()
	ebiten.SetWindowSize(w*2, h*2)
	ebiten.SetWindowTitle("simcore")
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		logger.Fatal().Err(err).Msg("game loop exited")
	}
}
