//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此文件仅在使用 -tags mobile 构建时编译。构建前需要把 data/ 复制到本目录：
//
//	cp -r data mobile/
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.simcore -o build/android/simcore.aar -v ./mobile
package mobile

import (
	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/simcore/pkg/app"
	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/embedded"
	"github.com/decker502/simcore/pkg/game"
	"github.com/decker502/simcore/pkg/logging"
)

func init() {
	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	cfg, err := config.LoadSimConfig(config.DefaultSimConfigPath)
	if err != nil {
		panic(err)
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

	// 注册游戏到 ebitenmobile
	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
