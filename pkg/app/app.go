// Package app 把模拟核心挂到 Ebitengine 的游戏循环上
//
// Update 用真实流逝时间驱动固定步长驱动器，Draw 绘制导航网格、
// 碰撞盒和路径的调试视图。桌面端通过 main.go 调用 NewApp()。
package app

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/ecs"
	"github.com/decker502/simcore/pkg/game"
	"github.com/decker502/simcore/pkg/navigation"
	"github.com/decker502/simcore/pkg/utils"
)

var (
	colorBackground = color.RGBA{30, 30, 36, 255}
	colorWalkable   = color.RGBA{70, 110, 70, 255}
	colorBlocked    = color.RGBA{110, 50, 50, 255}
	colorGridLine   = color.RGBA{0, 0, 0, 80}
	colorPath       = color.RGBA{240, 220, 80, 200}
	colorCollider   = color.RGBA{80, 180, 255, 255}
	colorTrigger    = color.RGBA{255, 160, 60, 255}
)

// Config 定义应用启动配置
type Config struct {
	// DebugOverlay 启动时是否显示导航网格与碰撞盒
	DebugOverlay bool
}

// App 实现 ebiten.Game 接口
type App struct {
	sim    *game.Simulation
	layout utils.GridLayout

	overlay bool
	paused  bool
	now     func() time.Time
	last    time.Time

	pathStart *navigation.Point
	path      []navigation.Point

	logger zerolog.Logger
}

// NewApp 创建应用
//
// 参数:
//   - sim: 已组装的模拟
//   - cfg: 应用配置
//   - logger: 日志记录器
//
// 返回:
//   - *App: 应用实例
//   - error: 模拟为空或地图尺寸无效时返回错误
func NewApp(sim *game.Simulation, cfg Config, logger zerolog.Logger) (*App, error) {
	if sim == nil || sim.Map == nil {
		return nil, eris.New("simulation is not loaded")
	}
	w, h := sim.Map.Size()
	tw, th := sim.Map.TileSize()
	if w <= 0 || h <= 0 || tw <= 0 || th <= 0 {
		return nil, eris.Errorf("invalid map geometry %dx%d tiles of %.0fx%.0f", w, h, tw, th)
	}

	return &App{
		sim:     sim,
		layout:  utils.NewGridLayout(w, h, tw, th),
		overlay: cfg.DebugOverlay,
		now:     time.Now,
		logger:  logger.With().Str("component", "App").Logger(),
	}, nil
}

// Update 更新游戏逻辑
// 每个 Ebitengine tick 调用一次，模拟本身按固定步长推进
func (a *App) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		a.overlay = !a.overlay
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		a.paused = !a.paused
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		a.selectWorld(float64(mx), float64(my))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		a.clearPath()
	}

	a.advance()
	return nil
}

// advance 按真实流逝时间推进模拟
func (a *App) advance() int {
	now := a.now()
	if a.last.IsZero() || a.paused {
		a.last = now
		return 0
	}
	elapsed := now.Sub(a.last).Seconds()
	a.last = now
	return a.sim.Advance(elapsed)
}

// selectWorld 第一次点击选择起点，第二次点击选择终点并寻路
func (a *App) selectWorld(x, y float64) {
	col, row, ok := a.layout.WorldToCell(x, y)
	if !ok {
		return
	}
	cell := navigation.Point{X: col, Y: row}

	if a.pathStart == nil {
		a.pathStart = &cell
		a.path = nil
		return
	}

	start := *a.pathStart
	a.pathStart = nil
	a.path = a.sim.Pathfinder.FindPath(start, cell)
	a.logger.Info().
		Interface("start", start).
		Interface("end", cell).
		Int("length", len(a.path)).
		Msg("path requested")
}

func (a *App) clearPath() {
	a.pathStart = nil
	a.path = nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if a.overlay {
		a.drawGrid(screen)
		a.drawColliders(screen)
	}
	a.drawPath(screen)

	stats := a.sim.Pathfinder.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
		"TPS: %.1f  ticks: %d  entities: %d  contacts: %d\npaths: %d hits / %d misses  [F3] overlay  [Space] pause",
		ebiten.ActualTPS(),
		a.sim.Scheduler.TickCount(),
		a.sim.Store.Count(),
		a.sim.Collision.Contacts(),
		stats.Hits, stats.Misses,
	), 4, 4)
}

func (a *App) drawGrid(screen *ebiten.Image) {
	w, h := a.sim.Grid.Size()
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			x, y, cw, ch := a.layout.CellRect(col, row)
			fill := colorBlocked
			if a.sim.Grid.IsWalkable(col, row) {
				fill = colorWalkable
			}
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(cw), float32(ch), fill, false)
			vector.StrokeRect(screen, float32(x), float32(y), float32(cw), float32(ch), 1, colorGridLine, false)
		}
	}
}

func (a *App) drawColliders(screen *ebiten.Image) {
	for _, e := range a.sim.Store.WithComponents(components.TransformName, components.ColliderName) {
		t, _ := ecs.GetComponent[*components.TransformComponent](e, components.TransformName)
		c, _ := ecs.GetComponent[*components.ColliderComponent](e, components.ColliderName)
		left, top, right, bottom := c.Bounds(t)

		stroke := colorCollider
		if c.IsTrigger {
			stroke = colorTrigger
		}
		if c.Shape == components.ShapeCircle {
			vector.StrokeCircle(screen, float32((left+right)/2), float32((top+bottom)/2), float32(c.Radius), 1, stroke, true)
			continue
		}
		vector.StrokeRect(screen, float32(left), float32(top), float32(right-left), float32(bottom-top), 1, stroke, false)
	}
}

func (a *App) drawPath(screen *ebiten.Image) {
	cells := a.path
	if a.pathStart != nil {
		cells = []navigation.Point{*a.pathStart}
	}
	for _, p := range cells {
		cx, cy := a.layout.CellCenter(p.X, p.Y)
		r := float32(min(a.layout.CellWidth, a.layout.CellHeight) / 4)
		vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, colorPath, true)
	}
}

// Layout 返回逻辑屏幕尺寸，与地图像素尺寸一致
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return a.ScreenSize()
}

// ScreenSize 地图的像素尺寸
func (a *App) ScreenSize() (int, int) {
	return int(float64(a.layout.Columns) * a.layout.CellWidth), int(float64(a.layout.Rows) * a.layout.CellHeight)
}

// Path 当前显示的路径
func (a *App) Path() []navigation.Point {
	return a.path
}
