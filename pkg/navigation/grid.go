package navigation

import (
	"math"
	"sort"

	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/ecs"
	"github.com/rs/zerolog"
)

// DefaultGroundLayer 默认的地面图层名，瓦片高度从该层读取
const DefaultGroundLayer = "ground"

// GridOptions 导航网格构建选项
type GridOptions struct {
	// GroundLayer 读取瓦片高度的图层名，为空时使用 DefaultGroundLayer
	GroundLayer string
}

// NavGrid 导航网格
//
// 把静态瓦片可行走性与实体的动态可行走区域合成为逐格的
// (walkable, height)。网格是派生数据：Invalidate 只设置脏标记，
// 下一次查询时才重建。
//
// 不可重入，只在模拟线程上使用；脏标记是"世界已变化"与
// "下次读取前必须重建"之间唯一的同步手段，调用方在任何可能
// 影响可行走性的改动之后必须显式调用 Invalidate。
type NavGrid struct {
	tiles  TileMap
	store  *ecs.EntityManager
	assets AssetMetadata

	groundLayer string

	width    int
	height   int
	walkable []bool
	heights  []int

	dirty    bool
	rebuilds int
	caches   []*PathCache

	logger zerolog.Logger
}

// NewNavGrid 创建导航网格（惰性构建，首次查询时才计算）
//
// 参数:
//   - tiles: 静态瓦片地图
//   - store: 实体存储（只读），可为 nil
//   - assets: 资源元数据（只读），可为 nil
//   - opts: 构建选项
//   - logger: 日志记录器
//
// 返回:
//   - *NavGrid: 导航网格
func NewNavGrid(tiles TileMap, store *ecs.EntityManager, assets AssetMetadata, opts GridOptions, logger zerolog.Logger) *NavGrid {
	ground := opts.GroundLayer
	if ground == "" {
		ground = DefaultGroundLayer
	}
	return &NavGrid{
		tiles:       tiles,
		store:       store,
		assets:      assets,
		groundLayer: ground,
		dirty:       true,
		logger:      logger.With().Str("component", "NavGrid").Logger(),
	}
}

// IsWalkable 查询格子是否可行走
// 越界返回 false
func (g *NavGrid) IsWalkable(x, y int) bool {
	g.ensureBuilt()
	if !g.inBounds(x, y) {
		return false
	}
	return g.walkable[y*g.width+x]
}

// HeightAt 查询格子高度
// 越界返回 0
func (g *NavGrid) HeightAt(x, y int) int {
	g.ensureBuilt()
	if !g.inBounds(x, y) {
		return 0
	}
	return g.heights[y*g.width+x]
}

// Size 网格尺寸，与瓦片地图尺寸一致
func (g *NavGrid) Size() (width, height int) {
	g.ensureBuilt()
	return g.width, g.height
}

// TileSize 单格像素尺寸
func (g *NavGrid) TileSize() (width, height float64) {
	return g.tiles.TileSize()
}

// Invalidate 标记网格为脏，并清空所有关联的路径缓存
// 不立即重建
func (g *NavGrid) Invalidate() {
	g.dirty = true
	g.clearCaches()
}

// IsDirty 网格是否等待重建
func (g *NavGrid) IsDirty() bool {
	return g.dirty
}

// RebuildCount 已执行的重建次数
func (g *NavGrid) RebuildCount() int {
	return g.rebuilds
}

// Rebuild 立即重建网格
//
// 步骤:
//  1. 以瓦片数据初始化每格的可行走性与高度
//  2. 收集带有 Transform + Sprite 的实体，按 ZOrder 稳定排序（后绘制者覆盖先绘制者）
//  3. 解析每个实体的可行走区域与可达高度（动画区域优先，回退到资源区域）
//  4. 声明了区域的实体严格覆盖其足迹包围盒内的所有格子
//  5. 清除脏标记并清空路径缓存
func (g *NavGrid) Rebuild() {
	g.seedFromTiles()

	overrides := 0
	for _, e := range g.footprintEntities() {
		if g.applyEntityOverride(e) {
			overrides++
		}
	}

	g.dirty = false
	g.rebuilds++
	g.clearCaches()

	g.logger.Debug().
		Int("width", g.width).
		Int("height", g.height).
		Int("overrides", overrides).
		Int("rebuild", g.rebuilds).
		Msg("navigation grid rebuilt")
}

// attachCache 关联路径缓存，使网格失效/重建时同步清空
func (g *NavGrid) attachCache(c *PathCache) {
	g.caches = append(g.caches, c)
}

func (g *NavGrid) clearCaches() {
	for _, c := range g.caches {
		c.Clear()
	}
}

func (g *NavGrid) ensureBuilt() {
	if g.dirty {
		g.Rebuild()
	}
}

func (g *NavGrid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// seedFromTiles 步骤1：静态瓦片
// 任一可见图层在该格放置了显式不可行走的瓦片，该格即不可行走；
// 高度取地面图层瓦片的 Height 属性。
func (g *NavGrid) seedFromTiles() {
	w, h := g.tiles.Size()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	g.width, g.height = w, h
	if cap(g.walkable) >= w*h {
		g.walkable = g.walkable[:w*h]
		g.heights = g.heights[:w*h]
	} else {
		g.walkable = make([]bool, w*h)
		g.heights = make([]int, w*h)
	}

	ground := -1
	visible := make([]int, 0, g.tiles.LayerCount())
	for layer := 0; layer < g.tiles.LayerCount(); layer++ {
		if g.tiles.LayerName(layer) == g.groundLayer {
			ground = layer
		}
		if g.tiles.LayerVisible(layer) {
			visible = append(visible, layer)
		}
	}
	if ground < 0 {
		g.logger.Debug().Str("layer", g.groundLayer).Msg("ground layer not found, heights default to 0")
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			walkable := true
			for _, layer := range visible {
				id := g.tiles.TileAt(layer, x, y)
				if id == 0 {
					continue
				}
				if def, ok := g.tiles.TileDef(id); ok && !def.Walkable {
					walkable = false
					break
				}
			}
			g.walkable[i] = walkable

			g.heights[i] = 0
			if ground >= 0 {
				if id := g.tiles.TileAt(ground, x, y); id != 0 {
					if def, ok := g.tiles.TileDef(id); ok {
						g.heights[i] = def.Height
					}
				}
			}
		}
	}
}

// footprintEntities 步骤2：按堆叠顺序排列的足迹实体
func (g *NavGrid) footprintEntities() []*ecs.Entity {
	if g.store == nil || g.assets == nil {
		return nil
	}
	entities := g.store.WithComponents(components.TransformName, components.SpriteName)
	sort.SliceStable(entities, func(i, j int) bool {
		si, _ := ecs.GetComponent[*components.SpriteComponent](entities[i], components.SpriteName)
		sj, _ := ecs.GetComponent[*components.SpriteComponent](entities[j], components.SpriteName)
		return zOrder(si) < zOrder(sj)
	})
	return entities
}

func zOrder(s *components.SpriteComponent) int {
	if s == nil {
		return 0
	}
	return s.ZOrder
}

// applyEntityOverride 步骤3、4：单个实体的覆盖
// 返回实体是否声明了可行走区域
func (g *NavGrid) applyEntityOverride(e *ecs.Entity) bool {
	t, ok := ecs.GetComponent[*components.TransformComponent](e, components.TransformName)
	if !ok {
		return false
	}
	s, ok := ecs.GetComponent[*components.SpriteComponent](e, components.SpriteName)
	if !ok {
		return false
	}

	animation := ""
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](e, components.AnimationName); ok {
		animation = anim.CurrentAnim
	}

	zones, declared := g.assets.WalkableZones(s.AssetID, animation)
	if !declared {
		// 未声明区域的实体不影响瓦片可行走性
		return false
	}
	accessible := g.assets.AccessibleHeight(s.AssetID)

	tileW, tileH := g.tiles.TileSize()
	if tileW <= 0 || tileH <= 0 || g.width == 0 || g.height == 0 {
		return true
	}

	minX, minY, maxX, maxY := footprintBounds(t, s)
	if maxX < 0 || maxY < 0 || minX >= float64(g.width)*tileW || minY >= float64(g.height)*tileH {
		return true
	}
	x0 := clampInt(int(math.Floor(minX/tileW)), 0, g.width-1)
	x1 := clampInt(int(math.Floor(maxX/tileW)), 0, g.width-1)
	y0 := clampInt(int(math.Floor(minY/tileH)), 0, g.height-1)
	y1 := clampInt(int(math.Floor(maxY/tileH)), 0, g.height-1)

	for cy := y0; cy <= y1; cy++ {
		for cx := x0; cx <= x1; cx++ {
			center := Vec2{X: (float64(cx) + 0.5) * tileW, Y: (float64(cy) + 0.5) * tileH}
			local := Vec2{X: center.X - t.X, Y: center.Y - t.Y}.Rotate(-t.Rotation)

			// 只有真实的局部边界才有效，防止包围盒角落泄漏到精灵外
			if local.X < 0 || local.X > s.Width || local.Y < 0 || local.Y > s.Height {
				continue
			}

			i := cy*g.width + cx
			if anyContains(zones, local) {
				g.walkable[i] = true
				g.heights[i] += accessible
			} else {
				g.walkable[i] = false
			}
		}
	}
	return true
}

// footprintBounds 旋转后足迹在世界空间中的轴对齐包围盒
func footprintBounds(t *components.TransformComponent, s *components.SpriteComponent) (minX, minY, maxX, maxY float64) {
	corners := [4]Vec2{
		{0, 0},
		{s.Width, 0},
		{s.Width, s.Height},
		{0, s.Height},
	}
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		r := c.Rotate(t.Rotation)
		x, y := r.X+t.X, r.Y+t.Y
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return minX, minY, maxX, maxY
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
