package navigation

import (
	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/ecs"
	"github.com/rs/zerolog"
)

const testTile = 32.0

// testLayer 测试用图层
type testLayer struct {
	name    string
	visible bool
	data    []int
}

// testTileMap 测试用瓦片地图
//
// 字符约定: '.' 地面(1)  '#' 墙(2)  '^' 高台(3, 高度2)  ' ' 空
type testTileMap struct {
	w, h   int
	layers []testLayer
	defs   map[int]TileDef
}

func newTestMap(rows ...string) *testTileMap {
	m := &testTileMap{
		h: len(rows),
		defs: map[int]TileDef{
			1: {Walkable: true},
			2: {Walkable: false},
			3: {Walkable: true, Height: 2},
		},
	}
	if len(rows) > 0 {
		m.w = len(rows[0])
	}
	ground := testLayer{name: DefaultGroundLayer, visible: true, data: make([]int, m.w*m.h)}
	for y, row := range rows {
		for x, ch := range row {
			switch ch {
			case '.':
				ground.data[y*m.w+x] = 1
			case '#':
				ground.data[y*m.w+x] = 2
			case '^':
				ground.data[y*m.w+x] = 3
			}
		}
	}
	m.layers = append(m.layers, ground)
	return m
}

// addLayer 追加一个空图层并返回其索引
func (m *testTileMap) addLayer(name string, visible bool) int {
	m.layers = append(m.layers, testLayer{name: name, visible: visible, data: make([]int, m.w*m.h)})
	return len(m.layers) - 1
}

func (m *testTileMap) set(layer, x, y, id int) {
	m.layers[layer].data[y*m.w+x] = id
}

func (m *testTileMap) Size() (int, int)             { return m.w, m.h }
func (m *testTileMap) TileSize() (float64, float64) { return testTile, testTile }
func (m *testTileMap) LayerCount() int              { return len(m.layers) }
func (m *testTileMap) LayerName(layer int) string   { return m.layers[layer].name }
func (m *testTileMap) LayerVisible(layer int) bool  { return m.layers[layer].visible }
func (m *testTileMap) TileAt(layer, x, y int) int   { return m.layers[layer].data[y*m.w+x] }
func (m *testTileMap) TileDef(id int) (TileDef, bool) {
	d, ok := m.defs[id]
	return d, ok
}

// testAsset 测试用资源元数据
type testAsset struct {
	zones      []Polygon
	declared   bool
	animations map[string][]Polygon
	height     int
}

type testAssets map[string]testAsset

func (a testAssets) WalkableZones(assetID, animation string) ([]Polygon, bool) {
	asset, ok := a[assetID]
	if !ok {
		return nil, false
	}
	if animation != "" {
		if zones, ok := asset.animations[animation]; ok {
			return zones, true
		}
	}
	return asset.zones, asset.declared
}

func (a testAssets) AccessibleHeight(assetID string) int {
	return a[assetID].height
}

// rect 局部空间矩形多边形
func rect(x, y, w, h float64) Polygon {
	return Polygon{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
}

// spawnFootprint 生成一个带足迹的实体
func spawnFootprint(em *ecs.EntityManager, asset string, x, y, w, h, rotation float64, z int) *ecs.Entity {
	e := em.Create()
	e.AddComponent(&components.TransformComponent{X: x, Y: y, Rotation: rotation})
	e.AddComponent(&components.SpriteComponent{AssetID: asset, Width: w, Height: h, ZOrder: z})
	return e
}

func newTestStore() *ecs.EntityManager {
	return ecs.NewEntityManager(zerolog.Nop(), nil)
}

// walkMap 把网格可行走性渲染成字符串，便于断言
func walkMap(g *NavGrid) []string {
	w, h := g.Size()
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		row := make([]byte, w)
		for x := 0; x < w; x++ {
			if g.IsWalkable(x, y) {
				row[x] = '.'
			} else {
				row[x] = '#'
			}
		}
		rows[y] = string(row)
	}
	return rows
}
