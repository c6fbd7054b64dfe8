package config

import (
	"unicode/utf8"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/decker502/simcore/pkg/embedded"
	"github.com/decker502/simcore/pkg/navigation"
)

// TileMapConfig 瓦片地图配置
//
// 配置文件位置: data/maps/*.yaml
//
// 图层数据可以写成行主序的瓦片ID数组 (data)，也可以写成字符行 (rows)
// 再通过 legend 把字符映射到瓦片ID，两者二选一。
type TileMapConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	TileWidth  float64 `yaml:"tileWidth"`
	TileHeight float64 `yaml:"tileHeight"`

	// Tiles 瓦片定义，ID 0 保留为空瓦片
	Tiles []TileDefConfig `yaml:"tiles"`

	// Legend 字符到瓦片ID的映射，供 rows 形式的图层使用
	// 空格和 '0' 始终表示空瓦片
	Legend map[string]int `yaml:"legend"`

	Layers []LayerConfig `yaml:"layers"`

	defs map[int]navigation.TileDef
}

// TileDefConfig 单个瓦片定义
type TileDefConfig struct {
	ID int `yaml:"id"`
	// Walkable 可选：nil=可行走，显式 false=阻挡
	Walkable *bool `yaml:"walkable,omitempty"`
	// Height 可选：地面高度，默认 0
	Height int `yaml:"height,omitempty"`
}

// LayerConfig 图层配置
type LayerConfig struct {
	Name string `yaml:"name"`
	// Visible 可选：nil=可见
	Visible *bool    `yaml:"visible,omitempty"`
	Data    []int    `yaml:"data,omitempty"`
	Rows    []string `yaml:"rows,omitempty"`

	ids []int
}

// LoadTileMapConfig 加载瓦片地图配置
//
// 参数:
//   - path: 配置文件路径（如 "data/maps/demo.yaml"）
//
// 返回:
//   - *TileMapConfig: 解析并校验后的地图，可直接作为 navigation.TileMap 使用
//   - error: 加载失败时返回错误
func LoadTileMapConfig(path string) (*TileMapConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to read tile map")
	}
	m, err := ParseTileMapConfig(data)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load tile map %s", path)
	}
	return m, nil
}

// ParseTileMapConfig 从 YAML 数据解析瓦片地图
func ParseTileMapConfig(data []byte) (*TileMapConfig, error) {
	var m TileMapConfig
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, eris.Wrap(err, "failed to parse tile map")
	}
	if err := m.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid tile map")
	}
	return &m, nil
}

// Validate 校验尺寸与图层数据，并构建查询索引
func (m *TileMapConfig) Validate() error {
	if m.Width <= 0 || m.Height <= 0 {
		return eris.Errorf("map size must be positive, got %dx%d", m.Width, m.Height)
	}
	if m.TileWidth <= 0 || m.TileHeight <= 0 {
		return eris.Errorf("tile size must be positive, got %.1fx%.1f", m.TileWidth, m.TileHeight)
	}

	m.defs = make(map[int]navigation.TileDef, len(m.Tiles))
	for _, t := range m.Tiles {
		if t.ID <= 0 {
			return eris.Errorf("tile id must be positive, got %d", t.ID)
		}
		if _, dup := m.defs[t.ID]; dup {
			return eris.Errorf("duplicate tile id %d", t.ID)
		}
		m.defs[t.ID] = navigation.TileDef{
			Walkable: t.Walkable == nil || *t.Walkable,
			Height:   t.Height,
		}
	}

	for i := range m.Layers {
		l := &m.Layers[i]
		ids, err := m.layerIDs(l)
		if err != nil {
			return eris.Wrapf(err, "layer %q", l.Name)
		}
		l.ids = ids
	}
	return nil
}

func (m *TileMapConfig) layerIDs(l *LayerConfig) ([]int, error) {
	n := m.Width * m.Height
	switch {
	case len(l.Data) > 0 && len(l.Rows) > 0:
		return nil, eris.New("data and rows are mutually exclusive")
	case len(l.Data) > 0:
		if len(l.Data) != n {
			return nil, eris.Errorf("expected %d tiles, got %d", n, len(l.Data))
		}
		return l.Data, nil
	case len(l.Rows) > 0:
		if len(l.Rows) != m.Height {
			return nil, eris.Errorf("expected %d rows, got %d", m.Height, len(l.Rows))
		}
		ids := make([]int, 0, n)
		for y, row := range l.Rows {
			if cols := utf8.RuneCountInString(row); cols != m.Width {
				return nil, eris.Errorf("row %d: expected %d columns, got %d", y, m.Width, cols)
			}
			// 按字符而不是字节计列，图例符号可以是多字节字符
			for x, ch := range []rune(row) {
				if ch == ' ' || ch == '0' {
					ids = append(ids, 0)
					continue
				}
				id, ok := m.Legend[string(ch)]
				if !ok {
					return nil, eris.Errorf("row %d col %d: symbol %q not in legend", y, x, ch)
				}
				ids = append(ids, id)
			}
		}
		return ids, nil
	default:
		// 空图层
		return make([]int, n), nil
	}
}

// Size 实现 navigation.TileMap
func (m *TileMapConfig) Size() (int, int) { return m.Width, m.Height }

// TileSize 实现 navigation.TileMap
func (m *TileMapConfig) TileSize() (float64, float64) { return m.TileWidth, m.TileHeight }

// LayerCount 实现 navigation.TileMap
func (m *TileMapConfig) LayerCount() int { return len(m.Layers) }

// LayerName 实现 navigation.TileMap
func (m *TileMapConfig) LayerName(layer int) string { return m.Layers[layer].Name }

// LayerVisible 实现 navigation.TileMap
func (m *TileMapConfig) LayerVisible(layer int) bool {
	v := m.Layers[layer].Visible
	return v == nil || *v
}

// TileAt 实现 navigation.TileMap
func (m *TileMapConfig) TileAt(layer, x, y int) int {
	return m.Layers[layer].ids[y*m.Width+x]
}

// TileDef 实现 navigation.TileMap
func (m *TileMapConfig) TileDef(id int) (navigation.TileDef, bool) {
	d, ok := m.defs[id]
	return d, ok
}

var _ navigation.TileMap = (*TileMapConfig)(nil)
