package config

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/decker502/simcore/pkg/embedded"
	"github.com/decker502/simcore/pkg/navigation"
)

// AssetCatalog 资源元数据目录
//
// 配置文件位置: data/assets.yaml
//
// walkableZones 的三种写法含义不同:
//   - 省略: 资源不影响导航网格
//   - []:   资源整个足迹阻挡
//   - 多边形列表: 只有多边形内部可行走，足迹其余部分阻挡
type AssetCatalog struct {
	Assets []AssetConfig `yaml:"assets"`

	index map[string]*AssetConfig
}

// AssetConfig 单个资源的元数据
type AssetConfig struct {
	ID     string  `yaml:"id"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// AccessibleHeight 站在可行走区域上时叠加的高度
	AccessibleHeight int `yaml:"accessibleHeight,omitempty"`

	// WalkableZones 局部坐标系下的可行走多边形，nil 表示未声明
	WalkableZones *[]PolygonConfig `yaml:"walkableZones,omitempty"`

	// Animations 按动画名覆盖可行走区域
	Animations map[string]AnimationZonesConfig `yaml:"animations,omitempty"`
}

// AnimationZonesConfig 动画级的可行走区域
type AnimationZonesConfig struct {
	WalkableZones *[]PolygonConfig `yaml:"walkableZones,omitempty"`
}

// PolygonConfig 多边形顶点列表，每个顶点为 [x, y]
type PolygonConfig [][]float64

// LoadAssetCatalog 加载资源目录
//
// 参数:
//   - path: 配置文件路径（如 "data/assets.yaml"）
//
// 返回:
//   - *AssetCatalog: 资源目录，可直接作为 navigation.AssetMetadata 使用
//   - error: 加载失败时返回错误
func LoadAssetCatalog(path string) (*AssetCatalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to read asset catalog")
	}
	c, err := ParseAssetCatalog(data)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to load asset catalog %s", path)
	}
	return c, nil
}

// ParseAssetCatalog 从 YAML 数据解析资源目录
func ParseAssetCatalog(data []byte) (*AssetCatalog, error) {
	var c AssetCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, eris.Wrap(err, "failed to parse asset catalog")
	}
	if err := c.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid asset catalog")
	}
	return &c, nil
}

// Validate 校验资源ID唯一、多边形顶点格式，并构建索引
func (c *AssetCatalog) Validate() error {
	c.index = make(map[string]*AssetConfig, len(c.Assets))
	for i := range c.Assets {
		a := &c.Assets[i]
		if a.ID == "" {
			return eris.Errorf("asset #%d has no id", i)
		}
		if _, dup := c.index[a.ID]; dup {
			return eris.Errorf("duplicate asset id %q", a.ID)
		}
		if a.Width < 0 || a.Height < 0 {
			return eris.Errorf("asset %q has negative size", a.ID)
		}
		if err := validateZones(a.WalkableZones); err != nil {
			return eris.Wrapf(err, "asset %q", a.ID)
		}
		for name, anim := range a.Animations {
			if err := validateZones(anim.WalkableZones); err != nil {
				return eris.Wrapf(err, "asset %q animation %q", a.ID, name)
			}
		}
		c.index[a.ID] = a
	}
	return nil
}

func validateZones(zones *[]PolygonConfig) error {
	if zones == nil {
		return nil
	}
	for i, poly := range *zones {
		for j, pt := range poly {
			if len(pt) != 2 {
				return eris.Errorf("zone %d vertex %d: expected [x, y], got %d values", i, j, len(pt))
			}
		}
	}
	return nil
}

// Asset 按ID查询资源
func (c *AssetCatalog) Asset(id string) (*AssetConfig, bool) {
	a, ok := c.index[id]
	return a, ok
}

// WalkableZones 实现 navigation.AssetMetadata
//
// 当前动画声明了区域时优先使用动画区域，否则回退到资源级区域。
func (c *AssetCatalog) WalkableZones(assetID, animation string) ([]navigation.Polygon, bool) {
	a, ok := c.index[assetID]
	if !ok {
		return nil, false
	}
	if animation != "" {
		if anim, ok := a.Animations[animation]; ok && anim.WalkableZones != nil {
			return toPolygons(*anim.WalkableZones), true
		}
	}
	if a.WalkableZones == nil {
		return nil, false
	}
	return toPolygons(*a.WalkableZones), true
}

// AccessibleHeight 实现 navigation.AssetMetadata
func (c *AssetCatalog) AccessibleHeight(assetID string) int {
	if a, ok := c.index[assetID]; ok {
		return a.AccessibleHeight
	}
	return 0
}

func toPolygons(zones []PolygonConfig) []navigation.Polygon {
	out := make([]navigation.Polygon, 0, len(zones))
	for _, z := range zones {
		poly := make(navigation.Polygon, 0, len(z))
		for _, pt := range z {
			poly = append(poly, navigation.Vec2{X: pt[0], Y: pt[1]})
		}
		out = append(out, poly)
	}
	return out
}

var _ navigation.AssetMetadata = (*AssetCatalog)(nil)
