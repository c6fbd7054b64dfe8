package config

import (
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/decker502/simcore/pkg/embedded"
)

// SceneConfig 初始实体摆放
//
// 配置文件位置: data/scene.yaml
type SceneConfig struct {
	Entities []PlacementConfig `yaml:"entities"`
}

// PlacementConfig 单个实体的摆放
// 只有 Asset 非空时才附加 Sprite，只有 Collider 非 nil 时才附加碰撞体
type PlacementConfig struct {
	Name      string          `yaml:"name,omitempty"`
	Asset     string          `yaml:"asset,omitempty"`
	X         float64         `yaml:"x"`
	Y         float64         `yaml:"y"`
	Rotation  float64         `yaml:"rotation,omitempty"`
	ZOrder    int             `yaml:"zOrder,omitempty"`
	Animation string          `yaml:"animation,omitempty"`
	Velocity  []float64       `yaml:"velocity,omitempty"`
	Static    bool            `yaml:"static,omitempty"`
	Collider  *ColliderConfig `yaml:"collider,omitempty"`
}

// ColliderConfig 碰撞体配置
type ColliderConfig struct {
	// Shape "box"（默认）或 "circle"
	Shape   string  `yaml:"shape,omitempty"`
	Width   float64 `yaml:"width,omitempty"`
	Height  float64 `yaml:"height,omitempty"`
	Radius  float64 `yaml:"radius,omitempty"`
	OffsetX float64 `yaml:"offsetX,omitempty"`
	OffsetY float64 `yaml:"offsetY,omitempty"`
	Trigger bool    `yaml:"trigger,omitempty"`
	Layer   uint32  `yaml:"layer,omitempty"`
	Mask    uint32  `yaml:"mask,omitempty"`
}

// LoadSceneConfig 加载实体摆放配置
func LoadSceneConfig(path string) (*SceneConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to read scene config")
	}

	var scene SceneConfig
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return nil, eris.Wrapf(err, "failed to parse scene config %s", path)
	}
	if err := scene.Validate(); err != nil {
		return nil, eris.Wrapf(err, "invalid scene config %s", path)
	}
	return &scene, nil
}

// Validate 验证配置有效性
func (s *SceneConfig) Validate() error {
	for i, p := range s.Entities {
		if p.Velocity != nil && len(p.Velocity) != 2 {
			return eris.Errorf("entity #%d: velocity must be [vx, vy]", i)
		}
		if c := p.Collider; c != nil {
			switch c.Shape {
			case "", "box":
				if c.Width <= 0 || c.Height <= 0 {
					return eris.Errorf("entity #%d: box collider needs positive width and height", i)
				}
			case "circle":
				if c.Radius <= 0 {
					return eris.Errorf("entity #%d: circle collider needs positive radius", i)
				}
			default:
				return eris.Errorf("entity #%d: unknown collider shape %q", i, c.Shape)
			}
		}
	}
	return nil
}
