package entities

import (
	"github.com/rotisserie/eris"

	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/ecs"
)

// NewPlacementEntity 按摆放配置创建实体
//
// 参数:
//   - em: 实体管理器
//   - p: 摆放配置
//   - catalog: 资源目录，用于查询精灵尺寸；p.Asset 为空时可为 nil
//
// 返回:
//   - *ecs.Entity: 创建的实体
//   - error: 资源不存在或配置无效时返回错误，此时不会创建实体
//
// 组件规则：
//   - 总是附加 Transform
//   - Asset 非空时附加 Sprite（尺寸取自资源目录），Animation 非空时附加 Animation
//   - Velocity 非空或 Static 为 true 时附加 Physics
//   - Collider 非 nil 时附加 Collider
func NewPlacementEntity(em *ecs.EntityManager, p config.PlacementConfig, catalog *config.AssetCatalog) (*ecs.Entity, error) {
	if em == nil {
		return nil, eris.New("entity manager cannot be nil")
	}

	var sprite *components.SpriteComponent
	if p.Asset != "" {
		if catalog == nil {
			return nil, eris.Errorf("entity %q references asset %q but no catalog is loaded", p.Name, p.Asset)
		}
		asset, ok := catalog.Asset(p.Asset)
		if !ok {
			return nil, eris.Errorf("entity %q references unknown asset %q", p.Name, p.Asset)
		}
		sprite = &components.SpriteComponent{
			AssetID: asset.ID,
			Width:   asset.Width,
			Height:  asset.Height,
			ZOrder:  p.ZOrder,
		}
	}

	var collider *components.ColliderComponent
	if c := p.Collider; c != nil {
		shape := components.ShapeBox
		if c.Shape == "circle" {
			shape = components.ShapeCircle
		}
		collider = &components.ColliderComponent{
			Shape:     shape,
			Width:     c.Width,
			Height:    c.Height,
			OffsetX:   c.OffsetX,
			OffsetY:   c.OffsetY,
			Radius:    c.Radius,
			IsTrigger: c.Trigger,
			Layer:     c.Layer,
			Mask:      c.Mask,
		}
	}

	e := em.Create()
	e.AddComponent(&components.TransformComponent{X: p.X, Y: p.Y, Rotation: p.Rotation})
	if sprite != nil {
		e.AddComponent(sprite)
	}
	if p.Animation != "" {
		e.AddComponent(&components.AnimationComponent{CurrentAnim: p.Animation, IsLooping: true})
	}
	if len(p.Velocity) == 2 || p.Static {
		physics := &components.PhysicsComponent{IsStatic: p.Static}
		if len(p.Velocity) == 2 {
			physics.VX, physics.VY = p.Velocity[0], p.Velocity[1]
		}
		e.AddComponent(physics)
	}
	if collider != nil {
		e.AddComponent(collider)
	}
	return e, nil
}

// SpawnScene 创建场景中的全部实体
//
// 任一摆放失败时返回错误，已创建的实体保留在管理器中。
func SpawnScene(em *ecs.EntityManager, scene *config.SceneConfig, catalog *config.AssetCatalog) ([]*ecs.Entity, error) {
	if scene == nil {
		return nil, nil
	}
	spawned := make([]*ecs.Entity, 0, len(scene.Entities))
	for i, p := range scene.Entities {
		e, err := NewPlacementEntity(em, p, catalog)
		if err != nil {
			return spawned, eris.Wrapf(err, "placement #%d", i)
		}
		spawned = append(spawned, e)
	}
	return spawned, nil
}
