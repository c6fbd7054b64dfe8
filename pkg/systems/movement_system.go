package systems

import (
	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/ecs"
)

// MovementSystem 把速度积分到位置上
// 静态物体不移动
type MovementSystem struct{}

// NewMovementSystem 创建移动系统
func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

// Name 实现 ecs.System
func (s *MovementSystem) Name() string { return "movement" }

// Priority 实现 ecs.System
func (s *MovementSystem) Priority() int { return PriorityMovement }

// RequiredComponents 实现 ecs.System
func (s *MovementSystem) RequiredComponents() []string {
	return []string{components.TransformName, components.PhysicsName}
}

// Update 显式欧拉积分
func (s *MovementSystem) Update(entities []*ecs.Entity, deltaTime float64) error {
	for _, e := range entities {
		p, ok := ecs.GetComponent[*components.PhysicsComponent](e, components.PhysicsName)
		if !ok || !p.IsDynamic() {
			continue
		}
		t, ok := ecs.GetComponent[*components.TransformComponent](e, components.TransformName)
		if !ok {
			continue
		}
		t.X += p.VX * deltaTime
		t.Y += p.VY * deltaTime
	}
	return nil
}
