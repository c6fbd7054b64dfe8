package systems

import (
	"github.com/rs/zerolog"

	"github.com/decker502/simcore/pkg/components"
	"github.com/decker502/simcore/pkg/ecs"
)

// 系统优先级：移动积分先于碰撞，碰撞看到的是积分后的位置
const (
	PriorityMovement  = 10
	PriorityCollision = 20
)

// CollisionEvent 两个碰撞体重叠时发布
// 触发器也会发布，顺序与扫描顺序一致
type CollisionEvent struct {
	EntityA *ecs.Entity
	EntityB *ecs.Entity
}

// PairFilter 决定两个碰撞体是否参与检测
type PairFilter func(a, b *components.ColliderComponent) bool

// LayerMaskFilter 只允许双方层与掩码互相匹配的碰撞体交互
func LayerMaskFilter(a, b *components.ColliderComponent) bool {
	return a.Mask&b.Layer != 0 && b.Mask&a.Layer != 0
}

// CollisionSystem 碰撞检测与位置解算
//
// 对所有带 Transform + Collider 的实体做两两 AABB 检测（O(n²)），
// 边缘相接不算重叠。圆形碰撞体按外接正方形参与检测与解算。
//
// 解算沿重叠较小的轴进行；同一 tick 内后面的碰撞对看到的是
// 前面碰撞对解算后的位置。
type CollisionSystem struct {
	bus    *ecs.EventBus
	filter PairFilter
	logger zerolog.Logger

	contacts int
}

// NewCollisionSystem 创建碰撞系统
//
// 参数:
//   - bus: 碰撞事件的发布目标，可为 nil
//   - logger: 日志记录器
//
// 返回:
//   - *CollisionSystem: 碰撞系统实例（默认不按层过滤）
func NewCollisionSystem(bus *ecs.EventBus, logger zerolog.Logger) *CollisionSystem {
	return &CollisionSystem{
		bus:    bus,
		logger: logger.With().Str("system", "collision").Logger(),
	}
}

// SetPairFilter 设置碰撞对过滤器，nil 表示不过滤
func (s *CollisionSystem) SetPairFilter(filter PairFilter) {
	s.filter = filter
}

// Name 实现 ecs.System
func (s *CollisionSystem) Name() string { return "collision" }

// Priority 实现 ecs.System
func (s *CollisionSystem) Priority() int { return PriorityCollision }

// RequiredComponents 实现 ecs.System
func (s *CollisionSystem) RequiredComponents() []string {
	return []string{components.TransformName, components.ColliderName}
}

// Contacts 上一个 tick 检测到的重叠对数量
func (s *CollisionSystem) Contacts() int {
	return s.contacts
}

// Update 检测并解算本 tick 的所有重叠
func (s *CollisionSystem) Update(entities []*ecs.Entity, _ float64) error {
	s.contacts = 0
	for i := 0; i < len(entities); i++ {
		for j := i + 1; j < len(entities); j++ {
			if s.checkPair(entities[i], entities[j]) {
				s.contacts++
			}
		}
	}
	if s.contacts > 0 {
		s.logger.Trace().Int("contacts", s.contacts).Msg("collisions resolved")
	}
	return nil
}

// body 碰撞对中一方的组件视图
type body struct {
	transform *components.TransformComponent
	collider  *components.ColliderComponent
	physics   *components.PhysicsComponent
}

func bodyOf(e *ecs.Entity) (body, bool) {
	t, ok := ecs.GetComponent[*components.TransformComponent](e, components.TransformName)
	if !ok {
		return body{}, false
	}
	c, ok := ecs.GetComponent[*components.ColliderComponent](e, components.ColliderName)
	if !ok {
		return body{}, false
	}
	p, _ := ecs.GetComponent[*components.PhysicsComponent](e, components.PhysicsName)
	return body{transform: t, collider: c, physics: p}, true
}

// checkPair 检测单个碰撞对，重叠时发布事件并解算
func (s *CollisionSystem) checkPair(ea, eb *ecs.Entity) bool {
	a, ok := bodyOf(ea)
	if !ok {
		return false
	}
	b, ok := bodyOf(eb)
	if !ok {
		return false
	}
	if s.filter != nil && !s.filter(a.collider, b.collider) {
		return false
	}

	if !Overlaps(a.transform, a.collider, b.transform, b.collider) {
		return false
	}

	ecs.Publish(s.bus, CollisionEvent{EntityA: ea, EntityB: eb})

	if a.collider.IsTrigger || b.collider.IsTrigger {
		return true
	}
	resolve(a, b)
	return true
}

// Overlaps 检查两个碰撞体的 AABB 是否重叠（严格不等式，边缘相接不算）
func Overlaps(ta *components.TransformComponent, ca *components.ColliderComponent,
	tb *components.TransformComponent, cb *components.ColliderComponent) bool {
	leftA, topA, rightA, bottomA := ca.Bounds(ta)
	leftB, topB, rightB, bottomB := cb.Bounds(tb)
	return leftA < rightB && rightA > leftB && topA < bottomB && bottomA > topB
}

// resolve 沿重叠较小的轴把物体分开
//
// 两个都是动态物体：各移动一半，并清零双方在该轴上的速度。
// 只有一个是动态物体：它移动全部重叠量，并清零它在该轴上的速度。
// 都不是动态物体：不移动。重叠量相等时沿 X 轴解算。
func resolve(a, b body) {
	dynA, dynB := a.physics.IsDynamic(), b.physics.IsDynamic()
	if !dynA && !dynB {
		return
	}

	leftA, topA, rightA, bottomA := a.collider.Bounds(a.transform)
	leftB, topB, rightB, bottomB := b.collider.Bounds(b.transform)

	overlapX := min(rightA, rightB) - max(leftA, leftB)
	overlapY := min(bottomA, bottomB) - max(topA, topB)

	// sign 为 A 相对 B 的分离方向
	if overlapX <= overlapY {
		sign := 1.0
		if leftA+rightA < leftB+rightB {
			sign = -1.0
		}
		switch {
		case dynA && dynB:
			a.transform.X += sign * overlapX / 2
			b.transform.X -= sign * overlapX / 2
			a.physics.VX, b.physics.VX = 0, 0
		case dynA:
			a.transform.X += sign * overlapX
			a.physics.VX = 0
		default:
			b.transform.X -= sign * overlapX
			b.physics.VX = 0
		}
		return
	}

	sign := 1.0
	if topA+bottomA < topB+bottomB {
		sign = -1.0
	}
	switch {
	case dynA && dynB:
		a.transform.Y += sign * overlapY / 2
		b.transform.Y -= sign * overlapY / 2
		a.physics.VY, b.physics.VY = 0, 0
	case dynA:
		a.transform.Y += sign * overlapY
		a.physics.VY = 0
	default:
		b.transform.Y -= sign * overlapY
		b.physics.VY = 0
	}
}
