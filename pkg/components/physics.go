package components

// PhysicsComponent 刚体运动状态
//
// IsStatic 为 true 的实体不会被移动系统积分，也不会被碰撞解算推动。
// 没有 PhysicsComponent 的实体在碰撞解算中等同于静态物体。
type PhysicsComponent struct {
	VX       float64 // X方向速度（像素/秒）
	VY       float64 // Y方向速度（像素/秒）
	IsStatic bool
}

// ComponentName 实现 ecs.Component
func (*PhysicsComponent) ComponentName() string { return PhysicsName }

// IsDynamic 判断物体是否可被移动
// nil 视为静态
func (p *PhysicsComponent) IsDynamic() bool {
	return p != nil && !p.IsStatic
}
