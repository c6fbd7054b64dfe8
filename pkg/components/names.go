package components

// 组件名称常量
// 实体内组件表按这些名称索引，名称即组件的身份
const (
	TransformName = "Transform"
	PhysicsName   = "Physics"
	ColliderName  = "Collider"
	SpriteName    = "Sprite"
	AnimationName = "Animation"
)
