package components

// ColliderShape 碰撞体形状
type ColliderShape int

const (
	// ShapeBox 轴对齐矩形
	ShapeBox ColliderShape = iota
	// ShapeCircle 圆形（碰撞检测使用其外接正方形）
	ShapeCircle
)

// ColliderComponent 定义实体的碰撞边界
//
// 矩形: 左上角位于 (Transform.X + OffsetX, Transform.Y + OffsetY)，尺寸 Width x Height。
// 圆形: 圆心位于 (Transform.X + OffsetX, Transform.Y + OffsetY)，半径 Radius。
type ColliderComponent struct {
	Shape   ColliderShape
	Width   float64 // 碰撞盒宽度（像素）
	Height  float64 // 碰撞盒高度（像素）
	OffsetX float64 // 碰撞盒相对于实体位置的X偏移量（像素），正值向右偏移
	OffsetY float64 // 碰撞盒相对于实体位置的Y偏移量（像素），正值向下偏移
	Radius  float64 // 圆形半径（像素），仅 ShapeCircle 使用

	// IsTrigger 触发器只产生碰撞事件，不参与位置解算
	IsTrigger bool
	// Layer 本碰撞体所在的层（位掩码）
	Layer uint32
	// Mask 本碰撞体愿意与之交互的层（位掩码）
	Mask uint32
}

// ComponentName 实现 ecs.Component
func (*ColliderComponent) ComponentName() string { return ColliderName }

// Bounds 计算碰撞体在世界空间中的轴对齐包围盒
//
// 参数:
//   - t: 实体的 TransformComponent
//
// 返回:
//   - left, top, right, bottom: 包围盒边界
func (c *ColliderComponent) Bounds(t *TransformComponent) (left, top, right, bottom float64) {
	if c.Shape == ShapeCircle {
		cx := t.X + c.OffsetX
		cy := t.Y + c.OffsetY
		return cx - c.Radius, cy - c.Radius, cx + c.Radius, cy + c.Radius
	}
	left = t.X + c.OffsetX
	top = t.Y + c.OffsetY
	return left, top, left + c.Width, top + c.Height
}
