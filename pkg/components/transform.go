package components

// TransformComponent 实体在世界空间中的位置与旋转
//
// X/Y 为实体局部原点（左上角）的世界坐标，单位像素。
// Rotation 为绕局部原点的旋转角度，单位度，顺时针为正（屏幕坐标系 Y 轴向下）。
type TransformComponent struct {
	X        float64
	Y        float64
	Rotation float64
}

// ComponentName 实现 ecs.Component
func (*TransformComponent) ComponentName() string { return TransformName }
