package components

// SpriteComponent 可渲染足迹
//
// 导航网格只读取这里的几何信息：局部尺寸、资源ID和堆叠顺序。
// 局部坐标原点与 TransformComponent 的 (X, Y) 重合。
type SpriteComponent struct {
	AssetID string  // 资源ID，用于查询可行走区域等元数据
	Width   float64 // 局部宽度（像素）
	Height  float64 // 局部高度（像素）
	ZOrder  int     // 绘制/堆叠顺序，越大越靠上
}

// ComponentName 实现 ecs.Component
func (*SpriteComponent) ComponentName() string { return SpriteName }
