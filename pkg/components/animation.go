package components

// AnimationComponent 记录实体当前播放的动画
// 具体帧播放由外部渲染层负责，这里只保留导航网格需要的动画名
type AnimationComponent struct {
	CurrentAnim string
	IsLooping   bool
}

// ComponentName 实现 ecs.Component
func (*AnimationComponent) ComponentName() string { return AnimationName }
