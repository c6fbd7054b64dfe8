package navigation

// TileDef 瓦片定义
type TileDef struct {
	Walkable bool
	Height   int
}

// TileMap 导航网格读取的静态瓦片地图
//
// 瓦片ID为 0 表示该层该格为空。
type TileMap interface {
	// Size 地图尺寸（格）
	Size() (width, height int)
	// TileSize 单个瓦片的像素尺寸
	TileSize() (width, height float64)
	// LayerCount 图层数量
	LayerCount() int
	// LayerName 图层名称
	LayerName(layer int) string
	// LayerVisible 图层是否可见
	LayerVisible(layer int) bool
	// TileAt 指定图层指定格的瓦片ID
	TileAt(layer, x, y int) int
	// TileDef 按瓦片ID查询定义
	TileDef(id int) (TileDef, bool)
}

// AssetMetadata 资源元数据提供者
type AssetMetadata interface {
	// WalkableZones 返回资源的可行走区域
	// animation 非空且该动画声明了区域时优先使用动画区域，否则回退到资源级区域。
	// 第二个返回值表示是否声明了区域（空列表也算声明）。
	WalkableZones(assetID, animation string) ([]Polygon, bool)
	// AccessibleHeight 站在该资源可行走区域上获得的额外高度
	AccessibleHeight(assetID string) int
}
