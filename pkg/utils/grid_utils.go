package utils

import "math"

// GridLayout 网格在世界坐标中的布局
type GridLayout struct {
	OriginX    float64 // 网格左上角的世界X坐标
	OriginY    float64 // 网格左上角的世界Y坐标
	CellWidth  float64 // 每格宽度
	CellHeight float64 // 每格高度
	Columns    int     // 列数
	Rows       int     // 行数
}

// NewGridLayout 以世界原点为网格原点创建布局
func NewGridLayout(columns, rows int, cellWidth, cellHeight float64) GridLayout {
	return GridLayout{
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Columns:    columns,
		Rows:       rows,
	}
}

// WorldToCell 将世界坐标转换为网格坐标
// 参数:
//   - x, y: 世界坐标
//
// 返回:
//   - col: 列索引
//   - row: 行索引
//   - isValid: 是否在网格范围内
func (g GridLayout) WorldToCell(x, y float64) (col, row int, isValid bool) {
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return 0, 0, false
	}

	gridEndX := g.OriginX + float64(g.Columns)*g.CellWidth
	gridEndY := g.OriginY + float64(g.Rows)*g.CellHeight
	if x < g.OriginX || x >= gridEndX || y < g.OriginY || y >= gridEndY {
		return 0, 0, false
	}

	col = int(math.Floor((x - g.OriginX) / g.CellWidth))
	row = int(math.Floor((y - g.OriginY) / g.CellHeight))

	// 边界检查（防止浮点数计算误差导致的越界）
	col = min(max(col, 0), g.Columns-1)
	row = min(max(row, 0), g.Rows-1)
	return col, row, true
}

// CellCenter 将网格坐标转换为格子中心的世界坐标
// 不检查范围，越界的格子同样按布局外推
func (g GridLayout) CellCenter(col, row int) (centerX, centerY float64) {
	centerX = g.OriginX + float64(col)*g.CellWidth + g.CellWidth/2
	centerY = g.OriginY + float64(row)*g.CellHeight + g.CellHeight/2
	return centerX, centerY
}

// CellRect 格子左上角的世界坐标与尺寸
func (g GridLayout) CellRect(col, row int) (x, y, w, h float64) {
	return g.OriginX + float64(col)*g.CellWidth, g.OriginY + float64(row)*g.CellHeight, g.CellWidth, g.CellHeight
}

// Contains 网格坐标是否在范围内
func (g GridLayout) Contains(col, row int) bool {
	return col >= 0 && col < g.Columns && row >= 0 && row < g.Rows
}
