package navigation

import "math"

// Vec2 二维向量（像素坐标）
type Vec2 struct {
	X, Y float64
}

// Polygon 多边形顶点序列，位于资源的局部像素空间
// 首尾自动闭合，不需要重复第一个顶点
type Polygon []Vec2

// Point 网格坐标
type Point struct {
	X, Y int
}

// Rotate 绕原点旋转向量
//
// 参数:
//   - degrees: 旋转角度（度），屏幕坐标系下顺时针为正
func (v Vec2) Rotate(degrees float64) Vec2 {
	if degrees == 0 {
		return v
	}
	rad := degrees * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Contains 判断点是否位于多边形内部（射线法，奇偶规则）
// 少于3个顶点的多边形不包含任何点
func (p Polygon) Contains(pt Vec2) bool {
	n := len(p)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		a, b := p[i], p[j]
		if (a.Y > pt.Y) != (b.Y > pt.Y) {
			xCross := (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y) + a.X
			if pt.X < xCross {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// anyContains 判断点是否位于任一多边形内（多边形并集）
func anyContains(zones []Polygon, pt Vec2) bool {
	for _, zone := range zones {
		if zone.Contains(pt) {
			return true
		}
	}
	return false
}
