package navigation

import (
	"slices"
	"sort"

	"github.com/rs/zerolog"
)

// DefaultPathCacheCapacity 默认路径缓存容量
const DefaultPathCacheCapacity = 100

// neighbours 四方向邻居：上、下、左、右
var neighbours = [4]Point{
	{X: 0, Y: -1},
	{X: 0, Y: 1},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
}

// PathStats 缓存命中统计
type PathStats struct {
	Hits     int
	Misses   int
	Searches int
}

// Pathfinder 基于导航网格的 A* 寻路
//
// 四方向移动，每步代价为 1，启发函数为曼哈顿距离。
// 开放列表每轮按 cost+heuristic 稳定排序，相等时保持插入顺序，
// 不额外规定平局规则。搜索没有步数上限，也不可取消。
type Pathfinder struct {
	grid   *NavGrid
	cache  *PathCache
	stats  PathStats
	logger zerolog.Logger
}

// NewPathfinder 创建寻路器，并把其缓存挂到网格上
//
// 参数:
//   - grid: 导航网格
//   - cacheCapacity: 路径缓存容量（<= 0 禁用缓存）
//   - logger: 日志记录器
//
// 返回:
//   - *Pathfinder: 寻路器
func NewPathfinder(grid *NavGrid, cacheCapacity int, logger zerolog.Logger) *Pathfinder {
	cache := NewPathCache(cacheCapacity)
	grid.attachCache(cache)
	return &Pathfinder{
		grid:   grid,
		cache:  cache,
		logger: logger.With().Str("component", "Pathfinder").Logger(),
	}
}

// FindPath 计算从 start 到 end 的路径（含首尾）
//
// 参数:
//   - start: 起点格子
//   - end: 终点格子
//
// 返回:
//   - []Point: 路径；不可达、越界或终点不可行走时为空
func (p *Pathfinder) FindPath(start, end Point) []Point {
	// 先确保网格是最新的：重建会清空缓存，之后才能查缓存
	width, height := p.grid.Size()

	if !inside(start, width, height) || !inside(end, width, height) {
		p.logger.Debug().
			Interface("start", start).
			Interface("end", end).
			Msg("path request out of bounds")
		return nil
	}
	if !p.grid.IsWalkable(end.X, end.Y) {
		p.logger.Debug().Interface("end", end).Msg("path end cell is blocked")
		return nil
	}

	if cached, ok := p.cache.Get(start, end); ok {
		p.stats.Hits++
		return slices.Clone(cached)
	}
	p.stats.Misses++

	path := p.search(start, end, width, height)
	if len(path) == 0 {
		p.logger.Debug().
			Interface("start", start).
			Interface("end", end).
			Msg("no path found")
	}
	p.cache.Put(start, end, path)
	return slices.Clone(path)
}

// Stats 返回缓存统计
func (p *Pathfinder) Stats() PathStats {
	return p.stats
}

// CacheLen 当前缓存的路径数
func (p *Pathfinder) CacheLen() int {
	return p.cache.Len()
}

// pathNode A* 搜索节点
type pathNode struct {
	pos    Point
	cost   int
	heur   int
	parent *pathNode
}

func (n *pathNode) score() int {
	return n.cost + n.heur
}

// search 经典网格 A*
func (p *Pathfinder) search(start, end Point, width, height int) []Point {
	p.stats.Searches++

	closed := make([]bool, width*height)
	inOpen := make([]*pathNode, width*height)

	first := &pathNode{pos: start, heur: manhattan(start, end)}
	open := []*pathNode{first}
	inOpen[start.Y*width+start.X] = first

	for len(open) > 0 {
		sort.SliceStable(open, func(i, j int) bool {
			return open[i].score() < open[j].score()
		})
		current := open[0]
		open = open[1:]

		idx := current.pos.Y*width + current.pos.X
		inOpen[idx] = nil

		if current.pos == end {
			return reconstruct(current)
		}
		closed[idx] = true

		for _, d := range neighbours {
			next := Point{X: current.pos.X + d.X, Y: current.pos.Y + d.Y}
			if !inside(next, width, height) {
				continue
			}
			ni := next.Y*width + next.X
			if closed[ni] || !p.grid.IsWalkable(next.X, next.Y) {
				continue
			}

			cost := current.cost + 1
			if existing := inOpen[ni]; existing != nil {
				if cost < existing.cost {
					existing.cost = cost
					existing.parent = current
				}
				continue
			}

			node := &pathNode{pos: next, cost: cost, heur: manhattan(next, end), parent: current}
			open = append(open, node)
			inOpen[ni] = node
		}
	}
	return nil
}

// reconstruct 沿父节点回溯并反转
func reconstruct(n *pathNode) []Point {
	path := make([]Point, 0, n.cost+1)
	for ; n != nil; n = n.parent {
		path = append(path, n.pos)
	}
	slices.Reverse(path)
	return path
}

func manhattan(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

func inside(pt Point, width, height int) bool {
	return pt.X >= 0 && pt.X < width && pt.Y >= 0 && pt.Y < height
}
