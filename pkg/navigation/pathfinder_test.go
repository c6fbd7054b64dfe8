package navigation

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPathfinder(tiles TileMap, capacity int) (*NavGrid, *Pathfinder) {
	grid := NewNavGrid(tiles, nil, nil, GridOptions{}, zerolog.Nop())
	return grid, NewPathfinder(grid, capacity, zerolog.Nop())
}

// assertValidPath 检查路径首尾、相邻性与可行走性
func assertValidPath(t *testing.T, grid *NavGrid, path []Point, start, end Point) {
	t.Helper()
	require.NotEmpty(t, path)
	assert.Equal(t, start, path[0])
	assert.Equal(t, end, path[len(path)-1])
	for i, p := range path {
		assert.True(t, grid.IsWalkable(p.X, p.Y), "step %d %v must be walkable", i, p)
		if i > 0 {
			assert.Equal(t, 1, manhattan(path[i-1], p), "step %d must be 4-adjacent", i)
		}
	}
}

// bfsDistance 参考实现：广度优先求最短步数，不可达返回 -1
func bfsDistance(grid *NavGrid, start, end Point) int {
	w, h := grid.Size()
	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	dist[start.Y*w+start.X] = 0
	queue := []Point{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == end {
			return dist[cur.Y*w+cur.X]
		}
		for _, d := range neighbours {
			n := Point{cur.X + d.X, cur.Y + d.Y}
			if !inside(n, w, h) || !grid.IsWalkable(n.X, n.Y) || dist[n.Y*w+n.X] >= 0 {
				continue
			}
			dist[n.Y*w+n.X] = dist[cur.Y*w+cur.X] + 1
			queue = append(queue, n)
		}
	}
	return -1
}

func TestFindPathOpenGrid(t *testing.T) {
	tiles := newTestMap(
		"..........",
		"..........",
		"..........",
		"..........",
		"..........",
	)
	grid, pf := newTestPathfinder(tiles, DefaultPathCacheCapacity)

	start, end := Point{0, 0}, Point{9, 4}
	path := pf.FindPath(start, end)

	assertValidPath(t, grid, path, start, end)
	// 平局时的具体路线依赖开放列表的插入顺序，这里只断言长度
	assert.Len(t, path, manhattan(start, end)+1)
}

func TestFindPathSameCell(t *testing.T) {
	_, pf := newTestPathfinder(newTestMap("..."), 10)
	assert.Equal(t, []Point{{1, 0}}, pf.FindPath(Point{1, 0}, Point{1, 0}))
}

func TestFindPathInvalidInput(t *testing.T) {
	tiles := newTestMap(
		"..#",
		"...",
	)
	_, pf := newTestPathfinder(tiles, 10)

	tests := []struct {
		name       string
		start, end Point
	}{
		{name: "start out of bounds", start: Point{-1, 0}, end: Point{1, 1}},
		{name: "end out of bounds", start: Point{0, 0}, end: Point{3, 0}},
		{name: "end blocked", start: Point{0, 0}, end: Point{2, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Empty(t, pf.FindPath(tt.start, tt.end))
		})
	}
	assert.Equal(t, 0, pf.CacheLen(), "rejected requests are not cached")
}

func TestFindPathWallSeparatesCorridors(t *testing.T) {
	tiles := newTestMap(
		".....",
		"#####",
		".....",
	)
	_, pf := newTestPathfinder(tiles, 10)

	assert.Empty(t, pf.FindPath(Point{0, 0}, Point{4, 2}))
	assert.Empty(t, pf.FindPath(Point{2, 0}, Point{2, 2}))
}

func TestFindPathTakesDetour(t *testing.T) {
	tiles := newTestMap(
		".....",
		"####.",
		".....",
	)
	grid, pf := newTestPathfinder(tiles, 10)

	start, end := Point{0, 0}, Point{0, 2}
	path := pf.FindPath(start, end)

	assertValidPath(t, grid, path, start, end)
	assert.Len(t, path, 11)
	assert.Contains(t, path, Point{4, 1})
}

func TestFindPathIsShortest(t *testing.T) {
	tiles := newTestMap(
		"..........",
		".########.",
		".#......#.",
		".#.####.#.",
		".#.#..#.#.",
		".#.#.##.#.",
		".#.#....#.",
		".#.######.",
		".#........",
		"...#######",
	)
	grid, pf := newTestPathfinder(tiles, 10)

	queries := [][2]Point{
		{{0, 0}, {4, 4}},
		{{9, 0}, {2, 2}},
		{{0, 9}, {9, 8}},
		{{5, 2}, {0, 0}},
	}
	for _, q := range queries {
		want := bfsDistance(grid, q[0], q[1])
		path := pf.FindPath(q[0], q[1])
		if want < 0 {
			assert.Empty(t, path, "%v -> %v", q[0], q[1])
			continue
		}
		assertValidPath(t, grid, path, q[0], q[1])
		assert.Len(t, path, want+1, "%v -> %v", q[0], q[1])
	}
}

func TestFindPathBlockedStartStillSearches(t *testing.T) {
	tiles := newTestMap("#..")
	_, pf := newTestPathfinder(tiles, 10)

	assert.Equal(t, []Point{{0, 0}, {1, 0}, {2, 0}}, pf.FindPath(Point{0, 0}, Point{2, 0}))
}

func TestFindPathCacheConsistency(t *testing.T) {
	tiles := newTestMap(
		"......",
		".##...",
		"......",
	)
	_, pf := newTestPathfinder(tiles, 10)

	first := pf.FindPath(Point{0, 0}, Point{5, 2})
	second := pf.FindPath(Point{0, 0}, Point{5, 2})

	assert.Equal(t, first, second)
	assert.Equal(t, PathStats{Hits: 1, Misses: 1, Searches: 1}, pf.Stats())

	// 调用方修改返回值不会污染缓存
	second[0] = Point{99, 99}
	assert.Equal(t, first, pf.FindPath(Point{0, 0}, Point{5, 2}))
}

func TestFindPathCachesUnreachable(t *testing.T) {
	_, pf := newTestPathfinder(newTestMap(".#."), 10)

	assert.Empty(t, pf.FindPath(Point{0, 0}, Point{2, 0}))
	assert.Empty(t, pf.FindPath(Point{0, 0}, Point{2, 0}))
	assert.Equal(t, 1, pf.Stats().Searches)
	assert.Equal(t, 1, pf.Stats().Hits)
}

func TestFindPathCacheEvictsOldest(t *testing.T) {
	_, pf := newTestPathfinder(newTestMap("....."), 2)

	pf.FindPath(Point{0, 0}, Point{1, 0})
	pf.FindPath(Point{0, 0}, Point{2, 0})
	pf.FindPath(Point{0, 0}, Point{3, 0})
	assert.Equal(t, 2, pf.CacheLen())

	// 最早插入的条目已被淘汰
	pf.FindPath(Point{0, 0}, Point{1, 0})
	assert.Equal(t, 4, pf.Stats().Misses)

	// 最近插入的条目仍在
	pf.FindPath(Point{0, 0}, Point{3, 0})
	assert.Equal(t, 1, pf.Stats().Hits)
}

func TestFindPathCacheDisabled(t *testing.T) {
	_, pf := newTestPathfinder(newTestMap("..."), 0)

	pf.FindPath(Point{0, 0}, Point{2, 0})
	pf.FindPath(Point{0, 0}, Point{2, 0})
	assert.Equal(t, 0, pf.CacheLen())
	assert.Equal(t, 2, pf.Stats().Searches)
}

func TestFindPathReflectsInvalidatedGrid(t *testing.T) {
	tiles := newTestMap(
		".....",
		"####.",
		".....",
	)
	grid, pf := newTestPathfinder(tiles, 10)

	start, end := Point{0, 0}, Point{0, 2}
	before := pf.FindPath(start, end)
	require.Len(t, before, 11)

	// 堵住唯一的通道
	tiles.set(0, 4, 1, 2)

	// 脏标记是建议性的：未失效前仍返回旧结果
	assert.Equal(t, before, pf.FindPath(start, end))

	grid.Invalidate()
	assert.Equal(t, 0, pf.CacheLen(), "invalidate clears the path cache")
	assert.Empty(t, pf.FindPath(start, end))

	// 打开一条更短的通道
	tiles.set(0, 0, 1, 1)
	grid.Invalidate()
	after := pf.FindPath(start, end)
	assertValidPath(t, grid, after, start, end)
	assert.Len(t, after, 3)
}

func TestFindPathReflectsEntityOverrides(t *testing.T) {
	tiles := newTestMap(
		"......",
	)
	store := newTestStore()
	assets := testAssets{"boulder": {zones: []Polygon{}, declared: true}}
	grid := NewNavGrid(tiles, store, assets, GridOptions{}, zerolog.Nop())
	pf := NewPathfinder(grid, 10, zerolog.Nop())

	require.Len(t, pf.FindPath(Point{0, 0}, Point{5, 0}), 6)

	spawnFootprint(store, "boulder", 64, 0, 32, 32, 0, 0)
	grid.Invalidate()

	assert.Empty(t, pf.FindPath(Point{0, 0}, Point{5, 0}))
	assert.False(t, grid.IsWalkable(2, 0))
}

func TestRebuildClearsEveryAttachedCache(t *testing.T) {
	grid, a := newTestPathfinder(newTestMap("...."), 10)
	b := NewPathfinder(grid, 10, zerolog.Nop())

	a.FindPath(Point{0, 0}, Point{3, 0})
	b.FindPath(Point{0, 0}, Point{2, 0})
	require.Equal(t, 1, a.CacheLen())
	require.Equal(t, 1, b.CacheLen())

	grid.Rebuild()
	assert.Equal(t, 0, a.CacheLen())
	assert.Equal(t, 0, b.CacheLen())
}

func BenchmarkFindPath_64x64(b *testing.B) {
	rows := make([]string, 64)
	for y := range rows {
		row := make([]byte, 64)
		for x := range row {
			row[x] = '.'
			if x == 32 && y < 60 {
				row[x] = '#'
			}
		}
		rows[y] = string(row)
	}
	_, pf := newTestPathfinder(newTestMap(rows...), 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pf.FindPath(Point{0, 0}, Point{63, 0})
	}
}

func BenchmarkNavGridRebuild(b *testing.B) {
	rows := make([]string, 64)
	for y := range rows {
		row := make([]byte, 64)
		for x := range row {
			row[x] = '.'
		}
		rows[y] = string(row)
	}
	store := newTestStore()
	assets := testAssets{"crate": {zones: []Polygon{rect(0, 0, 16, 16)}, declared: true}}
	for i := 0; i < 200; i++ {
		spawnFootprint(store, "crate", float64(i%60)*32, float64(i/60)*32, 64, 64, float64(i%4)*30, i%5)
	}
	grid := NewNavGrid(newTestMap(rows...), store, assets, GridOptions{}, zerolog.Nop())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		grid.Rebuild()
	}
}
