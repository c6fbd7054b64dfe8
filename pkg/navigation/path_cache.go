package navigation

// pathKey 缓存键：字面意义上的起点与终点
type pathKey struct {
	start Point
	end   Point
}

// PathCache 有界路径缓存
//
// 容量满时淘汰最早插入的条目（插入顺序淘汰，不是按使用的 LRU）。
// 由 NavGrid 在失效和重建时整体清空。
type PathCache struct {
	capacity int
	entries  map[pathKey][]Point
	order    []pathKey
}

// NewPathCache 创建路径缓存
// capacity <= 0 时禁用缓存
func NewPathCache(capacity int) *PathCache {
	return &PathCache{
		capacity: capacity,
		entries:  make(map[pathKey][]Point),
		order:    make([]pathKey, 0, max(capacity, 0)),
	}
}

// Get 按起终点查询缓存
func (c *PathCache) Get(start, end Point) ([]Point, bool) {
	path, ok := c.entries[pathKey{start: start, end: end}]
	return path, ok
}

// Put 写入缓存，必要时淘汰最早插入的条目
func (c *PathCache) Put(start, end Point, path []Point) {
	if c.capacity <= 0 {
		return
	}
	key := pathKey{start: start, end: end}
	if _, exists := c.entries[key]; exists {
		c.entries[key] = path
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = path
	c.order = append(c.order, key)
}

// Clear 清空缓存
func (c *PathCache) Clear() {
	if len(c.order) == 0 {
		return
	}
	clear(c.entries)
	c.order = c.order[:0]
}

// Len 当前缓存条目数
func (c *PathCache) Len() int {
	return len(c.order)
}
