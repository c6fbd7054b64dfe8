package ecs

import "github.com/rs/zerolog"

// EntityManager 管理所有实体和组件
//
// 迭代顺序为插入顺序，All 与 WithComponents 的结果稳定。
// 只在模拟线程上被修改，不可重入，不加锁。
type EntityManager struct {
	nextID uint64
	// 实体查找表: EntityID -> Entity
	entities map[EntityID]*Entity
	// 按插入顺序保存的活跃实体
	order []*Entity

	bus    *EventBus
	logger zerolog.Logger
}

// NewEntityManager 创建一个新的 EntityManager 实例
//
// 参数:
//   - logger: 日志记录器（组件覆盖等警告会写入这里）
//   - bus: 事件总线，可为 nil（不发布生命周期事件）
//
// 返回:
//   - *EntityManager: 实体管理器
func NewEntityManager(logger zerolog.Logger, bus *EventBus) *EntityManager {
	return &EntityManager{
		nextID:   1, // ID从1开始,0保留为无效ID
		entities: make(map[EntityID]*Entity),
		order:    make([]*Entity, 0, 64),
		bus:      bus,
		logger:   logger.With().Str("component", "EntityManager").Logger(),
	}
}

// Create 创建新实体并分配新的ID，发布 EntityCreatedEvent
func (em *EntityManager) Create() *Entity {
	id := EntityID(em.nextID)
	em.nextID++
	e := NewEntity(id)
	em.insert(e)
	return e
}

// CreateWithID 使用调用方提供的ID创建实体（用于反序列化）
//
// 参数:
//   - id: 指定的实体ID（不能为 0）
//
// 返回:
//   - *Entity: 新建的实体；ID已存在时返回已有实体
//   - bool: true 表示新建，false 表示ID无效或已存在
func (em *EntityManager) CreateWithID(id EntityID) (*Entity, bool) {
	if id == InvalidEntityID {
		return nil, false
	}
	if existing, ok := em.entities[id]; ok {
		return existing, false
	}
	e := NewEntity(id)
	em.insert(e)
	return e, true
}

// Add 将外部构造的实体加入存储
// ID已存在时为幂等操作，不替换已有实体
func (em *EntityManager) Add(e *Entity) {
	if e == nil || e.ID == InvalidEntityID {
		return
	}
	if _, ok := em.entities[e.ID]; ok {
		return
	}
	if e.components == nil {
		e.components = make(map[string]Component)
	}
	e.Active = true
	em.insert(e)
}

// Remove 将实体标记为非活跃，并从查找表与迭代列表中移除
// ID不存在时为空操作
func (em *EntityManager) Remove(id EntityID) {
	e, ok := em.entities[id]
	if !ok {
		return
	}
	e.Active = false
	delete(em.entities, id)
	for i, candidate := range em.order {
		if candidate == e {
			em.order = append(em.order[:i], em.order[i+1:]...)
			break
		}
	}
	Publish(em.bus, EntityRemovedEvent{ID: id})
}

// Get 按ID获取实体
func (em *EntityManager) Get(id EntityID) (*Entity, bool) {
	e, ok := em.entities[id]
	return e, ok
}

// All 按插入顺序返回所有活跃实体（副本，调用方可安全修改存储）
func (em *EntityManager) All() []*Entity {
	result := make([]*Entity, len(em.order))
	copy(result, em.order)
	return result
}

// WithComponents 返回拥有全部指定组件的实体（保持插入顺序）
// names 为空时等价于 All
func (em *EntityManager) WithComponents(names ...string) []*Entity {
	result := make([]*Entity, 0)
	for _, e := range em.order {
		if e.HasComponents(names...) {
			result = append(result, e)
		}
	}
	return result
}

// Count 返回活跃实体数量
func (em *EntityManager) Count() int {
	return len(em.order)
}

// Clear 清空存储（加载新世界时使用）
// 已有实体被标记为非活跃；不发布移除事件，ID计数器重置
func (em *EntityManager) Clear() {
	for _, e := range em.order {
		e.Active = false
	}
	em.entities = make(map[EntityID]*Entity)
	em.order = em.order[:0]
	em.nextID = 1
	em.logger.Debug().Msg("entity store cleared")
}

// AddComponent 为指定实体添加组件
// 实体不存在时返回 false
func (em *EntityManager) AddComponent(id EntityID, c Component) bool {
	e, ok := em.entities[id]
	if !ok {
		return false
	}
	e.AddComponent(c)
	return true
}

// RemoveComponent 从指定实体移除组件
func (em *EntityManager) RemoveComponent(id EntityID, name string) bool {
	e, ok := em.entities[id]
	if !ok {
		return false
	}
	return e.RemoveComponent(name)
}

// HasComponent 检查实体是否拥有指定组件
func (em *EntityManager) HasComponent(id EntityID, name string) bool {
	e, ok := em.entities[id]
	if !ok {
		return false
	}
	return e.HasComponent(name)
}

// insert 登记实体并发布创建事件
func (em *EntityManager) insert(e *Entity) {
	e.logger = &em.logger
	em.entities[e.ID] = e
	em.order = append(em.order, e)
	if uint64(e.ID) >= em.nextID {
		em.nextID = uint64(e.ID) + 1
	}
	Publish(em.bus, EntityCreatedEvent{Entity: e})
}
