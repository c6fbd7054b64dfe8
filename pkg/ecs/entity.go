package ecs

import (
	"sort"

	"github.com/rs/zerolog"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID
type EntityID uint64

// InvalidEntityID 表示"无实体"
const InvalidEntityID EntityID = 0

// Component 是所有组件的统一接口
//
// 组件只携带数据，不携带行为。
// ComponentName 返回组件的声明名称，作为实体内组件表的查找键，
// 同一实体内名称唯一。
type Component interface {
	ComponentName() string
}

// Entity 实体：稳定ID + 按名称索引的组件集合
type Entity struct {
	ID     EntityID
	Active bool

	components map[string]Component
	logger     *zerolog.Logger
}

// NewEntity 创建一个游离实体（尚未加入 EntityManager）
// 主要用于反序列化后通过 EntityManager.Add 重新挂入世界
func NewEntity(id EntityID) *Entity {
	nop := zerolog.Nop()
	return &Entity{
		ID:         id,
		Active:     true,
		components: make(map[string]Component),
		logger:     &nop,
	}
}

// AddComponent 为实体添加组件
// 同名组件已存在时覆盖旧组件，并记录一条警告；nil 组件被忽略
//
// 返回:
//   - bool: true 表示覆盖了已有组件
func (e *Entity) AddComponent(c Component) bool {
	if c == nil {
		e.logger.Warn().
			Uint64("entity", uint64(e.ID)).
			Msg("nil component ignored")
		return false
	}
	name := c.ComponentName()
	_, replaced := e.components[name]
	if replaced {
		e.logger.Warn().
			Uint64("entity", uint64(e.ID)).
			Str("component_name", name).
			Msg("component already attached, overwriting")
	}
	e.components[name] = c
	return replaced
}

// RemoveComponent 按名称移除组件，返回是否真的移除了
func (e *Entity) RemoveComponent(name string) bool {
	if _, ok := e.components[name]; !ok {
		return false
	}
	delete(e.components, name)
	return true
}

// HasComponent 检查实体是否拥有指定名称的组件
func (e *Entity) HasComponent(name string) bool {
	_, ok := e.components[name]
	return ok
}

// HasComponents 检查实体是否拥有全部指定名称的组件
func (e *Entity) HasComponents(names ...string) bool {
	for _, name := range names {
		if _, ok := e.components[name]; !ok {
			return false
		}
	}
	return true
}

// Component 按名称获取组件
func (e *Entity) Component(name string) (Component, bool) {
	c, ok := e.components[name]
	return c, ok
}

// ComponentNames 返回实体已挂载的组件名称（按字典序）
func (e *Entity) ComponentNames() []string {
	names := make([]string, 0, len(e.components))
	for name := range e.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetComponent 按名称获取组件并断言为具体类型
//
// 查找严格按声明名称进行；名称存在但类型不符时视为未找到。
//
// 参数:
//   - e: 实体
//   - name: 组件名称（如 components.TransformName）
//
// 返回:
//   - T: 组件实例
//   - bool: 是否找到
func GetComponent[T Component](e *Entity, name string) (T, bool) {
	var zero T
	if e == nil {
		return zero, false
	}
	c, ok := e.components[name]
	if !ok {
		return zero, false
	}
	typed, ok := c.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}
