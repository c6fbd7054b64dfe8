package ecs

import "reflect"

// EventBus 同步的类型化事件总线
//
// 处理函数按订阅顺序在发布者的调用栈内同步执行。
// 与实体存储一样只在模拟线程上使用，不加锁。
type EventBus struct {
	handlers map[reflect.Type][]any
}

// NewEventBus 创建事件总线
func NewEventBus() *EventBus {
	return &EventBus{
		handlers: make(map[reflect.Type][]any),
	}
}

// Subscribe 订阅类型为 T 的事件
func Subscribe[T any](bus *EventBus, handler func(T)) {
	if bus == nil {
		return
	}
	t := reflect.TypeFor[T]()
	bus.handlers[t] = append(bus.handlers[t], handler)
}

// Publish 向所有订阅了类型 T 的处理函数广播事件
// bus 为 nil 时静默忽略
func Publish[T any](bus *EventBus, event T) {
	if bus == nil {
		return
	}
	for _, h := range bus.handlers[reflect.TypeFor[T]()] {
		h.(func(T))(event)
	}
}

// EntityCreatedEvent 实体创建或加入存储后发布
type EntityCreatedEvent struct {
	Entity *Entity
}

// EntityRemovedEvent 实体从存储移除后发布
type EntityRemovedEvent struct {
	ID EntityID
}
