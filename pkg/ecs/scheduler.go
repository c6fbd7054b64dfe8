package ecs

import (
	"slices"
	"sort"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// System 每个 tick 被调度的处理器
//
// 系统在 tick 之间不保存实体状态；调度器每个 tick 根据
// RequiredComponents 提供过滤后的实体视图。
type System interface {
	// Name 系统名称，用于日志定位
	Name() string
	// Priority 数值越小越先运行
	Priority() int
	// RequiredComponents 需要的组件名称；为空表示接收全部实体
	RequiredComponents() []string
	// Update 处理一个 tick
	Update(entities []*Entity, deltaTime float64) error
}

// Scheduler 按优先级有序地驱动所有系统
//
// 单线程、逐帧推进。单个系统的错误或 panic 会被捕获并记录，
// 不会阻止同一 tick 内后续系统运行。
type Scheduler struct {
	store   *EntityManager
	systems []System
	ticks   uint64
	logger  zerolog.Logger
}

// NewScheduler 创建系统调度器
//
// 参数:
//   - store: 实体存储，用于为每个系统计算候选实体集合
//   - logger: 日志记录器
//
// 返回:
//   - *Scheduler: 调度器实例
func NewScheduler(store *EntityManager, logger zerolog.Logger) *Scheduler {
	return &Scheduler{
		store:   store,
		systems: make([]System, 0, 16),
		logger:  logger.With().Str("component", "Scheduler").Logger(),
	}
}

// Register 注册系统并按优先级升序重新排序
// 相同优先级保持注册顺序（稳定排序）；tick 进行中注册的系统从下一个 tick 开始运行
func (s *Scheduler) Register(system System) {
	systems := append(slices.Clone(s.systems), system)
	sort.SliceStable(systems, func(i, j int) bool {
		return systems[i].Priority() < systems[j].Priority()
	})
	s.systems = systems
	s.logger.Debug().
		Str("system", system.Name()).
		Int("priority", system.Priority()).
		Msg("system registered")
}

// Remove 按引用移除系统，返回是否找到
// tick 进行中调用时从下一个 tick 开始生效
func (s *Scheduler) Remove(system System) bool {
	i := slices.Index(s.systems, system)
	if i < 0 {
		return false
	}
	s.systems = slices.Delete(slices.Clone(s.systems), i, i+1)
	return true
}

// Systems 返回当前按运行顺序排列的系统列表（副本）
func (s *Scheduler) Systems() []System {
	result := make([]System, len(s.systems))
	copy(result, s.systems)
	return result
}

// TickCount 返回已执行的 tick 数
func (s *Scheduler) TickCount() uint64 {
	return s.ticks
}

// Tick 推进一个模拟步
//
// 参数:
//   - deltaTime: 本步时长（秒）
func (s *Scheduler) Tick(deltaTime float64) {
	s.ticks++
	// 本 tick 的运行列表在开始时固定，系统内的注册或移除不影响当前循环
	systems := s.systems
	for _, system := range systems {
		var entities []*Entity
		if required := system.RequiredComponents(); len(required) == 0 {
			entities = s.store.All()
		} else {
			entities = s.store.WithComponents(required...)
		}

		if err := s.runSystem(system, entities, deltaTime); err != nil {
			s.logger.Error().
				Err(err).
				Str("system", system.Name()).
				Uint64("tick", s.ticks).
				Msg("system update failed")
		}
	}
}

// runSystem 执行单个系统，把 panic 转成错误
func (s *Scheduler) runSystem(system System, entities []*Entity, deltaTime float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = eris.Errorf("system %s panicked: %v", system.Name(), r)
		}
	}()

	if err := system.Update(entities, deltaTime); err != nil {
		return eris.Wrapf(err, "system %s generated an error", system.Name())
	}
	return nil
}
