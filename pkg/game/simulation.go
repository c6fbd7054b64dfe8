package game

import (
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/decker502/simcore/pkg/config"
	"github.com/decker502/simcore/pkg/ecs"
	"github.com/decker502/simcore/pkg/entities"
	"github.com/decker502/simcore/pkg/navigation"
	"github.com/decker502/simcore/pkg/systems"
)

// Simulation 模拟核心的组装结果
//
// 所有协作者在这里构造一次，然后显式传给需要它们的调用方。
// 只在模拟线程上使用。
type Simulation struct {
	Store      *ecs.EntityManager
	Bus        *ecs.EventBus
	Scheduler  *ecs.Scheduler
	Grid       *navigation.NavGrid
	Pathfinder *navigation.Pathfinder
	Collision  *systems.CollisionSystem
	Driver     *FixedStepDriver

	Map     *config.TileMapConfig
	Catalog *config.AssetCatalog

	logger zerolog.Logger
}

// NewSimulation 按配置组装模拟
//
// 参数:
//   - cfg: 模拟配置
//   - tiles: 瓦片地图
//   - catalog: 资源目录，可为 nil
//   - logger: 根日志记录器
//
// 返回:
//   - *Simulation: 组装好的模拟，已注册移动与碰撞系统
func NewSimulation(cfg *config.SimConfig, tiles *config.TileMapConfig, catalog *config.AssetCatalog, logger zerolog.Logger) *Simulation {
	bus := ecs.NewEventBus()
	store := ecs.NewEntityManager(logger, bus)
	scheduler := ecs.NewScheduler(store, logger)

	collision := systems.NewCollisionSystem(bus, logger)
	scheduler.Register(systems.NewMovementSystem())
	scheduler.Register(collision)

	var assets navigation.AssetMetadata
	if catalog != nil {
		assets = catalog
	}
	grid := navigation.NewNavGrid(tiles, store, assets, navigation.GridOptions{GroundLayer: cfg.GroundLayer}, logger)
	pathfinder := navigation.NewPathfinder(grid, cfg.PathCacheCapacity, logger)

	return &Simulation{
		Store:      store,
		Bus:        bus,
		Scheduler:  scheduler,
		Grid:       grid,
		Pathfinder: pathfinder,
		Collision:  collision,
		Driver:     NewFixedStepDriver(cfg.Step(), cfg.MaxFrameTime, scheduler.Tick),
		Map:        tiles,
		Catalog:    catalog,
		logger:     logger.With().Str("component", "Simulation").Logger(),
	}
}

// LoadSimulation 从配置文件加载地图、资源与场景并组装模拟
//
// 场景中的实体创建后会使导航网格失效。
func LoadSimulation(cfg *config.SimConfig, logger zerolog.Logger) (*Simulation, error) {
	tiles, err := config.LoadTileMapConfig(cfg.MapPath)
	if err != nil {
		return nil, err
	}
	catalog, err := config.LoadAssetCatalog(cfg.AssetsPath)
	if err != nil {
		return nil, err
	}

	sim := NewSimulation(cfg, tiles, catalog, logger)

	if cfg.ScenePath != "" {
		scene, err := config.LoadSceneConfig(cfg.ScenePath)
		if err != nil {
			return nil, err
		}
		if err := sim.Spawn(scene); err != nil {
			return nil, err
		}
	}

	w, h := tiles.Size()
	sim.logger.Info().
		Str("map", cfg.MapPath).
		Int("width", w).
		Int("height", h).
		Int("entities", sim.Store.Count()).
		Msg("simulation loaded")
	return sim, nil
}

// Spawn 创建场景实体并使导航网格失效
func (s *Simulation) Spawn(scene *config.SceneConfig) error {
	_, err := entities.SpawnScene(s.Store, scene, s.Catalog)
	s.Grid.Invalidate()
	if err != nil {
		return eris.Wrap(err, "failed to spawn scene")
	}
	return nil
}

// Advance 推进真实流逝的时间，返回执行的 tick 数
func (s *Simulation) Advance(elapsed float64) int {
	return s.Driver.Advance(elapsed)
}
