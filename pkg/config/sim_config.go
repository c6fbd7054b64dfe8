package config

import (
	envconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/decker502/simcore/pkg/embedded"
)

// DefaultSimConfigPath 默认模拟配置文件路径
const DefaultSimConfigPath = "data/sim.yaml"

// SimConfig 模拟运行配置
//
// 配置文件位置: data/sim.yaml
// 每个字段都可以被同名的 SIMCORE_* 环境变量覆盖。
type SimConfig struct {
	// TPS 固定步长模拟的每秒 tick 数
	TPS int `yaml:"tps" config:"SIMCORE_TPS"`

	// MaxFrameTime 单帧最多推进的时间（秒），超出部分丢弃
	MaxFrameTime float64 `yaml:"maxFrameTime" config:"SIMCORE_MAX_FRAME_TIME"`

	// PathCacheCapacity 寻路缓存容量（<= 0 禁用缓存）
	PathCacheCapacity int `yaml:"pathCacheCapacity" config:"SIMCORE_PATH_CACHE_CAPACITY"`

	// GroundLayer 读取瓦片高度的图层名
	GroundLayer string `yaml:"groundLayer" config:"SIMCORE_GROUND_LAYER"`

	// MapPath 瓦片地图文件
	MapPath string `yaml:"mapPath" config:"SIMCORE_MAP_PATH"`
	// AssetsPath 资源目录文件
	AssetsPath string `yaml:"assetsPath" config:"SIMCORE_ASSETS_PATH"`
	// ScenePath 初始实体摆放文件，可为空
	ScenePath string `yaml:"scenePath" config:"SIMCORE_SCENE_PATH"`

	// LogLevel zerolog 日志级别（debug/info/warn/error）
	LogLevel string `yaml:"logLevel" config:"SIMCORE_LOG_LEVEL"`
	// Verbose 为 false 时日志级别至少为 warn
	Verbose bool `yaml:"verbose" config:"SIMCORE_VERBOSE"`
	// DebugOverlay 绘制导航网格与碰撞盒
	DebugOverlay bool `yaml:"debugOverlay" config:"SIMCORE_DEBUG_OVERLAY"`
}

// DefaultSimConfig 返回默认配置
func DefaultSimConfig() SimConfig {
	return SimConfig{
		TPS:               60,
		MaxFrameTime:      0.25,
		PathCacheCapacity: 100,
		GroundLayer:       "ground",
		MapPath:           "data/maps/demo.yaml",
		AssetsPath:        "data/assets.yaml",
		ScenePath:         "data/scene.yaml",
		LogLevel:          "info",
	}
}

// LoadSimConfig 加载模拟配置
//
// 先以默认值为基础解析 YAML，再用环境变量覆盖，最后校验。
//
// 参数:
//   - path: 配置文件路径（如 "data/sim.yaml"）
//
// 返回:
//   - *SimConfig: 加载成功后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadSimConfig(path string) (*SimConfig, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "failed to read sim config")
	}

	cfg := DefaultSimConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, eris.Wrapf(err, "failed to parse sim config %s", path)
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, eris.Wrap(err, "invalid sim config")
	}
	return &cfg, nil
}

// ApplyEnv 用 SIMCORE_* 环境变量覆盖配置
// 未设置的变量保持原值
func (c *SimConfig) ApplyEnv() error {
	if err := envconfig.FromEnv().To(c); err != nil {
		return eris.Wrap(err, "failed to apply environment overrides")
	}
	return nil
}

// Validate 验证配置有效性
func (c *SimConfig) Validate() error {
	if c.TPS <= 0 {
		return eris.Errorf("tps must be positive, got %d", c.TPS)
	}
	if c.MaxFrameTime <= 0 {
		return eris.Errorf("maxFrameTime must be positive, got %.3f", c.MaxFrameTime)
	}
	if c.MaxFrameTime < c.Step() {
		return eris.Errorf("maxFrameTime %.3f is shorter than one tick (%.3f)", c.MaxFrameTime, c.Step())
	}
	if c.MapPath == "" {
		return eris.New("mapPath is required")
	}
	if c.AssetsPath == "" {
		return eris.New("assetsPath is required")
	}
	return nil
}

// Step 单个 tick 的时长（秒）
func (c *SimConfig) Step() float64 {
	return 1.0 / float64(c.TPS)
}
