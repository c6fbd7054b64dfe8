// Package logging 构建模拟使用的根 zerolog 日志记录器
//
// 根记录器由 main 创建一次，然后显式传入每个子系统的构造函数，
// 子系统再派生带 component 字段的子记录器。不使用全局记录器。
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/decker502/simcore/pkg/config"
)

// Options 日志选项
type Options struct {
	// Level zerolog 级别名，无法解析时使用 info
	Level string
	// Verbose 为 false 时级别至少为 warn
	Verbose bool
	// JSON 输出 JSON 而不是彩色控制台格式
	JSON bool
	// Out 输出目标，nil 时为 os.Stderr
	Out io.Writer
}

// FromConfig 从模拟配置构建日志选项
func FromConfig(cfg *config.SimConfig) Options {
	return Options{Level: cfg.LogLevel, Verbose: cfg.Verbose}
}

// New 创建根日志记录器
func New(opts Options) zerolog.Logger {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}
	if !opts.Verbose && level < zerolog.WarnLevel {
		level = zerolog.WarnLevel
	}

	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	var writer io.Writer = out
	if !opts.JSON {
		writer = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.TimeOnly,
			NoColor:    out != os.Stderr && out != os.Stdout,
		}
	}

	return zerolog.New(writer).
		Level(level).
		With().
		Timestamp().
		Logger()
}
