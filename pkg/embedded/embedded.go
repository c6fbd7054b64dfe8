// Package embedded 提供嵌入数据文件的统一访问接口
//
// 由于 Go embed 指令只能嵌入当前包目录及其子目录的文件，
// embed.FS 变量必须声明在项目根目录（embed.go）。
// 本包提供包装函数，让其他包可以按 "data/..." 路径读取配置。
//
// 未调用 Init()，或嵌入的文件系统中没有该文件时，回退到磁盘读取，
// 方便命令行工具和测试直接使用工作目录中的文件。
package embedded

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rotisserie/eris"
)

const dataPrefix = "data/"

var (
	dataFS      fs.FS
	initialized bool
)

// Init 注册嵌入的数据文件系统
// 应在 main() 开始时、任何配置加载之前调用
func Init(data fs.FS) {
	dataFS = data
	initialized = data != nil
}

// Reset 取消注册，之后所有读取都走磁盘
func Reset() {
	dataFS = nil
	initialized = false
}

// IsInitialized 返回是否已注册嵌入文件系统
func IsInitialized() bool {
	return initialized
}

// normalize 统一路径分隔符并去掉 "./" 前缀（embed.FS 使用正斜杠）
func normalize(path string) string {
	path = filepath.ToSlash(path)
	return strings.TrimPrefix(path, "./")
}

// embeddedPath 判断路径是否应从嵌入文件系统读取
func embeddedPath(path string) bool {
	return initialized && strings.HasPrefix(path, dataPrefix)
}

// ReadFile 读取文件内容
//
// 参数:
//   - path: 文件路径；以 "data/" 开头时优先读取嵌入文件
//
// 返回:
//   - []byte: 文件内容
//   - error: 嵌入文件与磁盘文件都不存在时返回错误
func ReadFile(path string) ([]byte, error) {
	path = normalize(path)
	if embeddedPath(path) {
		data, err := fs.ReadFile(dataFS, path)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, eris.Wrapf(err, "failed to read embedded file %s", path)
		}
	}

	data, err := os.ReadFile(filepath.FromSlash(path))
	if err != nil {
		return nil, eris.Wrapf(err, "failed to read file %s", path)
	}
	return data, nil
}

// Exists 检查文件是否存在（嵌入或磁盘）
func Exists(path string) bool {
	path = normalize(path)
	if embeddedPath(path) {
		if _, err := fs.Stat(dataFS, path); err == nil {
			return true
		}
	}
	_, err := os.Stat(filepath.FromSlash(path))
	return err == nil
}

// Glob 匹配文件
// 已初始化且模式以 "data/" 开头时只在嵌入文件系统中匹配，否则匹配磁盘
func Glob(pattern string) ([]string, error) {
	pattern = normalize(pattern)
	if embeddedPath(pattern) {
		matches, err := fs.Glob(dataFS, pattern)
		if err != nil {
			return nil, eris.Wrapf(err, "bad glob pattern %s", pattern)
		}
		return matches, nil
	}

	matches, err := filepath.Glob(filepath.FromSlash(pattern))
	if err != nil {
		return nil, eris.Wrapf(err, "bad glob pattern %s", pattern)
	}
	for i, m := range matches {
		matches[i] = filepath.ToSlash(m)
	}
	return matches, nil
}
