package embedded

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"data/sim.yaml":       {Data: []byte("tps: 60\n")},
		"data/maps/demo.yaml": {Data: []byte("width: 4\n")},
		"data/maps/two.yaml":  {Data: []byte("width: 2\n")},
	}
}

// chdir 切换到临时目录，测试结束后恢复
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestInitAndReset(t *testing.T) {
	t.Cleanup(Reset)

	Reset()
	assert.False(t, IsInitialized())

	Init(testFS())
	assert.True(t, IsInitialized())

	Init(nil)
	assert.False(t, IsInitialized())
}

func TestReadFileFromEmbedded(t *testing.T) {
	t.Cleanup(Reset)
	Init(testFS())

	data, err := ReadFile("./data/sim.yaml")
	require.NoError(t, err)
	assert.Equal(t, "tps: 60\n", string(data))
	assert.True(t, Exists("data/maps/demo.yaml"))
}

func TestReadFileFallsBackToDisk(t *testing.T) {
	t.Cleanup(Reset)
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "data"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data", "local.yaml"), []byte("x: 1\n"), 0o644))

	// 未初始化：直接读磁盘
	Reset()
	data, err := ReadFile("data/local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", string(data))

	// 已初始化但嵌入文件系统中没有该文件：回退到磁盘
	Init(testFS())
	data, err = ReadFile("data/local.yaml")
	require.NoError(t, err)
	assert.Equal(t, "x: 1\n", string(data))
	assert.True(t, Exists("data/local.yaml"))
}

func TestReadFileMissing(t *testing.T) {
	t.Cleanup(Reset)
	chdir(t, t.TempDir())
	Init(testFS())

	_, err := ReadFile("data/missing.yaml")
	assert.Error(t, err)
	assert.False(t, Exists("data/missing.yaml"))
}

func TestGlob(t *testing.T) {
	t.Cleanup(Reset)
	Init(testFS())

	matches, err := Glob("data/maps/*.yaml")
	require.NoError(t, err)
	assert.Equal(t, []string{"data/maps/demo.yaml", "data/maps/two.yaml"}, matches)

	_, err = Glob("data/[")
	assert.Error(t, err)
}
