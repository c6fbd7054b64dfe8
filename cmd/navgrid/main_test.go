package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decker502/simcore/pkg/navigation"
)

const testMap = `
width: 4
height: 3
tileWidth: 32
tileHeight: 32
tiles: [{id: 1}, {id: 2, walkable: false}, {id: 3, height: 2}]
legend: {".": 1, "#": 2, "^": 3}
layers:
  - name: ground
    rows: ["..#.", "^.#.", "...."]
`

func writeFixtures(t *testing.T) (mapPath, assetsPath string) {
	t.Helper()
	dir := t.TempDir()
	mapPath = filepath.Join(dir, "map.yaml")
	assetsPath = filepath.Join(dir, "assets.yaml")
	require.NoError(t, os.WriteFile(mapPath, []byte(testMap), 0o644))
	require.NoError(t, os.WriteFile(assetsPath, []byte("assets: []\n"), 0o644))
	return mapPath, assetsPath
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	mapPath, assetsPath := writeFixtures(t)
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--map", mapPath, "--assets", assetsPath, "--scene", ""))
	err := cmd.Execute()
	return out.String(), err
}

func TestShowCommand(t *testing.T) {
	out, err := run(t, "show")
	require.NoError(t, err)
	assert.Equal(t, "..#.\n..#.\n....\n", out)
}

func TestShowHeights(t *testing.T) {
	out, err := run(t, "show", "--heights")
	require.NoError(t, err)
	assert.Equal(t, "00#0\n20#0\n0000\n", out)
}

func TestPathCommand(t *testing.T) {
	out, err := run(t, "path", "0,0", "3,0")
	require.NoError(t, err)
	assert.Contains(t, out, "path length 7:")
	assert.Contains(t, out, "S")
	assert.Contains(t, out, "E")
}

func TestPathCommandUnreachable(t *testing.T) {
	out, err := run(t, "path", "0,0", "2,0")
	require.NoError(t, err)
	assert.Contains(t, out, "no path from 0,0 to 2,0")
}

func TestPathCommandBadArgs(t *testing.T) {
	_, err := run(t, "path", "0;0", "1,1")
	assert.Error(t, err)

	_, err = run(t, "path", "0,0")
	assert.Error(t, err)
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 3, 4")
	require.NoError(t, err)
	assert.Equal(t, navigation.Point{X: 3, Y: 4}, p)

	_, err = parsePoint("x,1")
	assert.Error(t, err)
}
