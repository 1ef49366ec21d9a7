package scene

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample2D = `
dimension: "2d"
max_reflection_order: 2
bucket_size: 8
walls:
  - id: 0
    p1: {x: 0, y: 0}
    p2: {x: 100, y: 0}
  - id: 1
    p1: {x: 100, y: 0}
    p2: {x: 100, y: 100}
  - id: 2
    p1: {x: 100, y: 100}
    p2: {x: 0, y: 100}
  - id: 3
    p1: {x: 0, y: 100}
    p2: {x: 0, y: 0}
source: {x: 50, y: 50}
listener: {x: 60, y: 60}
`

const sample3D = `
dimension: "3d"
max_reflection_order: 1
bucket_size: 16
polygons:
  - id: 0
    vertices:
      - {x: 0, y: 0, z: 0}
      - {x: 0, y: 8, z: 0}
      - {x: 0, y: 8, z: 3}
      - {x: 0, y: 0, z: 3}
  - id: 1
    vertices:
      - {x: 10, y: 8, z: 0}
      - {x: 10, y: 0, z: 0}
      - {x: 10, y: 0, z: 3}
      - {x: 10, y: 8, z: 3}
  - id: 2
    vertices:
      - {x: 10, y: 0, z: 0}
      - {x: 0, y: 0, z: 0}
      - {x: 0, y: 0, z: 3}
      - {x: 10, y: 0, z: 3}
  - id: 3
    vertices:
      - {x: 0, y: 8, z: 0}
      - {x: 10, y: 8, z: 0}
      - {x: 10, y: 8, z: 3}
      - {x: 0, y: 8, z: 3}
  - id: 4
    vertices:
      - {x: 0, y: 8, z: 0}
      - {x: 0, y: 0, z: 0}
      - {x: 10, y: 0, z: 0}
      - {x: 10, y: 8, z: 0}
  - id: 5
    vertices:
      - {x: 0, y: 0, z: 3}
      - {x: 0, y: 8, z: 3}
      - {x: 10, y: 8, z: 3}
      - {x: 10, y: 0, z: 3}
source: {x: 5, y: 4, z: 1.5}
listener: {x: 3, y: 3, z: 1.2}
`

func writeScene(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadAndBuild2DScene(t *testing.T) {
	path := writeScene(t, sample2D)
	sc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2d", sc.Dimension)
	assert.Equal(t, 2, sc.MaxReflectionOrder)
	assert.Len(t, sc.Walls, 4)

	room, err := sc.Build()
	require.NoError(t, err)

	listener := sc.ListenerPoint()
	paths, err := room.GetPaths(&listener)
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}

func TestLoadAndBuild3DScene(t *testing.T) {
	path := writeScene(t, sample3D)
	sc, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3d", sc.Dimension)
	assert.Len(t, sc.Polygons, 6)

	room, err := sc.Build()
	require.NoError(t, err)

	listener := sc.ListenerPoint()
	paths, err := room.GetPaths(&listener)
	require.NoError(t, err)
	assert.NotEmpty(t, paths)
}

func TestLoadRejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestBuildRejectsUnknownDimension(t *testing.T) {
	sc := &Scene{Dimension: "4d"}
	_, err := sc.Build()
	require.ErrorIs(t, err, ErrUnknownDimension)
}
