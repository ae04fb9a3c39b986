package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"primscene/internal/shape"
)

const twoShapes = `
cameraData: {position: [0, 0, 5], look: [0, 0, -1], up: [0, 1, 0], heightAngle: 45}
root:
  primitives: [{type: sphere}]
  children:
    - translate: [2, 0, 0]
      primitives: [{type: cube}, {type: sphere}]
      lights: [{id: 1, type: point, color: [1, 1, 1]}]
`

func writeScene(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
	return path
}

func TestSceneChanged(t *testing.T) {
	s := New(nil, Settings{Param1: 5, Param2: 5})
	require.NoError(t, s.SceneChanged(writeScene(t, twoShapes)))

	data := s.Data()
	assert.Len(t, data.Shapes, 3)
	assert.Len(t, data.Lights, 1)

	sphere, ok := s.Mesh(shape.Sphere)
	require.True(t, ok)
	assert.Equal(t, 6*5*5, sphere.VertexCount())

	box, ok := s.Mesh(shape.Box)
	require.True(t, ok)
	assert.Equal(t, 6*5*5*6, box.VertexCount())

	_, ok = s.Mesh(shape.Cone)
	assert.False(t, ok)
}

func TestSceneChangedKeepsPreviousOnError(t *testing.T) {
	s := New(nil, Settings{Param1: 2, Param2: 3})
	good := writeScene(t, twoShapes)
	require.NoError(t, s.SceneChanged(good))

	bad := writeScene(t, "root: {primitives: [{type: teapot}]}")
	err := s.SceneChanged(bad)
	require.Error(t, err)

	assert.Equal(t, good, s.Path())
	assert.Len(t, s.Data().Shapes, 3)
	_, ok := s.Mesh(shape.Sphere)
	assert.True(t, ok)
}

func TestSettingsChangedClampsAndRebuilds(t *testing.T) {
	cache := shape.NewCache(shape.PolicyInvalidate)
	s := New(cache, Settings{Param1: 1, Param2: 1})
	require.NoError(t, s.SceneChanged(writeScene(t, twoShapes)))

	sphere, _ := s.Mesh(shape.Sphere)
	assert.Equal(t, 6*2*3, sphere.VertexCount())

	s.SettingsChanged(Settings{Param1: 4, Param2: 0})
	assert.Equal(t, Settings{Param1: 4, Param2: 0}, s.Settings())

	sphere, _ = s.Mesh(shape.Sphere)
	assert.Equal(t, 6*4*3, sphere.VertexCount())
	box, _ := s.Mesh(shape.Box)
	assert.Equal(t, 6*4*4*6, box.VertexCount())
}

func TestDrawCalls(t *testing.T) {
	s := New(nil, Settings{Param1: 3, Param2: 4})
	require.NoError(t, s.SceneChanged(writeScene(t, twoShapes)))

	calls := s.DrawCalls()
	require.Len(t, calls, 3)

	want := []shape.Type{shape.Sphere, shape.Box, shape.Sphere}
	total := 0
	for i, c := range calls {
		assert.Equal(t, want[i], c.Shape.Primitive.Type)
		assert.Equal(t, len(c.Mesh)/shape.Stride, c.VertexCount)
		assert.Zero(t, c.VertexCount%3)
		total += c.VertexCount / 3
	}
	assert.Equal(t, total, s.TriangleCount())

	// Instances of one type share a single mesh.
	assert.Same(t, &calls[0].Mesh[0], &calls[2].Mesh[0])
}

func TestSharedCacheAcrossSessions(t *testing.T) {
	cache := shape.NewCache(shape.PolicyInvalidate)
	path := writeScene(t, twoShapes)

	a := New(cache, Settings{Param1: 3, Param2: 3})
	b := New(cache, Settings{Param1: 3, Param2: 3})
	require.NoError(t, a.SceneChanged(path))
	require.NoError(t, b.SceneChanged(path))

	assert.Equal(t, shape.Stats{Hits: 2, Misses: 2}, cache.Stats())
}

func TestWatchReloadsScene(t *testing.T) {
	path := writeScene(t, twoShapes)
	s := New(nil, Settings{Param1: 3, Param2: 3})
	require.NoError(t, s.SceneChanged(path))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan error, 4)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, 20*time.Millisecond, nil, func(err error) { changed <- err })
	}()

	// Give the watcher time to register before editing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`
cameraData: {position: [0, 0, 5], look: [0, 0, -1], up: [0, 1, 0], heightAngle: 45}
root:
  primitives: [{type: cone}]
`), 0o644))

	select {
	case err := <-changed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("scene change not observed")
	}

	cancel()
	require.NoError(t, <-done)

	data := s.Data()
	require.Len(t, data.Shapes, 1)
	assert.Equal(t, shape.Cone, data.Shapes[0].Primitive.Type)
	_, ok := s.Mesh(shape.Sphere)
	assert.False(t, ok)
}

func TestWatchWithoutScene(t *testing.T) {
	s := New(nil, Settings{})
	err := s.Watch(context.Background(), DefaultDebounce, nil, nil)
	assert.Error(t, err)
}

func TestWatchAppliesSettings(t *testing.T) {
	s := New(nil, Settings{Param1: 3, Param2: 3})
	require.NoError(t, s.SceneChanged(writeScene(t, twoShapes)))
	before := s.TriangleCount()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settings := make(chan Settings)
	changed := make(chan error, 1)
	done := make(chan error, 1)
	go func() {
		done <- s.Watch(ctx, DefaultDebounce, settings, func(err error) { changed <- err })
	}()

	settings <- Settings{Param1: 8, Param2: 8}
	select {
	case err := <-changed:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("settings change not applied")
	}

	cancel()
	require.NoError(t, <-done)
	assert.Equal(t, Settings{Param1: 8, Param2: 8}, s.Settings())
	assert.Greater(t, s.TriangleCount(), before)
}

func TestSingularShapes(t *testing.T) {
	s := New(nil, Settings{Param1: 3, Param2: 3})
	require.NoError(t, s.SceneChanged(writeScene(t, twoShapes)))
	assert.Zero(t, s.SingularShapes())

	require.NoError(t, s.SceneChanged(writeScene(t, `
cameraData: {position: [0, 0, 5], look: [0, 0, -1], up: [0, 1, 0], heightAngle: 45}
root:
  primitives: [{type: cube}]
  children:
    - scale: [0, 1, 1]
      primitives: [{type: sphere}, {type: cone}]
`)))
	assert.Equal(t, 2, s.SingularShapes())
	assert.Len(t, s.DrawCalls(), 3)
}
