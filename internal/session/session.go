// Package session keeps the render data and per-type meshes of the scene
// currently on display, rebuilding them when the scene file or the
// tessellation settings change.
package session

import (
	"primscene/internal/log"
	"primscene/internal/scene"
	"primscene/internal/scenefile"
	"primscene/internal/shape"
)

// Settings are the tessellation parameters shared by every instance of a
// shape type.
type Settings struct {
	Param1 int
	Param2 int
}

// DrawCall pairs a shape instance with the mesh of its type.
type DrawCall struct {
	Shape       scene.RenderShape
	Mesh        shape.Mesh
	VertexCount int
}

// Session is not safe for concurrent use. The shape cache it holds may be
// shared between sessions.
type Session struct {
	cache    *shape.Cache
	settings Settings
	path     string
	data     scene.RenderData
	meshes   map[shape.Type]shape.Mesh
	logger   log.Logger
}

// New returns an empty session drawing meshes from cache.
func New(cache *shape.Cache, settings Settings) *Session {
	if cache == nil {
		cache = shape.NewCache(shape.PolicyInvalidate)
	}
	return &Session{
		cache:    cache,
		settings: settings,
		meshes:   make(map[shape.Type]shape.Mesh),
		logger:   log.New("session"),
	}
}

// SceneChanged loads the scene at path and replaces the render data and
// meshes. If loading fails, the previous scene stays in place.
func (s *Session) SceneChanged(path string) error {
	sc, err := scenefile.Load(path)
	if err != nil {
		s.logger.Errorf("keeping previous scene: %v", err)
		return err
	}
	s.path = path
	s.SetScene(sc)
	s.logger.Infof("loaded %s: %d shapes, %d lights", path, len(s.data.Shapes), len(s.data.Lights))
	if n := s.SingularShapes(); n > 0 {
		s.logger.Warningf("%s: %d shapes have a singular transform", path, n)
	}
	return nil
}

// SetScene replaces the current scene with an already parsed one.
func (s *Session) SetScene(sc *scenefile.Scene) {
	s.data = sc.RenderData()
	s.rebuild()
}

// SettingsChanged applies new tessellation settings and rebuilds the meshes
// of the shape types in the current scene.
func (s *Session) SettingsChanged(settings Settings) {
	s.settings = settings
	s.rebuild()
}

func (s *Session) rebuild() {
	meshes := make(map[shape.Type]shape.Mesh)
	for _, rs := range s.data.Shapes {
		t := rs.Primitive.Type
		if _, ok := meshes[t]; ok {
			continue
		}
		p1, p2 := shape.Clamp(t, s.settings.Param1, s.settings.Param2)
		meshes[t] = s.cache.Get(t, p1, p2)
		s.logger.Debugf("%s mesh (%d, %d): %d triangles", t, p1, p2, meshes[t].TriangleCount())
	}
	s.meshes = meshes
}

// Path returns the file of the current scene, if it came from one.
func (s *Session) Path() string {
	return s.path
}

// Settings returns the tessellation settings in effect.
func (s *Session) Settings() Settings {
	return s.settings
}

// Data returns the current render data.
func (s *Session) Data() scene.RenderData {
	return s.data
}

// Mesh returns the current mesh for t. Types absent from the scene have none.
func (s *Session) Mesh(t shape.Type) (shape.Mesh, bool) {
	m, ok := s.meshes[t]
	return m, ok
}

// DrawCalls returns one call per shape instance, in flattening order.
func (s *Session) DrawCalls() []DrawCall {
	calls := make([]DrawCall, 0, len(s.data.Shapes))
	for _, rs := range s.data.Shapes {
		m := s.meshes[rs.Primitive.Type]
		calls = append(calls, DrawCall{
			Shape:       rs,
			Mesh:        m,
			VertexCount: len(m) / shape.Stride,
		})
	}
	return calls
}

// SingularShapes returns how many shapes have a transform that cannot be
// inverted. They are still drawn, but their normals are not finite.
func (s *Session) SingularShapes() int {
	n := 0
	for _, rs := range s.data.Shapes {
		if !rs.InverseCTM.IsFinite() {
			n++
		}
	}
	return n
}

// TriangleCount returns the number of triangles drawn for the whole scene.
func (s *Session) TriangleCount() int {
	n := 0
	for _, rs := range s.data.Shapes {
		n += s.meshes[rs.Primitive.Type].TriangleCount()
	}
	return n
}
