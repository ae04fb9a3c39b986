// Package scenefile loads scene descriptions from YAML, JSON or TOML
// documents into the scene tree consumed by the flattener.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"primscene/internal/scene"
)

var (
	ErrUnknownPrimitive = errors.New("unknown primitive type")
	ErrUnknownLight     = errors.New("unknown light type")
	ErrTemplate         = errors.New("bad template reference")
	ErrVector           = errors.New("malformed vector")
	ErrCamera           = errors.New("invalid camera")
)

// Scene is a parsed scene description.
type Scene struct {
	Global scene.GlobalData
	Camera scene.CameraData
	Root   *scene.Node
}

// RenderData flattens the scene into a fresh render data set.
func (s *Scene) RenderData() scene.RenderData {
	return scene.Assemble(s.Global, s.Camera, s.Root)
}

// Load reads and parses a scene file. Files ending in .toml are read as
// TOML; anything else as YAML, which also covers JSON.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	parse := Parse
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseTOML
	}
	s, err := parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("scenefile: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes a scene document from r. Unknown keys are rejected.
func Parse(r io.Reader) (*Scene, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse: empty document")
		}
		return nil, fmt.Errorf("parse: %w", err)
	}

	s, err := doc.build()
	if err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return s, nil
}

// ParseTOML decodes a TOML scene document from r. Unknown keys are rejected.
func ParseTOML(r io.Reader) (*Scene, error) {
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	s, err := doc.build()
	if err != nil {
		return nil, fmt.Errorf("invalid: %w", err)
	}
	return s, nil
}

func (d *document) build() (*Scene, error) {
	camera, err := d.Camera.build()
	if err != nil {
		return nil, err
	}

	b := &builder{
		templates: d.Templates,
		built:     make(map[string]*scene.Node),
		visiting:  make(map[string]bool),
	}

	var root *scene.Node
	if d.Root != nil {
		root, err = b.node(d.Root, "root")
		if err != nil {
			return nil, err
		}
	}

	return &Scene{
		Global: scene.GlobalData{
			Ka: d.Global.Ambient,
			Kd: d.Global.Diffuse,
			Ks: d.Global.Specular,
			Kt: d.Global.Transparent,
		},
		Camera: camera,
		Root:   root,
	}, nil
}
