package scenefile

import (
	"fmt"
	"strings"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
	"primscene/internal/shape"
)

// builder converts node documents into scene nodes. Each template is built
// once and shared by every node that uses it.
type builder struct {
	templates map[string]*nodeDoc
	built     map[string]*scene.Node
	visiting  map[string]bool
}

func (b *builder) node(d *nodeDoc, path string) (*scene.Node, error) {
	if d == nil {
		return nil, nil
	}
	n := &scene.Node{Name: d.Name}

	transforms, err := d.transforms()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	n.Transformations = transforms

	for i, p := range d.Primitives {
		prim, err := p.build()
		if err != nil {
			return nil, fmt.Errorf("%s.primitives[%d]: %w", path, i, err)
		}
		n.Primitives = append(n.Primitives, prim)
	}

	for i, l := range d.Lights {
		light, err := l.build()
		if err != nil {
			return nil, fmt.Errorf("%s.lights[%d]: %w", path, i, err)
		}
		n.Lights = append(n.Lights, light)
	}

	if d.Use != "" {
		tmpl, err := b.template(d.Use)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		n.Children = append(n.Children, tmpl)
	}

	for i, c := range d.Children {
		child, err := b.node(c, fmt.Sprintf("%s.children[%d]", path, i))
		if err != nil {
			return nil, err
		}
		if child != nil {
			n.Children = append(n.Children, child)
		}
	}
	return n, nil
}

func (b *builder) template(name string) (*scene.Node, error) {
	if n, ok := b.built[name]; ok {
		return n, nil
	}
	d, ok := b.templates[name]
	if !ok || d == nil {
		return nil, fmt.Errorf("%w: %q not defined", ErrTemplate, name)
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: %q refers to itself", ErrTemplate, name)
	}

	b.visiting[name] = true
	n, err := b.node(d, "templates."+name)
	delete(b.visiting, name)
	if err != nil {
		return nil, err
	}
	b.built[name] = n
	return n, nil
}

// transforms returns the node's transformation list. The translate, rotate
// and scale shorthand keys apply in that fixed order, ahead of any explicit
// list entries.
func (d *nodeDoc) transforms() ([]scene.Transformation, error) {
	var list []transformDoc
	if d.Translate != nil {
		list = append(list, transformDoc{Translate: d.Translate})
	}
	if d.Rotate != nil {
		list = append(list, transformDoc{Rotate: d.Rotate})
	}
	if d.Scale != nil {
		list = append(list, transformDoc{Scale: d.Scale})
	}
	shorthand := len(list)
	list = append(list, d.Transforms...)

	out := make([]scene.Transformation, 0, len(list))
	for i, td := range list {
		t, err := td.build()
		if err != nil {
			if i >= shorthand {
				return nil, fmt.Errorf("transforms[%d]: %w", i-shorthand, err)
			}
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (td transformDoc) build() (scene.Transformation, error) {
	set := 0
	for _, f := range [][]float64{td.Translate, td.Rotate, td.Scale} {
		if f != nil {
			set++
		}
	}
	if set != 1 {
		return scene.Transformation{}, fmt.Errorf("%w: transform needs exactly one of translate, rotate, scale", ErrVector)
	}

	switch {
	case td.Translate != nil:
		v, err := vec3("translate", td.Translate)
		return scene.TranslateBy(v), err
	case td.Rotate != nil:
		if len(td.Rotate) != 4 {
			return scene.Transformation{}, fmt.Errorf("%w: rotate wants 4 values, got %d", ErrVector, len(td.Rotate))
		}
		axis := mathutil.Vec3{td.Rotate[0], td.Rotate[1], td.Rotate[2]}
		return scene.RotateBy(axis, mathutil.Deg2Rad(td.Rotate[3])), nil
	default:
		v, err := vec3("scale", td.Scale)
		return scene.ScaleBy(v), err
	}
}

func (p primitiveDoc) build() (scene.Primitive, error) {
	t, ok := shape.ParseType(p.Type)
	if !ok {
		return scene.Primitive{}, fmt.Errorf("%w: %q", ErrUnknownPrimitive, p.Type)
	}

	var m scene.Material
	var err error
	if m.Ambient, err = color("ambient", p.Ambient); err != nil {
		return scene.Primitive{}, err
	}
	if m.Diffuse, err = color("diffuse", p.Diffuse); err != nil {
		return scene.Primitive{}, err
	}
	if m.Specular, err = color("specular", p.Specular); err != nil {
		return scene.Primitive{}, err
	}
	m.Shininess = p.Shininess
	if p.TextureFile != "" {
		m.Texture = scene.TextureMap{
			IsUsed:   true,
			Filename: p.TextureFile,
			RepeatU:  p.TextureU,
			RepeatV:  p.TextureV,
		}
	}
	return scene.Primitive{Type: t, Material: m}, nil
}

var lightTypes = map[string]scene.LightType{
	"point":       scene.LightPoint,
	"directional": scene.LightDirectional,
	"spot":        scene.LightSpot,
	"area":        scene.LightArea,
}

func (l lightDoc) build() (scene.Light, error) {
	lt, ok := lightTypes[strings.ToLower(strings.TrimSpace(l.Type))]
	if !ok {
		return scene.Light{}, fmt.Errorf("%w: %q", ErrUnknownLight, l.Type)
	}

	out := scene.Light{ID: l.ID, Type: lt}

	c, err := color("color", l.Color)
	if err != nil {
		return scene.Light{}, err
	}
	out.Color = c.Vec3()

	if l.Attenuation != nil {
		if out.Attenuation, err = vec3("attenuationCoeff", l.Attenuation); err != nil {
			return scene.Light{}, err
		}
	} else {
		out.Attenuation = mathutil.Vec3{1, 0, 0}
	}

	switch lt {
	case scene.LightDirectional, scene.LightSpot:
		d, err := vec3("direction", l.Direction)
		if err != nil {
			return scene.Light{}, err
		}
		out.Dir = d.Vec4(0)
	}
	if lt == scene.LightSpot {
		out.Angle = mathutil.Deg2Rad(l.Angle)
		out.Penumbra = mathutil.Deg2Rad(l.Penumbra)
	}
	return out, nil
}

func (c cameraDoc) build() (scene.CameraData, error) {
	pos, err := vec3("position", c.Position)
	if err != nil {
		return scene.CameraData{}, err
	}

	var look mathutil.Vec3
	switch {
	case c.Look != nil && c.Focus != nil:
		return scene.CameraData{}, fmt.Errorf("%w: both look and focus set", ErrCamera)
	case c.Focus != nil:
		focus, err := vec3("focus", c.Focus)
		if err != nil {
			return scene.CameraData{}, err
		}
		look = focus.Sub(pos)
	default:
		if look, err = vec3("look", c.Look); err != nil {
			return scene.CameraData{}, err
		}
	}
	if look.Len() < mathutil.Epsilon {
		return scene.CameraData{}, fmt.Errorf("%w: zero look direction", ErrCamera)
	}

	up, err := vec3("up", c.Up)
	if err != nil {
		return scene.CameraData{}, err
	}
	if up.Cross(look).Len() < mathutil.Epsilon {
		return scene.CameraData{}, fmt.Errorf("%w: up is parallel to look", ErrCamera)
	}

	if c.HeightAngle <= 0 || c.HeightAngle >= 180 {
		return scene.CameraData{}, fmt.Errorf("%w: heightAngle %g outside (0, 180)", ErrCamera, c.HeightAngle)
	}

	return scene.CameraData{
		Pos:         pos.Vec4(1),
		Look:        look.Vec4(0),
		Up:          up.Vec4(0),
		HeightAngle: mathutil.Deg2Rad(c.HeightAngle),
		Aperture:    c.Aperture,
		FocalLength: c.FocalLength,
	}, nil
}

func vec3(field string, v []float64) (mathutil.Vec3, error) {
	if len(v) != 3 {
		return mathutil.Vec3{}, fmt.Errorf("%w: %s wants 3 values, got %d", ErrVector, field, len(v))
	}
	return mathutil.Vec3{v[0], v[1], v[2]}, nil
}

// color accepts rgb or rgba. A missing color is black; rgb gets alpha 1.
func color(field string, v []float64) (mathutil.Vec4, error) {
	switch len(v) {
	case 0:
		return mathutil.Vec4{}, nil
	case 3:
		return mathutil.Vec4{v[0], v[1], v[2], 1}, nil
	case 4:
		return mathutil.Vec4{v[0], v[1], v[2], v[3]}, nil
	}
	return mathutil.Vec4{}, fmt.Errorf("%w: %s wants 3 or 4 values, got %d", ErrVector, field, len(v))
}
