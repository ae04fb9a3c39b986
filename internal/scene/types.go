package scene

import (
	"fmt"

	"primscene/internal/mathutil"
	"primscene/internal/shape"
)

// TransformKind tags the variant held by a Transformation.
type TransformKind int

const (
	TransformScale TransformKind = iota
	TransformRotate
	TransformTranslate
)

// Transformation is one elementary transform attached to a node.
// Only the fields of its Kind are meaningful.
type Transformation struct {
	Kind      TransformKind
	Scale     mathutil.Vec3
	Axis      mathutil.Vec3
	Angle     float64 // radians
	Translate mathutil.Vec3
}

// ScaleBy returns a scale transformation.
func ScaleBy(s mathutil.Vec3) Transformation {
	return Transformation{Kind: TransformScale, Scale: s}
}

// RotateBy returns a rotation of angle radians about axis.
func RotateBy(axis mathutil.Vec3, angle float64) Transformation {
	return Transformation{Kind: TransformRotate, Axis: axis, Angle: angle}
}

// TranslateBy returns a translation transformation.
func TranslateBy(t mathutil.Vec3) Transformation {
	return Transformation{Kind: TransformTranslate, Translate: t}
}

// Matrix returns the elementary matrix of the transformation.
func (t Transformation) Matrix() mathutil.Mat4 {
	switch t.Kind {
	case TransformScale:
		return mathutil.Scale(t.Scale)
	case TransformRotate:
		return mathutil.Rotate(t.Axis, t.Angle)
	case TransformTranslate:
		return mathutil.Translate(t.Translate)
	}
	return mathutil.Mat4Identity()
}

// TextureMap describes an optional texture. Textures are never decoded here.
type TextureMap struct {
	IsUsed   bool
	Filename string
	RepeatU  float64
	RepeatV  float64
}

// Material holds the surface coefficients of a primitive.
type Material struct {
	Ambient   mathutil.Vec4 // rgba
	Diffuse   mathutil.Vec4
	Specular  mathutil.Vec4
	Shininess float64
	Texture   TextureMap
}

// Primitive is one shape reference on a node.
type Primitive struct {
	Type     shape.Type
	Material Material
}

// LightType enumerates light sources.
type LightType int

const (
	LightPoint LightType = iota
	LightDirectional
	LightSpot
	// LightArea is understood by scene files but has no world-space
	// placement rule; it flattens with only color and attenuation set.
	LightArea
)

func (t LightType) String() string {
	switch t {
	case LightPoint:
		return "point"
	case LightDirectional:
		return "directional"
	case LightSpot:
		return "spot"
	case LightArea:
		return "area"
	}
	return fmt.Sprintf("LightType(%d)", int(t))
}

// Light is a light source in its node's local space.
type Light struct {
	ID          int
	Type        LightType
	Color       mathutil.Vec3 // rgb
	Attenuation mathutil.Vec3 // constant, linear, quadratic
	Dir         mathutil.Vec4 // local direction, w=0; directional and spot only
	Angle       float64       // spot only, radians
	Penumbra    float64       // spot only, radians
}

// Node is one node of the scene tree. Trees are immutable once built.
type Node struct {
	Name            string
	Transformations []Transformation
	Primitives      []Primitive
	Lights          []Light
	Children        []*Node
}

// GlobalData holds the scene-wide lighting coefficients.
type GlobalData struct {
	Ka float64
	Kd float64
	Ks float64
	Kt float64
}

// CameraData describes the viewer. Directions have w=0, the position w=1.
type CameraData struct {
	Pos         mathutil.Vec4
	Look        mathutil.Vec4
	Up          mathutil.Vec4
	HeightAngle float64 // vertical field of view, radians
	Aperture    float64
	FocalLength float64
}

// RenderShape is one primitive instance placed in world space.
type RenderShape struct {
	Primitive  Primitive
	CTM        mathutil.Mat4 // object to world
	InverseCTM mathutil.Mat4
	NormalCTM  mathutil.Mat3 // inverse-transpose of the CTM's upper 3×3
}

// RenderLight is one light placed in world space. Fields that do not apply
// to the light's type keep their zero value.
type RenderLight struct {
	ID          int
	Type        LightType
	Color       mathutil.Vec3
	Attenuation mathutil.Vec3
	Pos         mathutil.Vec4
	Dir         mathutil.Vec4
	Angle       float64
	Penumbra    float64
}

// RenderData is everything a rendering backend consumes for one scene.
type RenderData struct {
	Global GlobalData
	Camera CameraData
	Shapes []RenderShape
	Lights []RenderLight
}
