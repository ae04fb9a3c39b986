// Package scene holds the scene tree model and flattens it into the
// world-space shape and light lists consumed by renderers.
package scene

import "primscene/internal/mathutil"

// flatList is the traversal accumulator. It is passed by value down the
// recursion and returned, so no state is shared between calls.
type flatList struct {
	shapes []RenderShape
	lights []RenderLight
}

// Flatten walks the tree rooted at root in depth-first pre-order, starting
// from the identity CTM. At every node the primitives are emitted first,
// then the lights, then the children are visited in order.
// A nil root yields empty lists.
func Flatten(root *Node) ([]RenderShape, []RenderLight) {
	out := visit(root, mathutil.Mat4Identity(), flatList{})
	return out.shapes, out.lights
}

// Assemble builds a fresh RenderData for a parsed scene. Previous output is
// never patched: callers replace their RenderData wholesale.
func Assemble(global GlobalData, camera CameraData, root *Node) RenderData {
	shapes, lights := Flatten(root)
	return RenderData{
		Global: global,
		Camera: camera,
		Shapes: shapes,
		Lights: lights,
	}
}

// NodeCTM returns the CTM of a node given its parent's CTM: every
// transformation right-multiplies the running matrix in list order.
func NodeCTM(parent mathutil.Mat4, transforms []Transformation) mathutil.Mat4 {
	ctm := parent
	for _, t := range transforms {
		ctm = mathutil.Mat4Mul(ctm, t.Matrix())
	}
	return ctm
}

func visit(node *Node, parent mathutil.Mat4, out flatList) flatList {
	if node == nil {
		return out
	}

	ctm := NodeCTM(parent, node.Transformations)

	for _, p := range node.Primitives {
		out.shapes = append(out.shapes, NewRenderShape(p, ctm))
	}
	for _, l := range node.Lights {
		out.lights = append(out.lights, NewRenderLight(l, ctm))
	}

	for _, child := range node.Children {
		out = visit(child, ctm, out)
	}
	return out
}

// NewRenderShape places a primitive with the given CTM. Texturing is
// handled outside this pipeline, so the copy's texture flag is cleared.
func NewRenderShape(p Primitive, ctm mathutil.Mat4) RenderShape {
	p.Material.Texture.IsUsed = false
	return RenderShape{
		Primitive:  p,
		CTM:        ctm,
		InverseCTM: ctm.Inverse(),
		NormalCTM:  ctm.NormalMatrix(),
	}
}

// NewRenderLight computes the world-space placement of a light. Light types
// without a placement rule keep a zero position and direction.
func NewRenderLight(l Light, ctm mathutil.Mat4) RenderLight {
	rl := RenderLight{
		ID:          l.ID,
		Type:        l.Type,
		Color:       l.Color,
		Attenuation: l.Attenuation,
	}

	switch l.Type {
	case LightPoint:
		rl.Pos = ctm.MulVec4(mathutil.Origin)
	case LightDirectional:
		rl.Pos = ctm.MulVec4(mathutil.Origin)
		rl.Dir = ctm.MulVec4(l.Dir).Normalize()
	case LightSpot:
		rl.Pos = ctm.MulVec4(mathutil.Origin)
		rl.Dir = ctm.MulVec4(l.Dir).Normalize()
		rl.Angle = l.Angle
		rl.Penumbra = l.Penumbra
	}
	return rl
}

// CountPrimitives returns the number of primitives in the tree.
func CountPrimitives(root *Node) int {
	if root == nil {
		return 0
	}
	n := len(root.Primitives)
	for _, c := range root.Children {
		n += CountPrimitives(c)
	}
	return n
}
