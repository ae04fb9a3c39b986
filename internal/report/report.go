// Package report renders flattened scenes and meshes as text tables.
package report

import (
	"bytes"
	"fmt"
	"math"

	"github.com/olekukonko/tablewriter"

	"primscene/internal/mathutil"
	"primscene/internal/scene"
	"primscene/internal/session"
	"primscene/internal/shape"
)

// Shapes returns one row per shape instance, in draw order.
func Shapes(calls []session.DrawCall) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Type", "Position", "Scale", "det(CTM)", "Triangles", "Texture"})

	total := 0
	for i, c := range calls {
		ctm := c.Shape.CTM
		tris := c.VertexCount / 3
		total += tris
		tex := "-"
		if t := c.Shape.Primitive.Material.Texture; t.Filename != "" {
			tex = fmt.Sprintf("%s (%gx%g)", t.Filename, t.RepeatU, t.RepeatV)
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			c.Shape.Primitive.Type.String(),
			fmtVec3(ctm.MulPoint(mathutil.Vec3{})),
			fmtVec3(axisScale(ctm)),
			fmtFloat(ctm.Upper3().Det()),
			fmt.Sprintf("%d", tris),
			tex,
		})
	}
	table.SetFooter([]string{"", "Total", "", "", "", fmt.Sprintf("%d", total), ""})

	table.Render()
	return buf.String()
}

// Lights returns one row per flattened light.
func Lights(lights []scene.RenderLight) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"ID", "Type", "Color", "Attenuation", "Position", "Direction", "Angle", "Penumbra"})

	for _, l := range lights {
		pos, dir, angle, penumbra := "-", "-", "-", "-"
		switch l.Type {
		case scene.LightPoint:
			pos = fmtVec3(l.Pos.Vec3())
		case scene.LightDirectional:
			dir = fmtVec3(l.Dir.Vec3())
		case scene.LightSpot:
			pos = fmtVec3(l.Pos.Vec3())
			dir = fmtVec3(l.Dir.Vec3())
			angle = fmtDeg(l.Angle)
			penumbra = fmtDeg(l.Penumbra)
		}
		table.Append([]string{
			fmt.Sprintf("%d", l.ID),
			l.Type.String(),
			fmtVec3(l.Color),
			fmtVec3(l.Attenuation),
			pos,
			dir,
			angle,
			penumbra,
		})
	}

	table.Render()
	return buf.String()
}

// MeshRow describes one generated mesh.
type MeshRow struct {
	Type   shape.Type
	Param1 int
	Param2 int
	Mesh   shape.Mesh
}

// Meshes returns one row per mesh with its size and bounds.
func Meshes(rows []MeshRow) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetHeader([]string{"Type", "Params", "Vertices", "Triangles", "Bytes", "Min", "Max"})

	for _, r := range rows {
		lo, hi := r.Mesh.Bounds()
		table.Append([]string{
			r.Type.String(),
			fmt.Sprintf("%d, %d", r.Param1, r.Param2),
			fmt.Sprintf("%d", r.Mesh.VertexCount()),
			fmt.Sprintf("%d", r.Mesh.TriangleCount()),
			fmt.Sprintf("%d", len(r.Mesh)*4),
			fmtVec3(lo),
			fmtVec3(hi),
		})
	}

	table.Render()
	return buf.String()
}

// axisScale returns the length of each transformed basis axis.
func axisScale(m mathutil.Mat4) mathutil.Vec3 {
	u := m.Upper3()
	return mathutil.Vec3{
		mathutil.Vec3{u[0], u[3], u[6]}.Len(),
		mathutil.Vec3{u[1], u[4], u[7]}.Len(),
		mathutil.Vec3{u[2], u[5], u[8]}.Len(),
	}
}

func fmtVec3(v mathutil.Vec3) string {
	return fmt.Sprintf("(%s, %s, %s)", fmtFloat(v[0]), fmtFloat(v[1]), fmtFloat(v[2]))
}

func fmtFloat(f float64) string {
	if math.Abs(f) < 5e-4 {
		f = 0
	}
	return fmt.Sprintf("%.3g", f)
}

func fmtDeg(rad float64) string {
	return fmt.Sprintf("%.1f°", rad*180/math.Pi)
}
