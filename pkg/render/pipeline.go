package render

import "github.com/taigrr/facet/pkg/math3d"

// ProjectedPoint is a vertex after the full transform chain: X and Y in
// surface pixels, Z the post-divide NDC depth.
type ProjectedPoint struct {
	X, Y, Z float64
}

// Vec3 returns the point as a vector (screen x, screen y, ndc z).
func (p ProjectedPoint) Vec3() math3d.Vec3 {
	return math3d.V3(p.X, p.Y, p.Z)
}

// Pipeline applies model, view and projection matrices to vertices, then the
// perspective divide and the viewport mapping.
//
// There is no clipping: vertices behind the camera project with a negative
// w and come out mirrored, and w == 0 skips the divide.
type Pipeline struct {
	View       math3d.Mat4
	Projection math3d.Mat4
	Width      float64
	Height     float64
}

// NewPipeline creates a pipeline for a surface of the given pixel size.
func NewPipeline(view, projection math3d.Mat4, width, height int) Pipeline {
	return Pipeline{
		View:       view,
		Projection: projection,
		Width:      float64(width),
		Height:     float64(height),
	}
}

// Project transforms a model-space vertex to a screen-space point.
// Each matrix is applied to a point with implicit w=1; only the projection's
// w is kept for the divide.
func (p Pipeline) Project(v math3d.Vec3, model math3d.Mat4) ProjectedPoint {
	world := model.TransformPoint(v).Vec3()
	eye := p.View.TransformPoint(world).Vec3()
	ndc := p.Projection.TransformPoint(eye).PerspectiveDivide()
	return p.Viewport(ndc)
}

// Viewport maps normalized device coordinates to surface pixels. Y is
// flipped because surface rows grow downward.
func (p Pipeline) Viewport(ndc math3d.Vec3) ProjectedPoint {
	return ProjectedPoint{
		X: (ndc.X + 1) * 0.5 * p.Width,
		Y: (1 - ndc.Y) * 0.5 * p.Height,
		Z: ndc.Z,
	}
}

// ProjectFace appends the projection of every vertex in verts to dst.
func (p Pipeline) ProjectFace(dst []ProjectedPoint, verts []math3d.Vec3, model math3d.Mat4) []ProjectedPoint {
	for _, v := range verts {
		dst = append(dst, p.Project(v, model))
	}
	return dst
}
