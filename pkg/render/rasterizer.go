package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Mode selects how faces are emitted.
type Mode int

const (
	// ModeFilled culls back faces and fills the rest with flat shading,
	// outlined in Rasterizer.Outline.
	ModeFilled Mode = iota
	// ModeWireframe strokes every face in its base color. Nothing is culled.
	ModeWireframe
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeFilled:
		return "filled"
	case ModeWireframe:
		return "wireframe"
	default:
		return "unknown"
	}
}

// DegeneratePolicy decides what happens to a face whose normal is not
// finite (zero area, coincident vertices). Faces with a non-finite projected
// vertex cannot be traced and are dropped under either policy.
type DegeneratePolicy int

const (
	// DegenerateDraw draws the face at MinIntensity.
	DegenerateDraw DegeneratePolicy = iota
	// DegenerateSkip drops the face.
	DegenerateSkip
)

// ClipMode selects how much geometry is rejected before projection.
type ClipMode int

const (
	// ClipNone projects every vertex. Geometry behind the camera comes
	// out mirrored.
	ClipNone ClipMode = iota
	// ClipObjects skips whole objects whose world bounds are outside the
	// view frustum. Meshes without bounds are always drawn.
	ClipObjects
)

// MeshRenderer is the mesh view the rasterizer draws from. It lives here so
// render does not import models.
type MeshRenderer interface {
	FaceCount() int
	// AppendFaceVertices appends the model-space positions of face i, in
	// winding order, to dst.
	AppendFaceVertices(dst []math3d.Vec3, i int) []math3d.Vec3
	FaceColor(i int) Color
}

// BoundedMeshRenderer extends MeshRenderer with bounding box support for frustum culling.
type BoundedMeshRenderer interface {
	MeshRenderer
	GetBounds() (min, max math3d.Vec3)
}

// Drawable is anything that pairs a mesh with a model matrix.
type Drawable interface {
	ModelMatrix() math3d.Mat4
	Renderable() MeshRenderer
}

// Stats counts rasterizer work since the last ResetStats.
type Stats struct {
	ObjectsDrawn    int // Objects that passed (or skipped) the frustum test
	ObjectsCulled   int // Objects rejected by ClipObjects
	FacesTested     int // Faces with 3+ vertices
	FacesCulled     int // Back faces
	FacesDrawn      int // Faces emitted to the surface
	FacesDegenerate int // Faces with a non-finite normal or vertex (drawn or not)
	FacesSkipped    int // Faces with fewer than 3 vertices
}

// Rasterizer projects meshes through a camera and emits flat-shaded
// polygons to a Surface in painter's order. There is no depth buffer: later
// faces overwrite earlier ones.
type Rasterizer struct {
	camera  *Camera
	surface Surface

	LightDir   math3d.Vec3 // Directional light, default (0,0,1)
	Outline    Color       // Stroke color for filled faces
	Mode       Mode
	Degenerate DegeneratePolicy
	Clip       ClipMode
	Stats      Stats

	// Reused per face
	verts  []math3d.Vec3
	points []ProjectedPoint
}

// NewRasterizer creates a rasterizer drawing through camera onto surface.
func NewRasterizer(camera *Camera, surface Surface) *Rasterizer {
	return &Rasterizer{
		camera:   camera,
		surface:  surface,
		LightDir: LightDir,
		Outline:  ColorOutline,
		verts:    make([]math3d.Vec3, 0, 8),
		points:   make([]ProjectedPoint, 0, 8),
	}
}

// Camera returns the camera the rasterizer projects through.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Surface returns the current draw target.
func (r *Rasterizer) Surface() Surface {
	return r.surface
}

// SetSurface swaps the draw target.
func (r *Rasterizer) SetSurface(s Surface) {
	r.surface = s
}

// ResetStats resets the statistics (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// Clear fills the whole surface with c.
func (r *Rasterizer) Clear(c Color) {
	if r.surface == nil {
		return
	}
	ClearSurface(r.surface, c)
}

// Pipeline returns the transform pipeline for the current camera and
// surface size.
func (r *Rasterizer) Pipeline() Pipeline {
	w, h := r.surface.Size()
	return r.camera.Pipeline(w, h)
}

// DrawObject draws a Drawable with its own model matrix.
func (r *Rasterizer) DrawObject(d Drawable) {
	mesh := d.Renderable()
	if mesh == nil {
		return
	}
	r.DrawMesh(mesh, d.ModelMatrix())
}

// DrawMesh draws every face of mesh, in face order, under the model matrix.
func (r *Rasterizer) DrawMesh(mesh MeshRenderer, model math3d.Mat4) {
	if r.surface == nil || r.camera == nil {
		return
	}
	if r.Clip == ClipObjects && r.outsideFrustum(mesh, model) {
		r.Stats.ObjectsCulled++
		return
	}
	r.Stats.ObjectsDrawn++

	p := r.Pipeline()
	for i := range mesh.FaceCount() {
		r.verts = mesh.AppendFaceVertices(r.verts[:0], i)
		if len(r.verts) < 3 {
			r.Stats.FacesSkipped++
			continue
		}
		r.points = p.ProjectFace(r.points[:0], r.verts, model)
		r.DrawFace(r.points, mesh.FaceColor(i))
	}
}

// DrawFace culls, shades and emits a single projected face. It reports
// whether anything was drawn.
func (r *Rasterizer) DrawFace(points []ProjectedPoint, base Color) bool {
	if len(points) < 3 {
		r.Stats.FacesSkipped++
		return false
	}
	r.Stats.FacesTested++

	for _, pt := range points {
		if !pt.Vec3().IsFinite() {
			r.Stats.FacesDegenerate++
			return false
		}
	}

	if r.Mode == ModeWireframe {
		r.tracePath(points)
		r.surface.Stroke(base)
		r.Stats.FacesDrawn++
		return true
	}

	normal := FaceNormal(points)
	if !normal.IsFinite() {
		r.Stats.FacesDegenerate++
		if r.Degenerate == DegenerateSkip {
			return false
		}
	}

	// Screen space with y pointing down: a face wound counter-clockwise as
	// seen by the viewer has a negative z.
	if normal.Z > 0 {
		r.Stats.FacesCulled++
		return false
	}

	shaded := Shade(base, Intensity(normal, r.LightDir))

	r.tracePath(points)
	r.surface.Fill(shaded)
	r.surface.Stroke(r.Outline)
	r.Stats.FacesDrawn++
	return true
}

func (r *Rasterizer) tracePath(points []ProjectedPoint) {
	s := r.surface
	s.BeginPath()
	s.MoveTo(points[0].X, points[0].Y)
	for _, pt := range points[1:] {
		s.LineTo(pt.X, pt.Y)
	}
	s.ClosePath()
}

// outsideFrustum reports whether a bounded mesh lies entirely outside the
// camera frustum. Meshes without bounds are never rejected.
func (r *Rasterizer) outsideFrustum(mesh MeshRenderer, model math3d.Mat4) bool {
	bounded, ok := mesh.(BoundedMeshRenderer)
	if !ok {
		return false
	}
	minB, maxB := bounded.GetBounds()
	world := NewAABB(minB, maxB).Transform(model)
	return !r.camera.Frustum().IntersectAABB(world)
}

// FaceNormal returns the unit normal of the first three projected points,
// taken over (screen x, screen y, ndc z). Collinear or coincident points
// give a non-finite vector.
func FaceNormal(points []ProjectedPoint) math3d.Vec3 {
	p0 := points[0].Vec3()
	v1 := points[1].Vec3().Sub(p0)
	v2 := points[2].Vec3().Sub(p0)
	return v1.Cross(v2).Normalize()
}
