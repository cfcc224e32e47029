package render

import (
	"github.com/taigrr/facet/pkg/math3d"
)

// Plane is the set of points p with Normal·p + D = 0.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize rescales the equation to a unit normal. Zero normals are left
// alone.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance of point from the plane,
// positive on the side the normal points to.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum plane indices.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
	FrustumFar
)

// Frustum is a view volume bounded by six inward-facing planes, indexed by
// the Frustum* constants.
type Frustum struct {
	Planes [6]Plane
}

// NewFrustumFromMatrix extracts world-space planes from a view-projection
// matrix (Gribb/Hartmann). Points are row vectors, so clip coordinate j is
// the dot product with column j of m; each pair of planes is w+c and w-c
// for c = x, y, z.
func NewFrustumFromMatrix(m math3d.Mat4) Frustum {
	column := func(j int) math3d.Vec4 {
		return math3d.V4(m[j], m[4+j], m[8+j], m[12+j])
	}
	w := column(3)

	var f Frustum
	for axis := range 3 {
		c := column(axis)
		f.Planes[2*axis] = clipPlane(w, c, 1)
		f.Planes[2*axis+1] = clipPlane(w, c, -1)
	}
	return f
}

func clipPlane(w, c math3d.Vec4, sign float64) Plane {
	p := Plane{
		Normal: math3d.V3(w.X+sign*c.X, w.Y+sign*c.Y, w.Z+sign*c.Z),
		D:      w.W + sign*c.W,
	}
	p.Normalize()
	return p
}

// Frustum returns the camera's current view frustum in world space.
func (c *Camera) Frustum() Frustum {
	return NewFrustumFromMatrix(c.ViewProjectionMatrix())
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math3d.Vec3
}

// NewAABB creates a box from its minimum and maximum corners.
func NewAABB(min, max math3d.Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Center returns the midpoint of the box.
func (b AABB) Center() math3d.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the edge lengths of the box.
func (b AABB) Size() math3d.Vec3 {
	return b.Max.Sub(b.Min)
}

// Transform returns the box enclosing all eight corners of b moved by an
// affine matrix.
func (b AABB) Transform(m math3d.Mat4) AABB {
	var out AABB
	for i := range 8 {
		corner := math3d.V3(
			pick(i&1 != 0, b.Max.X, b.Min.X),
			pick(i&2 != 0, b.Max.Y, b.Min.Y),
			pick(i&4 != 0, b.Max.Z, b.Min.Z),
		)
		p := m.TransformPoint(corner).Vec3()
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// ContainsPoint reports whether p lies inside the box or on its surface.
func (b AABB) ContainsPoint(p math3d.Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// support returns the corner of b furthest along n, or the nearest one
// when far is false.
func (b AABB) support(n math3d.Vec3, far bool) math3d.Vec3 {
	return math3d.V3(
		pick((n.X >= 0) == far, b.Max.X, b.Min.X),
		pick((n.Y >= 0) == far, b.Max.Y, b.Min.Y),
		pick((n.Z >= 0) == far, b.Max.Z, b.Min.Z),
	)
}

// IntersectAABB reports whether any part of the box may be inside the
// frustum. Boxes near a frustum corner can be reported visible when they
// are not.
func (f Frustum) IntersectAABB(box AABB) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(box.support(p.Normal, true)) < 0 {
			return false
		}
	}
	return true
}

// ContainsAABB reports whether the box is entirely inside the frustum.
func (f Frustum) ContainsAABB(box AABB) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(box.support(p.Normal, false)) < 0 {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether p is inside the frustum.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	return f.IntersectsSphere(p, 0)
}

// IntersectsSphere reports whether a sphere overlaps the frustum.
func (f Frustum) IntersectsSphere(center math3d.Vec3, radius float64) bool {
	for _, p := range f.Planes {
		if p.DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

func pick(cond bool, a, b float64) float64 {
	if cond {
		return a
	}
	return b
}
