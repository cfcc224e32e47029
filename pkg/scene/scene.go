// Package scene holds the objects facet draws each frame and advances them
// in time.
package scene

import (
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

// UpdateFunc advances an object by dt seconds. t is the scene clock after
// the step.
type UpdateFunc func(o *Object, dt, t float64)

// Object is a mesh placed in the world.
type Object struct {
	Name     string
	Mesh     *models.Mesh
	Position math3d.Vec3
	// Euler angles in radians. Rotation is applied after Position, so a
	// rotating object away from the origin orbits it.
	Rotation math3d.Vec3
	// Scale is applied as a final translation by (X, Y, Z), not as a
	// scale. With the default (1,1,1) every object is offset by one unit
	// on each axis.
	Scale  math3d.Vec3
	Update UpdateFunc
}

// NewObject creates an object at the origin with the default scale.
func NewObject(name string, mesh *models.Mesh) *Object {
	return &Object{
		Name:  name,
		Mesh:  mesh,
		Scale: math3d.V3(1, 1, 1),
	}
}

// ModelMatrix returns
// Identity · Translate(Position) · RotateY · RotateX · RotateZ · Translate(Scale).
// Points are row vectors, so the rightmost factor is applied last.
func (o *Object) ModelMatrix() math3d.Mat4 {
	return math3d.Identity().
		Mul(math3d.Translate(o.Position)).
		Mul(math3d.RotateY(o.Rotation.Y)).
		Mul(math3d.RotateX(o.Rotation.X)).
		Mul(math3d.RotateZ(o.Rotation.Z)).
		Mul(math3d.Translate(o.Scale))
}

// Renderable implements render.Drawable.
func (o *Object) Renderable() render.MeshRenderer {
	if o.Mesh == nil {
		return nil
	}
	return o.Mesh
}

// Scene is an ordered list of objects. Draw order is insertion order.
type Scene struct {
	objects []*Object
	clock   float64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add appends objects to the scene.
func (s *Scene) Add(objs ...*Object) {
	s.objects = append(s.objects, objs...)
}

// Objects returns the objects in draw order.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Clock returns the accumulated scene time in seconds.
func (s *Scene) Clock() float64 {
	return s.clock
}

// Update advances the scene clock and calls every object's Update.
func (s *Scene) Update(dt float64) {
	s.clock += dt
	for _, o := range s.objects {
		if o.Update != nil {
			o.Update(o, dt, s.clock)
		}
	}
}

// FaceCount returns the total number of faces in the scene.
func (s *Scene) FaceCount() int {
	n := 0
	for _, o := range s.objects {
		if o.Mesh != nil {
			n += o.Mesh.FaceCount()
		}
	}
	return n
}
