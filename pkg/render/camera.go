package render

import (
	"math"

	"github.com/taigrr/facet/pkg/math3d"
)

// Camera is an orbit camera: the view always looks from Position toward
// Target with a fixed up vector.
//
// Rotation (pitch, yaw, roll in radians) is kept for input handling and
// HUD display but does not feed the view matrix.
type Camera struct {
	// Position in world space
	Position math3d.Vec3

	// Orientation (Euler angles in radians): X pitch, Y yaw, Z roll
	Rotation math3d.Vec3

	// Look-at point and up vector. Up must never be collinear with
	// Position-Target.
	Target   math3d.Vec3
	UpVector math3d.Vec3

	// Projection parameters
	FOV         float64 // Vertical field of view in radians
	AspectRatio float64 // Width / Height
	Near        float64 // Near plane distance
	Far         float64 // Far plane distance

	// Cached matrices, rebuilt when their inputs change
	viewMatrix math3d.Mat4
	viewKey    [3]math3d.Vec3
	viewValid  bool
	projMatrix math3d.Mat4
	projKey    [4]float64
	projValid  bool
}

// NewCamera creates a camera five units in front of the origin on -Z,
// looking at the origin.
func NewCamera() *Camera {
	return &Camera{
		Position:    math3d.V3(0, 0, -5),
		Target:      math3d.Zero3(),
		UpVector:    math3d.Up(),
		FOV:         math.Pi / 4, // 45 degrees
		AspectRatio: 1,
		Near:        0.1,
		Far:         1000,
	}
}

// SetPosition sets the camera position.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// Rotate adds the given angles (in radians) to the camera rotation.
func (c *Camera) Rotate(deltaPitch, deltaYaw, deltaRoll float64) {
	c.Rotation = c.Rotation.Add(math3d.V3(deltaPitch, deltaYaw, deltaRoll))
}

// SetFOV sets the field of view (in radians).
func (c *Camera) SetFOV(fov float64) {
	c.FOV = fov
}

// SetViewport sets the aspect ratio from surface dimensions.
// Zero or negative heights are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.AspectRatio = float64(width) / float64(height)
}

// SetClipPlanes sets the near and far plane distances.
func (c *Camera) SetClipPlanes(near, far float64) {
	c.Near = near
	c.Far = far
}

// ViewMatrix returns LookAt(Position, Target, UpVector).
func (c *Camera) ViewMatrix() math3d.Mat4 {
	key := [3]math3d.Vec3{c.Position, c.Target, c.UpVector}
	if !c.viewValid || key != c.viewKey {
		c.viewMatrix = math3d.LookAt(c.Position, c.Target, c.UpVector)
		c.viewKey = key
		c.viewValid = true
	}
	return c.viewMatrix
}

// ProjectionMatrix returns the perspective projection matrix.
func (c *Camera) ProjectionMatrix() math3d.Mat4 {
	key := [4]float64{c.FOV, c.AspectRatio, c.Near, c.Far}
	if !c.projValid || key != c.projKey {
		c.projMatrix = math3d.Perspective(c.FOV, c.AspectRatio, c.Near, c.Far)
		c.projKey = key
		c.projValid = true
	}
	return c.projMatrix
}

// ViewProjectionMatrix returns the combined view-projection matrix
// (view applied first).
func (c *Camera) ViewProjectionMatrix() math3d.Mat4 {
	return c.ViewMatrix().Mul(c.ProjectionMatrix())
}

// Pipeline returns the transform pipeline for a surface of the given size.
func (c *Camera) Pipeline(width, height int) Pipeline {
	return NewPipeline(c.ViewMatrix(), c.ProjectionMatrix(), width, height)
}
