package game

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/taigrr/facet/pkg/math3d"
	"github.com/taigrr/facet/pkg/render"
)

// Input is the set of controls held down during a frame.
type Input struct {
	Forward, Back bool // W/S: camera z
	Left, Right   bool // A/D: camera x
	Rise, Sink    bool // Space/Shift: camera y

	PitchUp, PitchDown bool // arrow up/down
	YawLeft, YawRight  bool // arrow left/right
}

// axisSpring eases one coordinate toward its goal.
type axisSpring struct {
	vel    float64
	spring harmonica.Spring
}

// CameraRig moves a camera from keyboard input. Input moves a goal
// position; the camera follows it through critically damped springs.
type CameraRig struct {
	Camera      *render.Camera
	Goal        math3d.Vec3
	MoveSpeed   float64 // units per second
	RotateSpeed float64 // radians per second

	smooth  bool
	x, y, z axisSpring
}

// NewCameraRig creates a rig for cam stepping at fps. A negative
// frequency disables smoothing: the camera jumps to the goal.
func NewCameraRig(cam *render.Camera, fps int, frequency, moveSpeed, rotateSpeed float64) *CameraRig {
	r := &CameraRig{
		Camera:      cam,
		Goal:        cam.Position,
		MoveSpeed:   moveSpeed,
		RotateSpeed: rotateSpeed,
	}
	r.SetSmoothing(fps, frequency)
	return r
}

// SetSmoothing replaces the springs for a new frame rate and angular
// frequency. Velocities are kept.
func (r *CameraRig) SetSmoothing(fps int, frequency float64) {
	r.smooth = frequency > 0
	if !r.smooth {
		return
	}
	s := harmonica.NewSpring(harmonica.FPS(max(fps, 1)), frequency, 1.0)
	r.x.spring, r.y.spring, r.z.spring = s, s, s
}

// Jump moves both the goal and the camera to pos and stops any motion.
// Positions on the camera's vertical axis are ignored.
func (r *CameraRig) Jump(pos math3d.Vec3) {
	if r.onAxis(pos) {
		return
	}
	r.Goal = pos
	r.Camera.SetPosition(pos)
	r.x.vel, r.y.vel, r.z.vel = 0, 0, 0
}

// Update applies one frame of input, dt seconds long.
func (r *CameraRig) Update(in Input, dt float64) {
	step := r.MoveSpeed * dt
	move := math3d.V3(
		axis(in.Right, in.Left)*step,
		axis(in.Rise, in.Sink)*step,
		axis(in.Forward, in.Back)*step,
	)
	if next := r.Goal.Add(move); !r.onAxis(next) {
		r.Goal = next
	}

	turn := r.RotateSpeed * dt
	r.Camera.Rotate(axis(in.PitchUp, in.PitchDown)*turn, axis(in.YawLeft, in.YawRight)*turn, 0)

	if !r.smooth {
		r.Camera.SetPosition(r.Goal)
		return
	}

	pos := r.Camera.Position
	pos.X, r.x.vel = r.x.spring.Update(pos.X, r.x.vel, r.Goal.X)
	pos.Y, r.y.vel = r.y.spring.Update(pos.Y, r.y.vel, r.Goal.Y)
	pos.Z, r.z.vel = r.z.spring.Update(pos.Z, r.z.vel, r.Goal.Z)
	if !r.onAxis(pos) {
		r.Camera.SetPosition(pos)
	}
}

// onAxis reports whether an eye at pos would look along the up vector,
// which leaves the view matrix undefined.
func (r *CameraRig) onAxis(pos math3d.Vec3) bool {
	c := pos.Sub(r.Camera.Target).Cross(r.Camera.UpVector)
	return c.Len() < 1e-9 || math.IsNaN(c.Len())
}

func axis(pos, neg bool) float64 {
	switch {
	case pos && !neg:
		return 1
	case neg && !pos:
		return -1
	default:
		return 0
	}
}
