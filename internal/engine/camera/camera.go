// Package camera provides camera implementations for 3D rendering.
package camera

import (
	gomath "math"

	"github.com/soycan-sim/space-game/pkg/math"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center math.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.3,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     20000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in world space.
func (c *OrbitCamera) Position() math.Vec3 {
	x := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Sin(float64(c.RotationY)))
	y := c.Distance * float32(gomath.Sin(float64(c.RotationX)))
	z := c.Distance * float32(gomath.Cos(float64(c.RotationX))*gomath.Cos(float64(c.RotationY)))

	return math.Vec3{
		X: c.Center.X + x,
		Y: c.Center.Y + y,
		Z: c.Center.Z + z,
	}
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Position(), c.Center, up)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX += deltaY * c.DragSensitivity

	// Clamp pitch
	if c.RotationX < c.MinPitch {
		c.RotationX = c.MinPitch
	}
	if c.RotationX > c.MaxPitch {
		c.RotationX = c.MaxPitch
	}
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance -= delta * c.Distance * c.ZoomSensitivity
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
}

// FramePlanet centers the orbit on a planet and backs off far enough to see
// the whole body.
func (c *OrbitCamera) FramePlanet(center math.Vec3, radius float32) {
	c.Center = center
	c.Distance = radius * 3
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	c.RotationX = 0.3
	c.RotationY = 0.0
}

// FlyCamera moves freely through space, oriented by yaw and pitch. Pitch is
// clamped short of the poles so the horizon never rolls.
type FlyCamera struct {
	Pos   math.Vec3
	Yaw   float32 // Radians around world Y
	Pitch float32 // Radians around local X

	MoveSpeed        float32 // Units per second
	BoostMultiplier  float32 // Speed factor while boosting
	MouseSensitivity float32
}

// NewFlyCamera creates a fly camera with default settings.
func NewFlyCamera() *FlyCamera {
	return &FlyCamera{
		MoveSpeed:        30.0,
		BoostMultiplier:  8.0,
		MouseSensitivity: 0.0025,
	}
}

const maxPitch = float32(gomath.Pi/2) - 0.01

// Position returns the camera position in world space.
func (c *FlyCamera) Position() math.Vec3 {
	return c.Pos
}

// Orientation returns the camera rotation as a quaternion, yaw applied
// before pitch.
func (c *FlyCamera) Orientation() math.Quat {
	yaw := math.QuatFromAxisAngle(math.Vec3{X: 0, Y: 1, Z: 0}, c.Yaw)
	pitch := math.QuatFromAxisAngle(math.Vec3{X: 1, Y: 0, Z: 0}, c.Pitch)
	return yaw.Mul(pitch)
}

// Forward returns the direction the camera is looking.
func (c *FlyCamera) Forward() math.Vec3 {
	return c.Orientation().Rotate(math.Vec3{X: 0, Y: 0, Z: -1})
}

// Right returns the camera's right direction.
func (c *FlyCamera) Right() math.Vec3 {
	return c.Orientation().Rotate(math.Vec3{X: 1, Y: 0, Z: 0})
}

// ViewMatrix returns the view matrix for this camera.
func (c *FlyCamera) ViewMatrix() math.Mat4 {
	up := math.Vec3{X: 0, Y: 1, Z: 0}
	return math.LookAt(c.Pos, c.Pos.Add(c.Forward()), up)
}

// HandleMouse turns the camera from relative mouse motion.
func (c *FlyCamera) HandleMouse(deltaX, deltaY float32) {
	c.Yaw -= deltaX * c.MouseSensitivity
	c.Pitch -= deltaY * c.MouseSensitivity

	if c.Pitch < -maxPitch {
		c.Pitch = -maxPitch
	}
	if c.Pitch > maxPitch {
		c.Pitch = maxPitch
	}
}

// Move translates the camera along its local axes. The forward, right and
// up arguments are direction weights, usually -1, 0 or 1 from key state.
func (c *FlyCamera) Move(forward, right, up float32, dt float32, boost bool) {
	speed := c.MoveSpeed * dt
	if boost {
		speed *= c.BoostMultiplier
	}

	dir := c.Forward().Scale(forward).
		Add(c.Right().Scale(right)).
		Add(math.Vec3{X: 0, Y: 1, Z: 0}.Scale(up))
	if dir.Length() > 1 {
		dir = dir.Normalize()
	}

	c.Pos = c.Pos.Add(dir.Scale(speed))
}
