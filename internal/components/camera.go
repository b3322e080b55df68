package components

import (
	"spacefolio/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Camera is a perspective camera looking down -Z. Its projection is fixed
// at construction; only Position changes afterwards.
type Camera struct {
	FOV      float32 // vertical, degrees
	Aspect   float32
	Near     float32
	Far      float32
	Position engine.Vec3
}

func NewCamera(fov, aspect, near, far float32) *Camera {
	return &Camera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
	}
}

// Forward is the fixed view direction.
var Forward = rl.Vector3{X: 0, Y: 0, Z: -1}

func (c *Camera) GetRaylibCamera() rl.Camera3D {
	pos := c.Position.RL()
	return rl.Camera3D{
		Position:   pos,
		Target:     rl.Vector3Add(pos, Forward),
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}

// ViewMatrix and ProjectionMatrix are computed on the CPU; they match what
// raylib uses inside BeginMode3D for the same camera.
func (c *Camera) ViewMatrix() rl.Matrix {
	cam := c.GetRaylibCamera()
	return rl.MatrixLookAt(cam.Position, cam.Target, cam.Up)
}

func (c *Camera) ProjectionMatrix() rl.Matrix {
	return rl.MatrixPerspective(c.FOV*rl.Deg2rad, c.Aspect, c.Near, c.Far)
}
