package engine

import rl "github.com/gen2brain/raylib-go/raylib"

// Vec3 is a double precision vector. Transforms accumulate small per-frame
// increments for the lifetime of the process, so they are kept in float64 and
// only narrowed to raylib's float32 vectors at draw time.
type Vec3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// RL converts to a raylib vector.
func (v Vec3) RL() rl.Vector3 {
	return rl.Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func (v Vec3) Array() [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}
