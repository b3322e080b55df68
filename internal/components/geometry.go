package components

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Geometry describes a mesh shape. GenMesh needs a GL context; everything
// else is plain data.
type Geometry interface {
	Kind() string
	// BoundingRadius is the radius of a sphere around the origin that
	// contains the unscaled shape.
	BoundingRadius() float64
	GenMesh() rl.Mesh
}

// Torus is a ring of major Radius with a circular tube of radius Tube.
type Torus struct {
	Radius          float64
	Tube            float64
	RadialSegments  int
	TubularSegments int
}

func (t Torus) Kind() string { return "torus" }

func (t Torus) BoundingRadius() float64 { return t.Radius + t.Tube }

// GenMesh maps onto raylib's torus, which is parameterised by overall size
// and the tube/ring ratio.
func (t Torus) GenMesh() rl.Mesh {
	ratio := t.Tube / t.Radius
	return rl.GenMeshTorus(float32(ratio), float32(2*t.Radius), t.RadialSegments, t.TubularSegments)
}

type Sphere struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

func (s Sphere) Kind() string { return "sphere" }

func (s Sphere) BoundingRadius() float64 { return s.Radius }

func (s Sphere) GenMesh() rl.Mesh {
	return rl.GenMeshSphere(float32(s.Radius), s.HeightSegments, s.WidthSegments)
}

type Box struct {
	Width, Height, Depth float64
}

func (b Box) Kind() string { return "box" }

func (b Box) BoundingRadius() float64 {
	return 0.5 * math.Sqrt(b.Width*b.Width+b.Height*b.Height+b.Depth*b.Depth)
}

func (b Box) GenMesh() rl.Mesh {
	return rl.GenMeshCube(float32(b.Width), float32(b.Height), float32(b.Depth))
}
