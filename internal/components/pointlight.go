package components

import (
	"spacefolio/internal/engine"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type PointLight struct {
	engine.BaseComponent
	Color     rl.Color
	Intensity float32
}

func NewPointLight() *PointLight {
	return &PointLight{
		Color:     rl.White,
		Intensity: 1.0,
	}
}

func (p *PointLight) GetPosition() rl.Vector3 {
	if g := p.GetGameObject(); g != nil {
		return g.Transform.Position.RL()
	}
	return rl.Vector3Zero()
}

func (p *PointLight) GetColorFloat() []float32 {
	return colorFloat(p.Color, p.Intensity)
}

// AmbientLight lights every surface equally, from no direction.
type AmbientLight struct {
	engine.BaseComponent
	Color     rl.Color
	Intensity float32
}

func NewAmbientLight() *AmbientLight {
	return &AmbientLight{
		Color:     rl.White,
		Intensity: 1.0,
	}
}

func (a *AmbientLight) GetColorFloat() []float32 {
	return colorFloat(a.Color, a.Intensity)
}

func colorFloat(c rl.Color, intensity float32) []float32 {
	return []float32{
		float32(c.R) / 255.0 * intensity,
		float32(c.G) / 255.0 * intensity,
		float32(c.B) / 255.0 * intensity,
		1.0,
	}
}
