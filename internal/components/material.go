package components

import (
	"spacefolio/internal/assets"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type MaterialKind int

const (
	// Standard is lit by the scene's point and ambient lights.
	Standard MaterialKind = iota
	// Basic ignores lighting.
	Basic
)

func (k MaterialKind) String() string {
	if k == Basic {
		return "basic"
	}
	return "standard"
}

// Material is a surface description. Map and NormalMap stay nil until their
// texture loads; a material without a map renders in its flat Color.
type Material struct {
	Kind      MaterialKind
	Color     rl.Color
	Map       *assets.Texture
	NormalMap *assets.Texture
}

func NewStandardMaterial(color rl.Color) *Material {
	return &Material{Kind: Standard, Color: color}
}

func NewBasicMaterial(color rl.Color) *Material {
	return &Material{Kind: Basic, Color: color}
}

// HexColor converts 0xRRGGBB to an opaque color.
func HexColor(hex uint32) rl.Color {
	return rl.NewColor(uint8(hex>>16), uint8(hex>>8), uint8(hex), 255)
}
