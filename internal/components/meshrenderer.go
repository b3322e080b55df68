package components

import (
	"math"
	"spacefolio/internal/engine"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshRenderer pairs a Geometry with a Material. The GPU model is built on
// first draw so scenes can be assembled and tested without a GL context.
type MeshRenderer struct {
	engine.BaseComponent
	Geometry Geometry
	Material *Material

	model  rl.Model
	loaded bool
	// texture versions currently bound, -1 when unbound
	mapVersion    int
	normalVersion int
}

func NewMeshRenderer(geometry Geometry, material *Material) *MeshRenderer {
	return &MeshRenderer{
		Geometry:      geometry,
		Material:      material,
		mapVersion:    -1,
		normalVersion: -1,
	}
}

// BoundingSphere returns the world-space center and radius used for culling.
func (m *MeshRenderer) BoundingSphere() (rl.Vector3, float32) {
	g := m.GetGameObject()
	if g == nil {
		return rl.Vector3Zero(), 0
	}
	s := g.Transform.Scale
	scale := math.Max(math.Abs(s.X), math.Max(math.Abs(s.Y), math.Abs(s.Z)))
	return g.Transform.Position.RL(), float32(m.Geometry.BoundingRadius() * scale)
}

// Prepare uploads the mesh if it has not been uploaded yet.
func (m *MeshRenderer) Prepare(shader rl.Shader) {
	if m.loaded {
		return
	}
	m.model = rl.LoadModelFromMesh(m.Geometry.GenMesh())
	if m.Material.Kind == Standard {
		m.model.Materials.Shader = shader
	}
	m.loaded = true
}

// bindTextures points the model's material maps at the current textures,
// picking up loads and reloads that finished since the last frame.
func (m *MeshRenderer) bindTextures() {
	mat := m.Material
	if mat.Map != nil && m.mapVersion != mat.Map.Version {
		rl.SetMaterialTexture(m.model.Materials, rl.MapAlbedo, mat.Map.GPU)
		m.mapVersion = mat.Map.Version
	}
	if mat.NormalMap != nil && m.normalVersion != mat.NormalMap.Version {
		rl.SetMaterialTexture(m.model.Materials, rl.MapNormal, mat.NormalMap.GPU)
		m.normalVersion = mat.NormalMap.Version
	}
}

// Tint is the color the model is drawn with: white once a color map is
// bound so the texture shows unaltered.
func (m *MeshRenderer) Tint() rl.Color {
	if m.Material.Map != nil {
		return rl.White
	}
	return m.Material.Color
}

func (m *MeshRenderer) Draw() {
	g := m.GetGameObject()
	if g == nil || !g.Active || !m.loaded {
		return
	}
	m.bindTextures()
	m.model.Transform = ModelMatrix(g.Transform)
	rl.DrawModel(m.model, rl.Vector3Zero(), 1.0, m.Tint())
}

func (m *MeshRenderer) Unload() {
	// UnloadModel leaves material textures alone; the asset loader owns them.
	if m.loaded {
		rl.UnloadModel(m.model)
		m.loaded = false
		m.mapVersion, m.normalVersion = -1, -1
	}
}

// ModelMatrix builds scale, then XYZ Euler rotation, then translation.
// Angles are wrapped to one turn before narrowing to float32 so long-running
// rotations keep their precision.
func ModelMatrix(t engine.Transform) rl.Matrix {
	scale := rl.MatrixScale(float32(t.Scale.X), float32(t.Scale.Y), float32(t.Scale.Z))
	rot := eulerXYZ(wrapAngle(t.Rotation.X), wrapAngle(t.Rotation.Y), wrapAngle(t.Rotation.Z))
	trans := rl.MatrixTranslate(float32(t.Position.X), float32(t.Position.Y), float32(t.Position.Z))
	return rl.MatrixMultiply(rl.MatrixMultiply(scale, rot), trans)
}

func wrapAngle(a float64) float32 {
	return float32(math.Remainder(a, 2*math.Pi))
}

// eulerXYZ is the rotation Rx * Ry * Rz in raylib's column layout.
func eulerXYZ(x, y, z float32) rl.Matrix {
	sx, cx := math32.Sincos(x)
	sy, cy := math32.Sincos(y)
	sz, cz := math32.Sincos(z)

	return rl.Matrix{
		M0: cy * cz, M4: -cy * sz, M8: sy, M12: 0,
		M1: cx*sz + sx*sy*cz, M5: cx*cz - sx*sy*sz, M9: -sx * cy, M13: 0,
		M2: sx*sz - cx*sy*cz, M6: sx*cz + cx*sy*sz, M10: cx * cy, M14: 0,
		M3: 0, M7: 0, M11: 0, M15: 1,
	}
}
