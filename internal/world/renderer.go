package world

import (
	_ "embed"
	"log/slog"
	"spacefolio/internal/components"
	"spacefolio/internal/engine"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	//go:embed shaders/standard.vs
	shaderVS string
	//go:embed shaders/standard.fs
	shaderFS string
)

// Renderer draws a scene into the raylib window. It must be created after
// the window and used only from the thread that opened it.
type Renderer struct {
	Shader rl.Shader

	// Overlay draws 2D content over the finished 3D frame.
	Overlay func()

	// Per-frame culling stats.
	Drawn  int
	Culled int

	log *slog.Logger

	locViewPos    int32
	locLightPos   int32
	locLightColor int32
	locAmbient    int32
	locUseNormal  int32
}

// NewRenderer binds to the open window. Without one there is nothing to
// draw into and it returns ErrNoSurface.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if !rl.IsWindowReady() {
		return nil, ErrNoSurface
	}
	if logger == nil {
		logger = slog.Default()
	}
	r := &Renderer{log: logger.With("component", "renderer")}

	r.Shader = rl.LoadShaderFromMemory(shaderVS, shaderFS)

	// Normal maps go to their own sampler; raylib binds MapNormal to this location.
	locs := unsafe.Slice(r.Shader.Locs, rl.ShaderLocMapCubemap+1)
	locs[rl.ShaderLocMapNormal] = rl.GetShaderLocation(r.Shader, "normalMap")

	r.locViewPos = rl.GetShaderLocation(r.Shader, "viewPos")
	r.locLightPos = rl.GetShaderLocation(r.Shader, "lightPos")
	r.locLightColor = rl.GetShaderLocation(r.Shader, "lightColor")
	r.locAmbient = rl.GetShaderLocation(r.Shader, "ambient")
	r.locUseNormal = rl.GetShaderLocation(r.Shader, "useNormalMap")

	r.log.Info("renderer ready",
		"width", rl.GetRenderWidth(),
		"height", rl.GetRenderHeight(),
		"dpi", rl.GetWindowScaleDPI().X)
	return r, nil
}

// Render draws one frame: background, then every visible mesh lit by the
// scene's lights.
func (r *Renderer) Render(scene *engine.Scene, camera *components.Camera) {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	r.drawBackground(scene)

	rl.BeginMode3D(camera.GetRaylibCamera())
	// raylib's default clip planes differ from the camera's
	rl.SetMatrixProjection(camera.ProjectionMatrix())

	r.updateLights(scene, camera)
	r.drawScene(scene, camera)

	rl.EndMode3D()

	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
}

func (r *Renderer) drawBackground(scene *engine.Scene) {
	bg := scene.Background
	if bg == nil {
		return
	}
	src := rl.Rectangle{Width: float32(bg.GPU.Width), Height: float32(bg.GPU.Height)}
	dst := rl.Rectangle{Width: float32(rl.GetScreenWidth()), Height: float32(rl.GetScreenHeight())}
	rl.DrawTexturePro(bg.GPU, src, dst, rl.Vector2{}, 0, rl.White)
}

func (r *Renderer) updateLights(scene *engine.Scene, camera *components.Camera) {
	pos := camera.Position.RL()
	rl.SetShaderValue(r.Shader, r.locViewPos, []float32{pos.X, pos.Y, pos.Z}, rl.ShaderUniformVec3)

	for _, g := range scene.FindByTag(TagLight) {
		if p := engine.GetComponent[*components.PointLight](g); p != nil {
			lp := p.GetPosition()
			rl.SetShaderValue(r.Shader, r.locLightPos, []float32{lp.X, lp.Y, lp.Z}, rl.ShaderUniformVec3)
			rl.SetShaderValue(r.Shader, r.locLightColor, p.GetColorFloat(), rl.ShaderUniformVec4)
		}
		if a := engine.GetComponent[*components.AmbientLight](g); a != nil {
			rl.SetShaderValue(r.Shader, r.locAmbient, a.GetColorFloat(), rl.ShaderUniformVec4)
		}
	}
}

func (r *Renderer) drawScene(scene *engine.Scene, camera *components.Camera) {
	frustum := ExtractFrustum(camera)
	r.Drawn, r.Culled = 0, 0

	for _, g := range scene.GameObjects {
		mr := engine.GetComponent[*components.MeshRenderer](g)
		if mr == nil {
			continue
		}
		center, radius := mr.BoundingSphere()
		if !frustum.ContainsSphere(center, radius) {
			r.Culled++
			continue
		}
		mr.Prepare(r.Shader)
		if mr.Material.Kind == components.Standard {
			useNormal := float32(0)
			if mr.Material.NormalMap != nil {
				useNormal = 1
			}
			rl.SetShaderValue(r.Shader, r.locUseNormal, []float32{useNormal}, rl.ShaderUniformFloat)
		}
		mr.Draw()
		r.Drawn++
	}
}

// Unload releases the shader and every uploaded mesh.
func (r *Renderer) Unload(scene *engine.Scene) {
	for _, g := range scene.GameObjects {
		if mr := engine.GetComponent[*components.MeshRenderer](g); mr != nil {
			mr.Unload()
		}
	}
	rl.UnloadShader(r.Shader)
}
