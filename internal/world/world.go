package world

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"spacefolio/internal/assets"
	"spacefolio/internal/components"
	"spacefolio/internal/config"
	"spacefolio/internal/engine"
	_ "spacefolio/internal/scripts" // registers FrameSpin and ScrollSpin
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// ErrNoSurface is returned by Build when there is nothing to render to.
var ErrNoSurface = errors.New("no output surface")

// Camera projection, fixed at startup.
const (
	CameraFOV  = 75
	CameraNear = 0.1
	CameraFar  = 1000
)

var CameraStart = engine.V3(-3, 0, 30)

// Per-scroll camera factors: position = offset * factor.
var CameraScrollFactor = engine.V3(-0.0002, -0.0002, -0.01)

// Rotation increments in radians.
var (
	TorusFrameSpin   = engine.V3(0.01, 0.005, 0.01)
	MoonFrameSpin    = engine.V3(0.005, 0, 0)
	MoonScrollSpin   = engine.V3(0.05, 0.075, 0.05)
	AvatarScrollSpin = engine.V3(0, 0.01, 0.01)
)

const (
	TagStar  = "star"
	TagLight = "light"
)

// Drawer renders the scene from the camera.
type Drawer interface {
	Render(scene *engine.Scene, camera *components.Camera)
}

// TextureLoader starts an asynchronous texture load.
type TextureLoader interface {
	Load(path string) *assets.Future[*assets.Texture]
}

// ScrollSource reports the page's current vertical offset.
type ScrollSource interface {
	Offset() float64
}

// World is the state shared by the scene builder, the scroll responder and
// the frame loop.
type World struct {
	Scene  *engine.Scene
	Camera *components.Camera
	Drawer Drawer
	Scroll ScrollSource

	Torus      *engine.GameObject
	Moon       *engine.GameObject
	Avatar     *engine.GameObject
	PointLight *engine.GameObject
	Ambient    *engine.GameObject
	Stars      []*engine.GameObject

	Background *assets.Future[*assets.Texture]
	AvatarMap  *assets.Future[*assets.Texture]
	MoonMap    *assets.Future[*assets.Texture]
	MoonNormal *assets.Future[*assets.Texture]

	// AssetErrors collects failed texture loads as they settle.
	AssetErrors []error

	log *slog.Logger
}

type Options struct {
	Config config.Config
	// Viewport size at startup; the aspect ratio is not re-evaluated later.
	Width, Height int
	Drawer        Drawer
	Loader        TextureLoader
	Scroll        ScrollSource
	Rand          *rand.Rand
	Logger        *slog.Logger
}

// Build assembles the scene once and issues the first render. Textures are
// requested but not waited for.
func Build(opts Options) (*World, error) {
	if opts.Drawer == nil {
		return nil, ErrNoSurface
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("viewport %dx%d: %w", opts.Width, opts.Height, ErrNoSurface)
	}
	if opts.Loader == nil {
		return nil, errors.New("build world: nil texture loader")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rng := opts.Rand
	if rng == nil {
		seed := opts.Config.Scene.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	w := &World{
		Scene:  engine.NewScene("Main"),
		Drawer: opts.Drawer,
		Scroll: opts.Scroll,
		log:    logger.With("component", "world"),
	}

	aspect := float32(opts.Width) / float32(opts.Height)
	w.Camera = components.NewCamera(CameraFOV, aspect, CameraNear, CameraFar)
	w.Camera.Position = CameraStart

	w.createTorus()
	w.createLights()
	w.createStars(rng, opts.Config.Scene.Stars, opts.Config.Scene.StarSpread)
	w.createAvatar()
	w.createMoon()
	w.loadTextures(opts.Loader, opts.Config.Assets)

	// camera follows the page after the scroll spins have run
	w.Scene.Scrolled.AddListener(w.moveCamera)

	w.Scene.Start()
	w.log.Info("scene built",
		"objects", len(w.Scene.GameObjects),
		"stars", len(w.Stars),
		"aspect", aspect)

	w.render()
	return w, nil
}

func addSpin(g *engine.GameObject, script string, delta engine.Vec3) {
	g.AddComponent(engine.MustCreateScript(script, map[string]any{
		"x": delta.X, "y": delta.Y, "z": delta.Z,
	}))
}

func (w *World) createTorus() {
	torus := engine.NewGameObject("Torus")
	torus.AddComponent(components.NewMeshRenderer(
		components.Torus{Radius: 10, Tube: 1, RadialSegments: 8, TubularSegments: 100},
		components.NewStandardMaterial(components.HexColor(0xff6347)),
	))
	addSpin(torus, "FrameSpin", TorusFrameSpin)
	w.Scene.AddGameObject(torus)
	w.Torus = torus
}

func (w *World) createLights() {
	point := engine.NewGameObject("PointLight")
	point.Tags = []string{TagLight}
	point.Transform.Position = engine.V3(5, 5, 5)
	point.AddComponent(components.NewPointLight())
	w.Scene.AddGameObject(point)
	w.PointLight = point

	ambient := engine.NewGameObject("AmbientLight")
	ambient.Tags = []string{TagLight}
	ambient.AddComponent(components.NewAmbientLight())
	w.Scene.AddGameObject(ambient)
	w.Ambient = ambient
}

// createStars scatters count small spheres, each coordinate drawn
// independently from (-spread/2, spread/2].
func (w *World) createStars(rng *rand.Rand, count int, spread float64) {
	geometry := components.Sphere{Radius: 0.25, WidthSegments: 24, HeightSegments: 24}
	w.Stars = make([]*engine.GameObject, 0, count)

	for i := range count {
		star := engine.NewGameObject(fmt.Sprintf("Star_%d", i))
		star.Tags = []string{TagStar}
		star.Transform.Position = engine.V3(
			spread*(0.5-rng.Float64()),
			spread*(0.5-rng.Float64()),
			spread*(0.5-rng.Float64()),
		)
		star.AddComponent(components.NewMeshRenderer(geometry, components.NewStandardMaterial(rl.White)))
		w.Scene.AddGameObject(star)
		w.Stars = append(w.Stars, star)
	}
}

func (w *World) createAvatar() {
	avatar := engine.NewGameObject("Avatar")
	avatar.Transform.Position = engine.V3(2, 0, -5)
	avatar.Transform.Scale = engine.V3(3, 3, 3)
	avatar.AddComponent(components.NewMeshRenderer(
		components.Box{Width: 1, Height: 1, Depth: 1},
		components.NewBasicMaterial(rl.White),
	))
	addSpin(avatar, "ScrollSpin", AvatarScrollSpin)
	w.Scene.AddGameObject(avatar)
	w.Avatar = avatar
}

func (w *World) createMoon() {
	moon := engine.NewGameObject("Moon")
	moon.Transform.Position = engine.V3(10, 0, 30)
	moon.AddComponent(components.NewMeshRenderer(
		components.Sphere{Radius: 3, WidthSegments: 32, HeightSegments: 32},
		components.NewStandardMaterial(rl.White),
	))
	addSpin(moon, "FrameSpin", MoonFrameSpin)
	addSpin(moon, "ScrollSpin", MoonScrollSpin)
	w.Scene.AddGameObject(moon)
	w.Moon = moon
}

// loadTextures requests all four images. Each completion only touches its
// own material, so one failure leaves the others and the frame loop alone.
func (w *World) loadTextures(loader TextureLoader, paths config.Assets) {
	avatarMat := engine.GetComponent[*components.MeshRenderer](w.Avatar).Material
	moonMat := engine.GetComponent[*components.MeshRenderer](w.Moon).Material

	w.Background = w.watchLoad(loader, paths.Background, func(t *assets.Texture) {
		w.Scene.Background = t
	})
	w.AvatarMap = w.watchLoad(loader, paths.Avatar, func(t *assets.Texture) {
		avatarMat.Map = t
	})
	w.MoonMap = w.watchLoad(loader, paths.Moon, func(t *assets.Texture) {
		moonMat.Map = t
	})
	w.MoonNormal = w.watchLoad(loader, paths.MoonNormal, func(t *assets.Texture) {
		moonMat.NormalMap = t
	})
}

func (w *World) watchLoad(loader TextureLoader, path string, apply func(*assets.Texture)) *assets.Future[*assets.Texture] {
	return loader.Load(path).
		Then(apply).
		Catch(func(err error) {
			w.AssetErrors = append(w.AssetErrors, err)
		})
}

// ScrollTo applies one scroll event at offset: the moon and avatar turn by
// their scroll increments, then the camera is placed from the offset.
// Offsets are the page top relative to the viewport, so scrolling down gives
// negative values.
func (w *World) ScrollTo(offset float64) {
	w.Scene.Scroll(offset)
}

// HandleScroll reads the offset from the page and applies it. It is the
// scroll event listener; with no page attached the offset is 0.
func (w *World) HandleScroll() {
	offset := 0.0
	if w.Scroll != nil {
		offset = w.Scroll.Offset()
	}
	w.ScrollTo(offset)
}

func (w *World) moveCamera(offset float64) {
	w.Camera.Position = engine.V3(
		offset*CameraScrollFactor.X,
		offset*CameraScrollFactor.Y,
		offset*CameraScrollFactor.Z,
	)
}

// Step is one frame: advance the per-frame spins, then render.
func (w *World) Step() {
	w.Scene.Update()
	w.render()
}

func (w *World) render() {
	w.Drawer.Render(w.Scene, w.Camera)
}
