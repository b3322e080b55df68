package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"spacefolio/internal/assets"
	"spacefolio/internal/config"
	"spacefolio/internal/loop"
	"spacefolio/internal/world"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Game owns the window and wires page input, asset loading and the frame
// loop around a World.
type Game struct {
	Config   config.Config
	World    *world.World
	Page     *Page
	Renderer *world.Renderer
	Loader   *assets.Loader
	ShowHUD  bool

	log *slog.Logger

	// slider value from the last HUD draw, applied on the next frame
	sliderProgress float32
	sliderMoved    bool
}

func New(cfg config.Config, logger *slog.Logger) *Game {
	if logger == nil {
		logger = slog.Default()
	}
	return &Game{
		Config:  cfg,
		ShowHUD: true,
		log:     logger,
	}
}

// Run opens the window and drives frames until the window closes or ctx is
// cancelled.
func (g *Game) Run(ctx context.Context) error {
	cfg := g.Config

	if cfg.Window.HighDPI {
		rl.SetConfigFlags(rl.FlagWindowHighdpi)
	}
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Window.TargetFPS))

	// Initialize renderer after OpenGL context is created
	renderer, err := world.NewRenderer(g.log)
	if err != nil {
		return err
	}
	renderer.Overlay = g.DrawHUD
	g.Renderer = renderer

	g.Loader = assets.NewLoader(os.DirFS(cfg.Assets.Dir), assets.GPUOptions(g.log))
	defer g.Loader.Unload()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if cfg.Assets.Watch {
		if err := g.watchAssets(ctx); err != nil {
			g.log.Warn("asset watch disabled", "err", err)
		}
	}

	width, height := rl.GetScreenWidth(), rl.GetScreenHeight()
	g.Page = NewPage(cfg.Page.Height, float64(height), cfg.Page.WheelStep)

	g.World, err = world.Build(world.Options{
		Config: cfg,
		Width:  width,
		Height: height,
		Drawer: renderer,
		Loader: g.Loader,
		Scroll: g.Page,
		Logger: g.log,
	})
	if err != nil {
		return fmt.Errorf("build world: %w", err)
	}
	defer renderer.Unload(g.World.Scene)
	g.log.Info("textures requested", "paths", g.Loader.Paths())

	g.Page.Changed.AddListener(func(float64) { g.World.HandleScroll() })
	// one scroll at load, before any input
	g.World.HandleScroll()

	l := loop.New(loop.SchedulerFunc(g.nextFrame), g.World.Step)
	err = l.Run(ctx)
	g.log.Info("loop stopped", "frames", l.Frames())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (g *Game) watchAssets(ctx context.Context) error {
	watcher, err := assets.NewWatcher(g.Loader, g.Config.Assets.Dir, g.log)
	if err != nil {
		return err
	}
	go func() {
		defer watcher.Close()
		if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			g.log.Warn("asset watcher stopped", "err", err)
		}
	}()
	return nil
}

// nextFrame runs between frames: it finishes texture loads and turns input
// into page movement. raylib paces the frame inside EndDrawing.
func (g *Game) nextFrame(ctx context.Context) bool {
	if rl.WindowShouldClose() || ctx.Err() != nil {
		return false
	}
	g.Loader.Poll()
	g.handleInput()
	return true
}

func (g *Game) handleInput() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.Page.Wheel(float64(wheel))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyDown):
		g.Page.Wheel(-1)
	case rl.IsKeyPressed(rl.KeyUp):
		g.Page.Wheel(1)
	case rl.IsKeyPressed(rl.KeyPageDown):
		g.Page.SetTop(g.Page.Offset() - g.Page.Viewport)
	case rl.IsKeyPressed(rl.KeyPageUp):
		g.Page.SetTop(g.Page.Offset() + g.Page.Viewport)
	case rl.IsKeyPressed(rl.KeyHome):
		g.Page.SetTop(0)
	case rl.IsKeyPressed(rl.KeyEnd):
		g.Page.SetTop(-g.Page.Range())
	}

	if g.sliderMoved {
		g.sliderMoved = false
		g.Page.SetProgress(float64(g.sliderProgress))
	}

	// Toggle HUD
	if rl.IsKeyPressed(rl.KeyF1) {
		g.ShowHUD = !g.ShowHUD
	}
}

// DrawHUD draws the page scroll bar and frame stats over the scene.
func (g *Game) DrawHUD() {
	if !g.ShowHUD || g.Page == nil {
		return
	}
	screenW := float32(rl.GetScreenWidth())

	progress := float32(g.Page.Progress())
	bounds := rl.Rectangle{X: screenW - 230, Y: 10, Width: 160, Height: 16}
	value := gui.Slider(bounds, "", fmt.Sprintf("%3.0f%%", progress*100), progress, 0, 1)
	if value != progress {
		g.sliderProgress = value
		g.sliderMoved = true
	}

	rl.DrawFPS(10, 10)
	rl.DrawText("Wheel or arrows to scroll, F1 to hide", 10, 35, 16, rl.LightGray)
	rl.DrawText(fmt.Sprintf("Offset: %.0f", g.Page.Offset()), 10, 55, 16, rl.Green)
	if g.Renderer != nil {
		rl.DrawText(fmt.Sprintf("Drawn: %d  Culled: %d", g.Renderer.Drawn, g.Renderer.Culled), 10, 75, 16, rl.Green)
	}
	if g.World != nil && len(g.World.AssetErrors) > 0 {
		rl.DrawText(fmt.Sprintf("%d texture(s) failed", len(g.World.AssetErrors)), 10, 95, 16, rl.Orange)
	}
}
