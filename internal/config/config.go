// Package config loads spacefolio settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// DefaultPath is read when no --config flag is given.
const DefaultPath = "spacefolio.toml"

type Config struct {
	Window Window `toml:"window"`
	Page   Page   `toml:"page"`
	Assets Assets `toml:"assets"`
	Scene  Scene  `toml:"scene"`
	Log    Log    `toml:"log"`
}

type Window struct {
	Title     string `toml:"title"`
	Width     int    `toml:"width"`  // 0 = monitor width
	Height    int    `toml:"height"` // 0 = monitor height
	TargetFPS int    `toml:"target_fps"`
	HighDPI   bool   `toml:"high_dpi"`
}

// Page describes the virtual document whose scroll offset drives the camera.
type Page struct {
	Height    float64 `toml:"height"`
	WheelStep float64 `toml:"wheel_step"`
}

type Assets struct {
	Dir        string `toml:"dir"`
	Background string `toml:"background"`
	Avatar     string `toml:"avatar"`
	Moon       string `toml:"moon"`
	MoonNormal string `toml:"moon_normal"`
	Watch      bool   `toml:"watch"`
}

type Scene struct {
	Stars      int     `toml:"stars"`
	StarSpread float64 `toml:"star_spread"`
	Seed       int64   `toml:"seed"` // 0 = seed from the clock
}

type Log struct {
	Level string `toml:"level"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:     "spacefolio",
			Width:     1280,
			Height:    720,
			TargetFPS: 60,
			HighDPI:   true,
		},
		Page: Page{
			Height:    4000,
			WheelStep: 100,
		},
		Assets: Assets{
			Dir:        ".",
			Background: "images/space.jpg",
			Avatar:     "images/meblue.jpg",
			Moon:       "images/moon.jpg",
			MoonNormal: "images/normal.jpg",
		},
		Scene: Scene{
			Stars:      300,
			StarSpread: 100,
		},
		Log: Log{Level: "info"},
	}
}

// Load overlays the TOML file at path on Default. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height))
	}
	if c.Page.Height <= 0 {
		errs = append(errs, fmt.Errorf("page height must be positive, got %v", c.Page.Height))
	}
	if c.Page.WheelStep <= 0 {
		errs = append(errs, fmt.Errorf("page wheel_step must be positive, got %v", c.Page.WheelStep))
	}
	if c.Scene.Stars < 0 {
		errs = append(errs, fmt.Errorf("scene stars must not be negative, got %d", c.Scene.Stars))
	}
	if c.Scene.StarSpread <= 0 {
		errs = append(errs, fmt.Errorf("scene star_spread must be positive, got %v", c.Scene.StarSpread))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// NewLogger returns a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.Log.Level)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
