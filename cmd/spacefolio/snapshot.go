package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"spacefolio/internal/assets"
	"spacefolio/internal/components"
	"spacefolio/internal/engine"
	"spacefolio/internal/loop"
	"spacefolio/internal/world"
	"time"

	"github.com/spf13/cobra"
)

const (
	headlessWidth  = 1280
	headlessHeight = 720
)

// recorder stands in for the window when running headless.
type recorder struct {
	renders int
}

func (r *recorder) Render(*engine.Scene, *components.Camera) {
	r.renders++
}

type snapshotOptions struct {
	frames   int
	fps      int
	duration time.Duration
	scroll   float64
	out      string
	timeout  time.Duration
}

// scheduler runs a fixed frame count, or real-time ticks at fps for
// duration when a duration is given.
func (o *snapshotOptions) scheduler(ctx context.Context) (loop.Scheduler, context.Context, func(), error) {
	if o.duration <= 0 {
		return loop.Counted(o.frames), ctx, func() {}, nil
	}
	if o.fps <= 0 {
		return nil, nil, nil, fmt.Errorf("fps must be positive, got %d", o.fps)
	}
	tk := loop.NewTicker(time.Second / time.Duration(o.fps))
	ctx, cancel := context.WithTimeout(ctx, o.duration)
	return tk, ctx, func() {
		cancel()
		tk.Stop()
	}, nil
}

func newSnapshotCmd(flags *rootFlags) *cobra.Command {
	opts := &snapshotOptions{}
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Build the scene without a window and dump it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.load(cmd)
			if err != nil {
				return err
			}
			logger := cfg.NewLogger()

			width, height := cfg.Window.Width, cfg.Window.Height
			if width <= 0 || height <= 0 {
				width, height = headlessWidth, headlessHeight
			}

			loader := assets.NewLoader(os.DirFS(cfg.Assets.Dir), assets.HeadlessOptions(logger))
			rec := &recorder{}
			w, err := world.Build(world.Options{
				Config: cfg,
				Width:  width,
				Height: height,
				Drawer: rec,
				Loader: loader,
				Logger: logger,
			})
			if err != nil {
				return fmt.Errorf("build world: %w", err)
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()
			if err := loader.Wait(ctx); err != nil {
				return fmt.Errorf("wait for textures: %w", err)
			}

			sched, runCtx, stop, err := opts.scheduler(cmd.Context())
			if err != nil {
				return err
			}
			defer stop()

			w.HandleScroll()
			frames := loop.New(sched, w.Step)
			err = frames.Run(runCtx)
			if err != nil && !(errors.Is(err, context.DeadlineExceeded) && cmd.Context().Err() == nil) {
				return err
			}
			if cmd.Flags().Changed("scroll") {
				w.ScrollTo(opts.scroll)
			}

			logger.Info("snapshot",
				"frames", frames.Frames(),
				"textures", loader.Paths(),
				"renders", rec.renders,
				"asset_errors", len(w.AssetErrors))

			if opts.out == "-" {
				return w.EncodeSnapshot(cmd.OutOrStdout())
			}
			return w.SaveSnapshot(opts.out)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.frames, "frames", 0, "frames to run before the snapshot")
	f.IntVar(&opts.fps, "fps", 60, "frame rate when running for --duration")
	f.DurationVar(&opts.duration, "duration", 0, "run frames in real time for this long instead of --frames")
	f.Float64Var(&opts.scroll, "scroll", 0, "page offset to scroll to after the frames")
	f.StringVarP(&opts.out, "output", "o", "-", "output file, - for stdout")
	f.DurationVar(&opts.timeout, "timeout", 10*time.Second, "how long to wait for textures")
	return cmd
}
