package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
	"sync"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/h2non/filetype"
)

// ErrNotImage is returned when an asset's content is not a recognised raster image.
var ErrNotImage = errors.New("not an image")

// Texture is a GPU texture handle shared by every material that uses the
// same path. A reload swaps GPU in place and bumps Version.
type Texture struct {
	Path    string
	GPU     rl.Texture2D
	Version int
}

// Options wires the CPU and GPU halves of texture loading. Decode runs on a
// worker goroutine; Upload, Unload and Free run inside Poll.
type Options struct {
	Decode func(data []byte, fileType string) (*rl.Image, error)
	Upload func(img *rl.Image) rl.Texture2D
	Unload func(tex rl.Texture2D)
	Free   func(img *rl.Image)
	Logger *slog.Logger
}

// GPUOptions returns Options backed by raylib. Poll must then be called from
// the thread that owns the GL context.
func GPUOptions(logger *slog.Logger) Options {
	return Options{
		Decode: DecodeImage,
		Upload: UploadTexture,
		Unload: rl.UnloadTexture,
		Free:   rl.UnloadImage,
		Logger: logger,
	}
}

// HeadlessOptions decodes for real but never touches the GPU.
func HeadlessOptions(logger *slog.Logger) Options {
	return Options{
		Decode: DecodeImage,
		Upload: func(img *rl.Image) rl.Texture2D {
			return rl.Texture2D{Width: img.Width, Height: img.Height, Mipmaps: 1, Format: img.Format}
		},
		Unload: func(rl.Texture2D) {},
		Free:   rl.UnloadImage,
		Logger: logger,
	}
}

type completion struct {
	path string
	img  *rl.Image
	err  error
}

type entry struct {
	future  *Future[*Texture]
	texture *Texture
	loading bool
}

// Loader loads each texture path once, decoding in the background and
// finishing on the render thread. Nothing it does blocks the caller except
// Wait.
type Loader struct {
	fsys    fs.FS
	opts    Options
	log     *slog.Logger
	done    chan completion
	mu      sync.Mutex
	entries map[string]*entry
	pending int
}

func NewLoader(fsys fs.FS, opts Options) *Loader {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Unload == nil {
		opts.Unload = func(rl.Texture2D) {}
	}
	if opts.Free == nil {
		opts.Free = func(*rl.Image) {}
	}
	return &Loader{
		fsys:    fsys,
		opts:    opts,
		log:     logger.With("component", "assets"),
		done:    make(chan completion, 16),
		entries: make(map[string]*entry),
	}
}

// Load starts loading path and returns its future. Repeated calls for the
// same path share one load.
func (l *Loader) Load(path string) *Future[*Texture] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if e, ok := l.entries[path]; ok {
		return e.future
	}
	e := &entry{future: &Future[*Texture]{}, loading: true}
	l.entries[path] = e
	l.pending++
	go l.fetch(path)
	return e.future
}

// Reload re-reads a path that has already loaded successfully. It reports
// whether a reload was started.
func (l *Loader) Reload(path string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entries[path]
	if !ok || e.texture == nil || e.loading {
		return false
	}
	e.loading = true
	l.pending++
	go l.fetch(path)
	return true
}

func (l *Loader) fetch(path string) {
	img, err := l.read(path)
	if err != nil {
		err = fmt.Errorf("load texture %q: %w", path, err)
	}
	l.done <- completion{path: path, img: img, err: err}
}

func (l *Loader) read(path string) (*rl.Image, error) {
	data, err := fs.ReadFile(l.fsys, path)
	if err != nil {
		return nil, err
	}
	if !filetype.IsImage(data) {
		return nil, ErrNotImage
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, err
	}
	return l.opts.Decode(data, "."+kind.Extension)
}

// Poll applies every finished load without blocking and returns how many it
// applied. Continuations run here.
func (l *Loader) Poll() int {
	n := 0
	for {
		select {
		case c := <-l.done:
			l.apply(c)
			n++
		default:
			return n
		}
	}
}

// Wait blocks until no loads are in flight, applying them as they finish.
func (l *Loader) Wait(ctx context.Context) error {
	for l.Pending() > 0 {
		select {
		case c := <-l.done:
			l.apply(c)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (l *Loader) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending
}

func (l *Loader) apply(c completion) {
	l.mu.Lock()
	e := l.entries[c.path]
	e.loading = false
	l.pending--
	reload := e.texture != nil
	l.mu.Unlock()

	if c.err != nil {
		if reload {
			l.log.Warn("texture reload failed, keeping previous", "path", c.path, "err", c.err)
			return
		}
		l.log.Warn("texture load failed", "path", c.path, "err", c.err)
		e.future.fail(c.err)
		return
	}

	gpu := l.opts.Upload(c.img)
	l.opts.Free(c.img)

	if reload {
		l.opts.Unload(e.texture.GPU)
		e.texture.GPU = gpu
		e.texture.Version++
		l.log.Info("texture reloaded", "path", c.path, "version", e.texture.Version)
		return
	}

	tex := &Texture{Path: c.path, GPU: gpu}
	l.mu.Lock()
	e.texture = tex
	l.mu.Unlock()
	l.log.Debug("texture loaded", "path", c.path, "width", gpu.Width, "height", gpu.Height)
	e.future.resolve(tex)
}

// Paths returns every path passed to Load, sorted.
func (l *Loader) Paths() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	paths := make([]string, 0, len(l.entries))
	for p := range l.entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Unload releases every loaded texture.
func (l *Loader) Unload() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.entries {
		if e.texture != nil {
			l.opts.Unload(e.texture.GPU)
		}
	}
}
