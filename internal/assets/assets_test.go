package assets

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jpegBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}

type fakeGPU struct {
	uploads  int
	unloads  int
	nextID   uint32
	fileType string
}

func (g *fakeGPU) options() Options {
	return Options{
		Decode: func(data []byte, fileType string) (*rl.Image, error) {
			g.fileType = fileType
			return &rl.Image{Width: 4, Height: 2}, nil
		},
		Upload: func(img *rl.Image) rl.Texture2D {
			g.uploads++
			g.nextID++
			return rl.Texture2D{ID: g.nextID, Width: img.Width, Height: img.Height}
		},
		Unload: func(rl.Texture2D) { g.unloads++ },
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func waitLoads(t *testing.T, l *Loader) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, l.Wait(ctx))
}

func TestLoaderResolvesOnPoll(t *testing.T) {
	gpu := &fakeGPU{}
	fsys := fstest.MapFS{"images/moon.jpg": {Data: jpegBytes}}
	l := NewLoader(fsys, gpu.options())

	f := l.Load("images/moon.jpg")
	assert.Equal(t, Pending, f.State())

	var tex *Texture
	f.Then(func(t *Texture) { tex = t })

	waitLoads(t, l)

	require.Equal(t, Resolved, f.State())
	require.NotNil(t, tex)
	assert.Equal(t, "images/moon.jpg", tex.Path)
	assert.Equal(t, int32(4), tex.GPU.Width)
	assert.Equal(t, ".jpg", gpu.fileType)
	assert.Equal(t, 1, gpu.uploads)
	assert.Equal(t, 0, l.Pending())
}

func TestLoaderSharesLoadPerPath(t *testing.T) {
	gpu := &fakeGPU{}
	fsys := fstest.MapFS{"a.jpg": {Data: jpegBytes}}
	l := NewLoader(fsys, gpu.options())

	f1 := l.Load("a.jpg")
	f2 := l.Load("a.jpg")
	waitLoads(t, l)

	assert.Same(t, f1, f2)
	assert.Equal(t, 1, gpu.uploads)
	assert.Equal(t, []string{"a.jpg"}, l.Paths())
}

func TestLoaderMissingFileFailsOnlyThatTexture(t *testing.T) {
	gpu := &fakeGPU{}
	fsys := fstest.MapFS{
		"images/space.jpg":  {Data: jpegBytes},
		"images/meblue.jpg": {Data: jpegBytes},
		"images/normal.jpg": {Data: jpegBytes},
	}
	l := NewLoader(fsys, gpu.options())

	ok := []*Future[*Texture]{
		l.Load("images/space.jpg"),
		l.Load("images/meblue.jpg"),
		l.Load("images/normal.jpg"),
	}
	missing := l.Load("images/moon.jpg")
	var caught error
	missing.Catch(func(err error) { caught = err })

	waitLoads(t, l)

	for _, f := range ok {
		assert.Equal(t, Resolved, f.State())
	}
	assert.Equal(t, Failed, missing.State())
	assert.ErrorIs(t, caught, os.ErrNotExist)
	assert.Contains(t, caught.Error(), `load texture "images/moon.jpg"`)
}

func TestLoaderRejectsNonImage(t *testing.T) {
	gpu := &fakeGPU{}
	fsys := fstest.MapFS{"notes.jpg": {Data: []byte("plain text, not a picture")}}
	l := NewLoader(fsys, gpu.options())

	f := l.Load("notes.jpg")
	waitLoads(t, l)

	_, err := f.Result()
	assert.ErrorIs(t, err, ErrNotImage)
	assert.Equal(t, 0, gpu.uploads)
}

func TestLoaderDecodeError(t *testing.T) {
	gpu := &fakeGPU{}
	opts := gpu.options()
	opts.Decode = func([]byte, string) (*rl.Image, error) { return nil, errors.New("corrupt") }
	l := NewLoader(fstest.MapFS{"a.jpg": {Data: jpegBytes}}, opts)

	f := l.Load("a.jpg")
	waitLoads(t, l)

	assert.Equal(t, Failed, f.State())
}

func TestLoaderPollDoesNotBlock(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, (&fakeGPU{}).options())
	assert.Equal(t, 0, l.Poll())
}

func TestLoaderWaitHonoursContext(t *testing.T) {
	l := NewLoader(fstest.MapFS{}, (&fakeGPU{}).options())
	l.pending = 1 // a load that never finishes

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, l.Wait(ctx), context.Canceled)
}

func TestLoaderReloadSwapsInPlace(t *testing.T) {
	gpu := &fakeGPU{}
	l := NewLoader(fstest.MapFS{"a.jpg": {Data: jpegBytes}}, gpu.options())

	assert.False(t, l.Reload("a.jpg"), "reload before load should be refused")

	var tex *Texture
	l.Load("a.jpg").Then(func(t *Texture) { tex = t })
	waitLoads(t, l)
	firstID := tex.GPU.ID

	require.True(t, l.Reload("a.jpg"))
	waitLoads(t, l)

	assert.Equal(t, 1, tex.Version)
	assert.NotEqual(t, firstID, tex.GPU.ID)
	assert.Equal(t, 1, gpu.unloads)
}

func TestLoaderUnload(t *testing.T) {
	gpu := &fakeGPU{}
	l := NewLoader(fstest.MapFS{"a.jpg": {Data: jpegBytes}, "b.jpg": {Data: jpegBytes}}, gpu.options())
	l.Load("a.jpg")
	l.Load("b.jpg")
	l.Load("missing.jpg")
	waitLoads(t, l)

	l.Unload()
	assert.Equal(t, 2, gpu.unloads)
}

func TestWatcherReloadsChangedFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "images"), 0o755))
	path := filepath.Join(root, "images", "moon.jpg")
	require.NoError(t, os.WriteFile(path, jpegBytes, 0o644))

	gpu := &fakeGPU{}
	l := NewLoader(os.DirFS(root), gpu.options())
	var tex *Texture
	l.Load("images/moon.jpg").Then(func(t *Texture) { tex = t })
	waitLoads(t, l)
	require.NotNil(t, tex)

	w, err := NewWatcher(l, root, gpu.options().Logger)
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	require.NoError(t, os.WriteFile(path, append(jpegBytes, 0x01), 0o644))

	deadline := time.Now().Add(5 * time.Second)
	for tex.Version == 0 && time.Now().Before(deadline) {
		l.Poll()
		time.Sleep(10 * time.Millisecond)
	}
	assert.GreaterOrEqual(t, tex.Version, 1)
}
