package main

import (
	"bytes"
	"os"
	"path/filepath"
	"spacefolio/internal/world"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points the asset dir at an empty directory so every texture
// fails without touching the image decoder.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "spacefolio.toml")
	body := `
[assets]
dir = "` + filepath.ToSlash(dir) + `"

[scene]
seed = 3

[log]
level = "error"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func runSnapshot(t *testing.T, args ...string) *world.Snapshot {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(append([]string{"snapshot", "--config", writeConfig(t)}, args...))
	require.NoError(t, cmd.Execute())

	snap, err := world.DecodeSnapshot(&out)
	require.NoError(t, err)
	return snap
}

func TestSnapshotAfterFrames(t *testing.T) {
	snap := runSnapshot(t, "--frames", "10")

	torus := snap.Find("Torus")
	require.NotNil(t, torus)
	assert.InDelta(t, 0.1, torus.Rotation[0], 1e-9)
	assert.InDelta(t, 0.05, torus.Rotation[1], 1e-9)

	// the startup scroll at offset 0
	moon := snap.Find("Moon")
	require.NotNil(t, moon)
	assert.InDelta(t, 0.05+0.05, moon.Rotation[0], 1e-9)
	assert.InDelta(t, 0.075, moon.Rotation[1], 1e-9)
	for _, c := range snap.Camera.Position {
		assert.InDelta(t, 0, c, 1e-9)
	}
}

func TestSnapshotWithScroll(t *testing.T) {
	snap := runSnapshot(t, "--scroll", "1000")

	assert.InDelta(t, -0.2, snap.Camera.Position[0], 1e-9)
	assert.InDelta(t, -10, snap.Camera.Position[2], 1e-9)
}

func TestSnapshotToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "scene.json")
	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--config", writeConfig(t), "-o", out})
	require.NoError(t, cmd.Execute())

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	snap, err := world.DecodeSnapshot(f)
	require.NoError(t, err)
	assert.Len(t, snap.Objects, 305)
}

func TestSnapshotRealTime(t *testing.T) {
	snap := runSnapshot(t, "--duration", "100ms", "--fps", "200")

	torus := snap.Find("Torus")
	moon := snap.Find("Moon")
	require.NotNil(t, torus)
	require.NotNil(t, moon)

	assert.Positive(t, torus.Rotation[0])
	// both spins advance once per tick; the moon also took the startup scroll
	frames := torus.Rotation[0] / 0.01
	assert.InDelta(t, 0.05+0.005*frames, moon.Rotation[0], 1e-9)
}

func TestSnapshotRejectsZeroFPS(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--config", writeConfig(t), "--duration", "10ms", "--fps", "0"})
	assert.ErrorContains(t, cmd.Execute(), "fps must be positive")
}

func TestBadLogLevel(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetArgs([]string{"snapshot", "--config", writeConfig(t), "--log-level", "loud"})
	assert.Error(t, cmd.Execute())
}
