package scripts

import (
	"testing"

	"spacefolio/internal/engine"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSpinFromRegistry(t *testing.T) {
	c := engine.CreateScript("FrameSpin", map[string]any{"x": 0.01, "y": 0.005, "z": 0.01})
	require.NotNil(t, c)

	g := engine.NewGameObject("Torus")
	g.AddComponent(c)
	for i := 0; i < 10; i++ {
		g.Update()
	}

	assert.InDelta(t, 0.10, g.Transform.Rotation.X, 1e-9*10)
	assert.InDelta(t, 0.05, g.Transform.Rotation.Y, 1e-9*10)
	assert.InDelta(t, 0.10, g.Transform.Rotation.Z, 1e-9*10)
}

func TestScrollSpinIgnoresOffset(t *testing.T) {
	scene := engine.NewScene("Test")
	g := engine.NewGameObject("Avatar")
	g.AddComponent(engine.MustCreateScript("ScrollSpin", map[string]any{"y": 0.01, "z": 0.01}))
	scene.AddGameObject(g)

	scene.Scroll(0)
	scene.Scroll(-5000)

	assert.InDelta(t, 0.0, g.Transform.Rotation.X, 1e-12)
	assert.InDelta(t, 0.02, g.Transform.Rotation.Y, 1e-12)
	assert.InDelta(t, 0.02, g.Transform.Rotation.Z, 1e-12)
}

func TestScrollSpinDoesNotMoveOnFrames(t *testing.T) {
	g := engine.NewGameObject("Avatar")
	g.AddComponent(&ScrollSpin{Delta: engine.V3(1, 1, 1)})
	g.Update()
	assert.Equal(t, engine.Vec3{}, g.Transform.Rotation)
}

func TestSpinSerializers(t *testing.T) {
	name, props, ok := engine.SerializeScript(&FrameSpin{Delta: engine.V3(0.005, 0, 0)})
	require.True(t, ok)
	assert.Equal(t, "FrameSpin", name)
	assert.Equal(t, 0.005, props["x"])

	name, _, ok = engine.SerializeScript(&ScrollSpin{})
	require.True(t, ok)
	assert.Equal(t, "ScrollSpin", name)
}
