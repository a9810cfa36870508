package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunward-gfx/sunward/engine/scene"
)

func TestSceneRegistry(t *testing.T) {
	background := scene.NewScene("background")
	overlay := scene.NewScene("overlay")

	e := NewEngine(WithScene(0, background))
	e.AddScene(10, overlay)

	assert.Equal(t, background, e.Scene(0))
	assert.Equal(t, overlay, e.Scene(10))
	assert.Nil(t, e.Scene(5))
	require.Len(t, e.Scenes(), 2)

	e.RemoveScene(0)
	assert.Nil(t, e.Scene(0))
	assert.Len(t, e.Scenes(), 1)

	// Scenes returns a copy; mutating it does not touch the registry.
	cp := e.Scenes()
	delete(cp, 10)
	assert.NotNil(t, e.Scene(10))
}

func TestRenderFrameWithoutScenesFails(t *testing.T) {
	e := NewEngine()
	_, err := e.RenderFrame()
	assert.Error(t, err)
}

func TestRenderFrameSkipsInactiveScenes(t *testing.T) {
	inactive := scene.NewScene("hidden", scene.WithActive(false))
	e := NewEngine(WithScene(0, inactive))

	_, err := e.RenderFrame()
	assert.Error(t, err)
}

func TestRenderFramePropagatesSceneErrors(t *testing.T) {
	// The scene has no renderer attached, so its RenderFrame fails.
	broken := scene.NewScene("broken")
	e := NewEngine(WithScene(0, broken))

	ticked := 0
	e.SetTickCallback(func(dt float32) {
		ticked++
		assert.InDelta(t, 1.0/60.0, float64(dt), 1e-6)
	})

	_, err := e.RenderFrame()
	assert.Error(t, err)
	assert.Equal(t, 1, ticked, "the tick runs before the scenes render")
}

func TestTickRateFixedDelta(t *testing.T) {
	broken := scene.NewScene("broken")
	e := NewEngine(WithScene(0, broken), WithTickRate(30))

	var dt float32
	e.SetTickCallback(func(d float32) { dt = d })
	_, _ = e.RenderFrame()
	assert.InDelta(t, 1.0/30.0, float64(dt), 1e-6)

	e.SetTickRate(-1)
	_, _ = e.RenderFrame()
	assert.InDelta(t, 1.0/60.0, float64(dt), 1e-6)
}
