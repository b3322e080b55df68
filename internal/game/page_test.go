package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageStartsAtTop(t *testing.T) {
	p := NewPage(4000, 1000, 100)
	assert.Zero(t, p.Offset())
	assert.Equal(t, 3000.0, p.Range())
	assert.Zero(t, p.Progress())
}

func TestPageWheelScrollsDown(t *testing.T) {
	p := NewPage(4000, 1000, 100)

	assert.True(t, p.Wheel(-3))
	assert.Equal(t, -300.0, p.Offset())

	assert.True(t, p.Wheel(1))
	assert.Equal(t, -200.0, p.Offset())
}

func TestPageClamps(t *testing.T) {
	p := NewPage(4000, 1000, 100)

	assert.False(t, p.Wheel(5), "already at top")
	assert.Zero(t, p.Offset())

	assert.True(t, p.SetTop(-10000))
	assert.Equal(t, -3000.0, p.Offset())
	assert.Equal(t, 1.0, p.Progress())

	assert.False(t, p.Wheel(-1))
	assert.Equal(t, -3000.0, p.Offset())
}

func TestPageFiresOncePerChange(t *testing.T) {
	p := NewPage(4000, 1000, 100)
	var got []float64
	p.Changed.AddListener(func(top float64) { got = append(got, top) })

	p.Wheel(-1)
	p.Wheel(-1)
	p.SetTop(-200) // no move
	p.Wheel(10)

	assert.Equal(t, []float64{-100, -200, 0}, got)
}

func TestPageShorterThanViewport(t *testing.T) {
	p := NewPage(500, 1000, 100)
	assert.Zero(t, p.Range())
	assert.False(t, p.Wheel(-1))
	assert.Zero(t, p.Progress())
}

func TestPageProgress(t *testing.T) {
	p := NewPage(3000, 1000, 100)
	assert.True(t, p.SetProgress(0.5))
	assert.Equal(t, -1000.0, p.Offset())
	assert.InDelta(t, 0.5, p.Progress(), 1e-12)
}
