package game

import "spacefolio/internal/engine"

// Page is the virtual document the window scrolls through. Top is the
// document's top edge relative to the viewport: 0 at the start, negative
// once scrolled down, never below Viewport-Height.
type Page struct {
	Height    float64
	Viewport  float64
	WheelStep float64

	// Changed fires with the new top after every change of position.
	Changed engine.EventWithArg[float64]

	top float64
}

func NewPage(height, viewport, wheelStep float64) *Page {
	return &Page{Height: height, Viewport: viewport, WheelStep: wheelStep}
}

// Offset is the current top; it satisfies world.ScrollSource.
func (p *Page) Offset() float64 {
	return p.top
}

// Range is how far the page can scroll; 0 when it fits the viewport.
func (p *Page) Range() float64 {
	return max(p.Height-p.Viewport, 0)
}

// Wheel scrolls by delta notches; positive moves toward the top, like a
// mouse wheel. It reports whether the position changed.
func (p *Page) Wheel(delta float64) bool {
	return p.SetTop(p.top + delta*p.WheelStep)
}

// SetTop moves to top, clamped to the scrollable range, and fires Changed
// if the position moved.
func (p *Page) SetTop(top float64) bool {
	top = min(max(top, -p.Range()), 0)
	if top == p.top {
		return false
	}
	p.top = top
	p.Changed.Invoke(top)
	return true
}

// Progress is the scrolled fraction in [0, 1].
func (p *Page) Progress() float64 {
	r := p.Range()
	if r == 0 {
		return 0
	}
	return -p.top / r
}

func (p *Page) SetProgress(f float64) bool {
	return p.SetTop(-f * p.Range())
}
