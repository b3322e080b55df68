package engine

import "spacefolio/internal/assets"

// Scene owns every mesh and light for the lifetime of the process.
// There is no removal: objects added stay reachable until exit.
type Scene struct {
	Name        string
	GameObjects []*GameObject
	Background  *assets.Texture

	// Scrolled fires after scroll handlers have run, once per scroll event.
	Scrolled EventWithArg[float64]
}

func NewScene(name string) *Scene {
	return &Scene{
		Name:        name,
		GameObjects: make([]*GameObject, 0),
	}
}

func (s *Scene) AddGameObject(g *GameObject) {
	g.Scene = s
	s.GameObjects = append(s.GameObjects, g)
}

func (s *Scene) FindByTag(tag string) []*GameObject {
	var result []*GameObject
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			result = append(result, g)
		}
	}
	return result
}

// CountByTag returns how many objects carry tag.
func (s *Scene) CountByTag(tag string) int {
	n := 0
	for _, g := range s.GameObjects {
		if g.HasTag(tag) {
			n++
		}
	}
	return n
}

func (s *Scene) Start() {
	for _, g := range s.GameObjects {
		g.Start()
	}
}

// Update advances every object by one frame.
func (s *Scene) Update() {
	for _, g := range s.GameObjects {
		g.Update()
	}
}

// Scroll delivers one scroll event to every ScrollHandler component on an
// active object, then to the Scrolled listeners.
func (s *Scene) Scroll(offset float64) {
	for _, g := range s.GameObjects {
		if !g.Active {
			continue
		}
		for _, c := range g.components {
			if h, ok := c.(ScrollHandler); ok {
				h.OnScroll(offset)
			}
		}
	}
	s.Scrolled.Invoke(offset)
}
