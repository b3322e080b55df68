package scripts

import "spacefolio/internal/engine"

// FrameSpin rotates its object by a fixed delta every frame, regardless of
// how much wall-clock time the frame took.
type FrameSpin struct {
	engine.BaseComponent
	Delta engine.Vec3
}

func (s *FrameSpin) Update() {
	if g := s.GetGameObject(); g != nil {
		g.Rotate(s.Delta)
	}
}

// ScrollSpin rotates its object by a fixed delta on every scroll event. The
// offset itself is ignored: a burst of N events turns the object N times.
type ScrollSpin struct {
	engine.BaseComponent
	Delta engine.Vec3
}

func (s *ScrollSpin) OnScroll(float64) {
	if g := s.GetGameObject(); g != nil {
		g.Rotate(s.Delta)
	}
}

func init() {
	engine.RegisterScript("FrameSpin", func(props map[string]any) engine.Component {
		return &FrameSpin{Delta: deltaProps(props)}
	}, func(c engine.Component) map[string]any {
		s, ok := c.(*FrameSpin)
		if !ok {
			return nil
		}
		return spinProps(s.Delta)
	})

	engine.RegisterScript("ScrollSpin", func(props map[string]any) engine.Component {
		return &ScrollSpin{Delta: deltaProps(props)}
	}, func(c engine.Component) map[string]any {
		s, ok := c.(*ScrollSpin)
		if !ok {
			return nil
		}
		return spinProps(s.Delta)
	})
}

// Spin props are per-axis increments in radians: {"x": 0.01, "y": 0.005}.
func deltaProps(props map[string]any) engine.Vec3 {
	get := func(key string) float64 {
		if v, ok := props[key].(float64); ok {
			return v
		}
		return 0
	}
	return engine.V3(get("x"), get("y"), get("z"))
}

func spinProps(d engine.Vec3) map[string]any {
	return map[string]any{"x": d.X, "y": d.Y, "z": d.Z}
}
