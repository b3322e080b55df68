package engine

// Component is attached to a GameObject and updated once per frame.
// Updates are frame-counted, not time-scaled: every activation advances
// a component by exactly one step.
type Component interface {
	Start()
	Update()
	SetGameObject(g *GameObject)
	GetGameObject() *GameObject
}

// ScrollHandler is implemented by components that react to page scroll events.
// The scene forwards each scroll offset to every active handler.
type ScrollHandler interface {
	OnScroll(offset float64)
}

// BaseComponent provides default implementation for Component interface
type BaseComponent struct {
	gameObject *GameObject
}

func (b *BaseComponent) Start() {}

func (b *BaseComponent) Update() {}

func (b *BaseComponent) SetGameObject(g *GameObject) {
	b.gameObject = g
}

func (b *BaseComponent) GetGameObject() *GameObject {
	return b.gameObject
}
