package keybinds

// Dispatcher resolves raw key names into actions. The active context
// is read through an accessor at event time rather than captured when
// the dispatcher is built, so a listener registered once never acts on
// stale focus state.
type Dispatcher struct {
	registry *Registry
	context  func() Context
}

// NewDispatcher creates a dispatcher over a registry. The context
// accessor is consulted on every key event.
func NewDispatcher(registry *Registry, context func() Context) *Dispatcher {
	return &Dispatcher{registry: registry, context: context}
}

// Resolve maps a key event to an action in the current context.
// Unrecognized keys return false and must fall through with no side
// effects.
func (d *Dispatcher) Resolve(key string) (Action, bool) {
	return d.registry.Match(d.context(), key)
}
