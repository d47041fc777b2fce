package resource

import (
	"reflect"

	"go.uber.org/zap"
)

// Builder accumulates a context value, actions, notifiers and api aliases,
// then freezes them into an immutable Resource. Registration calls are
// chainable and order-independent; name and route collisions are last write
// wins. A Builder is meant for startup wiring and is not safe for
// concurrent use.
type Builder struct {
	name      string
	rctx      any
	actions   map[string]ActionFunc
	notifiers map[string]map[uintptr]NotifierFunc
	routes    map[string]API
	log       *zap.Logger
}

// NewBuilder starts an empty builder for a named resource.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:      name,
		actions:   make(map[string]ActionFunc),
		notifiers: make(map[string]map[uintptr]NotifierFunc),
		routes:    make(map[string]API),
	}
}

// SetContext binds the opaque value injected into every action. Last write
// wins; the value is held by reference and never mutated by the registry.
func (b *Builder) SetContext(v any) *Builder {
	b.rctx = v
	return b
}

// WithLogger attaches a logger used to report notifier failures at call
// time. Optional.
func (b *Builder) WithLogger(l *zap.Logger) *Builder {
	b.log = l
	return b
}

// CreateAction registers fn under name. Registering the same name twice
// replaces the previous entry.
func (b *Builder) CreateAction(name string, fn ActionFunc) *Builder {
	b.actions[name] = fn
	return b
}

// AddNotifier adds fn to the notifier set of the named action. The same
// function added twice collapses to a single registration; distinct
// closures count as distinct notifiers.
func (b *Builder) AddNotifier(action string, fn NotifierFunc) *Builder {
	set, ok := b.notifiers[action]
	if !ok {
		set = make(map[uintptr]NotifierFunc)
		b.notifiers[action] = set
	}
	set[reflect.ValueOf(fn).Pointer()] = fn
	return b
}

// AddAPI binds route to the named action under method, defaulting to GET
// when omitted. The target action is not required to exist yet; binding
// resolves at call time, so routes and actions register in any order.
// Re-registering a route replaces the mapping.
func (b *Builder) AddAPI(route, action string, method ...Method) *Builder {
	m := MethodGet
	if len(method) > 0 {
		m = method[0]
	}
	b.routes[route] = API{Route: route, Method: m, Action: action}
	return b
}

// Build freezes the accumulated registrations into a Resource. Maps are
// copied, so later Builder mutation never leaks into a built Resource and
// one Builder can produce several independent snapshots.
func (b *Builder) Build() *Resource {
	rctx := b.rctx
	if rctx == nil {
		rctx = map[string]any{}
	}
	actions := make(map[string]ActionFunc, len(b.actions))
	for k, v := range b.actions {
		actions[k] = v
	}
	notifiers := make(map[string][]NotifierFunc, len(b.notifiers))
	for k, set := range b.notifiers {
		fns := make([]NotifierFunc, 0, len(set))
		for _, fn := range set {
			fns = append(fns, fn)
		}
		notifiers[k] = fns
	}
	routes := make(map[string]API, len(b.routes))
	for k, v := range b.routes {
		routes[k] = v
	}
	return &Resource{
		name:      b.name,
		rctx:      rctx,
		actions:   actions,
		notifiers: notifiers,
		routes:    routes,
		log:       b.log,
	}
}
