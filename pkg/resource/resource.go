// Package resource implements a small in-process registry that binds named
// asynchronous actions to a shared context value, exposes them under
// route/method aliases, and fans a call's result out to per-action
// notifiers. The registry validates nothing about action inputs and
// serializes nothing; adapters that put it on a wire own both.
package resource

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Resource is the frozen aggregate produced by Builder.Build: name, context,
// action map, notifier sets and route table. It is immutable and every
// method is safe for concurrent use. The resource imposes no ordering or
// exclusion between concurrent calls; locking over a shared mutable context
// belongs to the action implementations.
type Resource struct {
	name      string
	rctx      any
	actions   map[string]ActionFunc
	notifiers map[string][]NotifierFunc
	routes    map[string]API
	log       *zap.Logger
}

// Name returns the resource name.
func (r *Resource) Name() string { return r.name }

// Context returns the bound context value. A resource built without one
// holds an empty map.
func (r *Resource) Context() any { return r.rctx }

// WithContext returns a new Resource bound to v; the receiver is untouched.
// The two resources share the action, notifier and route maps, which are
// never written after Build.
func (r *Resource) WithContext(v any) *Resource {
	nr := *r
	nr.rctx = v
	if nr.rctx == nil {
		nr.rctx = map[string]any{}
	}
	return &nr
}

// GetAction returns the registered action function, or false. It never
// errors.
func (r *Resource) GetAction(name string) (ActionFunc, bool) {
	fn, ok := r.actions[name]
	return fn, ok
}

// APIs returns the route-table entries in unspecified order.
func (r *Resource) APIs() []API {
	out := make([]API, 0, len(r.routes))
	for _, a := range r.routes {
		out = append(out, a)
	}
	return out
}

// GetAPI resolves a route under a method. A missing route and a method
// mismatch are indistinguishable here; CallAPI tells them apart.
func (r *Resource) GetAPI(route string, m Method) (API, bool) {
	a, ok := r.routes[route]
	if !ok || a.Method != m {
		return API{}, false
	}
	return a, true
}

// CallAction looks up the named action, invokes it with the bound context
// injected first, and on success fans the result out to every notifier
// registered for the action, concurrently and in unspecified order. The
// call does not return until all notifiers finish; the returned value is
// always the action's own result and notifiers cannot change it.
//
// A failing notifier fails the call: the first notifier error is returned
// even though the action itself succeeded. It is logged beforehand when the
// builder carried a logger.
//
// Action failures propagate unchanged. There are no retries and no
// timeouts; a hung action or notifier hangs the call for as long as ctx
// allows.
func (r *Resource) CallAction(ctx context.Context, name string, args ...any) (any, error) {
	fn, ok := r.actions[name]
	if !ok {
		return nil, &ActionNotFoundError{Action: name}
	}
	out, err := fn(ctx, r.rctx, args...)
	if err != nil {
		return nil, err
	}
	if fns := r.notifiers[name]; len(fns) > 0 {
		g, gctx := errgroup.WithContext(ctx)
		for _, nf := range fns {
			nf := nf
			g.Go(func() error { return nf(gctx, out) })
		}
		if err := g.Wait(); err != nil {
			if r.log != nil {
				r.log.Warn("notifier failed",
					zap.String("resource", r.name),
					zap.String("action", name),
					zap.Error(err),
				)
			}
			return nil, err
		}
	}
	return out, nil
}

// CallAPI resolves route+method and delegates to CallAction with the same
// positional arguments, returning exactly what it returns or propagating
// exactly what it fails with.
func (r *Resource) CallAPI(ctx context.Context, route string, m Method, args ...any) (any, error) {
	a, ok := r.GetAPI(route, m)
	if !ok {
		return nil, &RouteNotFoundError{Route: route}
	}
	// GetAPI already matched the method; the explicit guard stays so the
	// boundary reports MethodNotAllowed if resolution ever loosens.
	if a.Method != m {
		return nil, &MethodNotAllowedError{Method: m, Route: route}
	}
	return r.CallAction(ctx, a.Action, args...)
}
