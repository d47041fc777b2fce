package resource

import "fmt"

// ActionNotFoundError reports a CallAction against a name absent from the
// action map.
type ActionNotFoundError struct {
	Action string
}

func (e *ActionNotFoundError) Error() string {
	return fmt.Sprintf("action %q not registered", e.Action)
}

// RouteNotFoundError reports a CallAPI against a route that is absent from
// the route table, or present under a different method.
type RouteNotFoundError struct {
	Route string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("route %q not registered", e.Route)
}

// MethodNotAllowedError is the secondary guard inside CallAPI. Resolution
// already filters on method, so this is not normally reachable; it exists so
// the dispatch boundary stays self-describing to callers that inspect error
// kinds.
type MethodNotAllowedError struct {
	Method Method
	Route  string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed for route %q", e.Method, e.Route)
}
