package resource

import (
	"context"
	"strings"
)

// ActionFunc is the signature for named resource actions. rctx is the
// resource's bound context value, always injected first; args are the
// call-site positional arguments. Argument arity and types are the action
// implementation's concern, not the registry's.
type ActionFunc func(ctx context.Context, rctx any, args ...any) (any, error)

// NotifierFunc observes an action's result after a successful call. All
// notifiers of an action receive the same result value, not a copy, so a
// notifier must not assume exclusive access to a mutable result. A non-nil
// error fails the dispatching call (see Resource.CallAction).
type NotifierFunc func(ctx context.Context, result any) error

// Method is an HTTP-style verb. Only the four constants below are
// recognized; anything else fails ParseMethod.
type Method string

const (
	MethodGet    Method = "GET"
	MethodPost   Method = "POST"
	MethodPut    Method = "PUT"
	MethodDelete Method = "DELETE"
)

// ParseMethod normalizes s and reports whether it names a recognized verb.
// Empty input defaults to GET.
func ParseMethod(s string) (Method, bool) {
	switch m := Method(strings.ToUpper(strings.TrimSpace(s))); m {
	case "":
		return MethodGet, true
	case MethodGet, MethodPost, MethodPut, MethodDelete:
		return m, true
	default:
		return "", false
	}
}

// API is one route-table entry: an externally addressable alias bound to
// exactly one action name.
type API struct {
	Route  string
	Method Method
	Action string
}
