// Package manifest loads the TOML declaration that wires a resource: its
// name, its bound context table, and the api aliases it exposes. Actions
// themselves are code and register on a resource.Builder; the manifest only
// references them by name. An api block may alias an action that is not
// registered — that is deliberate, binding resolves at call time so routes
// and actions can be declared in any order.
package manifest

import (
	"errors"
	"fmt"
	"path"
	"strings"

	"github.com/reskit/reskit/pkg/resource"
)

// Config is the top-level manifest.
type Config struct {
	Resource ResourceSpec   `toml:"resource"`
	Context  map[string]any `toml:"context"`
	APIs     []API          `toml:"api"`
}

// ResourceSpec names the resource the manifest configures.
type ResourceSpec struct {
	Name string `toml:"name"`
}

// API declares one route alias.
type API struct {
	Route  string `toml:"route"`
	Method string `toml:"method"`
	Action string `toml:"action"`
}

// normalize route/method
func (a *API) normalize() error {
	if a.Route == "" {
		return errors.New("route is required")
	}
	if !strings.HasPrefix(a.Route, "/") {
		a.Route = "/" + a.Route
	}
	if a.Route != "/" {
		a.Route = path.Clean(a.Route)
	}
	a.Method = strings.ToUpper(strings.TrimSpace(a.Method))
	if a.Method == "" {
		a.Method = string(resource.MethodGet)
	}
	return nil
}

// validate fields that are independent of what actions exist.
func (a *API) validate() error {
	if _, ok := resource.ParseMethod(a.Method); !ok {
		return fmt.Errorf("method %q not recognized", a.Method)
	}
	if strings.TrimSpace(a.Action) == "" {
		return errors.New("action is required")
	}
	return nil
}

// Validate normalizes and checks every api block. Duplicate routes are
// allowed (last write wins when applied), and target actions are not
// checked for existence.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Resource.Name) == "" {
		return errors.New("resource.name is required")
	}
	if len(c.APIs) == 0 {
		return errors.New("no api blocks defined")
	}
	for i := range c.APIs {
		if err := c.APIs[i].normalize(); err != nil {
			return fmt.Errorf("api %d: %w", i, err)
		}
		if err := c.APIs[i].validate(); err != nil {
			return fmt.Errorf("api %d (%s %s): %w", i, c.APIs[i].Method, c.APIs[i].Route, err)
		}
	}
	return nil
}

// Apply replays the manifest onto b: context first, then api aliases in
// declaration order.
func (c *Config) Apply(b *resource.Builder) *resource.Builder {
	if len(c.Context) > 0 {
		b.SetContext(c.Context)
	}
	for _, a := range c.APIs {
		m, _ := resource.ParseMethod(a.Method)
		b.AddAPI(a.Route, a.Action, m)
	}
	return b
}
