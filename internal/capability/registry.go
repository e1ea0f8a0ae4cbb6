package capability

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// key identifies a capability by the GoString of its target type and its name.
// cty.Type itself is not usable as a map key for structural types.
type key struct {
	target string
	name   string
}

// Registry holds the capabilities available to a single application instance.
type Registry struct {
	all map[key]*Capability
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		all: make(map[key]*Capability),
	}
}

// Register adds a capability. Registering the same (target, name) pair twice
// is a programming error and panics.
func (r *Registry) Register(c *Capability) {
	k := key{target: c.Target.GoString(), name: c.Name}
	if _, exists := r.all[k]; exists {
		panic(fmt.Sprintf("capability '%s' for target '%s' already registered", c.Name, friendlyName(c.Target)))
	}
	slog.Debug("Registering capability.", "capability", c.String())
	r.all[k] = c
}

// RegisterFunction adapts fn with FromFunction and registers the result.
func (r *Registry) RegisterFunction(name string, fn function.Function) error {
	c, err := FromFunction(name, fn)
	if err != nil {
		return err
	}
	r.Register(c)
	return nil
}

// Lookup resolves the capability called name on the given target type.
func (r *Registry) Lookup(target cty.Type, name string) (*Capability, bool) {
	c, ok := r.all[key{target: target.GoString(), name: name}]
	return c, ok
}

// Names returns the signature of every registered capability, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.all))
	for _, c := range r.all {
		names = append(names, c.String())
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered capabilities.
func (r *Registry) Len() int {
	return len(r.all)
}
