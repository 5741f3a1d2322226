package routing

import (
	"fmt"
	"sort"

	"github.com/codebypatrickleung/azure-playground/internal/provider"
)

// Factory constructs a provider. Construction errors are startup errors.
type Factory func() (provider.Provider, error)

// Router maps configured backend names to provider factories.
type Router struct {
	factories map[string]Factory
}

func New() *Router {
	return &Router{factories: make(map[string]Factory)}
}

// Register associates a backend name with a provider factory.
func (r *Router) Register(name string, f Factory) {
	r.factories[name] = f
}

// Build constructs the provider registered under name. Only the selected
// backend is constructed.
func (r *Router) Build(name string) (provider.Provider, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("no provider registered for %q (have %v)", name, r.Names())
	}
	p, err := f()
	if err != nil {
		return nil, fmt.Errorf("building %s provider: %w", name, err)
	}
	return p, nil
}

func (r *Router) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
