// In file: internal/tools/registry.go
package tools

// Registry holds the fixed set of available tools, keyed by canonical name.
// It is populated once at startup and never mutated afterwards, so concurrent
// reads from request handlers need no locking.
type Registry struct {
	order []string
	tools map[string]Tool
}

func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]Tool),
	}
}

// Register adds a tool to the registry under its canonical name.
func (r *Registry) Register(t Tool) {
	name := t.Spec().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = t
}

// Get looks up a tool by canonical name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// Specs returns all registered tool specs in registration order. The slice is
// what gets rendered into the language model's system prompt.
func (r *Registry) Specs() []Spec {
	specs := make([]Spec, 0, len(r.tools))
	for _, name := range r.order {
		specs = append(specs, r.tools[name].Spec())
	}
	return specs
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.tools)
}
