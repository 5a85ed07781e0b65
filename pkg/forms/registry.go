package forms

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores forms by id. It is written during wiring and read by
// request handlers.
type Registry struct {
	mu    sync.RWMutex
	forms map[string]*Form
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{forms: make(map[string]*Form)}
}

// Register adds a form by its ID. Duplicate ids return an error.
func (r *Registry) Register(form *Form) error {
	if form == nil {
		return fmt.Errorf("forms: form is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.forms[form.ID()]; exists {
		return fmt.Errorf("forms: form %q already registered", form.ID())
	}
	r.forms[form.ID()] = form
	return nil
}

// MustRegister panics on registration failure.
func (r *Registry) MustRegister(form *Form) {
	if err := r.Register(form); err != nil {
		panic(err)
	}
}

// Get retrieves a form by id.
func (r *Registry) Get(id string) (*Form, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	form, ok := r.forms[id]
	if !ok {
		return nil, fmt.Errorf("forms: form %q not found", id)
	}
	return form, nil
}

// List returns the registered ids, sorted.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.forms))
	for id := range r.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
