package beans

import (
	"errors"
	"fmt"
	"sync"
)

// Registry is an insertion-ordered table of descriptors keyed by bean id.
//
// Registration is expected to finish before the container starts resolving,
// but reads are safe alongside late registrations.
type Registry struct {
	mu          sync.RWMutex
	order       []string
	descriptors map[string]*Descriptor
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]*Descriptor)}
}

// Register stores d under id, replacing any previous descriptor in place.
// A descriptor with an empty ID takes id.
func (r *Registry) Register(id string, d *Descriptor) error {
	if id == "" {
		return errors.New("beans: bean id must not be empty")
	}
	if d == nil {
		return fmt.Errorf("beans: nil descriptor for [%s]", id)
	}
	if d.ID == "" {
		d.ID = id
	} else if d.ID != id {
		return fmt.Errorf("beans: descriptor id [%s] registered as [%s]", d.ID, id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.descriptors[id]; !ok {
		r.order = append(r.order, id)
	}
	r.descriptors[id] = d
	return nil
}

// Get returns the descriptor for id or a *NotFoundError.
func (r *Registry) Get(id string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[id]
	if !ok {
		return nil, &NotFoundError{ID: id}
	}
	return d, nil
}

// Exists reports whether id is registered.
func (r *Registry) Exists(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.descriptors[id]
	return ok
}

// IDs returns the registered ids in registration order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Descriptors returns the registered descriptors in registration order.
func (r *Registry) Descriptors() []*Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Descriptor, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.descriptors[id])
	}
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
