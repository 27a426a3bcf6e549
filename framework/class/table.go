package class

import (
	"errors"
	"strings"
	"sync"
)

// Table maps class names to classes. It replaces runtime type lookup by name.
type Table struct {
	mu      sync.RWMutex
	order   []string
	classes map[string]*Class
}

// NewTable creates a table holding classes. It panics on a nil or unnamed
// class; use Register to get the error instead.
func NewTable(classes ...*Class) *Table {
	t := &Table{classes: make(map[string]*Class)}
	for _, c := range classes {
		if err := t.Register(c); err != nil {
			panic(err)
		}
	}
	return t
}

// Register adds c, replacing a class of the same name.
func (t *Table) Register(c *Class) error {
	if c == nil || c.Name == "" {
		return errors.New("class: class name must not be empty")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.classes[c.Name]; !ok {
		t.order = append(t.order, c.Name)
	}
	t.classes[c.Name] = c
	return nil
}

// Lookup returns the class registered under name.
func (t *Table) Lookup(name string) (*Class, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	c, ok := t.classes[name]
	return c, ok
}

// Classes returns every class in registration order.
func (t *Table) Classes() []*Class {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]*Class, 0, len(t.order))
	for _, name := range t.order {
		out = append(out, t.classes[name])
	}
	return out
}

// InPackage returns the classes under base, in registration order. A class is
// under base when its name starts with base followed by '.' or '/'.
func (t *Table) InPackage(base string) []*Class {
	base = strings.TrimRight(strings.TrimSpace(base), "./")
	var out []*Class
	for _, c := range t.Classes() {
		if base == "" || strings.HasPrefix(c.Name, base+".") || strings.HasPrefix(c.Name, base+"/") {
			out = append(out, c)
		}
	}
	return out
}
