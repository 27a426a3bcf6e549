package beans

import (
	"fmt"
	"strings"
)

// ── Scope ─────────────────────────────────────────────────────────────────────

// Scope is the lifecycle policy of a bean.
type Scope string

const (
	// ScopeDefault is the zero value; it behaves as ScopeSingleton.
	ScopeDefault Scope = ""
	// ScopeSingleton shares one instance per container.
	ScopeSingleton Scope = "singleton"
	// ScopePrototype creates a fresh instance on every request.
	ScopePrototype Scope = "prototype"
)

// ParseScope converts a configured scope string. The empty string is the
// default (singleton) scope.
func ParseScope(s string) (Scope, error) {
	switch Scope(strings.ToLower(strings.TrimSpace(s))) {
	case ScopeDefault:
		return ScopeDefault, nil
	case ScopeSingleton:
		return ScopeSingleton, nil
	case ScopePrototype:
		return ScopePrototype, nil
	}
	return ScopeDefault, fmt.Errorf("invalid scope %q", s)
}

// ── Values ────────────────────────────────────────────────────────────────────

// ValueSpec is a configured value: either a Literal or a Reference.
type ValueSpec interface {
	fmt.Stringer
	isValueSpec()
}

// Literal is a string value used as-is.
type Literal struct {
	Text string
}

func (Literal) isValueSpec()     {}
func (v Literal) String() string { return fmt.Sprintf("literal(%q)", v.Text) }

// Reference points at another bean by id.
type Reference struct {
	BeanID string
}

func (Reference) isValueSpec()     {}
func (v Reference) String() string { return fmt.Sprintf("ref(%s)", v.BeanID) }

// ConstructorArgument is one positional constructor input. Type and Name are
// optional hints used to pick between overloads of the same arity.
type ConstructorArgument struct {
	Type  string
	Name  string
	Value ValueSpec
}

// PropertyValue assigns a value to a named property after construction.
type PropertyValue struct {
	Name  string
	Value ValueSpec
}

// ── Descriptor ────────────────────────────────────────────────────────────────

// Descriptor is the recipe for one bean.
//
//	d := beans.NewDescriptor("petStore", "petstore.service.PetStoreService")
//	d.AddConstructorArg(beans.ConstructorArgument{Value: beans.Reference{BeanID: "accountDao"}})
//	d.SetProperty("owner", beans.Literal{Text: "liuxin"})
type Descriptor struct {
	ID              string
	ClassName       string
	Scope           Scope
	ConstructorArgs []ConstructorArgument
	Properties      []PropertyValue

	// Metadata is set for descriptors produced by component scanning.
	Metadata *AnnotationMetadata
}

// NewDescriptor creates a singleton-scoped descriptor.
func NewDescriptor(id, className string) *Descriptor {
	return &Descriptor{ID: id, ClassName: className}
}

// NewScannedDescriptor creates a descriptor from scanned annotation metadata.
// The id is left empty; discovery assigns it.
func NewScannedDescriptor(md *AnnotationMetadata) *Descriptor {
	return &Descriptor{ClassName: md.ClassName, Metadata: md}
}

// IsSingleton reports whether the bean is shared. The default scope is singleton.
func (d *Descriptor) IsSingleton() bool {
	return d.Scope == ScopeSingleton || d.Scope == ScopeDefault
}

// IsPrototype reports whether a fresh instance is created per request.
func (d *Descriptor) IsPrototype() bool {
	return d.Scope == ScopePrototype
}

// EffectiveScope returns the scope with the default resolved.
func (d *Descriptor) EffectiveScope() Scope {
	if d.Scope == ScopeDefault {
		return ScopeSingleton
	}
	return d.Scope
}

// AddConstructorArg appends constructor arguments in declaration order.
func (d *Descriptor) AddConstructorArg(args ...ConstructorArgument) {
	d.ConstructorArgs = append(d.ConstructorArgs, args...)
}

// SetProperty sets name to v. An existing entry keeps its position.
func (d *Descriptor) SetProperty(name string, v ValueSpec) {
	for i := range d.Properties {
		if d.Properties[i].Name == name {
			d.Properties[i].Value = v
			return
		}
	}
	d.Properties = append(d.Properties, PropertyValue{Name: name, Value: v})
}

// Property returns the value configured for name.
func (d *Descriptor) Property(name string) (ValueSpec, bool) {
	for _, pv := range d.Properties {
		if pv.Name == name {
			return pv.Value, true
		}
	}
	return nil, false
}
