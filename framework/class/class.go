package class

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/km-arc/go-beans/framework/beans"
)

// ── Adapters ──────────────────────────────────────────────────────────────────

// Param describes one constructor parameter. Both fields are hints.
type Param struct {
	Name string
	Type string
}

// Constructor builds a raw instance from resolved arguments.
type Constructor struct {
	Params []Param

	// Accepts reports whether args have the types New expects.
	Accepts func(args []any) bool

	// New builds the instance. len(args) == len(Params).
	New func(args []any) (any, error)
}

// Arity returns the number of parameters.
func (c Constructor) Arity() int { return len(c.Params) }

// Setter assigns value to a property or field of instance.
type Setter func(instance, value any) error

// Field is a dependency slot filled by a post-processor rather than by
// configured properties.
type Field struct {
	Name      string
	Type      string
	Autowired bool
	Required  bool
	Inject    Setter
}

// ── Class ─────────────────────────────────────────────────────────────────────

// Class is the construction recipe for one concrete type, looked up by Name.
type Class struct {
	Name         string
	Constructors []Constructor
	Properties   map[string]Setter
	Fields       []Field
	Annotations  []beans.Annotation

	// Types lists the type keys instances of this class can be assigned to.
	Types []string
}

// ShortName returns the name after the last '.', e.g.
// "petstore.dao.AccountDao" → "AccountDao".
func (c *Class) ShortName() string {
	return ShortName(c.Name)
}

// ShortName returns the part of a class name after the last '.'.
func ShortName(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 {
		return name[i+1:]
	}
	return name
}

// AssignableTo reports whether instances satisfy the type key.
func (c *Class) AssignableTo(typ string) bool {
	for _, t := range c.Types {
		if t == typ {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether the class carries annotation t.
func (c *Class) HasAnnotation(t string) bool {
	for _, a := range c.Annotations {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Metadata returns the annotation metadata of the class.
func (c *Class) Metadata() *beans.AnnotationMetadata {
	anns := make([]beans.Annotation, len(c.Annotations))
	copy(anns, c.Annotations)
	return &beans.AnnotationMetadata{ClassName: c.Name, Annotations: anns}
}

// ConstructorsWithArity returns the constructors taking n arguments, in
// declaration order.
func (c *Class) ConstructorsWithArity(n int) []Constructor {
	var out []Constructor
	for _, ctor := range c.Constructors {
		if ctor.Arity() == n {
			out = append(out, ctor)
		}
	}
	return out
}

// ── Type keys ─────────────────────────────────────────────────────────────────

// TypeOf returns the type key of T, e.g. TypeOf[*petstore.AccountDao]()
// returns "*petstore.AccountDao". Interface types work too:
//
//	class.TypeOf[io.Reader]()  // "io.Reader"
func TypeOf[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// ── Generic adapters ──────────────────────────────────────────────────────────

// Prop adapts a typed setter on *T.
//
//	class.Prop(func(s *PetStore, owner string) { s.Owner = owner })
func Prop[T, V any](set func(*T, V)) Setter {
	return func(instance, value any) error {
		target, ok := instance.(*T)
		if !ok {
			return fmt.Errorf("cannot set property on %T: want %s", instance, TypeOf[*T]())
		}
		v, ok := value.(V)
		if !ok {
			return fmt.Errorf("cannot assign %T to %s", value, TypeOf[V]())
		}
		set(target, v)
		return nil
	}
}

// New0 adapts a no-argument constructor.
func New0[T any](fn func() T) Constructor {
	return Constructor{
		Accepts: func(args []any) bool { return len(args) == 0 },
		New:     func(_ []any) (any, error) { return fn(), nil },
	}
}

// New1 adapts a one-argument constructor. names are optional parameter names.
func New1[T, A any](fn func(A) T, names ...string) Constructor {
	return Constructor{
		Params: params(names, TypeOf[A]()),
		Accepts: func(args []any) bool {
			return len(args) == 1 && is[A](args[0])
		},
		New: func(args []any) (any, error) {
			a, err := arg[A](args, 0)
			if err != nil {
				return nil, err
			}
			return fn(a), nil
		},
	}
}

// New2 adapts a two-argument constructor.
func New2[T, A, B any](fn func(A, B) T, names ...string) Constructor {
	return Constructor{
		Params: params(names, TypeOf[A](), TypeOf[B]()),
		Accepts: func(args []any) bool {
			return len(args) == 2 && is[A](args[0]) && is[B](args[1])
		},
		New: func(args []any) (any, error) {
			a, err := arg[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := arg[B](args, 1)
			if err != nil {
				return nil, err
			}
			return fn(a, b), nil
		},
	}
}

// New3 adapts a three-argument constructor.
func New3[T, A, B, C any](fn func(A, B, C) T, names ...string) Constructor {
	return Constructor{
		Params: params(names, TypeOf[A](), TypeOf[B](), TypeOf[C]()),
		Accepts: func(args []any) bool {
			return len(args) == 3 && is[A](args[0]) && is[B](args[1]) && is[C](args[2])
		},
		New: func(args []any) (any, error) {
			a, err := arg[A](args, 0)
			if err != nil {
				return nil, err
			}
			b, err := arg[B](args, 1)
			if err != nil {
				return nil, err
			}
			c, err := arg[C](args, 2)
			if err != nil {
				return nil, err
			}
			return fn(a, b, c), nil
		},
	}
}

func params(names []string, types ...string) []Param {
	out := make([]Param, len(types))
	for i, t := range types {
		out[i].Type = t
		if i < len(names) {
			out[i].Name = names[i]
		}
	}
	return out
}

func is[A any](v any) bool {
	_, ok := v.(A)
	return ok
}

func arg[A any](args []any, i int) (A, error) {
	v, ok := args[i].(A)
	if !ok {
		var zero A
		return zero, fmt.Errorf("argument %d: cannot use %T as %s", i, args[i], TypeOf[A]())
	}
	return v, nil
}
