package class

import "github.com/km-arc/go-beans/framework/beans"

// Builder assembles a Class whose instances are *T.
//
//	store := class.Define[PetStore]("petstore.service.PetStoreService").
//	    Constructor(class.New2(NewPetStore, "accountDao", "itemDao")).
//	    Property("owner", class.Prop(func(s *PetStore, v string) { s.Owner = v })).
//	    Class()
type Builder[T any] struct {
	class *Class
}

// Define starts a class named name. Instances are assignable to *T.
func Define[T any](name string) *Builder[T] {
	return &Builder[T]{class: &Class{
		Name:       name,
		Properties: make(map[string]Setter),
		Types:      []string{TypeOf[*T]()},
	}}
}

// Constructor adds an overload.
func (b *Builder[T]) Constructor(c Constructor) *Builder[T] {
	b.class.Constructors = append(b.class.Constructors, c)
	return b
}

// Property registers a settable property.
func (b *Builder[T]) Property(name string, set Setter) *Builder[T] {
	b.class.Properties[name] = set
	return b
}

// Autowired declares a dependency slot filled by type.
func (b *Builder[T]) Autowired(name, typ string, required bool, inject Setter) *Builder[T] {
	b.class.Fields = append(b.class.Fields, Field{
		Name:      name,
		Type:      typ,
		Autowired: true,
		Required:  required,
		Inject:    inject,
	})
	return b
}

// Implements adds type keys (usually interfaces) the instances satisfy.
func (b *Builder[T]) Implements(types ...string) *Builder[T] {
	b.class.Types = append(b.class.Types, types...)
	return b
}

// Annotate attaches an annotation, e.g. Annotate("Component", nil).
func (b *Builder[T]) Annotate(typ string, attrs map[string]string) *Builder[T] {
	b.class.Annotations = append(b.class.Annotations, beans.Annotation{Type: typ, Attributes: attrs})
	return b
}

// Class returns the built class. Without explicit constructors it gets a
// no-argument one returning new(T).
func (b *Builder[T]) Class() *Class {
	if len(b.class.Constructors) == 0 {
		b.class.Constructors = append(b.class.Constructors, New0(func() *T { return new(T) }))
	}
	return b.class
}
