// Package beans holds the declarative side of the container: descriptors,
// configured values, annotation metadata, the descriptor registry and the
// error kinds shared by every layer.
//
// # Descriptors
//
// A Descriptor names the class to build, its scope, its ordered constructor
// arguments and its ordered properties. Values are either literals or
// references to other beans:
//
//	d := beans.NewDescriptor("petStore", "petstore.service.PetStoreService")
//	d.Scope = beans.ScopePrototype
//	d.AddConstructorArg(
//	    beans.ConstructorArgument{Value: beans.Reference{BeanID: "accountDao"}},
//	    beans.ConstructorArgument{Name: "version", Value: beans.Literal{Text: "1"}},
//	)
//	d.SetProperty("owner", beans.Literal{Text: "liuxin"})
//
// # Registry
//
// The Registry keeps descriptors in registration order. Registering an id a
// second time replaces the descriptor but keeps its position:
//
//	reg := beans.NewRegistry()
//	_ = reg.Register("petStore", d)
//	d, err := reg.Get("petStore") // *NotFoundError when absent
//
// # Errors
//
//	errors.Is(err, beans.ErrNotFound)      // id not registered
//	errors.Is(err, beans.ErrBeanCreation)  // construction failed
//
//	var cycle *beans.CyclicDependencyError
//	errors.As(err, &cycle)
package beans
