// Package container builds beans from descriptors and hands them out by id.
//
// # Overview
//
// A Container reads descriptors from a beans.Registry and construction
// recipes from a class.Table. Get(id) looks up the descriptor, returns the
// cached instance for singletons, and otherwise builds a new one:
//
//  1. resolve constructor arguments in order (literals as-is, references
//     through Get, recursively)
//  2. pick a constructor by arity; name/type hints break ties
//  3. set each configured property through the class's setter
//  4. run post-processors in registration order
//  5. cache singletons; prototypes are never cached
//
// # Container Lifecycle
//
//  1. Create: c := container.New(registry, classes)
//  2. Register providers: providers.Register(&MyProvider{})
//  3. Boot: providers.Boot()  (safe to resolve everything after this)
//  4. Get beans
//
// # Resolving
//
//	// Untyped
//	raw, err := c.Get("petStore")
//
//	// Generic, no type assertion required
//	store, err := container.Resolve[*petstore.PetStore](c, "petStore")
//
// # Post-processors
//
//	c.AddPostProcessor(container.NewAutowiredProcessor(c))
//
//	c.AddPostProcessor(container.PostProcessorFunc(
//	    func(ctx context.Context, instance any, id string) (any, error) {
//	        if init, ok := instance.(interface{ Init() error }); ok {
//	            return instance, init.Init()
//	        }
//	        return instance, nil
//	    }))
//
// # Extend / Decorate
//
//	c.Extend("logger", func(instance any, c *container.Container) (any, error) {
//	    return &TimestampLogger{Inner: instance.(*Logger)}, nil
//	})
//
// # Errors
//
// Get fails with *beans.NotFoundError when the id is not registered and with
// *beans.BeanCreationError for anything that goes wrong while building,
// including references to missing beans and circular references
// (*beans.CyclicDependencyError inside). Beans cached before a failure stay
// cached.
//
// # Concurrency
//
// Get is safe for concurrent use. With SerializeConstruction (the default)
// concurrent first requests for a singleton share one construction. With
// AllowRedundantConstruction they may each construct; the first finished
// instance is cached and returned to all of them.
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(reg *beans.Registry, classes *class.Table) error {
//	    return reg.Register("mailer", beans.NewDescriptor("", "mail.SMTPMailer"))
//	}
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&AppServiceProvider{})
//	_ = registry.Boot()
package container
