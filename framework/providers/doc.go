// Package providers holds the built-in service providers: descriptor
// sources (YAML files, component scanning), class registration and eager
// singleton creation.
//
//	registry := container.NewProviderRegistry(c)
//	_ = registry.Register(&providers.ClassProvider{Classes: petstore.Classes()})
//	_ = registry.Register(&providers.DefinitionFileProvider{Files: []string{"beans.yaml"}})
//	_ = registry.Register(&providers.EagerSingletonProvider{})
//	_ = registry.Boot()
package providers
