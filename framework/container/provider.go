package container

import (
	"fmt"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
)

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider contributes classes and descriptors to a container.
//
// Register is called for every provider before any of them boots; it must
// only populate the registry and the class table. Boot runs afterwards, when
// it is safe to resolve beans.
//
//	type PetStoreProvider struct{ container.BaseProvider }
//
//	func (p *PetStoreProvider) Register(reg *beans.Registry, classes *class.Table) error {
//	    _ = classes.Register(petstore.AccountDaoClass())
//	    return reg.Register("accountDao", beans.NewDescriptor("", "petstore.dao.AccountDao"))
//	}
type ServiceProvider interface {
	// Register adds classes and descriptors. Do NOT resolve beans here.
	Register(registry *beans.Registry, classes *class.Table) error

	// Boot is called after all providers are registered.
	Boot(c *Container) error
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct with a no-op Boot.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders.
type ProviderRegistry struct {
	app        *Container
	providers  []ServiceProvider
	booted     bool
	bootErr    error
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to app.
func NewProviderRegistry(app *Container) *ProviderRegistry {
	return &ProviderRegistry{
		app:        app,
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register method. Registering the
// same provider twice is a no-op. A provider added after Boot is booted
// immediately.
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	if err := provider.Register(r.app.Registry(), r.app.Classes()); err != nil {
		return fmt.Errorf("register %T: %w", provider, err)
	}
	r.registered[provider] = true
	r.providers = append(r.providers, provider)

	if r.booted {
		if err := provider.Boot(r.app); err != nil {
			return fmt.Errorf("boot %T: %w", provider, err)
		}
	}
	return nil
}

// Boot calls Boot on every registered provider in registration order and
// stops at the first error. Later calls return the result of the first one.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return r.bootErr
	}
	r.booted = true
	for _, provider := range r.providers {
		if err := provider.Boot(r.app); err != nil {
			r.bootErr = fmt.Errorf("boot %T: %w", provider, err)
			return r.bootErr
		}
	}
	return nil
}

// Booted returns true if Boot has been called, whether or not it succeeded.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Err returns the error of the first Boot call, or nil.
func (r *ProviderRegistry) Err() error { return r.bootErr }

// Providers returns all registered providers.
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.providers }
