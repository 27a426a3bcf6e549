package container

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
)

// ── Singleton policy ──────────────────────────────────────────────────────────

// SingletonPolicy decides what happens when several goroutines request the
// same not-yet-built singleton.
type SingletonPolicy int

const (
	// SerializeConstruction runs at most one construction per id at a time;
	// concurrent callers wait for it and share its result.
	SerializeConstruction SingletonPolicy = iota

	// AllowRedundantConstruction lets concurrent callers each construct. The
	// first completed instance is cached and every caller receives it.
	AllowRedundantConstruction
)

// String returns the configuration name of the policy.
func (p SingletonPolicy) String() string {
	switch p {
	case SerializeConstruction:
		return "serialize"
	case AllowRedundantConstruction:
		return "redundant"
	default:
		return "unknown"
	}
}

// ParseSingletonPolicy parses "serialize" (or "") and "redundant".
func ParseSingletonPolicy(s string) (SingletonPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "serialize":
		return SerializeConstruction, nil
	case "redundant":
		return AllowRedundantConstruction, nil
	}
	return SerializeConstruction, fmt.Errorf("container: unknown singleton policy %q", s)
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container builds beans from the descriptors in a Registry.
//
// It supports:
//   - Singleton and prototype scopes
//   - Constructor arguments and properties, literal or by reference
//   - Post-processors (autowiring, per-bean extenders)
//   - Eager singleton creation
//   - Circular reference detection
type Container struct {
	id       string
	registry *beans.Registry
	classes  *class.Table
	logger   *zap.Logger
	policy   SingletonPolicy

	mu sync.RWMutex

	// id → finished singleton instance
	singletons map[string]any

	// run in registration order on every construction
	processors []PostProcessor

	// per-id construction slots for SerializeConstruction
	inflight singleflight.Group
}

// Option configures a Container.
type Option func(*Container)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSingletonPolicy sets the concurrent singleton construction policy.
func WithSingletonPolicy(p SingletonPolicy) Option {
	return func(c *Container) { c.policy = p }
}

// WithPostProcessors registers post-processors at construction time.
func WithPostProcessors(processors ...PostProcessor) Option {
	return func(c *Container) { c.processors = append(c.processors, processors...) }
}

// New creates a container reading descriptors from registry and classes
// from classes.
func New(registry *beans.Registry, classes *class.Table, opts ...Option) *Container {
	c := &Container{
		id:         uuid.NewString(),
		registry:   registry,
		classes:    classes,
		logger:     zap.NewNop(),
		singletons: make(map[string]any),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("container", c.id))
	return c
}

// ID returns the unique id of this container instance.
func (c *Container) ID() string { return c.id }

// Registry returns the descriptor registry.
func (c *Container) Registry() *beans.Registry { return c.registry }

// Classes returns the class table.
func (c *Container) Classes() *class.Table { return c.classes }

// Policy returns the singleton construction policy.
func (c *Container) Policy() SingletonPolicy { return c.policy }

// ── Resolution ────────────────────────────────────────────────────────────────

// Get returns the bean registered under id, building it if needed.
//
//	store, err := c.Get("petStore")
func (c *Container) Get(id string) (any, error) {
	return c.getBean(context.Background(), id)
}

// GetContext is Get with a caller context. The context is handed to
// post-processors.
func (c *Container) GetContext(ctx context.Context, id string) (any, error) {
	return c.getBean(ctx, id)
}

// getBean is the single entry point for top-level and nested lookups.
func (c *Container) getBean(ctx context.Context, id string) (any, error) {
	d, err := c.registry.Get(id)
	if err != nil {
		return nil, err
	}

	if d.IsSingleton() {
		if inst, ok := c.cached(id); ok {
			return inst, nil
		}
	}

	path := creationPath(ctx)
	if slices.Contains(path, id) {
		return nil, &beans.CyclicDependencyError{Chain: append(slices.Clone(path), id)}
	}
	ctx = withCreation(ctx, id)

	if !d.IsSingleton() {
		return c.createBean(ctx, d)
	}
	if c.policy == AllowRedundantConstruction {
		return c.createSingleton(ctx, d)
	}

	inst, err, _ := c.inflight.Do(id, func() (any, error) {
		if inst, ok := c.cached(id); ok {
			return inst, nil
		}
		return c.createSingleton(ctx, d)
	})
	return inst, err
}

// createSingleton builds d and caches it. If another construction finished
// first, its instance wins and is returned instead.
func (c *Container) createSingleton(ctx context.Context, d *beans.Descriptor) (any, error) {
	inst, err := c.createBean(ctx, d)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.singletons[d.ID]; ok {
		c.logger.Debug("discarding redundant singleton", zap.String("bean", d.ID))
		return existing, nil
	}
	c.singletons[d.ID] = inst
	return inst, nil
}

// createBean runs the construction sequence: constructor arguments,
// constructor, properties, post-processors.
func (c *Container) createBean(ctx context.Context, d *beans.Descriptor) (any, error) {
	log := c.logger.With(zap.String("bean", d.ID))
	log.Debug("creating bean",
		zap.String("class", d.ClassName),
		zap.String("scope", string(d.EffectiveScope())))

	inst, err := c.build(ctx, d)
	if err != nil {
		log.Debug("bean creation failed", zap.Error(err))
		return nil, err
	}

	log.Debug("bean created", zap.String("type", fmt.Sprintf("%T", inst)))
	return inst, nil
}

func (c *Container) build(ctx context.Context, d *beans.Descriptor) (any, error) {
	cls, ok := c.classes.Lookup(d.ClassName)
	if !ok {
		return nil, creationError(d.ID, fmt.Sprintf("unknown class %q", d.ClassName), nil)
	}

	resolver := c.ValueResolver(ctx)

	args := make([]any, 0, len(d.ConstructorArgs))
	for i, arg := range d.ConstructorArgs {
		v, err := resolver.Resolve(arg.Value)
		if err != nil {
			return nil, creationError(d.ID, fmt.Sprintf("constructor argument %d", i), err)
		}
		args = append(args, v)
	}

	ctor, err := selectConstructor(cls, d.ConstructorArgs, args)
	if err != nil {
		return nil, creationError(d.ID, "", err)
	}
	inst, err := ctor.New(args)
	if err != nil {
		return nil, creationError(d.ID, "constructor failed", err)
	}

	for _, pv := range d.Properties {
		set, ok := cls.Properties[pv.Name]
		if !ok {
			return nil, creationError(d.ID, fmt.Sprintf("class %s has no settable property %q", cls.Name, pv.Name), nil)
		}
		v, err := resolver.Resolve(pv.Value)
		if err != nil {
			return nil, creationError(d.ID, fmt.Sprintf("property %q", pv.Name), err)
		}
		if err := set(inst, v); err != nil {
			return nil, creationError(d.ID, fmt.Sprintf("property %q", pv.Name), err)
		}
	}

	for _, p := range c.PostProcessors() {
		inst, err = p.PostProcess(ctx, inst, d.ID)
		if err != nil {
			return nil, creationError(d.ID, "post-processing", err)
		}
		if inst == nil {
			return nil, creationError(d.ID, fmt.Sprintf("post-processor %T returned nil", p), nil)
		}
	}
	return inst, nil
}

// selectConstructor picks an overload by arity. Name and type hints only
// narrow the choice when several overloads share the arity; among the rest
// the first whose parameter types accept args wins.
func selectConstructor(cls *class.Class, hints []beans.ConstructorArgument, args []any) (class.Constructor, error) {
	candidates := cls.ConstructorsWithArity(len(args))
	if len(candidates) > 1 {
		if narrowed := matchHints(candidates, hints); len(narrowed) > 0 {
			candidates = narrowed
		}
	}
	for _, ctor := range candidates {
		if ctor.Accepts == nil || ctor.Accepts(args) {
			return ctor, nil
		}
	}
	return class.Constructor{}, fmt.Errorf("no constructor of %s accepts (%s)", cls.Name, describeArgs(args))
}

func matchHints(candidates []class.Constructor, hints []beans.ConstructorArgument) []class.Constructor {
	var out []class.Constructor
	for _, ctor := range candidates {
		ok := true
		for i, h := range hints {
			p := ctor.Params[i]
			if h.Name != "" && p.Name != "" && h.Name != p.Name {
				ok = false
				break
			}
			if h.Type != "" && p.Type != "" && h.Type != p.Type {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, ctor)
		}
	}
	return out
}

func describeArgs(args []any) string {
	types := make([]string, len(args))
	for i, a := range args {
		types[i] = fmt.Sprintf("%T", a)
	}
	return strings.Join(types, ", ")
}

func creationError(id, reason string, err error) error {
	return &beans.BeanCreationError{ID: id, Reason: reason, Err: err}
}

// ── Creation path ─────────────────────────────────────────────────────────────

type creationKey struct{}

// creationPath returns the ids currently being built on this call chain.
func creationPath(ctx context.Context) []string {
	path, _ := ctx.Value(creationKey{}).([]string)
	return path
}

func withCreation(ctx context.Context, id string) context.Context {
	path := creationPath(ctx)
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return context.WithValue(ctx, creationKey{}, append(next, id))
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Resolved reports whether a singleton instance is cached for id.
func (c *Container) Resolved(id string) bool {
	_, ok := c.cached(id)
	return ok
}

func (c *Container) cached(id string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	inst, ok := c.singletons[id]
	return inst, ok
}

// PreInstantiateSingletons builds every singleton in registration order and
// stops at the first failure.
func (c *Container) PreInstantiateSingletons(ctx context.Context) error {
	for _, d := range c.registry.Descriptors() {
		if !d.IsSingleton() {
			continue
		}
		if _, err := c.getBean(ctx, d.ID); err != nil {
			return err
		}
	}
	return nil
}

// beanIDsForType lists, in registration order, the ids whose class is
// assignable to typ. exclude is skipped.
func (c *Container) beanIDsForType(typ, exclude string) []string {
	var ids []string
	for _, d := range c.registry.Descriptors() {
		if d.ID == exclude {
			continue
		}
		cls, ok := c.classes.Lookup(d.ClassName)
		if ok && cls.AssignableTo(typ) {
			ids = append(ids, d.ID)
		}
	}
	return ids
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Get and type-asserts the result.
//
//	store, err := container.Resolve[*petstore.PetStore](c, "petStore")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	inst, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := inst.(T)
	if !ok {
		return zero, fmt.Errorf("container: Resolve[%s]: [%s] resolved to %T", class.TypeOf[T](), id, inst)
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error.
func MustResolve[T any](c *Container, id string) T {
	typed, err := Resolve[T](c, id)
	if err != nil {
		panic(err)
	}
	return typed
}
