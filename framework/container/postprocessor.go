package container

import "context"

// PostProcessor runs after a bean is constructed and its properties are set,
// before it is cached or returned. It may mutate the instance, return a
// replacement, or return it unchanged. It is not called on cache hits.
type PostProcessor interface {
	PostProcess(ctx context.Context, instance any, id string) (any, error)
}

// PostProcessorFunc adapts a function to PostProcessor.
type PostProcessorFunc func(ctx context.Context, instance any, id string) (any, error)

// PostProcess calls f.
func (f PostProcessorFunc) PostProcess(ctx context.Context, instance any, id string) (any, error) {
	return f(ctx, instance, id)
}

// AddPostProcessor appends p. Processors run in the order they were added.
func (c *Container) AddPostProcessor(p PostProcessor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.processors = append(c.processors, p)
}

// PostProcessors returns a snapshot of the registered processors.
func (c *Container) PostProcessors() []PostProcessor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]PostProcessor, len(c.processors))
	copy(out, c.processors)
	return out
}

// ── Extend ────────────────────────────────────────────────────────────────────

// Extender decorates one bean's freshly built instance.
type Extender func(instance any, c *Container) (any, error)

// Extend decorates every future construction of id. Extenders are ordinary
// post-processors scoped to one id, so they run in registration order with
// the others. Already cached singletons are left untouched.
//
//	c.Extend("logger", func(instance any, c *container.Container) (any, error) {
//	    return &TimestampLogger{Inner: instance.(*Logger)}, nil
//	})
func (c *Container) Extend(id string, fn Extender) {
	c.AddPostProcessor(PostProcessorFunc(func(_ context.Context, instance any, beanID string) (any, error) {
		if beanID != id {
			return instance, nil
		}
		return fn(instance, c)
	}))
}
