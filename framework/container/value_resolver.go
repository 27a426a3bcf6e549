package container

import (
	"context"

	"github.com/km-arc/go-beans/framework/beans"
)

// ValueResolver turns configured values into runtime values. References are
// resolved through the container that created the resolver.
type ValueResolver struct {
	ctx       context.Context
	container *Container
}

// ValueResolver returns a resolver whose reference lookups run under ctx.
func (c *Container) ValueResolver(ctx context.Context) *ValueResolver {
	return &ValueResolver{ctx: ctx, container: c}
}

// Resolve converts v:
//   - Literal   → its text, unchanged
//   - Reference → the referenced bean, built on demand
//
// Any other variant fails with *beans.UnsupportedValueError.
func (r *ValueResolver) Resolve(v beans.ValueSpec) (any, error) {
	switch v := v.(type) {
	case beans.Literal:
		return v.Text, nil
	case beans.Reference:
		return r.container.getBean(r.ctx, v.BeanID)
	default:
		return nil, &beans.UnsupportedValueError{Value: v}
	}
}
