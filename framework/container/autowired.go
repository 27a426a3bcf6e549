package container

import (
	"context"
	"fmt"
	"strings"
)

// AutowireError reports an autowired field without exactly one candidate.
type AutowireError struct {
	Bean       string
	Field      string
	Type       string
	Candidates []string
}

func (e *AutowireError) Error() string {
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("no bean of type %s for autowired field %s.%s", e.Type, e.Bean, e.Field)
	}
	return fmt.Sprintf("expected a single bean of type %s for autowired field %s.%s, found %d: %s",
		e.Type, e.Bean, e.Field, len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// AutowiredProcessor injects the class's autowired fields by type.
//
// For each autowired field it looks up beans whose class is assignable to the
// field type (the bean itself excluded). One candidate is built and injected;
// none is an error for required fields and skipped for optional ones; several
// is always an error.
type AutowiredProcessor struct {
	container *Container
}

// NewAutowiredProcessor creates a processor resolving candidates through c.
func NewAutowiredProcessor(c *Container) *AutowiredProcessor {
	return &AutowiredProcessor{container: c}
}

// PostProcess implements PostProcessor.
func (p *AutowiredProcessor) PostProcess(ctx context.Context, instance any, id string) (any, error) {
	d, err := p.container.registry.Get(id)
	if err != nil {
		return nil, err
	}
	cls, ok := p.container.classes.Lookup(d.ClassName)
	if !ok {
		return instance, nil
	}

	for _, f := range cls.Fields {
		if !f.Autowired {
			continue
		}
		candidates := p.container.beanIDsForType(f.Type, id)
		if len(candidates) == 0 && !f.Required {
			continue
		}
		if len(candidates) != 1 {
			return nil, &AutowireError{Bean: id, Field: f.Name, Type: f.Type, Candidates: candidates}
		}

		dep, err := p.container.getBean(ctx, candidates[0])
		if err != nil {
			return nil, fmt.Errorf("autowired field %s: %w", f.Name, err)
		}
		if err := f.Inject(instance, dep); err != nil {
			return nil, fmt.Errorf("autowired field %s: %w", f.Name, err)
		}
	}
	return instance, nil
}
