package discovery

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/km-arc/go-beans/framework/beans"
	"github.com/km-arc/go-beans/framework/class"
)

const (
	// ComponentAnnotation marks a class for discovery.
	ComponentAnnotation = "Component"

	// ScopeAnnotation sets the scope of a discovered bean through its
	// "value" attribute.
	ScopeAnnotation = "Scope"

	// ValueAttribute carries an explicit bean id on any annotation.
	ValueAttribute = "value"
)

// Scanner registers a descriptor for every Component class under a base
// package. It never builds instances.
type Scanner struct {
	registry *beans.Registry
	classes  *class.Table
	names    NameGenerator
	logger   *zap.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithNameGenerator replaces AnnotationBeanNameGenerator.
func WithNameGenerator(g NameGenerator) Option {
	return func(s *Scanner) {
		if g != nil {
			s.names = g
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scanner) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScanner creates a scanner reading classes and writing descriptors to
// registry.
func NewScanner(registry *beans.Registry, classes *class.Table, opts ...Option) *Scanner {
	s := &Scanner{
		registry: registry,
		classes:  classes,
		names:    AnnotationBeanNameGenerator{},
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan registers the components under each base package and returns their
// descriptors in class-table order. Each argument may itself be a
// comma-separated list:
//
//	s.Scan("petstore.service,petstore.dao")
func (s *Scanner) Scan(basePackages ...string) ([]*beans.Descriptor, error) {
	var found []*beans.Descriptor
	seen := make(map[string]bool)

	for _, base := range SplitPackages(basePackages...) {
		for _, cls := range s.classes.InPackage(base) {
			if seen[cls.Name] || !cls.HasAnnotation(ComponentAnnotation) {
				continue
			}
			seen[cls.Name] = true

			d, err := s.candidate(cls)
			if err != nil {
				return found, err
			}
			id := s.names.GenerateBeanName(d, s.registry)
			if err := s.registry.Register(id, d); err != nil {
				return found, fmt.Errorf("discovery: register %s: %w", cls.Name, err)
			}
			s.logger.Debug("component registered",
				zap.String("bean", id),
				zap.String("class", cls.Name),
				zap.String("package", base))
			found = append(found, d)
		}
	}
	return found, nil
}

func (s *Scanner) candidate(cls *class.Class) (*beans.Descriptor, error) {
	md := cls.Metadata()
	d := beans.NewScannedDescriptor(md)
	if attrs := md.Attributes(ScopeAnnotation); attrs != nil {
		scope, err := beans.ParseScope(attrs[ValueAttribute])
		if err != nil {
			return nil, fmt.Errorf("discovery: %s: %w", cls.Name, err)
		}
		d.Scope = scope
	}
	return d, nil
}

// SplitPackages flattens comma-separated package lists and drops blanks.
func SplitPackages(lists ...string) []string {
	var out []string
	for _, list := range lists {
		for _, p := range strings.Split(list, ",") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
