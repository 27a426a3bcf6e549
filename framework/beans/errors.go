package beans

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no descriptor is registered for an id.
	ErrNotFound = errors.New("no bean definition found")

	// ErrBeanCreation is matched by every BeanCreationError.
	ErrBeanCreation = errors.New("bean creation failed")
)

// NotFoundError reports a bean id with no registered descriptor.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no bean definition registered for [%s]", e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// BeanCreationError wraps any failure while building a bean: constructor
// selection, property population, reference resolution or post-processing.
type BeanCreationError struct {
	ID     string
	Reason string
	Err    error
}

func (e *BeanCreationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "error creating bean [%s]", e.ID)
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *BeanCreationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrBeanCreation) match.
func (e *BeanCreationError) Is(target error) bool { return target == ErrBeanCreation }

// UnsupportedValueError reports a value variant the resolver cannot handle.
type UnsupportedValueError struct {
	Value ValueSpec
}

func (e *UnsupportedValueError) Error() string {
	if e.Value == nil {
		return "unsupported value: <nil>"
	}
	return fmt.Sprintf("unsupported value %T: %s", e.Value, e.Value)
}

// CyclicDependencyError reports a reference chain that loops back on itself.
// Chain starts and ends with the same id.
type CyclicDependencyError struct {
	Chain []string
}

func (e *CyclicDependencyError) Error() string {
	return "circular reference: " + strings.Join(e.Chain, " -> ")
}
