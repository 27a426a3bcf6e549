package reader

import (
	"errors"
	"fmt"
)

// ErrDefinitionStore is matched by every DefinitionStoreError.
var ErrDefinitionStore = errors.New("invalid bean definition source")

// DefinitionStoreError reports an unreadable or malformed definition
// resource. It is never a runtime wiring error: nothing from the failing
// resource's invalid entry has been registered.
type DefinitionStoreError struct {
	Resource string
	Err      error
}

func (e *DefinitionStoreError) Error() string {
	return fmt.Sprintf("bean definitions from %s: %v", e.Resource, e.Err)
}

func (e *DefinitionStoreError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrDefinitionStore) match.
func (e *DefinitionStoreError) Is(target error) bool { return target == ErrDefinitionStore }
