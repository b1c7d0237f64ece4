package deferred

import (
	"fmt"
	"strings"
)

// InvalidScopeError reports an attempt to declare a deferred reference at
// module scope. Deferred references exist precisely to avoid module-level
// coupling, so a module-scoped declaration defeats their purpose and is
// rejected immediately.
type InvalidScopeError struct {
	From  string
	To    string
	Scope Scope
}

// Error implements the error interface for InvalidScopeError.
func (e *InvalidScopeError) Error() string {
	return fmt.Sprintf("deferred reference %s -> %s declared with scope '%s': deferred references must be call-scoped",
		e.From, e.To, e.Scope)
}

// LoadCycleError reports that resolving a deferred reference triggered a
// chain of unit loads that circled back onto a unit already being loaded.
// This is the delayed form of the cycle the layering forbids, and it is just
// as fatal.
type LoadCycleError struct {
	Chain []string
}

// Error implements the error interface for LoadCycleError.
func (e *LoadCycleError) Error() string {
	return fmt.Sprintf("deferred resolution load cycle: %s", strings.Join(e.Chain, " -> "))
}
