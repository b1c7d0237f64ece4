package deferred

import (
	"context"
)

// Reference is a postponed dependency from one entity type to another. It is
// declared once per call site that needs it and resolved on first use; until
// then the referenced type's defining unit stays unloaded.
type Reference struct {
	resolver *Resolver
	from     string
	to       string
}

// From returns the referencing entity type name.
func (d *Reference) From() string { return d.from }

// To returns the referenced entity type name.
func (d *Reference) To() string { return d.to }

// Resolve returns the referenced type's facility, loading its defining unit
// on first use. Results are cached in the resolver, so resolving the same
// reference again is cheap and yields an equivalent result. Resolution is
// safe under concurrent first use.
func (d *Reference) Resolve(ctx context.Context) (any, error) {
	return d.resolver.loadUnit(ctx, d.to)
}
