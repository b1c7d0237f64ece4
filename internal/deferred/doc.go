// Package deferred provides call-site-scoped lazy binding to lower-layer
// entity types.
//
// Some operations genuinely need a type from a later-loading layer: the
// documented case is a generic scheme method that needs a default base scheme
// of type Spec, one layer above Scheme. An eager reference there would break
// the load order, so the dependency is declared inside the consuming
// operation's body as a deferred reference and resolved on first use. The
// referenced type's defining unit is loaded at that moment, not when the
// referencing type's unit loads.
//
// Declaring a deferred reference at module scope is rejected outright: it
// would reintroduce exactly the load-time coupling the mechanism exists to
// avoid.
//
// Resolution results are cached, but caching is an optimization only.
// Resolving twice is safe and yields an equivalent result; under concurrent
// first use one redundant load may run and be discarded. Load functions are
// therefore required to be pure with respect to global state.
package deferred
