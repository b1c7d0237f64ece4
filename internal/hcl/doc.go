// Package hcl loads entity manifest files and translates them into the
// format-agnostic model consumed by the validator.
//
// A manifest declares the reference surface of one or more entity types:
//
//	entity "Divisor" {
//	  layer      = 8
//	  references = ["Hypersurface", "AlgebraicScheme"]
//	  deferred   = ["DivisorGroup"]
//	}
//
// The `layer` attribute is advisory; the registry's canonical table remains
// authoritative and any restated value is cross-checked by the validator.
// Entries in `references` are eager, load-time dependencies. Entries in
// `deferred` are call-site-resolved dependencies and are excluded from eager
// validation by construction.
package hcl
