// Package registry holds the authoritative layer table for the geometric
// entity types.
//
// Every entity type the surrounding library defines is assigned to exactly one
// numbered layer. Layer numbers encode load order, not abstraction level:
// layer 1 loads first, and a type may only eagerly reference types from
// strictly lower-numbered layers. The table is fixed at design time and is
// part of the program source; the Registry built from it is immutable and
// safe for concurrent readers without locking.
//
// Other packages consume the registry two ways: the validator checks every
// declared eager reference against it, and external tooling (linters, the CLI
// report) queries LayerOf and AllLayers to reason about permitted references.
package registry
