// Package model defines the format-agnostic representation of the declared
// reference graph. The HCL loader translates manifest files into this model;
// the validator and graph builder consume it without knowing anything about
// the manifest syntax.
package model

// EntityType is the format-agnostic representation of one `entity` block: a
// single class of geometric object together with its declared references.
type EntityType struct {
	Name string

	// DeclaredLayer is the layer the manifest restates for this type, or zero
	// when the manifest omits it. The registry remains authoritative; a
	// non-zero value is only cross-checked.
	DeclaredLayer int

	// References are the eager, load-time references this type declares.
	// These are the edges the validator inspects.
	References []string

	// Deferred are references resolved lazily at call sites. They are
	// excluded from eager validation and exist in the manifest so the two
	// sets can be checked for overlap.
	Deferred []string

	// SourceFile records which manifest file declared this entity, for
	// diagnostics.
	SourceFile string
}

// Graph is the complete declared-reference graph supplied by the surrounding
// geometric library.
type Graph struct {
	Entities map[string]*EntityType
}

// NewGraph creates an empty Graph.
func NewGraph() *Graph {
	return &Graph{Entities: make(map[string]*EntityType)}
}
