package registry

import (
	"fmt"
	"sort"
)

// UnknownTypeError reports a lookup of an entity type name that is absent from
// the layer table. It signals a programmer error in the caller, not a
// recoverable condition.
type UnknownTypeError struct {
	Name string
}

// Error implements the error interface for UnknownTypeError.
func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown entity type '%s': not present in the layer table", e.Name)
}

// Layer groups the entity type names assigned to one layer number.
type Layer struct {
	Number int
	Types  []string
}

// Registry is the immutable mapping from entity type name to layer number.
// It is built once from the canonical table and never mutated afterwards, so
// concurrent readers need no locking.
type Registry struct {
	layers map[string]int
}

// New creates a Registry populated from the canonical layer table.
func New() *Registry {
	r := &Registry{layers: make(map[string]int)}
	for layer, names := range canonicalTable {
		for _, name := range names {
			if _, exists := r.layers[name]; exists {
				panic(fmt.Sprintf("entity type '%s' assigned to more than one layer", name))
			}
			r.layers[name] = layer
		}
	}
	return r
}

// LayerOf returns the layer number for the named entity type. It returns an
// UnknownTypeError if the name is absent from the table.
func (r *Registry) LayerOf(name string) (int, error) {
	layer, ok := r.layers[name]
	if !ok {
		return 0, &UnknownTypeError{Name: name}
	}
	return layer, nil
}

// Contains reports whether the named entity type is present in the table.
func (r *Registry) Contains(name string) bool {
	_, ok := r.layers[name]
	return ok
}

// AllLayers returns the full table as a sequence ordered ascending by layer
// number, with type names sorted within each layer. It exists for diagnostic
// and reporting use.
func (r *Registry) AllLayers() []Layer {
	byNumber := make(map[int][]string)
	for name, layer := range r.layers {
		byNumber[layer] = append(byNumber[layer], name)
	}

	numbers := make([]int, 0, len(byNumber))
	for n := range byNumber {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	layers := make([]Layer, 0, len(numbers))
	for _, n := range numbers {
		names := byNumber[n]
		sort.Strings(names)
		layers = append(layers, Layer{Number: n, Types: names})
	}
	return layers
}
