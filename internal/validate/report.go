package validate

import (
	"fmt"
	"strings"
)

// Kind classifies a violation.
type Kind string

const (
	// KindLayerOrder is an eager reference to an equal-or-higher layer.
	KindLayerOrder Kind = "layer-order"
	// KindLayerMismatch is a manifest restating a layer that contradicts the
	// canonical table.
	KindLayerMismatch Kind = "layer-mismatch"
	// KindUnknownType is a name absent from the layer table.
	KindUnknownType Kind = "unknown-type"
	// KindDualReference is a name listed as both eager and deferred by the
	// same entity.
	KindDualReference Kind = "dual-reference"
	// KindCycle is a cycle in the eager graph. It can only surface when
	// unknown types prevent the edge-by-edge ordering check from covering
	// the whole graph.
	KindCycle Kind = "cycle"
)

// Violation is one detected breach of the layering contract.
type Violation struct {
	Kind     Kind
	FromType string
	ToType   string
	// FromLayer and ToLayer are the canonical layers of FromType and ToType.
	// For KindLayerMismatch, ToLayer carries the layer the manifest restated.
	// Zero means the layer is not applicable or not known.
	FromLayer int
	ToLayer   int
}

// String renders the violation as a single report line.
func (v Violation) String() string {
	switch v.Kind {
	case KindLayerOrder:
		return fmt.Sprintf("%s: '%s' (layer %d) eagerly references '%s' (layer %d)",
			v.Kind, v.FromType, v.FromLayer, v.ToType, v.ToLayer)
	case KindLayerMismatch:
		return fmt.Sprintf("%s: '%s' is assigned layer %d but its manifest declares layer %d",
			v.Kind, v.FromType, v.FromLayer, v.ToLayer)
	case KindUnknownType:
		if v.ToType != "" {
			return fmt.Sprintf("%s: '%s' references '%s', which is not in the layer table",
				v.Kind, v.FromType, v.ToType)
		}
		return fmt.Sprintf("%s: '%s' is not in the layer table", v.Kind, v.FromType)
	case KindDualReference:
		return fmt.Sprintf("%s: '%s' lists '%s' as both an eager and a deferred reference",
			v.Kind, v.FromType, v.ToType)
	case KindCycle:
		return fmt.Sprintf("%s: eager reference cycle involving '%s'", v.Kind, v.FromType)
	default:
		return fmt.Sprintf("%s: '%s' -> '%s'", v.Kind, v.FromType, v.ToType)
	}
}

// Report is the complete set of violations from one validator run. An empty
// report means the graph respects the layering contract.
type Report struct {
	Violations []Violation
}

// Empty reports whether the run found no violations.
func (r *Report) Empty() bool {
	return len(r.Violations) == 0
}

// String renders the report, one line per violation.
func (r *Report) String() string {
	lines := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		lines = append(lines, v.String())
	}
	return strings.Join(lines, "\n")
}

// add appends a violation to the report.
func (r *Report) add(v Violation) {
	r.Violations = append(r.Violations, v)
}
