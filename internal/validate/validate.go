package validate

import (
	"context"
	"errors"
	"sort"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/graph"
	"github.com/vk/geomlayers/internal/model"
	"github.com/vk/geomlayers/internal/registry"
)

// Validate checks every declared eager reference in the graph against the
// layer registry and returns the complete set of violations. It never aborts
// on the first finding; the returned report carries every offending reference
// from the run, in deterministic order.
//
// Deferred references are not load-time dependencies and are never checked
// against the ordering. They are only inspected for overlap with the eager
// set and for unknown names.
func Validate(ctx context.Context, m *model.Graph, reg *registry.Registry) *Report {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Validate: starting layering check.", "entities", len(m.Entities))

	report := &Report{}

	names := make([]string, 0, len(m.Entities))
	for name := range m.Entities {
		names = append(names, name)
	}
	sort.Strings(names)

	unknownSeen := false
	for _, name := range names {
		ent := m.Entities[name]
		unknownSeen = checkEntity(report, ent, reg) || unknownSeen
	}

	// The ordering check is edge-by-edge and cannot cover edges that touch an
	// unknown type. Fall back to a structural cycle check in that case, so a
	// cycle hiding behind an unrecognized name still fails the gate.
	if unknownSeen {
		g := graph.Build(ctx, m)
		if err := g.DetectCycles(); err != nil {
			var cycleErr *graph.CycleError
			if errors.As(err, &cycleErr) {
				report.add(Violation{Kind: KindCycle, FromType: cycleErr.Node})
			} else {
				report.add(Violation{Kind: KindCycle})
			}
		}
	}

	if report.Empty() {
		logger.Debug("Validate: layering check passed.")
	} else {
		logger.Debug("Validate: layering check failed.", "violations", len(report.Violations))
	}
	return report
}

// checkEntity appends all violations for a single entity block. It reports
// whether any name involved was unknown to the registry.
func checkEntity(report *Report, ent *model.EntityType, reg *registry.Registry) bool {
	unknownSeen := false

	fromLayer, err := reg.LayerOf(ent.Name)
	if err != nil {
		report.add(Violation{Kind: KindUnknownType, FromType: ent.Name})
		unknownSeen = true
	}

	// A restated layer is advisory; the table wins, but a contradiction is a
	// manifest bug worth failing the build over.
	if err == nil && ent.DeclaredLayer != 0 && ent.DeclaredLayer != fromLayer {
		report.add(Violation{
			Kind:      KindLayerMismatch,
			FromType:  ent.Name,
			FromLayer: fromLayer,
			ToLayer:   ent.DeclaredLayer,
		})
	}

	deferred := make(map[string]struct{}, len(ent.Deferred))
	for _, name := range ent.Deferred {
		deferred[name] = struct{}{}
	}

	for _, ref := range dedupe(ent.References) {
		if _, dual := deferred[ref]; dual {
			report.add(Violation{Kind: KindDualReference, FromType: ent.Name, ToType: ref})
		}

		toLayer, refErr := reg.LayerOf(ref)
		if refErr != nil {
			report.add(Violation{Kind: KindUnknownType, FromType: ent.Name, ToType: ref})
			unknownSeen = true
			continue
		}
		if err != nil {
			// The referencing type itself is unknown; there is no layer to
			// compare against.
			continue
		}

		// The core ordering invariant: strictly lower, never equal. A
		// same-layer reference would permit same-layer cycles.
		if toLayer >= fromLayer {
			report.add(Violation{
				Kind:      KindLayerOrder,
				FromType:  ent.Name,
				ToType:    ref,
				FromLayer: fromLayer,
				ToLayer:   toLayer,
			})
		}
	}

	for _, name := range dedupe(ent.Deferred) {
		if !reg.Contains(name) {
			report.add(Violation{Kind: KindUnknownType, FromType: ent.Name, ToType: name})
			unknownSeen = true
		}
	}

	return unknownSeen
}

// dedupe removes repeated names while preserving first-occurrence order, so a
// reference listed twice in a manifest produces one violation, not two.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := names[:0:0]
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
