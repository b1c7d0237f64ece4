package graph

import (
	"context"

	"github.com/vk/geomlayers/internal/ctxlog"
	"github.com/vk/geomlayers/internal/model"
)

// Build constructs a reference graph from the loaded manifest model. Edges are
// the eager references only; deferred references never become edges here, by
// definition. Referenced types that have no entity block of their own still
// get a node, so structural queries work for them.
func Build(ctx context.Context, m *model.Graph) *Graph {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: starting reference graph construction.")

	g := New()

	// First pass: create all nodes, including reference targets declared
	// nowhere else.
	for name, ent := range m.Entities {
		g.AddNode(name)
		for _, ref := range ent.References {
			g.AddNode(ref)
		}
	}
	logger.Debug("Build: node creation complete.", "node_count", len(g.nodes))

	// Second pass: link eager references. AddNode above guarantees both
	// endpoints exist; self-references are skipped here and reported by the
	// validator instead, since a same-type reference is a layer violation.
	for name, ent := range m.Entities {
		for _, ref := range ent.References {
			if ref == name {
				continue
			}
			_ = g.AddEdge(name, ref)
		}
	}
	logger.Debug("Build: edge linking complete.")

	return g
}
