// Package graph stores the declared eager-reference graph as nodes and
// directed edges, and answers the structural queries the validator and the
// CLI report need: who does a type reference, who references it, and does the
// eager graph contain a cycle.
//
// Cycle detection is a backstop. A graph whose every edge satisfies the layer
// ordering is acyclic by construction; the DFS pass exists for graphs that
// contain types the registry does not know, where the ordering check cannot
// run edge by edge.
package graph
