package graph

import (
	"fmt"
	"sort"
	"sync"
)

// CycleError reports a cycle in the eager reference graph, naming one node
// known to be on the cycle.
type CycleError struct {
	Node string
}

// Error implements the error interface for CycleError.
func (e *CycleError) Error() string {
	return fmt.Sprintf("cycle detected involving entity type '%s'", e.Node)
}

// node is one entity type in the reference graph.
type node struct {
	name string
	// references holds the nodes this node eagerly references (outgoing edges).
	references map[string]*node
	// referencedBy holds the nodes that eagerly reference this node.
	referencedBy map[string]*node
}

// Graph is a thread-safe store of entity types and their eager references.
type Graph struct {
	mutex sync.RWMutex
	nodes map[string]*node
}

// New creates and returns an initialized, empty Graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[string]*node),
	}
}

// AddNode adds a new node with the given entity type name to the graph. If a
// node with the same name already exists, the function does nothing.
func (g *Graph) AddNode(name string) {
	g.mutex.Lock()
	defer g.mutex.Unlock()

	if _, ok := g.nodes[name]; ok {
		return
	}

	g.nodes[name] = &node{
		name:         name,
		references:   make(map[string]*node),
		referencedBy: make(map[string]*node),
	}
}

// AddEdge records that `from` eagerly references `to`. An error is returned
// if either node does not exist or if the edge would be a self-reference.
func (g *Graph) AddEdge(from, to string) error {
	if from == to {
		return fmt.Errorf("self-referential edge not allowed: %s -> %s", from, from)
	}

	g.mutex.Lock()
	defer g.mutex.Unlock()

	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("source node not found: %s", from)
	}

	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("destination node not found: %s", to)
	}

	fromNode.references[to] = toNode
	toNode.referencedBy[from] = fromNode

	return nil
}

// Nodes returns the names of all nodes in the graph, sorted.
func (g *Graph) Nodes() []string {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	names := make([]string, 0, len(g.nodes))
	for name := range g.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// References returns the sorted names of the entity types the given node
// eagerly references.
func (g *Graph) References(name string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", name)
	}

	refs := make([]string, 0, len(n.references))
	for refName := range n.references {
		refs = append(refs, refName)
	}
	sort.Strings(refs)
	return refs, nil
}

// ReferencedBy returns the sorted names of the entity types that eagerly
// reference the given node.
func (g *Graph) ReferencedBy(name string) ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	n, ok := g.nodes[name]
	if !ok {
		return nil, fmt.Errorf("node not found: %s", name)
	}

	backRefs := make([]string, 0, len(n.referencedBy))
	for refName := range n.referencedBy {
		backRefs = append(backRefs, refName)
	}
	sort.Strings(backRefs)
	return backRefs, nil
}

// DetectCycles checks the graph for any cycles. It returns a non-nil error
// if a cycle is found, naming the first node involved in the detected cycle.
// Traversal order is sorted at every level, so the reported node is the same
// on every run over the same graph.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	// Classic depth-first search with two marker sets:
	// permanent: nodes fully visited and known not to be part of a cycle.
	// temporary: nodes currently on the recursion stack.
	permanent := make(map[string]bool)
	temporary := make(map[string]bool)

	var visit func(n *node) error
	visit = func(n *node) error {
		if permanent[n.name] {
			return nil
		}
		if temporary[n.name] {
			// A node already on the recursion stack means a cycle.
			return &CycleError{Node: n.name}
		}

		temporary[n.name] = true

		for _, refName := range sortedKeys(n.references) {
			if err := visit(n.references[refName]); err != nil {
				return err
			}
		}

		delete(temporary, n.name)
		permanent[n.name] = true

		return nil
	}

	for _, name := range sortedKeys(g.nodes) {
		if !permanent[name] {
			if err := visit(g.nodes[name]); err != nil {
				return err
			}
		}
	}

	return nil
}

// sortedKeys returns the keys of a node map in sorted order.
func sortedKeys(m map[string]*node) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
