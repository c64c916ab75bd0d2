package cfndot

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dep is a single dependency edge: the logical name of the resource being
// depended on and a short label describing how the dependency arose.
type Dep struct {
	Target string
	Label  string
}

// Graph accumulates dependency edges and node annotations while templates are
// parsed. Edges of one source node form a set: inserting the same target and
// label twice stores one edge.
type Graph struct {
	edges       map[string]map[Dep]struct{}
	annotations map[string]string
	incoming    map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		edges:       map[string]map[Dep]struct{}{},
		annotations: map[string]string{},
		incoming:    map[string]struct{}{},
	}
}

// AddEdge records an edge from source to dep.Target.
func (g *Graph) AddEdge(source string, dep Dep) {
	deps, ok := g.edges[source]
	if !ok {
		deps = map[Dep]struct{}{}
		g.edges[source] = deps
	}
	deps[dep] = struct{}{}
	g.incoming[dep.Target] = struct{}{}
}

// Annotate assigns a display label to a node. The label may span multiple
// lines; renderers treat the first line as the node title.
func (g *Graph) Annotate(node, label string) {
	g.annotations[node] = label
}

// Annotation returns the display label assigned to node, if any.
func (g *Graph) Annotation(node string) (string, bool) {
	label, ok := g.annotations[node]
	return label, ok
}

// Nodes returns the names of every connected node in lexical order. A node is
// connected when it has at least one outgoing or incoming edge; annotated but
// unconnected nodes are left out.
func (g *Graph) Nodes() []string {
	seen := make(map[string]struct{}, len(g.edges)+len(g.incoming))
	for name, deps := range g.edges {
		if len(deps) > 0 {
			seen[name] = struct{}{}
		}
	}
	for name := range g.incoming {
		seen[name] = struct{}{}
	}

	nodes := maps.Keys(seen)
	slices.Sort(nodes)
	return nodes
}

// Edges returns the outgoing edges of source ordered by target, then label.
func (g *Graph) Edges(source string) []Dep {
	deps := maps.Keys(g.edges[source])
	slices.SortFunc(deps, func(a, b Dep) bool {
		if a.Target != b.Target {
			return a.Target < b.Target
		}
		return a.Label < b.Label
	})
	return deps
}
