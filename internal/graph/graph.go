// Package graph provides a read-only adjacency view over a web's relations.
//
// Nodes are lexeme texts. A directed relation contributes one edge
// source→sink; a symmetric relation is traversable from both endpoints and
// contributes source→sink and sink→source.
package graph

import (
	"cmp"
	"slices"

	"github.com/roach88/lexweb/internal/model"
)

// Edge is one traversable step out of a node.
type Edge struct {
	Label     string `json:"label"`
	To        string `json:"to"`
	Symmetric bool   `json:"symmetric"`
	// Reversed is set on the sink→source half of a symmetric relation.
	Reversed bool `json:"reversed,omitempty"`
}

// Graph is an immutable adjacency list keyed by lexeme text.
type Graph struct {
	adj map[string][]Edge
}

// Build constructs the graph for a set of relations. Edge lists are sorted
// by label then target so traversal output is deterministic.
func Build(relations []model.Relation) *Graph {
	g := &Graph{adj: make(map[string][]Edge)}
	for _, r := range relations {
		src, sink, label := r.Source.Text, r.Sink.Text, r.Name.Text
		g.addNode(src)
		g.addNode(sink)
		g.adj[src] = append(g.adj[src], Edge{Label: label, To: sink, Symmetric: r.Symmetric})
		if r.Symmetric && src != sink {
			g.adj[sink] = append(g.adj[sink], Edge{Label: label, To: src, Symmetric: true, Reversed: true})
		}
	}
	for n := range g.adj {
		slices.SortFunc(g.adj[n], compareEdges)
	}
	return g
}

func (g *Graph) addNode(n string) {
	if _, ok := g.adj[n]; !ok {
		g.adj[n] = []Edge{}
	}
}

func compareEdges(a, b Edge) int {
	if c := cmp.Compare(a.Label, b.Label); c != 0 {
		return c
	}
	if c := cmp.Compare(a.To, b.To); c != 0 {
		return c
	}
	switch {
	case a.Reversed == b.Reversed:
		return 0
	case a.Reversed:
		return 1
	default:
		return -1
	}
}

// Nodes returns every lexeme text that appears in a relation, sorted.
func (g *Graph) Nodes() []string {
	nodes := make([]string, 0, len(g.adj))
	for n := range g.adj {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// Has reports whether text is a node of the graph.
func (g *Graph) Has(text string) bool {
	_, ok := g.adj[text]
	return ok
}

// Neighbors returns the edges leaving text. Unknown nodes have none.
func (g *Graph) Neighbors(text string) []Edge {
	return slices.Clone(g.adj[text])
}

// Reachable returns every node reachable from text in one or more steps,
// sorted. text itself is included only if a path leads back to it.
func (g *Graph) Reachable(text string) []string {
	seen := make(map[string]bool)
	queue := []string{text}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, e := range g.adj[n] {
			if !seen[e.To] {
				seen[e.To] = true
				queue = append(queue, e.To)
			}
		}
	}
	out := make([]string, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}
