package graph

import "slices"

// Cycles returns the strongly connected components of the directed view
// that contain a cycle: components with more than one node, or a single
// node with an edge to itself. Symmetric relations are skipped since every
// one of them would otherwise form a trivial two-node cycle.
//
// Each component is sorted, and components are ordered by their first node.
func (g *Graph) Cycles() [][]string {
	directed := make(map[string][]string, len(g.adj))
	for n, edges := range g.adj {
		directed[n] = []string{}
		for _, e := range edges {
			if !e.Symmetric {
				directed[n] = append(directed[n], e.To)
			}
		}
	}

	var cycles [][]string
	for _, scc := range tarjanSCC(directed) {
		if len(scc) > 1 || hasSelfLoop(scc[0], directed) {
			slices.Sort(scc)
			cycles = append(cycles, scc)
		}
	}
	slices.SortFunc(cycles, func(a, b []string) int { return slices.Compare(a, b) })
	return cycles
}

func hasSelfLoop(node string, adj map[string][]string) bool {
	return slices.Contains(adj[node], node)
}

// tarjanSCC finds strongly connected components. Nodes are visited in
// sorted order so the result does not depend on map iteration.
func tarjanSCC(adj map[string][]string) [][]string {
	var (
		index   = 0
		stack   []string
		indices = make(map[string]int)
		lowlink = make(map[string]int)
		onStack = make(map[string]bool)
		sccs    [][]string
	)

	var strongConnect func(string)
	strongConnect = func(v string) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if _, visited := indices[w]; !visited {
				strongConnect(w)
				lowlink[v] = min(lowlink[v], lowlink[w])
			} else if onStack[w] {
				lowlink[v] = min(lowlink[v], indices[w])
			}
		}

		if lowlink[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	nodes := make([]string, 0, len(adj))
	for n := range adj {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	for _, n := range nodes {
		if _, visited := indices[n]; !visited {
			strongConnect(n)
		}
	}
	return sccs
}
