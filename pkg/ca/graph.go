package ca

import "github.com/pkg/errors"

// GraphCA is a cellular automaton over a directed adjacency graph. Node ids are
// dense integers in [0, NumNodes()).
type GraphCA struct {
	adjacency map[int][]int
	numNodes  int
	edges     int

	// States holds the current generation, one byte per node. Callers may write
	// it between ticks but must keep its length equal to NumNodes().
	States []uint8
}

// NewGraphCA returns a graph with n nodes, no edges and all states Void.
func NewGraphCA(n int) *GraphCA {
	if n < 0 {
		n = 0
	}
	return &GraphCA{
		adjacency: make(map[int][]int),
		numNodes:  n,
		States:    make([]uint8, n),
	}
}

// NumNodes returns the node count fixed at construction.
func (g *GraphCA) NumNodes() int { return g.numNodes }

// NumEdges returns the number of recorded directed edges.
func (g *GraphCA) NumEdges() int { return g.edges }

// AddEdge appends a directed edge from -> to. Duplicates and self-loops are
// kept. Both ids must name existing nodes; an invalid edge is rejected and not
// recorded.
func (g *GraphCA) AddEdge(from, to int) error {
	if !g.valid(from) || !g.valid(to) {
		return errors.Wrapf(ErrInvalidIndex, "edge %d->%d on %d-node graph", from, to, g.numNodes)
	}
	g.adjacency[from] = append(g.adjacency[from], to)
	g.edges++
	return nil
}

// Neighbors returns the out-neighbors of node in insertion order. Nodes
// without outgoing edges yield an empty slice. The result must not be modified.
func (g *GraphCA) Neighbors(node int) []int {
	return g.adjacency[node]
}

// Degree returns the out-degree of node.
func (g *GraphCA) Degree(node int) int { return len(g.adjacency[node]) }

func (g *GraphCA) valid(node int) bool { return node >= 0 && node < g.numNodes }
