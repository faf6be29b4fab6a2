// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataflow

import (
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/internal/graphutil"
	"golang.org/x/tools/container/intsets"
)

// Adj is an element of an adjacency list: the neighbor node, and the edge connecting to it.
type Adj struct {
	// Node is the index of the neighbor
	Node int

	// EdgeID is the id of the edge in the IR
	EdgeID string

	// Edge is the index of the edge in the IR's edge list
	Edge int
}

// Graph indexes the nodes and edges of an IR document. Nodes are identified by their position in the node list, and
// edges by their position in the edge list. A Graph is immutable once built.
type Graph struct {
	index     map[string]int
	ids       []string
	forward   [][]Adj
	backward  [][]Adj
	endpoints [][2]int
	dangling  int
}

// NewGraph returns the graph of the nodes and edges. If several nodes share an id, the id designates the last one.
// Edges whose source or target is not a node id are absent from the adjacency lists; they keep their index.
func NewGraph(nodes []ir.Node, edges []ir.Edge) *Graph {
	g := &Graph{
		index:     make(map[string]int, len(nodes)),
		ids:       make([]string, len(nodes)),
		forward:   make([][]Adj, len(nodes)),
		backward:  make([][]Adj, len(nodes)),
		endpoints: make([][2]int, len(edges)),
	}
	for i, node := range nodes {
		g.index[node.ID] = i
		g.ids[i] = node.ID
	}
	for e, edge := range edges {
		src, srcOk := g.index[edge.Source]
		tgt, tgtOk := g.index[edge.Target]
		if !srcOk {
			src = -1
		}
		if !tgtOk {
			tgt = -1
		}
		g.endpoints[e] = [2]int{src, tgt}
		if !srcOk || !tgtOk {
			g.dangling++
			continue
		}
		g.forward[src] = append(g.forward[src], Adj{Node: tgt, EdgeID: edge.ID, Edge: e})
		g.backward[tgt] = append(g.backward[tgt], Adj{Node: src, EdgeID: edge.ID, Edge: e})
	}
	return g
}

// Len returns the number of nodes
func (g *Graph) Len() int {
	return len(g.ids)
}

// NumEdges returns the number of edges, including the dangling ones
func (g *Graph) NumEdges() int {
	return len(g.endpoints)
}

// NumDangling returns the number of edges with a missing endpoint
func (g *Graph) NumDangling() int {
	return g.dangling
}

// Index returns the index of the node with that id
func (g *Graph) Index(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

// NodeID returns the id of the node at index i
func (g *Graph) NodeID(i int) string {
	return g.ids[i]
}

// Successors returns the outgoing adjacency of node i, in edge order. The result must not be modified.
func (g *Graph) Successors(i int) []Adj {
	return g.forward[i]
}

// Predecessors returns the incoming adjacency of node i, in edge order. The result must not be modified.
func (g *Graph) Predecessors(i int) []Adj {
	return g.backward[i]
}

// EdgeEndpoints returns the indices of the source and target nodes of edge e. ok is false if either is missing, in
// which case the missing index is -1.
func (g *Graph) EdgeEndpoints(e int) (src int, tgt int, ok bool) {
	ends := g.endpoints[e]
	return ends[0], ends[1], ends[0] >= 0 && ends[1] >= 0
}

// BackwardReachable sets into to the nodes from which t is reachable, t included.
// into is cleared first; reusing it across calls avoids allocations.
func (g *Graph) BackwardReachable(t int, into *intsets.Sparse) {
	g.reachable(t, g.backward, into)
}

// ForwardReachable sets into to the nodes reachable from s, s included.
// into is cleared first; reusing it across calls avoids allocations.
func (g *Graph) ForwardReachable(s int, into *intsets.Sparse) {
	g.reachable(s, g.forward, into)
}

func (g *Graph) reachable(start int, adjacency [][]Adj, into *intsets.Sparse) {
	into.Clear()
	if start < 0 || start >= len(adjacency) {
		return
	}
	into.Insert(start)
	worklist := []int{start}
	for len(worklist) > 0 {
		cur := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		for _, adj := range adjacency[cur] {
			if into.Insert(adj.Node) {
				worklist = append(worklist, adj.Node)
			}
		}
	}
}

// SuccessorIndices returns the successor matrix of the graph: the i-th row lists the successors of node i, with
// one entry per edge.
func (g *Graph) SuccessorIndices() [][]int {
	m := make([][]int, len(g.forward))
	for i, adj := range g.forward {
		m[i] = make([]int, len(adj))
		for j, a := range adj {
			m[i][j] = a.Node
		}
	}
	return m
}

// DiGraph returns the graph as a graphutil.DiGraph, to run graph library algorithms on it
func (g *Graph) DiGraph() *graphutil.DiGraph {
	return graphutil.NewDiGraph(g.Len(), g.SuccessorIndices())
}
