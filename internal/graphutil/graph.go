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

package graphutil

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/topo"
)

// DiGraph is a directed graph over the vertices 0..Order()-1 to work with existing graph libraries. It implements the
// methods to satisfy yourbasic's graph.Iterator and Gonum's graph.Directed.
// Parallel edges are merged; self-loops are kept.
type DiGraph struct {
	// The order of the graph
	order int

	// succ[v] is the sorted list of successors of v
	succ [][]int

	// pred[v] is the sorted list of predecessors of v
	pred [][]int

	// included[v] is false if v has been removed by Subgraph. nil means every vertex is included.
	included []bool
}

// NewDiGraph returns a new graph of the given order where the successors of v are successors[v]. Successors outside
// of [0, order) are ignored. The argument is not retained.
func NewDiGraph(order int, successors [][]int) *DiGraph {
	g := &DiGraph{
		order: order,
		succ:  make([][]int, order),
		pred:  make([][]int, order),
	}
	for v := 0; v < order && v < len(successors); v++ {
		for _, w := range successors[v] {
			if w >= 0 && w < order {
				g.succ[v] = append(g.succ[v], w)
				g.pred[w] = append(g.pred[w], v)
			}
		}
	}
	for v := 0; v < order; v++ {
		g.succ[v] = sortedSet(g.succ[v])
		g.pred[v] = sortedSet(g.pred[v])
	}
	return g
}

func sortedSet(a []int) []int {
	slices.Sort(a)
	return slices.Compact(a)
}

// Subgraph returns a new graph that is the original graph with only the vertices in include. Only the edges that
// have both the origin and destination in the include vertices are kept in the resulting graph.
// The subgraph's order is the same as in original, meaning that vertex indices stay consistent across subgraphs.
func Subgraph(original *DiGraph, include []int) *DiGraph {
	included := make([]bool, original.order)
	for _, v := range include {
		if v >= 0 && v < original.order && original.Includes(v) {
			included[v] = true
		}
	}
	g := &DiGraph{
		order:    original.order,
		succ:     make([][]int, original.order),
		pred:     make([][]int, original.order),
		included: included,
	}
	for v := 0; v < original.order; v++ {
		if !included[v] {
			continue
		}
		for _, w := range original.succ[v] {
			if included[w] {
				g.succ[v] = append(g.succ[v], w)
				g.pred[w] = append(g.pred[w], v)
			}
		}
	}
	// successors are visited in increasing order, so both lists are sorted
	return g
}

// Order implements the order of the graph.Iterator interface for the DiGraph
func (g *DiGraph) Order() int {
	return g.order
}

// Visit implements the graph.Iterator interface for the DiGraph. Successors are visited in increasing order.
func (g *DiGraph) Visit(v int, do func(w int, c int64) (skip bool)) (aborted bool) {
	if !g.Includes(v) {
		return false
	}
	for _, w := range g.succ[v] {
		if do(w, 1) {
			return true
		}
	}
	return false
}

// Includes returns true if v is a vertex of the graph
func (g *DiGraph) Includes(v int) bool {
	return v >= 0 && v < g.order && (g.included == nil || g.included[v])
}

// Successors returns the sorted successors of v. The result must not be modified.
func (g *DiGraph) Successors(v int) []int {
	if !g.Includes(v) {
		return nil
	}
	return g.succ[v]
}

// Predecessors returns the sorted predecessors of v. The result must not be modified.
func (g *DiGraph) Predecessors(v int) []int {
	if !g.Includes(v) {
		return nil
	}
	return g.pred[v]
}

// HasSelfLoop returns true if there is an edge from v to itself
func (g *DiGraph) HasSelfLoop(v int) bool {
	_, found := slices.BinarySearch(g.Successors(v), v)
	return found
}

// *************** Graph interface implementation **********************

// Node implements the Graph interface. It returns nil if id is not a vertex of the graph.
func (g *DiGraph) Node(id int64) graph.Node {
	if !g.Includes(int(id)) {
		return nil
	}
	return Vertex(id)
}

// Nodes returns the set of vertices in the graph
func (g *DiGraph) Nodes() graph.Nodes {
	var ids []int
	for v := 0; v < g.order; v++ {
		if g.Includes(v) {
			ids = append(ids, v)
		}
	}
	return newNodeSet(ids)
}

// From returns the set of vertices reachable from id by one edge
func (g *DiGraph) From(id int64) graph.Nodes {
	return newNodeSet(g.Successors(int(id)))
}

// To returns the set of vertices that reach id by one edge
func (g *DiGraph) To(id int64) graph.Nodes {
	return newNodeSet(g.Predecessors(int(id)))
}

// HasEdgeBetween returns a boolean indicating whether an edge exists between the two vertices, in either direction
func (g *DiGraph) HasEdgeBetween(xid, yid int64) bool {
	return g.HasEdgeFromTo(xid, yid) || g.HasEdgeFromTo(yid, xid)
}

// HasEdgeFromTo returns a boolean indicating whether an edge exists from uid to vid
func (g *DiGraph) HasEdgeFromTo(uid, vid int64) bool {
	_, found := slices.BinarySearch(g.Successors(int(uid)), int(vid))
	return found
}

// Edge returns the edge from uid to vid (nil if none exists)
func (g *DiGraph) Edge(uid, vid int64) graph.Edge {
	if g.HasEdgeFromTo(uid, vid) {
		return Arc{from: Vertex(uid), to: Vertex(vid)}
	}
	return nil
}

// *************** Algorithms **********************

// ShortestPath returns the vertices of a shortest path from u to v, both included, or nil if v is not reachable
// from u. The path from a vertex to itself is that vertex alone.
func ShortestPath(g *DiGraph, u, v int) []int {
	if !g.Includes(u) || !g.Includes(v) {
		return nil
	}
	nodes, _ := path.DijkstraFrom(Vertex(u), g).To(int64(v))
	if len(nodes) == 0 {
		return nil
	}
	vertices := make([]int, len(nodes))
	for i, n := range nodes {
		vertices[i] = int(n.ID())
	}
	return vertices
}

// TopologicalOrder returns the vertices of g such that every edge goes from an earlier to a later vertex. If g has
// a cycle, it returns the vertices in increasing order and false.
func TopologicalOrder(g *DiGraph) ([]int, bool) {
	sorted, err := topo.Sort(g)
	if err != nil {
		var ids []int
		for v := 0; v < g.order; v++ {
			if g.Includes(v) {
				ids = append(ids, v)
			}
		}
		return ids, false
	}
	order := make([]int, len(sorted))
	for i, n := range sorted {
		order[i] = int(n.ID())
	}
	return order, true
}

// *************** Nodes implementation **********************

// Vertex implements the graph.Node interface
type Vertex int64

// ID returns the id of the vertex
func (v Vertex) ID() int64 {
	return int64(v)
}

// NodeSet implements the graph.Nodes interface, an iterator over a set of vertices
type NodeSet struct {
	// ids is the set of vertex ids in the iterator
	ids []int

	// cur is the current index of the iterator, -1 before the first call to Next.
	// invariant: -1 <= cur < len(ids)
	cur int
}

func newNodeSet(ids []int) *NodeSet {
	return &NodeSet{ids: ids, cur: -1}
}

// Next moves the current node to the next, and returns true if such a node exists. Otherwise, returns false
// and the current node has not changed.
func (ns *NodeSet) Next() bool {
	if ns.cur < len(ns.ids)-1 {
		ns.cur++
		return true
	}
	return false
}

// Len returns the number of vertices remaining in the iterator
func (ns *NodeSet) Len() int {
	return len(ns.ids) - ns.cur - 1
}

// Reset returns the iterator to its initial state
func (ns *NodeSet) Reset() {
	ns.cur = -1
}

// Node returns the current node in the set, or nil if Next has not been called
func (ns *NodeSet) Node() graph.Node {
	if ns.cur < 0 || ns.cur >= len(ns.ids) {
		return nil
	}
	return Vertex(ns.ids[ns.cur])
}

// *************** Edge implementation **********************

// Arc implements the graph.Edge interface
type Arc struct {
	from Vertex
	to   Vertex
}

// From returns the origin of the edge
func (e Arc) From() graph.Node {
	return e.from
}

// To returns the destination of the edge
func (e Arc) To() graph.Node {
	return e.to
}

// ReversedEdge returns a new value representing the reversed edge
func (e Arc) ReversedEdge() graph.Edge {
	return Arc{from: e.to, to: e.from}
}
