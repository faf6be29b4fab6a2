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

package report

import (
	"fmt"
	"strings"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/internal/graphutil"
)

// Witness is a path in the graph from a root cause to the target of an unsafe edge
type Witness struct {
	// Edge is the index of the unsafe edge
	Edge int

	// Path lists the indices of the nodes of the path, ending with the target of Edge
	Path []int

	// Through is true if the path ends with Edge itself, and not with another edge into its target
	Through bool

	// Node is the index of the non-monotone node the path starts with, or -1
	Node int

	// Offender is the index of the non-lattice edge the path starts with, or -1
	Offender int
}

// better returns true if w is a better witness than the current best one
func (w Witness) better(best Witness, found bool) bool {
	if w.Path == nil {
		return false
	}
	if !found || w.Through != best.Through {
		return !found || w.Through
	}
	return len(w.Path) < len(best.Path)
}

// FindWitness returns a shortest path to the target of the unsafe edge e from one of the offenders in its cone,
// and false if e has no offenders. Paths that end with e are preferred, then shorter paths, then non-monotone nodes,
// then offenders of lower index.
func FindWitness(res analysis.Result, g *graphutil.DiGraph, e int) (Witness, bool) {
	cert, ok := res.Calm.Certificates[e]
	if !ok || cert.Safe {
		return Witness{}, false
	}
	src, tgt, ok := res.State.Graph.EdgeEndpoints(e)
	if !ok {
		return Witness{}, false
	}

	var best Witness
	found := false
	consider := func(w Witness) {
		if w.better(best, found) {
			best = w
			found = true
		}
	}
	// through returns the path from the start to the source of e followed by the target of e
	through := func(start int) []int {
		if p := graphutil.ShortestPath(g, start, src); p != nil {
			return append(p, tgt)
		}
		return nil
	}

	for _, n := range cert.NonMonotone {
		consider(Witness{Edge: e, Path: through(n), Through: true, Node: n, Offender: -1})
		consider(Witness{Edge: e, Path: graphutil.ShortestPath(g, n, tgt), Node: n, Offender: -1})
	}
	for _, f := range cert.NonLattice {
		u, v, ok := res.State.Graph.EdgeEndpoints(f)
		if !ok {
			continue
		}
		if f == e {
			consider(Witness{Edge: e, Path: []int{src, tgt}, Through: true, Node: -1, Offender: f})
			continue
		}
		if p := through(v); p != nil {
			consider(Witness{Edge: e, Path: append([]int{u}, p...), Through: true, Node: -1, Offender: f})
		}
		if p := graphutil.ShortestPath(g, v, tgt); p != nil {
			consider(Witness{Edge: e, Path: append([]int{u}, p...), Node: -1, Offender: f})
		}
	}
	return best, found
}

func (r *reporter) nodeName(i int) string {
	node := &r.doc.Nodes[i]
	if node.ShortLabel == "" || node.ShortLabel == node.ID {
		return node.ID
	}
	return fmt.Sprintf("%s[%s]", node.ShortLabel, node.ID)
}

func (r *reporter) pathString(path []int) string {
	names := make([]string, len(path))
	for i, n := range path {
		names[i] = r.nodeName(n)
	}
	return strings.Join(names, " → ")
}

func (r *reporter) witnessPaths() {
	g := r.res.State.Graph.DiGraph()
	var witnesses []Witness
	for _, e := range r.res.Calm.Critical {
		if r.res.Edges[e].Calm != calm.CalmUnsafe {
			continue
		}
		if w, ok := FindWitness(r.res, g, e); ok {
			witnesses = append(witnesses, w)
		}
	}
	if len(witnesses) == 0 {
		return
	}
	r.b.WriteString("WITNESS PATHS:\n")
	r.b.WriteString("  Shortest paths from a root cause to each CALM-unsafe edge:\n\n")
	for i, w := range witnesses {
		if r.opts.MaxEdges > 0 && i >= r.opts.MaxEdges {
			fmt.Fprintf(&r.b, "  ... and %d more edges\n", len(witnesses)-i)
			break
		}
		fmt.Fprintf(&r.b, "  %s: %s\n", r.doc.Edges[w.Edge].ID, r.pathString(w.Path))
		if w.Node >= 0 {
			fmt.Fprintf(&r.b, "    starts at non-monotone node %s\n", r.nodeName(w.Node))
		} else {
			offender := &r.doc.Edges[w.Offender]
			fmt.Fprintf(&r.b, "    starts with non-lattice edge %s (%q)\n", offender.ID, offender.TypeLabel())
		}
	}
	r.b.WriteString("\n")
}

func (r *reporter) cycles() {
	stats := analysis.ComputeStatistics(r.res)
	if stats.NumberOfCyclicComponents == 0 {
		return
	}
	r.b.WriteString("CYCLES:\n")
	fmt.Fprintf(&r.b, "  %d strongly connected components contain cycles. Their nodes are analyzed as if each "+
		"cycle was unrolled once.\n", stats.NumberOfCyclicComponents)
	if r.opts.MaxCycles <= 0 {
		r.b.WriteString("\n")
		return
	}
	found := graphutil.FindElementaryCycles(r.res.State.Graph.DiGraph(), r.opts.MaxCycles+1)
	for i, cycle := range found {
		if i >= r.opts.MaxCycles {
			r.b.WriteString("  ... and more cycles\n")
			break
		}
		fmt.Fprintf(&r.b, "  %s\n", r.pathString(cycle))
	}
	r.b.WriteString("\n")
}
