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

// Package nondet propagates nondeterminism through the dataflow graph.
//
// A node is nondeterministic if its operator is (a seed), or if it is reachable from a seed: a deterministic operator
// fed by a nondeterministic stream produces a nondeterministic stream. The effect of a seed is its own effect; the
// nodes tainted by a seed are locally nondeterministic.
package nondet

import (
	"time"

	"github.com/awslabs/hydrolysis/analysis/dataflow"
	"github.com/awslabs/hydrolysis/analysis/semantics"
)

// Result is the result of the propagation
type Result struct {
	// Effects[i] is the propagated effect of the node at index i
	Effects []semantics.NdEffect

	// Seeds are the indices of the nodes whose operator is nondeterministic, in increasing order
	Seeds []int

	// Tainted is the number of nodes whose propagated effect is not Deterministic
	Tainted int
}

// Deterministic returns true if every node is deterministic
func (r Result) Deterministic() bool {
	return r.Tainted == 0
}

// Run propagates the nondeterminism of the operators classified in state along the edges of its graph. It runs in
// time linear in the size of the graph.
func Run(state *dataflow.AnalyzerState) Result {
	start := time.Now()
	g := state.Graph
	n := g.Len()
	res := Result{Effects: make([]semantics.NdEffect, n)}
	tainted := make([]bool, n)

	var worklist []int
	for i := 0; i < n; i++ {
		if nd := state.Semantics[i].Nd; nd != semantics.Deterministic {
			res.Effects[i] = nd
			tainted[i] = true
			res.Seeds = append(res.Seeds, i)
			worklist = append(worklist, i)
		}
	}

	trace := state.Logger.LogsTrace()
	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		for _, adj := range g.Successors(cur) {
			if tainted[adj.Node] {
				continue
			}
			// seeds are already tainted, so only the origin of an external effect keeps it
			tainted[adj.Node] = true
			res.Effects[adj.Node] = semantics.LocallyNonDet
			if trace {
				state.Logger.Tracef("%q tainted by %q through %q\n", g.NodeID(adj.Node), g.NodeID(cur), adj.EdgeID)
			}
			worklist = append(worklist, adj.Node)
		}
	}

	for _, t := range tainted {
		if t {
			res.Tainted++
		}
	}
	state.Logger.Debugf("Nondeterminism: %d seeds taint %d of %d nodes (%.3f s)\n",
		len(res.Seeds), res.Tainted, n, time.Since(start).Seconds())
	return res
}
