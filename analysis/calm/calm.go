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

package calm

import (
	"fmt"
	"sync"
	"time"

	"github.com/awslabs/hydrolysis/analysis/dataflow"
	"github.com/awslabs/hydrolysis/analysis/semantics"
	"github.com/awslabs/hydrolysis/internal/funcutil"
	"golang.org/x/tools/container/intsets"
)

// Status is the CALM status of an edge
type Status uint8

const (
	// CalmSafe edges need no coordination
	CalmSafe Status = iota
	// CalmUnsafe edges are critical and have an offender in their cone
	CalmUnsafe
)

func (s Status) String() string {
	switch s {
	case CalmSafe:
		return "CalmSafe"
	case CalmUnsafe:
		return "CalmUnsafe"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}

// MarshalText implements encoding.TextMarshaler
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// NetworkTag is the semantic tag of edges that cross the network
const NetworkTag = "Network"

// SinkKind is the node kind of sinks
const SinkKind = semantics.KindSink

// Certificate is the result of the certification of one critical edge
type Certificate struct {
	// Safe is true if there are no offenders
	Safe bool

	// Cone is the set of indices of the nodes that reach the target of the edge, target included, in increasing
	// order
	Cone []int

	// NonMonotone are the indices of the nodes of the cone that are never monotone, in increasing order
	NonMonotone []int

	// NonLattice are the indices of the edges between nodes of the cone whose type is not a lattice, in increasing
	// order
	NonLattice []int
}

// Result is the result of the CALM pass
type Result struct {
	// Status[e] is the status of the edge at index e
	Status []Status

	// Critical are the indices of the critical edges, in increasing order
	Critical []int

	// Certificates maps the index of each critical edge to its certificate
	Certificates map[int]Certificate
}

// CalmSafe returns true if every critical edge is CalmSafe
func (r Result) CalmSafe() bool {
	for _, e := range r.Critical {
		if r.Status[e] != CalmSafe {
			return false
		}
	}
	return true
}

// IsCritical returns true if the edge at index e crosses the network or feeds a sink
func IsCritical(state *dataflow.AnalyzerState, e int) bool {
	edge := &state.Doc.Edges[e]
	if edge.HasTag(NetworkTag) {
		return true
	}
	if _, tgt, _ := state.Graph.EdgeEndpoints(e); tgt >= 0 {
		return state.Doc.Nodes[tgt].NodeType == SinkKind
	}
	return false
}

// Certify computes the certificate of the edge at index e. scratch is used to compute the cone; it can be reused
// across calls but not shared by concurrent calls.
// An edge with an endpoint that is not in the graph carries no data: it has an empty cone and is safe.
func Certify(state *dataflow.AnalyzerState, e int, scratch *intsets.Sparse) Certificate {
	_, tgt, ok := state.Graph.EdgeEndpoints(e)
	if !ok {
		return Certificate{Safe: true}
	}
	state.Graph.BackwardReachable(tgt, scratch)

	var cert Certificate
	var nonLattice intsets.Sparse
	cert.Cone = scratch.AppendTo(nil)
	for _, n := range cert.Cone {
		if !state.Semantics[n].IsMonotone() {
			cert.NonMonotone = append(cert.NonMonotone, n)
		}
		// predecessors of a node of the cone are in the cone
		for _, adj := range state.Graph.Predecessors(n) {
			if !state.EdgeLattice[adj.Edge] {
				nonLattice.Insert(adj.Edge)
			}
		}
	}
	cert.NonLattice = nonLattice.AppendTo(nil)
	cert.Safe = len(cert.NonMonotone) == 0 && len(cert.NonLattice) == 0
	return cert
}

var scratchPool = sync.Pool{New: func() any { return new(intsets.Sparse) }}

// Run certifies every critical edge of the graph. Non-critical edges are CalmSafe. The certification uses
// state.NumRoutines goroutines.
func Run(state *dataflow.AnalyzerState) Result {
	start := time.Now()
	numEdges := len(state.Doc.Edges)
	res := Result{
		Status:       make([]Status, numEdges),
		Certificates: make(map[int]Certificate),
	}
	for e := 0; e < numEdges; e++ {
		if IsCritical(state, e) {
			res.Critical = append(res.Critical, e)
		}
	}

	certify := func(e int) Certificate {
		scratch := scratchPool.Get().(*intsets.Sparse)
		defer scratchPool.Put(scratch)
		return Certify(state, e, scratch)
	}
	certificates := funcutil.MapParallel(res.Critical, certify, state.NumRoutines)

	unsafe := 0
	trace := state.Logger.LogsTrace()
	for i, e := range res.Critical {
		cert := certificates[i]
		res.Certificates[e] = cert
		if !cert.Safe {
			res.Status[e] = CalmUnsafe
			unsafe++
			if trace {
				state.Logger.Tracef("Edge %q is CALM-unsafe: %d non-monotone nodes and %d non-lattice edges in a "+
					"cone of %d nodes\n", state.Doc.Edges[e].ID, len(cert.NonMonotone), len(cert.NonLattice), len(cert.Cone))
			}
		}
	}
	state.Logger.Debugf("CALM: %d of %d critical edges are unsafe (%d routines, %.3f s)\n",
		unsafe, len(res.Critical), state.NumRoutines, time.Since(start).Seconds())
	return res
}
