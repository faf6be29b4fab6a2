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

// Package issues attributes the findings of the nondeterminism and CALM passes to the nodes and edges that cause
// them.
package issues

import (
	"fmt"

	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/analysis/dataflow"
	"github.com/awslabs/hydrolysis/analysis/nondet"
	"github.com/awslabs/hydrolysis/analysis/semantics"
)

// Kind is the kind of an issue
type Kind uint8

const (
	// NonDet issues are on nodes whose output is nondeterministic
	NonDet Kind = iota
	// NonMonotone issues are on non-monotone nodes that feed a CALM-unsafe edge
	NonMonotone
	// NonLattice issues are on non-lattice edges that feed a CALM-unsafe edge
	NonLattice
)

func (k Kind) String() string {
	switch k {
	case NonDet:
		return "NonDet"
	case NonMonotone:
		return "NonMonotone"
	case NonLattice:
		return "NonLattice"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Issue is a finding attached to a node or an edge
type Issue struct {
	Kind    Kind
	Message string
}

// Cause tells whether a node's nondeterminism comes from its own operator or from upstream
type Cause uint8

const (
	// None means the node is deterministic
	None Cause = iota
	// Root means the operator of the node is nondeterministic
	Root
	// Inherited means the node is deterministic but fed by a nondeterministic stream
	Inherited
)

func (c Cause) String() string {
	switch c {
	case None:
		return "None"
	case Root:
		return "Root"
	case Inherited:
		return "Inherited"
	default:
		return fmt.Sprintf("Cause(%d)", uint8(c))
	}
}

// CauseOf returns the cause of the nondeterminism of a node given its own semantics and its propagated effect
func CauseOf(own semantics.OpSemantics, propagated semantics.NdEffect) Cause {
	switch {
	case own.Nd != semantics.Deterministic:
		return Root
	case propagated != semantics.Deterministic:
		return Inherited
	default:
		return None
	}
}

// Issues holds the issues of every node and edge
type Issues struct {
	// Nodes[i] lists the issues of the node at index i
	Nodes [][]Issue

	// Edges[e] lists the issues of the edge at index e
	Edges [][]Issue
}

// Attribute computes the issues of every node and edge from the results of both passes:
//   - a NonDet issue on each node whose propagated effect is not Deterministic;
//   - for each CALM-unsafe edge E, in edge order, a NonMonotone issue on each non-monotone node of its cone and a
//     NonLattice issue on each non-lattice edge of its cone, both in index order.
//
// A node or edge in the cone of several unsafe edges gets one issue per edge.
func Attribute(state *dataflow.AnalyzerState, nd nondet.Result, c calm.Result) Issues {
	g := state.Graph
	res := Issues{
		Nodes: make([][]Issue, g.Len()),
		Edges: make([][]Issue, len(state.Doc.Edges)),
	}
	for i, effect := range nd.Effects {
		if effect != semantics.Deterministic {
			res.Nodes[i] = append(res.Nodes[i], Issue{
				Kind:    NonDet,
				Message: fmt.Sprintf("Node '%s' is nondeterministic (%s)", g.NodeID(i), effect),
			})
		}
	}
	for _, e := range c.Critical {
		if c.Status[e] != calm.CalmUnsafe {
			continue
		}
		edgeID := state.Doc.Edges[e].ID
		cert := c.Certificates[e]
		for _, n := range cert.NonMonotone {
			res.Nodes[n] = append(res.Nodes[n], Issue{
				Kind:    NonMonotone,
				Message: fmt.Sprintf("Node '%s' is non-monotone on CALM-critical path to edge '%s'", g.NodeID(n), edgeID),
			})
		}
		for _, f := range cert.NonLattice {
			res.Edges[f] = append(res.Edges[f], Issue{
				Kind: NonLattice,
				Message: fmt.Sprintf("Edge '%s' is non-lattice on CALM-critical path to edge '%s'",
					state.Doc.Edges[f].ID, edgeID),
			})
		}
	}
	return res
}
