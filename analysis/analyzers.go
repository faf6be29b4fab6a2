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

// Package analysis runs the analysis passes on a dataflow IR document and collects their results.
package analysis

import (
	"time"

	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/dataflow"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/issues"
	"github.com/awslabs/hydrolysis/analysis/nondet"
	"github.com/awslabs/hydrolysis/analysis/semantics"
)

// Version is the version of the analyzer
const Version = "0.3.0"

// NodeResult is the analysis of one node
type NodeResult struct {
	// Semantics is the classification of the node's operator
	Semantics semantics.OpSemantics

	// Nd is the propagated nondeterminism effect of the node
	Nd semantics.NdEffect

	// Cause tells whether the nondeterminism is the node's own
	Cause issues.Cause

	Issues []issues.Issue

	// Location is the user code that created the node, if the backtrace shows it
	Location *ir.SourceLocation
}

// Monotone is false only for nodes whose operator is never monotone
func (r NodeResult) Monotone() bool {
	return r.Semantics.IsMonotone()
}

// EdgeResult is the analysis of one edge
type EdgeResult struct {
	IsLattice bool

	// Critical is true if the edge crosses the network or feeds a sink
	Critical bool

	Calm calm.Status

	Issues []issues.Issue
}

// Overall summarizes the analysis of the document
type Overall struct {
	// Deterministic is true if every node is deterministic
	Deterministic bool

	// CalmSafe is true if every critical edge is CALM-safe
	CalmSafe bool
}

// Result contains the results of all passes.
type Result struct {
	// Nodes[i] is the analysis of the node at index i of the document
	Nodes []NodeResult

	// Edges[e] is the analysis of the edge at index e of the document
	Edges []EdgeResult

	Overall Overall

	// State is the state the passes ran on
	State *dataflow.AnalyzerState

	// Nondet is the raw result of the nondeterminism pass
	Nondet nondet.Result

	// Calm is the raw result of the CALM pass, with the certificates of the critical edges
	Calm calm.Result
}

// Analyze runs all the passes on the document. It never fails: unknown operators are classified conservatively and
// edges with a missing endpoint get a trivial analysis.
func Analyze(cfg *config.Config, logger *config.LogGroup, doc *ir.Document) Result {
	logger.Infof("Analyzing %d nodes and %d edges ...\n", len(doc.Nodes), len(doc.Edges))
	start := time.Now()

	state := dataflow.NewAnalyzerState(doc, logger, cfg)

	// Both passes only read the state
	nd := nondet.Run(state)
	c := calm.Run(state)
	attributed := issues.Attribute(state, nd, c)

	res := Result{
		Nodes: make([]NodeResult, len(doc.Nodes)),
		Edges: make([]EdgeResult, len(doc.Edges)),
		Overall: Overall{
			Deterministic: nd.Deterministic(),
			CalmSafe:      c.CalmSafe(),
		},
		State:  state,
		Nondet: nd,
		Calm:   c,
	}
	for i := range doc.Nodes {
		res.Nodes[i] = NodeResult{
			Semantics: state.Semantics[i],
			Nd:        nd.Effects[i],
			Cause:     issues.CauseOf(state.Semantics[i], nd.Effects[i]),
			Issues:    attributed.Nodes[i],
			Location:  SourceLocation(doc.Nodes[i].Frames(), cfg.IsFrameworkFile),
		}
	}
	for e := range doc.Edges {
		res.Edges[e] = EdgeResult{
			IsLattice: state.EdgeLattice[e],
			Critical:  isCertified(c, e),
			Calm:      c.Status[e],
			Issues:    attributed.Edges[e],
		}
	}

	stats := ComputeStatistics(res)
	LogStatistics(logger, stats)
	logger.Infof("Analysis done (%.3f s): deterministic = %v, CALM-safe = %v\n",
		time.Since(start).Seconds(), res.Overall.Deterministic, res.Overall.CalmSafe)
	return res
}

func isCertified(c calm.Result, e int) bool {
	_, ok := c.Certificates[e]
	return ok
}
