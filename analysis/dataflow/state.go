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
	"time"

	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/semantics"
	"github.com/yourbasic/graph"
)

// AnalyzerState holds the information shared by the analyses of one IR document. It is built once by
// NewAnalyzerState and must not be modified afterwards.
type AnalyzerState struct {
	// The logger used during the analysis (can be used to control output.
	Logger *config.LogGroup

	// The configuration of the analysis
	Config *config.Config

	// Doc is the document being analyzed
	Doc *ir.Document

	// Graph is the index of Doc's nodes and edges
	Graph *Graph

	// Classifier classifies operators and edge types
	Classifier *semantics.Classifier

	// Semantics[i] is the semantics of the node at index i
	Semantics []semantics.OpSemantics

	// EdgeLattice[e] is true if the type label of the edge at index e names a lattice
	EdgeLattice []bool

	// NumRoutines is the number of goroutines the passes may use
	NumRoutines int
}

// NewAnalyzerState returns a state where the graph of the document is indexed, and every operator and edge type is
// classified.
func NewAnalyzerState(doc *ir.Document, l *config.LogGroup, c *config.Config) *AnalyzerState {
	start := time.Now()
	state := &AnalyzerState{
		Logger:      l,
		Config:      c,
		Doc:         doc,
		Graph:       NewGraph(doc.Nodes, doc.Edges),
		Classifier:  c.Classifier(),
		Semantics:   make([]semantics.OpSemantics, len(doc.Nodes)),
		EdgeLattice: make([]bool, len(doc.Edges)),
		NumRoutines: c.NumRoutines,
	}
	if state.NumRoutines <= 0 {
		state.NumRoutines = config.DefaultNumRoutines
	}

	trace := l.LogsTrace()
	for i := range doc.Nodes {
		node := &doc.Nodes[i]
		state.Semantics[i] = state.Classifier.Node(node)
		if trace {
			l.Tracef("Node %q (%s, %q): %s\n", node.ID, node.NodeType, node.OperatorLabel(), state.Semantics[i])
		}
	}
	for e := range doc.Edges {
		state.EdgeLattice[e] = state.Classifier.IsLattice(doc.Edges[e].TypeLabel())
	}

	if state.Graph.Len() != len(state.Graph.index) {
		l.Warnf("%d nodes have duplicate ids, edges refer to the last node with each id\n",
			state.Graph.Len()-len(state.Graph.index))
	}
	if n := state.Graph.NumDangling(); n > 0 {
		l.Warnf("%d edges have a missing endpoint and are ignored by the graph traversals\n", n)
	}
	if l.Level() >= config.DebugLevel {
		stats := graph.Check(state.Graph.DiGraph())
		l.Debugf("Graph: %d nodes, %d edges (%d distinct), %d self-loops, %d isolated nodes\n",
			state.Graph.Len(), state.Graph.NumEdges(), stats.Size, stats.Loops, stats.Isolated)
	}
	l.Debugf("Indexed and classified the graph in %.3f s\n", time.Since(start).Seconds())
	return state
}

// NewDefaultAnalyzer returns a new state with a default config and a default log group.
func NewDefaultAnalyzer(doc *ir.Document) *AnalyzerState {
	defaultConfig := config.NewDefault()
	defaultLogGroup := config.NewLogGroup(defaultConfig)
	return NewAnalyzerState(doc, defaultLogGroup, defaultConfig)
}
