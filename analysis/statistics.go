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

package analysis

import (
	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/issues"
	"github.com/awslabs/hydrolysis/internal/funcutil"
	"github.com/yourbasic/graph"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Statistics are general statistics about an analyzed graph
type Statistics struct {
	NumberOfNodes         int
	NumberOfEdges         int
	NumberOfDanglingEdges int
	NumberOfLatticeEdges  int
	NumberOfCriticalEdges int
	NumberOfUnsafeEdges   int

	// NumberOfCyclicComponents is the number of strongly connected components that contain a cycle
	NumberOfCyclicComponents int

	// NodesByKind counts the nodes of each kind
	NodesByKind map[string]int

	// Root causes
	NumberOfNonDetRoots      int
	NumberOfNonMonotoneNodes int
	NumberOfNonLatticeIssues int
}

// ComputeStatistics returns the statistics of the analysis result.
func ComputeStatistics(res Result) Statistics {
	state := res.State
	stats := Statistics{
		NumberOfNodes:         len(res.Nodes),
		NumberOfEdges:         len(res.Edges),
		NumberOfDanglingEdges: state.Graph.NumDangling(),
		NumberOfCriticalEdges: len(res.Calm.Critical),
		NodesByKind:           map[string]int{},
	}
	for i, n := range res.Nodes {
		stats.NodesByKind[state.Doc.Nodes[i].NodeType]++
		if n.Cause == issues.Root {
			stats.NumberOfNonDetRoots++
		}
		if !n.Monotone() {
			stats.NumberOfNonMonotoneNodes++
		}
	}
	for _, e := range res.Edges {
		if e.IsLattice {
			stats.NumberOfLatticeEdges++
		}
		if e.Calm == calm.CalmUnsafe {
			stats.NumberOfUnsafeEdges++
		}
		if funcutil.Exists(e.Issues, func(i issues.Issue) bool { return i.Kind == issues.NonLattice }) {
			stats.NumberOfNonLatticeIssues++
		}
	}
	g := state.Graph.DiGraph()
	for _, component := range graph.StrongComponents(g) {
		if len(component) > 1 || g.HasSelfLoop(component[0]) {
			stats.NumberOfCyclicComponents++
		}
	}
	return stats
}

// LogStatistics logs the statistics at the Info level, and the node kinds at the Debug level
func LogStatistics(logger *config.LogGroup, stats Statistics) {
	logger.Infof("%d nodes, %d edges (%d dangling, %d lattice-typed, %d CALM-critical, %d CALM-unsafe)\n",
		stats.NumberOfNodes, stats.NumberOfEdges, stats.NumberOfDanglingEdges, stats.NumberOfLatticeEdges,
		stats.NumberOfCriticalEdges, stats.NumberOfUnsafeEdges)
	if stats.NumberOfCyclicComponents > 0 {
		logger.Debugf("%d strongly connected components contain cycles\n", stats.NumberOfCyclicComponents)
	}
	kinds := maps.Keys(stats.NodesByKind)
	slices.Sort(kinds)
	for _, kind := range kinds {
		logger.Debugf("\t%-18s %d\n", kind, stats.NodesByKind[kind])
	}
}
