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

// Package annotate merges the results of the analysis back into the IR document, in the shape the graph viewers
// consume: an analysis record on every node and edge, semantic tags that the viewers style, and the semantic
// mappings that tell them how.
package annotate

import (
	"encoding/json"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/issues"
	"golang.org/x/exp/slices"
)

// Semantic tags added to the nodes
const (
	TagNonDetRoot      = "NonDetRoot"
	TagNonDetInherited = "NonDetInherited"
	TagDeterministic   = "Deterministic"
	TagMonotone        = "Monotone"
	TagNonMonotone     = "NonMonotone"
)

// Semantic tags added to the edges. The CALM status tags are the status names.
const (
	TagLattice    = "Lattice"
	TagNonLattice = "NonLattice"
)

// Annotate returns a copy of doc carrying the analysis of res, which must be the result of analyzing doc. The input
// document is not modified.
func Annotate(doc *ir.Document, res analysis.Result) *ir.Document {
	out := *doc
	out.Nodes = make([]ir.Node, len(doc.Nodes))
	out.Edges = make([]ir.Edge, len(doc.Edges))

	for i, node := range doc.Nodes {
		r := res.Nodes[i]
		node.SemanticTags = union(node.SemanticTags, node.NodeType, ndTag(r.Cause), monotoneTag(r.Monotone()))
		node.Analysis = &ir.NodeAnalysis{
			NdEffect:       r.Nd.String(),
			Monotone:       r.Monotone(),
			Issues:         convertIssues(r.Issues),
			SourceLocation: r.Location,
		}
		out.Nodes[i] = node
	}

	for e, edge := range doc.Edges {
		r := res.Edges[e]
		latticeTag := TagNonLattice
		if r.IsLattice {
			latticeTag = TagLattice
		}
		edge.SemanticTags = union(edge.SemanticTags, latticeTag, r.Calm.String())
		edge.Analysis = &ir.EdgeAnalysis{
			IsLattice: r.IsLattice,
			Calm:      r.Calm.String(),
			Issues:    convertIssues(r.Issues),
		}
		out.Edges[e] = edge
	}

	out.Overall = &ir.OverallAnalysis{
		Deterministic: res.Overall.Deterministic,
		CalmSafe:      res.Overall.CalmSafe,
	}
	out.NodeTypeConfig = EnrichConfig(doc.NodeTypeConfig, defaultNodeTypeConfig, nodeMappings)
	out.EdgeStyleConfig = EnrichConfig(doc.EdgeStyleConfig, defaultEdgeStyleConfig, edgeMappings)
	return &out
}

func ndTag(c issues.Cause) string {
	switch c {
	case issues.Root:
		return TagNonDetRoot
	case issues.Inherited:
		return TagNonDetInherited
	default:
		return TagDeterministic
	}
}

func monotoneTag(monotone bool) string {
	if monotone {
		return TagMonotone
	}
	return TagNonMonotone
}

// union returns a new slice with the tags followed by each of the added tags that it does not contain yet
func union(tags []string, added ...string) []string {
	res := make([]string, len(tags), len(tags)+len(added))
	copy(res, tags)
	for _, tag := range added {
		if !slices.Contains(res, tag) {
			res = append(res, tag)
		}
	}
	return res
}

func convertIssues(a []issues.Issue) []ir.Issue {
	res := make([]ir.Issue, len(a))
	for i, issue := range a {
		res[i] = ir.Issue{Kind: issue.Kind.String(), Message: issue.Message}
	}
	return res
}

// encodeJSON marshals values built in this package, which cannot fail
func encodeJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}
