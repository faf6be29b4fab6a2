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

package analysistest

import (
	"fmt"
	"math/rand"

	"github.com/awslabs/hydrolysis/analysis/ir"
)

var (
	randomKinds = []string{"Source", "Transform", "Join", "Aggregation", "Network", "Sink", "Tee",
		"NonDeterministic", "Custom"}
	randomLabels = []string{"", "map", "filter", "fold", "fold_keyed", "difference", "sort", "batch",
		"observe_non_det", "unique", "persist", "anti_join", "cross_product", "mystery"}
	randomTypes = []string{"", "i32", "String", "Max<u64>", "SetUnion<HashSet<u32>>", "(u32, String)",
		"DomPair<Max<u8>, Min<u8>>", "Vec<u8>"}
)

// RandomDocument returns a document with n nodes and a random set of edges between them. If acyclic is true, edges
// only go from a node to a node of greater index. About one edge in five is tagged Network, and the kinds, labels
// and type labels are picked among a mix of known and unknown values.
func RandomDocument(r *rand.Rand, n int, edgeProbability float64, acyclic bool) *ir.Document {
	doc := &ir.Document{}
	for i := 0; i < n; i++ {
		doc.Nodes = append(doc.Nodes, Node(fmt.Sprint(i), pick(r, randomKinds), pick(r, randomLabels)))
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if (acyclic && j <= i) || r.Float64() >= edgeProbability {
				continue
			}
			var tags []string
			if r.Intn(5) == 0 {
				tags = []string{"Network"}
			}
			id := fmt.Sprintf("e%d", len(doc.Edges))
			doc.Edges = append(doc.Edges, Edge(id, fmt.Sprint(i), fmt.Sprint(j), pick(r, randomTypes), tags...))
		}
	}
	return doc
}

func pick(r *rand.Rand, a []string) string {
	return a[r.Intn(len(a))]
}
