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

// Package render writes annotated dataflow graphs in the GraphViz format.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/awslabs/hydrolysis/analysis/annotate"
	"github.com/awslabs/hydrolysis/analysis/dataflow"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/internal/graphutil"
	"golang.org/x/exp/slices"
)

// nodeStyle returns the attributes of a node given its semantic tags
// - nondeterministic nodes are filled in orange, and nodes that inherit nondeterminism in light yellow
// - non-monotone nodes have a bold border
func nodeStyle(tags []string) string {
	fill := "white"
	switch {
	case slices.Contains(tags, annotate.TagNonDetRoot):
		fill = "orange"
	case slices.Contains(tags, annotate.TagNonDetInherited):
		fill = "lightyellow"
	}
	attrs := fmt.Sprintf("style=filled, fillcolor=%s", fill)
	if slices.Contains(tags, annotate.TagNonMonotone) {
		attrs += ", penwidth=3"
	}
	return attrs
}

// edgeStyle returns the attributes of an edge given its semantic tags
// - CALM-unsafe edges are dashed and red
// - lattice-typed edges are green
func edgeStyle(tags []string) string {
	switch {
	case slices.Contains(tags, "CalmUnsafe"):
		return "color=red, style=dashed"
	case slices.Contains(tags, annotate.TagLattice):
		return "color=darkgreen"
	default:
		return ""
	}
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`).Replace(s) + `"`
}

// WriteGraphviz writes a graphviz representation of the annotated document to w. Nodes are written in dataflow
// order when the graph is acyclic. Edges with a missing endpoint are not written.
func WriteGraphviz(doc *ir.Document, w io.Writer) error {
	g := dataflow.NewGraph(doc.Nodes, doc.Edges)
	order, _ := graphutil.TopologicalOrder(g.DiGraph())

	var b strings.Builder
	b.WriteString("digraph dataflow {\n")
	b.WriteString("  node [shape=box];\n")
	for _, i := range order {
		node := &doc.Nodes[i]
		label := node.ShortLabel
		if label == "" {
			label = node.ID
		}
		fmt.Fprintf(&b, "  %s [label=%s, %s];\n", quote(node.ID), quote(label), nodeStyle(node.SemanticTags))
	}
	for e := range doc.Edges {
		edge := &doc.Edges[e]
		if _, _, ok := g.EdgeEndpoints(e); !ok {
			continue
		}
		attrs := []string{"label=" + quote(edge.TypeLabel())}
		if style := edgeStyle(edge.SemanticTags); style != "" {
			attrs = append(attrs, style)
		}
		fmt.Fprintf(&b, "  %s -> %s [%s];\n", quote(edge.Source), quote(edge.Target), strings.Join(attrs, ", "))
	}
	b.WriteString("}\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("error while writing graph: %w", err)
	}
	return nil
}

// GraphvizToFile writes the graphviz representation of the annotated document in the file filename
func GraphvizToFile(doc *ir.Document, filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	if err := WriteGraphviz(doc, w); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("could not write %s: %w", filename, err)
	}
	return nil
}
