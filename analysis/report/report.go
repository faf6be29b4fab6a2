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

// Package report writes the human-readable report of an analysis: a summary of the two global properties, the root
// causes of CALM violations and the critical edges they affect, and, as supporting evidence, witness paths from root
// causes to unsafe edges and the cycles of the graph.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/issues"
	"github.com/awslabs/hydrolysis/analysis/semantics"
	"github.com/awslabs/hydrolysis/internal/formatutil"
	"github.com/awslabs/hydrolysis/internal/funcutil"
)

// Options controls the size and the sections of the report
type Options struct {
	// MaxOperations is the maximum number of rows of the root cause operations table
	MaxOperations int
	// MaxEdges is the maximum number of rows of the non-lattice edges table, and of witness paths
	MaxEdges int
	// MaxCycles is the maximum number of cycles listed
	MaxCycles int

	WitnessPaths bool
	Cycles       bool
}

// DefaultOptions returns the options of a report with every section
func DefaultOptions() Options {
	return Options{
		MaxOperations: config.DefaultMaxReportOperations,
		MaxEdges:      config.DefaultMaxReportEdges,
		MaxCycles:     config.DefaultMaxReportCycles,
		WitnessPaths:  true,
		Cycles:        true,
	}
}

// OptionsFromConfig returns the report options set in the config
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		MaxOperations: cfg.MaxReportOperations,
		MaxEdges:      cfg.MaxReportEdges,
		MaxCycles:     cfg.MaxReportCycles,
		WitnessPaths:  !cfg.SkipWitnessPaths,
		Cycles:        !cfg.SkipCycles,
	}
}

const (
	iconYes = "✓"
	iconNo  = "✗"
)

// Write writes the report of res to w.
func Write(w io.Writer, res analysis.Result, opts Options) error {
	_, err := io.WriteString(w, String(res, opts))
	return err
}

// String returns the report of res
func String(res analysis.Result, opts Options) string {
	r := &reporter{res: res, opts: opts, doc: res.State.Doc}
	r.b.WriteString(formatutil.Bold("=== Hydrolysis Analysis Report ===") + "\n\n")
	r.summary()
	if !res.Overall.CalmSafe {
		r.calmAnalysis()
		if opts.WitnessPaths {
			r.witnessPaths()
		}
	}
	if opts.Cycles {
		r.cycles()
	}
	if res.Overall.Deterministic && res.Overall.CalmSafe {
		r.b.WriteString("\n" + formatutil.Green(iconYes+" No issues found!") +
			" Your dataflow is deterministic and CALM-safe.\n\n")
	}
	r.b.WriteString(formatutil.Bold("=== End of Report ===") + "\n")
	return r.b.String()
}

type reporter struct {
	b    strings.Builder
	res  analysis.Result
	opts Options
	doc  *ir.Document
}

func yesNo(b bool) string {
	if b {
		return formatutil.Green(iconYes + " YES")
	}
	return formatutil.Red(iconNo + " NO")
}

func icon(ok bool) string {
	if ok {
		return iconYes
	}
	return iconNo
}

func styleIcon(s string) string {
	if s == iconNo {
		return formatutil.Red(s)
	}
	return formatutil.Green(s)
}

// isNonDetRoot returns true if the operator of node i is itself nondeterministic
func (r *reporter) isNonDetRoot(i int) bool {
	return r.res.Nodes[i].Semantics.Nd != semantics.Deterministic
}

// isNonMonotoneRoot returns true if the operator of node i is never monotone
func (r *reporter) isNonMonotoneRoot(i int) bool {
	return r.res.Nodes[i].Semantics.Monotone == semantics.Never
}

// isNonLatticeRoot returns true if edge e is not lattice-typed and on the cone of an unsafe edge
func (r *reporter) isNonLatticeRoot(e int) bool {
	edge := r.res.Edges[e]
	return !edge.IsLattice && funcutil.Exists(edge.Issues, func(i issues.Issue) bool {
		return i.Kind == issues.NonLattice
	})
}

func (r *reporter) summary() {
	fmt.Fprintf(&r.b, "OVERALL SUMMARY:\n")
	fmt.Fprintf(&r.b, "  Deterministic: %s\n", yesNo(r.res.Overall.Deterministic))
	fmt.Fprintf(&r.b, "  CALM Safe: %s\n\n", yesNo(r.res.Overall.CalmSafe))

	nonDet, nonMonotone, nonLattice := 0, 0, 0
	for i := range r.res.Nodes {
		if r.isNonDetRoot(i) {
			nonDet++
		}
		if r.isNonMonotoneRoot(i) {
			nonMonotone++
		}
	}
	for e := range r.res.Edges {
		if r.isNonLatticeRoot(e) {
			nonLattice++
		}
	}
	fmt.Fprintf(&r.b, "ROOT CAUSE SUMMARY:\n")
	fmt.Fprintf(&r.b, "  Nondeterministic operations: %d\n", nonDet)
	fmt.Fprintf(&r.b, "  Non-monotone operations: %d\n", nonMonotone)
	fmt.Fprintf(&r.b, "  Non-lattice edges: %d\n\n", nonLattice)
}

// location returns the "file:line" source location of node i, or "?"
func (r *reporter) location(i int) string {
	if i < 0 || r.res.Nodes[i].Location == nil {
		return "?"
	}
	loc := r.res.Nodes[i].Location
	return fmt.Sprintf("%s:%d", loc.File, loc.Line)
}

// shortLabel returns the short label of node i, or "?"
func (r *reporter) shortLabel(i int) string {
	if i < 0 {
		return "?"
	}
	return r.doc.Nodes[i].ShortLabel
}

func (r *reporter) calmAnalysis() {
	r.b.WriteString("CALM ANALYSIS:\n\n")
	r.b.WriteString("ROOT CAUSES:\n\n")

	ops := &table{
		columns: []column{
			{title: "Op Label", width: 18},
			{title: "ID", width: 4},
			{title: "Type", width: 16},
			{title: "NonDet", width: 7, align: alignCenter, style: styleIcon},
			{title: "NonMono", width: 8, align: alignCenter, style: styleIcon},
			{title: "Source Location", width: 28, align: alignTail},
		},
		max:  r.opts.MaxOperations,
		what: "operations",
	}
	for i, node := range r.doc.Nodes {
		nonDet, nonMonotone := r.isNonDetRoot(i), r.isNonMonotoneRoot(i)
		if nonDet || nonMonotone {
			ops.add(node.ShortLabel, node.ID, node.NodeType, icon(!nonDet), icon(!nonMonotone), r.location(i))
		}
	}
	if len(ops.rows) > 0 {
		r.b.WriteString("  Operations:\n")
		ops.write(&r.b)
		r.b.WriteString("  Legend: ✓ = deterministic/monotone, ✗ = non-deterministic/non-monotone\n\n")
	}

	edges := &table{
		columns: []column{
			{title: "ID", width: 4},
			{title: "Source", width: 18},
			{title: "Target", width: 18},
			{title: "Lattice", width: 8, align: alignCenter, style: styleIcon},
			{title: "Source Location", width: 28, align: alignTail},
		},
		max:  r.opts.MaxEdges,
		what: "edges",
	}
	for e, edge := range r.doc.Edges {
		if r.isNonLatticeRoot(e) {
			src, tgt, _ := r.res.State.Graph.EdgeEndpoints(e)
			edges.add(edge.ID, r.shortLabel(src), r.shortLabel(tgt), iconNo, r.location(src))
		}
	}
	if len(edges.rows) > 0 {
		r.b.WriteString("  Non-lattice Edges:\n")
		edges.write(&r.b)
		r.b.WriteString("  Legend: ✓ = lattice type, ✗ = non-lattice type\n\n")
	}

	r.b.WriteString("DOWNSTREAM EFFECTS:\n")
	r.b.WriteString("  CALM-critical edges affected by root causes:\n\n")
	effects := &table{
		columns: []column{
			{title: "ID", width: 4},
			{title: "Source", width: 18},
			{title: "Target", width: 18},
			{title: "Type", width: 4},
			{title: "Cause", width: 8},
			{title: "Source Location", width: 28, align: alignTail},
		},
	}
	for _, e := range r.res.Calm.Critical {
		if r.res.Edges[e].Calm != calm.CalmUnsafe {
			continue
		}
		edge := &r.doc.Edges[e]
		kind := "Sink"
		if edge.HasTag(calm.NetworkTag) {
			kind = "Net"
		}
		cause := "Inherit"
		if !r.res.Edges[e].IsLattice {
			cause = "Root"
		}
		src, tgt, _ := r.res.State.Graph.EdgeEndpoints(e)
		effects.add(edge.ID, r.shortLabel(src), r.shortLabel(tgt), kind, cause, r.location(src))
	}
	if len(effects.rows) > 0 {
		effects.write(&r.b)
		r.b.WriteString("  Legend: Root = edge itself non-lattice, Inherit = upstream causes\n\n")
	}
}
