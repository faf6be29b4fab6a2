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

package report

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/internal/analysistest"
	"github.com/awslabs/hydrolysis/internal/formatutil"
)

func TestMain(m *testing.M) {
	formatutil.SetColors(false)
	os.Exit(m.Run())
}

func analyze(doc *ir.Document) analysis.Result {
	cfg := config.NewDefault()
	logger := config.NewLogGroup(cfg)
	logger.SetAllOutput(io.Discard)
	return analysis.Analyze(cfg, logger, doc)
}

func checkContains(t *testing.T, report string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if !strings.Contains(report, f) {
			t.Errorf("report should contain %q:\n%s", f, report)
		}
	}
}

func checkNotContains(t *testing.T, report string, fragments ...string) {
	t.Helper()
	for _, f := range fragments {
		if strings.Contains(report, f) {
			t.Errorf("report should not contain %q:\n%s", f, report)
		}
	}
}

func TestReportClean(t *testing.T) {
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("0", "Source", "source_iter"),
			analysistest.Node("1", "Transform", "map"),
			analysistest.Node("2", "Sink", "for_each"),
		},
		[]ir.Edge{
			analysistest.Edge("e0", "0", "1", "SetUnion<String>", "Local"),
			analysistest.Edge("e1", "1", "2", "SetUnion<String>", "Local"),
		})
	expected := `=== Hydrolysis Analysis Report ===

OVERALL SUMMARY:
  Deterministic: ✓ YES
  CALM Safe: ✓ YES

ROOT CAUSE SUMMARY:
  Nondeterministic operations: 0
  Non-monotone operations: 0
  Non-lattice edges: 0


✓ No issues found! Your dataflow is deterministic and CALM-safe.

=== End of Report ===
`
	if got := String(analyze(doc), DefaultOptions()); got != expected {
		t.Errorf("got:\n%s\nexpected:\n%s", got, expected)
	}
}

func TestReportNonMonotone(t *testing.T) {
	nondet := analysistest.WithBacktrace(analysistest.Node("1", "NonDeterministic", "nondet"),
		`[{"file": "src/very/long/path/to/the/module/file.rs", "line": 42}]`)
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("0", "Source", "source"),
			nondet,
			analysistest.Node("2", "Sink", "sink"),
		},
		[]ir.Edge{
			analysistest.Edge("e0", "0", "1", "SetUnion<i32>"),
			analysistest.Edge("e1", "1", "2", "SetUnion<i32>"),
		})
	report := String(analyze(doc), DefaultOptions())
	checkContains(t, report,
		"  Deterministic: ✗ NO\n  CALM Safe: ✗ NO\n",
		"  Nondeterministic operations: 1\n  Non-monotone operations: 1\n  Non-lattice edges: 0\n",
		"CALM ANALYSIS:\n\nROOT CAUSES:\n\n  Operations:\n",
		"  ┌────────────────────┬──────┬──────────────────┬─────────┬──────────┬──────────────────────────────┐\n",
		"  │ Op Label           │ ID   │ Type             │ NonDet  │ NonMono  │ Source Location              │\n",
		"  │ nondet             │ 1    │ NonDeterministic │    ✗    │    ✗     │ …th/to/the/module/file.rs:42 │\n",
		"  Legend: ✓ = deterministic/monotone, ✗ = non-deterministic/non-monotone\n",
		"DOWNSTREAM EFFECTS:\n  CALM-critical edges affected by root causes:\n\n",
		"  │ ID   │ Source             │ Target             │ Type │ Cause    │ Source Location              │\n",
		"  │ e1   │ nondet             │ sink               │ Sink │ Inherit  │ …th/to/the/module/file.rs:42 │\n",
		"  Legend: Root = edge itself non-lattice, Inherit = upstream causes\n",
		"WITNESS PATHS:\n",
		"  e1: nondet[1] → sink[2]\n    starts at non-monotone node nondet[1]\n",
	)
	checkNotContains(t, report, "Non-lattice Edges:", "No issues found", "CYCLES:")
	if !strings.HasSuffix(report, "=== End of Report ===\n") {
		t.Errorf("missing footer")
	}
}

func TestReportNonLatticeNetworkEdge(t *testing.T) {
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("0", "Source", "source"),
			analysistest.Node("1", "Transform", "transform"),
		},
		[]ir.Edge{analysistest.Edge("e0", "0", "1", "", "Network")})
	report := String(analyze(doc), DefaultOptions())
	checkContains(t, report,
		"  Deterministic: ✓ YES\n  CALM Safe: ✗ NO\n",
		"  Non-lattice edges: 1\n",
		"  Non-lattice Edges:\n",
		"  │ e0   │ source             │ transform          │    ✗     │ ?                            │\n",
		"  Legend: ✓ = lattice type, ✗ = non-lattice type\n",
		"  │ e0   │ source             │ transform          │ Net  │ Root     │ ?                            │\n",
		"  e0: source[0] → transform[1]\n    starts with non-lattice edge e0 (\"\")\n",
	)
	checkNotContains(t, report, "  Operations:\n")
}

func TestReportLimits(t *testing.T) {
	var nodes []ir.Node
	var edges []ir.Edge
	nodes = append(nodes, analysistest.Node("s", "Sink", ""))
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("n%d", i)
		nodes = append(nodes, analysistest.Node(id, "NonDeterministic", ""))
		edges = append(edges, analysistest.Edge(fmt.Sprintf("e%d", i), id, "s", "", "Network"))
	}
	res := analyze(analysistest.Doc(nodes, edges))
	opts := DefaultOptions()
	opts.MaxOperations = 2
	opts.MaxEdges = 2
	report := String(res, opts)
	checkContains(t, report,
		"  │ ... and 3 more operations\n",
		"  │ ... and 3 more edges\n",
		"  ... and 3 more edges\n",
	)
	if n := strings.Count(report, "│ NonDeterministic │"); n != 2 {
		t.Errorf("expected 2 operation rows, got %d", n)
	}

	opts.WitnessPaths = false
	checkNotContains(t, String(res, opts), "WITNESS PATHS:")
}

func TestReportCycles(t *testing.T) {
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("a", "Transform", "map"),
			analysistest.Node("b", "Transform", "map"),
			analysistest.Node("c", "Sink", ""),
		},
		[]ir.Edge{
			analysistest.Edge("e0", "a", "b", "Max<u8>"),
			analysistest.Edge("e1", "b", "a", "Max<u8>"),
			analysistest.Edge("e2", "b", "b", "Max<u8>"),
			analysistest.Edge("e3", "b", "c", "Max<u8>"),
		})
	res := analyze(doc)
	opts := DefaultOptions()
	report := String(res, opts)
	checkContains(t, report,
		"CYCLES:\n  1 strongly connected components contain cycles.",
		"  map[a] → map[b] → map[a]\n  map[b] → map[b]\n",
		"No issues found",
	)

	opts.MaxCycles = 1
	checkContains(t, String(res, opts), "  map[a] → map[b] → map[a]\n  ... and more cycles\n")

	opts.Cycles = false
	checkNotContains(t, String(res, opts), "CYCLES:")
}

func TestFindWitness(t *testing.T) {
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("0", "Transform", "difference"),
			analysistest.Node("1", "Transform", "map"),
			analysistest.Node("2", "Transform", "map"),
			analysistest.Node("3", "Sink", ""),
		},
		[]ir.Edge{
			analysistest.Edge("e0", "0", "1", "Max<u8>"),
			analysistest.Edge("e1", "1", "2", "Max<u8>"),
			analysistest.Edge("e2", "2", "3", "Max<u8>"),
			analysistest.Edge("e3", "1", "3", "u8"),
		})
	res := analyze(doc)
	g := res.State.Graph.DiGraph()

	// the non-lattice edge e3 reaches the target of e2 without going through e2
	w, ok := FindWitness(res, g, 2)
	if !ok || w.Node != 0 || w.Offender != -1 || !w.Through || fmt.Sprint(w.Path) != "[0 1 2 3]" {
		t.Errorf("unexpected witness for e2: %+v", w)
	}
	// e3 is its own offender
	w, ok = FindWitness(res, g, 3)
	if !ok || w.Node != -1 || w.Offender != 3 || fmt.Sprint(w.Path) != "[1 3]" {
		t.Errorf("unexpected witness for e3: %+v", w)
	}
	if _, ok := FindWitness(res, g, 0); ok {
		t.Errorf("non-critical edges have no witness")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.NewDefault()
	if OptionsFromConfig(cfg) != DefaultOptions() {
		t.Errorf("default config should give default options")
	}
	cfg.SkipCycles = true
	cfg.MaxReportEdges = 3
	opts := OptionsFromConfig(cfg)
	if opts.Cycles || !opts.WitnessPaths || opts.MaxEdges != 3 {
		t.Errorf("unexpected options %+v", opts)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestWrite(t *testing.T) {
	res := analyze(analysistest.Doc(nil, nil))
	var buf bytes.Buffer
	if err := Write(&buf, res, DefaultOptions()); err != nil || buf.String() != String(res, DefaultOptions()) {
		t.Errorf("Write should write the report, got %v", err)
	}
	if err := Write(failingWriter{}, res, DefaultOptions()); err == nil {
		t.Errorf("Write should return write errors")
	}
}
