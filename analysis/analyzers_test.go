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

package analysis_test

import (
	"embed"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"path"
	"testing"

	"github.com/awslabs/hydrolysis/analysis"
	"github.com/awslabs/hydrolysis/analysis/annotate"
	"github.com/awslabs/hydrolysis/analysis/calm"
	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"github.com/awslabs/hydrolysis/analysis/issues"
	"github.com/awslabs/hydrolysis/analysis/semantics"
	"github.com/awslabs/hydrolysis/internal/analysistest"
	"golang.org/x/tools/container/intsets"
)

//go:embed testdata
var testfsys embed.FS

func quietLogger(cfg *config.Config) *config.LogGroup {
	logger := config.NewLogGroup(cfg)
	logger.SetAllOutput(io.Discard)
	return logger
}

func analyze(doc *ir.Document) analysis.Result {
	cfg := config.NewDefault()
	return analysis.Analyze(cfg, quietLogger(cfg), doc)
}

func TestAnalyzeFixtures(t *testing.T) {
	dirs, err := fs.ReadDir(testfsys, "testdata/ir")
	if err != nil {
		t.Fatalf("could not read fixtures: %v", err)
	}
	if len(dirs) == 0 {
		t.Fatalf("no fixtures")
	}
	for _, dir := range dirs {
		dir := dir
		t.Run(dir.Name(), func(t *testing.T) {
			doc, cfg, expect, err := analysistest.LoadTest(testfsys, path.Join("testdata/ir", dir.Name()))
			if err != nil {
				t.Fatalf("could not load fixture: %v", err)
			}
			res := analysis.Analyze(cfg, quietLogger(cfg), doc)
			annotated := annotate.Annotate(doc, res)
			analysistest.CheckDocument(t, expect, annotated)

			// the expectations also hold on the serialized output
			b, err := ir.Marshal(annotated)
			if err != nil {
				t.Fatalf("could not marshal annotated document: %v", err)
			}
			reparsed, err := ir.Parse(b)
			if err != nil {
				t.Fatalf("could not parse annotated document: %v", err)
			}
			analysistest.CheckDocument(t, expect, reparsed)
		})
	}
}

func TestAnalyzeMessages(t *testing.T) {
	doc := analysistest.Doc(
		[]ir.Node{
			analysistest.Node("src", "Source", ""),
			analysistest.Node("rand", "NonDeterministic", ""),
			analysistest.Node("out", "Sink", ""),
		},
		[]ir.Edge{
			analysistest.Edge("a", "src", "rand", "SetUnion<i32>"),
			analysistest.Edge("b", "rand", "out", "i32"),
		})
	res := analyze(doc)

	expected := map[string][]string{
		"src":  nil,
		"rand": {"Node 'rand' is nondeterministic (LocallyNonDet)", "Node 'rand' is non-monotone on CALM-critical path to edge 'b'"},
		"out":  {"Node 'out' is nondeterministic (LocallyNonDet)"},
	}
	for i, node := range doc.Nodes {
		got := messages(res.Nodes[i].Issues)
		if fmt.Sprint(got) != fmt.Sprint(expected[node.ID]) {
			t.Errorf("node %s: issues %q, expected %q", node.ID, got, expected[node.ID])
		}
	}
	if got := messages(res.Edges[0].Issues); len(got) != 0 {
		t.Errorf("edge a should have no issues, got %q", got)
	}
	expectedB := []string{"Edge 'b' is non-lattice on CALM-critical path to edge 'b'"}
	if got := messages(res.Edges[1].Issues); fmt.Sprint(got) != fmt.Sprint(expectedB) {
		t.Errorf("edge b: issues %q, expected %q", got, expectedB)
	}
	if res.Nodes[1].Cause != issues.Root || res.Nodes[2].Cause != issues.Inherited || res.Nodes[0].Cause != issues.None {
		t.Errorf("unexpected causes %v, %v, %v", res.Nodes[0].Cause, res.Nodes[1].Cause, res.Nodes[2].Cause)
	}
	if !res.Edges[1].Critical || res.Edges[0].Critical {
		t.Errorf("only edge b should be critical")
	}
}

func messages(a []issues.Issue) []string {
	var res []string
	for _, issue := range a {
		res = append(res, issue.Message)
	}
	return res
}

func TestAnalyzeEmpty(t *testing.T) {
	res := analyze(analysistest.Doc(nil, nil))
	if !res.Overall.Deterministic || !res.Overall.CalmSafe {
		t.Errorf("empty document should be deterministic and CALM-safe, got %+v", res.Overall)
	}
	if len(res.Nodes) != 0 || len(res.Edges) != 0 {
		t.Errorf("empty document should have no results")
	}
}

func TestAnalyzeParallel(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	doc := analysistest.RandomDocument(r, 60, 0.08, false)
	sequential := analyze(doc)

	cfg := config.NewDefault()
	cfg.NumRoutines = 8
	parallel := analysis.Analyze(cfg, quietLogger(cfg), doc)
	for e := range doc.Edges {
		if sequential.Edges[e].Calm != parallel.Edges[e].Calm {
			t.Errorf("edge %s: %s sequentially, %s in parallel", doc.Edges[e].ID, sequential.Edges[e].Calm,
				parallel.Edges[e].Calm)
		}
		if fmt.Sprint(sequential.Edges[e].Issues) != fmt.Sprint(parallel.Edges[e].Issues) {
			t.Errorf("edge %s: different issues in parallel", doc.Edges[e].ID)
		}
	}
	for i := range doc.Nodes {
		if fmt.Sprint(sequential.Nodes[i].Issues) != fmt.Sprint(parallel.Nodes[i].Issues) {
			t.Errorf("node %s: different issues in parallel", doc.Nodes[i].ID)
		}
	}
}

// TestAnalyzeProperties checks the invariants of the analysis on random graphs, with and without cycles
func TestAnalyzeProperties(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for iter := 0; iter < 40; iter++ {
		n := 2 + r.Intn(30)
		doc := analysistest.RandomDocument(r, n, 0.1, iter%2 == 0)
		res := analyze(doc)
		name := fmt.Sprintf("graph %d (%d nodes, %d edges)", iter, len(doc.Nodes), len(doc.Edges))
		checkNondeterminism(t, name, doc, res)
		checkCalm(t, name, doc, res)
		checkIssues(t, name, doc, res)
	}
}

func checkNondeterminism(t *testing.T, name string, doc *ir.Document, res analysis.Result) {
	t.Helper()
	g := res.State.Graph
	var fromSeeds, reach intsets.Sparse
	for i := range doc.Nodes {
		if !res.Nodes[i].Semantics.IsDeterministic() {
			g.ForwardReachable(i, &reach)
			fromSeeds.UnionWith(&reach)
		}
	}
	deterministic := true
	for i := range doc.Nodes {
		tainted := res.Nodes[i].Nd != semantics.Deterministic
		if tainted != fromSeeds.Has(i) {
			t.Errorf("%s: node %s has effect %s but reachable from a seed = %v", name, doc.Nodes[i].ID,
				res.Nodes[i].Nd, fromSeeds.Has(i))
		}
		if res.Nodes[i].Nd == semantics.ExternalNonDet && res.Nodes[i].Semantics.Nd != semantics.ExternalNonDet {
			t.Errorf("%s: node %s is ExternalNonDet by propagation", name, doc.Nodes[i].ID)
		}
		deterministic = deterministic && !tainted
	}
	if deterministic != res.Overall.Deterministic {
		t.Errorf("%s: overall deterministic = %v, expected %v", name, res.Overall.Deterministic, deterministic)
	}
}

func checkCalm(t *testing.T, name string, doc *ir.Document, res analysis.Result) {
	t.Helper()
	g := res.State.Graph
	calmSafe := true
	var cone intsets.Sparse
	for e := range doc.Edges {
		if !res.Edges[e].Critical {
			if res.Edges[e].Calm != calm.CalmSafe {
				t.Errorf("%s: non-critical edge %s is %s", name, doc.Edges[e].ID, res.Edges[e].Calm)
			}
			continue
		}
		_, tgt, _ := g.EdgeEndpoints(e)
		g.BackwardReachable(tgt, &cone)
		witness := false
		for _, n := range cone.AppendTo(nil) {
			if !res.Nodes[n].Monotone() {
				witness = true
			}
		}
		for f := range doc.Edges {
			src, tgt, ok := g.EdgeEndpoints(f)
			if ok && cone.Has(src) && cone.Has(tgt) && !res.Edges[f].IsLattice {
				witness = true
			}
		}
		if witness != (res.Edges[e].Calm == calm.CalmUnsafe) {
			t.Errorf("%s: critical edge %s is %s, but witness in cone = %v", name, doc.Edges[e].ID,
				res.Edges[e].Calm, witness)
		}
		calmSafe = calmSafe && res.Edges[e].Calm == calm.CalmSafe
	}
	if calmSafe != res.Overall.CalmSafe {
		t.Errorf("%s: overall calm_safe = %v, expected %v", name, res.Overall.CalmSafe, calmSafe)
	}
}

func checkIssues(t *testing.T, name string, doc *ir.Document, res analysis.Result) {
	t.Helper()
	g := res.State.Graph
	var cone intsets.Sparse
	for i := range doc.Nodes {
		if res.Nodes[i].Nd != semantics.Deterministic && !hasKind(res.Nodes[i].Issues, issues.NonDet) {
			t.Errorf("%s: nondeterministic node %s has no NonDet issue", name, doc.Nodes[i].ID)
		}
	}
	for e := range doc.Edges {
		if res.Edges[e].Calm != calm.CalmUnsafe {
			continue
		}
		_, tgt, _ := g.EdgeEndpoints(e)
		g.BackwardReachable(tgt, &cone)
		for _, n := range cone.AppendTo(nil) {
			if !res.Nodes[n].Monotone() && !hasKind(res.Nodes[n].Issues, issues.NonMonotone) {
				t.Errorf("%s: node %s on the cone of %s has no NonMonotone issue", name, doc.Nodes[n].ID,
					doc.Edges[e].ID)
			}
		}
		for f := range doc.Edges {
			src, tgt, ok := g.EdgeEndpoints(f)
			if ok && cone.Has(src) && cone.Has(tgt) && !res.Edges[f].IsLattice &&
				!hasKind(res.Edges[f].Issues, issues.NonLattice) {
				t.Errorf("%s: edge %s on the cone of %s has no NonLattice issue", name, doc.Edges[f].ID,
					doc.Edges[e].ID)
			}
		}
	}
}

func hasKind(a []issues.Issue, kind issues.Kind) bool {
	for _, issue := range a {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}
