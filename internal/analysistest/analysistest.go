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

// Package analysistest contains helpers to build IR documents in tests, and to load and check the IR fixtures under
// testdata directories.
package analysistest

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"path"
	"testing"

	"github.com/awslabs/hydrolysis/analysis/config"
	"github.com/awslabs/hydrolysis/analysis/ir"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

// Expectation describes the expected analysis of an IR document. Fields that are absent in the yaml file are not
// checked.
type Expectation struct {
	// Deterministic is the expected overall determinism
	Deterministic *bool `yaml:"deterministic"`

	// CalmSafe is the expected overall CALM safety
	CalmSafe *bool `yaml:"calm-safe"`

	// Nodes maps node ids to their expected analysis
	Nodes map[string]NodeExpectation `yaml:"nodes"`

	// Edges maps edge ids to their expected analysis
	Edges map[string]EdgeExpectation `yaml:"edges"`
}

// NodeExpectation is the expected analysis of a node
type NodeExpectation struct {
	// Nd is the expected nondeterminism effect name
	Nd string `yaml:"nd"`

	Monotone *bool `yaml:"monotone"`

	// Issues lists the expected issue kinds, in order
	Issues []string `yaml:"issues"`

	// Tags lists semantic tags the node must carry
	Tags []string `yaml:"tags"`

	// Location is the expected "file:line" source location; "none" if the node must not have one
	Location string `yaml:"location"`
}

// EdgeExpectation is the expected analysis of an edge
type EdgeExpectation struct {
	// Calm is the expected CALM status name
	Calm string `yaml:"calm"`

	IsLattice *bool `yaml:"is-lattice"`

	// Issues lists the expected issue kinds, in order
	Issues []string `yaml:"issues"`

	// Tags lists semantic tags the edge must carry
	Tags []string `yaml:"tags"`
}

// LoadTest loads the fixture in the directory dir of fsys, looking for an ir.json, an optional config.yaml and an
// expect.yaml.
func LoadTest(fsys fs.FS, dir string) (*ir.Document, *config.Config, *Expectation, error) {
	b, err := fs.ReadFile(fsys, path.Join(dir, "ir.json"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not read ir: %w", err)
	}
	doc, err := ir.Parse(b)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse ir in %s: %w", dir, err)
	}

	cfg := config.NewDefault()
	configFile := path.Join(dir, "config.yaml")
	if cb, err := fs.ReadFile(fsys, configFile); err == nil {
		cfg, err = config.LoadBytes(configFile, cb)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	expect := &Expectation{}
	eb, err := fs.ReadFile(fsys, path.Join(dir, "expect.yaml"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not read expectations: %w", err)
	}
	if err := yaml.Unmarshal(eb, expect); err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse expectations in %s: %w", dir, err)
	}
	return doc, cfg, expect, nil
}

// CheckDocument checks the annotated document against the expectation, reporting every mismatch on t.
func CheckDocument(t *testing.T, expect *Expectation, doc *ir.Document) {
	t.Helper()
	if doc.Overall == nil {
		t.Errorf("document has no overall analysis")
	} else {
		if expect.Deterministic != nil && *expect.Deterministic != doc.Overall.Deterministic {
			t.Errorf("deterministic = %v, expected %v", doc.Overall.Deterministic, *expect.Deterministic)
		}
		if expect.CalmSafe != nil && *expect.CalmSafe != doc.Overall.CalmSafe {
			t.Errorf("calm_safe = %v, expected %v", doc.Overall.CalmSafe, *expect.CalmSafe)
		}
	}

	nodes := map[string]*ir.Node{}
	for i := range doc.Nodes {
		nodes[doc.Nodes[i].ID] = &doc.Nodes[i]
	}
	for id, ne := range expect.Nodes {
		node, ok := nodes[id]
		if !ok {
			t.Errorf("no node %q", id)
			continue
		}
		if node.Analysis == nil {
			t.Errorf("node %q has no analysis", id)
			continue
		}
		a := node.Analysis
		if ne.Nd != "" && ne.Nd != a.NdEffect {
			t.Errorf("node %q: nd_effect = %s, expected %s", id, a.NdEffect, ne.Nd)
		}
		if ne.Monotone != nil && *ne.Monotone != a.Monotone {
			t.Errorf("node %q: monotone = %v, expected %v", id, a.Monotone, *ne.Monotone)
		}
		if ne.Issues != nil && !slices.Equal(issueKinds(a.Issues), ne.Issues) {
			t.Errorf("node %q: issues = %v, expected kinds %v", id, a.Issues, ne.Issues)
		}
		checkTags(t, "node "+id, node.SemanticTags, ne.Tags)
		switch {
		case ne.Location == "none" && a.SourceLocation != nil:
			t.Errorf("node %q: unexpected source location %v", id, *a.SourceLocation)
		case ne.Location != "" && ne.Location != "none":
			if a.SourceLocation == nil {
				t.Errorf("node %q: no source location, expected %s", id, ne.Location)
			} else if loc := fmt.Sprintf("%s:%d", a.SourceLocation.File, a.SourceLocation.Line); loc != ne.Location {
				t.Errorf("node %q: source location %s, expected %s", id, loc, ne.Location)
			}
		}
	}

	edges := map[string]*ir.Edge{}
	for i := range doc.Edges {
		edges[doc.Edges[i].ID] = &doc.Edges[i]
	}
	for id, ee := range expect.Edges {
		edge, ok := edges[id]
		if !ok {
			t.Errorf("no edge %q", id)
			continue
		}
		if edge.Analysis == nil {
			t.Errorf("edge %q has no analysis", id)
			continue
		}
		a := edge.Analysis
		if ee.Calm != "" && ee.Calm != a.Calm {
			t.Errorf("edge %q: calm = %s, expected %s", id, a.Calm, ee.Calm)
		}
		if ee.IsLattice != nil && *ee.IsLattice != a.IsLattice {
			t.Errorf("edge %q: is_lattice = %v, expected %v", id, a.IsLattice, *ee.IsLattice)
		}
		if ee.Issues != nil && !slices.Equal(issueKinds(a.Issues), ee.Issues) {
			t.Errorf("edge %q: issues = %v, expected kinds %v", id, a.Issues, ee.Issues)
		}
		checkTags(t, "edge "+id, edge.SemanticTags, ee.Tags)
	}
}

func issueKinds(issues []ir.Issue) []string {
	kinds := make([]string, len(issues))
	for i, issue := range issues {
		kinds[i] = issue.Kind
	}
	return kinds
}

func checkTags(t *testing.T, what string, tags []string, expected []string) {
	t.Helper()
	for _, tag := range expected {
		if !slices.Contains(tags, tag) {
			t.Errorf("%s: tags %v should contain %q", what, tags, tag)
		}
	}
}

// Node returns a node with the id, kind and operator label. An empty label means no label.
func Node(id string, kind string, label string) ir.Node {
	n := ir.Node{ID: id, NodeType: kind, ShortLabel: label}
	if label != "" {
		l := label
		n.Label = &l
	}
	if n.ShortLabel == "" {
		n.ShortLabel = id
	}
	return n
}

// WithBacktrace returns the node with a context payload whose backtrace is the raw json array frames
func WithBacktrace(n ir.Node, frames string) ir.Node {
	n.Data = &ir.NodeData{Backtrace: json.RawMessage(frames)}
	return n
}

// Edge returns an edge from src to tgt with the type label and semantic tags. An empty label means no label.
func Edge(id string, src string, tgt string, label string, tags ...string) ir.Edge {
	e := ir.Edge{ID: id, Source: src, Target: tgt, SemanticTags: tags}
	if label != "" {
		l := label
		e.Label = &l
	}
	return e
}

// Doc returns a document with the nodes and edges
func Doc(nodes []ir.Node, edges []ir.Edge) *ir.Document {
	return &ir.Document{Nodes: nodes, Edges: edges}
}
