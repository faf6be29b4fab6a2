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

package ir

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleDocument = `{
  "nodes": [
    {"id": "0", "nodeType": "Source", "shortLabel": "source_iter", "label": "source_iter",
     "data": {"locationId": 0, "locationType": "Process",
              "backtrace": [{"file": "src/main.rs", "line": 12, "fn": "main"}], "extraData": true}},
    {"id": "1", "nodeType": "Sink", "shortLabel": "for_each", "fullLabel": "for_each(|x| println!(x))",
     "customKey": {"a": [1, 2]}}
  ],
  "edges": [
    {"id": "e0", "source": "0", "target": "1", "semanticTags": ["Local"], "label": "Stream<SetUnion<i32>>",
     "edgeProperties": ["Bounded"], "weight": 3}
  ],
  "hierarchyChoices": [{"id": "location", "name": "Location"}],
  "selectedHierarchy": "location",
  "legend": {"show": true},
  "somethingNew": 42
}`

func TestParseKeepsUnknownKeys(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("failed to parse sample: %v", err)
	}
	if len(doc.Nodes) != 2 || len(doc.Edges) != 1 {
		t.Fatalf("expected 2 nodes and 1 edge, got %d and %d", len(doc.Nodes), len(doc.Edges))
	}
	if string(doc.Extra["somethingNew"]) != "42" {
		t.Errorf("top-level unknown key not kept: %v", doc.Extra)
	}
	if _, ok := doc.Nodes[1].Extra["customKey"]; !ok {
		t.Errorf("node unknown key not kept: %v", doc.Nodes[1].Extra)
	}
	if _, ok := doc.Nodes[0].Data.Extra["extraData"]; !ok {
		t.Errorf("node data unknown key not kept: %v", doc.Nodes[0].Data.Extra)
	}
	if string(doc.Edges[0].Extra["weight"]) != "3" {
		t.Errorf("edge unknown key not kept: %v", doc.Edges[0].Extra)
	}

	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	for _, key := range []string{`"somethingNew"`, `"customKey"`, `"extraData"`, `"weight"`, `"legend"`,
		`"hierarchyChoices"`, `"selectedHierarchy"`, `"fullLabel"`, `"edgeProperties"`} {
		if !bytes.Contains(out, []byte(key)) {
			t.Errorf("output is missing key %s:\n%s", key, out)
		}
	}
	if !bytes.Contains(out, []byte("Stream<SetUnion<i32>>")) {
		t.Errorf("type labels should not be HTML-escaped:\n%s", out)
	}
}

func TestRoundTrip(t *testing.T) {
	doc, err := Parse([]byte(sampleDocument))
	if err != nil {
		t.Fatalf("failed to parse sample: %v", err)
	}
	first, err := Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	doc2, err := Parse(first)
	if err != nil {
		t.Fatalf("failed to parse marshalled document: %v", err)
	}
	second, err := Marshal(doc2)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Errorf("round trip is not stable:\n%s\n---\n%s", first, second)
	}

	var a, b any
	if err := json.Unmarshal([]byte(sampleDocument), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(first, &b); err != nil {
		t.Fatal(err)
	}
	if !jsonEqual(a, b) {
		t.Errorf("output is not structurally equal to the input:\n%s", first)
	}
}

func jsonEqual(a, b any) bool {
	x, err1 := json.Marshal(a)
	y, err2 := json.Marshal(b)
	return err1 == nil && err2 == nil && bytes.Equal(x, y)
}

func TestParseMissingRequired(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"no nodes", `{"edges": []}`, `"nodes"`},
		{"no edges", `{"nodes": []}`, `"edges"`},
		{"node without id", `{"nodes": [{"nodeType": "Source", "shortLabel": "s"}], "edges": []}`, `nodes[0]`},
		{"node without kind", `{"nodes": [{"id": "0", "shortLabel": "s"}], "edges": []}`, `"nodeType"`},
		{"edge without target", `{"nodes": [], "edges": [{"id": "e", "source": "0"}]}`, `edges[0]`},
		{"not an object", `[1, 2]`, `cannot unmarshal`},
		{"malformed", `{"nodes": [`, `unexpected end`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("error %q should mention %s", err, test.want)
			}
		})
	}
}

func TestFrames(t *testing.T) {
	tests := []struct {
		name      string
		backtrace string
		want      []Frame
	}{
		{"absent", ``, nil},
		{"not an array", `{"file": "a.rs"}`, nil},
		{"line and function", `[{"file": "a.rs", "line": 3, "function": "f"}]`,
			[]Frame{{File: "a.rs", HasFile: true, Line: 3, HasLine: true, Function: "f"}}},
		{"alternate keys", `[{"file": "a.rs", "lineNumber": 7, "fn": "g"}]`,
			[]Frame{{File: "a.rs", HasFile: true, Line: 7, HasLine: true, Function: "g"}}},
		{"line takes precedence", `[{"file": "a.rs", "line": "x", "lineNumber": 7}]`,
			[]Frame{{File: "a.rs", HasFile: true}}},
		{"float line", `[{"file": "a.rs", "line": 1.5}]`, []Frame{{File: "a.rs", HasFile: true}}},
		{"negative line", `[{"file": "a.rs", "line": -1}]`, []Frame{{File: "a.rs", HasFile: true}}},
		{"non-object element", `[3, {"file": "b.rs", "line": 1}]`,
			[]Frame{{}, {File: "b.rs", HasFile: true, Line: 1, HasLine: true}}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := &NodeData{Backtrace: json.RawMessage(test.backtrace)}
			got := d.Frames()
			if len(got) != len(test.want) {
				t.Fatalf("got %d frames, want %d: %+v", len(got), len(test.want), got)
			}
			for i := range got {
				if got[i] != test.want[i] {
					t.Errorf("frame %d: got %+v, want %+v", i, got[i], test.want[i])
				}
			}
		})
	}
}

func TestLoadAndWrite(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	if err := os.WriteFile(in, []byte(sampleDocument), 0600); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(in)
	if err != nil {
		t.Fatalf("failed to load: %v", err)
	}
	out := filepath.Join(dir, "out.json")
	if err := Write(out, doc); err != nil {
		t.Fatalf("failed to write: %v", err)
	}
	if _, err := Load(out); err != nil {
		t.Errorf("written document does not load: %v", err)
	}

	_, err = Load(filepath.Join(dir, "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "missing.json") {
		t.Errorf("load error should name the file, got %v", err)
	}
	if err := Write(filepath.Join(dir, "no", "such", "dir.json"), doc); err == nil {
		t.Errorf("expected a write error")
	}
}

func TestEmptyDocumentKeepsArrays(t *testing.T) {
	b, err := Marshal(&Document{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Parse(b); err != nil {
		t.Errorf("an empty document should re-parse, got %v from\n%s", err, b)
	}
}

func TestRoundTripKeepsEmptyArrays(t *testing.T) {
	input := `{
  "nodes": [{"id": "0", "nodeType": "Source", "shortLabel": "s", "semanticTags": []}],
  "edges": [
    {"id": "e0", "source": "0", "target": "0", "edgeProperties": [], "semanticTags": [], "label": "Max<u8>"},
    {"id": "e1", "source": "0", "target": "0"}
  ]
}`
	doc, err := Parse([]byte(input))
	if err != nil {
		t.Fatalf("failed to parse: %v", err)
	}
	out, err := Marshal(doc)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}
	var a, b any
	if err := json.Unmarshal([]byte(input), &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(out, &b); err != nil {
		t.Fatal(err)
	}
	if !jsonEqual(a, b) {
		t.Errorf("empty arrays should be kept and absent keys stay absent:\n%s", out)
	}
}
