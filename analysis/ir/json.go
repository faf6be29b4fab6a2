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
	"fmt"
)

var (
	documentKeys = []string{"nodes", "edges", "hierarchyChoices", "nodeAssignments", "selectedHierarchy",
		"edgeStyleConfig", "nodeTypeConfig", "legend", "overall"}
	nodeKeys     = []string{"id", "nodeType", "semanticTags", "shortLabel", "fullLabel", "label", "data", "analysis"}
	nodeDataKeys = []string{"locationId", "locationType", "backtrace"}
	edgeKeys     = []string{"id", "source", "target", "edgeProperties", "semanticTags", "label", "analysis"}

	documentRequired = []string{"nodes", "edges"}
	nodeRequired     = []string{"id", "nodeType", "shortLabel"}
	edgeRequired     = []string{"id", "source", "target"}
)

// documentIn decodes the elements separately so that errors can name the element that failed
type documentIn struct {
	Nodes             []json.RawMessage `json:"nodes"`
	Edges             []json.RawMessage `json:"edges"`
	HierarchyChoices  json.RawMessage   `json:"hierarchyChoices"`
	NodeAssignments   json.RawMessage   `json:"nodeAssignments"`
	SelectedHierarchy *string           `json:"selectedHierarchy"`
	EdgeStyleConfig   json.RawMessage   `json:"edgeStyleConfig"`
	NodeTypeConfig    json.RawMessage   `json:"nodeTypeConfig"`
	Legend            json.RawMessage   `json:"legend"`
	Overall           *OverallAnalysis  `json:"overall"`
}

type documentOut struct {
	Nodes             []Node           `json:"nodes"`
	Edges             []Edge           `json:"edges"`
	HierarchyChoices  json.RawMessage  `json:"hierarchyChoices,omitempty"`
	NodeAssignments   json.RawMessage  `json:"nodeAssignments,omitempty"`
	SelectedHierarchy *string          `json:"selectedHierarchy,omitempty"`
	EdgeStyleConfig   json.RawMessage  `json:"edgeStyleConfig,omitempty"`
	NodeTypeConfig    json.RawMessage  `json:"nodeTypeConfig,omitempty"`
	Legend            json.RawMessage  `json:"legend,omitempty"`
	Overall           *OverallAnalysis `json:"overall,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Document) UnmarshalJSON(b []byte) error {
	extra, err := splitKnown(b, documentKeys, documentRequired)
	if err != nil {
		return err
	}
	var in documentIn
	if err := json.Unmarshal(b, &in); err != nil {
		return err
	}
	nodes := make([]Node, len(in.Nodes))
	for i, raw := range in.Nodes {
		if err := json.Unmarshal(raw, &nodes[i]); err != nil {
			return fmt.Errorf("nodes[%d]: %w", i, err)
		}
	}
	edges := make([]Edge, len(in.Edges))
	for i, raw := range in.Edges {
		if err := json.Unmarshal(raw, &edges[i]); err != nil {
			return fmt.Errorf("edges[%d]: %w", i, err)
		}
	}
	*d = Document{
		Nodes:             nodes,
		Edges:             edges,
		HierarchyChoices:  in.HierarchyChoices,
		NodeAssignments:   in.NodeAssignments,
		SelectedHierarchy: in.SelectedHierarchy,
		EdgeStyleConfig:   in.EdgeStyleConfig,
		NodeTypeConfig:    in.NodeTypeConfig,
		Legend:            in.Legend,
		Overall:           in.Overall,
		Extra:             extra,
	}
	return nil
}

// MarshalJSON implements json.Marshaler
func (d Document) MarshalJSON() ([]byte, error) {
	out := documentOut{
		Nodes:             d.Nodes,
		Edges:             d.Edges,
		HierarchyChoices:  d.HierarchyChoices,
		NodeAssignments:   d.NodeAssignments,
		SelectedHierarchy: d.SelectedHierarchy,
		EdgeStyleConfig:   d.EdgeStyleConfig,
		NodeTypeConfig:    d.NodeTypeConfig,
		Legend:            d.Legend,
		Overall:           d.Overall,
	}
	// nodes and edges are required on input, so an empty document still carries them
	if out.Nodes == nil {
		out.Nodes = []Node{}
	}
	if out.Edges == nil {
		out.Edges = []Edge{}
	}
	return marshalWithExtra(out, d.Extra)
}

type nodeAlias Node

// UnmarshalJSON implements json.Unmarshaler
func (n *Node) UnmarshalJSON(b []byte) error {
	extra, err := splitKnown(b, nodeKeys, nodeRequired)
	if err != nil {
		return err
	}
	var a nodeAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*n = Node(a)
	n.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler
func (n Node) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(nodeAlias(n), withEmptyArrays(n.Extra, map[string][]string{
		"semanticTags": n.SemanticTags,
	}))
}

type nodeDataAlias NodeData

// UnmarshalJSON implements json.Unmarshaler
func (d *NodeData) UnmarshalJSON(b []byte) error {
	extra, err := splitKnown(b, nodeDataKeys, nil)
	if err != nil {
		return err
	}
	var a nodeDataAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*d = NodeData(a)
	d.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler
func (d NodeData) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(nodeDataAlias(d), d.Extra)
}

type edgeAlias Edge

// UnmarshalJSON implements json.Unmarshaler
func (e *Edge) UnmarshalJSON(b []byte) error {
	extra, err := splitKnown(b, edgeKeys, edgeRequired)
	if err != nil {
		return err
	}
	var a edgeAlias
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	*e = Edge(a)
	e.Extra = extra
	return nil
}

// MarshalJSON implements json.Marshaler
func (e Edge) MarshalJSON() ([]byte, error) {
	return marshalWithExtra(edgeAlias(e), withEmptyArrays(e.Extra, map[string][]string{
		"edgeProperties": e.EdgeProperties,
		"semanticTags":   e.SemanticTags,
	}))
}

// withEmptyArrays returns extra with an empty array for each key whose slice is empty but not nil. Those keys were
// present in the input and omitempty would drop them.
func withEmptyArrays(extra map[string]json.RawMessage, arrays map[string][]string) map[string]json.RawMessage {
	var res map[string]json.RawMessage
	for k, a := range arrays {
		if a == nil || len(a) > 0 {
			continue
		}
		if res == nil {
			res = make(map[string]json.RawMessage, len(extra)+len(arrays))
			for x, v := range extra {
				res[x] = v
			}
		}
		res[k] = json.RawMessage("[]")
	}
	if res == nil {
		return extra
	}
	return res
}

// splitKnown checks that the object b has all the required keys and returns the keys of b that are not known.
func splitKnown(b []byte, known []string, required []string) (map[string]json.RawMessage, error) {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for _, k := range required {
		if _, ok := all[k]; !ok {
			return nil, fmt.Errorf("missing required field %q", k)
		}
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

// marshalWithExtra encodes v, which must encode to a JSON object, and adds the extra keys that v does not define.
func marshalWithExtra(v any, extra map[string]json.RawMessage) ([]byte, error) {
	b, err := encode(v)
	if err != nil || len(extra) == 0 {
		return b, err
	}
	var all map[string]json.RawMessage
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, err
	}
	for k, x := range extra {
		if _, defined := all[k]; !defined {
			all[k] = x
		}
	}
	return encode(all)
}

// encode is json.Marshal without HTML escaping: type labels are full of '<' and '>'
func encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
