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

import "encoding/json"

// Document is a dataflow graph IR. The display-related keys are opaque to the analysis and are kept as raw JSON.
type Document struct {
	Nodes []Node
	Edges []Edge

	HierarchyChoices  json.RawMessage
	NodeAssignments   json.RawMessage
	SelectedHierarchy *string
	EdgeStyleConfig   json.RawMessage
	NodeTypeConfig    json.RawMessage
	Legend            json.RawMessage

	// Overall is only present on annotated documents
	Overall *OverallAnalysis

	// Extra holds the top-level keys that are not part of the model
	Extra map[string]json.RawMessage
}

// Node is a dataflow operator.
type Node struct {
	ID string `json:"id"`

	// NodeType is the coarse kind of the operator (Source, Transform, ...). Unknown kinds are tolerated.
	NodeType string `json:"nodeType"`

	SemanticTags []string `json:"semanticTags,omitempty"`
	ShortLabel   string   `json:"shortLabel"`
	FullLabel    *string  `json:"fullLabel,omitempty"`

	// Label is the fine-grained operator name, e.g. "map" or "fold_keyed"
	Label *string `json:"label,omitempty"`

	Data     *NodeData     `json:"data,omitempty"`
	Analysis *NodeAnalysis `json:"analysis,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// NodeData is the context payload of a node: where it is placed and the call stack that created it.
type NodeData struct {
	LocationID   *int64          `json:"locationId,omitempty"`
	LocationType *string         `json:"locationType,omitempty"`
	Backtrace    json.RawMessage `json:"backtrace,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Edge is a directed stream between two nodes.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`

	EdgeProperties []string `json:"edgeProperties,omitempty"`
	SemanticTags   []string `json:"semanticTags,omitempty"`

	// Label is the type of the values carried by the edge, as a free-form string
	Label *string `json:"label,omitempty"`

	Analysis *EdgeAnalysis `json:"analysis,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Issue is a finding attached to a node or an edge.
type Issue struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// SourceLocation points at the user code that created a node.
type SourceLocation struct {
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	Function string `json:"function,omitempty"`
}

// NodeAnalysis is the serialized analysis result of a node.
type NodeAnalysis struct {
	NdEffect       string          `json:"nd_effect"`
	Monotone       bool            `json:"monotone"`
	Issues         []Issue         `json:"issues"`
	SourceLocation *SourceLocation `json:"source_location,omitempty"`
}

// EdgeAnalysis is the serialized analysis result of an edge.
type EdgeAnalysis struct {
	IsLattice bool    `json:"is_lattice"`
	Calm      string  `json:"calm"`
	Issues    []Issue `json:"issues"`
}

// OverallAnalysis summarizes the analysis of a whole document.
type OverallAnalysis struct {
	Deterministic bool `json:"deterministic"`
	CalmSafe      bool `json:"calm_safe"`
}

// OperatorLabel returns the operator label of the node, or "" if it has none
func (n *Node) OperatorLabel() string {
	if n.Label == nil {
		return ""
	}
	return *n.Label
}

// Frames returns the decoded backtrace of the node, or nil if the node has no context payload
func (n *Node) Frames() []Frame {
	if n.Data == nil {
		return nil
	}
	return n.Data.Frames()
}

// TypeLabel returns the type label of the edge, or "" if it has none
func (e *Edge) TypeLabel() string {
	if e.Label == nil {
		return ""
	}
	return *e.Label
}

// HasTag returns true if the edge carries the semantic tag
func (e *Edge) HasTag(tag string) bool {
	for _, t := range e.SemanticTags {
		if t == tag {
			return true
		}
	}
	return false
}
