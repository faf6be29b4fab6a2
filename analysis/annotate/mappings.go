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

package annotate

import (
	"bytes"
	"encoding/json"
)

// The semantic mapping groups inserted in the display configurations. The viewers match the group entries against
// the semantic tags of the nodes and edges.
var (
	nodeMappings = map[string]any{
		"NondeterminismGroup": map[string]any{
			TagNonDetRoot:      map[string]any{"color-token": "warning", "border-width": 3},
			TagNonDetInherited: map[string]any{"color-token": "warning-light", "border-style": "dashed"},
			TagDeterministic:   map[string]any{"color-token": "default"},
		},
		"MonotonicityGroup": map[string]any{
			TagMonotone:    map[string]any{"badge": "✓"},
			TagNonMonotone: map[string]any{"badge": "⚠"},
		},
	}

	edgeMappings = map[string]any{
		"LatticeGroup": map[string]any{
			TagLattice:    map[string]any{"color-token": "success"},
			TagNonLattice: map[string]any{"color-token": "danger"},
		},
		"CALMGroup": map[string]any{
			"CalmSafe":   map[string]any{"line-pattern": "solid", "line-width": 2},
			"CalmUnsafe": map[string]any{"line-pattern": "dashed", "line-width": 3},
		},
	}

	defaultNodeTypeConfig = map[string]any{"defaultType": "Transform", "types": []any{}}

	defaultEdgeStyleConfig = map[string]any{}
)

const semanticMappingsKey = "semanticMappings"

// EnrichConfig returns the display configuration raw with the mapping groups inserted in its "semanticMappings"
// object, replacing groups of the same name. A missing (or null) configuration is replaced by defaults with the
// groups. A configuration that is not a JSON object is returned untouched, and so are the keys of raw that are not
// rewritten.
func EnrichConfig(raw json.RawMessage, defaults map[string]any, groups map[string]any) json.RawMessage {
	config := map[string]json.RawMessage{}
	if isMissing(raw) {
		for k, v := range defaults {
			config[k] = encodeJSON(v)
		}
	} else if err := json.Unmarshal(raw, &config); err != nil || config == nil {
		return raw
	}

	mappings := map[string]json.RawMessage{}
	if existing, ok := config[semanticMappingsKey]; ok {
		// a semanticMappings value that is not an object is replaced
		if err := json.Unmarshal(existing, &mappings); err != nil || mappings == nil {
			mappings = map[string]json.RawMessage{}
		}
	}
	for name, group := range groups {
		mappings[name] = encodeJSON(group)
	}
	config[semanticMappingsKey] = encodeJSON(mappings)
	return encodeJSON(config)
}

func isMissing(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
