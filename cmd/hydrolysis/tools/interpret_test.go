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

package tools

import (
	"strings"
	"testing"
)

func validateHint(t *testing.T, errorMsg string, containedHint string) {
	hint := HintForErrorMessage(errorMsg)
	if !strings.Contains(hint, containedHint) {
		t.Fatalf("incorrect hint %q for %q; check and update error message if necessary", hint, errorMsg)
	}
}

func TestHintForMissingInput(t *testing.T) {
	validateHint(t, "could not read input file in.json: open in.json: no such file or directory",
		"the first argument should be the path to the IR file")
}

func TestHintForSwappedArguments(t *testing.T) {
	validateHint(t, "could not parse IR in out.txt: invalid character 'h' looking for beginning of value",
		"the arguments are the input IR followed by the output path")
}

func TestHintForMissingField(t *testing.T) {
	validateHint(t, `could not parse IR in in.json: nodes[3]: missing required field "shortLabel"`,
		"nodes need an id, a nodeType and a shortLabel")
}

func TestHintForBadShape(t *testing.T) {
	validateHint(t, `could not parse IR in in.json: missing required field "edges"`,
		"a JSON object with nodes and edges arrays")
}

func TestHintForOutput(t *testing.T) {
	validateHint(t, "could not write output file /nope/out.json: open /nope/out.json: no such file or directory",
		"directory of the output file exists")
	validateHint(t, "could not create file: open /nope/g.dot: no such file or directory",
		"directory of the output file exists")
}

func TestHintForConfig(t *testing.T) {
	validateHint(t, `in c.yaml, operator-semantics[0]: unknown nondeterminism effect "Random"`,
		"nd is one of Deterministic")
	validateHint(t, "could not read config file: open c.yaml: no such file or directory",
		"-config flag should point to a YAML config file")
}

func TestNoHint(t *testing.T) {
	if hint := HintForErrorMessage("something else"); hint != "" {
		t.Errorf("expected no hint, got %q", hint)
	}
}
