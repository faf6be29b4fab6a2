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

import "regexp"

// Captures errors reading the input IR
var regexCouldNotReadInput = regexp.MustCompile("could not read input file")

// Captures errors in the contents of the input IR
var regexCouldNotParse = regexp.MustCompile("could not parse IR")

// Captures the kind of error that happens when the input is not JSON, e.g. when the arguments are swapped
var regexInvalidJSON = regexp.MustCompile("invalid character|unexpected end of JSON input")

// Captures missing fields in nodes and edges
var regexMissingField = regexp.MustCompile(`(nodes|edges)\[\d+\]: missing required field`)

// Captures errors writing the output
var regexCouldNotWrite = regexp.MustCompile("could not (write output file|create file)")

// Captures errors in the declarations of the config file
var regexOperatorSemantics = regexp.MustCompile(`operator-semantics\[\d+\]`)

// Captures errors reading the config file
var regexConfig = regexp.MustCompile("could not (read|unmarshal) config file")

// HintForErrorMessage looks for specific error message and returns some other message that might help the user
// resolve the problem.
func HintForErrorMessage(errMsg string) string {
	switch {
	case regexCouldNotReadInput.MatchString(errMsg):
		return "the first argument should be the path to the IR file to analyze"
	case regexCouldNotParse.MatchString(errMsg):
		if regexMissingField.MatchString(errMsg) {
			return "nodes need an id, a nodeType and a shortLabel; edges need an id, a source and a target"
		}
		if regexInvalidJSON.MatchString(errMsg) {
			return "the input is not valid JSON; the arguments are the input IR followed by the output path"
		}
		return "the input should be a JSON object with nodes and edges arrays"
	case regexCouldNotWrite.MatchString(errMsg):
		return "check that the directory of the output file exists and is writable"
	case regexOperatorSemantics.MatchString(errMsg):
		return "each operator-semantics entry needs a label or a kind, nd is one of Deterministic, LocallyNonDet " +
			"or ExternalNonDet, and monotone is one of Always, Never or Depends"
	case regexConfig.MatchString(errMsg):
		return "the -config flag should point to a YAML config file"
	}
	return ""
}
