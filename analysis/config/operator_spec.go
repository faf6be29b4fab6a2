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

package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/awslabs/hydrolysis/analysis/semantics"
)

// OperatorSpec declares the semantics of the operators whose label and kind match. An empty Label or Kind matches
// anything.
type OperatorSpec struct {
	Label    string `yaml:"label"`
	Kind     string `yaml:"kind"`
	Nd       string `yaml:"nd"`
	Monotone string `yaml:"monotone"`

	// This will not be part of the yaml config
	computedRegexs *operatorSpecRegex
	semantics      semantics.OpSemantics
}

type operatorSpecRegex struct {
	labelRegex *regexp.Regexp
	kindRegex  *regexp.Regexp
}

// compileOperatorSpec checks the spec, parses its semantics and compiles its label and kind into regexes. It
// compiles both into regexes or none.
func compileOperatorSpec(spec OperatorSpec) (OperatorSpec, error) {
	if spec.Label == "" && spec.Kind == "" {
		return spec, fmt.Errorf("operator spec must specify a label or a kind")
	}
	nd, err := semantics.ParseNdEffect(spec.Nd)
	if err != nil {
		return spec, err
	}
	monotone, err := semantics.ParseMonotonicity(spec.Monotone)
	if err != nil {
		return spec, err
	}
	spec.semantics = semantics.OpSemantics{Nd: nd, Monotone: monotone}
	spec.computedRegexs = nil

	labelRegex, err := wholeStringRegex(spec.Label)
	if err != nil {
		return spec, nil
	}
	kindRegex, err := wholeStringRegex(spec.Kind)
	if err != nil {
		return spec, nil
	}
	spec.computedRegexs = &operatorSpecRegex{labelRegex, kindRegex}
	return spec, nil
}

func wholeStringRegex(s string) (*regexp.Regexp, error) {
	return regexp.Compile("^(?i:" + s + ")$")
}

// Matches returns true if the spec applies to an operator with that label and kind. It implements
// semantics.Override.
func (spec OperatorSpec) Matches(label string, kind string) bool {
	if spec.computedRegexs != nil {
		return (spec.Label == "" || spec.computedRegexs.labelRegex.MatchString(label)) &&
			(spec.Kind == "" || spec.computedRegexs.kindRegex.MatchString(kind))
	}
	return (spec.Label == "" || strings.EqualFold(spec.Label, label)) &&
		(spec.Kind == "" || strings.EqualFold(spec.Kind, kind))
}

// Semantics returns the declared semantics. It is only meaningful for specs of a loaded config.
func (spec OperatorSpec) Semantics() semantics.OpSemantics {
	return spec.semantics
}

func (spec OperatorSpec) String() string {
	return fmt.Sprintf("{label: %q, kind: %q} -> %s", spec.Label, spec.Kind, spec.semantics)
}
