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

package semantics

import "github.com/awslabs/hydrolysis/analysis/ir"

// Override is a user-declared classification of the operators it matches. Overrides take precedence over the
// tables and over the backtrace probes.
type Override interface {
	// Matches returns true if the override applies to an operator with that label and kind
	Matches(label string, kind string) bool

	Semantics() OpSemantics
}

// A Classifier classifies nodes and edge types using the tables of this package extended with user declarations.
// The zero value and the nil Classifier classify with the tables only.
type Classifier struct {
	overrides    []Override
	latticeTypes []string
}

// NewClassifier returns a classifier that tries the overrides in order before the tables, and that recognizes
// type labels containing any of latticeTypes as lattices in addition to the built-in ones.
func NewClassifier(overrides []Override, latticeTypes []string) *Classifier {
	c := &Classifier{overrides: overrides}
	for _, t := range latticeTypes {
		// an empty fragment would match every label
		if t != "" {
			c.latticeTypes = append(c.latticeTypes, t)
		}
	}
	return c
}

// Node returns the semantics of the node.
func (c *Classifier) Node(node *ir.Node) OpSemantics {
	if c != nil {
		for _, o := range c.overrides {
			if o.Matches(node.OperatorLabel(), node.NodeType) {
				return o.Semantics()
			}
		}
	}
	return OfNode(node)
}

// IsLattice returns true if the type label names a lattice.
func (c *Classifier) IsLattice(label string) bool {
	if IsLatticeType(label) {
		return true
	}
	return c != nil && containsAny(label, c.latticeTypes)
}
