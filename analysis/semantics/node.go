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

import (
	"strings"

	"github.com/awslabs/hydrolysis/analysis/ir"
)

// OfNode returns the semantics of a node. The label decides when it is known, except in three cases where the
// label alone hides what the operator does and the backtrace is probed:
//
//   - a "batch" created by the framework's networking code is deterministic and monotone, whereas a batch placed by
//     the user is locally nondeterministic;
//   - a generic fold or reduce is monotone when it was created by a commutative and idempotent variant;
//   - an "observenondet" created inside a commutative and idempotent fold is an artifact of how the fold is
//     batched, and is deterministic.
//
// Nodes without a label, or with an unknown label, are classified by their kind.
func OfNode(node *ir.Node) OpSemantics {
	label := strings.ToLower(node.OperatorLabel())
	if label == "" {
		return OfKind(node.NodeType)
	}
	switch {
	case label == "batch":
		if isNetworkBatch(node.Frames()) {
			return monotoneDet
		}
	case label == "observenondet" || isGenericFold(label):
		if isCommutativeIdempotent(node.Frames()) {
			return monotoneDet
		}
	}
	if s, ok := OfLabel(label); ok {
		return s
	}
	return OfKind(node.NodeType)
}

func isGenericFold(label string) bool {
	for _, f := range genericFolds {
		if label == f {
			return true
		}
	}
	return false
}

func isNetworkBatch(frames []ir.Frame) bool {
	for _, f := range frames {
		if containsAny(f.File, networkBatchFiles) {
			return true
		}
	}
	return false
}

func isCommutativeIdempotent(frames []ir.Frame) bool {
	for _, f := range frames {
		if containsAny(f.Function, commutativeIdempotentFunctions) {
			return true
		}
	}
	return false
}
