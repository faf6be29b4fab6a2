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

// Package semantics classifies dataflow operators by their nondeterminism effect and their monotonicity, and edge
// types by whether they are lattices.
//
// The classification is layered: the operator label is looked up first ([OfLabel]), with two context-sensitive
// cases decided by probing the backtrace of the node ([OfNode]); the coarse node kind is the conservative fallback
// ([OfKind]). A [Classifier] adds the user-declared overrides of a configuration on top of the tables.
package semantics

import "fmt"

// NdEffect is the nondeterminism class of an operator.
type NdEffect uint8

const (
	// Deterministic operators produce outputs uniquely determined by their inputs
	Deterministic NdEffect = iota
	// LocallyNonDet operators depend on local scheduling, batching or timing
	LocallyNonDet
	// ExternalNonDet operators depend on the outside world
	ExternalNonDet
)

func (nd NdEffect) String() string {
	switch nd {
	case Deterministic:
		return "Deterministic"
	case LocallyNonDet:
		return "LocallyNonDet"
	case ExternalNonDet:
		return "ExternalNonDet"
	default:
		return fmt.Sprintf("NdEffect(%d)", uint8(nd))
	}
}

// MarshalText implements encoding.TextMarshaler
func (nd NdEffect) MarshalText() ([]byte, error) {
	return []byte(nd.String()), nil
}

// ParseNdEffect returns the effect named s.
func ParseNdEffect(s string) (NdEffect, error) {
	switch s {
	case "Deterministic":
		return Deterministic, nil
	case "LocallyNonDet":
		return LocallyNonDet, nil
	case "ExternalNonDet":
		return ExternalNonDet, nil
	}
	return Deterministic, fmt.Errorf("unknown nondeterminism effect %q", s)
}

// Monotonicity describes whether the output of an operator only grows as its input grows.
type Monotonicity uint8

const (
	// Always monotone
	Always Monotonicity = iota
	// Never monotone: the operator may retract output when it sees more input
	Never
	// Depends on the function the operator is parameterized with
	Depends
)

func (m Monotonicity) String() string {
	switch m {
	case Always:
		return "Always"
	case Never:
		return "Never"
	case Depends:
		return "Depends"
	default:
		return fmt.Sprintf("Monotonicity(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler
func (m Monotonicity) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseMonotonicity returns the monotonicity named s.
func ParseMonotonicity(s string) (Monotonicity, error) {
	switch s {
	case "Always":
		return Always, nil
	case "Never":
		return Never, nil
	case "Depends":
		return Depends, nil
	}
	return Never, fmt.Errorf("unknown monotonicity %q", s)
}

// OpSemantics is the classification of an operator.
type OpSemantics struct {
	Nd       NdEffect
	Monotone Monotonicity
}

// IsMonotone is false only for operators that are never monotone; operators whose monotonicity depends on their
// function are given the benefit of the doubt.
func (s OpSemantics) IsMonotone() bool {
	return s.Monotone != Never
}

// IsDeterministic returns true if the operator itself introduces no nondeterminism
func (s OpSemantics) IsDeterministic() bool {
	return s.Nd == Deterministic
}

func (s OpSemantics) String() string {
	return fmt.Sprintf("<%s, %s>", s.Nd, s.Monotone)
}

var (
	monotoneDet    = OpSemantics{Nd: Deterministic, Monotone: Always}
	nonMonotoneDet = OpSemantics{Nd: Deterministic, Monotone: Never}
	dependsDet     = OpSemantics{Nd: Deterministic, Monotone: Depends}
	localMonotone  = OpSemantics{Nd: LocallyNonDet, Monotone: Always}
	localNever     = OpSemantics{Nd: LocallyNonDet, Monotone: Never}
)
