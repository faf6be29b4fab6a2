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

import "strings"

// Node kinds of the IR
const (
	KindSource           = "Source"
	KindTransform        = "Transform"
	KindJoin             = "Join"
	KindAggregation      = "Aggregation"
	KindNetwork          = "Network"
	KindSink             = "Sink"
	KindTee              = "Tee"
	KindNonDeterministic = "NonDeterministic"
)

// All the substring sets used to probe labels and backtraces are below. They are closed: adding an entry changes
// the result of the analysis.
var (
	// networkBatchFiles identifies frames of the framework code that inserts a batch when sending over the network
	networkBatchFiles = []string{"networking.rs", "location/mod.rs"}

	// commutativeIdempotentFunctions identifies frames of commutative and idempotent fold/reduce variants
	commutativeIdempotentFunctions = []string{"commutative_idempotent", "idempotent_commutative"}

	// latticeTypeFragments identifies types of the lattices library and of known application wrappers around it.
	// No entry may be a substring of a plausible non-lattice identifier.
	latticeTypeFragments = []string{
		"lattices::",
		"Max<", "Min<", "DomPair<", "SetUnion<", "MapUnion<", "VecUnion<",
		"WithBot<", "WithTop<", "Conflict<", "Point<", "Pair<",
		"CausalWrapper<", "VCWrapper<",
		"WithTombstones<",
	}

	// frameworkFileFragments identifies files of the dataflow framework
	frameworkFileFragments = []string{"hydro_lang", "dfir_", "stageleft"}

	// frameworkSourceDirs identifies framework directories when the path is relative to the framework crate's src/
	frameworkSourceDirs = []string{"location/", "compile/", "live_collections/"}
)

// genericFolds are the fold/reduce labels whose monotonicity depends on the variant chosen by the caller
var genericFolds = []string{"fold", "foldkeyed", "fold_keyed", "reduce", "reducekeyed", "reduce_keyed"}

// OfKind returns the semantics of a node kind. Unknown kinds get the conservative default: locally nondeterministic
// and never monotone.
func OfKind(kind string) OpSemantics {
	switch kind {
	case KindSource, KindTransform, KindJoin, KindNetwork, KindSink, KindTee:
		return monotoneDet
	case KindAggregation:
		return dependsDet
	default:
		return localNever
	}
}

// OfLabel returns the semantics of an operator label, ignoring case. The boolean is false for unknown labels.
//
//gocyclo:ignore
func OfLabel(label string) (OpSemantics, bool) {
	switch strings.ToLower(label) {
	// elementwise transforms
	case "map", "flat_map", "flatmap", "filter", "filter_map", "filtermap", "inspect", "enumerate", "cloned":
		return monotoneDet, true

	// casts and structural operations
	case "cast", "chain", "chainfirst", "into_keyed", "keys", "resolve_futures", "resolve_futures_ordered",
		"all_ticks", "all_ticks_atomic", "defer_tick", "begin_atomic", "end_atomic", "atomic":
		return monotoneDet, true

	case "join", "cross_product", "crossproduct", "cross_singleton", "cross_product_nested_loop":
		return monotoneDet, true

	// difference and anti-join retract output; sort needs to see every element
	case "difference", "anti_join", "antijoin", "filter_not_in", "sort":
		return nonMonotoneDet, true

	// unique only accumulates
	case "unique":
		return monotoneDet, true

	case "fold_commutative_idempotent", "fold_idempotent_commutative",
		"reduce_commutative_idempotent", "reduce_idempotent_commutative":
		return monotoneDet, true

	case "fold", "fold_keyed", "foldkeyed", "fold_commutative", "fold_idempotent",
		"reduce", "reduce_keyed", "reducekeyed", "reduce_commutative", "reduce_idempotent",
		"reduce_keyed_watermark", "scan":
		return dependsDet, true

	case "min", "max", "count", "first", "last", "collect_vec":
		return dependsDet, true

	// a batch placed by the user: where the batch boundaries fall is up to the runtime
	case "batch", "batch_atomic":
		return localMonotone, true

	case "network", "persist", "tee":
		return monotoneDet, true

	case "observe_non_det", "observenondet", "nondet", "sample_every", "timeout":
		return localNever, true

	case "source_stream", "source_iter", "external_input", "cycle_source", "singleton_source":
		return monotoneDet, true

	case "for_each", "send_external", "cycle_sink", "dest_sink":
		return monotoneDet, true

	case "filter_if_some", "filter_if_none":
		return monotoneDet, true
	}
	return OpSemantics{}, false
}

// IsLatticeType returns true if the type label names a lattice. The test is syntactic and conservative: a custom
// lattice type is reported as not a lattice. An empty label is not a lattice.
func IsLatticeType(label string) bool {
	return containsAny(label, latticeTypeFragments)
}

// IsFrameworkFile returns true if the file path belongs to the dataflow framework rather than to user code.
func IsFrameworkFile(file string) bool {
	if containsAny(file, frameworkFileFragments) {
		return true
	}
	return strings.HasPrefix(file, "src/") && containsAny(file, frameworkSourceDirs)
}

func containsAny(s string, fragments []string) bool {
	if s == "" {
		return false
	}
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}
