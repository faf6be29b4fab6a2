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

/*
Package config provides a simple way to manage the configuration of the analyzer.

Use [Load](filename) to load a configuration from a specific filename, or [LoadBytes] when the contents are already
in memory.

Use [SetGlobalConfig](filename) to set filename as the global config, and then [LoadGlobal]() to load the global
config.

A config file should be in yaml format. The top-level fields can be any of the fields defined in the Config struct
type. For example, a valid config file is as follows:

	options:
	  log-level: 4
	  num-routines: 4
	  max-report-operations: 20

	lattice-types: ["MyLattice<"]

	framework-paths: ["my_framework/"]

	operator-semantics:
	  - label: "source_clock"
	    nd: ExternalNonDet
	    monotone: Always

# Declaring operator semantics

The operator-semantics entries are tried in order before the built-in tables. An entry matches an operator when its
label and kind both match; an empty label or kind matches anything. The label and kind are seen as case-insensitive
regexes matching the whole string if they can be compiled to regexes, otherwise they are compared as strings, ignoring
case. An entry must specify a label or a kind, and the nd and monotone values must be one of the names of
[semantics.NdEffect] and [semantics.Monotonicity].
*/
package config
