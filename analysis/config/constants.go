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

const (
	// DefaultMaxReportOperations is the maximum number of rows of the operations table of the report
	DefaultMaxReportOperations = 20
	// DefaultMaxReportEdges is the maximum number of rows of the non-lattice edges table of the report
	DefaultMaxReportEdges = 15
	// DefaultMaxReportCycles is the maximum number of cycles listed in the report
	DefaultMaxReportCycles = 5
	// DefaultNumRoutines is the number of goroutines used to certify CALM-critical edges
	DefaultNumRoutines = 1
)
