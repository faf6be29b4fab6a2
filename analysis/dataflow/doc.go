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
Package dataflow indexes the dataflow graph of an IR document and holds the state shared by the analyses.

The first object to build is an instance of the [AnalyzerState], which indexes the graph and classifies every operator
once. Assuming you have a document doc, configuration cfg and logger log:

	state := dataflow.NewAnalyzerState(doc, log, cfg)

The state is read-only once built; the nondeterminism and CALM passes can run on it concurrently.
*/
package dataflow
