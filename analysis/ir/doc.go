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
Package ir contains the JSON model of a dataflow graph IR and the functions to read and write it.

The IR is produced by the dataflow framework's visualizer export: a list of operator nodes, a list of typed stream
edges, and opaque display configuration that is passed through unchanged. Every object keeps the keys it does not
know about in an Extra map so that an annotated document re-emits everything that was read.

Use [Load] or [Parse] to read a document, and [Write] or [Marshal] to emit it. Backtraces are kept as raw JSON and
decoded on demand by [NodeData.Frames].
*/
package ir
