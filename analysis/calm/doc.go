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
Package calm checks that the outputs of a dataflow graph are coordination-free.

An edge is CALM-critical if it carries data across the network or into a sink. A critical edge is CALM-safe if every
node that can reach it is monotone and every edge between those nodes carries a lattice type: by the CALM theorem, the
stream on the edge then does not depend on the order or timing of the inputs, and no coordination is needed.

The certificate of a critical edge lists the offenders in its cone (the nodes from which the edge's target is
reachable). Certification of distinct edges is independent, and runs in parallel when the state allows it.
*/
package calm
