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

package graphutil

import (
	"github.com/yourbasic/graph"
)

// FindElementaryCycles finds the elementary cycles in the graph g, stopping after limit cycles have been found if
// limit > 0. Each cycle is returned as the sequence of its vertices starting and ending with its least vertex, and
// the cycles are found in a deterministic order.
// This uses Donald B. Johnson's algorithm presented in
// "Finding All The Elementary Circuits of a Directed Graph", 1975
func FindElementaryCycles(g *DiGraph, limit int) [][]int {
	s := &state{limit: limit}
	start := 0
	for start < g.Order() && !s.full() {
		var rest []int
		for v := start; v < g.Order(); v++ {
			if g.Includes(v) {
				rest = append(rest, v)
			}
		}
		fg := Subgraph(g, rest)
		least, component := leastCyclicComponent(fg)
		if least < 0 {
			break
		}
		s.blocked = map[int]bool{}
		s.blist = map[int]map[int]bool{}
		s.stack = []int{}
		s.circuit(least, least, Subgraph(fg, component))
		start = least + 1
	}
	return s.cycles
}

// leastCyclicComponent returns the least vertex that belongs to a strongly connected component with a cycle, and
// that component. It returns -1 if g is acyclic.
func leastCyclicComponent(g *DiGraph) (int, []int) {
	least := -1
	var found []int
	for _, component := range graph.StrongComponents(g) {
		if len(component) == 1 && !g.HasSelfLoop(component[0]) {
			continue
		}
		if !g.Includes(component[0]) {
			continue
		}
		m := component[0]
		for _, v := range component {
			if v < m {
				m = v
			}
		}
		if least < 0 || m < least {
			least = m
			found = component
		}
	}
	return least, found
}

type state struct {
	limit   int
	blocked map[int]bool
	blist   map[int]map[int]bool
	stack   []int
	cycles  [][]int
}

func (s *state) full() bool {
	return s.limit > 0 && len(s.cycles) >= s.limit
}

func (s *state) unblock(u int) {
	s.blocked[u] = false
	for w := range s.blist[u] {
		delete(s.blist[u], w)
		if s.blocked[w] {
			s.unblock(w)
		}
	}
}

func (s *state) circuit(v int, start int, g *DiGraph) bool {
	f := false
	s.stack = append(s.stack, v)
	s.blocked[v] = true
	for _, w := range g.Successors(v) {
		if s.full() {
			break
		}
		if w == start {
			cycle := make([]int, len(s.stack), len(s.stack)+1)
			copy(cycle, s.stack)
			s.cycles = append(s.cycles, append(cycle, w))
			f = true
		} else if !s.blocked[w] {
			if s.circuit(w, start, g) {
				f = true
			}
		}
	}

	if f {
		s.unblock(v)
	} else {
		for _, w := range g.Successors(v) {
			if s.blist[w] == nil {
				s.blist[w] = map[int]bool{}
			}
			s.blist[w][v] = true
		}
	}
	s.stack = s.stack[:len(s.stack)-1]
	return f
}
