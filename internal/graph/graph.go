// Copyright (c) 2026 Daggen Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package graph provides directed-graph algorithms over an arena of nodes
// addressed by stable integer handles.
package graph

// Graph is a directed graph whose nodes are the integers [0, Order).
type Graph interface {
	// Order is the number of nodes in the graph.
	Order() int

	// EdgesFrom returns the handles u has an edge to.
	EdgesFrom(u int) []int
}

const (
	unvisited = iota
	visiting
	visited
)

// IsAcyclic checks whether the graph contains a cycle. If one exists, the
// second return value is the first cycle found, as a handle path whose
// first and last elements are equal.
func IsAcyclic(g Graph) (bool, []int) {
	info := make([]int, g.Order())
	for u := 0; u < g.Order(); u++ {
		if info[u] != unvisited {
			continue
		}
		if cycle := introducesCycle(g, u, info); cycle != nil {
			return false, cycle
		}
	}
	return true, nil
}

// introducesCycle runs a depth-first walk from u and returns the first
// back-edge path found.
func introducesCycle(g Graph, u int, info []int) []int {
	var path []int
	var visit func(int) []int
	visit = func(u int) []int {
		info[u] = visiting
		path = append(path, u)
		for _, v := range g.EdgesFrom(u) {
			switch info[v] {
			case visiting:
				// Trim the path down to the cycle itself and close it.
				for i, n := range path {
					if n == v {
						return append(append([]int(nil), path[i:]...), v)
					}
				}
			case unvisited:
				if cycle := visit(v); cycle != nil {
					return cycle
				}
			}
		}
		info[u] = visited
		path = path[:len(path)-1]
		return nil
	}
	return visit(u)
}
