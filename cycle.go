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

package daggen

import "go.daggen.dev/daggen/internal/graph"

// detectCycle checks g for a dependency cycle that no deferrable edge
// breaks. Edges carrying Provider, Lazy, ProviderOfLazy, Producer, or
// Produced requests are excluded from the walk: a cycle traversing one of
// them is legal, and that edge marks the break point for emission.
//
// A chain of delegate bindings returning to an already-visited key is a
// cycle under this rule: delegate dependencies are instance requests, so
// the indirection exception never applies to a pure delegate chain.
func detectCycle(g *BindingGraph) (errDependencyCycle, bool) {
	ok, cycle := graph.IsAcyclic(nonDeferrableGraph{g: g})
	if ok {
		return errDependencyCycle{}, false
	}

	path := make([]cycleEntry, 0, len(cycle))
	for _, h := range cycle {
		b := g.Lookup(h)
		path = append(path, cycleEntry{Key: b.Key(), Origin: b.Origin()})
	}
	return errDependencyCycle{Path: path}, true
}
