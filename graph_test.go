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

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphArenaHandles(t *testing.T) {
	t.Parallel()

	sources := newFakeSources().
		addInjectable(typeDep, nil).
		addInjectable(typeThing, nil, param(typeDep, Instance))
	g := buildGraph(component(entry("thing", typeThing, Instance)), sources)

	require.Equal(t, 2, g.Order())
	for h := 0; h < g.Order(); h++ {
		b := g.Lookup(h)
		got, ok := g.handleOf(b)
		require.True(t, ok)
		assert.Equal(t, h, got, "handles are stable")
	}

	thing, _ := g.ResolvedBinding(NewKey(typeThing))
	h, _ := g.handleOf(thing)
	assert.Equal(t, []int{1}, g.EdgesFrom(h))
}

func TestNonDeferrableView(t *testing.T) {
	t.Parallel()

	typeA := ClassName("test", "A")
	typeB := ClassName("test", "B")
	sources := newFakeSources().
		addInjectable(typeA, nil, param(typeB, Instance)).
		addInjectable(typeB, nil, param(typeA, Provider))
	g := buildGraph(component(entry("a", typeA, Instance)), sources)

	a, _ := g.ResolvedBinding(NewKey(typeA))
	b, _ := g.ResolvedBinding(NewKey(typeB))
	ha, _ := g.handleOf(a)
	hb, _ := g.handleOf(b)

	view := nonDeferrableGraph{g: g}
	assert.Equal(t, []int{hb}, view.EdgesFrom(ha), "instance edge survives")
	assert.Empty(t, view.EdgesFrom(hb), "provider edge is deferrable")
}

func TestVisualize(t *testing.T) {
	t.Parallel()

	creator := ClassName("test", "ChildComponent", "Factory")
	child := &ComponentDescriptor{
		Type:        ClassName("test", "ChildComponent"),
		CreatorType: &creator,
		EntryPoints: []EntryPoint{entry("thing", typeThing, Instance)},
	}
	parent := component(entry("dep", typeDep, Instance))
	parent.Subcomponents = []*ComponentDescriptor{child}

	sources := newFakeSources().
		addInjectable(typeDep, nil).
		addInjectable(typeThing, nil, param(typeDep, Instance))
	g := buildGraph(parent, sources)

	var buf strings.Builder
	Visualize(g, &buf)
	out := buf.String()

	assert.Contains(t, out, "digraph {")
	assert.Contains(t, out, "test.Thing")
	assert.Contains(t, out, "subgraph cluster_b0")
	assert.Contains(t, out, "style=dashed", "ancestor dependencies render dashed")

	var second strings.Builder
	Visualize(g, &second)
	assert.Equal(t, out, second.String(), "visualization is deterministic")
}
