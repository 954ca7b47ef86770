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

// edge is a dependency between two bindings of the same graph, addressed by
// their arena handles.
type edge struct {
	src, dst int
	kind     RequestKind
	nullable bool
}

// externalEdge is a dependency satisfied by an enclosing component's graph.
type externalEdge struct {
	src      int
	target   *Binding
	kind     RequestKind
	nullable bool
}

// missingBinding records an unresolved key and every site that requested
// it.
type missingBinding struct {
	key         Key
	requestedBy []BindingOrigin
}

// duplicateBinding records two distinct bindings for the same key.
type duplicateBinding struct {
	key           Key
	first, second BindingOrigin
}

// BindingGraph is the rooted graph of one component: an arena of bindings
// with stable integer handles, edges carrying request kinds, and child
// graphs for subcomponents hanging off their creator bindings. A graph is
// built once and never mutated afterwards.
type BindingGraph struct {
	component *ComponentDescriptor
	parent    *BindingGraph

	nodes   []*Binding
	handles map[string]int
	edges   [][]edge
	extern  [][]externalEdge

	roots []rootRequest

	missing    []*missingBinding
	missingIdx map[string]int
	duplicates []duplicateBinding

	subgraphs []*BindingGraph
}

func newBindingGraph(c *ComponentDescriptor, parent *BindingGraph) *BindingGraph {
	return &BindingGraph{
		component:  c,
		parent:     parent,
		handles:    make(map[string]int),
		missingIdx: make(map[string]int),
	}
}

// Component returns the component the graph was built for.
func (g *BindingGraph) Component() *ComponentDescriptor { return g.component }

// Parent returns the enclosing component's graph, or nil for a root.
func (g *BindingGraph) Parent() *BindingGraph { return g.parent }

// Order is the number of bindings in the arena.
func (g *BindingGraph) Order() int { return len(g.nodes) }

// EdgesFrom returns the handles of u's local dependencies.
func (g *BindingGraph) EdgesFrom(u int) []int {
	out := make([]int, 0, len(g.edges[u]))
	for _, e := range g.edges[u] {
		out = append(out, e.dst)
	}
	return out
}

// newNode installs b into the arena and returns its handle.
func (g *BindingGraph) newNode(b *Binding) int {
	h := len(g.nodes)
	b.owner = g.component.Type
	g.nodes = append(g.nodes, b)
	g.edges = append(g.edges, nil)
	g.extern = append(g.extern, nil)
	g.handles[b.key.ID()] = h
	return h
}

// Lookup returns the binding for a handle. It panics on an invalid handle.
func (g *BindingGraph) Lookup(h int) *Binding { return g.nodes[h] }

// Bindings returns the graph's own bindings in installation order.
func (g *BindingGraph) Bindings() []*Binding { return g.nodes }

// Subgraphs returns the child graphs in declaration order.
func (g *BindingGraph) Subgraphs() []*BindingGraph { return g.subgraphs }

// localBinding resolves k in this graph only.
func (g *BindingGraph) localBinding(k Key) (*Binding, bool) {
	if h, ok := g.handles[k.ID()]; ok {
		return g.nodes[h], true
	}
	return nil, false
}

// ResolvedBinding resolves k in this graph or the nearest enclosing graph.
func (g *BindingGraph) ResolvedBinding(k Key) (*Binding, bool) {
	for cur := g; cur != nil; cur = cur.parent {
		if b, ok := cur.localBinding(k); ok {
			return b, true
		}
	}
	return nil, false
}

// handleOf returns the arena handle of a binding resolved locally.
func (g *BindingGraph) handleOf(b *Binding) (int, bool) {
	h, ok := g.handles[b.key.ID()]
	if !ok || g.nodes[h] != b {
		return 0, false
	}
	return h, true
}

func (g *BindingGraph) addEdge(src int, target *Binding, req DependencyRequest) {
	if h, ok := g.handleOf(target); ok {
		g.edges[src] = append(g.edges[src], edge{src: src, dst: h, kind: req.Kind, nullable: req.Nullable})
		return
	}
	g.extern[src] = append(g.extern[src], externalEdge{src: src, target: target, kind: req.Kind, nullable: req.Nullable})
}

func (g *BindingGraph) addMissing(k Key, requestedBy BindingOrigin) {
	if i, ok := g.missingIdx[k.ID()]; ok {
		g.missing[i].requestedBy = append(g.missing[i].requestedBy, requestedBy)
		return
	}
	g.missingIdx[k.ID()] = len(g.missing)
	g.missing = append(g.missing, &missingBinding{key: k, requestedBy: []BindingOrigin{requestedBy}})
}

// IsResolved reports whether every dependency edge in the graph and its
// subgraphs resolved to exactly one binding.
func (g *BindingGraph) IsResolved() bool {
	if len(g.missing) > 0 {
		return false
	}
	for _, sub := range g.subgraphs {
		if !sub.IsResolved() {
			return false
		}
	}
	return true
}

// nonDeferrableGraph restricts a binding graph to edges whose request kind
// cannot be deferred. Cycle detection runs on this view: a back-edge here
// is a dependency cycle with no indirection to break it.
type nonDeferrableGraph struct {
	g *BindingGraph
}

func (v nonDeferrableGraph) Order() int { return v.g.Order() }

func (v nonDeferrableGraph) EdgesFrom(u int) []int {
	var out []int
	for _, e := range v.g.edges[u] {
		if !e.kind.deferrable() {
			out = append(out, e.dst)
		}
	}
	return out
}
