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
	"fmt"
	"io"
)

// Visualize writes a binding graph in DOT format to w. Output is a
// deterministic function of the graph: nodes appear in arena order, child
// graphs as nested clusters. Dependencies satisfied by an enclosing
// component render as dashed edges.
func Visualize(g *BindingGraph, w io.Writer) {
	io.WriteString(w, "digraph {\n\trankdir=RL;\n\tgraph [compound=true];\n")
	visualizeGraph(g, w, "b")
	io.WriteString(w, "}\n")
}

func visualizeGraph(g *BindingGraph, w io.Writer, prefix string) {
	for h, b := range g.nodes {
		fmt.Fprintf(w, "\t%s%d [label=%q shape=box];\n", prefix, h, fmt.Sprintf("%v\n%v", b.Key(), b.Kind()))
	}
	for h := range g.nodes {
		for _, e := range g.edges[h] {
			fmt.Fprintf(w, "\t%s%d -> %s%d [label=%q];\n", prefix, e.src, prefix, e.dst, e.kind.String())
		}
		for _, e := range g.extern[h] {
			fmt.Fprintf(w, "\t%s%d -> %q [style=dashed label=%q];\n", prefix, e.src, e.target.Key().String(), e.kind.String())
		}
	}
	for i, sub := range g.subgraphs {
		fmt.Fprintf(w, "\tsubgraph cluster_%s%d {\n\t\tlabel=%q;\n", prefix, i, sub.component.Type.String())
		visualizeGraph(sub, w, fmt.Sprintf("%s%dc", prefix, i))
		io.WriteString(w, "\t}\n")
	}
}
