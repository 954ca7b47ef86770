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

	"go.daggen.dev/daggen/internal/srctree"
)

// switchingProvider is the fast-init dispatcher state for one component: a
// single nested type covers every eligible binding, keyed by an integer id
// assigned at first demand in stable iteration order. The dispatcher is
// not inherently thread-safe; scoped bindings always compose a memoizing
// wrapper over it.
type switchingProvider struct {
	ids   map[string]int
	order []*Binding
}

// switchingExpression returns a dispatcher instance for b, assigning its
// switch id on first demand. The id counter grows monotonically for the
// lifetime of the component implementation.
func (c *ComponentImplementation) switchingExpression(b *Binding) srctree.Code {
	if c.switching == nil {
		c.switching = &switchingProvider{ids: make(map[string]int)}
	}
	sp := c.switching
	id, ok := sp.ids[b.Key().ID()]
	if !ok {
		id = len(sp.order)
		sp.ids[b.Key().ID()] = id
		sp.order = append(sp.order, b)
	}

	valueType := "Object"
	if b.Key().Type().AccessibleFrom(c.pkg) {
		valueType = c.typeRef(b.Key().Type())
	}
	return srctree.Codef("new SwitchingProvider<%s>(%d)", valueType, id)
}

// sealSwitchingProvider emits the dispatcher type once the component's ids
// stop growing. Each case constructs the instance for its binding; an
// unknown id is a compiler-internal failure surfaced at runtime as an
// assertion error.
func (c *ComponentImplementation) sealSwitchingProvider() *srctree.Type {
	c.suppress("unchecked")

	get := &srctree.Method{
		Name:       "get",
		Visibility: "public",
		Override:   true,
		Returns:    "T",
	}
	get.Body = append(get.Body, srctree.Code("switch (id) {"))
	// Case bodies may demand further switching ids; the index loop picks
	// up entries appended mid-seal.
	for i := 0; i < len(c.switching.order); i++ {
		get.Body = append(get.Body, srctree.Codef("case %d: return (T) %s;", i, c.directExpression(c.switching.order[i])))
	}
	get.Body = append(get.Body,
		srctree.Code("default: throw new AssertionError(id);"),
		srctree.Code("}"),
	)

	return &srctree.Type{
		Name:       "SwitchingProvider<T>",
		Visibility: "private",
		Final:      true,
		Implements: []string{"Provider<T>"},
		Fields: []*srctree.Field{
			{Name: "id", Type: "int", Final: true},
		},
		Methods: []*srctree.Method{
			{
				Name:   "SwitchingProvider",
				Params: []srctree.Param{{Name: "id", Type: "int"}},
				Body:   []srctree.Code{srctree.Code("this.id = id;")},
			},
			get,
		},
	}
}

// switchID looks up an assigned dispatcher id, failing loudly when the
// binding never demanded one.
func (c *ComponentImplementation) switchID(b *Binding) int {
	if c.switching == nil {
		panic(fmt.Sprintf("daggen internal: no switching provider on %s", c.name))
	}
	id, ok := c.switching.ids[b.Key().ID()]
	if !ok {
		panic(fmt.Sprintf("daggen internal: no switch id for %v", b))
	}
	return id
}
