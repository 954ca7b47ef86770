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

package srctree

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleFile() *File {
	return &File{
		Package: "test",
		Types: []*Type{{
			Name:       "DaggerComponent",
			Visibility: "public",
			Final:      true,
			Implements: []string{"Component"},
			Suppresses: []string{"unchecked"},
			Fields: []*Field{
				{Name: "fooProvider", Type: "Provider<Foo>"},
				{Name: "bar", Type: "Bar", Final: true},
			},
			Methods: []*Method{
				{
					Name:       "foo",
					Visibility: "public",
					Override:   true,
					Returns:    "Foo",
					Body:       []Code{Codef("return %s.get();", "fooProvider")},
				},
			},
			Nested: []*Type{{
				Name:       "SwitchingProvider<T>",
				Visibility: "private",
				Final:      true,
				Implements: []string{"Provider<T>"},
			}},
		}},
	}
}

func TestRender(t *testing.T) {
	t.Parallel()

	out := sampleFile().Render()
	assert.Contains(t, out, "package test;")
	assert.Contains(t, out, `@SuppressWarnings("unchecked")`)
	assert.Contains(t, out, "public final class DaggerComponent implements Component {")
	assert.Contains(t, out, "private Provider<Foo> fooProvider;")
	assert.Contains(t, out, "private final Bar bar;")
	assert.Contains(t, out, "@Override")
	assert.Contains(t, out, "public Foo foo() {")
	assert.Contains(t, out, "return fooProvider.get();")
	assert.Contains(t, out, "private final class SwitchingProvider<T> implements Provider<T> {")
}

func TestRenderDeterminism(t *testing.T) {
	t.Parallel()

	assert.Equal(t, sampleFile().Render(), sampleFile().Render())
}

func TestCodef(t *testing.T) {
	t.Parallel()

	c := Codef("DoubleCheck.provider(%s)", Codef("%s_Factory.create()", "Thing"))
	assert.Equal(t, Code("DoubleCheck.provider(Thing_Factory.create())"), c)
}
