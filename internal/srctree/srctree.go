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

// Package srctree models generated source as pure data: packages, type
// declarations, fields, methods, and statements. The core hands these
// values to the output sink; it never formats text itself. The renderer in
// this package exists for the sink boundary and for golden tests, and its
// output is a deterministic function of the tree.
package srctree

import (
	"fmt"
	"io"
	"strings"
)

// Code is a single expression or statement, already composed. Expressions
// are built with Codef and compose textually; the tree keeps them opaque.
type Code string

// Codef builds a Code value.
func Codef(format string, args ...interface{}) Code {
	return Code(fmt.Sprintf(format, args...))
}

// Param is a single method parameter.
type Param struct {
	Name string
	Type string
}

// Field is a field declaration on a generated type.
type Field struct {
	Name  string
	Type  string
	Final bool
}

// Method is a method or constructor declaration. A constructor has an empty
// Returns and a Name equal to its declaring type's.
type Method struct {
	Name       string
	Visibility string
	Static     bool
	Override   bool
	Params     []Param
	Returns    string
	Body       []Code
}

// Type is a generated type declaration.
type Type struct {
	Name        string
	Kind        string // "class" or "interface"
	Visibility  string
	Static      bool
	Final       bool
	Extends     string
	Implements  []string
	Suppresses  []string // warning names suppressed on the declaration
	Fields      []*Field
	Methods     []*Method
	Nested      []*Type
}

// File is one generated compilation unit. Format is a hint to the sink
// that the user asked for formatted output; the core itself never formats
// text.
type File struct {
	Package string
	Types   []*Type
	Format  bool
}

// Render writes the file as text. Identical trees render byte-identically.
func (f *File) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "package %s;\n", f.Package)
	for _, t := range f.Types {
		b.WriteByte('\n')
		t.render(&b, 0)
	}
	return b.String()
}

func indent(w io.Writer, depth int) {
	io.WriteString(w, strings.Repeat("  ", depth))
}

func (t *Type) render(w io.Writer, depth int) {
	if len(t.Suppresses) > 0 {
		indent(w, depth)
		fmt.Fprintf(w, "@SuppressWarnings(\"%s\")\n", strings.Join(t.Suppresses, "\", \""))
	}
	indent(w, depth)
	var mods []string
	if t.Visibility != "" {
		mods = append(mods, t.Visibility)
	}
	if t.Static {
		mods = append(mods, "static")
	}
	if t.Final {
		mods = append(mods, "final")
	}
	kind := t.Kind
	if kind == "" {
		kind = "class"
	}
	mods = append(mods, kind, t.Name)
	io.WriteString(w, strings.Join(mods, " "))
	if t.Extends != "" {
		fmt.Fprintf(w, " extends %s", t.Extends)
	}
	if len(t.Implements) > 0 {
		fmt.Fprintf(w, " implements %s", strings.Join(t.Implements, ", "))
	}
	io.WriteString(w, " {\n")
	for _, f := range t.Fields {
		indent(w, depth+1)
		if f.Final {
			fmt.Fprintf(w, "private final %s %s;\n", f.Type, f.Name)
		} else {
			fmt.Fprintf(w, "private %s %s;\n", f.Type, f.Name)
		}
	}
	for _, m := range t.Methods {
		io.WriteString(w, "\n")
		m.render(w, depth+1)
	}
	for _, n := range t.Nested {
		io.WriteString(w, "\n")
		n.render(w, depth+1)
	}
	indent(w, depth)
	io.WriteString(w, "}\n")
}

func (m *Method) render(w io.Writer, depth int) {
	if m.Override {
		indent(w, depth)
		io.WriteString(w, "@Override\n")
	}
	indent(w, depth)
	var mods []string
	if m.Visibility != "" {
		mods = append(mods, m.Visibility)
	}
	if m.Static {
		mods = append(mods, "static")
	}
	if m.Returns != "" {
		mods = append(mods, m.Returns)
	}
	mods = append(mods, m.Name)
	io.WriteString(w, strings.Join(mods, " "))
	io.WriteString(w, "(")
	for i, p := range m.Params {
		if i > 0 {
			io.WriteString(w, ", ")
		}
		fmt.Fprintf(w, "%s %s", p.Type, p.Name)
	}
	io.WriteString(w, ") {\n")
	for _, c := range m.Body {
		indent(w, depth+1)
		io.WriteString(w, string(c))
		io.WriteString(w, "\n")
	}
	indent(w, depth)
	io.WriteString(w, "}\n")
}
