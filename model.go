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
	"strings"
)

// Visibility describes how widely a declaration can be referenced, following
// the source language's package-based access rules.
type Visibility int

const (
	// Public declarations are referenceable from any package.
	Public Visibility = iota
	// PackagePrivate declarations are referenceable only from their
	// declaring package.
	PackagePrivate
	// Private declarations are referenceable only from their declaring
	// type; for the purposes of code generation they are never accessible
	// from a generated component.
	Private
)

func (v Visibility) String() string {
	switch v {
	case Public:
		return "public"
	case PackagePrivate:
		return "package-private"
	case Private:
		return "private"
	}
	panic(fmt.Sprintf("unknown visibility %d", int(v)))
}

// TypeName identifies a (possibly nested, possibly parameterized) type from
// the front-end's type model. It is pure data: the front-end populates it
// fully and the core never consults the source model again.
type TypeName struct {
	// Pkg is the declaring package.
	Pkg string

	// Names holds the simple names from the outermost type to the type
	// itself, e.g. ["Outer", "Inner"].
	Names []string

	// Args holds type arguments, if any.
	Args []TypeName

	// Visibility of the declaration itself. Accessibility of the full type
	// also depends on the visibility of every type argument.
	Visibility Visibility
}

// ClassName builds a TypeName for a public type; names after the first
// denote nested types.
func ClassName(pkg string, names ...string) TypeName {
	return TypeName{Pkg: pkg, Names: names}
}

// Simple returns the innermost simple name.
func (t TypeName) Simple() string {
	if len(t.Names) == 0 {
		return ""
	}
	return t.Names[len(t.Names)-1]
}

// JoinedName returns the nested simple names joined with underscores, the
// convention used for generated peer types ("Outer_Inner").
func (t TypeName) JoinedName() string {
	return strings.Join(t.Names, "_")
}

// WithArgs returns a copy of t parameterized with the given arguments.
func (t TypeName) WithArgs(args ...TypeName) TypeName {
	t.Args = args
	return t
}

// Raw returns the type without its type arguments.
func (t TypeName) Raw() TypeName {
	t.Args = nil
	return t
}

// IsRaw reports whether the type carries no type arguments.
func (t TypeName) IsRaw() bool {
	return len(t.Args) == 0
}

// Equal reports structural equality including type arguments.
func (t TypeName) Equal(o TypeName) bool {
	if t.Pkg != o.Pkg || len(t.Names) != len(o.Names) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Names {
		if t.Names[i] != o.Names[i] {
			return false
		}
	}
	for i := range t.Args {
		if !t.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// RawAccessibleFrom reports whether the type's erasure can be referenced
// from pkg, ignoring type arguments.
func (t TypeName) RawAccessibleFrom(pkg string) bool {
	switch t.Visibility {
	case Public:
		return true
	case PackagePrivate:
		return t.Pkg == pkg
	case Private:
		return false
	}
	panic(fmt.Sprintf("unknown visibility %d", int(t.Visibility)))
}

// AccessibleFrom reports whether the full type, including every type
// argument, can be referenced from pkg. An inaccessible type forces the
// emitter onto a raw reference plus an unchecked cast where the receiver
// permits one.
func (t TypeName) AccessibleFrom(pkg string) bool {
	if !t.RawAccessibleFrom(pkg) {
		return false
	}
	for _, a := range t.Args {
		if !a.AccessibleFrom(pkg) {
			return false
		}
	}
	return true
}

func (t TypeName) String() string {
	var b strings.Builder
	if t.Pkg != "" {
		b.WriteString(t.Pkg)
		b.WriteByte('.')
	}
	b.WriteString(strings.Join(t.Names, "."))
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(a.String())
		}
		b.WriteByte('>')
	}
	return b.String()
}

// Qualifier distinguishes two keys of the same type. Member values take part
// in identity.
type Qualifier struct {
	Type   TypeName
	Values []QualifierValue
}

// QualifierValue is a single named member value on a qualifier annotation.
type QualifierValue struct {
	Name  string
	Value string
}

// Equal compares qualifier identity including member values.
func (q *Qualifier) Equal(o *Qualifier) bool {
	if q == nil || o == nil {
		return q == o
	}
	if !q.Type.Equal(o.Type) || len(q.Values) != len(o.Values) {
		return false
	}
	for i := range q.Values {
		if q.Values[i] != o.Values[i] {
			return false
		}
	}
	return true
}

func (q *Qualifier) String() string {
	if q == nil {
		return ""
	}
	var b strings.Builder
	b.WriteByte('@')
	b.WriteString(q.Type.String())
	if len(q.Values) > 0 {
		b.WriteByte('(')
		for i, v := range q.Values {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%s", v.Name, v.Value)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Parameter is a single dependency of an injectable constructor, a module
// method, or a members-injection site.
type Parameter struct {
	Name     string
	Key      Key
	Kind     RequestKind
	Nullable bool

	// Assisted parameters are supplied by the caller of an assisted
	// factory rather than by the graph.
	Assisted bool
}

// InjectableType describes a type whose constructor was discovered as
// injection-annotated by the front-end.
type InjectableType struct {
	Type   TypeName
	Scope  *Scope
	Params []Parameter
}

// Assisted reports whether any constructor parameter is assisted, which
// turns the discovered binding into an assisted injection.
func (i *InjectableType) Assisted() bool {
	for _, p := range i.Params {
		if p.Assisted {
			return true
		}
	}
	return false
}

// AssistedFactory describes a user-declared factory type whose single method
// constructs an assisted-injection target.
type AssistedFactory struct {
	Type   TypeName
	Method string
	Target Key
}

// MembersInjection describes the injected members of a type.
type MembersInjection struct {
	Type    TypeName
	Members []Parameter
}

// Sources is the front-end collaborator: the annotation reader hands the
// core fully-resolved descriptors through it. Implementations must be
// deterministic for identical inputs.
type Sources interface {
	// InjectableType returns the injection-annotated constructor for t, if
	// one exists.
	InjectableType(t TypeName) (*InjectableType, bool)

	// AssistedFactory returns the assisted-factory declaration for t, if t
	// is one.
	AssistedFactory(t TypeName) (*AssistedFactory, bool)

	// MembersInjection returns the injected members of t, if any.
	MembersInjection(t TypeName) (*MembersInjection, bool)

	// Pending reports whether t is expected to be produced by a later
	// generation round. A component touching a pending type is deferred.
	Pending(t TypeName) bool
}
