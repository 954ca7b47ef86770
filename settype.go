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

import "fmt"

// Well-known wrapper types of the runtime framework and the collection
// library. The emitter recognizes these to unwrap elements and to derive
// aggregate keys for multibindings.
var (
	setTypeName             = TypeName{Pkg: "java.util", Names: []string{"Set"}}
	mapTypeName             = TypeName{Pkg: "java.util", Names: []string{"Map"}}
	optionalTypeName        = TypeName{Pkg: "java.util", Names: []string{"Optional"}}
	providerTypeName        = TypeName{Pkg: "javax.inject", Names: []string{"Provider"}}
	lazyTypeName            = TypeName{Pkg: "dagger", Names: []string{"Lazy"}}
	membersInjectorTypeName = TypeName{Pkg: "dagger", Names: []string{"MembersInjector"}}
)

func sameRawType(t, o TypeName) bool {
	return t.Raw().Equal(o.Raw())
}

// wildcardTypeName stands in for a wildcard type argument.
var wildcardTypeName = TypeName{Names: []string{"?"}}

// hasWildcard reports whether any type argument, at any depth, is a
// wildcard.
func hasWildcard(t TypeName) bool {
	for _, a := range t.Args {
		if a.Equal(wildcardTypeName) || hasWildcard(a) {
			return true
		}
	}
	return false
}

// setKeyOf derives the aggregate key a set contribution feeds.
func setKeyOf(elem Key) Key {
	return NewKey(setTypeName.WithArgs(elem.Type()), WithQualifier(elem.Qualifier()))
}

// mapKeyOf derives the aggregate key a map contribution feeds.
func mapKeyOf(value Key, mapKeyType TypeName) Key {
	return NewKey(mapTypeName.WithArgs(mapKeyType, value.Type()), WithQualifier(value.Qualifier()))
}

// optionalKeyOf wraps a key in the optional container.
func optionalKeyOf(elem Key) Key {
	return NewKey(optionalTypeName.WithArgs(elem.Type()), WithQualifier(elem.Qualifier()))
}

// asOptionalKey unwraps an Optional<T> key, returning the key for T.
func asOptionalKey(k Key) (Key, bool) {
	if !sameRawType(k.Type(), optionalTypeName) || len(k.Type().Args) != 1 {
		return Key{}, false
	}
	return NewKey(k.Type().Args[0], WithQualifier(k.Qualifier())), true
}

// membersInjectorKey wraps a key in the members-injector handle type.
func membersInjectorKey(elem Key) Key {
	return NewKey(membersInjectorTypeName.WithArgs(elem.Type()))
}

// asMembersInjectorKey unwraps a MembersInjector<T> key.
func asMembersInjectorKey(k Key) (mi Key, elem Key, ok bool) {
	if !sameRawType(k.Type(), membersInjectorTypeName) || len(k.Type().Args) != 1 {
		return Key{}, Key{}, false
	}
	return k, NewKey(k.Type().Args[0]), true
}

// SetType is a view over a set-typed key, exposing the element type and
// unwrap operations for framework wrapper elements (e.g. an element of a
// set of providers).
type SetType struct {
	declared TypeName
}

// IsSetType reports whether t is the set collection type.
func IsSetType(t TypeName) bool {
	return sameRawType(t, setTypeName)
}

// IsSetKey reports whether k's type is a set.
func IsSetKey(k Key) bool {
	return IsSetType(k.Type())
}

// SetTypeOf returns the SetType view of t. It panics if t is not a set.
func SetTypeOf(t TypeName) SetType {
	if !IsSetType(t) {
		panic(fmt.Sprintf("%v must be a Set", t))
	}
	return SetType{declared: t}
}

// IsRawType reports whether the set carries no element type.
func (s SetType) IsRawType() bool {
	return len(s.declared.Args) == 0
}

// ElementType returns the set's element type. It panics for a raw set.
func (s SetType) ElementType() TypeName {
	if s.IsRawType() {
		panic(fmt.Sprintf("%v is a raw Set", s.declared))
	}
	return s.declared.Args[0]
}

// ElementsAreTypeOf reports whether the element type is an instance of the
// given wrapper type.
func (s SetType) ElementsAreTypeOf(wrapper TypeName) bool {
	return !s.IsRawType() && sameRawType(s.ElementType(), wrapper)
}

// UnwrappedElementType returns T when the element type is Wrapper<T>. It
// panics when the elements are not instances of the wrapper.
func (s SetType) UnwrappedElementType(wrapper TypeName) TypeName {
	if !s.ElementsAreTypeOf(wrapper) {
		panic(fmt.Sprintf("expected elements to be %v, but this type is %v", wrapper, s.declared))
	}
	return s.ElementType().Args[0]
}
