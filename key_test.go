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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyEquality(t *testing.T) {
	t.Parallel()

	t.Run("same type", func(t *testing.T) {
		assert.True(t, NewKey(typeThing).Equal(NewKey(typeThing)))
	})

	t.Run("different types", func(t *testing.T) {
		assert.False(t, NewKey(typeThing).Equal(NewKey(typeDep)))
	})

	t.Run("type arguments participate", func(t *testing.T) {
		setOfThing := NewKey(setTypeName.WithArgs(typeThing))
		setOfDep := NewKey(setTypeName.WithArgs(typeDep))
		assert.False(t, setOfThing.Equal(setOfDep))
		assert.True(t, setOfThing.Equal(NewKey(setTypeName.WithArgs(typeThing))))
	})

	t.Run("qualifier identity", func(t *testing.T) {
		q := &Qualifier{Type: ClassName("test", "Named")}
		assert.False(t, NewKey(typeThing).Equal(NewKey(typeThing, WithQualifier(q))))
		assert.True(t, NewKey(typeThing, WithQualifier(q)).Equal(NewKey(typeThing, WithQualifier(q))))
	})

	t.Run("qualifier member values participate", func(t *testing.T) {
		named := ClassName("test", "Named")
		a := &Qualifier{Type: named, Values: []QualifierValue{{Name: "value", Value: `"a"`}}}
		b := &Qualifier{Type: named, Values: []QualifierValue{{Name: "value", Value: `"b"`}}}
		assert.False(t, NewKey(typeThing, WithQualifier(a)).Equal(NewKey(typeThing, WithQualifier(b))))
	})

	t.Run("multibinding slot participates", func(t *testing.T) {
		slot := MultibindingSlot{Module: "test.M", Element: "provideThing"}
		tagged := NewKey(typeThing, WithSlot(slot))
		assert.False(t, tagged.Equal(NewKey(typeThing)))
		assert.True(t, tagged.WithoutSlot().Equal(NewKey(typeThing)))
	})
}

func TestInterner(t *testing.T) {
	t.Parallel()

	in := newInterner()
	a := in.intern(NewKey(typeThing))
	b := in.intern(NewKey(typeThing))
	assert.Equal(t, a, b)
	assert.Len(t, in.keys, 1)

	c := in.intern(NewKey(typeDep))
	assert.False(t, a.Equal(c))
	assert.Len(t, in.keys, 2)
}

func TestWrapperKeys(t *testing.T) {
	t.Parallel()

	t.Run("set aggregate", func(t *testing.T) {
		agg := setKeyOf(NewKey(typeThing))
		require.True(t, IsSetKey(agg))
		assert.Equal(t, "Thing", SetTypeOf(agg.Type()).ElementType().Simple())
	})

	t.Run("optional round trip", func(t *testing.T) {
		opt := optionalKeyOf(NewKey(typeThing))
		elem, ok := asOptionalKey(opt)
		require.True(t, ok)
		assert.True(t, elem.Equal(NewKey(typeThing)))
	})

	t.Run("non-optional does not unwrap", func(t *testing.T) {
		_, ok := asOptionalKey(NewKey(typeThing))
		assert.False(t, ok)
	})

	t.Run("members injector round trip", func(t *testing.T) {
		mi := membersInjectorKey(NewKey(typeThing))
		_, elem, ok := asMembersInjectorKey(mi)
		require.True(t, ok)
		assert.True(t, elem.Equal(NewKey(typeThing)))
	})
}

func TestSetTypeUnwrap(t *testing.T) {
	t.Parallel()

	setOfProviders := setTypeName.WithArgs(providerTypeName.WithArgs(typeThing))
	st := SetTypeOf(setOfProviders)
	require.True(t, st.ElementsAreTypeOf(providerTypeName))
	assert.True(t, st.UnwrappedElementType(providerTypeName).Equal(typeThing))

	assert.Panics(t, func() {
		SetTypeOf(setTypeName).ElementType()
	})
	assert.Panics(t, func() {
		SetTypeOf(setTypeName.WithArgs(typeThing)).UnwrappedElementType(providerTypeName)
	})
}

func TestAccessibility(t *testing.T) {
	t.Parallel()

	pub := TypeName{Pkg: "a", Names: []string{"Pub"}, Visibility: Public}
	pkgPriv := TypeName{Pkg: "a", Names: []string{"Hidden"}, Visibility: PackagePrivate}
	priv := TypeName{Pkg: "a", Names: []string{"Inner", "Secret"}, Visibility: Private}

	assert.True(t, pub.AccessibleFrom("b"))
	assert.True(t, pkgPriv.AccessibleFrom("a"))
	assert.False(t, pkgPriv.AccessibleFrom("b"))
	assert.False(t, priv.AccessibleFrom("a"))

	t.Run("arguments constrain the whole type", func(t *testing.T) {
		wrapped := pub.WithArgs(pkgPriv)
		assert.False(t, wrapped.AccessibleFrom("b"))
		assert.True(t, wrapped.AccessibleFrom("a"))
		assert.True(t, wrapped.RawAccessibleFrom("b"))
	})
}
