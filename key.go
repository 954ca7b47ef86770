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

import "strings"

// MultibindingSlot identifies an individual multibinding contribution: the
// module that declared it and the declaring element. Two contributions to
// the same aggregate key differ only in their slot.
type MultibindingSlot struct {
	Module  string
	Element string
}

func (s MultibindingSlot) zero() bool {
	return s == MultibindingSlot{}
}

func (s MultibindingSlot) String() string {
	return s.Module + "#" + s.Element
}

// Key is the canonical identity of a requested dependency. Two keys are
// equal iff their type identity (including type arguments), qualifier
// identity (including member values), and multibinding slot are all equal.
// Keys are the sole identity used across the binding graph.
type Key struct {
	typ       TypeName
	qualifier *Qualifier
	slot      MultibindingSlot
	id        string
}

// KeyOption configures optional parts of a Key.
type KeyOption func(*Key)

// WithQualifier attaches a qualifier to the key.
func WithQualifier(q *Qualifier) KeyOption {
	return func(k *Key) {
		k.qualifier = q
	}
}

// WithSlot tags the key as an individual multibinding contribution.
func WithSlot(s MultibindingSlot) KeyOption {
	return func(k *Key) {
		k.slot = s
	}
}

// NewKey builds the key for a declared type, applying the given options.
func NewKey(t TypeName, opts ...KeyOption) Key {
	k := Key{typ: t}
	for _, opt := range opts {
		opt(&k)
	}
	k.id = k.canonical()
	return k
}

// Type returns the keyed type.
func (k Key) Type() TypeName { return k.typ }

// Qualifier returns the qualifier, or nil.
func (k Key) Qualifier() *Qualifier { return k.qualifier }

// Slot returns the multibinding contribution identity, zero if none.
func (k Key) Slot() MultibindingSlot { return k.slot }

// WithoutSlot returns the aggregate key this contribution feeds.
func (k Key) WithoutSlot() Key {
	return NewKey(k.typ, WithQualifier(k.qualifier))
}

// Equal reports key identity.
func (k Key) Equal(o Key) bool { return k.id == o.id }

// ID is the canonical string form; maps across the graph are keyed by it.
func (k Key) ID() string { return k.id }

func (k Key) String() string {
	var b strings.Builder
	if k.qualifier != nil {
		b.WriteString(k.qualifier.String())
		b.WriteByte(' ')
	}
	b.WriteString(k.typ.String())
	if !k.slot.zero() {
		b.WriteString(" [")
		b.WriteString(k.slot.String())
		b.WriteByte(']')
	}
	return b.String()
}

func (k Key) canonical() string {
	var b strings.Builder
	writeTypeID(&b, k.typ)
	if k.qualifier != nil {
		b.WriteByte('@')
		writeTypeID(&b, k.qualifier.Type)
		for _, v := range k.qualifier.Values {
			b.WriteByte(';')
			b.WriteString(v.Name)
			b.WriteByte('=')
			b.WriteString(v.Value)
		}
	}
	if !k.slot.zero() {
		b.WriteByte('#')
		b.WriteString(k.slot.Module)
		b.WriteByte('#')
		b.WriteString(k.slot.Element)
	}
	return b.String()
}

func writeTypeID(b *strings.Builder, t TypeName) {
	b.WriteString(t.Pkg)
	b.WriteByte('/')
	b.WriteString(strings.Join(t.Names, "."))
	if len(t.Args) > 0 {
		b.WriteByte('<')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeTypeID(b, a)
		}
		b.WriteByte('>')
	}
}

// interner canonicalizes keys so identical requests share one value for the
// lifetime of a compilation. It is owned by exactly one stage at a time.
type interner struct {
	keys map[string]Key
}

func newInterner() *interner {
	return &interner{keys: make(map[string]Key)}
}

func (in *interner) intern(k Key) Key {
	if cached, ok := in.keys[k.id]; ok {
		return cached
	}
	in.keys[k.id] = k
	return k
}
