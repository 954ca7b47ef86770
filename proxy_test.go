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
)

func proxyModule(pkg string, vis Visibility) *ModuleDescriptor {
	return &ModuleDescriptor{
		Type:                  TypeName{Pkg: pkg, Names: []string{"M"}},
		ConstructorVisibility: vis,
	}
}

func TestModuleNeedsProxy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		desc string
		m    *ModuleDescriptor
		want bool
	}{
		{"public constructor", proxyModule("a", Public), false},
		{"package-private constructor", proxyModule("a", PackagePrivate), true},
		{"private constructor", proxyModule("a", Private), false},
		{
			"abstract module",
			&ModuleDescriptor{Type: ClassName("a", "M"), Abstract: true, ConstructorVisibility: PackagePrivate},
			false,
		},
		{
			"implicit enclosing instance",
			&ModuleDescriptor{Type: ClassName("a", "Outer", "M"), EnclosingInstance: true, ConstructorVisibility: PackagePrivate},
			false,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.desc, func(t *testing.T) {
			assert.Equal(t, tt.want, moduleNeedsProxy(tt.m))
		})
	}
}

func TestNewModuleExpression(t *testing.T) {
	t.Parallel()

	t.Run("same package calls the constructor", func(t *testing.T) {
		e := newModuleExpression(proxyModule("a", PackagePrivate), "a")
		assert.Equal(t, "new M()", string(e))
	})

	t.Run("foreign package routes through the proxy", func(t *testing.T) {
		e := newModuleExpression(proxyModule("a", PackagePrivate), "b")
		assert.Equal(t, "a.M_Proxy.newInstance()", string(e))
	})

	t.Run("public constructor never proxies", func(t *testing.T) {
		e := newModuleExpression(proxyModule("a", Public), "b")
		assert.Equal(t, "new a.M()", string(e))
	})
}

func TestGenerateModuleProxy(t *testing.T) {
	t.Parallel()

	nested := &ModuleDescriptor{
		Type:                  ClassName("a", "Outer", "M"),
		ConstructorVisibility: PackagePrivate,
	}
	f := generateModuleProxy(nested)
	out := f.Render()

	assert.Contains(t, out, "package a;")
	assert.Contains(t, out, "public final class Outer_M_Proxy")
	assert.Contains(t, out, "public static M newInstance()")
	assert.Contains(t, out, "return new M();")
}
