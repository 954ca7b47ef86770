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
	"strconv"
	"unicode"
)

// GeneratedComponentName returns the implementation type name for a
// component: underscore-joined simple names with the Dagger prefix on the
// outermost, so pkg.Outer.Inner becomes DaggerOuter_Inner.
func GeneratedComponentName(t TypeName) string {
	return "Dagger" + t.JoinedName()
}

// factoryName returns the pre-generated static factory type for an
// injectable type.
func factoryName(t TypeName) string {
	return t.JoinedName() + "_Factory"
}

// provisionFactoryName returns the pre-generated factory type for a module
// method, e.g. TestModule_ProvideStringFactory.
func provisionFactoryName(module TypeName, method string) string {
	return module.JoinedName() + "_" + upperCamel(method) + "Factory"
}

// membersInjectorName returns the pre-generated members injector type.
func membersInjectorName(t TypeName) string {
	return t.JoinedName() + "_MembersInjector"
}

func lowerCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}

func upperCamel(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// nameAllocator hands out unique member names within one generated type,
// suffixing repeats with a counter. Allocation order is deterministic.
type nameAllocator struct {
	used map[string]int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]int)}
}

func (a *nameAllocator) allocate(base string) string {
	n := a.used[base]
	a.used[base] = n + 1
	if n == 0 {
		return base
	}
	return base + strconv.Itoa(n+1)
}
