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
	"go.daggen.dev/daggen/internal/srctree"
)

// fakeSources is a deterministic in-memory front-end for tests.
type fakeSources struct {
	injectables map[string]*InjectableType
	factories   map[string]*AssistedFactory
	members     map[string]*MembersInjection
	pendingOnce map[string]int
}

var _ Sources = (*fakeSources)(nil)

func newFakeSources() *fakeSources {
	return &fakeSources{
		injectables: make(map[string]*InjectableType),
		factories:   make(map[string]*AssistedFactory),
		members:     make(map[string]*MembersInjection),
		pendingOnce: make(map[string]int),
	}
}

func (s *fakeSources) addInjectable(t TypeName, scope *Scope, deps ...Parameter) *fakeSources {
	s.injectables[t.String()] = &InjectableType{Type: t, Scope: scope, Params: deps}
	return s
}

func (s *fakeSources) addAssistedFactory(f *AssistedFactory) *fakeSources {
	s.factories[f.Type.String()] = f
	return s
}

func (s *fakeSources) addMembers(m *MembersInjection) *fakeSources {
	s.members[m.Type.String()] = m
	return s
}

// pendingFor marks t pending for the next n queries, simulating a type
// generated by a later round.
func (s *fakeSources) pendingFor(t TypeName, n int) *fakeSources {
	s.pendingOnce[t.String()] = n
	return s
}

func (s *fakeSources) InjectableType(t TypeName) (*InjectableType, bool) {
	it, ok := s.injectables[t.String()]
	return it, ok
}

func (s *fakeSources) AssistedFactory(t TypeName) (*AssistedFactory, bool) {
	f, ok := s.factories[t.String()]
	return f, ok
}

func (s *fakeSources) MembersInjection(t TypeName) (*MembersInjection, bool) {
	m, ok := s.members[t.String()]
	return m, ok
}

func (s *fakeSources) Pending(t TypeName) bool {
	n := s.pendingOnce[t.String()]
	if n > 0 {
		s.pendingOnce[t.String()] = n - 1
		return true
	}
	return false
}

// memSink retains rendered files in write order.
type memSink struct {
	files []*srctree.File
}

var _ Sink = (*memSink)(nil)

func (s *memSink) Write(f *srctree.File) error {
	s.files = append(s.files, f)
	return nil
}

func (s *memSink) rendered() []string {
	out := make([]string, len(s.files))
	for i, f := range s.files {
		out[i] = f.Render()
	}
	return out
}

// Common fixture types, all in package "test" unless noted.
var (
	customScope = NewScope("CustomScope")
	singleton   = NewScope("Singleton")

	typeThing   = ClassName("test", "Thing")
	typeDep     = ClassName("test", "Dep")
	typeWidget  = ClassName("test", "Widget")
	typeString  = ClassName("java.lang", "String")
	typeObject  = ClassName("java.lang", "Object")
	typeModule  = ClassName("test", "TestModule")
	typeComp    = ClassName("test", "TestComponent")
)

func scopeOf(s Scope) *Scope { return &s }

func param(t TypeName, kind RequestKind) Parameter {
	return Parameter{Name: lowerCamel(t.Simple()), Key: NewKey(t), Kind: kind}
}

func instanceDep(t TypeName) DependencyRequest {
	return DependencyRequest{Key: NewKey(t), Kind: Instance}
}

// component builds a minimal descriptor with the given entry points.
func component(entries ...EntryPoint) *ComponentDescriptor {
	return &ComponentDescriptor{Type: typeComp, EntryPoints: entries}
}

func entry(name string, t TypeName, kind RequestKind) EntryPoint {
	return EntryPoint{Name: name, Key: NewKey(t), Kind: kind}
}

// provision declares a static module provision with instance-kind deps.
func provision(key TypeName, method string, scope *Scope, deps ...TypeName) *ModuleBinding {
	mb := &ModuleBinding{
		Kind:   Provision,
		Key:    NewKey(key),
		Scope:  scope,
		Method: method,
		Static: true,
	}
	for _, d := range deps {
		mb.Deps = append(mb.Deps, instanceDep(d))
	}
	return mb
}

// binds declares a delegate from key to target.
func binds(key TypeName, target TypeName, method string, scope *Scope) *ModuleBinding {
	return &ModuleBinding{
		Kind:   Delegate,
		Key:    NewKey(key),
		Scope:  scope,
		Method: method,
		Deps:   []DependencyRequest{instanceDep(target)},
	}
}

// bindsQualified is binds with a qualifier on the bound key.
func bindsQualified(key TypeName, qualifier string, target TypeName, method string, scope *Scope) *ModuleBinding {
	q := &Qualifier{Type: ClassName("test", qualifier)}
	return &ModuleBinding{
		Kind:   Delegate,
		Key:    NewKey(key, WithQualifier(q)),
		Scope:  scope,
		Method: method,
		Deps:   []DependencyRequest{instanceDep(target)},
	}
}

func module(t TypeName, bindings ...*ModuleBinding) *ModuleDescriptor {
	return &ModuleDescriptor{Type: t, Bindings: bindings, ConstructorVisibility: Public}
}

func buildGraph(c *ComponentDescriptor, sources Sources) *BindingGraph {
	return newGraphBuilder(sources).Build(c)
}

func generate(c *ComponentDescriptor, sources Sources, opts ...Option) string {
	o := defaultOptions()
	for _, opt := range opts {
		opt.applyOption(&o)
	}
	g := buildGraph(c, sources)
	impl := newComponentImplementation(g, nil, &o)
	return impl.Generate().Render()
}
