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
	"sort"
	"strings"

	"go.daggen.dev/daggen/internal/srctree"
)

// providerField is one emitted framework-instance field.
type providerField struct {
	name string
	raw  bool
}

// ComponentImplementation accumulates the generated output for one
// component: fields, ordered initialization statements, entry-point
// methods, nested helper types, and the switching-provider id counter. It
// is created when emission begins and sealed into a source tree when
// emission ends.
type ComponentImplementation struct {
	graph  *BindingGraph
	parent *ComponentImplementation
	opts   *options

	pkg  string
	name string

	names  *nameAllocator
	fields []*srctree.Field

	// At most one provider field is emitted per key and representation
	// category; every call site shares it.
	fieldsByKey map[string]*providerField

	moduleFields   map[string]string
	depFields      map[string]string
	instanceFields map[string]string

	ctorParams  []srctree.Param
	ctorAssigns []srctree.Code

	initializers []srctree.Code
	initializing map[string]bool
	delegated    map[string]bool

	inlineCache map[string]srctree.Code

	methods    []*srctree.Method
	nested     []*srctree.Type
	suppresses map[string]bool

	switching *switchingProvider

	children []*ComponentImplementation
}

// newComponentImplementation prepares the accumulator tree for a validated
// graph.
func newComponentImplementation(g *BindingGraph, parent *ComponentImplementation, opts *options) *ComponentImplementation {
	c := &ComponentImplementation{
		graph:          g,
		parent:         parent,
		opts:           opts,
		names:          newNameAllocator(),
		fieldsByKey:    make(map[string]*providerField),
		moduleFields:   make(map[string]string),
		depFields:      make(map[string]string),
		instanceFields: make(map[string]string),
		initializing:   make(map[string]bool),
		delegated:      make(map[string]bool),
		inlineCache:    make(map[string]srctree.Code),
		suppresses:     make(map[string]bool),
	}
	if parent == nil {
		c.pkg = g.component.Type.Pkg
		c.name = GeneratedComponentName(g.component.Type)
	} else {
		c.pkg = parent.pkg
		c.name = g.component.Type.JoinedName() + "Impl"
	}
	for _, sub := range g.subgraphs {
		c.children = append(c.children, newComponentImplementation(sub, c, opts))
	}
	return c
}

// Generate seals the accumulated implementation into a compilation unit.
func (c *ComponentImplementation) Generate() *srctree.File {
	return &srctree.File{
		Package: c.pkg,
		Types:   []*srctree.Type{c.generateType()},
	}
}

func (c *ComponentImplementation) generateType() *srctree.Type {
	c.setUpConstructorInputs()

	var entries []*srctree.Method
	for _, root := range c.graph.roots {
		if root.binding == nil {
			continue
		}
		entries = append(entries, c.entryPointMethod(root))
	}

	var childTypes []*srctree.Type
	for _, child := range c.children {
		childTypes = append(childTypes, child.generateType())
		if child.graph.component.CreatorType != nil {
			childTypes = append(childTypes, c.creatorImplType(child))
		}
	}

	// Seal the dispatcher before the constructor body is snapshotted: case
	// bodies may still demand provider fields of their own.
	if c.switching != nil {
		c.nested = append(c.nested, c.sealSwitchingProvider())
	}

	t := &srctree.Type{
		Name:       c.name,
		Final:      true,
		Implements: []string{c.typeRef(c.graph.component.Type)},
	}
	if c.parent == nil {
		t.Visibility = "public"
	} else {
		t.Visibility = "private"
	}
	t.Fields = c.fields

	ctor := &srctree.Method{
		Name:   c.name,
		Params: c.ctorParams,
	}
	if c.parent == nil {
		ctor.Visibility = "private"
	}
	ctor.Body = append(ctor.Body, c.ctorAssigns...)
	ctor.Body = append(ctor.Body, c.initializers...)
	t.Methods = append(t.Methods, ctor)

	if c.parent == nil {
		t.Methods = append(t.Methods, c.staticFactories()...)
	}
	t.Methods = append(t.Methods, entries...)

	t.Nested = append(t.Nested, c.nested...)
	t.Nested = append(t.Nested, childTypes...)

	if len(c.suppresses) > 0 {
		keys := make([]string, 0, len(c.suppresses))
		for s := range c.suppresses {
			keys = append(keys, s)
		}
		sort.Strings(keys)
		t.Suppresses = keys
	}
	return t
}

// setUpConstructorInputs installs the fields the component receives from
// outside: module instances, component dependencies, and bound instances.
func (c *ComponentImplementation) setUpConstructorInputs() {
	for _, m := range c.graph.component.modules() {
		if !m.RequiresInstance() {
			continue
		}
		name := c.names.allocate(lowerCamel(m.Type.Simple()))
		c.moduleFields[m.Type.String()] = name
		c.fields = append(c.fields, &srctree.Field{Name: name, Type: c.typeRef(m.Type), Final: true})
		if moduleConstructible(m) {
			c.ctorAssigns = append(c.ctorAssigns,
				srctree.Codef("this.%s = %s;", name, newModuleExpression(m, c.pkg)))
		} else {
			c.ctorParams = append(c.ctorParams, srctree.Param{Name: name, Type: c.typeRef(m.Type)})
			c.ctorAssigns = append(c.ctorAssigns, srctree.Codef("this.%s = %s;", name, name))
		}
	}
	for _, dep := range c.graph.component.Dependencies {
		name := c.names.allocate(lowerCamel(dep.Type.Simple()))
		c.depFields[dep.Type.String()] = name
		c.fields = append(c.fields, &srctree.Field{Name: name, Type: c.typeRef(dep.Type), Final: true})
		c.ctorParams = append(c.ctorParams, srctree.Param{Name: name, Type: c.typeRef(dep.Type)})
		c.ctorAssigns = append(c.ctorAssigns, srctree.Codef("this.%s = %s;", name, name))
	}
	for _, bi := range c.graph.component.BoundInstances {
		name := c.names.allocate(lowerCamel(bi.Type().Simple()) + "Instance")
		c.instanceFields[bi.ID()] = name
		c.fields = append(c.fields, &srctree.Field{Name: name, Type: c.typeRef(bi.Type()), Final: true})
		c.ctorParams = append(c.ctorParams, srctree.Param{Name: name, Type: c.typeRef(bi.Type())})
		c.ctorAssigns = append(c.ctorAssigns, srctree.Codef("this.%s = %s;", name, name))
	}
}

// staticFactories emits the create() convenience on parameterless root
// components.
func (c *ComponentImplementation) staticFactories() []*srctree.Method {
	if len(c.ctorParams) > 0 {
		return nil
	}
	return []*srctree.Method{{
		Name:       "create",
		Visibility: "public",
		Static:     true,
		Returns:    c.typeRef(c.graph.component.Type),
		Body:       []srctree.Code{srctree.Codef("return new %s();", c.name)},
	}}
}

func (c *ComponentImplementation) entryPointMethod(root rootRequest) *srctree.Method {
	return &srctree.Method{
		Name:       root.ep.Name,
		Visibility: "public",
		Override:   true,
		Returns:    c.entryReturnType(root.ep),
		Body: []srctree.Code{
			srctree.Codef("return %s;", c.requestExpression(root.binding, root.ep.Kind)),
		},
	}
}

func (c *ComponentImplementation) entryReturnType(ep EntryPoint) string {
	inner := c.typeRef(ep.Key.Type())
	switch ep.Kind {
	case Instance:
		return inner
	case Provider:
		return "Provider<" + inner + ">"
	case Lazy:
		return "Lazy<" + inner + ">"
	case ProviderOfLazy:
		return "Provider<Lazy<" + inner + ">>"
	case MembersInjector:
		return "MembersInjector<" + inner + ">"
	case Producer:
		return "Producer<" + inner + ">"
	case Produced:
		return "Produced<" + inner + ">"
	case Future:
		return "ListenableFuture<" + inner + ">"
	}
	panic(fmt.Sprintf("daggen internal: no such request kind: %v", ep.Kind))
}

// requestExpression returns the expression satisfying (binding, kind),
// routing through the component that owns the binding so that enclosed
// components share one field per key.
func (c *ComponentImplementation) requestExpression(b *Binding, kind RequestKind) srctree.Code {
	owner := c.implFor(b)
	if usesDirectInstance(kind, b, owner.graph, c.opts.fastInit) {
		direct := owner.directExpression(b)
		if kind == Future {
			return srctree.Codef("Futures.immediateFuture(%s)", direct)
		}
		return direct
	}

	fw := owner.frameworkExpression(b)
	switch kind {
	case Provider, Producer, MembersInjector:
		return fw
	case Instance:
		return owner.instanceFromFramework(b, fw)
	case Future:
		return srctree.Codef("Futures.immediateFuture(%s)", owner.instanceFromFramework(b, fw))
	case Lazy:
		return srctree.Codef("DoubleCheck.lazy(%s)", fw)
	case ProviderOfLazy:
		return srctree.Codef("ProviderOfLazy.create(%s)", fw)
	case Produced:
		return srctree.Codef("Produced.successful(%s)", owner.instanceFromFramework(b, fw))
	}
	panic(fmt.Sprintf("daggen internal: no such request kind: %v", kind))
}

func (c *ComponentImplementation) implFor(b *Binding) *ComponentImplementation {
	for cur := c; cur != nil; cur = cur.parent {
		if cur.graph.component.Type.Equal(b.Owner()) {
			return cur
		}
	}
	panic(fmt.Sprintf("daggen internal: no implementation owns %v", b))
}

func (c *ComponentImplementation) instanceFromFramework(b *Binding, fw srctree.Code) srctree.Code {
	return srctree.Codef("%s.get()", fw)
}

// selfRef names this component instance in a way that stays correct when
// the expression is embedded in a nested type.
func (c *ComponentImplementation) selfRef() string {
	return c.name + ".this"
}

// directExpression inlines construction of b at the usage site.
func (c *ComponentImplementation) directExpression(b *Binding) srctree.Code {
	switch b.Kind() {
	case Injection, AssistedInjection:
		args := c.dependencyExpressions(b)
		for _, p := range b.assistedParams {
			args = append(args, srctree.Code(p.Name))
		}
		if b.Key().Type().AccessibleFrom(c.pkg) {
			return srctree.Codef("new %s(%s)", c.typeRef(b.Key().Type()), joinCode(args))
		}
		return srctree.Codef("%s.newInstance(%s)", c.factoryRef(b.Key().Type()), joinCode(args))

	case Provision, Production:
		module, requiresInstance := b.Module()
		args := joinCode(c.dependencyExpressions(b))
		if requiresInstance {
			return srctree.Codef("%s.%s(%s)", c.moduleFieldRef(module), b.Method(), args)
		}
		return srctree.Codef("%s.%s(%s)", c.typeRef(module), b.Method(), args)

	case Delegate:
		target := c.depTarget(b.DelegateSource())
		inner := c.requestExpression(target, Instance)
		if !target.Key().Type().AccessibleFrom(c.pkg) && b.Key().Type().AccessibleFrom(c.pkg) {
			c.suppress("unchecked")
			return srctree.Codef("(%s) %s", c.typeRef(b.Key().Type()), inner)
		}
		return inner

	case MultiboundSet:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("Collections.emptySet()")
		}
		var chain strings.Builder
		for _, dep := range deps {
			fmt.Fprintf(&chain, ".add(%s)", c.requestExpression(c.depTarget(dep), Instance))
		}
		return srctree.Codef("SetBuilder.newSetBuilder(%d)%s.build()", len(deps), chain.String())

	case MultiboundMap:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("Collections.emptyMap()")
		}
		var chain strings.Builder
		for _, dep := range deps {
			target := c.depTarget(dep)
			fmt.Fprintf(&chain, ".put(%s, %s)", target.MapKey(), c.requestExpression(target, Instance))
		}
		return srctree.Codef("MapBuilder.newMapBuilder(%d)%s.build()", len(deps), chain.String())

	case Optional:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("Optional.empty()")
		}
		return srctree.Codef("Optional.of(%s)", c.requestExpression(c.depTarget(deps[0]), Instance))

	case Component:
		return srctree.Code(c.selfRef())

	case ComponentDependencyBinding:
		return srctree.Code(c.depFieldRef(b.DependencyType()))

	case ComponentProvision, ComponentProduction:
		return srctree.Codef("%s.%s()", c.depFieldRef(b.DependencyType()), b.Method())

	case BoundInstance:
		return srctree.Code(c.instanceFieldRef(b.Key()))

	case SubcomponentCreator:
		// The creator implementation is an inner type; the enclosing
		// component reference is captured implicitly.
		return srctree.Codef("new %s()", creatorImplName(b.Subcomponent()))

	case MembersInjectorBinding, MembersInjectionBinding:
		elem := b.Key().Type()
		if sameRawType(elem, membersInjectorTypeName) {
			elem = elem.Args[0]
		}
		return srctree.Codef("%s.create(%s)", c.qualified(elem.Pkg, membersInjectorName(elem)), joinCode(c.frameworkDependencyExpressions(b)))

	case AssistedFactoryBinding:
		target := c.depTarget(b.Dependencies()[0])
		impl := c.qualified(b.Factory().Type.Pkg, b.Factory().Type.JoinedName()+"_Impl")
		return srctree.Codef("%s.newInstance(%s)", impl, c.factoryCreateExpression(target))
	}
	panic(fmt.Sprintf("daggen internal: no such binding kind: %v", b.Kind()))
}

// factoryCreateExpression builds the static factory creation for an
// injection-style binding, capturing every dependency as a provider.
func (c *ComponentImplementation) factoryCreateExpression(b *Binding) srctree.Code {
	return srctree.Codef("%s.create(%s)", c.factoryRef(b.Key().Type()), joinCode(c.frameworkDependencyExpressions(b)))
}

// factoryRef references a type's pre-generated factory, qualified when it
// lives in another package.
func (c *ComponentImplementation) factoryRef(t TypeName) string {
	return c.qualified(t.Pkg, factoryName(t))
}

// qualified prefixes a generated peer type with its package when referenced
// from elsewhere.
func (c *ComponentImplementation) qualified(pkg, name string) string {
	if pkg == "" || pkg == c.pkg {
		return name
	}
	return pkg + "." + name
}

// dependencyExpressions materializes each dependency with its own request
// kind.
func (c *ComponentImplementation) dependencyExpressions(b *Binding) []srctree.Code {
	deps := b.Dependencies()
	out := make([]srctree.Code, 0, len(deps))
	for _, dep := range deps {
		out = append(out, c.requestExpression(c.depTarget(dep), dep.Kind))
	}
	return out
}

// frameworkDependencyExpressions captures every dependency as a provider,
// the shape pre-generated factories expect.
func (c *ComponentImplementation) frameworkDependencyExpressions(b *Binding) []srctree.Code {
	deps := b.Dependencies()
	out := make([]srctree.Code, 0, len(deps))
	for _, dep := range deps {
		target := c.depTarget(dep)
		out = append(out, c.implFor(target).frameworkExpression(target))
	}
	return out
}

func (c *ComponentImplementation) depTarget(dep DependencyRequest) *Binding {
	key := dep.Key
	if dep.Kind == MembersInjector {
		key = membersInjectorKey(key)
	}
	target, ok := c.graph.ResolvedBinding(key)
	if !ok {
		panic(fmt.Sprintf("daggen internal: dependency %v of %v not resolved", dep, c.graph.component.Type))
	}
	return target
}

func (c *ComponentImplementation) moduleFieldRef(m TypeName) string {
	name, ok := c.moduleFields[m.String()]
	if !ok {
		panic(fmt.Sprintf("daggen internal: no module field for %v", m))
	}
	return name
}

func (c *ComponentImplementation) depFieldRef(t TypeName) string {
	name, ok := c.depFields[t.String()]
	if !ok {
		panic(fmt.Sprintf("daggen internal: no dependency field for %v", t))
	}
	return name
}

func (c *ComponentImplementation) instanceFieldRef(k Key) string {
	name, ok := c.instanceFields[k.ID()]
	if !ok {
		panic(fmt.Sprintf("daggen internal: no bound instance field for %v", k))
	}
	return name
}

func (c *ComponentImplementation) suppress(warning string) {
	root := c
	for root.parent != nil {
		root = root.parent
	}
	root.suppresses[warning] = true
}

// typeRef renders a type reference as seen from the generated package.
func (c *ComponentImplementation) typeRef(t TypeName) string {
	var b strings.Builder
	if t.Pkg != "" && t.Pkg != c.pkg {
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
			b.WriteString(c.typeRef(a))
		}
		b.WriteByte('>')
	}
	return b.String()
}

// creatorImplName names the generated creator implementation for a
// subcomponent.
func creatorImplName(sub *ComponentDescriptor) string {
	return sub.CreatorType.JoinedName() + "Impl"
}

// creatorImplType emits the creator implementation: it closes over the
// enclosing component and builds the child.
func (c *ComponentImplementation) creatorImplType(child *ComponentImplementation) *srctree.Type {
	sub := child.graph.component
	return &srctree.Type{
		Name:       creatorImplName(sub),
		Visibility: "private",
		Final:      true,
		Implements: []string{c.typeRef(*sub.CreatorType)},
		Methods: []*srctree.Method{{
			Name:       "build",
			Visibility: "public",
			Override:   true,
			Returns:    c.typeRef(sub.Type),
			Body:       []srctree.Code{srctree.Codef("return new %s();", child.name)},
		}},
	}
}

func joinCode(codes []srctree.Code) string {
	parts := make([]string, len(codes))
	for i, code := range codes {
		parts[i] = string(code)
	}
	return strings.Join(parts, ", ")
}
