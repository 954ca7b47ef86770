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

// rootRequest ties an entry point to the binding that satisfies it.
type rootRequest struct {
	ep      EntryPoint
	binding *Binding
}

// declaredIndex is everything a single component level declares, before any
// resolution happens. Iteration over it follows declaration order so that
// identical inputs build identical graphs.
type declaredIndex struct {
	explicit map[string]*explicitDeclaration

	setContribs map[string][]*contribution
	mapContribs map[string][]*contribution
	optionals   map[string]bool

	duplicates []duplicateBinding
}

type explicitDeclaration struct {
	binding func() *Binding
	origin  BindingOrigin

	// delegate declarations keep their shape for structural-equivalence
	// checks when the same key is bound twice.
	delegateSource *Key
	delegateScope  *Scope
}

type contribution struct {
	key     Key
	binding func() *Binding
}

// level pairs a graph under construction with the declarations visible at
// that component.
type level struct {
	g        *BindingGraph
	declared *declaredIndex
	parent   *level
}

// graphBuilder resolves component declarations into binding graphs with a
// worklist, seeding from entry points and locating a source for each popped
// key in priority order: explicit declaration, injectable constructor,
// multibinding synthesis, optional synthesis, ancestor export.
type graphBuilder struct {
	sources  Sources
	interner *interner

	// deferred collects types that are expected from a later generation
	// round; a non-empty list defers the whole component.
	deferred    []TypeName
	deferredSet map[string]bool
}

func newGraphBuilder(sources Sources) *graphBuilder {
	return &graphBuilder{
		sources:     sources,
		interner:    newInterner(),
		deferredSet: make(map[string]bool),
	}
}

// Deferred returns the types that prevented resolution this round, in
// first-seen order.
func (gb *graphBuilder) Deferred() []TypeName {
	return gb.deferred
}

// Build resolves the full graph for a root component, including subgraphs
// for every declared subcomponent.
func (gb *graphBuilder) Build(c *ComponentDescriptor) *BindingGraph {
	return gb.build(c, nil).g
}

func (gb *graphBuilder) build(c *ComponentDescriptor, parent *level) *level {
	var parentGraph *BindingGraph
	if parent != nil {
		parentGraph = parent.g
	}
	lvl := &level{
		g:        newBindingGraph(c, parentGraph),
		declared: gb.indexDeclarations(c),
		parent:   parent,
	}
	lvl.g.duplicates = lvl.declared.duplicates

	for _, ep := range c.EntryPoints {
		key := gb.interner.intern(ep.Key)
		if ep.Kind == MembersInjector {
			key = membersInjectorKey(key)
		}
		origin := BindingOrigin{Component: &c.Type, Element: ep.Name}
		b := gb.resolve(lvl, key, origin)
		lvl.g.roots = append(lvl.g.roots, rootRequest{ep: ep, binding: b})
	}

	for _, sub := range c.Subcomponents {
		child := gb.build(sub, lvl)
		lvl.g.subgraphs = append(lvl.g.subgraphs, child.g)
	}
	return lvl
}

// indexDeclarations walks the component's own surface: its identity
// binding, dependency provisions, bound instances, module declarations,
// and subcomponent creators.
func (gb *graphBuilder) indexDeclarations(c *ComponentDescriptor) *declaredIndex {
	idx := &declaredIndex{
		explicit:    make(map[string]*explicitDeclaration),
		setContribs: make(map[string][]*contribution),
		mapContribs: make(map[string][]*contribution),
		optionals:   make(map[string]bool),
	}

	componentKey := gb.interner.intern(NewKey(c.Type))
	idx.put(componentKey, BindingOrigin{Component: &c.Type}, func() *Binding {
		return &Binding{key: componentKey, kind: Component, origin: BindingOrigin{Component: &c.Type}}
	}, nil)

	for _, dep := range c.Dependencies {
		dep := dep
		depKey := gb.interner.intern(NewKey(dep.Type))
		idx.put(depKey, BindingOrigin{Component: &c.Type}, func() *Binding {
			t := dep.Type
			return &Binding{key: depKey, kind: ComponentDependencyBinding, dependency: &t, origin: BindingOrigin{Component: &c.Type}}
		}, nil)
		for _, p := range dep.Provisions {
			p := p
			provKey := gb.interner.intern(p.Key)
			kind := ComponentProvision
			if p.Production {
				kind = ComponentProduction
			}
			origin := BindingOrigin{Component: &dep.Type, Element: p.Method}
			idx.put(provKey, origin, func() *Binding {
				t := dep.Type
				return &Binding{key: provKey, kind: kind, method: p.Method, dependency: &t, origin: origin}
			}, nil)
		}
	}

	for _, bi := range c.BoundInstances {
		biKey := gb.interner.intern(bi)
		origin := BindingOrigin{Component: &c.Type, Element: "creator"}
		idx.put(biKey, origin, func() *Binding {
			return &Binding{key: biKey, kind: BoundInstance, origin: origin}
		}, nil)
	}

	for _, m := range c.modules() {
		if gb.checkPending(m.Type) {
			continue
		}
		for _, mb := range m.Bindings {
			gb.indexModuleBinding(idx, m, mb)
		}
	}

	for _, sub := range c.Subcomponents {
		if sub.CreatorType == nil {
			continue
		}
		sub := sub
		creatorKey := gb.interner.intern(NewKey(*sub.CreatorType))
		origin := BindingOrigin{Component: &sub.Type}
		idx.put(creatorKey, origin, func() *Binding {
			return &Binding{key: creatorKey, kind: SubcomponentCreator, subcomponent: sub, origin: origin}
		}, nil)
	}

	return idx
}

func (gb *graphBuilder) indexModuleBinding(idx *declaredIndex, m *ModuleDescriptor, mb *ModuleBinding) {
	origin := BindingOrigin{Module: &m.Type, Element: mb.Method}
	if mb.Optional {
		idx.optionals[gb.interner.intern(mb.Key).ID()] = true
		return
	}

	build := func(key Key) *Binding {
		b := &Binding{
			key:      key,
			kind:     mb.Kind,
			scope:    mb.Scope,
			nullable: mb.Nullable,
			deps:     mb.Deps,
			origin:   origin,
			mapKey:   mb.MapKey,
		}
		switch mb.Kind {
		case Provision, Production:
			t := m.Type
			b.module = &t
			b.method = mb.Method
			b.requiresModuleInstance = !mb.Static && !m.Abstract
		case Delegate:
			src := mb.Deps[0]
			b.delegateSource = &src
			t := m.Type
			b.module = &t
			b.method = mb.Method
		default:
			panic("daggen internal: module binding declared with kind " + mb.Kind.String())
		}
		return b
	}

	switch {
	case mb.IntoSet:
		slot := MultibindingSlot{Module: m.Type.String(), Element: mb.Method}
		elemKey := gb.interner.intern(NewKey(mb.Key.Type(), WithQualifier(mb.Key.Qualifier()), WithSlot(slot)))
		aggKey := gb.interner.intern(setKeyOf(mb.Key))
		idx.setContribs[aggKey.ID()] = append(idx.setContribs[aggKey.ID()], &contribution{
			key:     elemKey,
			binding: func() *Binding { return build(elemKey) },
		})
	case mb.IntoMap:
		slot := MultibindingSlot{Module: m.Type.String(), Element: mb.Method}
		valKey := gb.interner.intern(NewKey(mb.Key.Type(), WithQualifier(mb.Key.Qualifier()), WithSlot(slot)))
		aggKey := gb.interner.intern(mapKeyOf(mb.Key, mb.MapKeyType))
		idx.mapContribs[aggKey.ID()] = append(idx.mapContribs[aggKey.ID()], &contribution{
			key:     valKey,
			binding: func() *Binding { return build(valKey) },
		})
	default:
		key := gb.interner.intern(mb.Key)
		var delegateSource *Key
		if mb.Kind == Delegate {
			k := mb.Deps[0].Key
			delegateSource = &k
		}
		idx.put(key, origin, func() *Binding { return build(key) }, &explicitDeclaration{
			delegateSource: delegateSource,
			delegateScope:  mb.Scope,
		})
	}
}

// put registers an explicit declaration, recording a duplicate when the key
// is already taken, unless both declarations are structurally equivalent
// delegates.
func (idx *declaredIndex) put(key Key, origin BindingOrigin, build func() *Binding, shape *explicitDeclaration) {
	id := key.ID()
	if existing, ok := idx.explicit[id]; ok {
		if shape != nil && existing.delegateSource != nil && shape.delegateSource != nil &&
			existing.delegateSource.Equal(*shape.delegateSource) &&
			sameScope(existing.delegateScope, shape.delegateScope) {
			return
		}
		idx.duplicates = append(idx.duplicates, duplicateBinding{key: key, first: existing.origin, second: origin})
		return
	}
	decl := &explicitDeclaration{binding: build, origin: origin}
	if shape != nil {
		decl.delegateSource = shape.delegateSource
		decl.delegateScope = shape.delegateScope
	}
	idx.explicit[id] = decl
}

func (gb *graphBuilder) checkPending(t TypeName) bool {
	if gb.sources.Pending(t) {
		if !gb.deferredSet[t.String()] {
			gb.deferredSet[t.String()] = true
			gb.deferred = append(gb.deferred, t)
		}
		return true
	}
	return false
}

// resolve locates or installs the binding for key as seen from lvl. It
// returns nil when the key is unresolved; the graph records the miss.
func (gb *graphBuilder) resolve(lvl *level, key Key, requestedBy BindingOrigin) *Binding {
	// Already resolved here or in an enclosing graph.
	if b, ok := lvl.g.ResolvedBinding(key); ok {
		return b
	}

	// (1) Explicit declaration at this level.
	if decl, ok := lvl.declared.explicit[key.ID()]; ok {
		return gb.install(lvl, decl.binding())
	}

	// (2) Constructor-injectable type, and assisted factory declarations.
	if key.Qualifier() == nil && key.Slot().zero() {
		if b := gb.resolveFromSources(lvl, key); b != nil {
			return b
		}
	}

	// (3) Multibinding synthesis across this level and every enclosing one.
	if b := gb.synthesizeMultibinding(lvl, key); b != nil {
		return b
	}

	// (4) Optional synthesis.
	if b := gb.synthesizeOptional(lvl, key); b != nil {
		return b
	}

	// (5) An enclosing component's declared binding, installed there.
	for anc := lvl.parent; anc != nil; anc = anc.parent {
		if decl, ok := anc.declared.explicit[key.ID()]; ok {
			return gb.install(anc, decl.binding())
		}
	}
	for anc := lvl.parent; anc != nil; anc = anc.parent {
		if b := gb.synthesizeMultibinding(anc, key); b != nil {
			return b
		}
		if b := gb.synthesizeOptional(anc, key); b != nil {
			return b
		}
	}

	lvl.g.addMissing(key, requestedBy)
	return nil
}

func (gb *graphBuilder) resolveFromSources(lvl *level, key Key) *Binding {
	if mi, elem, ok := asMembersInjectorKey(key); ok {
		if inj, found := gb.sources.MembersInjection(elem.Type()); found {
			deps := make([]DependencyRequest, 0, len(inj.Members))
			for _, p := range inj.Members {
				deps = append(deps, DependencyRequest{Key: p.Key, Kind: p.Kind, Nullable: p.Nullable})
			}
			t := inj.Type
			return gb.install(lvl, &Binding{key: mi, kind: MembersInjectorBinding, deps: deps, origin: BindingOrigin{Type: &t}})
		}
		return nil
	}

	if gb.checkPending(key.Type()) {
		return nil
	}

	if f, ok := gb.sources.AssistedFactory(key.Type()); ok {
		t := f.Type
		deps := []DependencyRequest{{Key: f.Target, Kind: Instance}}
		return gb.install(lvl, &Binding{key: key, kind: AssistedFactoryBinding, factory: f, deps: deps, origin: BindingOrigin{Type: &t, Element: f.Method}})
	}

	inj, ok := gb.sources.InjectableType(key.Type())
	if !ok {
		return nil
	}

	kind := Injection
	var assisted []Parameter
	var deps []DependencyRequest
	for _, p := range inj.Params {
		if p.Assisted {
			assisted = append(assisted, p)
			continue
		}
		deps = append(deps, DependencyRequest{Key: p.Key, Kind: p.Kind, Nullable: p.Nullable})
	}
	if len(assisted) > 0 {
		kind = AssistedInjection
	}
	t := inj.Type
	b := &Binding{key: key, kind: kind, scope: inj.Scope, deps: deps, assistedParams: assisted, origin: BindingOrigin{Type: &t}}

	// A scoped injectable lives with the component that declares its
	// scope, so enclosing components share the cached instance.
	return gb.install(gb.scopeOwner(lvl, inj.Scope), b)
}

// scopeOwner picks the level a binding with scope s is installed at: the
// nearest enclosing component declaring s, else the requesting level (the
// validator reports the undeclared scope there).
func (gb *graphBuilder) scopeOwner(lvl *level, s *Scope) *level {
	if s == nil || s.IsReusable() {
		return lvl
	}
	for cur := lvl; cur != nil; cur = cur.parent {
		if cur.g.component.DeclaresScope(*s) {
			return cur
		}
	}
	return lvl
}

func (gb *graphBuilder) synthesizeMultibinding(lvl *level, key Key) *Binding {
	var (
		contribs []*contribution
		kind     BindingKind
	)
	// Enclosing components' contributions come first, then this level's,
	// each in declaration order.
	for _, cur := range lvl.chain() {
		if cs, ok := cur.declared.setContribs[key.ID()]; ok {
			contribs = append(contribs, cs...)
			kind = MultiboundSet
		}
		if cs, ok := cur.declared.mapContribs[key.ID()]; ok {
			contribs = append(contribs, cs...)
			kind = MultiboundMap
		}
	}
	if len(contribs) == 0 {
		return nil
	}

	agg := &Binding{key: key, kind: kind, origin: BindingOrigin{Component: &lvl.g.component.Type}}
	for _, c := range contribs {
		agg.deps = append(agg.deps, DependencyRequest{Key: c.key, Kind: Instance})
	}
	installed := gb.installNode(lvl, agg)
	for i, c := range contribs {
		target := gb.resolveContribution(lvl, c)
		if target != nil {
			lvl.g.addEdge(mustHandle(lvl.g, installed), target, agg.deps[i])
		}
	}
	return installed
}

func (gb *graphBuilder) resolveContribution(lvl *level, c *contribution) *Binding {
	if b, ok := lvl.g.ResolvedBinding(c.key); ok {
		return b
	}
	return gb.install(lvl, c.binding())
}

func (gb *graphBuilder) synthesizeOptional(lvl *level, key Key) *Binding {
	elem, ok := asOptionalKey(key)
	if !ok {
		return nil
	}
	declared := false
	for _, cur := range lvl.chain() {
		if cur.declared.optionals[elem.ID()] {
			declared = true
			break
		}
	}
	if !declared {
		return nil
	}

	b := &Binding{key: key, kind: Optional, origin: BindingOrigin{Component: &lvl.g.component.Type}}
	if gb.underlyingPresent(lvl, elem) {
		b.deps = []DependencyRequest{{Key: elem, Kind: Instance}}
	}
	installed := gb.installNode(lvl, b)
	if len(b.deps) > 0 {
		target := gb.resolve(lvl, elem, b.origin)
		if target != nil {
			lvl.g.addEdge(mustHandle(lvl.g, installed), target, b.deps[0])
		}
	}
	return installed
}

// underlyingPresent decides presence for an optional binding without
// installing anything: an explicit declaration, an injectable constructor,
// or any multibinding contribution makes the underlying key present.
func (gb *graphBuilder) underlyingPresent(lvl *level, key Key) bool {
	for _, cur := range lvl.chain() {
		if _, ok := cur.declared.explicit[key.ID()]; ok {
			return true
		}
		if _, ok := cur.declared.setContribs[key.ID()]; ok {
			return true
		}
		if _, ok := cur.declared.mapContribs[key.ID()]; ok {
			return true
		}
	}
	if key.Qualifier() == nil {
		if _, ok := gb.sources.InjectableType(key.Type()); ok {
			return true
		}
	}
	return false
}

// install places b at lvl and resolves its dependencies, registering the
// node before recursing so that legal cycles terminate.
func (gb *graphBuilder) install(lvl *level, b *Binding) *Binding {
	installed := gb.installNode(lvl, b)
	h := mustHandle(lvl.g, installed)
	for _, dep := range installed.deps {
		key := gb.interner.intern(dep.Key)
		if dep.Kind == MembersInjector {
			key = membersInjectorKey(key)
		}
		target := gb.resolve(lvl, key, installed.origin)
		if target != nil {
			lvl.g.addEdge(h, target, dep)
		}
	}
	return installed
}

func (gb *graphBuilder) installNode(lvl *level, b *Binding) *Binding {
	if existing, ok := lvl.g.localBinding(b.key); ok {
		return existing
	}
	lvl.g.newNode(b)
	return b
}

func (lvl *level) chain() []*level {
	var rev []*level
	for cur := lvl; cur != nil; cur = cur.parent {
		rev = append(rev, cur)
	}
	out := make([]*level, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		out = append(out, rev[i])
	}
	return out
}

func mustHandle(g *BindingGraph, b *Binding) int {
	h, ok := g.handleOf(b)
	if !ok {
		panic("daggen internal: binding " + b.String() + " not installed in its graph")
	}
	return h
}
