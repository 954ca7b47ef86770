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

// usesDirectInstance decides, per (binding, request kind), whether the
// emitter inlines construction at the usage site or goes through a
// provider-like framework handle. The choice is a pure function of the
// binding, the graph, and the emission mode.
func usesDirectInstance(kind RequestKind, b *Binding, g *BindingGraph, fastInit bool) bool {
	if kind != Instance && kind != Future {
		return false
	}
	switch b.Kind() {
	case MembersInjectorBinding, AssistedFactoryBinding:
		// A members injector is always a framework instance, and an
		// assisted factory is essentially a provider for its assisted
		// injection, so both stay framework expressions.
		return false
	case AssistedInjection:
		// Direct instance only in fast-init mode, to avoid requiring the
		// non-assisted dependencies as providers there.
		// TODO: revisit if the two emission modes are ever merged.
		return fastInit
	case Injection, Provision, Delegate, MultiboundSet, MultiboundMap, Optional,
		Component, ComponentProvision, ComponentDependencyBinding, BoundInstance,
		SubcomponentCreator, MembersInjectionBinding, Production, ComponentProduction:
		// Without caching there is no reason to call get() on a provider.
		return !needsCaching(b, g)
	}
	panic(fmt.Sprintf("daggen internal: no such binding kind: %v", b.Kind()))
}

// needsCaching reports whether the component must guarantee a cached value
// for the binding: every scoped binding except a delegate whose scope is no
// stronger than its target's.
func needsCaching(b *Binding, g *BindingGraph) bool {
	if b.Scope() == nil {
		return false
	}
	if b.Kind() == Delegate {
		return bindsScopeStrongerThanDependencyScope(b, g)
	}
	return true
}

// bindsScopeStrongerThanDependencyScope compares a delegate's declared
// scope with its target's. Equal scopes are not stronger: the delegate can
// share the target's cache. The promotion is observed at representation
// selection, never during validation.
func bindsScopeStrongerThanDependencyScope(b *Binding, g *BindingGraph) bool {
	target, ok := g.ResolvedBinding(b.DelegateSource().Key)
	if !ok {
		return false
	}
	return scopeStrength(b.Scope()) > scopeStrength(target.Scope())
}

// usesSwitchingProvider reports whether the binding's framework instance is
// served by the component's switching-provider dispatcher. Only ever true
// in fast-init mode.
func usesSwitchingProvider(b *Binding, fastInit bool) bool {
	if !fastInit {
		return false
	}
	switch b.Kind() {
	case AssistedInjection, BoundInstance, Component, ComponentDependencyBinding,
		Delegate, MembersInjectorBinding:
		// The backing instance already exists for these kinds; a dispatch
		// through the switching provider would only add indirection.
		return false
	case MultiboundSet, MultiboundMap, Optional:
		// With no dependencies the singleton empty factory serves these
		// directly.
		return len(b.Dependencies()) > 0
	case Injection, Provision, AssistedFactoryBinding, ComponentProvision,
		SubcomponentCreator, Production, ComponentProduction, MembersInjectionBinding:
		return true
	}
	panic(fmt.Sprintf("daggen internal: no such binding kind: %v", b.Kind()))
}

// usesStaticFactoryCreation reports whether a pre-generated static factory
// reference can serve the binding without a component field: never in
// fast-init mode, and only for bindings with no per-component captures.
func usesStaticFactoryCreation(b *Binding, fastInit bool) bool {
	if fastInit {
		return false
	}
	switch b.Kind() {
	case Injection:
		return len(b.Dependencies()) == 0
	case Provision:
		if len(b.Dependencies()) > 0 {
			return false
		}
		_, requiresInstance := b.Module()
		return !requiresInstance
	case MultiboundSet, MultiboundMap:
		return len(b.Dependencies()) == 0
	default:
		return false
	}
}
