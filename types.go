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

// RequestKind is the way a dependency is requested at an injection site or
// entry point.
type RequestKind int

const (
	// Instance requests the value itself.
	Instance RequestKind = iota
	// Provider requests a factory callable on demand.
	Provider
	// Lazy requests a handle memoized on first call.
	Lazy
	// ProviderOfLazy requests a provider of fresh lazy handles.
	ProviderOfLazy
	// MembersInjector requests an injector for the members of the keyed
	// type.
	MembersInjector
	// Producer requests an asynchronous factory.
	Producer
	// Produced requests the asynchronous result wrapper.
	Produced
	// Future requests the eager asynchronous value.
	Future
)

func (k RequestKind) String() string {
	switch k {
	case Instance:
		return "Instance"
	case Provider:
		return "Provider"
	case Lazy:
		return "Lazy"
	case ProviderOfLazy:
		return "ProviderOfLazy"
	case MembersInjector:
		return "MembersInjector"
	case Producer:
		return "Producer"
	case Produced:
		return "Produced"
	case Future:
		return "Future"
	}
	panic(fmt.Sprintf("unknown request kind %d", int(k)))
}

// deferrable reports whether a dependency requested with this kind can be
// satisfied without constructing the value immediately. A cycle is legal iff
// at least one of its edges is deferrable.
func (k RequestKind) deferrable() bool {
	switch k {
	case Provider, Lazy, ProviderOfLazy, Producer, Produced:
		return true
	case Instance, MembersInjector, Future:
		return false
	}
	panic(fmt.Sprintf("unknown request kind %d", int(k)))
}

// BindingKind is the closed set of binding variants.
type BindingKind int

const (
	// Injection is a constructor-discovered binding.
	Injection BindingKind = iota
	// Provision is a module-provided binding.
	Provision
	// Delegate binds one key as another.
	Delegate
	// MultiboundSet aggregates set contributions.
	MultiboundSet
	// MultiboundMap aggregates map contributions.
	MultiboundMap
	// Optional synthesizes a present-or-absent wrapper.
	Optional
	// Component binds the component instance itself.
	Component
	// ComponentProvision exposes a provision method of a component
	// dependency.
	ComponentProvision
	// ComponentDependencyBinding binds a component dependency instance.
	ComponentDependencyBinding
	// BoundInstance binds an instance supplied through the creator.
	BoundInstance
	// SubcomponentCreator binds a subcomponent's creator.
	SubcomponentCreator
	// AssistedInjection is a constructor binding with caller-supplied
	// parameters.
	AssistedInjection
	// AssistedFactoryBinding binds a declared assisted factory.
	AssistedFactoryBinding
	// MembersInjectorBinding binds an injector object for a type.
	MembersInjectorBinding
	// MembersInjectionBinding injects the members of an instance.
	MembersInjectionBinding
	// Production is an asynchronous module-provided binding.
	Production
	// ComponentProduction exposes a production method of a component
	// dependency.
	ComponentProduction
)

func (k BindingKind) String() string {
	switch k {
	case Injection:
		return "Injection"
	case Provision:
		return "Provision"
	case Delegate:
		return "Delegate"
	case MultiboundSet:
		return "MultiboundSet"
	case MultiboundMap:
		return "MultiboundMap"
	case Optional:
		return "Optional"
	case Component:
		return "Component"
	case ComponentProvision:
		return "ComponentProvision"
	case ComponentDependencyBinding:
		return "ComponentDependencyBinding"
	case BoundInstance:
		return "BoundInstance"
	case SubcomponentCreator:
		return "SubcomponentCreator"
	case AssistedInjection:
		return "AssistedInjection"
	case AssistedFactoryBinding:
		return "AssistedFactory"
	case MembersInjectorBinding:
		return "MembersInjector"
	case MembersInjectionBinding:
		return "MembersInjection"
	case Production:
		return "Production"
	case ComponentProduction:
		return "ComponentProduction"
	}
	panic(fmt.Sprintf("unknown binding kind %d", int(k)))
}

// production reports whether the binding kind exists only in production
// components.
func (k BindingKind) production() bool {
	return k == Production || k == ComponentProduction
}

// Scope is a named token declaring at which lifetime level a binding's value
// is cached. The distinguished reusable scope permits single-check caching
// without a cross-thread publication guarantee; every other scope requires
// double-check semantics.
type Scope struct {
	name string
}

// NewScope returns the scope with the given name.
func NewScope(name string) Scope {
	return Scope{name: name}
}

// Reusable is the distinguished weak scope.
var Reusable = NewScope("Reusable")

// Name returns the scope's declared name.
func (s Scope) Name() string { return s.name }

// IsReusable reports whether s is the distinguished reusable scope.
func (s Scope) IsReusable() bool { return s.name == Reusable.name }

func (s Scope) String() string { return "@" + s.name }

// sameScope compares two optional scopes by name.
func sameScope(a, b *Scope) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Name() == b.Name()
}

// scopeStrength orders scopes by caching strength: unscoped < reusable <
// any other named scope. Delegate scope promotion compares strengths, never
// names.
func scopeStrength(s *Scope) int {
	switch {
	case s == nil:
		return 0
	case s.IsReusable():
		return 1
	default:
		return 2
	}
}
