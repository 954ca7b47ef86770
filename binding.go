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

// DependencyRequest is one ordered dependency of a binding: the key it
// resolves and the kind of handle the binding needs for it.
type DependencyRequest struct {
	Key      Key
	Kind     RequestKind
	Nullable bool
}

func (d DependencyRequest) String() string {
	return fmt.Sprintf("%v (%v)", d.Key, d.Kind)
}

// BindingOrigin records where a binding came from, for diagnostics. Exactly
// one of the fields describes the declaring site.
type BindingOrigin struct {
	// Module and Element are set for module-declared bindings.
	Module *TypeName
	// Type is set for constructor-discovered and members-injection
	// bindings.
	Type *TypeName
	// Component and Element are set for component-derived bindings.
	Component *TypeName
	// Element names the declaring method or constructor, if any.
	Element string
}

func (o BindingOrigin) String() string {
	switch {
	case o.Module != nil:
		return fmt.Sprintf("%v.%s", o.Module, o.Element)
	case o.Type != nil && o.Element != "":
		return fmt.Sprintf("%v.%s", o.Type, o.Element)
	case o.Type != nil:
		return fmt.Sprintf("constructor of %v", o.Type)
	case o.Component != nil && o.Element != "":
		return fmt.Sprintf("%v.%s", o.Component, o.Element)
	case o.Component != nil:
		return o.Component.String()
	}
	return "<synthetic>"
}

// Binding is a recipe mapping a key to a construction strategy. Bindings are
// produced during graph build and immutable thereafter; payload accessors
// panic with an assertion failure naming the binding when called for the
// wrong kind.
type Binding struct {
	key      Key
	kind     BindingKind
	scope    *Scope
	nullable bool
	deps     []DependencyRequest
	origin   BindingOrigin

	// owner is the component whose graph the binding was installed in.
	owner TypeName

	// Provision and Production payload.
	module                *TypeName
	method                string
	requiresModuleInstance bool

	// Delegate payload.
	delegateSource *DependencyRequest

	// Multibinding contribution payload.
	mapKey string

	// AssistedInjection payload.
	assistedParams []Parameter

	// AssistedFactory payload.
	factory *AssistedFactory

	// ComponentProvision and ComponentProduction payload.
	dependency *TypeName

	// SubcomponentCreator payload.
	subcomponent *ComponentDescriptor
}

// Key returns the binding's key.
func (b *Binding) Key() Key { return b.key }

// Kind returns the binding's variant.
func (b *Binding) Kind() BindingKind { return b.kind }

// Scope returns the declared scope, or nil for unscoped bindings.
func (b *Binding) Scope() *Scope { return b.scope }

// Nullable reports whether the provided value may be null.
func (b *Binding) Nullable() bool { return b.nullable }

// Dependencies returns the binding's ordered dependency requests.
func (b *Binding) Dependencies() []DependencyRequest { return b.deps }

// Origin returns the declaring site.
func (b *Binding) Origin() BindingOrigin { return b.origin }

// Owner returns the component that owns the binding.
func (b *Binding) Owner() TypeName { return b.owner }

func (b *Binding) String() string {
	return fmt.Sprintf("%v binding for %v", b.kind, b.key)
}

func (b *Binding) assertKind(kinds ...BindingKind) {
	for _, k := range kinds {
		if b.kind == k {
			return
		}
	}
	panic(fmt.Sprintf("daggen internal: %v accessed as %v", b, kinds))
}

// Module returns the declaring module of a provision or production binding
// and whether a module instance is required to invoke it.
func (b *Binding) Module() (TypeName, bool) {
	b.assertKind(Provision, Production, Delegate)
	if b.module == nil {
		return TypeName{}, false
	}
	return *b.module, b.requiresModuleInstance
}

// Method returns the declaring module method name.
func (b *Binding) Method() string {
	b.assertKind(Provision, Production, Delegate, ComponentProvision, ComponentProduction)
	return b.method
}

// DelegateSource returns the request a delegate binding forwards to.
func (b *Binding) DelegateSource() DependencyRequest {
	b.assertKind(Delegate)
	return *b.delegateSource
}

// MapKey returns the map key literal of a map contribution.
func (b *Binding) MapKey() string { return b.mapKey }

// AssistedParams returns the caller-supplied parameters of an assisted
// injection binding.
func (b *Binding) AssistedParams() []Parameter {
	b.assertKind(AssistedInjection)
	return b.assistedParams
}

// Factory returns the declaration payload of an assisted factory binding.
func (b *Binding) Factory() *AssistedFactory {
	b.assertKind(AssistedFactoryBinding)
	return b.factory
}

// DependencyType returns the component dependency a provision method
// belongs to.
func (b *Binding) DependencyType() TypeName {
	b.assertKind(ComponentProvision, ComponentProduction, ComponentDependencyBinding)
	return *b.dependency
}

// Subcomponent returns the child component a creator binding instantiates.
func (b *Binding) Subcomponent() *ComponentDescriptor {
	b.assertKind(SubcomponentCreator)
	return b.subcomponent
}
