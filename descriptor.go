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

// EntryPoint is a method on a component's public surface. Its key and
// request kind define a root request of the component's binding graph.
type EntryPoint struct {
	Name     string
	Key      Key
	Kind     RequestKind
	Nullable bool
}

// ModuleBinding is one declaration inside a module: a provision, a
// delegation, an optional declaration, or a multibinding contribution.
type ModuleBinding struct {
	// Kind is Provision, Delegate, or Production. Optional declarations
	// set Optional instead.
	Kind BindingKind

	Key      Key
	Scope    *Scope
	Nullable bool
	Method   string

	// Static provisions need no module instance.
	Static bool

	Deps []DependencyRequest

	// IntoSet and IntoMap mark the declaration as a multibinding
	// contribution; MapKey carries the map key literal and MapKeyType the
	// key annotation's type for IntoMap.
	IntoSet    bool
	IntoMap    bool
	MapKey     string
	MapKeyType TypeName

	// Optional marks a declaration that an Optional of Key may be
	// requested whether or not an underlying binding exists.
	Optional bool
}

// ModuleDescriptor describes a module type and its declarations.
type ModuleDescriptor struct {
	Type     TypeName
	Bindings []*ModuleBinding
	Includes []*ModuleDescriptor

	// Abstract modules and modules with an implicit enclosing-instance
	// reference cannot be instantiated by generated code.
	Abstract          bool
	EnclosingInstance bool

	// ConstructorVisibility is the visibility of the nullary constructor.
	ConstructorVisibility Visibility
}

// RequiresInstance reports whether any declaration needs a module instance.
func (m *ModuleDescriptor) RequiresInstance() bool {
	if m.Abstract {
		return false
	}
	for _, b := range m.Bindings {
		if b.Kind != Delegate && !b.Optional && !b.Static {
			return true
		}
	}
	return false
}

// DependencyProvision is a provision method on a component dependency.
type DependencyProvision struct {
	Method     string
	Key        Key
	Production bool
}

// ComponentDependency is an externally supplied object whose provision
// methods become bindings of the graph.
type ComponentDependency struct {
	Type       TypeName
	Provisions []DependencyProvision
}

// ComponentDescriptor is a user-declared component root: its API surface,
// module set, dependencies, declared scopes, and nested subcomponents.
type ComponentDescriptor struct {
	Type       TypeName
	Production bool

	Scopes       []Scope
	Modules      []*ModuleDescriptor
	Dependencies []*ComponentDependency
	EntryPoints  []EntryPoint

	// BoundInstances are keys the creator binds directly.
	BoundInstances []Key

	// CreatorType is the declared creator (builder or factory) type for
	// subcomponents reachable through a creator binding.
	CreatorType *TypeName

	Subcomponents []*ComponentDescriptor
}

// DeclaresScope reports whether the component declares s.
func (c *ComponentDescriptor) DeclaresScope(s Scope) bool {
	for _, declared := range c.Scopes {
		if declared.Name() == s.Name() {
			return true
		}
	}
	return false
}

// modules returns the transitive module set in declaration order, visiting
// includes depth-first and keeping the first occurrence of each module
// type. Deterministic for identical declarations.
func (c *ComponentDescriptor) modules() []*ModuleDescriptor {
	var out []*ModuleDescriptor
	seen := make(map[string]bool)
	var visit func(ms []*ModuleDescriptor)
	visit = func(ms []*ModuleDescriptor) {
		for _, m := range ms {
			id := m.Type.String()
			if seen[id] {
				continue
			}
			seen[id] = true
			out = append(out, m)
			visit(m.Includes)
		}
	}
	visit(c.Modules)
	return out
}
