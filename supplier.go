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
	"strings"

	"go.daggen.dev/daggen/internal/srctree"
)

// frameworkExpression supplies the provider-like handle for b, choosing
// between the three mutually exclusive strategies: the switching-provider
// dispatcher (fast-init), a direct static-factory reference, or a cached
// component field. The choice is a pure function of (binding, graph, mode).
func (c *ComponentImplementation) frameworkExpression(b *Binding) srctree.Code {
	id := b.Key().ID()

	if f, ok := c.fieldsByKey[id]; ok {
		// A re-entrant request during this field's own initialization is a
		// legal provider cycle: the field is patched through a delegate
		// factory once the real initializer is ready.
		if c.initializing[id] {
			c.delegated[id] = true
		}
		return srctree.Code(f.name)
	}
	if e, ok := c.inlineCache[id]; ok {
		return e
	}

	switch {
	case usesSwitchingProvider(b, c.opts.fastInit):
		return c.providerField(b, func() srctree.Code {
			return c.wrapCaching(b, c.switchingExpression(b))
		})

	case usesStaticFactoryCreation(b, c.opts.fastInit):
		if needsCaching(b, c.graph) {
			return c.providerField(b, func() srctree.Code {
				return c.wrapCaching(b, c.creationExpression(b))
			})
		}
		return c.cacheInline(b, c.creationExpression(b))

	case b.Kind() == Delegate && !needsCaching(b, c.graph):
		// The target already has a framework instance; reuse it without a
		// field of our own.
		return c.cacheInline(b, c.delegatedFrameworkExpression(b))

	default:
		return c.providerField(b, func() srctree.Code {
			return c.wrapCaching(b, c.creationExpression(b))
		})
	}
}

func (c *ComponentImplementation) cacheInline(b *Binding, e srctree.Code) srctree.Code {
	c.inlineCache[b.Key().ID()] = e
	return e
}

// delegatedFrameworkExpression forwards to the delegate target's framework
// instance, inserting a raw cast when the bound type differs from the
// target's.
func (c *ComponentImplementation) delegatedFrameworkExpression(b *Binding) srctree.Code {
	target := c.depTarget(b.DelegateSource())
	e := c.implFor(target).frameworkExpression(target)
	if !b.Key().Type().Equal(target.Key().Type()) && !strings.HasPrefix(string(e), "(Provider) ") {
		c.suppress("unchecked")
		return srctree.Codef("(Provider) %s", e)
	}
	return e
}

// providerField emits (once) a component field for b's framework instance
// and returns a reference to it. The field is registered before its
// initializer is computed so that provider cycles terminate; when a cycle
// is observed, initialization switches to the two-phase delegate-factory
// form: the field is set up first and patched after its dependencies
// initialized.
func (c *ComponentImplementation) providerField(b *Binding, init func() srctree.Code) srctree.Code {
	id := b.Key().ID()

	name := c.names.allocate(lowerCamel(b.Key().Type().Simple()) + "Provider")
	raw := !b.Key().Type().AccessibleFrom(c.pkg)
	valueType := b.Key().Type()
	if c.opts.ignoreProvisionKeyWildcards && hasWildcard(valueType) {
		valueType = valueType.Raw()
	}
	fieldType := "Provider<" + c.typeRef(valueType) + ">"
	if raw {
		fieldType = "Provider"
		c.suppress("rawtypes")
	}
	c.fieldsByKey[id] = &providerField{name: name, raw: raw}
	c.fields = append(c.fields, &srctree.Field{Name: name, Type: fieldType})

	c.initializing[id] = true
	mark := len(c.initializers)
	expr := init()
	delete(c.initializing, id)

	if c.delegated[id] {
		setUp := srctree.Codef("this.%s = new DelegateFactory<>();", name)
		c.initializers = append(c.initializers, srctree.Code(""))
		copy(c.initializers[mark+1:], c.initializers[mark:])
		c.initializers[mark] = setUp
		c.initializers = append(c.initializers, srctree.Codef("DelegateFactory.setDelegate(%s, %s);", name, expr))
	} else {
		c.initializers = append(c.initializers, srctree.Codef("this.%s = %s;", name, expr))
	}
	return srctree.Code(name)
}

// wrapCaching applies the memoizing wrapper a scoped binding requires:
// double-check for strong scopes, single-check for the reusable scope.
// Delegates whose scope is not strictly stronger than their target's never
// reach here.
func (c *ComponentImplementation) wrapCaching(b *Binding, underlying srctree.Code) srctree.Code {
	if !needsCaching(b, c.graph) {
		return underlying
	}
	if b.Scope().IsReusable() {
		return srctree.Codef("SingleCheck.provider(%s)", underlying)
	}
	return srctree.Codef("DoubleCheck.provider(%s)", underlying)
}

// creationExpression builds the uncached provider for b: the expression a
// field initializer wraps, or a direct static factory reference when no
// field is needed.
func (c *ComponentImplementation) creationExpression(b *Binding) srctree.Code {
	switch b.Kind() {
	case Injection, AssistedInjection:
		return c.factoryCreateExpression(b)

	case Provision, Production:
		module, requiresInstance := b.Module()
		args := c.frameworkDependencyExpressions(b)
		if requiresInstance {
			args = append([]srctree.Code{srctree.Code(c.moduleFieldRef(module))}, args...)
		}
		if b.Kind() == Production && c.opts.writeProducerNameInToken {
			args = append(args, srctree.Codef("%q", b.Method()))
		}
		return srctree.Codef("%s.create(%s)", c.qualified(module.Pkg, provisionFactoryName(module, b.Method())), joinCode(args))

	case Delegate:
		return c.delegatedFrameworkExpression(b)

	case MultiboundSet:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("SetFactory.empty()")
		}
		var chain strings.Builder
		for _, dep := range deps {
			target := c.depTarget(dep)
			fmt.Fprintf(&chain, ".addProvider(%s)", c.implFor(target).frameworkExpression(target))
		}
		return srctree.Codef("SetFactory.builder(%d, 0)%s.build()", len(deps), chain.String())

	case MultiboundMap:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("MapFactory.empty()")
		}
		var chain strings.Builder
		for _, dep := range deps {
			target := c.depTarget(dep)
			fmt.Fprintf(&chain, ".put(%s, %s)", target.MapKey(), c.implFor(target).frameworkExpression(target))
		}
		return srctree.Codef("MapFactory.builder(%d)%s.build()", len(deps), chain.String())

	case Optional:
		deps := b.Dependencies()
		if len(deps) == 0 {
			return srctree.Code("OptionalFactory.empty()")
		}
		target := c.depTarget(deps[0])
		return srctree.Codef("OptionalFactory.of(%s)", c.implFor(target).frameworkExpression(target))

	case Component:
		return srctree.Codef("InstanceFactory.create(%s)", c.selfRef())

	case ComponentDependencyBinding:
		return srctree.Codef("InstanceFactory.create(%s)", c.depFieldRef(b.DependencyType()))

	case BoundInstance:
		return srctree.Codef("InstanceFactory.create(%s)", c.instanceFieldRef(b.Key()))

	case ComponentProvision, ComponentProduction:
		return srctree.Codef("new Provider() { public Object get() { return %s.%s(); } }",
			c.depFieldRef(b.DependencyType()), b.Method())

	case SubcomponentCreator:
		return srctree.Codef("InstanceFactory.create(%s)", c.directExpression(b))

	case MembersInjectorBinding, MembersInjectionBinding:
		return srctree.Codef("InstanceFactory.create(%s)", c.directExpression(b))

	case AssistedFactoryBinding:
		target := c.depTarget(b.Dependencies()[0])
		impl := c.qualified(b.Factory().Type.Pkg, b.Factory().Type.JoinedName()+"_Impl")
		return srctree.Codef("%s.createFactoryProvider(%s)", impl, c.factoryCreateExpression(target))
	}
	panic(fmt.Sprintf("daggen internal: no such binding kind: %v", b.Kind()))
}
