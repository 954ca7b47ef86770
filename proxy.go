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

// moduleNeedsProxy reports whether a sibling proxy type is generated for
// the module: only when it has a non-public, non-private nullary
// constructor, is not abstract, and carries no implicit enclosing-instance
// reference. The decision is a pure function of module visibility.
func moduleNeedsProxy(m *ModuleDescriptor) bool {
	if m.Abstract || m.EnclosingInstance {
		return false
	}
	return m.ConstructorVisibility == PackagePrivate
}

// moduleConstructible reports whether generated code can obtain a module
// instance without outside help, directly or through the proxy.
func moduleConstructible(m *ModuleDescriptor) bool {
	if m.Abstract || m.EnclosingInstance {
		return false
	}
	return m.ConstructorVisibility != Private
}

// moduleProxyName names the sibling proxy type for a module.
func moduleProxyName(m *ModuleDescriptor) string {
	return m.Type.JoinedName() + "_Proxy"
}

// newModuleExpression creates a module instance as seen from the
// requesting package: the constructor when it is visible there, the
// proxy's newInstance otherwise.
func newModuleExpression(m *ModuleDescriptor, requestingPkg string) srctree.Code {
	qualify := func(name string) string {
		if m.Type.Pkg == "" || m.Type.Pkg == requestingPkg {
			return name
		}
		return m.Type.Pkg + "." + name
	}
	constructorVisible := m.ConstructorVisibility == Public || m.Type.Pkg == requestingPkg
	if moduleNeedsProxy(m) && !constructorVisible {
		return srctree.Codef("%s.newInstance()", qualify(moduleProxyName(m)))
	}
	return srctree.Codef("new %s()", qualify(m.Type.Simple()))
}

// generateModuleProxy emits the proxy compilation unit in the module's own
// package: a public final type with a private constructor and a public
// static newInstance that invokes the module constructor.
func generateModuleProxy(m *ModuleDescriptor) *srctree.File {
	return &srctree.File{
		Package: m.Type.Pkg,
		Types: []*srctree.Type{{
			Name:       moduleProxyName(m),
			Visibility: "public",
			Final:      true,
			Methods: []*srctree.Method{
				{
					Name:       moduleProxyName(m),
					Visibility: "private",
				},
				{
					Name:       "newInstance",
					Visibility: "public",
					Static:     true,
					Returns:    m.Type.Simple(),
					Body:       []srctree.Code{srctree.Codef("return new %s();", m.Type.Simple())},
				},
			},
		}},
	}
}
