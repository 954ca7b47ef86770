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

// Package daggen is the core of a compile-time dependency-injection code
// generator. It consumes declarative DI metadata from a front-end
// collaborator (components, modules, injectable constructors, bindings,
// multibindings, scopes, qualifiers, assisted factories, production
// pipelines) and, per declared component, emits a self-contained
// implementation as an abstract source tree.
//
// The pipeline runs in stages, leaves first: the key model gives every
// requested dependency a canonical identity; the binding graph builder
// resolves each entry point into a rooted graph of bindings; the validator
// checks scoping, duplication, reachability, and cycle rules; the
// representation selector chooses, per binding and request kind, between a
// direct instance expression and a provider-like framework handle; the
// instance supplier strategies materialize those handles as static factory
// references, cached component fields, or a fast-init switching-provider
// dispatcher; and the component implementation builder aggregates the
// contributions into the final source tree.
//
// The pipeline is single-threaded and cooperative. Enumeration orders are
// deterministic functions of declaration order, so identical inputs
// produce byte-identical output across runs.
package daggen
