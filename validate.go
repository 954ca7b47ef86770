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

// validate checks a fully built graph and its subgraphs. Every finding maps
// to exactly one error kind; warnings do not suppress emission. Validation
// is independent of every driver knob.
func validate(g *BindingGraph) []Diagnostic {
	var diags []Diagnostic
	report := func(sev Severity, origin BindingOrigin, err error) {
		diags = append(diags, Diagnostic{Severity: sev, Origin: origin, Err: err})
	}

	component := g.component.Type

	for _, m := range g.missing {
		report(SeverityError, m.requestedBy[0], errMissingBinding{Key: m.key, RequestedBy: m.requestedBy})
	}

	for _, d := range g.duplicates {
		report(SeverityError, d.second, errDuplicateBinding{Key: d.key, First: d.first, Second: d.second})
	}

	if cycle, found := detectCycle(g); found {
		report(SeverityError, cycle.Path[0].Origin, cycle)
	}

	for _, b := range g.nodes {
		if s := b.Scope(); s != nil && !s.IsReusable() && !scopeDeclared(g, *s) {
			report(SeverityError, b.Origin(), errScopeNotOnComponent{Scope: *s, Binding: b.Origin(), Component: component})
		}
		if b.Kind().production() && !g.component.Production {
			report(SeverityError, b.Origin(), errProductionInNonProduction{Key: b.Key(), Component: component})
		}
		if b.Kind() == MultiboundMap {
			validateMapKeys(g, b, report)
		}
	}

	validateEdges(g, report)
	validateRoots(g, report)

	for _, sub := range g.subgraphs {
		diags = append(diags, validate(sub)...)
	}
	return diags
}

// scopeDeclared reports whether s is declared on the graph's component or
// any enclosing component.
func scopeDeclared(g *BindingGraph, s Scope) bool {
	for cur := g; cur != nil; cur = cur.parent {
		if cur.component.DeclaresScope(s) {
			return true
		}
	}
	return false
}

func validateEdges(g *BindingGraph, report func(Severity, BindingOrigin, error)) {
	check := func(src *Binding, target *Binding, kind RequestKind, nullable bool) {
		if target.Kind() == AssistedInjection && src.Kind() != AssistedFactoryBinding {
			report(SeverityError, src.Origin(), errIncompatibleAssistedUsage{
				Key:         target.Key(),
				RequestKind: kind,
				RequestedBy: src.Origin(),
			})
		}
		if target.Nullable() && !nullable && kind == Instance {
			report(SeverityError, src.Origin(), errNullableToNonNullable{Key: target.Key(), RequestedBy: src.Origin()})
		}
	}
	for h, b := range g.nodes {
		for _, e := range g.edges[h] {
			check(b, g.nodes[e.dst], e.kind, e.nullable)
		}
		for _, e := range g.extern[h] {
			check(b, e.target, e.kind, e.nullable)
		}
	}
}

func validateRoots(g *BindingGraph, report func(Severity, BindingOrigin, error)) {
	component := g.component.Type
	for _, root := range g.roots {
		origin := BindingOrigin{Component: &component, Element: root.ep.Name}
		if !root.ep.Key.Type().RawAccessibleFrom(component.Pkg) {
			report(SeverityError, origin, errInaccessibleBindingExposure{Key: root.ep.Key, Component: component})
		}
		if root.binding == nil {
			continue
		}
		if root.binding.Kind() == AssistedInjection {
			report(SeverityError, origin, errIncompatibleAssistedUsage{
				Key:         root.binding.Key(),
				RequestKind: root.ep.Kind,
				RequestedBy: origin,
			})
		}
		if root.binding.Nullable() && !root.ep.Nullable && root.ep.Kind == Instance {
			report(SeverityError, origin, errNullableToNonNullable{Key: root.binding.Key(), RequestedBy: origin})
		}
	}
}

// validateMapKeys reports collisions between contributions to one map.
// Two delegate contributions that forward to the same source key demote the
// collision to a warning: the providers are identical, so the map contents
// are unaffected.
func validateMapKeys(g *BindingGraph, agg *Binding, report func(Severity, BindingOrigin, error)) {
	type seenEntry struct {
		binding *Binding
	}
	seen := make(map[string]seenEntry)
	for _, dep := range agg.Dependencies() {
		contrib, ok := g.ResolvedBinding(dep.Key)
		if !ok {
			continue
		}
		mk := contrib.MapKey()
		prev, dup := seen[mk]
		if !dup {
			seen[mk] = seenEntry{binding: contrib}
			continue
		}
		sev := SeverityError
		if prev.binding.Kind() == Delegate && contrib.Kind() == Delegate &&
			prev.binding.DelegateSource().Key.Equal(contrib.DelegateSource().Key) {
			sev = SeverityWarning
		}
		report(sev, contrib.Origin(), errMapKeyCollision{
			Key:    agg.Key(),
			MapKey: mk,
			First:  prev.binding.Origin(),
			Second: contrib.Origin(),
		})
	}
}
