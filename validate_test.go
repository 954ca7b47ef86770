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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(diags []Diagnostic) []ErrorKind {
	var out []ErrorKind
	for _, d := range diags {
		var ge GraphError
		if errors.As(d.Err, &ge) {
			out = append(out, ge.Kind())
		}
	}
	return out
}

func errorsOnly(diags []Diagnostic) []Diagnostic {
	var out []Diagnostic
	for _, d := range diags {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

func TestValidateMissingBinding(t *testing.T) {
	t.Parallel()

	g := buildGraph(component(entry("thing", typeThing, Instance)), newFakeSources())
	diags := validate(g)
	require.NotEmpty(t, diags)
	assert.Contains(t, kinds(diags), MissingBinding)
	assert.Contains(t, diags[0].Err.Error(), "cannot be provided without a binding")
}

func TestValidateDuplicateBinding(t *testing.T) {
	t.Parallel()

	c := component(entry("thing", typeThing, Instance))
	c.Modules = []*ModuleDescriptor{module(typeModule,
		provision(typeThing, "provideThing", nil),
		provision(typeThing, "provideOther", nil))}
	diags := validate(buildGraph(c, newFakeSources()))
	assert.Contains(t, kinds(diags), DuplicateBinding)
}

func TestCycleLegality(t *testing.T) {
	t.Parallel()

	typeA := ClassName("test", "A")
	typeB := ClassName("test", "B")

	t.Run("instance cycle is fatal", func(t *testing.T) {
		sources := newFakeSources().
			addInjectable(typeA, nil, param(typeB, Instance)).
			addInjectable(typeB, nil, param(typeA, Instance))
		diags := validate(buildGraph(component(entry("a", typeA, Instance)), sources))
		assert.Contains(t, kinds(diags), DependencyCycle)
	})

	t.Run("provider edge legalizes the cycle", func(t *testing.T) {
		sources := newFakeSources().
			addInjectable(typeA, nil, param(typeB, Instance)).
			addInjectable(typeB, nil, param(typeA, Provider))
		diags := validate(buildGraph(component(entry("a", typeA, Instance)), sources))
		assert.NotContains(t, kinds(diags), DependencyCycle)
	})

	t.Run("lazy edge legalizes the cycle", func(t *testing.T) {
		sources := newFakeSources().
			addInjectable(typeA, nil, param(typeB, Instance)).
			addInjectable(typeB, nil, param(typeA, Lazy))
		diags := validate(buildGraph(component(entry("a", typeA, Instance)), sources))
		assert.NotContains(t, kinds(diags), DependencyCycle)
	})

	t.Run("pure delegate chain cycles are fatal", func(t *testing.T) {
		sources := newFakeSources()
		c := component(entry("a", typeA, Instance))
		c.Modules = []*ModuleDescriptor{module(typeModule,
			binds(typeA, typeB, "bindA", nil),
			binds(typeB, typeA, "bindB", nil))}
		diags := validate(buildGraph(c, sources))
		assert.Contains(t, kinds(diags), DependencyCycle)
	})

	t.Run("cycle error reports the path", func(t *testing.T) {
		sources := newFakeSources().
			addInjectable(typeA, nil, param(typeB, Instance)).
			addInjectable(typeB, nil, param(typeA, Instance))
		diags := validate(buildGraph(component(entry("a", typeA, Instance)), sources))
		var found string
		for _, d := range errorsOnly(diags) {
			var ge GraphError
			if errors.As(d.Err, &ge) && ge.Kind() == DependencyCycle {
				found = d.Err.Error()
			}
		}
		assert.Contains(t, found, "depends on")
	})
}

func TestValidateScopeNotOnComponent(t *testing.T) {
	t.Parallel()

	sources := newFakeSources().addInjectable(typeThing, scopeOf(customScope))

	t.Run("undeclared scope is an error", func(t *testing.T) {
		diags := validate(buildGraph(component(entry("thing", typeThing, Instance)), sources))
		assert.Contains(t, kinds(diags), ScopeNotOnComponent)
	})

	t.Run("declared scope passes", func(t *testing.T) {
		c := component(entry("thing", typeThing, Instance))
		c.Scopes = []Scope{customScope}
		diags := validate(buildGraph(c, sources))
		assert.NotContains(t, kinds(diags), ScopeNotOnComponent)
	})

	t.Run("reusable needs no declaration", func(t *testing.T) {
		reusableSources := newFakeSources().addInjectable(typeThing, scopeOf(Reusable))
		diags := validate(buildGraph(component(entry("thing", typeThing, Instance)), reusableSources))
		assert.NotContains(t, kinds(diags), ScopeNotOnComponent)
	})
}

func TestValidateProductionLeak(t *testing.T) {
	t.Parallel()

	c := component(entry("thing", typeThing, Producer))
	c.Modules = []*ModuleDescriptor{module(typeModule, &ModuleBinding{
		Kind:   Production,
		Key:    NewKey(typeThing),
		Method: "produceThing",
		Static: true,
	})}

	t.Run("non-production component rejects it", func(t *testing.T) {
		diags := validate(buildGraph(c, newFakeSources()))
		assert.Contains(t, kinds(diags), ProductionInNonProductionComponent)
	})

	t.Run("production component accepts it", func(t *testing.T) {
		prod := &ComponentDescriptor{Type: typeComp, Production: true, Modules: c.Modules, EntryPoints: c.EntryPoints}
		diags := validate(buildGraph(prod, newFakeSources()))
		assert.NotContains(t, kinds(diags), ProductionInNonProductionComponent)
	})
}

func TestValidateNullableToNonNullable(t *testing.T) {
	t.Parallel()

	c := component(entry("thing", typeThing, Instance))
	c.Modules = []*ModuleDescriptor{module(typeModule, &ModuleBinding{
		Kind:     Provision,
		Key:      NewKey(typeThing),
		Method:   "provideThing",
		Static:   true,
		Nullable: true,
	})}

	t.Run("non-nullable entry point", func(t *testing.T) {
		diags := validate(buildGraph(c, newFakeSources()))
		assert.Contains(t, kinds(diags), NullableToNonNullable)
	})

	t.Run("nullable entry point accepts it", func(t *testing.T) {
		ok := component(EntryPoint{Name: "thing", Key: NewKey(typeThing), Kind: Instance, Nullable: true})
		ok.Modules = c.Modules
		diags := validate(buildGraph(ok, newFakeSources()))
		assert.NotContains(t, kinds(diags), NullableToNonNullable)
	})

	t.Run("provider request accepts it", func(t *testing.T) {
		ok := component(entry("thing", typeThing, Provider))
		ok.Modules = c.Modules
		diags := validate(buildGraph(ok, newFakeSources()))
		assert.NotContains(t, kinds(diags), NullableToNonNullable)
	})
}

func TestValidateMapKeyCollision(t *testing.T) {
	t.Parallel()

	mapKey := mapKeyOf(NewKey(typeThing), typeString)

	t.Run("distinct providers collide as an error", func(t *testing.T) {
		c := component(EntryPoint{Name: "byName", Key: mapKey, Kind: Instance})
		c.Modules = []*ModuleDescriptor{module(typeModule,
			&ModuleBinding{Kind: Provision, Key: NewKey(typeThing), Method: "a", Static: true, IntoMap: true, MapKey: `"x"`, MapKeyType: typeString},
			&ModuleBinding{Kind: Provision, Key: NewKey(typeThing), Method: "b", Static: true, IntoMap: true, MapKey: `"x"`, MapKeyType: typeString},
		)}
		diags := validate(buildGraph(c, newFakeSources()))
		require.Contains(t, kinds(diags), MultibindingMapKeyCollision)
		assert.NotEmpty(t, errorsOnly(diags))
	})

	t.Run("identical delegate providers demote to a warning", func(t *testing.T) {
		sources := newFakeSources().addInjectable(typeDep, nil)
		other := ClassName("test", "OtherModule")
		c := component(EntryPoint{Name: "byName", Key: mapKey, Kind: Instance})
		c.Modules = []*ModuleDescriptor{
			module(typeModule, &ModuleBinding{Kind: Delegate, Key: NewKey(typeThing), Method: "a",
				IntoMap: true, MapKey: `"x"`, MapKeyType: typeString, Deps: []DependencyRequest{instanceDep(typeDep)}}),
			module(other, &ModuleBinding{Kind: Delegate, Key: NewKey(typeThing), Method: "b",
				IntoMap: true, MapKey: `"x"`, MapKeyType: typeString, Deps: []DependencyRequest{instanceDep(typeDep)}}),
		}
		diags := validate(buildGraph(c, sources))
		require.Contains(t, kinds(diags), MultibindingMapKeyCollision)
		assert.Empty(t, errorsOnly(diags), "identical providers should only warn")
	})
}

func TestValidateAssistedUsage(t *testing.T) {
	t.Parallel()

	sources := newFakeSources().
		addInjectable(typeWidget, nil, Parameter{Name: "label", Key: NewKey(typeString), Assisted: true})

	t.Run("direct entry point is incompatible", func(t *testing.T) {
		diags := validate(buildGraph(component(entry("widget", typeWidget, Instance)), sources))
		assert.Contains(t, kinds(diags), IncompatibleAssistedUsage)
	})

	t.Run("through the factory is fine", func(t *testing.T) {
		factoryType := ClassName("test", "WidgetFactory")
		withFactory := newFakeSources().
			addInjectable(typeWidget, nil, Parameter{Name: "label", Key: NewKey(typeString), Assisted: true}).
			addAssistedFactory(&AssistedFactory{Type: factoryType, Method: "create", Target: NewKey(typeWidget)})
		diags := validate(buildGraph(component(entry("factory", factoryType, Instance)), withFactory))
		assert.NotContains(t, kinds(diags), IncompatibleAssistedUsage)
	})
}

func TestValidateInaccessibleExposure(t *testing.T) {
	t.Parallel()

	hidden := TypeName{Pkg: "other", Names: []string{"Hidden"}, Visibility: PackagePrivate}
	sources := newFakeSources().addInjectable(hidden, nil)
	diags := validate(buildGraph(component(entry("hidden", hidden, Instance)), sources))
	assert.Contains(t, kinds(diags), InaccessibleBindingExposure)
}

func TestValidationIgnoresEmissionKnobs(t *testing.T) {
	t.Parallel()

	// The knobs only affect emission; a graph with a validation error reports
	// the same diagnostics with and without them. ExperimentalErrorMessages
	// is left out because it changes the wording of the messages.
	sources := newFakeSources().
		addInjectable(typeThing, scopeOf(customScope))
	run := func(opts ...Option) []string {
		msgs := &RecordingMessager{}
		_ = New(sources, &memSink{}, append(opts, WithMessager(msgs))...).
			Run([]*ComponentDescriptor{component(entry("thing", typeThing, Instance))})
		return msgs.Errors()
	}
	plain := run()
	require.NotEmpty(t, plain)
	assert.Equal(t, plain, run(FastInit(), FormatGeneratedSource(), WriteProducerNameInToken(), IgnoreProvisionKeyWildcards()))
}
