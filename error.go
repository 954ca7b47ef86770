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
	"fmt"
	"io"

	"go.uber.org/atomic"
)

// ErrorKind classifies a validation failure.
type ErrorKind int

const (
	MissingBinding ErrorKind = iota
	DuplicateBinding
	DependencyCycle
	ScopeNotOnComponent
	IncompatibleAssistedUsage
	ProductionInNonProductionComponent
	NullableToNonNullable
	MultibindingMapKeyCollision
	InvalidComponentDeclaration
	InaccessibleBindingExposure
)

func (k ErrorKind) String() string {
	switch k {
	case MissingBinding:
		return "MISSING_BINDING"
	case DuplicateBinding:
		return "DUPLICATE_BINDING"
	case DependencyCycle:
		return "DEPENDENCY_CYCLE"
	case ScopeNotOnComponent:
		return "SCOPE_NOT_ON_COMPONENT"
	case IncompatibleAssistedUsage:
		return "INCOMPATIBLE_ASSISTED_USAGE"
	case ProductionInNonProductionComponent:
		return "PRODUCTION_IN_NON_PRODUCTION_COMPONENT"
	case NullableToNonNullable:
		return "NULLABLE_TO_NON_NULLABLE"
	case MultibindingMapKeyCollision:
		return "MULTIBINDING_MAP_KEY_COLLISION"
	case InvalidComponentDeclaration:
		return "INVALID_COMPONENT_DECLARATION"
	case InaccessibleBindingExposure:
		return "INACCESSIBLE_BINDING_EXPOSURE"
	}
	panic(fmt.Sprintf("unknown error kind %d", int(k)))
}

// GraphError is the interface implemented by every validation error of this
// package.
type GraphError interface {
	error

	// Kind classifies the failure.
	Kind() ErrorKind

	dummy()
}

// wrappedError adds the formatting hooks used by formatError.
type wrappedError interface {
	GraphError
	fmt.Formatter
	Unwrap() error
	writeMessage(w io.Writer, verb string)
}

// formatError calls a wrappedError's writeMessage and then recursively
// prints any error wrapped underneath, multiline under %+v.
func formatError(e wrappedError, w fmt.State, v rune) {
	multiline := w.Flag('+') && v == 'v'
	verb := "%v"
	if multiline {
		verb = "%+v"
	}

	e.writeMessage(w, verb)

	if wrapped := errors.Unwrap(e); wrapped != nil {
		io.WriteString(w, ":")
		if multiline {
			io.WriteString(w, "\n")
		} else {
			io.WriteString(w, " ")
		}
		fmt.Fprintf(w, verb, wrapped)
	}
}

// RootCause unwraps the chain past every GraphError and returns the first
// foreign error, or nil if the chain is entirely ours.
func RootCause(err error) error {
	var ge GraphError
	for {
		if ok := errors.As(err, &ge); ok {
			err = errors.Unwrap(ge)
		} else {
			return err
		}
	}
}

// errMissingBinding is returned when a dependency edge resolves to no
// binding in the graph.
type errMissingBinding struct {
	Key         Key
	RequestedBy []BindingOrigin
}

var _ GraphError = errMissingBinding{}

func (e errMissingBinding) dummy()          {}
func (e errMissingBinding) Kind() ErrorKind { return MissingBinding }

func (e errMissingBinding) Error() string {
	msg := fmt.Sprintf("%v cannot be provided without a binding", e.Key)
	for i, o := range e.RequestedBy {
		if i == 0 {
			msg += fmt.Sprintf("; requested at %v", o)
		} else {
			msg += fmt.Sprintf(", %v", o)
		}
	}
	return msg
}

// errDuplicateBinding is returned when two distinct declarations produce
// the same key.
type errDuplicateBinding struct {
	Key           Key
	First, Second BindingOrigin
}

var _ GraphError = errDuplicateBinding{}

func (e errDuplicateBinding) dummy()          {}
func (e errDuplicateBinding) Kind() ErrorKind { return DuplicateBinding }

func (e errDuplicateBinding) Error() string {
	return fmt.Sprintf("%v is bound multiple times: %v and %v", e.Key, e.First, e.Second)
}

// cycleEntry is one hop of a reported dependency cycle.
type cycleEntry struct {
	Key    Key
	Origin BindingOrigin
}

// errDependencyCycle is returned for a cycle with no deferrable edge to
// break it.
type errDependencyCycle struct {
	Path []cycleEntry
}

var _ GraphError = errDependencyCycle{}

func (e errDependencyCycle) dummy()          {}
func (e errDependencyCycle) Kind() ErrorKind { return DependencyCycle }

func (e errDependencyCycle) Error() string {
	// We get something like,
	//
	//   dependency cycle: foo provided by pkg.M.provideFoo
	//   	depends on bar provided by constructor of pkg.Bar
	//   	depends on foo provided by pkg.M.provideFoo
	//
	msg := "dependency cycle:"
	for i, entry := range e.Path {
		if i == 0 {
			msg += fmt.Sprintf(" %v provided by %v", entry.Key, entry.Origin)
		} else {
			msg += fmt.Sprintf("\n\tdepends on %v provided by %v", entry.Key, entry.Origin)
		}
	}
	return msg
}

// errScopeNotOnComponent is returned when a binding's scope is declared
// neither on the owning component nor on an enclosing one.
type errScopeNotOnComponent struct {
	Scope     Scope
	Binding   BindingOrigin
	Component TypeName
}

var _ GraphError = errScopeNotOnComponent{}

func (e errScopeNotOnComponent) dummy()          {}
func (e errScopeNotOnComponent) Kind() ErrorKind { return ScopeNotOnComponent }

func (e errScopeNotOnComponent) Error() string {
	return fmt.Sprintf("%v binding at %v used in %v, which does not declare the scope", e.Scope, e.Binding, e.Component)
}

// errIncompatibleAssistedUsage is returned when an assisted injection is
// requested other than through its assisted factory.
type errIncompatibleAssistedUsage struct {
	Key         Key
	RequestKind RequestKind
	RequestedBy BindingOrigin
}

var _ GraphError = errIncompatibleAssistedUsage{}

func (e errIncompatibleAssistedUsage) dummy()          {}
func (e errIncompatibleAssistedUsage) Kind() ErrorKind { return IncompatibleAssistedUsage }

func (e errIncompatibleAssistedUsage) Error() string {
	return fmt.Sprintf("assisted injection %v may only be requested through its assisted factory, not as %v at %v",
		e.Key, e.RequestKind, e.RequestedBy)
}

// errProductionInNonProduction is returned when a production binding is
// reachable inside a non-production component.
type errProductionInNonProduction struct {
	Key       Key
	Component TypeName
}

var _ GraphError = errProductionInNonProduction{}

func (e errProductionInNonProduction) dummy()          {}
func (e errProductionInNonProduction) Kind() ErrorKind { return ProductionInNonProductionComponent }

func (e errProductionInNonProduction) Error() string {
	return fmt.Sprintf("%v is a production binding, but %v is not a production component", e.Key, e.Component)
}

// errNullableToNonNullable is returned when a nullable binding satisfies a
// request that cannot accept null.
type errNullableToNonNullable struct {
	Key         Key
	RequestedBy BindingOrigin
}

var _ GraphError = errNullableToNonNullable{}

func (e errNullableToNonNullable) dummy()          {}
func (e errNullableToNonNullable) Kind() ErrorKind { return NullableToNonNullable }

func (e errNullableToNonNullable) Error() string {
	return fmt.Sprintf("%v is nullable, but the request at %v is not", e.Key, e.RequestedBy)
}

// errMapKeyCollision is returned when two contributions to the same map use
// equal map keys.
type errMapKeyCollision struct {
	Key           Key
	MapKey        string
	First, Second BindingOrigin
}

var _ GraphError = errMapKeyCollision{}

func (e errMapKeyCollision) dummy()          {}
func (e errMapKeyCollision) Kind() ErrorKind { return MultibindingMapKeyCollision }

func (e errMapKeyCollision) Error() string {
	return fmt.Sprintf("%v has multiple contributions with map key %s: %v and %v", e.Key, e.MapKey, e.First, e.Second)
}

// errInvalidComponentDeclaration is returned for structurally invalid
// component declarations and for roots still deferred in the final round.
type errInvalidComponentDeclaration struct {
	Component TypeName
	Reason    string
}

var _ GraphError = errInvalidComponentDeclaration{}

func (e errInvalidComponentDeclaration) dummy()          {}
func (e errInvalidComponentDeclaration) Kind() ErrorKind { return InvalidComponentDeclaration }

func (e errInvalidComponentDeclaration) Error() string {
	return fmt.Sprintf("invalid component %v: %s", e.Component, e.Reason)
}

// errInaccessibleBindingExposure is returned when an entry point exposes a
// key whose erasure cannot be referenced from the component's package.
type errInaccessibleBindingExposure struct {
	Key       Key
	Component TypeName
}

var _ GraphError = errInaccessibleBindingExposure{}

func (e errInaccessibleBindingExposure) dummy()          {}
func (e errInaccessibleBindingExposure) Kind() ErrorKind { return InaccessibleBindingExposure }

func (e errInaccessibleBindingExposure) Error() string {
	return fmt.Sprintf("%v is not accessible from %v and cannot be exposed by it", e.Key, e.Component)
}

// errComponentFailed is returned by the driver when a component could not
// be generated. It wraps the first fatal diagnostic.
type errComponentFailed struct {
	Component TypeName
	Reason    error
}

var _ GraphError = errComponentFailed{}

func (e errComponentFailed) dummy()          {}
func (e errComponentFailed) Kind() ErrorKind { return InvalidComponentDeclaration }

func (e errComponentFailed) Unwrap() error { return e.Reason }

func (e errComponentFailed) writeMessage(w io.Writer, _ string) {
	fmt.Fprintf(w, "cannot generate implementation for %v", e.Component)
}

func (e errComponentFailed) Error() string { return fmt.Sprint(e) }
func (e errComponentFailed) Format(w fmt.State, c rune) {
	formatError(e, w, c)
}

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	}
	panic(fmt.Sprintf("unknown severity %d", int(s)))
}

// Diagnostic is one reported finding, tied to the originating element.
type Diagnostic struct {
	Severity Severity
	Origin   BindingOrigin
	Err      error
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%v: %v", d.Severity, d.Err)
}

// Messager is the diagnostic sink collaborator. Implementations are
// write-only; emitters may call them from any stage.
type Messager interface {
	Report(sev Severity, origin BindingOrigin, message string)
}

// reporter fans diagnostics out to the messager while keeping counts that
// any stage may read concurrently with emission.
type reporter struct {
	m        Messager
	errors   atomic.Int64
	warnings atomic.Int64

	// experimental switches messages to the kind-prefixed wording.
	experimental bool
}

func newReporter(m Messager, experimental bool) *reporter {
	return &reporter{m: m, experimental: experimental}
}

func (r *reporter) report(d Diagnostic) {
	switch d.Severity {
	case SeverityError:
		r.errors.Inc()
	case SeverityWarning:
		r.warnings.Inc()
	}
	if r.m == nil {
		return
	}
	msg := d.Err.Error()
	if r.experimental {
		var ge GraphError
		if errors.As(d.Err, &ge) {
			msg = fmt.Sprintf("[%v] %s", ge.Kind(), msg)
		}
	}
	r.m.Report(d.Severity, d.Origin, msg)
}

func (r *reporter) errorCount() int64 { return r.errors.Load() }
