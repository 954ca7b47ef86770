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

	"go.uber.org/zap"

	"go.daggen.dev/daggen/internal/srctree"
)

// Sink persists generated compilation units. The core hands it abstract
// source trees; formatting and file layout are its business.
type Sink interface {
	Write(f *srctree.File) error
}

// Driver walks annotated component roots through the pipeline: graph
// build, validation, emission. Roots whose inputs are expected from a
// later generation round are deferred and retried; a terminal round that
// still defers is an error. All mutable state lives on the driver value
// and is released when Run returns.
type Driver struct {
	sources  Sources
	sink     Sink
	opts     options
	log      *zap.Logger
	reporter *reporter
}

// New builds a driver over the front-end and output collaborators.
func New(sources Sources, sink Sink, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt.applyOption(&o)
	}
	return &Driver{
		sources:  sources,
		sink:     sink,
		opts:     o,
		log:      o.logger,
		reporter: newReporter(o.messager, o.experimentalErrorMessages),
	}
}

type rootResult struct {
	deferred bool
	failed   bool
	firstErr error
}

// Run processes every root component. It returns the first failure after
// all roots have been attempted; diagnostics for every component are
// reported through the messager regardless.
func (d *Driver) Run(roots []*ComponentDescriptor) error {
	var firstFailure error
	pending := roots
	for round := 0; len(pending) > 0; round++ {
		d.log.Debug("processing round",
			zap.Int("round", round),
			zap.Int("roots", len(pending)))

		var deferred []*ComponentDescriptor
		progress := false
		for _, c := range pending {
			res := d.processRoot(c)
			switch {
			case res.deferred:
				deferred = append(deferred, c)
			default:
				progress = true
				if res.failed && firstFailure == nil {
					firstFailure = errComponentFailed{Component: c.Type, Reason: res.firstErr}
				}
			}
		}

		if len(deferred) > 0 && !progress {
			// Terminal round: nothing moved, so the missing inputs will
			// never materialize.
			for _, c := range deferred {
				err := errInvalidComponentDeclaration{
					Component: c.Type,
					Reason:    "inputs were still unavailable in the final round",
				}
				d.reporter.report(Diagnostic{Severity: SeverityError, Origin: BindingOrigin{Component: &c.Type}, Err: err})
				if firstFailure == nil {
					firstFailure = err
				}
			}
			break
		}
		pending = deferred
	}

	d.log.Info("generation finished",
		zap.Int64("errors", d.reporter.errorCount()),
		zap.Int64("warnings", d.reporter.warnings.Load()))
	return firstFailure
}

// processRoot runs the stages for one component tree. A fatal diagnostic
// aborts this component only; other roots are untouched.
func (d *Driver) processRoot(c *ComponentDescriptor) rootResult {
	builder := newGraphBuilder(d.sources)
	graph := builder.Build(c)
	if deferredTypes := builder.Deferred(); len(deferredTypes) > 0 {
		d.log.Debug("deferring component",
			zap.String("component", c.Type.String()),
			zap.Int("pendingTypes", len(deferredTypes)))
		return rootResult{deferred: true}
	}

	diags := validate(graph)
	var firstErr error
	for _, diag := range diags {
		d.reporter.report(diag)
		if diag.Severity == SeverityError && firstErr == nil {
			firstErr = diag.Err
		}
	}
	if firstErr != nil {
		d.log.Debug("skipping emission", zap.String("component", c.Type.String()))
		return rootResult{failed: true, firstErr: firstErr}
	}

	impl := newComponentImplementation(graph, nil, &d.opts)
	if err := d.write(impl.Generate()); err != nil {
		return rootResult{failed: true, firstErr: err}
	}

	for _, m := range modulesNeedingProxies(c) {
		if err := d.write(generateModuleProxy(m)); err != nil {
			return rootResult{failed: true, firstErr: err}
		}
	}

	if c.Production {
		d.generateMonitoringModule(c)
	}

	d.log.Debug("generated component", zap.String("component", c.Type.String()))
	return rootResult{}
}

// write stamps emission hints on the file and hands it to the sink.
func (d *Driver) write(f *srctree.File) error {
	f.Format = d.opts.formatGeneratedSource
	return d.sink.Write(f)
}

// modulesNeedingProxies collects, across the component tree, every module
// whose constructor needs the proxy indirection, in declaration order.
func modulesNeedingProxies(c *ComponentDescriptor) []*ModuleDescriptor {
	var out []*ModuleDescriptor
	seen := make(map[string]bool)
	var visit func(*ComponentDescriptor)
	visit = func(c *ComponentDescriptor) {
		for _, m := range c.modules() {
			if seen[m.Type.String()] {
				continue
			}
			seen[m.Type.String()] = true
			if moduleNeedsProxy(m) {
				out = append(out, m)
			}
		}
		for _, sub := range c.Subcomponents {
			visit(sub)
		}
	}
	visit(c)
	return out
}

// generateMonitoringModule emits the production monitoring module for a
// production component and records a note.
func (d *Driver) generateMonitoringModule(c *ComponentDescriptor) {
	name := c.Type.JoinedName() + "_MonitoringModule"
	file := &srctree.File{
		Package: c.Type.Pkg,
		Types: []*srctree.Type{{
			Name:       name,
			Visibility: "public",
			Final:      true,
			Kind:       "class",
			Methods: []*srctree.Method{{
				Name:       "monitor",
				Visibility: "public",
				Static:     true,
				Returns:    "ProductionComponentMonitor.Factory",
				Body:       []srctree.Code{srctree.Code("return ProductionComponentMonitor.Factory.noOp();")},
			}},
		}},
	}
	if err := d.write(file); err != nil {
		d.reporter.report(Diagnostic{
			Severity: SeverityError,
			Origin:   BindingOrigin{Component: &c.Type},
			Err:      err,
		})
		return
	}
	d.reporter.report(Diagnostic{
		Severity: SeverityNote,
		Origin:   BindingOrigin{Component: &c.Type},
		Err:      fmt.Errorf("generated monitoring module %s", name),
	})
}
