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

import "go.uber.org/zap"

// An Option configures the driver. Every knob affects code emission only;
// none changes a validation outcome.
type Option interface {
	applyOption(*options)
}

type optionFunc func(*options)

func (f optionFunc) applyOption(o *options) { f(o) }

type options struct {
	fastInit                    bool
	formatGeneratedSource       bool
	writeProducerNameInToken    bool
	experimentalErrorMessages   bool
	ignoreProvisionKeyWildcards bool

	logger   *zap.Logger
	messager Messager
}

func defaultOptions() options {
	return options{logger: zap.NewNop()}
}

// FastInit selects the switching-provider emission mode, trading per-call
// dispatch for fewer generated factory classes.
func FastInit() Option {
	return optionFunc(func(o *options) { o.fastInit = true })
}

// FormatGeneratedSource asks the output sink to format emitted files.
func FormatGeneratedSource() Option {
	return optionFunc(func(o *options) { o.formatGeneratedSource = true })
}

// WriteProducerNameInToken includes producer method names in monitor
// tokens.
func WriteProducerNameInToken() Option {
	return optionFunc(func(o *options) { o.writeProducerNameInToken = true })
}

// ExperimentalErrorMessages switches diagnostics to the experimental
// wording.
func ExperimentalErrorMessages() Option {
	return optionFunc(func(o *options) { o.experimentalErrorMessages = true })
}

// IgnoreProvisionKeyWildcards erases a provider field's type to its raw
// type when the binding key's type carries a wildcard argument at any depth.
// Keys themselves are unchanged.
func IgnoreProvisionKeyWildcards() Option {
	return optionFunc(func(o *options) { o.ignoreProvisionKeyWildcards = true })
}

// WithLogger sets the driver's logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) { o.logger = l })
}

// WithMessager sets the diagnostic sink.
func WithMessager(m Messager) Option {
	return optionFunc(func(o *options) { o.messager = m })
}
