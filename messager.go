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

// ZapMessager routes diagnostics to a zap logger: errors at Error level,
// warnings at Warn, notes at Info.
type ZapMessager struct {
	Log *zap.Logger
}

var _ Messager = (*ZapMessager)(nil)

// Report implements Messager.
func (m *ZapMessager) Report(sev Severity, origin BindingOrigin, message string) {
	fields := []zap.Field{zap.String("origin", origin.String())}
	switch sev {
	case SeverityError:
		m.Log.Error(message, fields...)
	case SeverityWarning:
		m.Log.Warn(message, fields...)
	case SeverityNote:
		m.Log.Info(message, fields...)
	}
}

// RecordingMessager retains every reported diagnostic, in order. It backs
// tests and tooling that inspect compiler output.
type RecordingMessager struct {
	Reported []RecordedDiagnostic
}

// RecordedDiagnostic is one captured messager call.
type RecordedDiagnostic struct {
	Severity Severity
	Origin   BindingOrigin
	Message  string
}

var _ Messager = (*RecordingMessager)(nil)

// Report implements Messager.
func (m *RecordingMessager) Report(sev Severity, origin BindingOrigin, message string) {
	m.Reported = append(m.Reported, RecordedDiagnostic{Severity: sev, Origin: origin, Message: message})
}

// Errors returns the recorded error messages.
func (m *RecordingMessager) Errors() []string {
	var out []string
	for _, d := range m.Reported {
		if d.Severity == SeverityError {
			out = append(out, d.Message)
		}
	}
	return out
}
