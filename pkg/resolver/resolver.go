// Package resolver computes the replacement for a single line.
package resolver

import (
	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/marker"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
)

// Result is the outcome of resolving one line
type Result struct {
	// Line is the candidate replacement line; equal to the input unless
	// Modified is true
	Line string
	// Found reports whether the line held a marker
	Found  bool
	Marker marker.Marker
	// Err is a MARKER_MISMATCH or UNDEFINED_VARIABLE error. Its Message is
	// the text recorded in the variable's status.
	Err      *errors.VarsubError
	Modified bool
}

// Name is the variable the line's status entry is keyed by
func (r Result) Name() string {
	return r.Marker.StartName
}

// Resolve matches line and resolves its marker against dict.
// lineNo is the zero-based line index used in mismatch messages.
func Resolve(line string, lineNo int, dict variables.Dictionary) Result {
	m, ok := marker.Match(line)
	if !ok {
		return Result{Line: line}
	}

	result := Result{Line: line, Found: true, Marker: m}

	if !m.WellFormed() {
		result.Err = errors.Newf(errors.ErrMarkerMismatch, "%s and %s does not match at line %d",
			m.StartName, m.EndName, lineNo).
			WithDetail("line", lineNo)
		return result
	}

	value, defined := dict.Lookup(m.StartName)
	if !defined {
		result.Err = errors.Newf(errors.ErrUndefinedVariable, "%s is not defined", m.StartName)
		return result
	}

	if m.Span == m.Render(value) {
		return result
	}

	result.Modified = true
	result.Line = m.Replace(line, value)
	return result
}

// Record folds the result into the document status. Lines without a
// marker leave the status untouched. When a name appears on several lines
// the last one decides the entry; the document flag only ever turns on.
func (r Result) Record(status *types.DocumentStatus) {
	if !r.Found {
		return
	}
	entry := status.Variable(r.Name())
	if r.Err != nil {
		entry.Error = r.Err.Message
		entry.Modified = false
		return
	}
	entry.Error = ""
	entry.Modified = r.Modified
	if r.Modified {
		status.Modified = true
	}
}
