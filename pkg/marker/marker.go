// Package marker finds variable markers in a single line of text.
//
// A marker is a start span wrapping a variable name, arbitrary text, and an
// end span wrapping a name:
//
//	<span class="var-start">name</span>value<span class="var-end">name</span>
//
// Matching is leftmost with a greedy body, so only the first marker of a
// line is returned and its body extends to the last end span on the line.
package marker

import (
	"regexp"
)

var pattern = regexp.MustCompile(`(<span class="var-start">([\w-]+)</span>).*(<span class="var-end">([\w-]+)</span>)`)

// Marker is a structural match within one line
type Marker struct {
	// Span is the full matched text, the part of the line that gets replaced
	Span string
	// OpenTag is the literal start span including its name
	OpenTag string
	// CloseTag is the literal end span including its name
	CloseTag string
	// StartName and EndName are the names inside the start and end spans
	StartName string
	EndName   string
	// Start and End are byte offsets of Span within the line
	Start int
	End   int
}

// Match returns the first marker in line, if any
func Match(line string) (Marker, bool) {
	loc := pattern.FindStringSubmatchIndex(line)
	if loc == nil {
		return Marker{}, false
	}
	return Marker{
		Span:      line[loc[0]:loc[1]],
		OpenTag:   line[loc[2]:loc[3]],
		StartName: line[loc[4]:loc[5]],
		CloseTag:  line[loc[6]:loc[7]],
		EndName:   line[loc[8]:loc[9]],
		Start:     loc[0],
		End:       loc[1],
	}, true
}

// WellFormed reports whether the start and end names agree
func (m Marker) WellFormed() bool {
	return m.StartName == m.EndName
}

// Render returns the span with its body replaced by value
func (m Marker) Render(value string) string {
	return m.OpenTag + value + m.CloseTag
}

// Replace returns line with the marker span replaced by Render(value)
func (m Marker) Replace(line, value string) string {
	return line[:m.Start] + m.Render(value) + line[m.End:]
}
