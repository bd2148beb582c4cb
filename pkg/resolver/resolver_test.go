package resolver

import (
	"testing"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/arthur-debert/varsub/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func span(start, body, end string) string {
	return `<span class="var-start">` + start + `</span>` + body + `<span class="var-end">` + end + `</span>`
}

func TestResolve(t *testing.T) {
	dict := variables.Dictionary{"name": "Alice", "empty": ""}

	tests := []struct {
		name         string
		line         string
		wantFound    bool
		wantModified bool
		wantLine     string
		wantCode     errors.ErrorCode
		wantMessage  string
	}{
		{
			name:     "no marker",
			line:     "nothing here",
			wantLine: "nothing here",
		},
		{
			name:         "substitutes value",
			line:         span("name", "Hi", "name"),
			wantFound:    true,
			wantModified: true,
			wantLine:     span("name", "Alice", "name"),
		},
		{
			name:      "already substituted",
			line:      span("name", "Alice", "name"),
			wantFound: true,
			wantLine:  span("name", "Alice", "name"),
		},
		{
			name:         "keeps surrounding text",
			line:         "Dear " + span("name", "?", "name") + ",",
			wantFound:    true,
			wantModified: true,
			wantLine:     "Dear " + span("name", "Alice", "name") + ",",
		},
		{
			name:         "empty value",
			line:         span("empty", "old", "empty"),
			wantFound:    true,
			wantModified: true,
			wantLine:     span("empty", "", "empty"),
		},
		{
			name:        "mismatched names",
			line:        span("x", "body", "y"),
			wantFound:   true,
			wantLine:    span("x", "body", "y"),
			wantCode:    errors.ErrMarkerMismatch,
			wantMessage: "x and y does not match at line 3",
		},
		{
			name:        "undefined variable",
			line:        span("ghost", "body", "ghost"),
			wantFound:   true,
			wantLine:    span("ghost", "body", "ghost"),
			wantCode:    errors.ErrUndefinedVariable,
			wantMessage: "ghost is not defined",
		},
		{
			name:        "mismatch wins over undefined",
			line:        span("ghost", "body", "name"),
			wantFound:   true,
			wantLine:    span("ghost", "body", "name"),
			wantCode:    errors.ErrMarkerMismatch,
			wantMessage: "ghost and name does not match at line 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Resolve(tt.line, 3, dict)

			assert.Equal(t, tt.wantFound, r.Found)
			assert.Equal(t, tt.wantModified, r.Modified)
			assert.Equal(t, tt.wantLine, r.Line)
			if tt.wantCode == "" {
				assert.Nil(t, r.Err)
				return
			}
			require.NotNil(t, r.Err)
			assert.Equal(t, tt.wantCode, r.Err.Code)
			assert.Equal(t, tt.wantMessage, r.Err.Message)
			assert.False(t, r.Modified)
		})
	}
}

func TestResolveIsIdempotent(t *testing.T) {
	dict := variables.Dictionary{"name": "Alice"}

	first := Resolve(span("name", "Hi", "name"), 0, dict)
	require.True(t, first.Modified)

	second := Resolve(first.Line, 0, dict)
	assert.False(t, second.Modified)
	assert.Equal(t, first.Line, second.Line)
}

func TestRecord(t *testing.T) {
	dict := variables.Dictionary{"name": "Alice"}

	t.Run("no marker leaves status empty", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve("plain", 0, dict).Record(status)
		assert.False(t, status.HasVariables())
		assert.False(t, status.Modified)
	})

	t.Run("modified line marks document", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve(span("name", "Hi", "name"), 0, dict).Record(status)
		assert.Equal(t, &types.VariableStatus{Modified: true}, status.Variables["name"])
		assert.True(t, status.Modified)
	})

	t.Run("no-op line records unmodified", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve(span("name", "Alice", "name"), 0, dict).Record(status)
		assert.Equal(t, &types.VariableStatus{Modified: false}, status.Variables["name"])
		assert.False(t, status.Modified)
	})

	t.Run("errors are keyed by start name", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve(span("x", "", "y"), 0, dict).Record(status)
		assert.Equal(t, &types.VariableStatus{Error: "x and y does not match at line 0"}, status.Variables["x"])
		assert.NotContains(t, status.Variables, "y")
		assert.False(t, status.Modified)
	})

	t.Run("repeated name keeps the last line's outcome", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve(span("name", "Hi", "name"), 0, dict).Record(status)
		Resolve(span("name", "", "other"), 1, dict).Record(status)

		assert.Equal(t, &types.VariableStatus{Error: "name and other does not match at line 1"}, status.Variables["name"])
		assert.True(t, status.Modified)
	})

	t.Run("repeated name clears an earlier error", func(t *testing.T) {
		status := types.NewDocumentStatus("a.md")
		Resolve(span("name", "", "other"), 0, dict).Record(status)
		Resolve(span("name", "Hi", "name"), 1, dict).Record(status)

		assert.Equal(t, &types.VariableStatus{Modified: true}, status.Variables["name"])
		assert.True(t, status.Modified)
	})
}
