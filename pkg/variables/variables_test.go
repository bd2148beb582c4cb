package variables

import (
	"testing"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/store"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Dictionary
	}{
		{
			name:    "single pair",
			content: "a:1",
			want:    Dictionary{"a": "1"},
		},
		{
			name:    "two separators are skipped",
			content: "a:1:2",
			want:    Dictionary{},
		},
		{
			name:    "escaped colon in key",
			content: `a\:b:val`,
			want:    Dictionary{"a:b": "val"},
		},
		{
			name:    "escaped colon in value",
			content: `url:https\://example.com`,
			want:    Dictionary{"url": "https://example.com"},
		},
		{
			name:    "no separator is skipped",
			content: "just text\n\n",
			want:    Dictionary{},
		},
		{
			name:    "whitespace is kept verbatim",
			content: " name : Alice ",
			want:    Dictionary{" name ": " Alice "},
		},
		{
			name:    "multiple lines and trailing newline",
			content: "name:Alice\ncity:Paris\n",
			want:    Dictionary{"name": "Alice", "city": "Paris"},
		},
		{
			name:    "crlf line endings",
			content: "name:Alice\r\ncity:Paris\r\n",
			want:    Dictionary{"name": "Alice", "city": "Paris"},
		},
		{
			name:    "later definition wins",
			content: "name:Alice\nname:Bob",
			want:    Dictionary{"name": "Bob"},
		},
		{
			name:    "empty value",
			content: "name:",
			want:    Dictionary{"name": ""},
		},
		{
			name:    "unicode before separator",
			content: "café:crème",
			want:    Dictionary{"café": "crème"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.content))
		})
	}
}

func TestDictionary(t *testing.T) {
	dict := Dictionary{"b": "2", "a": "1"}

	v, ok := dict.Lookup("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)

	_, ok = dict.Lookup("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"a", "b"}, dict.Names())
}

func TestLoad(t *testing.T) {
	t.Run("reads and parses", func(t *testing.T) {
		s := store.NewAfero(afero.NewMemMapFs())
		require.NoError(t, s.WriteText("vars.md", "name:Alice\n"))

		dict, err := Load(s, "vars.md")
		require.NoError(t, err)
		assert.Equal(t, Dictionary{"name": "Alice"}, dict)
	})

	t.Run("read failure leaves dictionary empty", func(t *testing.T) {
		s := store.NewAfero(afero.NewMemMapFs())

		dict, err := Load(s, "missing.md")
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrRead))
		assert.Empty(t, dict)
	})
}
