// Package variables loads the definitions source into a Dictionary.
//
// The definitions source is plain text with one key:value pair per line.
// A colon preceded by a backslash is a literal colon, not a separator.
// Lines that do not split into exactly two parts are skipped.
package variables

import (
	"sort"
	"strings"

	"github.com/arthur-debert/varsub/pkg/errors"
	"github.com/arthur-debert/varsub/pkg/logging"
	"github.com/arthur-debert/varsub/pkg/types"
	"github.com/dlclark/regexp2"
)

// separator matches a colon that is not part of an escaped "\:" pair
var separator = regexp2.MustCompile(`:(?<!\\:)`, regexp2.None)

// Dictionary maps variable names to replacement values
type Dictionary map[string]string

// Lookup returns the value for name and whether it is defined
func (d Dictionary) Lookup(name string) (string, bool) {
	v, ok := d[name]
	return v, ok
}

// Names returns the defined names in sorted order
func (d Dictionary) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse builds a Dictionary from raw definitions content.
// Later definitions of the same key win.
func Parse(content string) Dictionary {
	dict := make(Dictionary)
	for _, line := range strings.Split(content, "\n") {
		key, value, ok := splitDefinition(strings.TrimSuffix(line, "\r"))
		if !ok {
			continue
		}
		dict[key] = value
	}
	return dict
}

// Load reads the definitions source at path from store and parses it.
// A read failure returns an empty Dictionary and an ErrRead error.
func Load(store types.DocumentStore, path string) (Dictionary, error) {
	logger := logging.GetLogger("variables")

	content, err := store.ReadText(path)
	if err != nil {
		logger.Error().Err(err).Str("path", path).Msg("Failed to read variable file")
		return Dictionary{}, errors.Wrapf(err, errors.ErrRead, "failed to read variable file %s", path).
			WithDetail("path", path)
	}

	dict := Parse(content)
	logger.Debug().
		Str("path", path).
		Int("count", len(dict)).
		Strs("names", dict.Names()).
		Msg("Loaded variable definitions")
	return dict, nil
}

func splitDefinition(line string) (string, string, bool) {
	runes := []rune(line)
	var parts []string
	start := 0

	m, err := separator.FindRunesMatch(runes)
	for m != nil {
		parts = append(parts, string(runes[start:m.Index]))
		start = m.Index + m.Length
		if len(parts) > 2 {
			return "", "", false
		}
		m, err = separator.FindNextMatch(m)
	}
	if err != nil {
		return "", "", false
	}
	parts = append(parts, string(runes[start:]))

	if len(parts) != 2 {
		return "", "", false
	}
	return unescape(parts[0]), unescape(parts[1]), true
}

func unescape(s string) string {
	return strings.ReplaceAll(s, `\:`, ":")
}
