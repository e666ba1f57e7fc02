// Package query narrows a catalog down to the entries matching the user's
// input.
package query

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/lvim-tech/qlaunch/pkg/desktop"
)

// Filter returns the entries whose lower-cased name starts with the
// lower-cased text, in catalog order. The text is matched literally.
// Empty text yields an empty result, not the whole catalog.
func Filter(catalog desktop.Catalog, text string) desktop.Catalog {
	if len(text) == 0 {
		return desktop.Catalog{}
	}

	lower := cases.Lower(language.Und)
	prefix := lower.String(text)

	matches := desktop.Catalog{}
	for _, entry := range catalog {
		if strings.HasPrefix(lower.String(entry.Name), prefix) {
			matches = append(matches, entry)
		}
	}
	return matches
}

// First returns the first entry matching text.
func First(catalog desktop.Catalog, text string) (desktop.Entry, bool) {
	matches := Filter(catalog, text)
	if len(matches) == 0 {
		return desktop.Entry{}, false
	}
	return matches[0], true
}
