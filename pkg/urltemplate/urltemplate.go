// Package urltemplate builds concrete page URLs from a user-supplied
// URL template.
//
// A template addresses pagination in one of three ways, tried in order:
//
//  1. A literal {page} placeholder, substituted with the page number.
//  2. An existing page= query parameter, whose value is replaced.
//  3. Neither: a page=<n> parameter is appended.
//
// Templates are treated as opaque text, not parsed URLs: a template
// containing {page} is not necessarily valid input for a URL parser,
// and round-tripping through one could reorder query parameters.
package urltemplate

import (
	"regexp"
	"strconv"
	"strings"
)

// Placeholder is the literal token substituted with the page number.
const Placeholder = "{page}"

// pageParam matches the first page= query parameter, capturing the
// preceding separator so the replacement keeps it intact.
// Compiled once at startup; templates are matched concurrently.
var pageParam = regexp.MustCompile(`([?&])page=\d+`)

// ForPage returns the concrete URL for the given page number.
// It never fails; any string input produces a string output.
func ForPage(template string, page int) string {
	n := strconv.Itoa(page)

	if strings.Contains(template, Placeholder) {
		return strings.ReplaceAll(template, Placeholder, n)
	}

	if pageParam.MatchString(template) {
		replaced := false
		return pageParam.ReplaceAllStringFunc(template, func(m string) string {
			if replaced {
				return m
			}
			replaced = true
			// m[0] is the captured ? or & separator.
			return m[:1] + "page=" + n
		})
	}

	sep := "?"
	if strings.Contains(template, "?") {
		sep = "&"
	}
	return template + sep + "page=" + n
}
