// Package article provides canonical handling of wiki article references.
package article

import "strings"

// PathMarker denotes an article path within a URL.
const PathMarker = "/wiki/"

// Normalize reduces any article reference (absolute URL, path, or bare
// fragment, optionally with query or fragment suffixes) to a canonical path
// for equality comparison. It is total and idempotent.
//
// Every goal comparison must normalize both sides; raw string equality is
// never a correct substitute.
func Normalize(ref string) string {
	if idx := strings.Index(ref, PathMarker); idx >= 0 {
		return PathMarker + stripSuffixes(ref[idx+len(PathMarker):])
	}
	return stripSuffixes(ref)
}

// stripSuffixes removes everything from the first '#' and then from the
// first '?'.
func stripSuffixes(s string) string {
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = s[:i]
	}
	if i := strings.IndexByte(s, '?'); i >= 0 {
		s = s[:i]
	}
	return s
}

// Title returns the human-readable article name for a reference: the last
// path segment with underscores mapped to spaces.
func Title(ref string) string {
	path := Normalize(ref)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	return strings.ReplaceAll(path, "_", " ")
}
