// Package normalize reduces raw domain strings to a canonical join key.
//
// Both data sources run through the same transformation, so matching is
// exactly as strict as this function. It is pure and total: any input
// yields some key, never an error.
package normalize

import "strings"

// Key canonicalizes a raw domain or URL into a bare lowercase hostname.
//
// The transformation lowercases, trims whitespace, strips an http/https
// scheme, strips a leading "www.", cuts at the first "/" (dropping path,
// query, and trailing slash), and drops an explicit port. Input that is not
// a domain at all degrades to its lowercase trimmed form.
//
// Key is idempotent: Key(Key(s)) == Key(s) for every s.
func Key(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))

	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")

	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = s[:i]
	}

	// Strip every leading "www." so repeated application is a fixed point.
	for strings.HasPrefix(s, "www.") {
		s = s[len("www."):]
	}

	// Drop an explicit port, but leave things like IPv6 literals alone.
	if i := strings.IndexByte(s, ':'); i >= 0 && !strings.Contains(s, "[") {
		s = s[:i]
	}

	return s
}
