// Package filter turns a free-text query into the ordered set of visible
// indices and keeps a selection anchored across recomputations.
package filter

import (
	"regexp"
	"strings"
)

// Query is a compiled filter. The zero value matches everything.
type Query struct {
	raw   string
	lower string
	re    *regexp.Regexp
}

// Compile trims raw and compiles it as a case-insensitive regular expression.
// Patterns that do not compile fall back to literal substring matching.
func Compile(raw string) Query {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Query{}
	}
	q := Query{raw: raw, lower: strings.ToLower(raw)}
	if re, err := regexp.Compile("(?i)" + raw); err == nil {
		q.re = re
	}
	return q
}

// Empty reports whether the query matches everything.
func (q Query) Empty() bool {
	return q.raw == ""
}

// String returns the trimmed query text.
func (q Query) String() string {
	return q.raw
}

// Match reports whether s satisfies the query.
func (q Query) Match(s string) bool {
	if q.raw == "" {
		return true
	}
	if q.re != nil {
		return q.re.MatchString(s)
	}
	return strings.Contains(strings.ToLower(s), q.lower)
}

// Indices returns, in order, every i in [0, n) for which keep returns true.
// A nil keep selects all indices.
func Indices(n int, keep func(i int) bool) []int {
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if keep == nil || keep(i) {
			out = append(out, i)
		}
	}
	return out
}

// Anchor picks the position within visible whose key equals preferred. When
// preferred is not visible the first position is used; an empty visible set
// also yields 0, which callers treat as "no selection".
func Anchor(visible []int, key func(i int) string, preferred string) int {
	if preferred == "" {
		return 0
	}
	for pos, idx := range visible {
		if key(idx) == preferred {
			return pos
		}
	}
	return 0
}
