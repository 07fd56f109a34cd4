// Package matcher centralizes glob matching for the sync engine. Include
// filters, exclude filters, and deletion-pattern filtering all go through
// the same doublestar dialect, so there is exactly one pattern syntax.
package matcher

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/getcodekit/codekit/pkg/errors"
)

// Matcher matches relative slash-separated paths against glob patterns.
type Matcher struct{}

// New creates a Matcher.
func New() *Matcher {
	return &Matcher{}
}

// ValidatePatterns checks every pattern up front so malformed globs fail
// fast, before any filesystem writes occur.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Newf(errors.ErrGlobInvalid, "invalid glob pattern %q", p)
		}
	}
	return nil
}

// IsMatch reports whether path matches at least one of patterns.
func (m *Matcher) IsMatch(path string, patterns []string) bool {
	for _, p := range patterns {
		ok, err := doublestar.Match(p, path)
		if err != nil {
			continue
		}
		if ok {
			return true
		}
	}
	return false
}

// Allowed applies the standard include/exclude filter: a path is excluded
// when it matches any exclude pattern, and, when include patterns are
// given, it must match at least one of them.
func (m *Matcher) Allowed(relPath string, includeGlobs, excludeGlobs []string) bool {
	if m.IsMatch(relPath, excludeGlobs) {
		return false
	}
	if len(includeGlobs) == 0 {
		return true
	}
	return m.IsMatch(relPath, includeGlobs)
}
