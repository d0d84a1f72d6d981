package fs

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// HiddenRules decides which entries are suppressed while hidden files are
// turned off: platform-hidden names plus any configured glob patterns.
type HiddenRules struct {
	patterns []glob.Glob
}

// NewHiddenRules compiles the configured patterns. Blank patterns are skipped.
func NewHiddenRules(patterns []string) (HiddenRules, error) {
	var rules HiddenRules
	for _, raw := range patterns {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		g, err := glob.Compile(raw)
		if err != nil {
			return rules, fmt.Errorf("invalid hidden pattern %q: %w", raw, err)
		}
		rules.patterns = append(rules.patterns, g)
	}
	return rules, nil
}

// Hidden reports whether e should be suppressed.
func (r HiddenRules) Hidden(e Entry) bool {
	if e.IsHidden() {
		return true
	}
	for _, g := range r.patterns {
		if g.Match(e.Name) {
			return true
		}
	}
	return false
}
