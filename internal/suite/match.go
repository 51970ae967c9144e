package suite

import (
	"path/filepath"
	"strings"
)

// MatchName reports whether a spec file name matches a selector pattern.
// Supports patterns like "*user_spec.js" or "*payment*"; a pattern without
// wildcards matches as a substring.
func MatchName(pattern, specPath string) bool {
	if pattern == "" {
		return false
	}

	name := filepath.Base(specPath)

	// Try to match using filepath.Match (supports * and ? wildcards)
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if strings.Contains(pattern, "*") {
		// Every non-empty fragment between wildcards has to appear in the name
		parts := strings.Split(pattern, "*")
		hasNonEmptyPart := false
		for _, part := range parts {
			if part == "" {
				continue
			}
			hasNonEmptyPart = true
			if !strings.Contains(name, part) {
				return false
			}
		}
		return hasNonEmptyPart
	}

	if strings.Contains(pattern, "?") {
		return false
	}
	return strings.Contains(name, pattern)
}
