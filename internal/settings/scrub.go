// Package settings renders CodeFind's effective settings and environment for
// display, masking credential-like values.
package settings

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultSensitivePatterns match variable names whose values must never be
// printed in full. Matching is case-insensitive; config scrub_patterns extend
// the list.
var DefaultSensitivePatterns = []string{
	"*_KEY",
	"*_KEY_ID",
	"*_SECRET",
	"*_TOKEN",
	"*_PASSWORD",
	"*_CREDENTIALS",
}

// Scrubber decides which variable names are sensitive and masks their values.
type Scrubber struct {
	patterns []string
}

// NewScrubber combines the default sensitive patterns with extras from
// configuration.
func NewScrubber(extra []string) *Scrubber {
	patterns := make([]string, 0, len(DefaultSensitivePatterns)+len(extra))
	patterns = append(patterns, DefaultSensitivePatterns...)
	patterns = append(patterns, extra...)
	return &Scrubber{patterns: patterns}
}

// Sensitive reports whether the variable name matches a sensitive pattern.
// A nil scrubber treats nothing as sensitive.
func (s *Scrubber) Sensitive(name string) bool {
	if s == nil {
		return false
	}
	upper := strings.ToUpper(name)
	for _, pattern := range s.patterns {
		if matchWildcard(strings.ToUpper(pattern), upper) {
			return true
		}
	}
	return false
}

// Mask hides a sensitive value, keeping the last four characters of longer
// values so users can tell which credential is in play.
func (s *Scrubber) Mask(value string) string {
	if value == "" {
		return ""
	}
	if len(value) <= 4 {
		return strings.Repeat("*", len(value))
	}
	return "****" + value[len(value)-4:]
}

// Scrub returns value, masked when the name is sensitive.
func (s *Scrubber) Scrub(name, value string) string {
	if s.Sensitive(name) {
		return s.Mask(value)
	}
	return value
}

// matchWildcard checks if a string matches a wildcard pattern.
// For simple patterns (* at start/end), uses string matching.
// For complex patterns (containing **), uses doublestar.
func matchWildcard(pattern, s string) bool {
	// Global wildcard matches everything
	if pattern == "*" {
		return true
	}

	// For patterns with **, use doublestar
	if strings.Contains(pattern, "**") {
		matched, _ := doublestar.Match(pattern, s)
		return matched
	}

	// Simple suffix wildcard (prefix*)
	if strings.HasSuffix(pattern, "*") && !strings.HasPrefix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(s, prefix)
	}

	// Simple prefix wildcard (*suffix)
	if strings.HasPrefix(pattern, "*") && !strings.HasSuffix(pattern, "*") {
		suffix := strings.TrimPrefix(pattern, "*")
		return strings.HasSuffix(s, suffix)
	}

	// For patterns with * in the middle or multiple *, use doublestar
	if strings.Contains(pattern, "*") {
		matched, _ := doublestar.Match(pattern, s)
		return matched
	}

	// Exact match
	return pattern == s
}
