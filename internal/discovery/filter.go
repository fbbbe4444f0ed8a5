package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test sources by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters sources by test name using wildcard matching.
// Supports patterns like "loop*" or "*mul*"; a pattern without wildcards matches as a substring.
func (f *Filter) FilterByName(sources []Source, pattern string) []Source {
	if pattern == "" {
		return sources
	}

	var filtered []Source
	for _, src := range sources {
		if f.matches(src.Name, pattern) {
			filtered = append(filtered, src)
		}
	}
	return filtered
}

func (f *Filter) matches(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// filepath.Match is anchored; fall back to matching the non-wildcard parts in order
	if !strings.Contains(pattern, "*") {
		return false
	}
	rest := name
	found := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		found = true
	}
	return found
}
