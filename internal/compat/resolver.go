package compat

import (
	"regexp"
	"strings"
)

// markerPattern matches a trimmed comment body of the form
// "Compatibility: <name>", case-insensitive, per spec.md §6.
var markerPattern = regexp.MustCompile(`(?i)Compatibility\s*:\s*(AoC|UP14|UP15|WK|HD|DE)`)

// Resolver threads the active compatibility level through a walk. It starts
// at an initial level (from a CLI flag or editor setting) and refines
// forward as "/* Compatibility: ... */" markers are observed in source
// order; downgrades are permitted, matching the marker's literal reading.
type Resolver struct {
	level Level
}

// NewResolver creates a Resolver starting at initial.
func NewResolver(initial Level) *Resolver {
	return &Resolver{level: initial}
}

// Level returns the currently active level.
func (r *Resolver) Level() Level {
	return r.level
}

// ObserveComment scans a comment's body for a compatibility marker and, if
// found, updates the active level. It reports the new level and whether a
// marker was found at all.
func (r *Resolver) ObserveComment(body string) (Level, bool) {
	m := markerPattern.FindStringSubmatch(strings.TrimSpace(body))
	if m == nil {
		return r.level, false
	}
	lvl, ok := ParseLevel(m[1])
	if !ok {
		return r.level, false
	}
	r.level = lvl
	return lvl, true
}
