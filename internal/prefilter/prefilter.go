// Package prefilter implements the quick-reject pre-filter spec.md marks as
// an external collaborator to the core ("a collection of heuristic string
// checks"): required prefix/suffix, minimum length, and required literal
// segments, any of which can short-circuit a match to false before the
// automaton ever runs (spec.md §4.3, §9).
package prefilter

import (
	"strings"

	"github.com/coregx/ahocorasick"
)

// manyLiteralsThreshold is the point past which building an Aho-Corasick
// automaton to search for every required literal in one pass over the path
// string pays for its own construction cost; below it a plain loop of
// strings.Contains calls is cheaper and simpler. Mirrors the shape of the
// teacher's own strategy selection (meta.UseAhoCorasick kicks in only past
// a literal-count threshold, never for a handful of patterns).
const manyLiteralsThreshold = 3

// Filter is the concrete quick-reject filter a compiled pattern carries.
// It satisfies match.QuickReject and internal/contain.Input's optional
// RequiredPrefix/RequiredSuffix hints.
type Filter struct {
	RequiredPrefix   string
	RequiredSuffix   string
	MinLength        int
	RequiredLiterals []string

	automaton *ahocorasick.Automaton // built by New; nil below manyLiteralsThreshold
}

// New builds a Filter, constructing an Aho-Corasick automaton over
// requiredLiterals when there are enough of them to be worth it.
func New(prefix, suffix string, minLength int, requiredLiterals []string) *Filter {
	f := &Filter{
		RequiredPrefix:   prefix,
		RequiredSuffix:   suffix,
		MinLength:        minLength,
		RequiredLiterals: requiredLiterals,
	}
	if len(requiredLiterals) >= manyLiteralsThreshold {
		builder := ahocorasick.NewBuilder()
		for _, lit := range requiredLiterals {
			builder.AddPattern([]byte(lit))
		}
		if auto, err := builder.Build(); err == nil {
			f.automaton = auto
		}
	}
	return f
}

// Reject reports whether path can be rejected outright, without running
// the automaton. It is always safe to return false (defer to the
// automaton); a true result must be certain.
func (f *Filter) Reject(path string, segments []string) bool {
	if f == nil {
		return false
	}
	if f.RequiredPrefix != "" && !strings.HasPrefix(path, f.RequiredPrefix) {
		return true
	}
	if f.RequiredSuffix != "" && !strings.HasSuffix(path, f.RequiredSuffix) {
		return true
	}
	if f.MinLength > 0 && len(path) < f.MinLength {
		return true
	}
	if len(f.RequiredLiterals) == 0 {
		return false
	}
	return !f.hasAllLiterals(path, segments)
}

func (f *Filter) hasAllLiterals(path string, segments []string) bool {
	if f.automaton != nil {
		return containsAllLiterals(f.automaton, []byte(path), f.RequiredLiterals)
	}
	for _, lit := range f.RequiredLiterals {
		if !containsSegmentOrSubstring(path, segments, lit) {
			return false
		}
	}
	return true
}

func containsSegmentOrSubstring(path string, segments []string, lit string) bool {
	for _, s := range segments {
		if s == lit {
			return true
		}
	}
	return strings.Contains(path, lit)
}

// containsAllLiterals walks every match the automaton finds in haystack,
// starting a fresh search from the end of the previous match, until every
// literal in want has been seen or the haystack is exhausted.
func containsAllLiterals(auto *ahocorasick.Automaton, haystack []byte, want []string) bool {
	remaining := make(map[string]bool, len(want))
	for _, w := range want {
		remaining[w] = true
	}

	at := 0
	for at <= len(haystack) {
		m := auto.Find(haystack, at)
		if m == nil {
			break
		}
		delete(remaining, string(haystack[m.Start:m.End]))
		if len(remaining) == 0 {
			return true
		}
		if m.End <= at {
			at++
		} else {
			at = m.End
		}
	}
	return len(remaining) == 0
}
