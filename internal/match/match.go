// Package match simulates a SegmentAutomaton (NFA or DFA) over a path's
// segment list, implementing component C4 of spec.md: quick-reject,
// bounds checking, epsilon-closure simulation and the DFA priority rule.
package match

import (
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/automaton"
)

// QuickReject is the narrow interface the matcher needs from a compiled
// pattern's prefilter, kept here (rather than importing the prefilter
// package's concrete type) to avoid a dependency edge the matcher doesn't
// otherwise need.
type QuickReject interface {
	// Reject reports whether path can be rejected without running the
	// automaton. A true result is always safe; a false result means the
	// automaton must still decide.
	Reject(path string, segments []string) bool
}

// Compiled holds everything the matcher needs: the automaton, the
// quick-reject filter (optional), the statically-known bounds, and the
// outer negation flag (spec.md §4.3, "Negation is applied as a final
// outer flip").
type Compiled struct {
	Automaton   *automaton.SegmentAutomaton
	Filter      QuickReject
	MinSegments int
	MaxSegments *int // nil means unbounded
	IsNegation  bool
}

// SplitPath splits a normalized absolute path into its segments, stripping
// the leading slash and dropping empty segments (spec.md §4.3).
func SplitPath(path string) []string {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return nil
	}
	parts := strings.Split(trimmed, "/")
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			segments = append(segments, p)
		}
	}
	return segments
}

// Matches runs the full matching pipeline for one path against one
// compiled pattern, applying negation last.
func Matches(c *Compiled, path string) bool {
	segments := SplitPath(path)

	positive := matchesPositive(c, path, segments)
	if c.IsNegation {
		return !positive
	}
	return positive
}

func matchesPositive(c *Compiled, path string, segments []string) bool {
	if c.Filter != nil && c.Filter.Reject(path, segments) {
		return false
	}
	if len(segments) < c.MinSegments {
		return false
	}
	if c.MaxSegments != nil && len(segments) > *c.MaxSegments {
		return false
	}
	return MatchesSegments(c.Automaton, segments)
}

// MatchesSegments runs the automaton directly over a segment list, with no
// quick-reject or bounds short-circuit. It is exported for callers (the
// containment analyzer, algebra invariants in tests) that already have a
// segment list and want the raw automaton answer.
func MatchesSegments(a *automaton.SegmentAutomaton, segments []string) bool {
	current := automaton.EpsilonClosure(a, []automaton.StateID{a.Initial})
	for _, seg := range segments {
		if len(current) == 0 {
			return false
		}
		current = step(a, current, seg)
	}
	return anyAccepting(a, current)
}

// step advances a state set by one input segment, then re-applies
// epsilon-closure to the result (spec.md §4.3 steps 2-3).
func step(a *automaton.SegmentAutomaton, current []automaton.StateID, seg string) []automaton.StateID {
	var targets []automaton.StateID
	if a.IsDeterministic {
		targets = stepDeterministic(a, current, seg)
	} else {
		targets = stepNondeterministic(a, current, seg)
	}
	if len(targets) == 0 {
		return nil
	}
	return automaton.EpsilonClosure(a, targets)
}

// stepNondeterministic unions every applicable transition's target across
// every current state: Literal fires on equality, Wildcard fires when its
// matcher accepts, Globstar fires unconditionally via its self-loop.
func stepNondeterministic(a *automaton.SegmentAutomaton, current []automaton.StateID, seg string) []automaton.StateID {
	var targets []automaton.StateID
	for _, id := range current {
		st := a.State(id)
		if st == nil {
			continue
		}
		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				if tr.Segment == seg {
					targets = append(targets, tr.Target)
				}
			case automaton.TWildcard:
				if tr.Matcher.Match(seg) {
					targets = append(targets, tr.Target)
				}
			case automaton.TGlobstar:
				targets = append(targets, tr.SelfLoop)
			}
		}
	}
	return targets
}

// stepDeterministic applies the DFA priority rule from spec.md §4.3: exact
// literal match beats pattern wildcard match beats the catch-all wildcard
// (source tag "*") installed by determinizer completion. This ordering is
// what keeps the completion sink invisible whenever a real transition
// already covers the input, and is required for complement to be correct.
func stepDeterministic(a *automaton.SegmentAutomaton, current []automaton.StateID, seg string) []automaton.StateID {
	var targets []automaton.StateID
	for _, id := range current {
		st := a.State(id)
		if st == nil {
			continue
		}
		if tr, ok := bestTransition(st, seg); ok {
			targets = append(targets, transitionTarget(tr))
		}
	}
	return targets
}

// bestTransition picks the highest-priority firing transition out of st for
// segment seg: literal > specific wildcard > catch-all wildcard > globstar.
func bestTransition(st *automaton.State, seg string) (automaton.Transition, bool) {
	var wildcard, catchAll, globstar *automaton.Transition
	for i := range st.Out {
		tr := &st.Out[i]
		switch tr.Kind {
		case automaton.TLiteral:
			if tr.Segment == seg {
				return *tr, true
			}
		case automaton.TWildcard:
			if !tr.Matcher.Match(seg) {
				continue
			}
			if tr.SourceTag == "*" {
				if catchAll == nil {
					catchAll = tr
				}
			} else if wildcard == nil {
				wildcard = tr
			}
		case automaton.TGlobstar:
			if globstar == nil {
				globstar = tr
			}
		}
	}
	if wildcard != nil {
		return *wildcard, true
	}
	if catchAll != nil {
		return *catchAll, true
	}
	if globstar != nil {
		return *globstar, true
	}
	return automaton.Transition{}, false
}

func transitionTarget(tr automaton.Transition) automaton.StateID {
	if tr.Kind == automaton.TGlobstar {
		return tr.SelfLoop
	}
	return tr.Target
}

func anyAccepting(a *automaton.SegmentAutomaton, states []automaton.StateID) bool {
	for _, id := range states {
		if st := a.State(id); st != nil && st.Accepting {
			return true
		}
	}
	return false
}
