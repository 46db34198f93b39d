// Package determinize implements component C5: subset construction over the
// segment alphabet, turning a Thompson-style NFA into a complete DFA.
//
// Unlike byte-alphabet subset construction, the alphabet here is not fixed
// in advance - it is read off the NFA itself: one symbol per distinct
// literal segment text, one symbol per distinct wildcard matcher tag
// (spec.md §4.4, "two syntactic wildcards with the same source are one
// symbol"), plus a single catch-all symbol for every string that matches
// none of those. A Globstar transition fires on every symbol, including
// the catch-all, which is what lets "**" eventually loop through a
// completed sink state.
package determinize

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/automaton"
)

// Config bounds the determinizer's work.
type Config struct {
	// MaxStates caps the number of DFA states subset construction may
	// create before it gives up (spec.md §4.4, "DFA state limit").
	MaxStates int
}

// DefaultConfig returns the bounds used when the caller doesn't override
// them.
func DefaultConfig() Config {
	return Config{MaxStates: 10_000}
}

// ErrorKind classifies a determinization failure.
type ErrorKind uint8

const (
	// StateLimitExceeded means subset construction created more states
	// than Config.MaxStates allows.
	StateLimitExceeded ErrorKind = iota
)

func (k ErrorKind) String() string {
	switch k {
	case StateLimitExceeded:
		return "StateLimitExceeded"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", uint8(k))
	}
}

// LimitError reports that determinization hit Config.MaxStates. The facade
// (Compile, Union) returns it to the caller unchanged.
type LimitError struct {
	Kind   ErrorKind
	Limit  int
	Actual int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%s: %d states exceeds limit of %d", e.Kind, e.Actual, e.Limit)
}

// Is implements error comparison for errors.Is, matching on Kind the same
// way dfa/lazy.DFAError does.
func (e *LimitError) Is(target error) bool {
	t, ok := target.(*LimitError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// symbolKind tags which of the three alphabet-symbol shapes a symbol is.
type symbolKind uint8

const (
	symLiteral symbolKind = iota
	symWildcard
	symCatchAll
)

type symbol struct {
	kind    symbolKind
	literal string
	tag     string
	matcher automaton.Matcher
}

// catchAllMatcher backs the synthetic "*" symbol's transition, accepting
// any non-empty segment (spec.md §4.4 point 3).
type catchAllMatcher struct{}

func (catchAllMatcher) Match(s string) bool { return s != "" }
func (catchAllMatcher) Tag() string         { return "*" }

// Stats reports lightweight size counters from one determinization run,
// for observability rather than correctness (no Non-goal excludes this;
// spec.md only places a metrics *exporter* out of scope). Mirrors the
// shape of meta.Engine's own strategy/size stats rather than introducing
// a new reporting convention.
type Stats struct {
	NFAStates    int
	DFAStates    int
	AlphabetSize int
}

// Determinize runs subset construction over n, producing a complete,
// deterministic SegmentAutomaton. It never mutates n.
func Determinize(n *automaton.SegmentAutomaton, cfg Config) (*automaton.SegmentAutomaton, error) {
	d, _, err := determinize(n, cfg)
	return d, err
}

// DeterminizeWithStats behaves like Determinize but also returns size
// counters from the run.
func DeterminizeWithStats(n *automaton.SegmentAutomaton, cfg Config) (*automaton.SegmentAutomaton, Stats, error) {
	return determinize(n, cfg)
}

func determinize(n *automaton.SegmentAutomaton, cfg Config) (*automaton.SegmentAutomaton, Stats, error) {
	alphabet := collectAlphabet(n)
	alphabet = append(alphabet, symbol{kind: symCatchAll})

	b := automaton.NewBuilder()
	ids := map[string]automaton.StateID{}
	accepting := map[automaton.StateID]bool{}

	getOrCreate := func(closure []automaton.StateID) (automaton.StateID, bool) {
		key := subsetKey(closure)
		if id, ok := ids[key]; ok {
			return id, false
		}
		id := b.AddState()
		ids[key] = id
		accepting[id] = anyAccepting(n, closure)
		return id, true
	}

	startClosure := automaton.EpsilonClosure(n, []automaton.StateID{n.Initial})
	startID, _ := getOrCreate(startClosure)

	type work struct {
		id      automaton.StateID
		closure []automaton.StateID
	}
	queue := []work{{startID, startClosure}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, sym := range alphabet {
			targets := move(n, cur.closure, sym)
			if len(targets) == 0 {
				continue
			}
			closure := automaton.EpsilonClosure(n, targets)
			if len(closure) == 0 {
				continue
			}
			targetID, created := getOrCreate(closure)
			if created {
				if len(ids) > cfg.MaxStates {
					return nil, Stats{}, &LimitError{Kind: StateLimitExceeded, Limit: cfg.MaxStates, Actual: len(ids)}
				}
				queue = append(queue, work{targetID, closure})
			}
			addTransition(b, cur.id, sym, targetID)
		}
	}

	// Completion: every state must have a catch-all edge so the DFA is
	// total (spec.md §4.4 "Completion"). States whose own globstar already
	// produced a catch-all transition in the loop above are covered; a
	// lazily-created sink absorbs the rest (e.g. a literal-only state with
	// no globstar fallback).
	var sink automaton.StateID
	sinkCreated := false
	for _, id := range ids {
		if hasCatchAll(b, id) {
			continue
		}
		if !sinkCreated {
			sink = b.AddState()
			accepting[sink] = false
			b.AddWildcard(sink, catchAllMatcher{}, sink)
			sinkCreated = true
		}
		b.AddWildcard(id, catchAllMatcher{}, sink)
	}

	for id, acc := range accepting {
		if acc {
			b.SetAccepting(id, true)
		}
	}

	dfaStates := len(ids)
	if sinkCreated {
		dfaStates++
	}
	stats := Stats{NFAStates: len(n.States), DFAStates: dfaStates, AlphabetSize: len(alphabet)}
	return b.Build(startID, true), stats, nil
}

// collectAlphabet walks every transition in n and returns one symbol per
// distinct literal text and one per distinct wildcard tag.
func collectAlphabet(n *automaton.SegmentAutomaton) []symbol {
	seenLiteral := map[string]bool{}
	seenWildcard := map[string]automaton.Matcher{}
	var order []symbol

	for _, st := range n.States {
		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				if !seenLiteral[tr.Segment] {
					seenLiteral[tr.Segment] = true
					order = append(order, symbol{kind: symLiteral, literal: tr.Segment})
				}
			case automaton.TWildcard:
				if _, ok := seenWildcard[tr.SourceTag]; !ok {
					seenWildcard[tr.SourceTag] = tr.Matcher
					order = append(order, symbol{kind: symWildcard, tag: tr.SourceTag, matcher: tr.Matcher})
				}
			}
		}
	}
	return order
}

// move computes the set of NFA states reachable from closure on symbol sym,
// per the firing rules in the package doc comment: Literal and specific
// Wildcard transitions fire only for their own symbol; Globstar fires for
// every symbol including the catch-all.
func move(n *automaton.SegmentAutomaton, closure []automaton.StateID, sym symbol) []automaton.StateID {
	var targets []automaton.StateID
	for _, id := range closure {
		st := n.State(id)
		if st == nil {
			continue
		}
		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				if sym.kind == symLiteral && tr.Segment == sym.literal {
					targets = append(targets, tr.Target)
				}
			case automaton.TWildcard:
				if sym.kind == symWildcard && tr.SourceTag == sym.tag {
					targets = append(targets, tr.Target)
				}
			case automaton.TGlobstar:
				targets = append(targets, tr.SelfLoop)
			}
		}
	}
	return targets
}

func addTransition(b *automaton.Builder, from automaton.StateID, sym symbol, to automaton.StateID) {
	switch sym.kind {
	case symLiteral:
		b.AddLiteral(from, sym.literal, to)
	case symWildcard:
		b.AddWildcard(from, sym.matcher, to)
	case symCatchAll:
		b.AddWildcard(from, catchAllMatcher{}, to)
	}
}

func hasCatchAll(b *automaton.Builder, id automaton.StateID) bool {
	for _, tr := range b.Transitions(id) {
		if tr.Kind == automaton.TWildcard && tr.SourceTag == "*" {
			return true
		}
	}
	return false
}

func subsetKey(ids []automaton.StateID) string {
	sorted := append([]automaton.StateID(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var sb strings.Builder
	for i, id := range sorted {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

func anyAccepting(n *automaton.SegmentAutomaton, closure []automaton.StateID) bool {
	for _, id := range closure {
		if st := n.State(id); st != nil && st.Accepting {
			return true
		}
	}
	return false
}
