// Package algebra implements components C6 and C7: the product composer
// (intersection, union) and DFA complement that give path patterns their
// set-theoretic closure (spec.md §4.5, §4.6).
package algebra

import (
	"errors"

	"github.com/pathalgebra/pathalgebra/internal/automaton"
)

// ErrRequiresDeterministic is returned by Intersect and Complement when
// given an automaton that was not produced by determinize.Determinize.
// Both operations assume a complete DFA; the caller is responsible for
// determinizing first (spec.md §4.5: "callers MUST determinize before
// intersection").
var ErrRequiresDeterministic = errors.New("algebra: operand must be a deterministic, completed automaton")

// anyNonEmptyMatcher backs the wildcard produced by intersecting two
// globstars (spec.md §4.5 table, "globstar | globstar -> wildcard ^.+$").
type anyNonEmptyMatcher struct{}

func (anyNonEmptyMatcher) Match(s string) bool { return s != "" }
func (anyNonEmptyMatcher) Tag() string         { return "^.+$" }

// pairKey addresses a product-automaton state by its operand state pair.
type pairKey struct{ a, b automaton.StateID }

// Intersect builds the product automaton of two complete DFAs, accepting
// exactly the paths both inputs accept (spec.md §4.5 "Intersection"). The
// worklist only allocates reachable pairs.
func Intersect(a, b *automaton.SegmentAutomaton) (*automaton.SegmentAutomaton, error) {
	if !a.IsDeterministic || !b.IsDeterministic {
		return nil, ErrRequiresDeterministic
	}

	builder := automaton.NewBuilder()
	ids := map[pairKey]automaton.StateID{}

	getOrCreate := func(sa, sb automaton.StateID) (automaton.StateID, bool) {
		key := pairKey{sa, sb}
		if id, ok := ids[key]; ok {
			return id, false
		}
		id := builder.AddState()
		ids[key] = id
		stA, stB := a.State(sa), b.State(sb)
		if stA != nil && stB != nil {
			builder.SetAccepting(id, stA.Accepting && stB.Accepting)
		}
		return id, true
	}

	startID, _ := getOrCreate(a.Initial, b.Initial)
	queue := []pairKey{{a.Initial, b.Initial}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		curID := ids[cur]

		stA := a.State(cur.a)
		stB := b.State(cur.b)
		if stA == nil || stB == nil {
			continue
		}

		for _, ta := range stA.Out {
			if ta.Kind == automaton.TEpsilon {
				continue
			}
			for _, tb := range stB.Out {
				if tb.Kind == automaton.TEpsilon {
					continue
				}
				res, ok := combine(ta, tb)
				if !ok {
					continue
				}
				targetID, created := getOrCreate(res.nextA, res.nextB)
				if created {
					queue = append(queue, pairKey{res.nextA, res.nextB})
				}
				switch res.kind {
				case automaton.TLiteral:
					builder.AddLiteral(curID, res.segment, targetID)
				case automaton.TWildcard:
					builder.AddWildcard(curID, res.matcher, targetID)
				}
			}
		}
	}

	return builder.Build(startID, a.IsDeterministic && b.IsDeterministic), nil
}

type combined struct {
	kind    automaton.TransitionKind
	segment string
	matcher automaton.Matcher
	nextA   automaton.StateID
	nextB   automaton.StateID
}

// combine implements the transition-combination table from spec.md §4.5.
func combine(ta, tb automaton.Transition) (combined, bool) {
	switch ta.Kind {
	case automaton.TLiteral:
		switch tb.Kind {
		case automaton.TLiteral:
			if ta.Segment == tb.Segment {
				return combined{kind: automaton.TLiteral, segment: ta.Segment, nextA: ta.Target, nextB: tb.Target}, true
			}
		case automaton.TWildcard:
			if tb.Matcher.Match(ta.Segment) {
				return combined{kind: automaton.TLiteral, segment: ta.Segment, nextA: ta.Target, nextB: tb.Target}, true
			}
		case automaton.TGlobstar:
			return combined{kind: automaton.TLiteral, segment: ta.Segment, nextA: ta.Target, nextB: tb.SelfLoop}, true
		}
	case automaton.TWildcard:
		switch tb.Kind {
		case automaton.TLiteral:
			if ta.Matcher.Match(tb.Segment) {
				return combined{kind: automaton.TLiteral, segment: tb.Segment, nextA: ta.Target, nextB: tb.Target}, true
			}
		case automaton.TWildcard:
			m := automaton.AndMatcher{A: ta.Matcher, B: tb.Matcher}
			return combined{kind: automaton.TWildcard, matcher: m, nextA: ta.Target, nextB: tb.Target}, true
		case automaton.TGlobstar:
			return combined{kind: automaton.TWildcard, matcher: ta.Matcher, nextA: ta.Target, nextB: tb.SelfLoop}, true
		}
	case automaton.TGlobstar:
		switch tb.Kind {
		case automaton.TLiteral:
			return combined{kind: automaton.TLiteral, segment: tb.Segment, nextA: ta.SelfLoop, nextB: tb.Target}, true
		case automaton.TWildcard:
			return combined{kind: automaton.TWildcard, matcher: tb.Matcher, nextA: ta.SelfLoop, nextB: tb.Target}, true
		case automaton.TGlobstar:
			return combined{kind: automaton.TWildcard, matcher: anyNonEmptyMatcher{}, nextA: ta.SelfLoop, nextB: tb.SelfLoop}, true
		}
	}
	return combined{}, false
}

// Union builds the NFA splice of two automata: a fresh initial state with
// epsilon transitions into each operand's renumbered initial state
// (spec.md §4.5 "Union"). The result is never deterministic; callers must
// run determinize.Determinize before any further algebra.
func Union(a, b *automaton.SegmentAutomaton) *automaton.SegmentAutomaton {
	builder := automaton.NewBuilder()
	start := builder.AddState()

	offsetA := appendAutomaton(builder, a)
	offsetB := appendAutomaton(builder, b)

	builder.AddEpsilon(start, offsetA+a.Initial)
	builder.AddEpsilon(start, offsetB+b.Initial)

	return builder.Build(start, false)
}

// appendAutomaton copies src's states and transitions into b, renumbering
// every target/selfLoop/exit reference by the offset at which the copy
// begins, and returns that offset.
func appendAutomaton(b *automaton.Builder, src *automaton.SegmentAutomaton) automaton.StateID {
	offset := automaton.StateID(b.NumStates())
	for _, st := range src.States {
		id := b.AddState()
		if st.Accepting {
			b.SetAccepting(id, true)
		}
	}
	for i, st := range src.States {
		newID := offset + automaton.StateID(i)
		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				b.AddLiteral(newID, tr.Segment, offset+tr.Target)
			case automaton.TWildcard:
				b.AddWildcard(newID, tr.Matcher, offset+tr.Target)
			case automaton.TGlobstar:
				b.AddGlobstar(newID, offset+tr.SelfLoop, offset+tr.Exit)
			case automaton.TEpsilon:
				b.AddEpsilon(newID, offset+tr.Target)
			}
		}
	}
	return offset
}

// Complement flips the accepting bit of every state in a complete DFA
// (spec.md §4.6). Because determinization already routed every uncovered
// input to a catch-all sink, that sink flips to accepting here, which is
// exactly what makes "every other path" match.
func Complement(d *automaton.SegmentAutomaton) (*automaton.SegmentAutomaton, error) {
	if !d.IsDeterministic {
		return nil, ErrRequiresDeterministic
	}

	builder := automaton.NewBuilder()
	for _, st := range d.States {
		id := builder.AddState()
		builder.SetAccepting(id, !st.Accepting)
	}
	for i, st := range d.States {
		id := automaton.StateID(i)
		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				builder.AddLiteral(id, tr.Segment, tr.Target)
			case automaton.TWildcard:
				builder.AddWildcard(id, tr.Matcher, tr.Target)
			case automaton.TGlobstar:
				builder.AddGlobstar(id, tr.SelfLoop, tr.Exit)
			case automaton.TEpsilon:
				builder.AddEpsilon(id, tr.Target)
			}
		}
	}
	return builder.Build(d.Initial, true), nil
}
