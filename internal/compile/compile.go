// Package compile implements Thompson-style construction of a segment-
// alphabet NFA from a parsed ast.Pattern (spec.md §4.2, component C3).
package compile

import (
	"regexp"

	"github.com/pathalgebra/pathalgebra/internal/ast"
	"github.com/pathalgebra/pathalgebra/internal/automaton"
	"github.com/pathalgebra/pathalgebra/internal/segment"
)

// Bounds records the statically-known minimum and maximum segment counts
// a pattern can match. MaxSegments is nil when the pattern is unbounded
// (reachable through a "**").
type Bounds struct {
	MinSegments int
	MaxSegments *int
}

// Unbounded reports whether the bounds admit arbitrarily long paths.
func (b Bounds) Unbounded() bool { return b.MaxSegments == nil }

// Build compiles a parsed pattern into a non-deterministic SegmentAutomaton
// together with its statically-computed segment-count bounds.
func Build(p *ast.Pattern) (*automaton.SegmentAutomaton, Bounds) {
	b := automaton.NewBuilder()

	if p.Empty() {
		start := b.AddState()
		b.SetAccepting(start, true)
		one := 0
		return b.Build(start, false), Bounds{MinSegments: 0, MaxSegments: &one}
	}

	start, accept := buildNode(b, p.Root)
	b.SetAccepting(accept, true)
	return b.Build(start, false), computeBounds(p.Root)
}

// buildNode recursively compiles a Sequence or Alternation node, returning
// the start and accept states of the fragment it wired into b.
func buildNode(b *automaton.Builder, n *ast.Node) (start, accept automaton.StateID) {
	switch n.Kind {
	case ast.Sequence:
		return buildSequence(b, n.Segments)
	case ast.Alternation:
		return buildAlternation(b, n.Branches)
	default:
		start = b.AddState()
		accept = b.AddState()
		b.AddEpsilon(start, accept)
		return start, accept
	}
}

func buildSequence(b *automaton.Builder, segments []ast.Segment) (start, accept automaton.StateID) {
	start = b.AddState()
	if len(segments) == 0 {
		accept = b.AddState()
		b.AddEpsilon(start, accept)
		return start, accept
	}

	cur := start
	for _, seg := range segments {
		next := b.AddState()
		buildSegment(b, cur, seg, next)
		cur = next
	}
	return start, cur
}

func buildAlternation(b *automaton.Builder, branches []*ast.Node) (start, accept automaton.StateID) {
	start = b.AddState()
	accept = b.AddState()
	for _, branch := range branches {
		if branch == nil {
			continue
		}
		bs, ba := buildNode(b, branch)
		b.AddEpsilon(start, bs)
		b.AddEpsilon(ba, accept)
	}
	return start, accept
}

// buildSegment wires a single segment's transition(s) from 'from' to 'to'.
func buildSegment(b *automaton.Builder, from automaton.StateID, seg ast.Segment, to automaton.StateID) {
	switch seg.Kind {
	case ast.Literal:
		b.AddLiteral(from, seg.Text, to)
	case ast.Globstar:
		// self_loop points back to the origin state (consuming one more
		// segment stays productive); exit is reached without consuming.
		b.AddGlobstar(from, from, to)
	default: // Wildcard, CharClass, Composite
		b.AddWildcard(from, matcherFor(seg), to)
	}
}

// matcherFor lowers a non-literal segment to an automaton.Matcher backed by
// a compiled anchored regex, using the regex's source text as the stable
// tag that gives two syntactically-identical wildcards the same alphabet
// symbol during subset construction.
func matcherFor(seg ast.Segment) automaton.Matcher {
	pattern, ok := segment.ToRegex(seg)
	if !ok {
		pattern = "^.*$"
	}
	return &regexMatcher{re: regexp.MustCompile(pattern), tag: pattern}
}

type regexMatcher struct {
	re  *regexp.Regexp
	tag string
}

func (m *regexMatcher) Match(s string) bool { return m.re.MatchString(s) }
func (m *regexMatcher) Tag() string         { return m.tag }

// computeBounds follows spec.md §4.2: a Sequence's min is the count of
// non-globstar segments and its max is their sum (nil if any is a
// globstar); an Alternation's min is the minimum over branches and its max
// is the maximum over branches (nil if any branch is unbounded).
func computeBounds(n *ast.Node) Bounds {
	switch n.Kind {
	case ast.Sequence:
		return computeSequenceBounds(n.Segments)
	case ast.Alternation:
		return computeAlternationBounds(n.Branches)
	default:
		return Bounds{}
	}
}

func computeSequenceBounds(segments []ast.Segment) Bounds {
	min := 0
	max := 0
	bounded := true
	for _, seg := range segments {
		if seg.Kind == ast.Globstar {
			bounded = false
			continue
		}
		min++
		max++
	}
	if !bounded {
		return Bounds{MinSegments: min, MaxSegments: nil}
	}
	return Bounds{MinSegments: min, MaxSegments: &max}
}

func computeAlternationBounds(branches []*ast.Node) Bounds {
	min := -1
	maxVal := 0
	anyUnbounded := len(branches) == 0
	for _, branch := range branches {
		if branch == nil {
			continue
		}
		bb := computeBounds(branch)
		if min < 0 || bb.MinSegments < min {
			min = bb.MinSegments
		}
		if bb.MaxSegments == nil {
			anyUnbounded = true
		} else if *bb.MaxSegments > maxVal {
			maxVal = *bb.MaxSegments
		}
	}
	if min < 0 {
		min = 0
	}
	if anyUnbounded {
		return Bounds{MinSegments: min, MaxSegments: nil}
	}
	return Bounds{MinSegments: min, MaxSegments: &maxVal}
}
