// Package contain implements component C9: the containment analyzer.
//
// Containment is undecidable to check exactly against an open wildcard
// alphabet in bounded time, so the analyzer is structural-plus-sample-based
// rather than a closed-form decision procedure (spec.md §4.8): it walks
// each pattern's AST to synthesize a handful of concrete paths, asks the
// other pattern's automaton whether it accepts them, and strengthens the
// sample-based verdict with a structural check on segment-count bounds
// that sampling alone could miss. Anchoring and prefix/suffix differences
// are reported in the explanation but do not change the verdict. A counterexample proves
// non-containment; the absence of one does not prove containment.
package contain

import (
	"fmt"
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/algebra"
	"github.com/pathalgebra/pathalgebra/internal/ast"
	"github.com/pathalgebra/pathalgebra/internal/automaton"
	"github.com/pathalgebra/pathalgebra/internal/compile"
	"github.com/pathalgebra/pathalgebra/internal/match"
	"github.com/pathalgebra/pathalgebra/internal/segment"
)

// Relationship classifies the set-theoretic relation between two path
// languages once the four containment booleans are known.
type Relationship string

const (
	RelEqual       Relationship = "equal"
	RelSubset      Relationship = "subset"
	RelSuperset    Relationship = "superset"
	RelOverlapping Relationship = "overlapping"
	RelDisjoint    Relationship = "disjoint"
)

// Input bundles what the analyzer needs from one side of the comparison:
// the AST it samples from, the automaton it tests samples against, and the
// statically-known segment-count bounds used for structural strengthening.
// RequiredPrefix/RequiredSuffix are optional hints from a quick-reject
// filter (empty means "unknown"); when present they sharpen the failure
// reasons in the explanation.
type Input struct {
	Pattern        *ast.Pattern
	Automaton      *automaton.SegmentAutomaton
	Bounds         compile.Bounds
	RequiredPrefix string
	RequiredSuffix string
}

// Witness is one concrete path surfaced by the analyzer, tagged by why it
// was surfaced.
type Witness struct {
	Path     string
	Category string // "counterexample" | "reverse_counterexample" | "shared"
}

// SegmentConstraint names what one side requires at a given sequence
// position, for the explanation's segment-by-segment comparison.
type SegmentConstraint struct {
	Position    int
	Description string
}

// SegmentComparison is one position's side-by-side verdict.
type SegmentComparison struct {
	Position   int
	A          SegmentConstraint
	B          SegmentConstraint
	ASubsetOfB bool
	Difference string
}

// Explanation is the structured account of how the analyzer reached its
// verdict (spec.md §4.8, "Explanation").
type Explanation struct {
	FailureReasons []string
	Segments       []SegmentComparison
	Witnesses      []Witness
}

// Result is the full answer to CheckContainment.
type Result struct {
	IsSubset              bool
	IsSuperset            bool
	IsEqual               bool
	HasOverlap            bool
	Relationship          Relationship
	Counterexample        *string
	ReverseCounterexample *string
	Explanation           Explanation
}

const (
	globstarSampleK   = 2
	maxBranchSamples  = 5
	maxSegmentCompare = 5
)

// CheckContainment computes A's relationship to B by sampling each side's
// language and testing the samples against the other side's automaton,
// then strengthens the verdict structurally (spec.md §4.8).
func CheckContainment(a, b Input) *Result {
	aSamples := genSamples(a.Pattern)
	bSamples := genSamples(b.Pattern)

	isSubset, counterexample, sharedFromA := checkDirection(aSamples, b.Automaton)
	isSuperset, reverseCounterexample, sharedFromB := checkDirection(bSamples, a.Automaton)

	if a.Bounds.Unbounded() && !b.Bounds.Unbounded() {
		isSubset = false
		if counterexample == nil {
			counterexample = deepestAccepted(a.Automaton, *b.Bounds.MaxSegments+1, aSamples)
		}
	}
	if b.Bounds.Unbounded() && !a.Bounds.Unbounded() {
		isSuperset = false
		if reverseCounterexample == nil {
			reverseCounterexample = deepestAccepted(b.Automaton, *a.Bounds.MaxSegments+1, bSamples)
		}
	}

	shared := sharedFromA
	if shared == nil {
		shared = sharedFromB
	}
	hasOverlap := shared != nil
	if !hasOverlap {
		for _, combo := range combinedCandidates(aSamples, bSamples) {
			if match.MatchesSegments(a.Automaton, combo) && match.MatchesSegments(b.Automaton, combo) {
				p := pathOf(combo)
				shared = &p
				hasOverlap = true
				break
			}
		}
	}

	isEqual := isSubset && isSuperset
	relationship := deriveRelationship(isEqual, isSubset, isSuperset, hasOverlap)

	return &Result{
		IsSubset:              isSubset,
		IsSuperset:            isSuperset,
		IsEqual:               isEqual,
		HasOverlap:            hasOverlap,
		Relationship:          relationship,
		Counterexample:        counterexample,
		ReverseCounterexample: reverseCounterexample,
		Explanation:           buildExplanation(a, b, counterexample, reverseCounterexample, shared),
	}
}

// checkDirection tests every sample against target, returning whether all
// of them were accepted, the first rejection (if any) as a *string path,
// and the first acceptance (if any) as a candidate shared witness.
func checkDirection(samples [][]string, target *automaton.SegmentAutomaton) (ok bool, firstReject *string, firstAccept *string) {
	ok = true
	for _, segs := range samples {
		p := pathOf(segs)
		if match.MatchesSegments(target, segs) {
			if firstAccept == nil {
				firstAccept = &p
			}
		} else {
			ok = false
			if firstReject == nil {
				firstReject = &p
			}
		}
	}
	return ok, firstReject, firstAccept
}

func deriveRelationship(isEqual, isSubset, isSuperset, hasOverlap bool) Relationship {
	switch {
	case isEqual:
		return RelEqual
	case isSubset:
		return RelSubset
	case isSuperset:
		return RelSuperset
	case hasOverlap:
		return RelOverlapping
	default:
		return RelDisjoint
	}
}

// deepestAccepted returns the longest sample that target's own automaton
// actually accepts at or beyond minLen segments, used to back a
// structurally-forced non-containment verdict with a real witness rather
// than an unverified guess.
func deepestAccepted(a *automaton.SegmentAutomaton, minLen int, samples [][]string) *string {
	var best []string
	for _, segs := range samples {
		if len(segs) >= minLen && match.MatchesSegments(a, segs) && len(segs) > len(best) {
			best = segs
		}
	}
	if best == nil {
		return nil
	}
	p := pathOf(best)
	return &p
}

func pathOf(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

// combinedCandidates splices the first half of one side's sample with the
// second half of the other's, approximating spec.md §4.8's "combined"
// generator (there defined in terms of each side's quick-reject
// prefix/suffix, which this package doesn't depend on to stay decoupled
// from internal/prefilter).
func combinedCandidates(aSamples, bSamples [][]string) [][]string {
	var out [][]string
	for i, as := range aSamples {
		if i >= 3 || len(as) == 0 {
			continue
		}
		for j, bs := range bSamples {
			if j >= 3 || len(bs) == 0 {
				continue
			}
			half := len(as) / 2
			combo := append(append([]string(nil), as[:half]...), bs[len(bs)/2:]...)
			out = append(out, combo)
		}
	}
	return out
}

// genSamples walks p's AST and synthesizes a bounded set of concrete
// segment sequences (spec.md §4.8 point 1).
func genSamples(p *ast.Pattern) [][]string {
	if p == nil || p.Root == nil {
		return nil
	}
	if p.Empty() {
		return [][]string{{}}
	}
	counter := 0
	return genNode(p.Root, &counter)
}

func genNode(n *ast.Node, counter *int) [][]string {
	switch n.Kind {
	case ast.Sequence:
		return genSequence(n.Segments, counter)
	case ast.Alternation:
		var out [][]string
		for i, br := range n.Branches {
			if i >= maxBranchSamples || br == nil {
				continue
			}
			out = append(out, genNode(br, counter)...)
		}
		return out
	default:
		return nil
	}
}

func genSequence(segments []ast.Segment, counter *int) [][]string {
	var zero, full []string
	hasGlobstar := false
	for _, seg := range segments {
		if seg.Kind == ast.Globstar {
			hasGlobstar = true
			for i := 0; i < globstarSampleK; i++ {
				full = append(full, fmt.Sprintf("dir%d", i+1))
			}
			continue
		}
		s := synthesizeSegment(seg, counter)
		zero = append(zero, s)
		full = append(full, s)
	}
	samples := [][]string{zero}
	if hasGlobstar {
		samples = append(samples, full)
	}
	return samples
}

// synthesizeSegment substitutes a concrete string for one AST segment,
// per the variant rules of spec.md §4.8 point 1.
func synthesizeSegment(seg ast.Segment, counter *int) string {
	*counter++
	n := *counter
	switch seg.Kind {
	case ast.Literal:
		return seg.Text
	case ast.CharClass:
		return string(charClassSample(seg.Negated, seg.Chars, seg.Ranges))
	case ast.Wildcard, ast.Composite:
		if ext := trailingExtension(seg.Parts); ext != "" {
			return fmt.Sprintf("file%d%s", n, ext)
		}
		if n%2 == 0 {
			return fmt.Sprintf("match%d", n)
		}
		return fmt.Sprintf("test-%d", n)
	default:
		return fmt.Sprintf("seg%d", n)
	}
}

// trailingExtension reports a short dot-prefixed literal suffix (".ts",
// ".js", ...) if the part list ends with one, so synthesized wildcard
// samples look like plausible filenames.
func trailingExtension(parts []ast.Part) string {
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if last.Kind == ast.PartLiteral && strings.HasPrefix(last.Text, ".") && len(last.Text) <= 6 {
		return last.Text
	}
	return ""
}

func charClassSample(negated bool, chars string, ranges []ast.CharRange) rune {
	if len(ranges) > 0 {
		return ranges[0].Start
	}
	if chars != "" {
		if !negated {
			return rune(chars[0])
		}
		for _, r := range "abcdefghijklmnopqrstuvwxyz" {
			if !strings.ContainsRune(chars, r) {
				return r
			}
		}
	}
	return 'a'
}

// buildExplanation assembles the structured failure reasons, segment
// comparison and witness list (spec.md §4.8 point 7).
func buildExplanation(a, b Input, counterexample, reverseCounterexample, shared *string) Explanation {
	reasons := failureReasons(a, b)
	if len(reasons) == 0 && counterexample != nil {
		reasons = append(reasons, "segment_mismatch")
	}

	var witnesses []Witness
	if counterexample != nil {
		witnesses = append(witnesses, Witness{Path: *counterexample, Category: "counterexample"})
	}
	if reverseCounterexample != nil {
		witnesses = append(witnesses, Witness{Path: *reverseCounterexample, Category: "reverse_counterexample"})
	}
	if shared != nil {
		witnesses = append(witnesses, Witness{Path: *shared, Category: "shared"})
	}

	return Explanation{
		FailureReasons: reasons,
		Segments:       segmentComparisons(a.Pattern, b.Pattern),
		Witnesses:      witnesses,
	}
}

func failureReasons(a, b Input) []string {
	var reasons []string

	aUnbounded, bUnbounded := a.Bounds.Unbounded(), b.Bounds.Unbounded()
	switch {
	case aUnbounded != bUnbounded:
		reasons = append(reasons, "depth_bound_mismatch")
	case !aUnbounded && (a.Bounds.MinSegments != b.Bounds.MinSegments || *a.Bounds.MaxSegments != *b.Bounds.MaxSegments):
		reasons = append(reasons, "depth_bound_mismatch")
	}

	if a.Pattern != nil && b.Pattern != nil && a.Pattern.IsAbsolute != b.Pattern.IsAbsolute {
		reasons = append(reasons, "anchoring_mismatch")
	}

	if a.RequiredPrefix != "" && b.RequiredPrefix != "" && a.RequiredPrefix != b.RequiredPrefix {
		reasons = append(reasons, "prefix_mismatch")
	}
	if a.RequiredSuffix != "" && b.RequiredSuffix != "" && a.RequiredSuffix != b.RequiredSuffix {
		reasons = append(reasons, "suffix_mismatch")
	}

	return reasons
}

// segmentComparisons builds the at-most-five-position side-by-side
// comparison. It only has anything structural to say when both patterns
// are plain sequences; alternations fall back to sample-based reasoning
// alone (the Witnesses list), which is where the real signal lives for
// branching patterns anyway.
func segmentComparisons(a, b *ast.Pattern) []SegmentComparison {
	if a == nil || b == nil || a.Root == nil || b.Root == nil {
		return nil
	}
	if a.Root.Kind != ast.Sequence || b.Root.Kind != ast.Sequence {
		return nil
	}

	segsA, segsB := a.Root.Segments, b.Root.Segments
	n := len(segsA)
	if len(segsB) > n {
		n = len(segsB)
	}
	if n > maxSegmentCompare {
		n = maxSegmentCompare
	}

	out := make([]SegmentComparison, 0, n)
	for i := 0; i < n; i++ {
		var segA, segB *ast.Segment
		descA, descB := "(absent)", "(absent)"
		if i < len(segsA) {
			segA = &segsA[i]
			descA = describeSegment(*segA)
		}
		if i < len(segsB) {
			segB = &segsB[i]
			descB = describeSegment(*segB)
		}
		ok, diff := compareSegmentPair(segA, segB)
		out = append(out, SegmentComparison{
			Position:   i,
			A:          SegmentConstraint{Position: i, Description: descA},
			B:          SegmentConstraint{Position: i, Description: descB},
			ASubsetOfB: ok,
			Difference: diff,
		})
	}
	return out
}

func describeSegment(seg ast.Segment) string {
	switch seg.Kind {
	case ast.Literal:
		return fmt.Sprintf("literal %q", seg.Text)
	case ast.Globstar:
		return "globstar **"
	case ast.CharClass:
		return "charclass"
	case ast.Wildcard:
		return "wildcard"
	case ast.Composite:
		return "composite"
	default:
		return "unknown"
	}
}

func compareSegmentPair(a, b *ast.Segment) (bool, string) {
	switch {
	case a == nil || b == nil:
		return false, "segment count differs"
	case b.Kind == ast.Globstar:
		return true, ""
	case a.Kind == ast.Globstar:
		return false, "globstar vs bounded segment"
	case a.Kind == ast.Literal && b.Kind == ast.Literal:
		if a.Text == b.Text {
			return true, ""
		}
		return false, fmt.Sprintf("literal %q vs %q", a.Text, b.Text)
	case a.Kind == ast.Literal && (b.Kind == ast.Wildcard || b.Kind == ast.Composite):
		if segment.Matches(a.Text, *b) {
			return true, ""
		}
		return false, "literal does not satisfy wildcard"
	case a.Kind == b.Kind:
		return true, ""
	default:
		return false, fmt.Sprintf("%s vs %s", a.Kind, b.Kind)
	}
}

// Difference returns an automaton accepting exactly the paths a accepts
// but b does not (A \ B = A ∩ ¬B), the convenience this package adds on
// top of spec.md §4.5/§4.6 (no new algebra is required). Both operands
// must be complete deterministic DFAs, same as Intersect and Complement.
func Difference(a, b *automaton.SegmentAutomaton) (*automaton.SegmentAutomaton, error) {
	notB, err := algebra.Complement(b)
	if err != nil {
		return nil, err
	}
	return algebra.Intersect(a, notB)
}
