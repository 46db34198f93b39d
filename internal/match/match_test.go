package match

import (
	"testing"

	"github.com/pathalgebra/pathalgebra/internal/ast"
	"github.com/pathalgebra/pathalgebra/internal/automaton"
	"github.com/pathalgebra/pathalgebra/internal/compile"
)

func litSeg(s string) ast.Segment { return ast.Segment{Kind: ast.Literal, Text: s} }

func buildSeq(segs ...ast.Segment) *automaton.SegmentAutomaton {
	p := &ast.Pattern{Root: &ast.Node{Kind: ast.Sequence, Segments: segs}}
	a, _ := compile.Build(p)
	return a
}

func TestSplitPathDropsLeadingSlashAndEmpties(t *testing.T) {
	got := SplitPath("/src//index.ts/")
	want := []string{"src", "index.ts", ""}
	// trailing slash yields a trailing empty element from strings.Split,
	// which must be dropped; "src//index.ts/" has an internal empty one too.
	if len(got) != 2 || got[0] != "src" || got[1] != "index.ts" {
		t.Fatalf("SplitPath = %v, want %v", got, want[:2])
	}
}

func TestSplitPathEmpty(t *testing.T) {
	if got := SplitPath("/"); got != nil {
		t.Fatalf("SplitPath(%q) = %v, want nil", "/", got)
	}
}

func TestMatchesSegmentsLiteralSequence(t *testing.T) {
	a := buildSeq(litSeg("src"), litSeg("index.ts"))

	if !MatchesSegments(a, []string{"src", "index.ts"}) {
		t.Error("expected src/index.ts to match")
	}
	if MatchesSegments(a, []string{"src", "other.ts"}) {
		t.Error("expected src/other.ts not to match")
	}
	if MatchesSegments(a, []string{"src"}) {
		t.Error("expected a partial prefix not to match")
	}
}

func TestMatchesSegmentsGlobstarZeroOrMore(t *testing.T) {
	a := buildSeq(litSeg("src"), ast.Segment{Kind: ast.Globstar}, litSeg("index.ts"))

	cases := []struct {
		segs []string
		want bool
	}{
		{[]string{"src", "index.ts"}, true},
		{[]string{"src", "a", "index.ts"}, true},
		{[]string{"src", "a", "b", "index.ts"}, true},
		{[]string{"src", "index.js"}, false},
		{[]string{"other", "index.ts"}, false},
	}
	for _, c := range cases {
		if got := MatchesSegments(a, c.segs); got != c.want {
			t.Errorf("MatchesSegments(%v) = %v, want %v", c.segs, got, c.want)
		}
	}
}

func TestMatchesWithQuickRejectAndBounds(t *testing.T) {
	a := buildSeq(litSeg("src"), litSeg("index.ts"))
	maxTwo := 2
	c := &Compiled{Automaton: a, MinSegments: 2, MaxSegments: &maxTwo}

	if !Matches(c, "/src/index.ts") {
		t.Error("expected match within bounds")
	}
	if Matches(c, "/src/a/index.ts") {
		t.Error("expected rejection: exceeds MaxSegments")
	}
	if Matches(c, "/src") {
		t.Error("expected rejection: below MinSegments")
	}
}

type alwaysReject struct{}

func (alwaysReject) Reject(path string, segments []string) bool { return true }

func TestMatchesFilterShortCircuits(t *testing.T) {
	a := buildSeq(litSeg("src"))
	c := &Compiled{Automaton: a, Filter: alwaysReject{}}

	if Matches(c, "/src") {
		t.Error("quick-reject filter should have short-circuited the match")
	}
}

func TestMatchesNegationFlips(t *testing.T) {
	a := buildSeq(litSeg("src"))
	c := &Compiled{Automaton: a, IsNegation: true}

	if Matches(c, "/src") {
		t.Error("negated pattern should reject what the inner pattern accepts")
	}
	if !Matches(c, "/other") {
		t.Error("negated pattern should accept what the inner pattern rejects")
	}
}

func TestDeterministicPriorityLiteralBeatsWildcard(t *testing.T) {
	b := automaton.NewBuilder()
	s0 := b.AddState()
	litTarget := b.AddState()
	wildTarget := b.AddState()
	b.SetAccepting(litTarget, true)
	b.SetAccepting(wildTarget, false)

	b.AddLiteral(s0, "foo", litTarget)
	b.AddWildcard(s0, anyMatcher{}, wildTarget)
	a := b.Build(s0, true)

	if !MatchesSegments(a, []string{"foo"}) {
		t.Fatal("expected literal transition to win and land on the accepting state")
	}
}

func TestDeterministicCatchAllIsLastResort(t *testing.T) {
	b := automaton.NewBuilder()
	s0 := b.AddState()
	specific := b.AddState()
	sink := b.AddState()
	b.SetAccepting(specific, true)
	b.SetAccepting(sink, false)

	b.AddWildcard(s0, prefixMatcher("foo"), specific)
	b.AddWildcard(s0, anyMatcher{}, sink) // anyMatcher.Tag() == "*", the catch-all marker
	a := b.Build(s0, true)

	if !MatchesSegments(a, []string{"foobar"}) {
		t.Error("expected the specific wildcard to win over the catch-all")
	}
	if MatchesSegments(a, []string{"zzz"}) {
		t.Error("catch-all routes to a non-accepting sink, so this should not match")
	}
}

type anyMatcher struct{}

func (anyMatcher) Match(string) bool { return true }
func (anyMatcher) Tag() string       { return "*" }

type prefixMatcher string

func (m prefixMatcher) Match(s string) bool {
	return len(s) >= len(m) && s[:len(m)] == string(m)
}
func (m prefixMatcher) Tag() string { return "prefix:" + string(m) }
