package segment

import (
	"regexp"
	"testing"

	"github.com/pathalgebra/pathalgebra/internal/ast"
)

func TestMatchesLiteral(t *testing.T) {
	seg := ast.Segment{Kind: ast.Literal, Text: "index.ts"}
	if !Matches("index.ts", seg) {
		t.Error("expected exact literal match")
	}
	if Matches("index.js", seg) {
		t.Error("expected literal mismatch to fail")
	}
}

func TestMatchesGlobstarAlwaysTrue(t *testing.T) {
	seg := ast.Segment{Kind: ast.Globstar}
	for _, s := range []string{"", "anything", "a.b.c"} {
		if !Matches(s, seg) {
			t.Errorf("Globstar should match %q", s)
		}
	}
}

func TestMatchesWildcard(t *testing.T) {
	seg := ast.Segment{Kind: ast.Wildcard, Parts: []ast.Part{
		{Kind: ast.PartLiteral, Text: "file"},
		{Kind: ast.PartStar},
		{Kind: ast.PartLiteral, Text: ".ts"},
	}}
	tests := []struct {
		s    string
		want bool
	}{
		{"file.ts", true},
		{"file123.ts", true},
		{"file.js", false},
		{"fil.ts", false},
	}
	for _, tt := range tests {
		if got := Matches(tt.s, seg); got != tt.want {
			t.Errorf("Matches(%q) = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestMatchesQuestion(t *testing.T) {
	seg := ast.Segment{Kind: ast.Wildcard, Parts: []ast.Part{
		{Kind: ast.PartLiteral, Text: "a"},
		{Kind: ast.PartQuestion},
		{Kind: ast.PartLiteral, Text: "c"},
	}}
	if !Matches("abc", seg) {
		t.Error("expected abc to match a?c")
	}
	if Matches("abbc", seg) {
		t.Error("expected abbc not to match a?c")
	}
}

func TestMatchesCharClassSegment(t *testing.T) {
	seg := ast.Segment{Kind: ast.CharClass, Ranges: []ast.CharRange{{Start: 'a', End: 'z'}}}
	if !Matches("m", seg) {
		t.Error("expected 'm' to match [a-z]")
	}
	if Matches("M", seg) {
		t.Error("expected 'M' not to match [a-z]")
	}
	if Matches("ab", seg) {
		t.Error("CharClass segment must match exactly one character")
	}
}

func TestMatchesCompositeWithCharClass(t *testing.T) {
	seg := ast.Segment{Kind: ast.Composite, Parts: []ast.Part{
		{Kind: ast.PartLiteral, Text: "test-"},
		{Kind: ast.PartCharClass, Ranges: []ast.CharRange{{Start: '0', End: '9'}}},
		{Kind: ast.PartStar},
	}}
	if !Matches("test-123", seg) {
		t.Error("expected test-123 to match test-[0-9]*")
	}
	if Matches("test-abc", seg) {
		t.Error("expected test-abc not to match test-[0-9]*")
	}
}

func TestToRegexLiteralReturnsFalse(t *testing.T) {
	if _, ok := ToRegex(ast.Segment{Kind: ast.Literal, Text: "x"}); ok {
		t.Error("ToRegex(Literal) should return ok=false")
	}
}

func TestToRegexRoundTrip(t *testing.T) {
	seg := ast.Segment{Kind: ast.Wildcard, Parts: []ast.Part{
		{Kind: ast.PartLiteral, Text: "file"},
		{Kind: ast.PartStar},
		{Kind: ast.PartLiteral, Text: ".ts"},
	}}
	pattern, ok := ToRegex(seg)
	if !ok {
		t.Fatal("expected ok=true")
	}
	re := regexp.MustCompile(pattern)
	cases := map[string]bool{"file.ts": true, "file123.ts": true, "file.js": false}
	for s, want := range cases {
		if got := re.MatchString(s); got != want {
			t.Errorf("regex %q on %q = %v, want %v (must agree with Matches)", pattern, s, got, want)
		}
		if got := Matches(s, seg); got != want {
			t.Errorf("Matches(%q) = %v, want %v", s, got, want)
		}
	}
}

func TestClassBodyEscaping(t *testing.T) {
	seg := ast.Segment{Kind: ast.CharClass, Chars: "]-^\\", Negated: true}
	pattern, ok := ToRegex(seg)
	if !ok {
		t.Fatal("expected ok=true")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("generated regex %q does not compile: %v", pattern, err)
	}
	if !re.MatchString("a") {
		t.Error("negated class excluding only ] - ^ \\ should match 'a'")
	}
	if re.MatchString("]") {
		t.Error("negated class excluding ] should not match ']'")
	}
}
