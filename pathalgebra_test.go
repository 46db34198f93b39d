package pathalgebra

import "testing"

func TestCompileAndMatchLiteralSequence(t *testing.T) {
	p, err := Compile("src/index.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !p.Match("/src/index.ts") {
		t.Error("expected /src/index.ts to match")
	}
	if p.Match("/src/other.ts") {
		t.Error("expected /src/other.ts not to match")
	}
}

func TestCompileGlobstarAndWildcard(t *testing.T) {
	p, err := Compile("src/**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !p.Match("/src/app/deep/nested/index.ts") {
		t.Error("expected a deeply nested .ts file under src to match")
	}
	if p.Match("/src/app/index.js") {
		t.Error("expected a .js file not to match")
	}
}

func TestCompileBraceExpansionMatchesEitherBranch(t *testing.T) {
	p, err := Compile("src/{app,lib}/index.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !p.Match("/src/app/index.ts") {
		t.Error("expected src/app/index.ts to match")
	}
	if !p.Match("/src/lib/index.ts") {
		t.Error("expected src/lib/index.ts to match")
	}
	if p.Match("/src/other/index.ts") {
		t.Error("expected src/other/index.ts not to match")
	}
}

func TestNegationFlipsTheResult(t *testing.T) {
	p, err := Compile("!**/*.test.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !p.Match("/src/index.ts") {
		t.Error("expected a non-test file to match the negated pattern")
	}
	if p.Match("/src/index.test.ts") {
		t.Error("expected a test file not to match the negated pattern")
	}
}

func TestIntersectOnlyMatchesBoth(t *testing.T) {
	srcFiles, err := Compile("src/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	tsFiles, err := Compile("**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	both, err := Intersect(srcFiles, tsFiles)
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if !both.Match("/src/index.ts") {
		t.Error("expected /src/index.ts to be in the intersection")
	}
	if both.Match("/src/index.js") {
		t.Error("expected /src/index.js (wrong extension) not to be in the intersection")
	}
	if both.Match("/lib/index.ts") {
		t.Error("expected /lib/index.ts (outside src) not to be in the intersection")
	}
}

func TestUnionMatchesEither(t *testing.T) {
	ts, err := Compile("**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	md, err := Compile("**/*.md")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	either, err := Union(ts, md)
	if err != nil {
		t.Fatalf("Union failed: %v", err)
	}
	if !either.Match("/README.md") {
		t.Error("expected README.md to be in the union")
	}
	if !either.Match("/src/index.ts") {
		t.Error("expected index.ts to be in the union")
	}
	if either.Match("/src/index.js") {
		t.Error("expected index.js not to be in the union")
	}
}

func TestComplementMatchesEverythingElse(t *testing.T) {
	tests, err := Compile("**/*.test.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	notTests, err := Complement(tests)
	if err != nil {
		t.Fatalf("Complement failed: %v", err)
	}
	if !notTests.Match("/src/index.ts") {
		t.Error("expected a non-test file to match the complement")
	}
	if notTests.Match("/src/index.test.ts") {
		t.Error("expected a test file not to match the complement")
	}
}

func TestDifferenceExcludesBSet(t *testing.T) {
	tsFiles, err := Compile("**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	testFiles, err := Compile("**/*.test.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	nonTestTS, err := Difference(tsFiles, testFiles)
	if err != nil {
		t.Fatalf("Difference failed: %v", err)
	}
	if !nonTestTS.Match("/src/index.ts") {
		t.Error("expected a plain .ts file to survive the difference")
	}
	if nonTestTS.Match("/src/index.test.ts") {
		t.Error("expected a .test.ts file to be excluded by the difference")
	}
}

func TestCheckContainmentSubset(t *testing.T) {
	narrow, err := Compile("src/**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	wide, err := Compile("src/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	result := CheckContainment(narrow, wide)
	if !result.IsSubset {
		t.Errorf("expected src/**/*.ts to be a subset of src/**, got relationship %v", result.Relationship)
	}
}

func TestCheckContainmentDisjoint(t *testing.T) {
	a, err := Compile("src/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	b, err := Compile("lib/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	result := CheckContainment(a, b)
	if result.HasOverlap {
		t.Errorf("expected src/** and lib/** to be disjoint, got relationship %v", result.Relationship)
	}
}

func TestExpandBracesCartesianProduct(t *testing.T) {
	got, err := ExpandBraces("{a,b}/{x,y}")
	if err != nil {
		t.Fatalf("ExpandBraces failed: %v", err)
	}
	want := map[string]bool{"a/x": true, "a/y": true, "b/x": true, "b/y": true}
	if len(got) != len(want) {
		t.Fatalf("got %v, want 4 variants", got)
	}
	for _, g := range got {
		if !want[g] {
			t.Errorf("unexpected variant %q", g)
		}
	}
}

func TestNormalizePathResolvesRelativeAgainstCwd(t *testing.T) {
	got, err := NormalizePath("sub/file.ts", "/home/user", "/home/user/project", "")
	if err != nil {
		t.Fatalf("NormalizePath failed: %v", err)
	}
	if got != "/home/user/project/sub/file.ts" {
		t.Errorf("got %q, want /home/user/project/sub/file.ts", got)
	}
}

func TestDefaultConfigValidates(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig should validate cleanly, got %v", err)
	}
}

func TestConfigRejectsNonPositiveBounds(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDFAStates = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for a zero MaxDFAStates")
	}
}

func TestCompileWithConfigRespectsMaxDFAStates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxDFAStates = 1
	_, err := CompileWithConfig("{a,b,c,d,e}/*.ts", cfg)
	if err == nil {
		t.Error("expected a DFA state limit error with a tiny MaxDFAStates budget")
	}
}

func TestPatternExposesBounds(t *testing.T) {
	bounded, err := Compile("src/index.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if bounded.IsUnbounded() {
		t.Error("a literal-only pattern should have bounded segment counts")
	}
	if bounded.MinSegments() != 2 {
		t.Errorf("MinSegments() = %d, want 2", bounded.MinSegments())
	}

	unbounded, err := Compile("src/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !unbounded.IsUnbounded() {
		t.Error("a pattern with a globstar should be unbounded")
	}
}

func TestIntersectOfDisjointPatternsIsEmpty(t *testing.T) {
	src, err := Compile("src/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	lib, err := Compile("lib/**")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	both, err := Intersect(src, lib)
	if err != nil {
		t.Fatalf("Intersect failed: %v", err)
	}
	if !both.IsEmpty() {
		t.Error("expected src/** ∩ lib/** to be empty")
	}
	if both.Witness() != nil {
		t.Error("expected no witness for an empty pattern")
	}
}

func TestWitnessMatchesItsOwnPattern(t *testing.T) {
	p, err := Compile("src/**/*.ts")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	w := p.Witness()
	if w == nil {
		t.Fatal("expected a non-empty pattern to produce a witness")
	}
	if !p.Match(*w) {
		t.Errorf("witness %q should match its own pattern", *w)
	}
}

func TestPatternRecordsRecoverableParseErrors(t *testing.T) {
	p, err := Compile("src/a**b")
	if err != nil {
		t.Fatalf("Compile should not hard-fail on a recoverable parse error: %v", err)
	}
	if !p.HasErrors() {
		t.Error("expected the invalid globstar to be recorded as a recoverable ParseError")
	}
}
