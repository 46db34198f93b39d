package prefilter

import "testing"

func TestRejectPrefixMismatch(t *testing.T) {
	f := New("/src/", "", 0, nil)
	if !f.Reject("/lib/index.ts", []string{"lib", "index.ts"}) {
		t.Error("path without the required prefix should be rejected")
	}
	if f.Reject("/src/index.ts", []string{"src", "index.ts"}) {
		t.Error("path with the required prefix should not be rejected")
	}
}

func TestRejectSuffixMismatch(t *testing.T) {
	f := New("", ".ts", 0, nil)
	if !f.Reject("/src/index.js", []string{"src", "index.js"}) {
		t.Error("path without the required suffix should be rejected")
	}
	if f.Reject("/src/index.ts", []string{"src", "index.ts"}) {
		t.Error("path with the required suffix should not be rejected")
	}
}

func TestRejectMinLength(t *testing.T) {
	f := New("", "", 20, nil)
	if !f.Reject("/a.ts", []string{"a.ts"}) {
		t.Error("path shorter than MinLength should be rejected")
	}
}

func TestRejectRequiredLiteralsSmallSet(t *testing.T) {
	f := New("", "", 0, []string{"generated", "vendor"})
	if !f.Reject("/src/generated/index.ts", []string{"src", "generated", "index.ts"}) {
		t.Error("missing 'vendor' literal should be rejected")
	}
	if f.Reject("/vendor/generated/index.ts", []string{"vendor", "generated", "index.ts"}) {
		t.Error("path containing both required literals should not be rejected")
	}
}

func TestRejectRequiredLiteralsLargeSetUsesAutomaton(t *testing.T) {
	literals := []string{"alpha", "bravo", "charlie", "delta"}
	f := New("", "", 0, literals)
	if f.automaton == nil {
		t.Fatal("4 required literals should be enough to build the Aho-Corasick automaton")
	}
	if !f.Reject("/alpha/bravo/charlie.ts", []string{"alpha", "bravo", "charlie.ts"}) {
		t.Error("path missing 'delta' should be rejected")
	}
	if f.Reject("/alpha/bravo/charlie/delta.ts", []string{"alpha", "bravo", "charlie", "delta.ts"}) {
		t.Error("path containing all 4 literals should not be rejected")
	}
}

func TestNilFilterNeverRejects(t *testing.T) {
	var f *Filter
	if f.Reject("/anything", []string{"anything"}) {
		t.Error("a nil filter should never reject")
	}
}

func TestIntersectPrefixesLongestCompatible(t *testing.T) {
	a := &Filter{RequiredPrefix: "/src"}
	b := &Filter{RequiredPrefix: "/src/app"}
	got := Intersect(a, b)
	if got.RequiredPrefix != "/src/app" {
		t.Errorf("prefix = %q, want /src/app", got.RequiredPrefix)
	}
}

func TestIntersectIncompatiblePrefixesDropToEmpty(t *testing.T) {
	a := &Filter{RequiredPrefix: "/src"}
	b := &Filter{RequiredPrefix: "/lib"}
	got := Intersect(a, b)
	if got.RequiredPrefix != "" {
		t.Errorf("prefix = %q, want empty (incompatible, safe fallback)", got.RequiredPrefix)
	}
}

func TestIntersectMinLengthTakesMax(t *testing.T) {
	a := &Filter{MinLength: 5}
	b := &Filter{MinLength: 10}
	got := Intersect(a, b)
	if got.MinLength != 10 {
		t.Errorf("MinLength = %d, want 10", got.MinLength)
	}
}

func TestIntersectLiteralsUnion(t *testing.T) {
	a := &Filter{RequiredLiterals: []string{"src"}}
	b := &Filter{RequiredLiterals: []string{"generated"}}
	got := Intersect(a, b)
	if len(got.RequiredLiterals) != 2 {
		t.Errorf("literals = %v, want 2 entries", got.RequiredLiterals)
	}
}

func TestUnionPrefixesLongestCommon(t *testing.T) {
	a := &Filter{RequiredPrefix: "/src/app"}
	b := &Filter{RequiredPrefix: "/src/lib"}
	got := Union(a, b)
	if got.RequiredPrefix != "/src/" {
		t.Errorf("prefix = %q, want /src/", got.RequiredPrefix)
	}
}

func TestUnionMinLengthTakesMin(t *testing.T) {
	a := &Filter{MinLength: 5}
	b := &Filter{MinLength: 10}
	got := Union(a, b)
	if got.MinLength != 5 {
		t.Errorf("MinLength = %d, want 5", got.MinLength)
	}
}

func TestUnionLiteralsIntersection(t *testing.T) {
	a := &Filter{RequiredLiterals: []string{"src", "generated"}}
	b := &Filter{RequiredLiterals: []string{"generated", "lib"}}
	got := Union(a, b)
	if len(got.RequiredLiterals) != 1 || got.RequiredLiterals[0] != "generated" {
		t.Errorf("literals = %v, want [generated]", got.RequiredLiterals)
	}
}
