package automaton

import "testing"

type literalMatcher string

func (m literalMatcher) Match(s string) bool { return s == string(m) }
func (m literalMatcher) Tag() string         { return "lit:" + string(m) }

func TestBuilderLiteralChain(t *testing.T) {
	b := NewBuilder()
	s0 := b.AddState()
	s1 := b.AddState()
	s2 := b.AddState()
	b.AddLiteral(s0, "src", s1)
	b.AddLiteral(s1, "index.ts", s2)
	b.SetAccepting(s2, true)

	a := b.Build(s0, false)
	if a.NumStates() != 3 {
		t.Fatalf("NumStates() = %d, want 3", a.NumStates())
	}
	if a.Initial != s0 {
		t.Fatalf("Initial = %d, want %d", a.Initial, s0)
	}
	accepting := a.AcceptingStates()
	if len(accepting) != 1 || accepting[0] != s2 {
		t.Fatalf("AcceptingStates() = %v, want [%d]", accepting, s2)
	}
}

func TestAcceptingStatesNeverDrifts(t *testing.T) {
	b := NewBuilder()
	s0 := b.AddState()
	s1 := b.AddState()
	b.SetAccepting(s1, true)
	b.SetAccepting(s1, false) // toggled back off
	a := b.Build(s0, false)

	if got := a.AcceptingStates(); len(got) != 0 {
		t.Fatalf("AcceptingStates() = %v, want empty after toggling off", got)
	}
}

func TestStateInvalidID(t *testing.T) {
	a := &SegmentAutomaton{States: []State{{ID: 0}}}
	if a.State(InvalidState) != nil {
		t.Error("State(InvalidState) should be nil")
	}
	if a.State(5) != nil {
		t.Error("State(out-of-range) should be nil")
	}
	if a.State(0) == nil {
		t.Error("State(0) should be non-nil")
	}
}

func TestAndMatcherTag(t *testing.T) {
	m := AndMatcher{A: literalMatcher("x"), B: literalMatcher("y")}
	if m.Match("x") {
		t.Error("AndMatcher should require both sides")
	}
	if m.Tag() != "(lit:x)∩(lit:y)" {
		t.Errorf("Tag() = %q", m.Tag())
	}
}

func TestStateSet(t *testing.T) {
	ss := NewStateSet(8)
	ss.Add(3)
	ss.Add(5)
	ss.Add(3) // duplicate, no-op

	if ss.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ss.Len())
	}
	if !ss.Contains(3) || !ss.Contains(5) {
		t.Error("expected 3 and 5 to be members")
	}
	if ss.Contains(4) {
		t.Error("4 should not be a member")
	}
	slice := ss.Slice()
	if len(slice) != 2 || slice[0] != 3 || slice[1] != 5 {
		t.Errorf("Slice() = %v, want [3 5]", slice)
	}
}
