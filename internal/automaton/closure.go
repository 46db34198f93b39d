package automaton

// EpsilonClosure expands a seed state set by following Epsilon transitions
// and Globstar.Exit edges (a globstar may match zero segments, so its exit
// is epsilon-like for closure purposes - spec.md §4.3 step 1). It is shared
// by the matcher's simulation and the determinizer's subset construction,
// the same role nfa.Builder.epsilonClosure plays for both in the teacher.
func EpsilonClosure(a *SegmentAutomaton, seed []StateID) []StateID {
	set := NewStateSet(len(a.States))
	stack := append([]StateID(nil), seed...)
	for _, id := range seed {
		set.Add(id)
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		st := a.State(id)
		if st == nil {
			continue
		}
		for _, tr := range st.Out {
			switch tr.Kind {
			case TEpsilon:
				if !set.Contains(tr.Target) {
					set.Add(tr.Target)
					stack = append(stack, tr.Target)
				}
			case TGlobstar:
				if !set.Contains(tr.Exit) {
					set.Add(tr.Exit)
					stack = append(stack, tr.Exit)
				}
			}
		}
	}
	return set.Slice()
}
