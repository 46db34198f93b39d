package automaton

import "fmt"

// Builder constructs a SegmentAutomaton incrementally. States are allocated
// empty (no outgoing transitions, not accepting) and then wired up by the
// Add* methods, the same two-step "allocate placeholder, patch later" shape
// nfa.Builder uses for forward references during Thompson construction.
type Builder struct {
	states []State
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{states: make([]State, 0, 16)}
}

// AddState allocates a fresh, non-accepting state with no transitions and
// returns its ID.
func (b *Builder) AddState() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{ID: id})
	return id
}

// SetAccepting sets or clears a state's accepting bit.
func (b *Builder) SetAccepting(id StateID, accepting bool) {
	b.mustState(id).Accepting = accepting
}

// AddLiteral appends a literal transition from 'from' to 'target'.
func (b *Builder) AddLiteral(from StateID, segmentText string, target StateID) {
	s := b.mustState(from)
	s.Out = append(s.Out, Transition{Kind: TLiteral, Segment: segmentText, Target: target})
}

// AddWildcard appends a wildcard transition from 'from' to 'target', bearing
// matcher m (whose Tag() becomes the alphabet symbol's identity).
func (b *Builder) AddWildcard(from StateID, m Matcher, target StateID) {
	s := b.mustState(from)
	s.Out = append(s.Out, Transition{Kind: TWildcard, Matcher: m, SourceTag: m.Tag(), Target: target})
}

// AddGlobstar appends the two-faced "**" transition from 'from': selfLoop is
// reached by consuming one segment, exit is reached without consuming
// (handled as an epsilon by closure computations).
func (b *Builder) AddGlobstar(from, selfLoop, exit StateID) {
	s := b.mustState(from)
	s.Out = append(s.Out, Transition{Kind: TGlobstar, SelfLoop: selfLoop, Exit: exit})
}

// AddEpsilon appends an epsilon transition from 'from' to 'target'.
func (b *Builder) AddEpsilon(from, target StateID) {
	s := b.mustState(from)
	s.Out = append(s.Out, Transition{Kind: TEpsilon, Target: target})
}

// NumStates returns the number of states allocated so far.
func (b *Builder) NumStates() int { return len(b.states) }

// Transitions returns the outgoing transitions wired for id so far. The
// determinizer's completion pass uses this to check whether a state
// already has a catch-all wildcard edge before adding one to the sink.
func (b *Builder) Transitions(id StateID) []Transition {
	return b.mustState(id).Out
}

func (b *Builder) mustState(id StateID) *State {
	if int(id) >= len(b.states) {
		panic(fmt.Sprintf("automaton: state %d out of bounds (have %d)", id, len(b.states)))
	}
	return &b.states[id]
}

// Build finalizes the automaton with the given initial state and
// determinism flag. The builder's internal slice becomes the automaton's
// backing store; the builder must not be reused afterward.
func (b *Builder) Build(initial StateID, deterministic bool) *SegmentAutomaton {
	return &SegmentAutomaton{
		States:          b.states,
		Initial:         initial,
		IsDeterministic: deterministic,
	}
}
