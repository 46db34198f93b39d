package automaton

// StateSet is a set of StateIDs with O(1) insert/membership, used for
// epsilon-closure computation and subset-construction worklists. It keeps
// both a sparse index array (membership testing) and a dense list
// (iteration order), the classic sparse-set trick applied here to NFA/DFA
// state sets instead of byte-alphabet regex states.
type StateSet struct {
	sparse []uint32
	dense  []StateID
}

// NewStateSet creates a StateSet whose universe is [0, capacity).
func NewStateSet(capacity int) *StateSet {
	return &StateSet{
		sparse: make([]uint32, capacity),
		dense:  make([]StateID, 0, capacity),
	}
}

// Add inserts id into the set; a no-op if already present.
func (s *StateSet) Add(id StateID) {
	if s.Contains(id) {
		return
	}
	s.sparse[id] = uint32(len(s.dense))
	s.dense = append(s.dense, id)
}

// Contains reports whether id is a member.
func (s *StateSet) Contains(id StateID) bool {
	if int(id) >= len(s.sparse) {
		return false
	}
	idx := s.sparse[id]
	return int(idx) < len(s.dense) && s.dense[idx] == id
}

// Len returns the number of members.
func (s *StateSet) Len() int { return len(s.dense) }

// Slice returns the members in insertion order. The returned slice aliases
// internal storage and is only valid until the next mutation.
func (s *StateSet) Slice() []StateID { return s.dense }
