// Package reach implements component C8: emptiness, witness synthesis and
// path counting over a SegmentAutomaton via plain graph reachability
// (spec.md §4.7). None of these operations require the automaton to be
// deterministic.
package reach

import (
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/automaton"
)

// IsEmpty reports whether no accepting state is reachable from the
// initial state, following every transition target including both a
// globstar's self_loop and its exit.
func IsEmpty(a *automaton.SegmentAutomaton) bool {
	return !reachableAccepting(a)
}

func reachableAccepting(a *automaton.SegmentAutomaton) bool {
	visited := automaton.NewStateSet(len(a.States))
	stack := []automaton.StateID{a.Initial}
	visited.Add(a.Initial)

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		st := a.State(id)
		if st == nil {
			continue
		}
		if st.Accepting {
			return true
		}
		for _, id := range targetsOf(st.Out) {
			if !visited.Contains(id) {
				visited.Add(id)
				stack = append(stack, id)
			}
		}
	}
	return false
}

// targetsOf collects every state a single state's transitions can reach,
// counting both faces of a globstar.
func targetsOf(out []automaton.Transition) []automaton.StateID {
	var ids []automaton.StateID
	for _, tr := range out {
		switch tr.Kind {
		case automaton.TLiteral, automaton.TWildcard, automaton.TEpsilon:
			ids = append(ids, tr.Target)
		case automaton.TGlobstar:
			ids = append(ids, tr.SelfLoop, tr.Exit)
		}
	}
	return ids
}

// sampleTokens is the best-effort dictionary FindWitness falls back to when
// a wildcard's source tag doesn't hint at a concrete extension.
var sampleTokens = []string{"file123.ts", "test-1", "match1", "sample"}

// frontierItem is one entry of the witness-search BFS queue: an automaton
// state paired with the path segments accumulated to reach it.
type frontierItem struct {
	state automaton.StateID
	path  []string
}

// FindWitness performs a BFS over (state, accumulated-segments) looking for
// the shortest path to an accepting state, synthesizing a concrete segment
// for every wildcard and globstar step it takes (spec.md §4.7). It returns
// nil if no accepting state is reachable at all.
func FindWitness(a *automaton.SegmentAutomaton) *string {
	start := automaton.EpsilonClosure(a, []automaton.StateID{a.Initial})
	visited := map[automaton.StateID]bool{}
	var queue []frontierItem
	for _, id := range start {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, frontierItem{state: id, path: nil})
		}
	}

	const maxDepth = 64
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		st := a.State(cur.state)
		if st == nil {
			continue
		}
		if st.Accepting {
			result := "/" + strings.Join(cur.path, "/")
			return &result
		}
		if len(cur.path) >= maxDepth {
			continue
		}

		for _, tr := range st.Out {
			switch tr.Kind {
			case automaton.TLiteral:
				enqueueWitness(a, &queue, visited, tr.Target, cur.path, tr.Segment)
			case automaton.TWildcard:
				sample := synthesizeSample(tr.Matcher)
				enqueueWitness(a, &queue, visited, tr.Target, cur.path, sample)
			case automaton.TGlobstar:
				// Zero-consume exit branch: no segment appended.
				enqueueWitness(a, &queue, visited, tr.Exit, cur.path)
				// One-consume self-loop branch: a generic token appended.
				enqueueWitness(a, &queue, visited, tr.SelfLoop, cur.path, "dir1")
			}
		}
	}
	return nil
}

// enqueueWitness appends extra to the accumulated path (if any), expands
// the epsilon-closure of target, and enqueues every not-yet-visited state
// in that closure.
func enqueueWitness(a *automaton.SegmentAutomaton, queue *[]frontierItem, visited map[automaton.StateID]bool, target automaton.StateID, base []string, extra ...string) {
	next := append(append([]string(nil), base...), extra...)
	for _, id := range automaton.EpsilonClosure(a, []automaton.StateID{target}) {
		if !visited[id] {
			visited[id] = true
			*queue = append(*queue, frontierItem{state: id, path: next})
		}
	}
}

// synthesizeSample inspects a wildcard matcher's source tag for a literal
// extension hint (e.g. "*.ts" style tags often carry a recognizable
// suffix); failing that it falls back to a small dictionary of sample
// tokens, trying each until one satisfies the matcher.
func synthesizeSample(m automaton.Matcher) string {
	tag := m.Tag()
	for _, ext := range []string{".ts", ".js", ".go", ".json"} {
		if strings.Contains(tag, ext) {
			candidate := "file123" + ext
			if m.Match(candidate) {
				return candidate
			}
		}
	}
	for _, candidate := range sampleTokens {
		if m.Match(candidate) {
			return candidate
		}
	}
	// Nothing in the dictionary satisfied it; return the first candidate
	// anyway so the witness still terminates (best-effort, spec.md §4.7).
	return sampleTokens[0]
}

// CountPaths returns, for each depth from 0 to maxDepth inclusive, the
// number of distinct accepting configurations reachable in exactly that
// many consumed segments (spec.md §4.7). Counting is memoized on
// (state, remaining depth) to keep cost polynomial even though a globstar
// can revisit the same state at every depth.
func CountPaths(a *automaton.SegmentAutomaton, maxDepth int) map[int]int64 {
	memo := map[[2]int]int64{}
	result := make(map[int]int64, maxDepth+1)

	start := automaton.EpsilonClosure(a, []automaton.StateID{a.Initial})
	for depth := 0; depth <= maxDepth; depth++ {
		var total int64
		for _, id := range start {
			total += countFrom(a, id, depth, memo)
		}
		result[depth] = total
	}
	return result
}

// countFrom counts accepting configurations reachable from state in
// exactly depth consumed segments, memoized on (state, depth).
func countFrom(a *automaton.SegmentAutomaton, state automaton.StateID, depth int, memo map[[2]int]int64) int64 {
	key := [2]int{int(state), depth}
	if v, ok := memo[key]; ok {
		return v
	}

	st := a.State(state)
	if st == nil {
		memo[key] = 0
		return 0
	}

	if depth == 0 {
		var v int64
		if st.Accepting {
			v = 1
		}
		memo[key] = v
		return v
	}

	var total int64
	for _, tr := range st.Out {
		switch tr.Kind {
		case automaton.TLiteral, automaton.TWildcard:
			for _, next := range automaton.EpsilonClosure(a, []automaton.StateID{tr.Target}) {
				total += countFrom(a, next, depth-1, memo)
			}
		case automaton.TGlobstar:
			for _, next := range automaton.EpsilonClosure(a, []automaton.StateID{tr.SelfLoop}) {
				total += countFrom(a, next, depth-1, memo)
			}
		}
	}
	memo[key] = total
	return total
}
