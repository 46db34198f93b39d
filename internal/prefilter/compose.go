package prefilter

import "strings"

// Intersect combines two filters the way spec.md §9 prescribes for
// pattern intersection: prefixes/suffixes combine by "longest compatible",
// minimum lengths combine by max, required-literal sets combine by union.
// A path in L(a) ∩ L(b) must satisfy every constraint either side demands.
func Intersect(a, b *Filter) *Filter {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return New(
		longestCompatible(a.RequiredPrefix, b.RequiredPrefix, strings.HasPrefix),
		reverseLongestCompatible(a.RequiredSuffix, b.RequiredSuffix),
		maxInt(a.MinLength, b.MinLength),
		unionLiterals(a.RequiredLiterals, b.RequiredLiterals),
	)
}

// Union combines two filters the way spec.md §9 prescribes for pattern
// union: prefixes/suffixes combine by "longest common", lengths by min,
// required literals by set intersection. A path in L(a) ∪ L(b) is only
// guaranteed to satisfy a constraint both sides already shared.
func Union(a, b *Filter) *Filter {
	if a == nil || b == nil {
		return nil
	}
	return New(
		commonPrefix(a.RequiredPrefix, b.RequiredPrefix),
		commonSuffix(a.RequiredSuffix, b.RequiredSuffix),
		minInt(a.MinLength, b.MinLength),
		intersectLiterals(a.RequiredLiterals, b.RequiredLiterals),
	)
}

// longestCompatible picks the stronger of two prefix (or, via the
// reversed helper below, suffix) requirements: if one extends the other,
// the longer one already implies the shorter, so it alone is the combined
// requirement. Otherwise they genuinely conflict in a way a simple string
// comparison can't safely resolve, so the weaker, always-safe choice of
// "no requirement" is kept instead of guessing.
func longestCompatible(a, b string, hasPrefix func(s, prefix string) bool) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}
	if hasPrefix(b, a) {
		return b
	}
	if hasPrefix(a, b) {
		return a
	}
	return ""
}

func reverseLongestCompatible(a, b string) string {
	return longestCompatible(a, b, strings.HasSuffix)
}

// commonPrefix returns the longest string that is a prefix of both a and
// b; it is the safe combined requirement for a union (either branch may
// run, so only a prefix both guarantee actually holds).
func commonPrefix(a, b string) string {
	n := minInt(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}

func commonSuffix(a, b string) string {
	n := minInt(len(a), len(b))
	i := 0
	for i < n && a[len(a)-1-i] == b[len(b)-1-i] {
		i++
	}
	return a[len(a)-i:]
}

func unionLiterals(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, lit := range a {
		if !seen[lit] {
			seen[lit] = true
			out = append(out, lit)
		}
	}
	for _, lit := range b {
		if !seen[lit] {
			seen[lit] = true
			out = append(out, lit)
		}
	}
	return out
}

func intersectLiterals(a, b []string) []string {
	inB := make(map[string]bool, len(b))
	for _, lit := range b {
		inB[lit] = true
	}
	var out []string
	for _, lit := range a {
		if inB[lit] {
			out = append(out, lit)
		}
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
