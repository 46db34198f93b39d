// Package segment tests one path segment string against one ast.Segment
// node, and lowers wildcard/composite/charclass segments to an anchored
// regular expression for use as a Wildcard transition's matcher.
package segment

import (
	"strings"
	"unicode/utf8"

	"github.com/pathalgebra/pathalgebra/internal/ast"
)

// Matches reports whether s satisfies the given segment node.
//
// Literal requires exact equality. Globstar always matches (it represents
// "any one segment" during automaton construction, never a multi-segment
// run - that semantics lives in the automaton's self-loop, not here).
// Wildcard and Composite try every possible star-length via backtracking.
// A lone CharClass segment matches only a single-character string.
func Matches(s string, seg ast.Segment) bool {
	switch seg.Kind {
	case ast.Literal:
		return s == seg.Text
	case ast.Globstar:
		return true
	case ast.CharClass:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || size != len(s) {
			return false
		}
		return matchesClass(r, seg.Negated, seg.Chars, seg.Ranges)
	case ast.Wildcard, ast.Composite:
		return matchParts(seg.Parts, s)
	default:
		return false
	}
}

// matchParts performs greedy-with-backtracking consumption of parts
// against s: star tries every consumption length from 0..len(s) runes,
// backtracking into the first one that lets the remaining parts match.
func matchParts(parts []ast.Part, s string) bool {
	return matchFrom(parts, 0, s)
}

func matchFrom(parts []ast.Part, pi int, s string) bool {
	if pi == len(parts) {
		return s == ""
	}

	part := parts[pi]
	switch part.Kind {
	case ast.PartLiteral:
		if !strings.HasPrefix(s, part.Text) {
			return false
		}
		return matchFrom(parts, pi+1, s[len(part.Text):])

	case ast.PartStar:
		runes := []rune(s)
		for i := 0; i <= len(runes); i++ {
			if matchFrom(parts, pi+1, string(runes[i:])) {
				return true
			}
		}
		return false

	case ast.PartQuestion:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 || r == utf8.RuneError {
			return false
		}
		return matchFrom(parts, pi+1, s[size:])

	case ast.PartCharClass:
		r, size := utf8.DecodeRuneInString(s)
		if size == 0 {
			return false
		}
		if !matchesClass(r, part.Negated, part.Chars, part.Ranges) {
			return false
		}
		return matchFrom(parts, pi+1, s[size:])

	default:
		return false
	}
}

func matchesClass(r rune, negated bool, chars string, ranges []ast.CharRange) bool {
	in := strings.ContainsRune(chars, r)
	if !in {
		for _, rg := range ranges {
			if r >= rg.Start && r <= rg.End {
				in = true
				break
			}
		}
	}
	if negated {
		return !in
	}
	return in
}

// ToRegex lowers a segment to an anchored regular expression that accepts
// exactly the segment's language. Literal returns ok=false: callers should
// use the fast-path string-equality check instead. Globstar returns a
// universal pattern (it matches any single segment in this lowering,
// consistent with Matches).
func ToRegex(seg ast.Segment) (pattern string, ok bool) {
	switch seg.Kind {
	case ast.Literal:
		return "", false
	case ast.Globstar:
		return "^.*$", true
	case ast.CharClass:
		return "^" + classBody(seg.Negated, seg.Chars, seg.Ranges) + "$", true
	case ast.Wildcard, ast.Composite:
		var b strings.Builder
		b.WriteByte('^')
		for _, part := range seg.Parts {
			writePartRegex(&b, part)
		}
		b.WriteByte('$')
		return b.String(), true
	default:
		return "", false
	}
}

func writePartRegex(b *strings.Builder, part ast.Part) {
	switch part.Kind {
	case ast.PartLiteral:
		b.WriteString(quoteMeta(part.Text))
	case ast.PartStar:
		b.WriteString(".*")
	case ast.PartQuestion:
		b.WriteString(".")
	case ast.PartCharClass:
		b.WriteString(classBody(part.Negated, part.Chars, part.Ranges))
	}
}

// classBody renders "[...]" for a character class, escaping '^', '-', ']'
// and '\' as spec.md §4.1 requires.
func classBody(negated bool, chars string, ranges []ast.CharRange) string {
	var b strings.Builder
	b.WriteByte('[')
	if negated {
		b.WriteByte('^')
	}
	for _, r := range chars {
		writeClassRune(&b, r)
	}
	for _, rg := range ranges {
		writeClassRune(&b, rg.Start)
		b.WriteByte('-')
		writeClassRune(&b, rg.End)
	}
	b.WriteByte(']')
	return b.String()
}

func writeClassRune(b *strings.Builder, r rune) {
	switch r {
	case '^', '-', ']', '\\':
		b.WriteByte('\\')
	}
	b.WriteRune(r)
}

// quoteMeta escapes regex metacharacters in a literal run. This mirrors
// regexp.QuoteMeta but stays local to avoid import cycles with the stdlib
// regexp package used only by the matcher that consumes ToRegex's output.
func quoteMeta(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
