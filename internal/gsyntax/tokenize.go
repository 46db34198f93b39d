package gsyntax

import (
	"fmt"
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/ast"
)

// maxStarsPerSegment bounds how many '*' wildcards one segment may carry.
// segment.Matches backtracks over every possible star consumption length,
// so a segment with many stars in a row is the glob analogue of a ReDoS
// pattern; this is the parse-time guard that keeps matching total-cost
// bounded (spec.md §7, "all matching operations are total").
const maxStarsPerSegment = 8

// hasExtglobPrefix flags the bash-extglob forms ("@(...)", "+(...)", ...)
// that this engine doesn't support, so they fail cleanly at parse time
// instead of silently matching something unintended.
func hasExtglobPrefix(raw string) bool {
	if len(raw) < 2 {
		return false
	}
	switch raw[0] {
	case '@', '+', '!', '?', '*':
		return raw[1] == '('
	default:
		return false
	}
}

// tokenizeParts lowers one raw (already brace-expanded, slash-free)
// segment string into its Part list, per the syntax table in spec.md §6.
func tokenizeParts(raw string) ([]ast.Part, []ast.ParseError) {
	if hasExtglobPrefix(raw) {
		return []ast.Part{{Kind: ast.PartLiteral, Text: raw}},
			[]ast.ParseError{{Code: ast.CodeBannedFeature, Message: "extglob syntax is not supported"}}
	}

	var parts []ast.Part
	var errs []ast.ParseError
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			parts = append(parts, ast.Part{Kind: ast.PartLiteral, Text: lit.String()})
			lit.Reset()
		}
	}

	runes := []rune(raw)
	starCount := 0
	for i := 0; i < len(runes); {
		r := runes[i]
		switch r {
		case '\\':
			if i+1 >= len(runes) {
				errs = append(errs, ast.ParseError{Code: ast.CodeInvalidEscape, Message: "dangling escape", Position: i})
				lit.WriteRune('\\')
				i++
				continue
			}
			lit.WriteRune(runes[i+1])
			i += 2
		case '*':
			flush()
			parts = append(parts, ast.Part{Kind: ast.PartStar})
			starCount++
			i++
		case '?':
			flush()
			parts = append(parts, ast.Part{Kind: ast.PartQuestion})
			i++
		case '[':
			flush()
			part, consumed, clsErrs := tokenizeCharClass(runes[i:])
			errs = append(errs, offsetErrs(clsErrs, i)...)
			if consumed == 0 {
				lit.WriteString(string(runes[i:]))
				i = len(runes)
				continue
			}
			parts = append(parts, part)
			i += consumed
		default:
			lit.WriteRune(r)
			i++
		}
	}
	flush()

	if starCount > maxStarsPerSegment {
		errs = append(errs, ast.ParseError{
			Code:    ast.CodeUnsafeRegex,
			Message: fmt.Sprintf("%d '*' wildcards in one segment exceeds the safe limit of %d", starCount, maxStarsPerSegment),
		})
	}
	return parts, errs
}

// tokenizeCharClass parses a "[...]" class starting at runes[0] == '['.
// consumed is 0 when the class never closes (caller degrades to literal
// text); otherwise it is the number of runes of the class, including both
// brackets.
func tokenizeCharClass(runes []rune) (part ast.Part, consumed int, errs []ast.ParseError) {
	i := 1
	negated := false
	if i < len(runes) && (runes[i] == '!' || runes[i] == '^') {
		negated = true
		i++
	}

	var chars strings.Builder
	var ranges []ast.CharRange
	first := true
	closed := false

	for i < len(runes) {
		r := runes[i]
		switch {
		case r == ']' && !first:
			closed = true
			i++
		case r == ']' && first:
			chars.WriteRune(']')
			i++
			first = false
			continue
		case r == '\\' && i+1 < len(runes):
			chars.WriteRune(runes[i+1])
			i += 2
			first = false
			continue
		case i+2 < len(runes) && runes[i+1] == '-' && runes[i+2] != ']':
			start, end := r, runes[i+2]
			if start > end {
				errs = append(errs, ast.ParseError{Code: ast.CodeInvalidRange, Message: fmt.Sprintf("reversed range %c-%c", start, end)})
			} else {
				ranges = append(ranges, ast.CharRange{Start: start, End: end})
			}
			i += 3
			first = false
			continue
		default:
			chars.WriteRune(r)
			i++
			first = false
			continue
		}
		if closed {
			break
		}
	}

	if !closed {
		return ast.Part{}, 0, []ast.ParseError{{Code: ast.CodeUnclosedBracket, Message: "unclosed '['"}}
	}
	if chars.Len() == 0 && len(ranges) == 0 {
		errs = append(errs, ast.ParseError{Code: ast.CodeEmptyCharClass, Message: "empty character class"})
	}
	return ast.Part{Kind: ast.PartCharClass, Negated: negated, Chars: chars.String(), Ranges: ranges}, i, errs
}

func offsetErrs(errs []ast.ParseError, offset int) []ast.ParseError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]ast.ParseError, len(errs))
	for i, e := range errs {
		e.Position += offset
		out[i] = e
	}
	return out
}

// classifySegment picks the narrowest ast.SegmentKind that fits parts: a
// lone literal run becomes Literal (so the fast-path equality check in
// internal/segment applies), a lone char class becomes the whole-segment
// CharClass kind, any other mix containing a char class is Composite,
// and everything else is Wildcard.
func classifySegment(parts []ast.Part) ast.Segment {
	if len(parts) == 0 {
		return ast.Segment{Kind: ast.Literal, Text: ""}
	}
	if len(parts) == 1 && parts[0].Kind == ast.PartLiteral {
		return ast.Segment{Kind: ast.Literal, Text: parts[0].Text}
	}
	if len(parts) == 1 && parts[0].Kind == ast.PartCharClass {
		p := parts[0]
		return ast.Segment{Kind: ast.CharClass, Negated: p.Negated, Chars: p.Chars, Ranges: p.Ranges}
	}
	for _, p := range parts {
		if p.Kind == ast.PartCharClass {
			return ast.Segment{Kind: ast.Composite, Parts: parts}
		}
	}
	return ast.Segment{Kind: ast.Wildcard, Parts: parts}
}
