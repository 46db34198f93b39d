// Package ast defines the typed tree that a parsed path pattern compiles
// down to: sequences and alternations of segments, where a segment is one
// of five kinds (literal, wildcard, globstar, character class, composite).
//
// The tree is immutable once constructed. Algebra operations (intersect,
// union, complement) never mutate an existing Pattern; they build fresh
// automata and wrap the inputs in a synthetic alternation node purely so
// callers can still introspect the operand trees (see NewSynthetic).
package ast

import "fmt"

// SegmentKind identifies which of the five segment variants a Segment holds.
type SegmentKind uint8

const (
	// Literal matches a single exact string value.
	Literal SegmentKind = iota
	// Wildcard matches a run of literal/star/question parts within one segment.
	Wildcard
	// Globstar is the "**" sentinel: zero or more complete path segments.
	Globstar
	// CharClass matches exactly one character against a set or ranges.
	CharClass
	// Composite matches a run of literal/star/question/charclass parts.
	Composite
)

// String returns a human-readable segment kind name.
func (k SegmentKind) String() string {
	switch k {
	case Literal:
		return "Literal"
	case Wildcard:
		return "Wildcard"
	case Globstar:
		return "Globstar"
	case CharClass:
		return "CharClass"
	case Composite:
		return "Composite"
	default:
		return fmt.Sprintf("SegmentKind(%d)", uint8(k))
	}
}

// PartKind identifies a single element of a Wildcard or Composite segment.
type PartKind uint8

const (
	// PartLiteral is a run of literal characters.
	PartLiteral PartKind = iota
	// PartStar matches zero or more characters within the segment.
	PartStar
	// PartQuestion matches exactly one character.
	PartQuestion
	// PartCharClass matches one character against a set or ranges. Only
	// legal inside a Composite segment, never inside a plain Wildcard.
	PartCharClass
)

// CharRange is an inclusive character range; Start must be <= End.
type CharRange struct {
	Start rune
	End   rune
}

// Part is one element of a Wildcard or Composite segment's part list.
type Part struct {
	Kind PartKind

	// Text holds the literal run for PartLiteral.
	Text string

	// Negated, Chars and Ranges describe a PartCharClass the same way
	// Segment's fields describe a whole CharClass segment.
	Negated bool
	Chars   string
	Ranges  []CharRange
}

// Segment is one path segment of a pattern's sequence, tagged by Kind.
// Only the fields relevant to Kind are populated; the zero value of the
// others is meaningless and must not be inspected.
type Segment struct {
	Kind SegmentKind

	// Text holds the exact value for a Literal segment.
	Text string

	// Parts holds the part list for Wildcard and Composite segments.
	Parts []Part

	// Negated, Chars and Ranges describe a whole-segment CharClass.
	Negated bool
	Chars   string
	Ranges  []CharRange
}

// IsLiteral reports whether the segment is a plain literal (used by
// quick-reject and the NFA builder to take the fast equality path).
func (s Segment) IsLiteral() bool { return s.Kind == Literal }

// NodeKind identifies whether a Node is a sequence of segments or an
// alternation of branch nodes.
type NodeKind uint8

const (
	// Sequence is an ordered list of segments, all of which must match in order.
	Sequence NodeKind = iota
	// Alternation is a set of branch nodes, any one of which may match.
	Alternation
)

// Node is the root of a pattern or one branch of an alternation. A Node is
// a Sequence (Segments populated) xor an Alternation (Branches populated).
type Node struct {
	Kind     NodeKind
	Segments []Segment // valid when Kind == Sequence
	Branches []*Node   // valid when Kind == Alternation
}

// ParseError is one error attached to a parsed Pattern. The pattern object
// is still returned when errors are present; callers that care must check
// Pattern.Errors explicitly (see spec.md §7).
type ParseError struct {
	Code     string
	Message  string
	Position int
	Length   int
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Code, e.Position, e.Message)
}

// Stable parse error codes (spec.md §6).
const (
	CodeInvalidGlobstar = "INVALID_GLOBSTAR"
	CodeUnclosedBracket = "UNCLOSED_BRACKET"
	CodeUnclosedBrace   = "UNCLOSED_BRACE"
	CodeEmptyCharClass  = "EMPTY_CHARCLASS"
	CodeInvalidRange    = "INVALID_RANGE"
	CodeExpansionLimit  = "EXPANSION_LIMIT"
	CodeNestedBraces    = "NESTED_BRACES"
	CodeInvalidEscape   = "INVALID_ESCAPE"
	CodeBannedFeature   = "BANNED_FEATURE"
	CodeInvalidRegex    = "INVALID_REGEX"
	CodeUnsafeRegex     = "UNSAFE_REGEX"
	CodeDFAStateLimit   = "DFA_STATE_LIMIT"
)

// Pattern is the parsed representation of one pattern source string.
type Pattern struct {
	Source     string
	Root       *Node
	IsAbsolute bool
	IsNegation bool
	Errors     []ParseError
}

// HasErrors reports whether parsing recorded any ParseError.
func (p *Pattern) HasErrors() bool { return len(p.Errors) > 0 }

// Empty reports whether the pattern has no segments at all (the "/" or "~"
// pattern): a Sequence root with zero segments.
func (p *Pattern) Empty() bool {
	return p.Root != nil && p.Root.Kind == Sequence && len(p.Root.Segments) == 0
}

// NewSynthetic builds a Pattern for an algebra-operation result (intersect,
// union, complement, difference). The synthetic source is diagnostic only
// and is never re-parsed (spec.md §6, "compiled-pattern source tags").
// The returned Pattern wraps an Alternation node referencing the operand
// roots purely so downstream consumers can still introspect them.
func NewSynthetic(source string, operands ...*Node) *Pattern {
	return &Pattern{
		Source: source,
		Root:   &Node{Kind: Alternation, Branches: operands},
	}
}

// Validate cross-checks, independently of the parser, that every CharRange
// in the tree (whole-segment or Part) satisfies Start <= End, so hand-built
// trees (e.g. from tests or tooling) can be checked too. A Globstar cannot
// appear as a Part because PartKind has no globstar variant. Empty
// segments (a Literal with empty Text, a Wildcard or Composite with no
// Parts) are not checked.
func (p *Pattern) Validate() []ParseError {
	var errs []ParseError
	if p.Root == nil {
		return errs
	}
	validateNode(p.Root, &errs)
	return errs
}

func validateNode(n *Node, errs *[]ParseError) {
	switch n.Kind {
	case Sequence:
		for _, seg := range n.Segments {
			validateSegment(seg, errs)
		}
	case Alternation:
		for _, b := range n.Branches {
			if b != nil {
				validateNode(b, errs)
			}
		}
	}
}

func validateSegment(seg Segment, errs *[]ParseError) {
	switch seg.Kind {
	case CharClass:
		validateRanges(seg.Ranges, errs)
	case Wildcard, Composite:
		for _, part := range seg.Parts {
			if part.Kind == PartCharClass {
				validateRanges(part.Ranges, errs)
			}
		}
	}
}

func validateRanges(ranges []CharRange, errs *[]ParseError) {
	for _, r := range ranges {
		if r.Start > r.End {
			*errs = append(*errs, ParseError{
				Code:    CodeInvalidRange,
				Message: fmt.Sprintf("reversed range %c-%c", r.Start, r.End),
			})
		}
	}
}
