package pathalgebra

import (
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/ast"
	"github.com/pathalgebra/pathalgebra/internal/prefilter"
)

// buildFilter derives a quick-reject filter straight from a pattern's AST
// (spec.md §4.3, "the quick-reject filter is derived from the pattern's
// literal structure, not hand-authored"): a Sequence contributes its
// leading/trailing literal run as a required prefix/suffix and every
// literal segment's text as a required literal; an Alternation can only
// offer what every branch agrees on, combined the same way
// internal/prefilter.Union combines two filters.
func buildFilter(root *ast.Node) *prefilter.Filter {
	if root == nil {
		return nil
	}
	f := deriveNode(root)
	if f == nil {
		return nil
	}
	return prefilter.New(f.RequiredPrefix, f.RequiredSuffix, f.MinLength, f.RequiredLiterals)
}

func deriveNode(n *ast.Node) *prefilter.Filter {
	switch n.Kind {
	case ast.Sequence:
		return deriveSequence(n.Segments)
	case ast.Alternation:
		return deriveAlternation(n.Branches)
	default:
		return nil
	}
}

func deriveSequence(segments []ast.Segment) *prefilter.Filter {
	if len(segments) == 0 {
		return nil
	}

	var prefix, suffix strings.Builder
	var literals []string
	brokenPrefix := false

	for _, seg := range segments {
		if seg.Kind != ast.Literal {
			brokenPrefix = true
			continue
		}
		literals = append(literals, seg.Text)
		if !brokenPrefix {
			if prefix.Len() > 0 {
				prefix.WriteByte('/')
			}
			prefix.WriteString(seg.Text)
		}
	}

	// Trailing literal run, scanned from the end, gives the suffix
	// requirement; the scan stops at the last non-literal segment
	// (wildcard, char class or globstar), so only literals after it count.
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg.Kind != ast.Literal {
			break
		}
		if suffix.Len() > 0 {
			suffix.WriteString("/" + seg.Text)
		} else {
			suffix.WriteString(seg.Text)
		}
	}

	return &prefilter.Filter{
		RequiredPrefix:   prefixOrEmpty(segments, prefix.String()),
		RequiredSuffix:   suffixOrEmpty(segments, suffix.String()),
		MinLength:        minLengthOf(segments),
		RequiredLiterals: literals,
	}
}

// minLengthOf computes a safe lower bound on the byte length of any path
// this sequence can match. A Globstar contributes 0 (it can vanish
// entirely, taking its separating slash with it), so any sequence
// containing one only gets credit for its literal/charclass segments'
// exact contribution, never for the slashes those segments would need
// once a globstar has elided an unknown number of neighbors.
func minLengthOf(segments []ast.Segment) int {
	hasGlobstar := false
	total := 0
	for _, seg := range segments {
		total += segmentMinLength(seg)
		if seg.Kind == ast.Globstar {
			hasGlobstar = true
		}
	}
	if hasGlobstar {
		return total
	}
	return total + len(segments) - 1 // one separating slash between each segment
}

// segmentMinLength is the minimum number of characters one segment can
// contribute: a literal's own length, a charclass's exactly one, a
// wildcard/composite's literal-part lengths plus one per mandatory "?",
// and zero for a globstar (it can match the empty segment sequence).
func segmentMinLength(seg ast.Segment) int {
	switch seg.Kind {
	case ast.Literal:
		return len(seg.Text)
	case ast.CharClass:
		return 1
	case ast.Globstar:
		return 0
	case ast.Wildcard, ast.Composite:
		n := 0
		for _, p := range seg.Parts {
			switch p.Kind {
			case ast.PartLiteral:
				n += len(p.Text)
			case ast.PartQuestion, ast.PartCharClass:
				n++
			}
		}
		return n
	default:
		return 0
	}
}

// prefixOrEmpty keeps the accumulated prefix only if the sequence starts
// with at least one literal segment (an all-wildcard or globstar-led
// sequence has no safe prefix requirement).
func prefixOrEmpty(segments []ast.Segment, built string) string {
	if len(segments) == 0 || segments[0].Kind != ast.Literal || built == "" {
		return ""
	}
	return "/" + built
}

func suffixOrEmpty(segments []ast.Segment, built string) string {
	if len(segments) == 0 || segments[len(segments)-1].Kind != ast.Literal || built == "" {
		return ""
	}
	return built
}

// deriveAlternation combines every branch's derived filter with
// prefilter.Union, since a path need only satisfy one branch: the combined
// filter can only keep what every branch's filter already guaranteed.
func deriveAlternation(branches []*ast.Node) *prefilter.Filter {
	var combined *prefilter.Filter
	for i, br := range branches {
		if br == nil {
			return nil
		}
		f := deriveNode(br)
		if f == nil {
			return nil
		}
		if i == 0 {
			combined = f
			continue
		}
		combined = prefilter.Union(combined, f)
		if combined == nil {
			return nil
		}
	}
	return combined
}
