package gsyntax

import (
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/ast"
)

// Parse turns one pattern source string into an ast.Pattern: brace
// expansion first, then per-variant segment tokenization, then (when brace
// expansion produced more than one variant) an Alternation over the
// resulting Sequences.
//
// Structural syntax problems — nested braces, unclosed brackets, a "**"
// that isn't a whole segment, banned extglob syntax — are recorded as
// ast.ParseError entries on the returned Pattern rather than failing the
// call (spec.md §7: "compilation of a pattern with errors is permitted").
// Only a brace/range expansion limit overflow is returned as a hard error,
// since there is no reasonable degraded pattern to fall back to.
func Parse(source string, cfg Config) (*ast.Pattern, error) {
	p := &ast.Pattern{Source: source}

	body := source
	if strings.HasPrefix(body, "!") {
		p.IsNegation = true
		body = body[1:]
	}
	if strings.HasPrefix(body, "~") {
		p.IsAbsolute = true
		body = body[1:]
		body = strings.TrimPrefix(body, "/")
	} else if strings.HasPrefix(body, "/") {
		p.IsAbsolute = true
		body = body[1:]
	}

	variants, exprErrs, limitErr := expandBracesLenient(body, cfg)
	if limitErr != nil {
		return nil, limitErr
	}
	p.Errors = append(p.Errors, exprErrs...)

	branches := make([]*ast.Node, 0, len(variants))
	for _, v := range variants {
		seq, errs := parseVariant(v)
		p.Errors = append(p.Errors, errs...)
		branches = append(branches, seq)
	}

	if len(branches) == 1 {
		p.Root = branches[0]
	} else {
		p.Root = &ast.Node{Kind: ast.Alternation, Branches: branches}
	}
	return p, nil
}

// parseVariant splits one brace-expanded variant string on '/' and
// tokenizes each piece into a Segment, returning a Sequence node.
func parseVariant(variant string) (*ast.Node, []ast.ParseError) {
	if variant == "" {
		return &ast.Node{Kind: ast.Sequence}, nil
	}

	raw := strings.Split(variant, "/")
	segments := make([]ast.Segment, 0, len(raw))
	var errs []ast.ParseError
	for _, r := range raw {
		if r == "" {
			continue
		}
		seg, segErrs := parseSegmentText(r)
		errs = append(errs, segErrs...)
		segments = append(segments, seg)
	}
	return &ast.Node{Kind: ast.Sequence, Segments: segments}, errs
}

// parseSegmentText lowers one raw, slash-free segment string into a
// Segment: "**" alone is Globstar, "**" mixed with anything else is an
// INVALID_GLOBSTAR error (treated as a literal double-star so parsing can
// continue), everything else goes through tokenizeParts/classifySegment.
func parseSegmentText(raw string) (ast.Segment, []ast.ParseError) {
	if raw == "**" {
		return ast.Segment{Kind: ast.Globstar}, nil
	}
	if strings.Contains(raw, "**") {
		parts, errs := tokenizeParts(raw)
		errs = append(errs, ast.ParseError{
			Code:    ast.CodeInvalidGlobstar,
			Message: `"**" is only meaningful as a whole path segment`,
		})
		return classifySegment(parts), errs
	}

	parts, errs := tokenizeParts(raw)
	return classifySegment(parts), errs
}
