package gsyntax

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pathalgebra/pathalgebra/internal/ast"
)

// numericRange matches the body of a "{m..n}" group, one compiled
// structural regex the same way path_to_regexp's tokenizer leans on a
// single pathRegexp before any hand-written state machine runs.
var numericRange = regexp.MustCompile(`^(-?\d+)\.\.(-?\d+)$`)

// braceGroup records one "{...}" span in a source string, in byte offsets
// so the cartesian product can be spliced back in without re-scanning.
type braceGroup struct {
	start, end int // end is exclusive, just past the closing '}'
	body       string
}

// ExpandBraces expands every "{a,b,c}" alternation and "{m..n}" numeric
// range in source into the full cartesian product of resulting strings
// (spec.md §6, "{a,b,c}" / "{m..n}"). Brace nesting and unclosed braces
// are reported as plain errors here; callers that want them downgraded to
// recoverable ast.ParseError entries should go through Parse instead.
func ExpandBraces(source string, cfg Config) ([]string, error) {
	variants, errs, limitErr := expandBracesLenient(source, cfg)
	if limitErr != nil {
		return nil, limitErr
	}
	if len(errs) > 0 {
		return nil, errs[0]
	}
	return variants, nil
}

// expandBracesLenient is the shared implementation behind both
// ExpandBraces and Parse: structural problems (nesting, unclosed braces,
// empty groups) degrade to ast.ParseError entries with a best-effort
// fallback, while a limit overflow is always a hard, returned error.
func expandBracesLenient(source string, cfg Config) (variants []string, errs []ast.ParseError, limitErr error) {
	groups, gerrs := findBraceGroups(source)
	errs = append(errs, gerrs...)
	if len(groups) == 0 {
		return []string{source}, errs, nil
	}

	itemLists := make([][]string, len(groups))
	total := 1
	for i, g := range groups {
		items, actual, ierrs, ok := resolveBraceGroup(g.body, cfg)
		errs = append(errs, ierrs...)
		if !ok {
			return nil, errs, &ExpansionLimitError{Limit: cfg.MaxRangeElements, Actual: actual}
		}
		itemLists[i] = items
		total *= len(items)
		if total > cfg.MaxBraceExpansions {
			return nil, errs, &ExpansionLimitError{Limit: cfg.MaxBraceExpansions, Actual: total}
		}
	}

	return cartesianSubstitute(source, groups, itemLists), errs, nil
}

// findBraceGroups scans source for top-level "{...}" spans. Nested braces
// inside a group or an unclosed group are recorded as parse errors and the
// offending group is left out of the result (treated as literal text).
func findBraceGroups(s string) (groups []braceGroup, errs []ast.ParseError) {
	i := 0
	for i < len(s) {
		if s[i] == '\\' && i+1 < len(s) {
			i += 2
			continue
		}
		if s[i] != '{' {
			i++
			continue
		}

		start := i
		depth := 1
		j := i + 1
		nested := false
		for j < len(s) && depth > 0 {
			switch {
			case s[j] == '\\' && j+1 < len(s):
				j += 2
				continue
			case s[j] == '{':
				nested = true
				depth++
			case s[j] == '}':
				depth--
			}
			j++
		}

		if depth != 0 {
			errs = append(errs, ast.ParseError{Code: ast.CodeUnclosedBrace, Message: "unclosed '{'", Position: start})
			return groups, errs
		}
		if nested {
			errs = append(errs, ast.ParseError{Code: ast.CodeNestedBraces, Message: "nested braces are not supported", Position: start})
			i = j
			continue
		}
		groups = append(groups, braceGroup{start: start, end: j, body: s[start+1 : j-1]})
		i = j
	}
	return groups, errs
}

// resolveBraceGroup expands one group's body into its concrete item list:
// a numeric range if the body matches "m..n", otherwise a comma-separated
// alternation list. ok is false when a numeric range exceeds
// cfg.MaxRangeElements.
func resolveBraceGroup(body string, cfg Config) (items []string, actual int, errs []ast.ParseError, ok bool) {
	if m := numericRange.FindStringSubmatch(body); m != nil {
		lo, _ := strconv.Atoi(m[1])
		hi, _ := strconv.Atoi(m[2])
		count := hi - lo
		if count < 0 {
			count = -count
		}
		count++
		if count > cfg.MaxRangeElements {
			return nil, count, errs, false
		}
		items = make([]string, 0, count)
		if lo <= hi {
			for v := lo; v <= hi; v++ {
				items = append(items, strconv.Itoa(v))
			}
		} else {
			for v := lo; v >= hi; v-- {
				items = append(items, strconv.Itoa(v))
			}
		}
		return items, count, errs, true
	}

	parts := splitUnescaped(body, ',')
	if len(parts) == 1 && parts[0] == "" {
		errs = append(errs, ast.ParseError{Code: ast.CodeUnclosedBrace, Message: "empty brace group"})
		return []string{""}, 1, errs, true
	}
	return parts, len(parts), errs, true
}

// cartesianSubstitute walks every combination of groups' resolved items,
// in odometer order (rightmost group varies fastest), splicing each
// combination back into source around the group spans.
func cartesianSubstitute(source string, groups []braceGroup, itemLists [][]string) []string {
	total := 1
	for _, items := range itemLists {
		total *= len(items)
	}
	results := make([]string, 0, total)
	indices := make([]int, len(groups))

	for {
		var b strings.Builder
		prev := 0
		for gi, g := range groups {
			b.WriteString(source[prev:g.start])
			b.WriteString(itemLists[gi][indices[gi]])
			prev = g.end
		}
		b.WriteString(source[prev:])
		results = append(results, b.String())

		k := len(groups) - 1
		for k >= 0 {
			indices[k]++
			if indices[k] < len(itemLists[k]) {
				break
			}
			indices[k] = 0
			k--
		}
		if k < 0 {
			break
		}
	}
	return results
}

// splitUnescaped splits s on sep, treating a backslash-escaped sep as a
// literal character rather than a delimiter.
func splitUnescaped(s string, sep rune) []string {
	var parts []string
	var buf strings.Builder
	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\\' && i+1 < len(runes) {
			buf.WriteRune(runes[i+1])
			i++
			continue
		}
		if r == sep {
			parts = append(parts, buf.String())
			buf.Reset()
			continue
		}
		buf.WriteRune(r)
	}
	parts = append(parts, buf.String())
	return parts
}
