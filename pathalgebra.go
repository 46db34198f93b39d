// Package pathalgebra compiles glob-style path patterns into segment
// automata and gives them a set-theoretic algebra: intersection, union,
// complement, difference, and a structural-plus-sample-based containment
// check, on top of straightforward single-pattern matching.
//
// A pattern like "src/**/*.ts" compiles to an automaton over whole path
// segments (not characters): "**" consumes zero or more complete
// segments, "*" and "?" work within one segment, and patterns compose
// algebraically — "src/**" ∩ "**/*.ts" denotes exactly the TypeScript
// files under src.
//
// Basic usage:
//
//	p, err := pathalgebra.Compile("src/**/*.ts")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if p.Match("/src/app/index.ts") {
//	    fmt.Println("matched!")
//	}
//
// Algebraic usage:
//
//	ts, _ := pathalgebra.Compile("src/**/*.ts")
//	tests, _ := pathalgebra.Compile("**/*.test.ts")
//	nonTestTS, err := pathalgebra.Difference(ts, tests)
package pathalgebra

import (
	"github.com/pathalgebra/pathalgebra/internal/algebra"
	"github.com/pathalgebra/pathalgebra/internal/ast"
	"github.com/pathalgebra/pathalgebra/internal/automaton"
	"github.com/pathalgebra/pathalgebra/internal/compile"
	"github.com/pathalgebra/pathalgebra/internal/contain"
	"github.com/pathalgebra/pathalgebra/internal/determinize"
	"github.com/pathalgebra/pathalgebra/internal/gsyntax"
	"github.com/pathalgebra/pathalgebra/internal/match"
	"github.com/pathalgebra/pathalgebra/internal/pathnorm"
	"github.com/pathalgebra/pathalgebra/internal/prefilter"
	"github.com/pathalgebra/pathalgebra/internal/reach"
)

// Pattern is a compiled path pattern, ready to match paths or participate
// in algebra operations.
//
// A Pattern is safe to use concurrently from multiple goroutines: matching
// only reads the underlying automaton, never mutates it.
//
// Example:
//
//	p := pathalgebra.MustCompile("**/*.ts")
//	if p.Match("/src/index.ts") {
//	    println("matched!")
//	}
type Pattern struct {
	source    string
	ast       *ast.Pattern
	automaton *automaton.SegmentAutomaton
	bounds    compile.Bounds
	filter    *prefilter.Filter
	compiled  *match.Compiled
}

// Source returns the original pattern text this Pattern was compiled from.
// For a Pattern produced by an algebra operation, this is a diagnostic
// synthetic string (e.g. "(src/**) ∩ (**/*.ts)") that is never re-parsed.
func (p *Pattern) Source() string { return p.source }

// IsUnbounded reports whether the pattern can match arbitrarily long
// paths (true iff a "**" is reachable).
func (p *Pattern) IsUnbounded() bool { return p.bounds.Unbounded() }

// MinSegments and MaxSegments report the pattern's statically-known
// segment-count bounds. MaxSegments is nil when IsUnbounded is true.
func (p *Pattern) MinSegments() int     { return p.bounds.MinSegments }
func (p *Pattern) MaxSegments() *int    { return p.bounds.MaxSegments }
func (p *Pattern) Errors() []ast.ParseError {
	if p.ast == nil {
		return nil
	}
	return p.ast.Errors
}

// HasErrors reports whether the pattern's syntax carried any recoverable
// parse errors (spec.md §7: "compilation of a pattern with errors is
// permitted").
func (p *Pattern) HasErrors() bool { return p.ast != nil && p.ast.HasErrors() }

// Config bounds the cost of every operation pathalgebra performs:
// determinization, brace expansion, and containment sampling.
type Config struct {
	// MaxDFAStates caps subset construction (determinize.Config.MaxStates).
	MaxDFAStates int
	// MaxBraceExpansions caps a pattern's total brace-group combinations.
	MaxBraceExpansions int
	// MaxRangeElements caps a single "{m..n}" numeric range's size.
	MaxRangeElements int
	// EnablePrefilter controls whether Compile builds a quick-reject
	// filter. Disabling it trades a small matching speedup for a simpler
	// pipeline, useful when benchmarking the automaton in isolation.
	EnablePrefilter bool
	// ContainmentSampleDepth is checked by Validate but is not read by any
	// operation: CheckContainment always synthesizes two "dir{i}" segments
	// per globstar (internal/contain's globstarSampleK).
	ContainmentSampleDepth int
}

// DefaultConfig returns the bounds used when Compile isn't given an
// explicit Config.
func DefaultConfig() Config {
	return Config{
		MaxDFAStates:           10_000,
		MaxBraceExpansions:     100,
		MaxRangeElements:       50,
		EnablePrefilter:        true,
		ContainmentSampleDepth: 2,
	}
}

// Validate reports whether c's bounds are all usable (positive where a
// positive bound is required).
func (c Config) Validate() error {
	switch {
	case c.MaxDFAStates <= 0:
		return &ConfigError{Field: "MaxDFAStates", Value: c.MaxDFAStates}
	case c.MaxBraceExpansions <= 0:
		return &ConfigError{Field: "MaxBraceExpansions", Value: c.MaxBraceExpansions}
	case c.MaxRangeElements <= 0:
		return &ConfigError{Field: "MaxRangeElements", Value: c.MaxRangeElements}
	case c.ContainmentSampleDepth <= 0:
		return &ConfigError{Field: "ContainmentSampleDepth", Value: c.ContainmentSampleDepth}
	}
	return nil
}

// ConfigError reports that a Config field holds a value no operation can
// use.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return "pathalgebra: " + e.Field + " must be positive, got " + itoa(e.Value)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// Compile parses, brace-expands and compiles source into a matchable,
// deterministic Pattern, using DefaultConfig's bounds.
//
// Example:
//
//	p, err := pathalgebra.Compile("src/**/*.ts")
func Compile(source string) (*Pattern, error) {
	return CompileWithConfig(source, DefaultConfig())
}

// MustCompile compiles source and panics if it fails.
func MustCompile(source string) *Pattern {
	p, err := Compile(source)
	if err != nil {
		panic("pathalgebra: Compile(" + source + "): " + err.Error())
	}
	return p
}

// CompileWithConfig compiles source under a caller-supplied Config.
//
// Example:
//
//	cfg := pathalgebra.DefaultConfig()
//	cfg.MaxDFAStates = 500
//	p, err := pathalgebra.CompileWithConfig("{a,b,c,d,e}/*.ts", cfg)
func CompileWithConfig(source string, cfg Config) (*Pattern, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	gcfg := gsyntax.Config{MaxBraceExpansions: cfg.MaxBraceExpansions, MaxRangeElements: cfg.MaxRangeElements}
	parsed, err := gsyntax.Parse(source, gcfg)
	if err != nil {
		return nil, err
	}

	return fromAST(source, parsed, cfg)
}

// fromAST compiles an already-parsed pattern tree: builds the NFA,
// determinizes it, and wires a quick-reject filter when enabled.
func fromAST(source string, parsed *ast.Pattern, cfg Config) (*Pattern, error) {
	nfa, bounds := compile.Build(parsed)
	dfa, err := determinize.Determinize(nfa, determinize.Config{MaxStates: cfg.MaxDFAStates})
	if err != nil {
		return nil, err
	}

	var filter *prefilter.Filter
	if cfg.EnablePrefilter {
		filter = buildFilter(parsed.Root)
	}

	return &Pattern{
		source:    source,
		ast:       parsed,
		automaton: dfa,
		bounds:    bounds,
		filter:    filter,
		compiled: &match.Compiled{
			Automaton:   dfa,
			Filter:      filterOrNil(filter),
			MinSegments: bounds.MinSegments,
			MaxSegments: bounds.MaxSegments,
			IsNegation:  parsed.IsNegation,
		},
	}, nil
}

// filterOrNil adapts a possibly-nil *prefilter.Filter to the match.
// QuickReject interface: a typed nil pointer stored in an interface value
// is not itself a nil interface, so this avoids match.Compiled silently
// treating "no filter" as "always has a non-nil Filter that panics."
func filterOrNil(f *prefilter.Filter) match.QuickReject {
	if f == nil {
		return nil
	}
	return f
}

// Match reports whether path (already normalized, or normalized by the
// caller via NormalizePath) is in the pattern's language.
//
// Example:
//
//	p := pathalgebra.MustCompile("**/*.ts")
//	p.Match("/src/index.ts") // true
func (p *Pattern) Match(path string) bool {
	return match.Matches(p.compiled, path)
}

// Intersect compiles "(a) ∩ (b)": a pattern matching exactly the paths
// both a and b match.
func Intersect(a, b *Pattern) (*Pattern, error) {
	product, err := algebra.Intersect(a.automaton, b.automaton)
	if err != nil {
		return nil, err
	}
	return fromOperands("(" + a.source + ") ∩ (" + b.source + ")", product, true, a, b)
}

// Union compiles "(a) ∪ (b)": a pattern matching every path either a or b
// matches.
func Union(a, b *Pattern) (*Pattern, error) {
	splice := algebra.Union(a.automaton, b.automaton)
	dfa, err := determinize.Determinize(splice, determinize.DefaultConfig())
	if err != nil {
		return nil, err
	}
	return fromOperands("("+a.source+") ∪ ("+b.source+")", dfa, true, a, b)
}

// Complement compiles "¬(a)": a pattern matching every path a does not.
// a's automaton must already be a complete DFA, which Compile always
// produces.
func Complement(a *Pattern) (*Pattern, error) {
	notA, err := algebra.Complement(a.automaton)
	if err != nil {
		return nil, err
	}
	p, err := fromOperands("¬("+a.source+")", notA, true, a)
	if err != nil {
		return nil, err
	}
	// The complement accepts paths of any length, so the operand's segment
	// bounds do not apply to it.
	p.bounds = compile.Bounds{}
	p.compiled.MinSegments = 0
	p.compiled.MaxSegments = nil
	return p, nil
}

// Difference compiles "(a) \ (b)" = "(a) ∩ ¬(b)": a pattern matching
// every path a matches that b does not.
func Difference(a, b *Pattern) (*Pattern, error) {
	diff, err := contain.Difference(a.automaton, b.automaton)
	if err != nil {
		return nil, err
	}
	return fromOperands("("+a.source+") \\ ("+b.source+")", diff, true, a, b)
}

// fromOperands wraps an algebra result automaton into a Pattern, building
// a synthetic AST that references the operand trees purely for downstream
// introspection (spec.md §9, "Algebra operation AST preservation").
func fromOperands(syntheticSource string, result *automaton.SegmentAutomaton, deterministic bool, operands ...*Pattern) (*Pattern, error) {
	roots := make([]*ast.Node, len(operands))
	for i, op := range operands {
		roots[i] = op.ast.Root
	}
	synthetic := ast.NewSynthetic(syntheticSource, roots...)

	bounds := unionBounds(operands)
	return &Pattern{
		source:    syntheticSource,
		ast:       synthetic,
		automaton: result,
		bounds:    bounds,
		compiled: &match.Compiled{
			Automaton:   result,
			MinSegments: bounds.MinSegments,
			MaxSegments: bounds.MaxSegments,
		},
	}, nil
}

// unionBounds reports the loosest bounds consistent with every operand: the
// smallest MinSegments and, if any operand is unbounded, an unbounded
// MaxSegments. This is conservative rather than exact — algebra operations
// can tighten true bounds in ways this helper doesn't attempt to compute,
// but a looser bound only costs a missed quick-reject, never a wrong match.
func unionBounds(operands []*Pattern) compile.Bounds {
	min := -1
	max := 0
	unbounded := false
	for _, op := range operands {
		if min < 0 || op.bounds.MinSegments < min {
			min = op.bounds.MinSegments
		}
		if op.bounds.Unbounded() {
			unbounded = true
		} else if *op.bounds.MaxSegments > max {
			max = *op.bounds.MaxSegments
		}
	}
	if min < 0 {
		min = 0
	}
	if unbounded {
		return compile.Bounds{MinSegments: min, MaxSegments: nil}
	}
	return compile.Bounds{MinSegments: min, MaxSegments: &max}
}

// CheckContainment analyzes the relationship between a and b's languages:
// subset, superset, equal, overlapping, or disjoint, with a best-effort
// explanation and counterexamples (spec.md §4.8). The check is sound in
// the "non-containment" direction only: a returned counterexample proves
// non-containment, but the absence of one does not prove containment.
func CheckContainment(a, b *Pattern) *contain.Result {
	ai := contain.Input{
		Pattern:        a.ast,
		Automaton:      a.automaton,
		Bounds:         a.bounds,
		RequiredPrefix: filterPrefix(a.filter),
		RequiredSuffix: filterSuffix(a.filter),
	}
	bi := contain.Input{
		Pattern:        b.ast,
		Automaton:      b.automaton,
		Bounds:         b.bounds,
		RequiredPrefix: filterPrefix(b.filter),
		RequiredSuffix: filterSuffix(b.filter),
	}
	return contain.CheckContainment(ai, bi)
}

func filterPrefix(f *prefilter.Filter) string {
	if f == nil {
		return ""
	}
	return f.RequiredPrefix
}

func filterSuffix(f *prefilter.Filter) string {
	if f == nil {
		return ""
	}
	return f.RequiredSuffix
}

// ExpandBraces expands every "{a,b,c}" and "{m..n}" group in source into
// its full cartesian product of concrete strings, without compiling the
// result. It is exposed directly (rather than only through Compile) since
// spec.md's testable scenarios name it as its own operation.
func ExpandBraces(source string) ([]string, error) {
	return gsyntax.ExpandBraces(source, gsyntax.DefaultConfig())
}

// NormalizePath resolves a relative, "~"-prefixed, or backslash-separated
// path into the absolute, slash-only form Match expects.
func NormalizePath(path string, homeDir, cwd, projectRoot string) (string, error) {
	return pathnorm.Normalize(path, pathnorm.Context{HomeDir: homeDir, Cwd: cwd, ProjectRoot: projectRoot})
}

// IsEmpty reports whether p's language contains no paths at all — true
// for a pattern like the intersection of two disjoint literal sequences.
func (p *Pattern) IsEmpty() bool {
	return reach.IsEmpty(p.automaton)
}

// Witness returns one concrete path p matches, or nil if p's language is
// empty.
//
// Example:
//
//	p := pathalgebra.MustCompile("src/**/*.ts")
//	if w := p.Witness(); w != nil {
//	    fmt.Println(*w) // "/src/file123.ts"
//	}
func (p *Pattern) Witness() *string {
	return reach.FindWitness(p.automaton)
}

// CountPaths counts, for each segment count up to maxDepth, the accepting
// transition sequences of that length through p's automaton. A literal
// edge stands for one segment string, but a wildcard or catch-all edge
// counts once however many segment strings it accepts, so the count equals
// the number of distinct matching paths only when every edge on an
// accepting route is a literal.
func (p *Pattern) CountPaths(maxDepth int) map[int]int64 {
	return reach.CountPaths(p.automaton, maxDepth)
}
