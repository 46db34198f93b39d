// Command pathalgebra is a thin CLI over the pathalgebra library: it
// compiles one or two patterns given on the command line and reports a
// match or algebra-operation result, so patterns can be scripted and
// sanity-checked without writing Go.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pathalgebra/pathalgebra"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "match":
		err = runMatch(os.Args[2:])
	case "intersect":
		err = runBinary(os.Args[2:], "intersect", pathalgebra.Intersect)
	case "union":
		err = runBinary(os.Args[2:], "union", pathalgebra.Union)
	case "difference":
		err = runBinary(os.Args[2:], "difference", pathalgebra.Difference)
	case "complement":
		err = runComplement(os.Args[2:])
	case "contains":
		err = runContains(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "pathalgebra:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage:
  pathalgebra match <pattern> <path>
  pathalgebra intersect <pattern-a> <pattern-b> <path>
  pathalgebra union <pattern-a> <pattern-b> <path>
  pathalgebra difference <pattern-a> <pattern-b> <path>
  pathalgebra complement <pattern> <path>
  pathalgebra contains <pattern-a> <pattern-b>`)
}

func runMatch(args []string) error {
	fs := flag.NewFlagSet("match", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("match needs exactly 2 arguments: <pattern> <path>")
	}
	p, err := pathalgebra.Compile(fs.Arg(0))
	if err != nil {
		return err
	}
	fmt.Println(p.Match(fs.Arg(1)))
	return nil
}

func runBinary(args []string, name string, op func(a, b *pathalgebra.Pattern) (*pathalgebra.Pattern, error)) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 3 {
		return fmt.Errorf("%s needs exactly 3 arguments: <pattern-a> <pattern-b> <path>", name)
	}
	a, err := pathalgebra.Compile(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := pathalgebra.Compile(fs.Arg(1))
	if err != nil {
		return err
	}
	combined, err := op(a, b)
	if err != nil {
		return err
	}
	fmt.Println(combined.Match(fs.Arg(2)))
	return nil
}

func runComplement(args []string) error {
	fs := flag.NewFlagSet("complement", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("complement needs exactly 2 arguments: <pattern> <path>")
	}
	a, err := pathalgebra.Compile(fs.Arg(0))
	if err != nil {
		return err
	}
	notA, err := pathalgebra.Complement(a)
	if err != nil {
		return err
	}
	fmt.Println(notA.Match(fs.Arg(1)))
	return nil
}

func runContains(args []string) error {
	fs := flag.NewFlagSet("contains", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("contains needs exactly 2 arguments: <pattern-a> <pattern-b>")
	}
	a, err := pathalgebra.Compile(fs.Arg(0))
	if err != nil {
		return err
	}
	b, err := pathalgebra.Compile(fs.Arg(1))
	if err != nil {
		return err
	}
	result := pathalgebra.CheckContainment(a, b)
	fmt.Println(result.Relationship)
	if result.Counterexample != nil {
		fmt.Println("counterexample:", *result.Counterexample)
	}
	return nil
}
