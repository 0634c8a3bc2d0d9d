// Copyright 2024 The may Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command mayctl drives the may kernel end to end from the shell: it
// builds univariate polynomials in x from coefficient lists (there is
// no expression parser — see spec.md §1's non-goals) and runs one
// kernel operation per subcommand, printing the resulting term's Go
// representation.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"maylib.dev/may/arena"
	"maylib.dev/may/diff"
	"maylib.dev/may/eval"
	"maylib.dev/may/expand"
	"maylib.dev/may/frame"
	"maylib.dev/may/gcdlcm"
	"maylib.dev/may/polydiv"
	"maylib.dev/may/term"
)

// newEvaluator returns a fresh evaluator for one mayctl invocation: a
// 1MiB extendable arena and a default frame.
func newEvaluator() *eval.Evaluator {
	return eval.New(frame.New(), term.NewBuilder(arena.New(1<<20, true)))
}

// variable is the sole indeterminate mayctl's polynomial flags build
// over.
var variable = term.SymbolC("x", 0)

// parsePoly parses a comma-separated coefficient list, low degree
// first ("1,2,3" is 1 + 2x + 3x^2), into an evaluated term over
// variable.
func parsePoly(e *eval.Evaluator, s string) (*term.Term, error) {
	fields := strings.Split(s, ",")
	b := e.B
	var terms []*term.Term
	for i, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		n, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("coefficient %d (%q): %w", i, f, err)
		}
		if n == 0 {
			continue
		}
		c := b.IntC64(n)
		switch i {
		case 0:
			terms = append(terms, c)
		case 1:
			terms = append(terms, b.MulC(c, variable))
		default:
			terms = append(terms, b.MulC(c, b.PowC(variable, b.IntC64(int64(i)))))
		}
	}
	if len(terms) == 0 {
		return term.Zero(), nil
	}
	sum := terms[0]
	for _, t := range terms[1:] {
		sum = b.AddC(sum, t)
	}
	return e.Eval(sum), nil
}

func main() {
	root := &cobra.Command{
		Use:   "mayctl",
		Short: "Drive the may computer-algebra kernel from the command line",
	}
	root.AddCommand(evalCmd(), expandCmd(), diffCmd(), gcdCmd(), divqrCmd())
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func evalCmd() *cobra.Command {
	var a, bFlag, op string
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a + b or a * b, in canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEvaluator()
			pa, err := parsePoly(e, a)
			if err != nil {
				return err
			}
			if bFlag == "" {
				fmt.Printf("%#v\n", pa)
				return nil
			}
			pb, err := parsePoly(e, bFlag)
			if err != nil {
				return err
			}
			var result *term.Term
			switch op {
			case "", "add":
				result = e.Eval(e.B.AddC(pa, pb))
			case "mul":
				result = e.Eval(e.B.MulC(pa, pb))
			default:
				return fmt.Errorf("unknown --op %q: want add or mul", op)
			}
			fmt.Printf("%#v\n", result)
			return nil
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "coefficients of the first polynomial, low degree first")
	cmd.Flags().StringVar(&bFlag, "b", "", "coefficients of the second polynomial (optional)")
	cmd.Flags().StringVar(&op, "op", "add", "combining operation when --b is given: add or mul")
	cmd.MarkFlagRequired("a")
	return cmd
}

func expandCmd() *cobra.Command {
	var a string
	var pow int64
	cmd := &cobra.Command{
		Use:   "expand",
		Short: "Expand (a)^pow into a sum of monomials",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEvaluator()
			pa, err := parsePoly(e, a)
			if err != nil {
				return err
			}
			raised := e.Eval(e.B.PowC(pa, e.B.IntC64(pow)))
			fmt.Printf("%#v\n", expand.Expand(e, raised))
			return nil
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "coefficients of the base polynomial, low degree first")
	cmd.Flags().Int64Var(&pow, "pow", 2, "exponent to raise the base to before expanding")
	cmd.MarkFlagRequired("a")
	return cmd
}

func diffCmd() *cobra.Command {
	var a string
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Differentiate a with respect to x",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEvaluator()
			pa, err := parsePoly(e, a)
			if err != nil {
				return err
			}
			fmt.Printf("%#v\n", e.Eval(diff.Diff(e.B, pa, variable)))
			return nil
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "coefficients of the polynomial, low degree first")
	cmd.MarkFlagRequired("a")
	return cmd
}

func gcdCmd() *cobra.Command {
	var a, bFlag string
	var lcm, squareFree bool
	cmd := &cobra.Command{
		Use:   "gcd",
		Short: "Compute gcd(a, b), lcm(a, b), or the square-free decomposition of a",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEvaluator()
			pa, err := parsePoly(e, a)
			if err != nil {
				return err
			}
			if squareFree {
				result, ok := gcdlcm.SquareFreeYun(e, pa, variable)
				if !ok {
					return fmt.Errorf("square-free decomposition failed")
				}
				fmt.Printf("%#v\n", result)
				return nil
			}
			if bFlag == "" {
				return fmt.Errorf("--b is required unless --squarefree is set")
			}
			pb, err := parsePoly(e, bFlag)
			if err != nil {
				return err
			}
			if lcm {
				fmt.Printf("%#v\n", gcdlcm.TrueLCM(e, []*term.Term{pa, pb}, variable))
				return nil
			}
			result := gcdlcm.EuclidGCD(e, pa, pb, variable)
			if result == nil {
				return fmt.Errorf("gcd computation failed")
			}
			fmt.Printf("%#v\n", result)
			return nil
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "coefficients of the first polynomial, low degree first")
	cmd.Flags().StringVar(&bFlag, "b", "", "coefficients of the second polynomial")
	cmd.Flags().BoolVar(&lcm, "lcm", false, "compute lcm(a, b) instead of gcd(a, b)")
	cmd.Flags().BoolVar(&squareFree, "squarefree", false, "compute the square-free decomposition of a instead")
	cmd.MarkFlagRequired("a")
	return cmd
}

func divqrCmd() *cobra.Command {
	var a, bFlag string
	cmd := &cobra.Command{
		Use:   "divqr",
		Short: "Divide a by b, printing quotient and remainder",
		RunE: func(cmd *cobra.Command, args []string) error {
			e := newEvaluator()
			pa, err := parsePoly(e, a)
			if err != nil {
				return err
			}
			pb, err := parsePoly(e, bFlag)
			if err != nil {
				return err
			}
			q, r, ok := polydiv.DivQR(e, pa, pb, variable)
			if !ok {
				return fmt.Errorf("division failed")
			}
			fmt.Printf("quotient:  %#v\n", q)
			fmt.Printf("remainder: %#v\n", r)
			return nil
		},
	}
	cmd.Flags().StringVar(&a, "a", "", "coefficients of the dividend, low degree first")
	cmd.Flags().StringVar(&bFlag, "b", "", "coefficients of the divisor, low degree first")
	cmd.MarkFlagRequired("a")
	cmd.MarkFlagRequired("b")
	return cmd
}
