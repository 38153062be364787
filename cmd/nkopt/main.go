// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// nkopt minimizes built-in test problems with the Newton-Krylov method.
// Algorithmic settings come from a YAML parameter list; the per-iteration
// progress table is written to stdout.
package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/curioloop/optimize/newton"
	"github.com/curioloop/optimize/vec"
)

var (
	configPath string
	problem    string
	dim        int
	verbose    bool
	gradTol    float64
	maxIter    int
)

var rootCmd = &cobra.Command{
	Use:   "nkopt",
	Short: "Inexact Newton-Krylov minimization of built-in test problems",
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Minimize a test problem and print the iteration table",
	RunE:  runProblem,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().StringVar(&configPath, "config", "", "YAML parameter list (defaults when empty)")
	runCmd.Flags().StringVar(&problem, "problem", "rosenbrock", "Test problem: rosenbrock or quadratic")
	runCmd.Flags().IntVar(&dim, "dim", 2, "Problem dimension (quadratic only)")
	runCmd.Flags().BoolVar(&verbose, "verbose", false, "Emit the column legend")
	runCmd.Flags().Float64Var(&gradTol, "gtol", 1e-8, "Gradient norm tolerance")
	runCmd.Flags().IntVar(&maxIter, "maxiter", 100, "Outer iteration limit")
}

func runProblem(cmd *cobra.Command, args []string) error {

	params := newton.DefaultParameters()
	if configPath != "" {
		var err error
		if params, err = newton.LoadParameters(configPath); err != nil {
			return err
		}
	}
	if verbose && params.General.PrintVerbosity == 0 {
		params.General.PrintVerbosity = 1
	}

	obj, x0, err := buildProblem(problem, dim)
	if err != nil {
		return err
	}

	step, err := newton.NewStep(params)
	if err != nil {
		return err
	}

	alg := &newton.Algorithm{
		Step:   step,
		Status: newton.StatusTest{GradTolerance: gradTol, MaxIterations: maxIter},
		Output: os.Stdout,
	}

	res, err := alg.Run(x0, obj)
	if err != nil {
		return err
	}

	fmt.Printf("\n%s\n", res.Status)
	fmt.Printf("iter = %d  fval = %.9e  gnorm = %.3e\n", res.Iter, res.Value, res.GNorm)
	return nil
}

func buildProblem(name string, n int) (newton.Objective, vec.Vector, error) {
	switch name {
	case "rosenbrock":
		return rosenbrock(), vec.DenseOf(-1.2, 1), nil
	case "quadratic":
		if n < 1 {
			return nil, nil, fmt.Errorf("dimension must be positive, got %d", n)
		}
		obj, x0 := tridiagQuadratic(n)
		return obj, x0, nil
	default:
		return nil, nil, fmt.Errorf("unknown problem %q", name)
	}
}

// rosenbrock is the classic two-dimensional valley with analytic
// gradient and Hessian-vector product.
func rosenbrock() *newton.Func {
	return &newton.Func{
		Val: func(x vec.Vector) float64 {
			r := x.(*vec.Dense).Raw()
			return 100*math.Pow(r[1]-r[0]*r[0], 2) + math.Pow(1-r[0], 2)
		},
		Grad: func(g, x vec.Vector) {
			r := x.(*vec.Dense).Raw()
			gr := g.(*vec.Dense).Raw()
			gr[0] = -400*r[0]*(r[1]-r[0]*r[0]) - 2*(1-r[0])
			gr[1] = 200 * (r[1] - r[0]*r[0])
		},
		Hess: func(hv, v, x vec.Vector) {
			r := x.(*vec.Dense).Raw()
			vr := v.(*vec.Dense).Raw()
			hr := hv.(*vec.Dense).Raw()
			h00 := 1200*r[0]*r[0] - 400*r[1] + 2
			h01 := -400 * r[0]
			hr[0] = h00*vr[0] + h01*vr[1]
			hr[1] = h01*vr[0] + 200*vr[1]
		},
	}
}

// tridiagQuadratic is f(x) = ½xᵀAx - 𝟙ᵀx with the SPD tridiagonal
// A = tridiag(-1, 2, -1), started from zero.
func tridiagQuadratic(n int) (*newton.Func, vec.Vector) {
	av := func(x, y []float64) {
		for i := range y {
			y[i] = 2 * x[i]
			if i > 0 {
				y[i] -= x[i-1]
			}
			if i < len(x)-1 {
				y[i] -= x[i+1]
			}
		}
	}
	obj := &newton.Func{
		Val: func(x vec.Vector) float64 {
			xr := x.(*vec.Dense).Raw()
			ax := make([]float64, len(xr))
			av(xr, ax)
			f := 0.0
			for i, v := range xr {
				f += 0.5*v*ax[i] - v
			}
			return f
		},
		Grad: func(g, x vec.Vector) {
			av(x.(*vec.Dense).Raw(), g.(*vec.Dense).Raw())
			for i := range g.(*vec.Dense).Raw() {
				g.(*vec.Dense).Raw()[i]--
			}
		},
		Hess: func(hv, v, x vec.Vector) {
			av(v.(*vec.Dense).Raw(), hv.(*vec.Dense).Raw())
		},
	}
	return obj, vec.NewDense(n)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
