// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package krylov provides iterative solvers for the Newton system H·s = g
// using only operator-vector products, together with the linear-operator
// capability they consume.
package krylov

import (
	"math"

	"github.com/curioloop/optimize/vec"
)

// Operator represents the action of a linear map from the primal space
// into the dual space, such as a Hessian-vector product.
//
// tol is an in/out accuracy value: on entry the requested accuracy of the
// product, on exit the accuracy actually achieved. Operators backed by
// exact evaluations leave it untouched.
type Operator interface {
	Apply(out, in vec.Vector, tol *float64)
}

// Preconditioner is an Operator whose (approximate) inverse action is
// also available. Solvers only ever invoke ApplyInverse.
type Preconditioner interface {
	Operator
	ApplyInverse(out, in vec.Vector, tol *float64)
}

// Flag reports how a solve terminated.
type Flag int

const (
	// FlagConverged the residual norm reached the tolerance.
	FlagConverged Flag = iota
	// FlagIterLimit the iteration limit was reached first.
	FlagIterLimit
	// FlagNegCurve a direction of non-positive curvature was detected.
	FlagNegCurve
)

func (f Flag) String() string {
	switch f {
	case FlagConverged:
		return "converged"
	case FlagIterLimit:
		return "iteration limit"
	case FlagNegCurve:
		return "negative curvature"
	default:
		return "unknown"
	}
}

// Solver approximately solves A·s = b with preconditioner M, overwriting s.
// It returns the number of iterations taken and a termination flag.
// The solution is written in place; b and the operators are not mutated.
type Solver interface {
	Run(s vec.Vector, A Operator, b vec.Vector, M Preconditioner) (iter int, flag Flag)
}

// Config specifies the termination criteria of a solver.
type Config struct {
	// The solve stops when the residual norm drops below
	// 𝚖𝚒𝚗(AbsTol, RelTol × ‖b‖).
	AbsTol float64
	// Relative residual reduction factor.
	RelTol float64
	// Hard cap on the number of iterations.
	MaxIter int
	// Accuracy requested from operator applications.
	Tolerance float64
}

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)

func (c Config) withDefaults() Config {
	if c.AbsTol <= 0 {
		c.AbsTol = 1e-4
	}
	if c.RelTol <= 0 {
		c.RelTol = 1e-2
	}
	if c.MaxIter <= 0 {
		c.MaxIter = 100
	}
	if c.Tolerance <= 0 {
		c.Tolerance = sqrtEps
	}
	return c
}
