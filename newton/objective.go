// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package newton computes optimization steps with the inexact
// (Newton-Krylov) method: the Newton system H·s = -g is solved
// approximately by a Krylov solver, optionally preconditioned with a
// quasi-Newton secant approximation, and the iterate is advanced through
// an initialize/compute/update protocol driven by an outer loop.
package newton

import (
	"math"

	"github.com/curioloop/optimize/numdiff"
	"github.com/curioloop/optimize/vec"
)

// Objective is the capability the step requires from the problem being
// minimized. All tolerances are in/out accuracy values for inexact
// evaluators; exact objectives leave them untouched.
type Objective interface {
	// Update notifies the objective of a new evaluation point before
	// value/gradient calls, allowing internal caches to refresh.
	// accepted reports whether x is an accepted iterate and iter its index.
	Update(x vec.Vector, accepted bool, iter int)
	// Value evaluates the objective at x.
	Value(x vec.Vector, tol *float64) float64
	// Gradient writes the (dual-space) gradient at x into g.
	Gradient(g, x vec.Vector, tol *float64)
	// HessVec writes the Hessian-vector product at x into hv.
	HessVec(hv, v, x vec.Vector, tol *float64)
	// Precond writes an approximate inverse-Hessian action at x into pv.
	Precond(pv, v, x vec.Vector, tol *float64)
}

// Func adapts plain closures into an Objective.
//
// Only Val is required. When Grad is nil, Gradient falls back to a central
// difference of values (the iterate must be a *vec.Dense). When Hess is
// nil, HessVec falls back to a forward difference of gradients with a
// √machEps-scaled relative step. Precond defaults to the dual-space
// identity.
type Func struct {
	Val  func(x vec.Vector) float64
	Grad func(g, x vec.Vector)
	Hess func(hv, v, x vec.Vector)

	fd numdiff.Gradient
}

func (f *Func) Update(x vec.Vector, accepted bool, iter int) {}

func (f *Func) Value(x vec.Vector, tol *float64) float64 { return f.Val(x) }

func (f *Func) Gradient(g, x vec.Vector, tol *float64) {
	if f.Grad != nil {
		f.Grad(g, x)
		return
	}

	// Diff perturbs x's backing slice in place, so the closure can
	// evaluate through the vector unchanged.
	f.fd.Method = numdiff.Central
	xr := x.(*vec.Dense).Raw()
	gr := g.(*vec.Dense).Raw()
	if err := f.fd.Diff(func([]float64) float64 { return f.Val(x) }, xr, gr); err != nil {
		panic(err)
	}
}

func (f *Func) HessVec(hv, v, x vec.Vector, tol *float64) {
	if f.Hess != nil {
		f.Hess(hv, v, x)
		return
	}

	vnorm := v.Norm()
	if vnorm == 0 {
		hv.Zero()
		return
	}

	// forward difference of gradients: Hv ≈ (g(x+hv) - g(x))/h
	h := sqrtEps * math.Max(1, x.Norm()) / vnorm

	xs := x.Clone()
	xs.Set(x)
	xs.Axpy(h, v)

	g := hv.Clone()
	f.Gradient(g, x, tol)
	f.Gradient(hv, xs, tol)
	hv.Axpy(-1, g)
	hv.Scale(1 / h)
}

func (f *Func) Precond(pv, v, x vec.Vector, tol *float64) {
	pv.Set(v.Dual())
}
