// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package numdiff estimates gradients of scalar objectives by finite
// differences. It backs objectives that provide a value but no analytic
// gradient.
package numdiff

import (
	"errors"
	"math"
)

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)
var cubeEps = math.Pow(math.Nextafter(1, 2)-1, float64(1)/3)

type Method int

const (
	// Forward use the first order accuracy forward difference.
	Forward Method = iota
	// Central use the second order accuracy central difference.
	Central
)

// Gradient approximates ∇f of a scalar function f: ℝⁿ → ℝ.
//
// The per-coordinate step is h = copysign(eps, x)·max(1, |x|) with
// eps = √machEps for Forward and ∛machEps for Central, or
// h = copysign(RelStep, x)·|x| when RelStep is provided.
//
// # Reference:
//
//   - https://en.wikipedia.org/wiki/Finite_difference
//   - https://github.com/scipy/scipy/blob/main/scipy/optimize/_numdiff.py
type Gradient struct {
	// Finite difference method to use.
	Method Method
	// Relative step size used to compute the absolute step size.
	RelStep float64
	step    []float64
}

// Diff writes the estimated gradient of f at x into grad.
// Entries of x are perturbed in place and restored before return.
func (gr *Gradient) Diff(f func(x []float64) float64, x, grad []float64) error {

	switch {
	case f == nil:
		return errors.New("object function is required")
	case gr.Method != Forward && gr.Method != Central:
		return errors.New("unknown method")
	case len(x) != len(grad):
		return errors.New("invalid grad dimensions")
	}

	if len(gr.step) != len(x) {
		gr.step = make([]float64, len(x))
	}
	gr.stepSizes(x)

	if gr.Method == Central {
		gr.approxCentral(f, x, grad)
	} else {
		gr.approxForward(f, x, grad)
	}
	return nil
}

func (gr *Gradient) stepSizes(x []float64) {
	eps := sqrtEps
	if gr.Method == Central {
		eps = cubeEps
	}

	h, rel := gr.step, gr.RelStep
	if rel == 0 {
		for i, v := range x {
			h[i] = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
		}
	} else {
		for i, v := range x {
			s := math.Copysign(rel, v) * math.Abs(v)
			if d := (v + s) - v; d == 0 {
				s = math.Copysign(eps, v) * math.Max(1.0, math.Abs(v))
			}
			h[i] = s
		}
	}
}

func (gr *Gradient) approxForward(f func(x []float64) float64, x, grad []float64) {
	f0 := f(x)
	for i, s := range gr.step {
		t := x[i]
		x[i] = t + s
		grad[i] = (f(x) - f0) / s
		x[i] = t
	}
}

func (gr *Gradient) approxCentral(f func(x []float64) float64, x, grad []float64) {
	for i, s := range gr.step {
		s = math.Abs(s)
		t := x[i]
		x[i] = t - s
		f1 := f(x)
		x[i] = t + s
		f2 := f(x)
		grad[i] = (f2 - f1) / (2 * s)
		x[i] = t
	}
}
