// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secant

import (
	"github.com/curioloop/optimize/vec"
)

// BarzilaiBorwein is the scalar secant B = I/γ with γ = sᵀy/yᵀy of the
// most recent accepted step. It keeps no vector memory, which makes it the
// cheapest usable Newton-Krylov preconditioner.
type BarzilaiBorwein struct {
	gamma float64
}

// NewBarzilaiBorwein returns a scalar secant acting as the identity until
// the first storage update.
func NewBarzilaiBorwein() *BarzilaiBorwein {
	return &BarzilaiBorwein{gamma: 1}
}

// Gamma reports the current scaling sᵀy/yᵀy.
func (b *BarzilaiBorwein) Gamma() float64 { return b.gamma }

func (b *BarzilaiBorwein) UpdateStorage(xNew, gNew, gOld, step vec.Vector, stepNorm float64, iter int) {

	y := gNew.Clone()
	y.Set(gNew)
	y.Axpy(-1, gOld)

	sy := step.Dot(y.Dual())
	yy := y.Dot(y)

	// reject non-positive curvature, keep the previous scaling
	if sy <= machEps*yy {
		return
	}
	b.gamma = sy / yy
}

func (b *BarzilaiBorwein) Apply(out, in vec.Vector, tol *float64) {
	out.Set(in.Dual())
	out.Scale(1 / b.gamma)
}

func (b *BarzilaiBorwein) ApplyInverse(out, in vec.Vector, tol *float64) {
	out.Set(in.Dual())
	out.Scale(b.gamma)
}
