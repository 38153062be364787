// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package secant

import (
	"github.com/curioloop/optimize/vec"
)

// LBFGS is a limited-memory BFGS approximation.
//
// ApplyInverse evaluates H·v with the two-loop recursion over the stored
// pairs, seeded with H₀ = γI where γ = sᵀy/yᵀy of the newest pair.
// Apply evaluates B·v by folding the direct BFGS update
//
//	Bᵢ₊₁v = Bᵢv + yᵢ(yᵢᵀv)/(yᵢᵀsᵢ) - Bᵢsᵢ(sᵢᵀBᵢv)/(sᵢᵀBᵢsᵢ)
//
// over the history with B₀ = I/γ, so Apply and ApplyInverse agree on the
// subspace spanned by the stored pairs.
type LBFGS struct {
	cfg Config
	mem pairs
}

// NewLBFGS returns an empty limited-memory BFGS approximation.
// With no stored pairs both apply directions act as the dual-space
// identity, so a fresh instance is a no-op preconditioner.
func NewLBFGS(cfg Config) *LBFGS {
	cfg = cfg.withDefaults()
	return &LBFGS{cfg: cfg, mem: pairs{limit: cfg.Storage}}
}

// Stored reports the number of retained curvature pairs.
func (l *LBFGS) Stored() int { return len(l.mem.s) }

func (l *LBFGS) UpdateStorage(xNew, gNew, gOld, step vec.Vector, stepNorm float64, iter int) {

	y := gNew.Clone()
	y.Set(gNew)
	y.Axpy(-1, gOld)

	sy := step.Dot(y.Dual())

	s := step.Clone()
	s.Set(step)
	l.mem.push(s, y, sy)
}

// ApplyInverse computes out = H·v for a dual-space v via two-loop recursion.
func (l *LBFGS) ApplyInverse(out, in vec.Vector, tol *float64) {

	mem := &l.mem
	n := len(mem.s)

	out.Set(in.Dual())
	alpha := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		alpha[i] = mem.s[i].Dot(out) / mem.sy[i]
		out.Axpy(-alpha[i], mem.y[i].Dual())
	}

	out.Scale(mem.gamma())

	for i := 0; i < n; i++ {
		beta := out.Dot(mem.y[i].Dual()) / mem.sy[i]
		out.Axpy(alpha[i]-beta, mem.s[i])
	}
}

// Apply computes out = B·v for a primal-space v.
func (l *LBFGS) Apply(out, in vec.Vector, tol *float64) {

	mem := &l.mem
	n := len(mem.s)
	gamma := mem.gamma()

	// bᵢ = Bᵢsᵢ and sᵢᵀBᵢsᵢ, built progressively over the history
	b := make([]vec.Vector, n)
	sbs := make([]float64, n)
	for i := 0; i < n; i++ {
		bi := mem.s[i].Dual()
		bi.Scale(1 / gamma)
		for j := 0; j < i; j++ {
			sb := mem.s[j].Dot(bi.Dual())
			ys := mem.s[i].Dot(mem.y[j].Dual())
			bi.Axpy(-sb/sbs[j], b[j])
			bi.Axpy(ys/mem.sy[j], mem.y[j])
		}
		b[i] = bi
		sbs[i] = mem.s[i].Dot(bi.Dual())
	}

	out.Set(in.Dual())
	out.Scale(1 / gamma)
	for i := 0; i < n; i++ {
		sb := mem.s[i].Dot(out.Dual())
		yv := in.Dot(mem.y[i].Dual())
		out.Axpy(-sb/sbs[i], b[i])
		out.Axpy(yv/mem.sy[i], mem.y[i])
	}
}
