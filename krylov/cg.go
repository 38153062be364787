// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"

	"github.com/curioloop/optimize/vec"
)

// CG solves A·s = b with preconditioned conjugate gradients.
//
// The operator A must be symmetric positive definite on the subspace
// explored; when a direction p with pᵀAp ≤ 0 is encountered the solve
// stops immediately with FlagNegCurve and the partial solution so far.
type CG struct {
	cfg Config

	r, z, p, ap vec.Vector
}

// NewCG returns a CG solver with the given termination criteria.
func NewCG(cfg Config) *CG {
	return &CG{cfg: cfg.withDefaults()}
}

func (cg *CG) Run(s vec.Vector, A Operator, b vec.Vector, M Preconditioner) (iter int, flag Flag) {

	if cg.r == nil || cg.r.Len() != b.Len() {
		cg.r = b.Clone()
		cg.ap = b.Clone()
		cg.z = s.Clone()
		cg.p = s.Clone()
	}
	r, z, p, ap := cg.r, cg.z, cg.p, cg.ap

	itol := cg.cfg.Tolerance

	s.Zero()
	r.Set(b)
	rnorm := r.Norm()
	rtol := math.Min(cg.cfg.AbsTol, cg.cfg.RelTol*rnorm)

	M.ApplyInverse(z, r, &itol)
	p.Set(z)
	rz := r.Dot(z.Dual())

	flag = FlagConverged
	for iter = 0; iter < cg.cfg.MaxIter; iter++ {

		A.Apply(ap, p, &itol)
		kappa := p.Dot(ap.Dual())
		if kappa <= 0 {
			flag = FlagNegCurve
			break
		}

		alpha := rz / kappa
		s.Axpy(alpha, p)
		r.Axpy(-alpha, ap)

		rnorm = r.Norm()
		if rnorm < rtol {
			break
		}

		M.ApplyInverse(z, r, &itol)
		rzOld := rz
		rz = r.Dot(z.Dual())

		// p ← z + (rz/rzOld)·p
		p.Scale(rz / rzOld)
		p.Axpy(1, z)
	}

	if iter == cg.cfg.MaxIter {
		flag = FlagIterLimit
	} else {
		iter++
	}
	return
}
