// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"

	"github.com/curioloop/optimize/vec"
)

// CR solves A·s = b with preconditioned conjugate residuals.
//
// Compared to CG it minimizes the residual norm instead of the energy
// norm, which tolerates mildly indefinite preconditioners. Indefiniteness
// of A itself is still reported through FlagNegCurve via the zᵀAz pairing.
type CR struct {
	cfg Config

	r, z, p, az, ap, mp vec.Vector
}

// NewCR returns a CR solver with the given termination criteria.
func NewCR(cfg Config) *CR {
	return &CR{cfg: cfg.withDefaults()}
}

func (cr *CR) Run(s vec.Vector, A Operator, b vec.Vector, M Preconditioner) (iter int, flag Flag) {

	if cr.r == nil || cr.r.Len() != b.Len() {
		cr.r = b.Clone()
		cr.az = b.Clone()
		cr.ap = b.Clone()
		cr.z = s.Clone()
		cr.p = s.Clone()
		cr.mp = s.Clone()
	}
	r, z, p, az, ap, mp := cr.r, cr.z, cr.p, cr.az, cr.ap, cr.mp

	itol := cr.cfg.Tolerance

	s.Zero()
	r.Set(b)
	rtol := math.Min(cr.cfg.AbsTol, cr.cfg.RelTol*r.Norm())

	M.ApplyInverse(z, r, &itol)
	p.Set(z)
	A.Apply(az, z, &itol)
	ap.Set(az)
	rho := z.Dot(az.Dual()) // zᵀAz

	flag = FlagConverged
	for iter = 0; iter < cr.cfg.MaxIter; iter++ {

		if rho <= 0 {
			flag = FlagNegCurve
			break
		}

		M.ApplyInverse(mp, ap, &itol)
		kappa := mp.Dot(ap.Dual()) // ApᵀM⁻¹Ap

		alpha := rho / kappa
		s.Axpy(alpha, p)
		r.Axpy(-alpha, ap)

		if r.Norm() < rtol {
			break
		}

		// z ← M⁻¹r without a second preconditioner solve
		z.Axpy(-alpha, mp)
		A.Apply(az, z, &itol)

		rhoOld := rho
		rho = z.Dot(az.Dual())
		beta := rho / rhoOld

		p.Scale(beta)
		p.Axpy(1, z)
		ap.Scale(beta)
		ap.Axpy(1, az)
	}

	if iter == cr.cfg.MaxIter {
		flag = FlagIterLimit
	} else {
		iter++
	}
	return
}
