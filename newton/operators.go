// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"github.com/curioloop/optimize/vec"
)

// hessian binds an objective and a fixed evaluation point into a linear
// operator computing Hessian-vector products on demand. It is stateless
// beyond the bound point and is rebuilt every outer iteration.
type hessian struct {
	obj Objective
	x   vec.Vector
}

func (h *hessian) Apply(out, in vec.Vector, tol *float64) {
	h.obj.HessVec(out, in, h.x, tol)
}

// precond binds an objective and evaluation point into a preconditioner:
// the forward apply is the dual-space identity and the inverse apply
// delegates to the objective's preconditioning routine.
type precond struct {
	obj Objective
	x   vec.Vector
}

func (p *precond) Apply(out, in vec.Vector, tol *float64) {
	out.Set(in.Dual())
}

func (p *precond) ApplyInverse(out, in vec.Vector, tol *float64) {
	p.obj.Precond(out, in, p.x, tol)
}
