// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package secant provides rank-limited quasi-Newton curvature
// approximations. A secant behaves as a linear operator (and its inverse)
// and accumulates curvature memory from accepted optimization steps, which
// makes it usable as a persistent preconditioner for inexact Newton solves.
package secant

import (
	"math"

	"github.com/curioloop/optimize/krylov"
	"github.com/curioloop/optimize/vec"
)

// Secant is a curvature approximation with persistent storage.
//
// Apply computes the action of the approximate Hessian B and ApplyInverse
// the action of its inverse H. UpdateStorage pushes the curvature pair of
// an accepted step into the internal memory: xNew is the new iterate, gNew
// and gOld the gradients after and before the step, step the taken step
// with norm stepNorm, and iter the 1-based index of the next iteration.
type Secant interface {
	krylov.Preconditioner
	UpdateStorage(xNew, gNew, gOld, step vec.Vector, stepNorm float64, iter int)
}

// Config specifies the shape of the curvature memory.
type Config struct {
	// Storage bounds the number of retained curvature pairs.
	Storage int
}

var machEps = math.Nextafter(1, 2) - 1

func (c Config) withDefaults() Config {
	if c.Storage <= 0 {
		c.Storage = 10
	}
	return c
}

// pairs is a ring buffer of curvature pairs, oldest first.
type pairs struct {
	limit int
	s     []vec.Vector // iterate differences (primal)
	y     []vec.Vector // gradient differences (dual)
	sy    []float64    // sᵢᵀyᵢ
}

// push stores a pair, evicting the oldest when the buffer is full.
// The pair is skipped entirely when the curvature condition
// sᵀy > ε‖y‖² fails, since an indefinite update would poison B.
func (p *pairs) push(s, y vec.Vector, sy float64) bool {
	yy := y.Dot(y)
	if sy <= machEps*yy {
		return false
	}
	if len(p.s) == p.limit {
		p.s = append(p.s[:0], p.s[1:]...)
		p.y = append(p.y[:0], p.y[1:]...)
		p.sy = append(p.sy[:0], p.sy[1:]...)
	}
	p.s = append(p.s, s)
	p.y = append(p.y, y)
	p.sy = append(p.sy, sy)
	return true
}

// gamma is the inverse-Hessian scaling sᵀy/yᵀy of the newest pair,
// or 1 when the memory is empty.
func (p *pairs) gamma() float64 {
	if n := len(p.s); n > 0 {
		y := p.y[n-1]
		return p.sy[n-1] / y.Dot(y)
	}
	return 1
}
