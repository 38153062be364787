// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package krylov

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/curioloop/optimize/vec"
)

// matOp wraps a symmetric matrix as an Operator.
type matOp struct {
	a *mat.SymDense
}

func (m *matOp) Apply(out, in vec.Vector, tol *float64) {
	x := mat.NewVecDense(in.Len(), in.(*vec.Dense).Raw())
	y := mat.NewVecDense(out.Len(), out.(*vec.Dense).Raw())
	y.MulVec(m.a, x)
}

// identity is the trivial dual-space preconditioner.
type identity struct{}

func (identity) Apply(out, in vec.Vector, tol *float64)        { out.Set(in.Dual()) }
func (identity) ApplyInverse(out, in vec.Vector, tol *float64) { out.Set(in.Dual()) }

func spdSystem() (*matOp, *vec.Dense, []float64) {
	a := mat.NewSymDense(3, []float64{
		4, 1, 0,
		1, 3, 1,
		0, 1, 5,
	})
	b := vec.DenseOf(1, 2, 3)

	// direct solve for reference
	var ch mat.Cholesky
	if !ch.Factorize(a) {
		panic("spd factorization failed")
	}
	want := mat.NewVecDense(3, nil)
	if err := ch.SolveVecTo(want, mat.NewVecDense(3, []float64{1, 2, 3})); err != nil {
		panic(err)
	}
	return &matOp{a: a}, b, want.RawVector().Data
}

func TestCGSolvesSPD(t *testing.T) {

	op, b, want := spdSystem()
	s := vec.NewDense(3)

	cg := NewCG(Config{AbsTol: 1e-12, RelTol: 1e-12, MaxIter: 50})
	iter, flag := cg.Run(s, op, b, identity{})

	switch {
	case flag != FlagConverged:
		t.Fatal("TestCGSolvesSPD: Bad Flag", flag)
	case iter > 3+1:
		t.Fatal("TestCGSolvesSPD: Too Many Iterations", iter)
	case !almostEqual(s.Raw(), want, 1e-8):
		t.Fatal("TestCGSolvesSPD: Wrong Solution", s.Raw(), want)
	}
}

func TestCRSolvesSPD(t *testing.T) {

	op, b, want := spdSystem()
	s := vec.NewDense(3)

	cr := NewCR(Config{AbsTol: 1e-12, RelTol: 1e-12, MaxIter: 50})
	_, flag := cr.Run(s, op, b, identity{})

	switch {
	case flag != FlagConverged:
		t.Fatal("TestCRSolvesSPD: Bad Flag", flag)
	case !almostEqual(s.Raw(), want, 1e-8):
		t.Fatal("TestCRSolvesSPD: Wrong Solution", s.Raw(), want)
	}
}

func TestCGNegativeCurvature(t *testing.T) {

	a := mat.NewSymDense(2, []float64{
		-1, 0,
		0, -2,
	})
	b := vec.DenseOf(1, 1)
	s := vec.NewDense(2)

	cg := NewCG(Config{MaxIter: 10})
	iter, flag := cg.Run(s, &matOp{a: a}, b, identity{})

	switch {
	case flag != FlagNegCurve:
		t.Fatal("TestCGNegativeCurvature: Bad Flag", flag)
	case iter != 1:
		t.Fatal("TestCGNegativeCurvature: Bad Iteration Count", iter)
	}
}

func TestCGIterationLimit(t *testing.T) {

	// Hilbert-like ill-conditioned system with a tight tolerance and a
	// one-iteration budget must stop on the limit.
	a := mat.NewSymDense(4, nil)
	for i := 0; i < 4; i++ {
		for j := i; j < 4; j++ {
			a.SetSym(i, j, 1/float64(i+j+1))
		}
	}
	b := vec.DenseOf(1, 1, 1, 1)
	s := vec.NewDense(4)

	cg := NewCG(Config{AbsTol: 1e-16, RelTol: 1e-16, MaxIter: 1})
	iter, flag := cg.Run(s, &matOp{a: a}, b, identity{})

	switch {
	case flag != FlagIterLimit:
		t.Fatal("TestCGIterationLimit: Bad Flag", flag)
	case iter != 1:
		t.Fatal("TestCGIterationLimit: Bad Iteration Count", iter)
	}
}

func TestFlagString(t *testing.T) {
	if FlagConverged.String() != "converged" ||
		FlagIterLimit.String() != "iteration limit" ||
		FlagNegCurve.String() != "negative curvature" {
		t.Fatal("TestFlagString: Bad Flag Name")
	}
}

func almostEqual[T float64 | []float64](a, b T, tol float64) bool {
	equalWithinAbs := func(a, b float64) bool {
		return a == b || math.Abs(a-b) <= tol
	}
	switch any(a).(type) {
	case float64:
		return equalWithinAbs(any(a).(float64), any(b).(float64))
	default:
		a, b := any(a).([]float64), any(b).([]float64)
		if len(a) != len(b) {
			return false
		}
		for i, a := range a {
			if !equalWithinAbs(a, b[i]) {
				return false
			}
		}
		return true
	}
}
