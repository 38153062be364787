// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import (
	"math"
	"testing"
)

func TestDenseKernels(t *testing.T) {

	x := DenseOf(1, 2, 3)
	y := DenseOf(4, -5, 6)

	s := x.Clone()
	s.Set(x)
	s.Axpy(2, y)

	switch {
	case x.Len() != 3:
		t.Fatal("TestDenseKernels: Bad Len")
	case !almostEqual(x.Dot(y), 1*4-2*5+3*6, 1e-15):
		t.Fatal("TestDenseKernels: Bad Dot")
	case !almostEqual(x.Norm(), math.Sqrt(14), 1e-15):
		t.Fatal("TestDenseKernels: Bad Norm")
	case !almostEqual(s.(*Dense).Raw(), []float64{9, -8, 15}, 1e-15):
		t.Fatal("TestDenseKernels: Bad Axpy")
	}

	s.Scale(-1)
	if !almostEqual(s.(*Dense).Raw(), []float64{-9, 8, -15}, 1e-15) {
		t.Fatal("TestDenseKernels: Bad Scale")
	}

	s.Zero()
	if s.Norm() != 0 {
		t.Fatal("TestDenseKernels: Bad Zero")
	}
}

func TestDenseDualIsCopy(t *testing.T) {

	x := DenseOf(1, 2, 3)
	d := x.Dual()
	d.Scale(10)

	if !almostEqual(x.Raw(), []float64{1, 2, 3}, 0) {
		t.Fatal("TestDenseDualIsCopy: Dual Aliases Source")
	}
}

func TestWeightedDualRoundTrip(t *testing.T) {

	w := []float64{0.5, 2, 4}
	x := WeightedOf(w, []float64{1, -2, 3})

	d := x.Dual()
	if !almostEqual(d.(*Weighted).Raw(), []float64{0.5, -4, 12}, 1e-15) {
		t.Fatal("TestWeightedDualRoundTrip: Bad Dual Entries")
	}

	p := d.Dual()
	if !almostEqual(p.(*Weighted).Raw(), x.Raw(), 1e-15) {
		t.Fatal("TestWeightedDualRoundTrip: Round Trip Not Identity")
	}
}

func TestWeightedPairing(t *testing.T) {

	w := []float64{0.5, 2, 4}
	x := WeightedOf(w, []float64{1, -2, 3})
	y := WeightedOf(w, []float64{2, 1, -1})

	// metric pairing Σ wᵢxᵢyᵢ
	want := 0.5*1*2 + 2*(-2)*1 + 4*3*(-1)
	if !almostEqual(x.Dot(y), want, 1e-15) {
		t.Fatal("TestWeightedPairing: Bad Primal Dot")
	}

	// dual(x)·dual(y) must agree with the primal pairing
	if !almostEqual(x.Dual().Dot(y.Dual()), want, 1e-15) {
		t.Fatal("TestWeightedPairing: Bad Dual Dot")
	}

	// norm consistency: ‖x‖² = x·x
	if !almostEqual(x.Norm()*x.Norm(), x.Dot(x), 1e-12) {
		t.Fatal("TestWeightedPairing: Bad Norm")
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
