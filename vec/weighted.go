// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Weighted is a vector under a diagonal metric w.
//
// A primal vector x pairs with another primal y as Σ wᵢxᵢyᵢ, and its dual
// representation carries the entries wᵢxᵢ. Dual vectors pair as Σ xᵢyᵢ/wᵢ,
// so a primal/dual round trip is an identity and mixed pairings like
// p·Dual(Ap) reduce to the plain Euclidean product Σ pᵢ(Ap)ᵢ.
type Weighted struct {
	data    []float64
	weights []float64
	dual    bool
}

// NewWeighted returns a zeroed primal vector under the metric w.
// The weights must be strictly positive and are shared, not copied.
func NewWeighted(w []float64) *Weighted {
	for _, wi := range w {
		if wi <= 0 || math.IsNaN(wi) {
			panic("vec: weights must be positive")
		}
	}
	return &Weighted{data: make([]float64, len(w)), weights: w}
}

// WeightedOf returns a primal vector under the metric w holding a copy of data.
func WeightedOf(w, data []float64) *Weighted {
	if len(w) != len(data) {
		panic("vec: weight dimension mismatch")
	}
	v := NewWeighted(w)
	copy(v.data, data)
	return v
}

// Raw exposes the backing slice. Mutating it mutates the vector.
func (v *Weighted) Raw() []float64 { return v.data }

// IsDual reports whether the vector currently holds a dual representation.
func (v *Weighted) IsDual() bool { return v.dual }

func (v *Weighted) Len() int { return len(v.data) }

func (v *Weighted) Clone() Vector {
	return &Weighted{data: make([]float64, len(v.data)), weights: v.weights, dual: v.dual}
}

func (v *Weighted) Set(o Vector) {
	copy(v.data, raw(o))
}

func (v *Weighted) Zero() {
	for i := range v.data {
		v.data[i] = 0
	}
}

func (v *Weighted) Scale(alpha float64) {
	floats.Scale(alpha, v.data)
}

func (v *Weighted) Axpy(alpha float64, o Vector) {
	floats.AddScaled(v.data, alpha, raw(o))
}

func (v *Weighted) Dot(o Vector) (dot float64) {
	od := raw(o)
	if v.dual {
		for i, x := range v.data {
			dot += x * od[i] / v.weights[i]
		}
	} else {
		for i, x := range v.data {
			dot += v.weights[i] * x * od[i]
		}
	}
	return
}

func (v *Weighted) Norm() float64 {
	return math.Sqrt(v.Dot(v))
}

func (v *Weighted) Dual() Vector {
	d := &Weighted{data: make([]float64, len(v.data)), weights: v.weights, dual: !v.dual}
	if v.dual {
		for i, x := range v.data {
			d.data[i] = x / v.weights[i]
		}
	} else {
		for i, x := range v.data {
			d.data[i] = v.weights[i] * x
		}
	}
	return d
}
