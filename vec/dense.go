// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package vec

import (
	"gonum.org/v1/gonum/floats"
)

// Dense is a plain Euclidean vector backed by a float64 slice.
// The primal and dual spaces coincide, so Dual returns a plain copy.
type Dense struct {
	data []float64
}

// NewDense returns a zeroed Dense vector of dimension n.
func NewDense(n int) *Dense {
	return &Dense{data: make([]float64, n)}
}

// DenseOf returns a Dense vector owning a copy of the given entries.
func DenseOf(data ...float64) *Dense {
	d := NewDense(len(data))
	copy(d.data, data)
	return d
}

// Raw exposes the backing slice. Mutating it mutates the vector.
func (d *Dense) Raw() []float64 { return d.data }

func (d *Dense) Len() int { return len(d.data) }

func (d *Dense) Clone() Vector { return NewDense(len(d.data)) }

func (d *Dense) Set(v Vector) {
	copy(d.data, raw(v))
}

func (d *Dense) Zero() {
	for i := range d.data {
		d.data[i] = 0
	}
}

func (d *Dense) Scale(alpha float64) {
	floats.Scale(alpha, d.data)
}

func (d *Dense) Axpy(alpha float64, v Vector) {
	floats.AddScaled(d.data, alpha, raw(v))
}

func (d *Dense) Dot(v Vector) float64 {
	return floats.Dot(d.data, raw(v))
}

func (d *Dense) Norm() float64 {
	return floats.Norm(d.data, 2)
}

func (d *Dense) Dual() Vector {
	return DenseOf(d.data...)
}

// raw extracts the backing slice of any vector in this package.
func raw(v Vector) []float64 {
	switch t := v.(type) {
	case *Dense:
		return t.data
	case *Weighted:
		return t.data
	default:
		panic("vec: unsupported vector type")
	}
}
