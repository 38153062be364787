// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package vec provides the vector abstraction shared by the optimization
// algorithms: an opaque type supporting clone, copy-assign, scaled add,
// scaling, inner products and a dual-space view.
//
// Iterates live in the primal space and gradients in the dual space.
// The two are related by a problem-specific pairing: Dual converts a
// vector into its representation in the opposite space. For the plain
// Euclidean Dense vector the pairing is the identity.
package vec

// Vector is the minimal capability required from an optimization vector.
type Vector interface {
	// Len reports the number of entries.
	Len() int
	// Clone allocates a zeroed vector of the same shape and space.
	Clone() Vector
	// Set copies the entries of v into the receiver.
	Set(v Vector)
	// Zero sets all entries to zero.
	Zero()
	// Scale multiplies the receiver by alpha in place.
	Scale(alpha float64)
	// Axpy adds alpha times v to the receiver in place.
	Axpy(alpha float64, v Vector)
	// Dot returns the inner product with v under the receiver's metric.
	Dot(v Vector) float64
	// Norm returns the metric-consistent 2-norm.
	Norm() float64
	// Dual returns a fresh copy of the receiver mapped into the dual space.
	// The result is exclusively owned by the caller.
	Dual() Vector
}
