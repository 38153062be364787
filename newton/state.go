// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"github.com/curioloop/optimize/vec"
)

// State is the shared algorithm-state record, owned by the outer driver
// and referenced by the step. It is mutated only inside Initialize and
// Update, exactly once per accepted step, in a fixed order
// (iterate → value → gradient → counts → norms), so any snapshot read
// after Update is mutually consistent.
type State struct {
	// Iter counts accepted outer iterations.
	Iter int
	// Value is the objective value at the current iterate.
	Value float64
	// GNorm is the gradient norm at the current iterate.
	GNorm float64
	// SNorm is the norm of the most recent step.
	SNorm float64
	// NFval is the cumulative number of objective evaluations.
	NFval int
	// NGrad is the cumulative number of gradient evaluations.
	NGrad int
	// Iterate is the current accepted iterate.
	Iterate vec.Vector
}

// StepState is the per-step persistent record: the current gradient and
// the most recently computed descent vector. It is owned by the step
// instance, mutated in place by Compute/Update and never shared outside
// the step's lifetime.
type StepState struct {
	Gradient   vec.Vector
	Descent    vec.Vector
	SearchSize float64
}

// Bound represents a bound constraint on the iterate. It is accepted by
// the step methods for signature uniformity with constrained variants;
// the unconstrained Newton-Krylov path never consults it and callers may
// pass nil.
type Bound interface {
	// Project clips x into the feasible set in place.
	Project(x vec.Vector)
	// IsActivated reports whether any bound is finite.
	IsActivated() bool
}
