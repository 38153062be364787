// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"fmt"
	"io"
	"math"

	"github.com/curioloop/optimize/vec"
)

// ExitStatus reports why the outer iteration stopped.
type ExitStatus int

const (
	// ConvGradNorm the gradient norm dropped below the tolerance.
	ConvGradNorm ExitStatus = iota
	// ConvStepNorm the step norm dropped below the tolerance.
	ConvStepNorm
	// OverIterLimit the iteration limit was reached.
	OverIterLimit
)

func (s ExitStatus) String() string {
	switch s {
	case ConvGradNorm:
		return "CONVERGENCE: NORM_OF_GRADIENT_<=_GTOL"
	case ConvStepNorm:
		return "CONVERGENCE: NORM_OF_STEP_<=_STOL"
	case OverIterLimit:
		return "STOP: TOTAL NO. of ITERATIONS REACHED LIMIT"
	default:
		return "UNKNOWN STATUS"
	}
}

// StatusTest is the convergence test evaluated between Update calls.
// Zero tolerances fall back to documented defaults.
type StatusTest struct {
	GradTolerance float64 // default 1e-6
	StepTolerance float64 // default 1e-12
	MaxIterations int     // default 100
}

func (t StatusTest) withDefaults() StatusTest {
	if t.GradTolerance <= 0 {
		t.GradTolerance = 1e-6
	}
	if t.StepTolerance <= 0 {
		t.StepTolerance = 1e-12
	}
	if t.MaxIterations <= 0 {
		t.MaxIterations = 100
	}
	return t
}

func (t StatusTest) done(state *State) (ExitStatus, bool) {
	switch {
	case state.GNorm <= t.GradTolerance:
		return ConvGradNorm, true
	case state.Iter > 0 && state.SNorm <= t.StepTolerance:
		return ConvStepNorm, true
	case state.Iter >= t.MaxIterations:
		return OverIterLimit, true
	}
	return 0, false
}

// Result is the final outcome of an optimization run.
type Result struct {
	OK     bool       // Whether a convergence test fired.
	X      vec.Vector // Final iterate.
	Value  float64    // Final objective value.
	GNorm  float64    // Final gradient norm.
	SNorm  float64    // Final step norm.
	Status ExitStatus // Exit condition.
	// Cumulative counters.
	Iter, NFval, NGrad int
}

// Algorithm drives a Step until its StatusTest fires: Compute and Update
// alternate once per outer iteration, single-threaded and synchronous.
// There is no cancellation at this layer; the iteration limit is the only
// bound on total work.
type Algorithm struct {
	Step   *Step
	Status StatusTest
	// Output receives the per-iteration progress records when non-nil.
	Output io.Writer
}

// Run minimizes obj starting from x, which is advanced in place.
// A non-finite objective value or gradient norm is fatal: collaborator
// evaluation failures are never retried or recovered.
func (a *Algorithm) Run(x vec.Vector, obj Objective) (*Result, error) {

	status := a.Status.withDefaults()
	state := new(State)

	g := x.Dual()
	g.Zero()
	stepDir := x.Clone()

	a.Step.Initialize(x, stepDir, g, obj, nil, state)
	a.print(state, true)

	est, done := status.done(state)
	for !done {
		a.Step.Compute(stepDir, x, obj, nil, state)
		a.Step.Update(x, stepDir, obj, nil, state)

		if math.IsNaN(state.Value) || math.IsInf(state.Value, 0) || math.IsNaN(state.GNorm) {
			return nil, fmt.Errorf("newton: objective evaluation failed at iteration %d", state.Iter)
		}

		a.print(state, false)
		est, done = status.done(state)
	}

	return &Result{
		OK:     est != OverIterLimit,
		X:      state.Iterate,
		Value:  state.Value,
		GNorm:  state.GNorm,
		SNorm:  state.SNorm,
		Status: est,
		Iter:   state.Iter,
		NFval:  state.NFval,
		NGrad:  state.NGrad,
	}, nil
}

func (a *Algorithm) print(state *State, header bool) {
	if a.Output != nil {
		a.Step.Print(a.Output, state, header)
	}
}
