// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"github.com/curioloop/optimize/krylov"
	"github.com/curioloop/optimize/secant"
	"github.com/curioloop/optimize/vec"
)

// Step computes Newton-Krylov optimization steps.
//
// A step is constructed once per optimization run. The driver calls
// Initialize once, then alternates Compute and Update once per outer
// iteration. The step exclusively owns its Krylov solver, its optional
// secant and a small set of scratch vectors; the objective and bound
// constraint are borrowed per call.
type Step struct {
	krylov krylov.Solver
	secant secant.Secant

	ekv  KrylovType
	esec SecantType

	useSecantPrecond bool
	verbosity        int
	tolerance        float64

	state *StepState
	gp    vec.Vector // previous gradient, allocated only for secant preconditioning

	iterKrylov int
	flagKrylov krylov.Flag
}

// NewStep builds a step from a parameter list. Unknown Krylov or secant
// type strings fail here, before any vector allocation.
func NewStep(params Parameters) (*Step, error) {

	ekv, err := ParseKrylovType(params.General.Krylov.Type)
	if err != nil {
		return nil, err
	}
	esec, err := ParseSecantType(params.General.Secant.Type)
	if err != nil {
		return nil, err
	}

	s := &Step{
		ekv:              ekv,
		esec:             esec,
		useSecantPrecond: params.General.Secant.UseAsPreconditioner,
		verbosity:        params.General.PrintVerbosity,
		tolerance:        params.tolerance(),
	}

	cfg := krylov.Config{
		AbsTol:    params.General.Krylov.AbsoluteTolerance,
		RelTol:    params.General.Krylov.RelativeTolerance,
		MaxIter:   params.General.Krylov.IterationLimit,
		Tolerance: s.tolerance,
	}
	switch ekv {
	case KrylovCR:
		s.krylov = krylov.NewCR(cfg)
	default:
		s.krylov = krylov.NewCG(cfg)
	}

	if s.useSecantPrecond {
		switch esec {
		case SecantBB:
			s.secant = secant.NewBarzilaiBorwein()
		default:
			s.secant = secant.NewLBFGS(secant.Config{Storage: params.General.Secant.Storage})
		}
	}
	return s, nil
}

// NewStepWith builds a step around user-defined Krylov and secant
// collaborators. A nil solver or (with preconditioning enabled) nil
// secant falls back to the parameter-list construction.
func NewStepWith(params Parameters, solver krylov.Solver, sec secant.Secant) (*Step, error) {

	if solver == nil && sec == nil {
		return NewStep(params)
	}

	s := &Step{
		ekv:              KrylovUserDefined,
		esec:             SecantUserDefined,
		krylov:           solver,
		secant:           sec,
		useSecantPrecond: params.General.Secant.UseAsPreconditioner,
		verbosity:        params.General.PrintVerbosity,
		tolerance:        params.tolerance(),
	}

	if s.krylov == nil {
		ekv, err := ParseKrylovType(params.General.Krylov.Type)
		if err != nil {
			return nil, err
		}
		s.ekv = ekv
		cfg := krylov.Config{
			AbsTol:    params.General.Krylov.AbsoluteTolerance,
			RelTol:    params.General.Krylov.RelativeTolerance,
			MaxIter:   params.General.Krylov.IterationLimit,
			Tolerance: s.tolerance,
		}
		switch ekv {
		case KrylovCR:
			s.krylov = krylov.NewCR(cfg)
		default:
			s.krylov = krylov.NewCG(cfg)
		}
	}

	if s.useSecantPrecond && s.secant == nil {
		esec, err := ParseSecantType(params.General.Secant.Type)
		if err != nil {
			return nil, err
		}
		s.esec = esec
		switch esec {
		case SecantBB:
			s.secant = secant.NewBarzilaiBorwein()
		default:
			s.secant = secant.NewLBFGS(secant.Config{Storage: params.General.Secant.Storage})
		}
	}
	return s, nil
}

// State exposes the per-step record. It is owned by the step; callers
// must treat it as read-only.
func (s *Step) State() *StepState { return s.state }

// KrylovIter reports the iteration count of the most recent solve.
func (s *Step) KrylovIter() int { return s.iterKrylov }

// KrylovFlag reports the termination flag of the most recent solve.
func (s *Step) KrylovFlag() krylov.Flag { return s.flagKrylov }

// Initialize captures the initial value/gradient bookkeeping and, when
// secant preconditioning is enabled, allocates the scratch vector for the
// previous gradient. x is the initial iterate, stepDir and g are sized
// prototypes of the step and gradient vectors; state must be fresh.
func (s *Step) Initialize(x, stepDir, g vec.Vector, obj Objective, bnd Bound, state *State) {

	s.state = &StepState{
		Gradient:   g.Clone(),
		Descent:    stepDir.Clone(),
		SearchSize: 1,
	}

	tol := s.tolerance
	obj.Update(x, true, state.Iter)
	state.Value = obj.Value(x, &tol)
	state.NFval++
	obj.Gradient(s.state.Gradient, x, &tol)
	state.NGrad++

	state.Iterate = x.Clone()
	state.Iterate.Set(x)
	state.GNorm = s.state.Gradient.Norm()

	if s.useSecantPrecond {
		s.gp = g.Clone()
	}
}

// Compute finds the next search direction by approximately solving the
// Newton system at the current iterate and writes it into stepDir.
//
// The raw gradient is passed as the right-hand side and the solution is
// negated afterwards, so the returned direction solves H·s = -g. When the
// solve stops on non-positive curvature within at most one iteration the
// direction degenerates and is replaced by the negated dual gradient
// (steepest descent).
func (s *Step) Compute(stepDir, x vec.Vector, obj Objective, bnd Bound, state *State) {

	hess := &hessian{obj: obj, x: state.Iterate}

	var pre krylov.Preconditioner
	if s.useSecantPrecond {
		pre = s.secant
	} else {
		pre = &precond{obj: obj, x: state.Iterate}
	}

	s.iterKrylov, s.flagKrylov = s.krylov.Run(stepDir, hess, s.state.Gradient, pre)

	if s.flagKrylov == krylov.FlagNegCurve && s.iterKrylov <= 1 {
		stepDir.Set(s.state.Gradient.Dual())
	}
	stepDir.Scale(-1)
}

// Update advances the optimization state by the computed direction with a
// unit step length. The effects run in a fixed order and exactly once per
// call; a failing objective evaluation mid-update leaves the state
// inconsistent and must be treated as fatal by the caller.
func (s *Step) Update(x, stepDir vec.Vector, obj Objective, bnd Bound, state *State) {

	tol := s.tolerance
	step := s.state

	state.Iter++
	x.Axpy(1, stepDir)
	step.Descent.Set(stepDir)
	state.SNorm = stepDir.Norm()

	if s.useSecantPrecond {
		s.gp.Set(step.Gradient)
	}

	obj.Update(x, true, state.Iter)
	state.Value = obj.Value(x, &tol)
	obj.Gradient(step.Gradient, x, &tol)
	state.NGrad++

	if s.useSecantPrecond {
		s.secant.UpdateStorage(x, step.Gradient, s.gp, stepDir, state.SNorm, state.Iter+1)
	}

	state.Iterate.Set(x)
	state.GNorm = step.Gradient.Norm()
}
