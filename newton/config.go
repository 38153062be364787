// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// KrylovType selects the iterative linear solver of the Newton system.
type KrylovType int

const (
	// KrylovCG preconditioned conjugate gradients (the default).
	KrylovCG KrylovType = iota
	// KrylovCR preconditioned conjugate residuals.
	KrylovCR
	// KrylovUserDefined a caller-supplied solver.
	KrylovUserDefined
)

func (t KrylovType) String() string {
	switch t {
	case KrylovCG:
		return "Conjugate Gradients"
	case KrylovCR:
		return "Conjugate Residuals"
	case KrylovUserDefined:
		return "User Defined"
	default:
		return "Unknown"
	}
}

// ParseKrylovType resolves a configuration string to a KrylovType.
// The empty string means the default. Unknown strings are rejected
// instead of silently falling back.
func ParseKrylovType(s string) (KrylovType, error) {
	switch s {
	case "", "Conjugate Gradients":
		return KrylovCG, nil
	case "Conjugate Residuals":
		return KrylovCR, nil
	default:
		return 0, fmt.Errorf("newton: unknown krylov type %q", s)
	}
}

// SecantType selects the quasi-Newton curvature approximation.
type SecantType int

const (
	// SecantLBFGS limited-memory BFGS (the default).
	SecantLBFGS SecantType = iota
	// SecantBB the Barzilai-Borwein scalar secant.
	SecantBB
	// SecantUserDefined a caller-supplied secant.
	SecantUserDefined
)

func (t SecantType) String() string {
	switch t {
	case SecantLBFGS:
		return "Limited-Memory BFGS"
	case SecantBB:
		return "Barzilai-Borwein"
	case SecantUserDefined:
		return "User Defined"
	default:
		return "Unknown"
	}
}

// ParseSecantType resolves a configuration string to a SecantType.
// The empty string means the default. Unknown strings are rejected.
func ParseSecantType(s string) (SecantType, error) {
	switch s {
	case "", "Limited-Memory BFGS":
		return SecantLBFGS, nil
	case "Barzilai-Borwein":
		return SecantBB, nil
	default:
		return 0, fmt.Errorf("newton: unknown secant type %q", s)
	}
}

// KrylovParams configures the Krylov solve of the Newton system.
type KrylovParams struct {
	Type              string  `yaml:"type"`
	AbsoluteTolerance float64 `yaml:"absolute_tolerance"`
	RelativeTolerance float64 `yaml:"relative_tolerance"`
	IterationLimit    int     `yaml:"iteration_limit"`
}

// SecantParams configures the secant approximation.
type SecantParams struct {
	Type                string `yaml:"type"`
	UseAsPreconditioner bool   `yaml:"use_as_preconditioner"`
	Storage             int    `yaml:"storage"`
}

// GeneralParams groups the step-lifetime settings.
type GeneralParams struct {
	// PrintVerbosity controls whether the explanatory legend is emitted.
	PrintVerbosity int `yaml:"print_verbosity"`
	// Tolerance is the accuracy floor forwarded to inexact objective
	// evaluations. Zero means √machEps.
	Tolerance float64      `yaml:"tolerance"`
	Secant    SecantParams `yaml:"secant"`
	Krylov    KrylovParams `yaml:"krylov"`
}

// Parameters is the nested parameter list read once at step construction.
// It is immutable for the lifetime of the step.
type Parameters struct {
	General GeneralParams `yaml:"general"`
}

var sqrtEps = math.Sqrt(math.Nextafter(1, 2) - 1)

// DefaultParameters returns the documented defaults: conjugate-gradient
// Krylov solver, limited-memory BFGS secant, verbosity 0 and secant
// preconditioning disabled.
func DefaultParameters() Parameters {
	return Parameters{}
}

// LoadParameters reads a YAML parameter file. Keys not recognized by the
// schema are ignored; missing keys keep their defaults.
func LoadParameters(path string) (Parameters, error) {
	p := DefaultParameters()
	raw, err := os.ReadFile(path)
	if err != nil {
		return p, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return p, errors.Join(errors.New("newton: invalid parameter file"), err)
	}
	return p, nil
}

func (p Parameters) tolerance() float64 {
	if t := p.General.Tolerance; t > 0 {
		return t
	}
	return sqrtEps
}
