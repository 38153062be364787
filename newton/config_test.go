// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"os"
	"path/filepath"
	"testing"
)

// Unknown enum strings fail construction before any vector
// allocation.
func TestUnknownTypesRejected(t *testing.T) {

	p := DefaultParameters()
	p.General.Krylov.Type = "Generalized Minimal Residuals"
	if _, err := NewStep(p); err == nil {
		t.Fatal("TestUnknownTypesRejected: Unknown Krylov Type Accepted")
	}

	p = DefaultParameters()
	p.General.Secant.Type = "Full BFGS"
	if _, err := NewStep(p); err == nil {
		t.Fatal("TestUnknownTypesRejected: Unknown Secant Type Accepted")
	}

	if _, err := ParseKrylovType("GMRES"); err == nil {
		t.Fatal("TestUnknownTypesRejected: ParseKrylovType Too Lenient")
	}
	if _, err := ParseSecantType("SR1"); err == nil {
		t.Fatal("TestUnknownTypesRejected: ParseSecantType Too Lenient")
	}
}

func TestDefaultsResolved(t *testing.T) {

	s, err := NewStep(DefaultParameters())
	if err != nil {
		t.Fatal("TestDefaultsResolved: Construction Failed", err)
	}

	switch {
	case s.ekv != KrylovCG:
		t.Fatal("TestDefaultsResolved: Bad Krylov Default", s.ekv)
	case s.esec != SecantLBFGS:
		t.Fatal("TestDefaultsResolved: Bad Secant Default", s.esec)
	case s.verbosity != 0:
		t.Fatal("TestDefaultsResolved: Bad Verbosity Default")
	case s.useSecantPrecond:
		t.Fatal("TestDefaultsResolved: Preconditioning Enabled By Default")
	case s.secant != nil:
		t.Fatal("TestDefaultsResolved: Secant Allocated Without Preconditioning")
	}
}

// Constructing two steps from the same configuration yields identical
// resolved tags and verbosity.
func TestConfigIdempotence(t *testing.T) {

	p := DefaultParameters()
	p.General.PrintVerbosity = 2
	p.General.Krylov.Type = "Conjugate Residuals"
	p.General.Secant.Type = "Barzilai-Borwein"
	p.General.Secant.UseAsPreconditioner = true

	s1, e1 := NewStep(p)
	s2, e2 := NewStep(p)

	switch {
	case e1 != nil || e2 != nil:
		t.Fatal("TestConfigIdempotence: Construction Failed", e1, e2)
	case s1.ekv != s2.ekv || s1.ekv != KrylovCR:
		t.Fatal("TestConfigIdempotence: Krylov Tag Drift")
	case s1.esec != s2.esec || s1.esec != SecantBB:
		t.Fatal("TestConfigIdempotence: Secant Tag Drift")
	case s1.verbosity != s2.verbosity || s1.verbosity != 2:
		t.Fatal("TestConfigIdempotence: Verbosity Drift")
	}
}

func TestLoadParameters(t *testing.T) {

	src := `
general:
  print_verbosity: 1
  secant:
    type: Barzilai-Borwein
    use_as_preconditioner: true
    storage: 7
  krylov:
    type: Conjugate Residuals
    absolute_tolerance: 1e-8
    relative_tolerance: 1e-4
    iteration_limit: 25
  unknown_key: ignored
`
	path := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadParameters(path)
	if err != nil {
		t.Fatal("TestLoadParameters: Load Failed", err)
	}

	switch {
	case p.General.PrintVerbosity != 1:
		t.Fatal("TestLoadParameters: Bad Verbosity")
	case p.General.Secant.Type != "Barzilai-Borwein" || !p.General.Secant.UseAsPreconditioner:
		t.Fatal("TestLoadParameters: Bad Secant Params")
	case p.General.Secant.Storage != 7:
		t.Fatal("TestLoadParameters: Bad Storage")
	case p.General.Krylov.Type != "Conjugate Residuals":
		t.Fatal("TestLoadParameters: Bad Krylov Type")
	case p.General.Krylov.AbsoluteTolerance != 1e-8 || p.General.Krylov.RelativeTolerance != 1e-4:
		t.Fatal("TestLoadParameters: Bad Tolerances")
	case p.General.Krylov.IterationLimit != 25:
		t.Fatal("TestLoadParameters: Bad Iteration Limit")
	}
}

func TestLoadParametersMissingFile(t *testing.T) {
	if _, err := LoadParameters(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("TestLoadParametersMissingFile: Missing File Accepted")
	}
}
