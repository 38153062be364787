// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package newton

import (
	"fmt"
	"io"
	"strings"
)

// Diagnostics are purely observational: the per-iteration record never
// affects control flow. The columnar layout is fixed at
// 6/15/15/15/10/10/10/10 left-aligned fields.

// PrintName writes the method banner: the Krylov solver in use and, when
// enabled, the secant preconditioner.
func (s *Step) PrintName(w io.Writer) {
	fmt.Fprintf(w, "\nNewton-Krylov Method using %v", s.ekv)
	if s.useSecantPrecond {
		fmt.Fprintf(w, " with %v preconditioning", s.esec)
	}
	fmt.Fprintln(w)
}

// PrintHeader writes the column header. Verbosity above zero additionally
// emits the explanatory legend once.
func (s *Step) PrintHeader(w io.Writer) {
	if s.verbosity > 0 {
		fmt.Fprintln(w, strings.Repeat("-", 109))
		fmt.Fprintln(w, "Newton-Krylov status output definitions")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "  iter     - Number of iterates (steps taken)")
		fmt.Fprintln(w, "  value    - Objective function value")
		fmt.Fprintln(w, "  gnorm    - Norm of the gradient")
		fmt.Fprintln(w, "  snorm    - Norm of the step (update to optimization vector)")
		fmt.Fprintln(w, "  #fval    - Cumulative number of times the objective function was evaluated")
		fmt.Fprintln(w, "  #grad    - Number of times the gradient was computed")
		fmt.Fprintln(w, "  iterCG   - Number of Krylov iterations used to compute search direction")
		fmt.Fprintln(w, "  flagCG   - Krylov solver flag")
		fmt.Fprintln(w, strings.Repeat("-", 109))
	}
	fmt.Fprintf(w, "  %-6s%-15s%-15s%-15s%-10s%-10s%-10s%-10s\n",
		"iter", "value", "gnorm", "snorm", "#fval", "#grad", "iterCG", "flagCG")
}

// Print writes the progress record for the current state. The banner is
// emitted before the first iteration; withHeader requests the column
// header as well.
func (s *Step) Print(w io.Writer, state *State, withHeader bool) {
	if state.Iter == 0 {
		s.PrintName(w)
	}
	if withHeader {
		s.PrintHeader(w)
	}
	if state.Iter == 0 {
		fmt.Fprintf(w, "  %-6d%-15.6e%-15.6e\n", state.Iter, state.Value, state.GNorm)
	} else {
		fmt.Fprintf(w, "  %-6d%-15.6e%-15.6e%-15.6e%-10d%-10d%-10d%-10d\n",
			state.Iter, state.Value, state.GNorm, state.SNorm,
			state.NFval, state.NGrad, s.iterKrylov, int(s.flagKrylov))
	}
}
