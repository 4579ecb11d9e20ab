// SPDX-License-Identifier: MIT

package bacon

// Phase identifies a state of the BACON state machine.
//
//	Initialize → Grow → Converge → Done
//
// A run that fails stops in the phase that raised the error.
type Phase int

const (
	// PhaseInitialize fits the starting subset, enlarging it until full rank.
	PhaseInitialize Phase = iota

	// PhaseGrow grows a minimal subset of p+1 observations one at a time,
	// maintaining the Cholesky factor by rank-one updates and downdates.
	PhaseGrow

	// PhaseConverge refits from scratch and readmits every observation below
	// the Student-t cutoff until the subset stops changing.
	PhaseConverge

	// PhaseDone marks a converged run.
	PhaseDone
)

// String implements fmt.Stringer.
func (p Phase) String() string {
	switch p {
	case PhaseInitialize:
		return "initialize"
	case PhaseGrow:
		return "grow"
	case PhaseConverge:
		return "converge"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}
