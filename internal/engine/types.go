package engine

import "github.com/ashgrove/newtonforge/internal/vector"

// #region budget

// Budget bounds the engine's recursive subdivision (spec §4.3).
type Budget struct {
	MaxDepth  int
	Tolerance float64
}

// DefaultBudget is the standard profile: depth 20, tolerance 1e-10.
func DefaultBudget() Budget {
	return Budget{MaxDepth: 20, Tolerance: 1e-10}
}

// HighPrecisionBudget is the deeper profile for proposals that need finer
// witness localization: depth 40, tolerance 1e-15.
func HighPrecisionBudget() Budget {
	return Budget{MaxDepth: 40, Tolerance: 1e-15}
}

// #endregion budget

// #region witness

// Witness locates the first violation the engine can certify along a
// rejected curve (spec §3). LawIndex is -1 for the two synthetic cases
// spec §9(b) calls out: depth exceeded and (at the blueprint layer) an
// unknown forge name — consumers must not try to map -1 to a real law.
type Witness struct {
	LawIndex  int
	LawName   string
	Time      float64 // t* in [0,1]
	State     vector.State
	Repair    vector.State // nil if no repair direction was computed
	Reason    string
}

// #endregion witness

// #region verdict

// Action tags the two Verdict variants (spec §3: "exactly one variant per
// verification").
type Action string

const (
	Commit Action = "commit"
	Reject Action = "reject"
)

// Verdict is the engine's (or an explicit rejection's) tagged-union output.
type Verdict struct {
	Action  Action
	Witness *Witness // non-nil iff Action == Reject
}

// CommitVerdict builds a Commit verdict.
func CommitVerdict() Verdict {
	return Verdict{Action: Commit}
}

// RejectVerdict builds a Reject verdict carrying w.
func RejectVerdict(w Witness) Verdict {
	return Verdict{Action: Reject, Witness: &w}
}

// IsCommit reports whether the verdict is Commit.
func (v Verdict) IsCommit() bool { return v.Action == Commit }

// #endregion verdict

// #region repair-config

// RepairConfig tunes the advisory repair-direction estimate (spec §4.4).
type RepairConfig struct {
	Epsilon float64 // finite-difference step, default 1e-6
	Eta     float64 // gradient-descent step size, default 0.1
}

// DefaultRepairConfig returns the spec's stated defaults.
func DefaultRepairConfig() RepairConfig {
	return RepairConfig{Epsilon: 1e-6, Eta: 0.1}
}

// #endregion repair-config
