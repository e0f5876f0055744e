package blueprint

import (
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/vector"
)

// #region actions

// ActionKind tags the actions a forge body may emit (spec §4.6 step 4).
type ActionKind int

const (
	ActionCommit ActionKind = iota
	ActionReject
	ActionConditionalReject
)

// Action is one entry in the ordered list a forge body produces while it
// runs. Only Reject/ConditionalReject are ever acted on directly — an
// all-Commit list simply falls through to geometric verification (spec
// §4.6 step 5).
type Action struct {
	Kind          ActionKind
	PredicateName string // set only for ActionConditionalReject
	Reason        string
}

// Commit is the explicit no-op action a forge body may emit.
func Commit() Action { return Action{Kind: ActionCommit} }

// Reject short-circuits the forge with reason, bypassing geometric
// verification entirely (spec §4.6 step 5).
func Reject(reason string) Action { return Action{Kind: ActionReject, Reason: reason} }

// ConditionalReject short-circuits the forge, naming the predicate that
// failed.
func ConditionalReject(predicateName, reason string) Action {
	return Action{Kind: ActionConditionalReject, PredicateName: predicateName, Reason: reason}
}

// #endregion actions

// #region forge

// ForgeBody is a user-supplied closure run under an open field transaction.
// It emits field writes through the blueprint's registered cells and
// returns the ordered action list the runtime inspects for an explicit
// rejection.
type ForgeBody func() []Action

// #endregion forge

// #region result

// Outcome augments the engine's Verdict with the context that produced it:
// which forge ran (or "" for free-form geometry) and the proposal's endpoint
// states P0 and P3, so callers and the ledger can both report S1-style results and
// S5/S6-style invoice narratives without re-deriving them.
type Outcome struct {
	ForgeName string
	Verdict   engine.Verdict
	P0, P3    vector.State
}

// #endregion result
