// Package blueprint orchestrates one proposal end to end (spec §4.6): open
// a transaction on every registered field, run a named forge body, snapshot
// the current/proposed state vectors into a linear control-point curve,
// lower the rule set to laws, invoke the engine (escalating once to a
// deeper budget via internal/budget.Policy on a depth-exceeded rejection),
// commit or roll back, and append the outcome to the ledger.
//
// Grounded on internal/replay.Replay's staged pipeline shape (update ->
// gate -> eval -> commit/reject, short-circuiting at the first rejecting
// stage and reporting a per-stage result) and cmd/controller/main.go's
// top-level wiring of a store, a gate, and an eval harness into one request
// loop — here the three stages become transaction-open -> rule-check ->
// engine-verify, and the store/gate/eval trio becomes field/rule/engine.
package blueprint

import (
	"fmt"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/budget"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/field"
	"github.com/ashgrove/newtonforge/internal/law"
	"github.com/ashgrove/newtonforge/internal/ledger"
	"github.com/ashgrove/newtonforge/internal/rule"
	"github.com/ashgrove/newtonforge/internal/vector"

	"github.com/google/uuid"
)

// #region blueprint

// Blueprint is one long-lived logical object: an ordered field list, a
// rule builder, named forge definitions, and references to the shared
// engine budget and ledger (spec §3: "Blueprint instance").
type Blueprint struct {
	TypeName string
	ID       string // opaque instance identifier, stable for the life of the process

	fields     []*field.Cell
	registered bool

	rules  []rule.Rule
	forges map[string]ForgeBody

	ledger *ledger.Ledger
	budget engine.Budget
}

// New constructs a blueprint bound to a shared ledger. budget defaults to
// engine.DefaultBudget() when the zero value is passed.
func New(typeName string, l *ledger.Ledger, budget engine.Budget) *Blueprint {
	if budget == (engine.Budget{}) {
		budget = engine.DefaultBudget()
	}
	return &Blueprint{
		TypeName: typeName,
		ID:       uuid.NewString(),
		forges:   make(map[string]ForgeBody),
		ledger:   l,
		budget:   budget,
	}
}

// #endregion blueprint

// #region registration

// RegisterField appends a field cell in declaration order. Registration is
// idempotent per spec §3 — calling Register (below) multiple times re-uses
// the same stable index assignment rather than reordering fields.
func (b *Blueprint) RegisterField(c *field.Cell) {
	b.fields = append(b.fields, c)
}

// Register assigns each field a stable index 0..d-1 in declaration order
// (spec §4.6 step 1). Safe to call more than once; later calls are no-ops.
func (b *Blueprint) Register() {
	if b.registered {
		return
	}
	for i, f := range b.fields {
		f.Index = i
	}
	b.registered = true
}

// AddRule appends a rule to the blueprint's builder.
func (b *Blueprint) AddRule(r rule.Rule) {
	b.rules = append(b.rules, r)
}

// DefineForge registers a named forge body.
func (b *Blueprint) DefineForge(name string, body ForgeBody) {
	b.forges[name] = body
}

// #endregion registration

// #region state-snapshot

// currentState reads every field's committed encoding, in index order,
// producing P0 (spec §3).
func (b *Blueprint) currentState() vector.State {
	b.Register()
	x := make(vector.State, len(b.fields))
	for _, f := range b.fields {
		x[f.Index] = f.CurrentStateValue()
	}
	return x
}

// proposedState reads every field's proposed-or-committed encoding, in
// index order, producing P3 (spec §3).
func (b *Blueprint) proposedState() vector.State {
	b.Register()
	x := make(vector.State, len(b.fields))
	for _, f := range b.fields {
		x[f.Index] = f.ProposedStateValue()
	}
	return x
}

// #endregion state-snapshot

// #region forge

// Forge runs the named forge body through its full lifecycle (spec §4.6
// steps 1-10): begin transactions, run the body, short-circuit on an
// explicit rejection, otherwise build the proposal curve, check rules
// against the proposed end state, verify with the engine, commit or roll
// back, and append to the ledger.
func (b *Blueprint) Forge(name string) engine.Verdict {
	b.Register()

	body, ok := b.forges[name]
	if !ok {
		w := engine.Witness{LawIndex: -1, Reason: fmt.Sprintf("no forge named %q", name)}
		verdict := engine.RejectVerdict(w)
		degenerate := bezier.Linear(b.currentState(), b.currentState())
		b.ledger.Append(degenerate, nil, verdict, name, b.TypeName)
		return verdict
	}

	for _, f := range b.fields {
		f.BeginForge()
	}

	actions := body()

	for _, a := range actions {
		if a.Kind == ActionReject || a.Kind == ActionConditionalReject {
			for _, f := range b.fields {
				f.Rollback()
			}
			reason := a.Reason
			if a.Kind == ActionConditionalReject {
				reason = fmt.Sprintf("%s: %s", a.PredicateName, a.Reason)
			}
			w := engine.Witness{LawIndex: -1, Reason: reason}
			verdict := engine.RejectVerdict(w)
			degenerate := bezier.Linear(b.currentState(), b.currentState())
			b.ledger.Append(degenerate, nil, verdict, name, b.TypeName)
			return verdict
		}
	}

	p0 := b.currentState()
	p3 := b.proposedState()
	cp := bezier.Linear(p0, p3)

	laws := rule.LowerAll(b.rules)
	for i, r := range b.rules {
		ok, _ := r.Evaluate(p3)
		if ok {
			continue
		}
		for _, f := range b.fields {
			f.Rollback()
		}
		w := engine.Witness{
			LawIndex: i,
			LawName:  r.Name,
			Time:     1.0,
			State:    p3,
			Reason:   rule.FailureReason(r, p3),
		}
		verdict := engine.RejectVerdict(w)
		b.ledger.Append(cp, lawNames(b.rules), verdict, name, b.TypeName)
		return verdict
	}

	verdict := verifyWithEscalation(cp, laws, b.budget)
	if verdict.IsCommit() {
		for _, f := range b.fields {
			f.Commit()
		}
	} else {
		for _, f := range b.fields {
			f.Rollback()
		}
	}
	b.ledger.Append(cp, lawNames(b.rules), verdict, name, b.TypeName)
	return verdict
}

// verifyWithEscalation runs engine.Verify at budget, and, if the result is a
// depth-exceeded rejection, consults a fresh internal/budget.Policy for this
// one proposal to decide whether to retry once at engine.HighPrecisionBudget
// before accepting the rejection (spec §9 open question (b)).
func verifyWithEscalation(cp bezier.ControlPoints, laws []law.Law, b engine.Budget) engine.Verdict {
	verdict := engine.Verify(cp, laws, b)
	policy := budget.NewPolicy()
	for {
		escalate, next := policy.ShouldEscalate(verdict, b)
		if !escalate {
			return verdict
		}
		b = next
		verdict = engine.Verify(cp, laws, b)
	}
}

func lawNames(rules []rule.Rule) []string {
	names := make([]string, len(rules))
	for i, r := range rules {
		names[i] = r.Name
	}
	return names
}

// #endregion forge

// #region free-form

// MoveAlong verifies a caller-supplied curve directly, bypassing the field
// transaction and rule-evaluation steps (spec §4.6: "Free-form geometry
// ... bypasses steps 3-7"). On commit it writes the two geometric fields'
// committed values to the curve's endpoint; ruleless proposals are checked
// only against laws, not the blueprint's rule set.
func (b *Blueprint) MoveAlong(cp bezier.ControlPoints, laws []law.Law, geometricFields []*field.Cell) engine.Verdict {
	verdict := verifyWithEscalation(cp, laws, b.budget)
	if verdict.IsCommit() {
		for i, f := range geometricFields {
			if i >= cp.Dim() {
				break
			}
			f.BeginForge()
			f.Write(field.DoubleValue(cp.P3[i]))
			f.Commit()
		}
	}
	names := make([]string, len(laws))
	for i, l := range laws {
		names[i] = l.Name
	}
	b.ledger.Append(cp, names, verdict, "", b.TypeName)
	return verdict
}

// #endregion free-form

// #region introspection

// IsLawful reports whether the blueprint's current committed state
// satisfies every lowered rule (spec §6).
func (b *Blueprint) IsLawful() bool {
	return engine.IsLawful(b.currentState(), rule.LowerAll(b.rules))
}

// Violations reports every rule the blueprint's current committed state
// currently violates (spec §6).
func (b *Blueprint) Violations() []engine.Witness {
	return engine.Violations(b.currentState(), rule.LowerAll(b.rules))
}

// #endregion introspection
