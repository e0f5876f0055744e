// Package rule implements the rule layer (spec §4.2): a named conjunction
// of labelled boolean conditions over field values, bridging the
// declarative surface to the engine's law.Law form.
//
// Per spec §9 ("Closures over mutable state"): conditions are modelled as
// plain functions over an explicit state-vector snapshot rather than
// closures holding aliases into mutable field cells — generalizing the
// ordered, named veto-check shape of internal/gate.Gate.Evaluate (a fixed
// checklist of VetoSignal-producing conditions) into an open, user-declared
// list.
package rule

import (
	"fmt"

	"github.com/ashgrove/newtonforge/internal/law"
	"github.com/ashgrove/newtonforge/internal/vector"
)

// #region condition

// Condition is one labelled boolean check over a state-vector snapshot.
type Condition struct {
	Label string
	Check func(x vector.State) bool
}

// #endregion condition

// #region rule

// Rule is a named conjunction of Conditions, evaluated at proposal time
// against a hypothetical (usually the proposed end) state.
type Rule struct {
	Name       string
	Conditions []Condition
}

// New builds a Rule from a name and an ordered list of conditions.
func New(name string, conditions ...Condition) Rule {
	return Rule{Name: name, Conditions: conditions}
}

// Evaluate reports whether x satisfies every condition, and if not, the
// label of the first condition that failed.
func (r Rule) Evaluate(x vector.State) (ok bool, failedLabel string) {
	for _, c := range r.Conditions {
		if !c.Check(x) {
			return false, c.Label
		}
	}
	return true, ""
}

// #endregion rule

// #region lowering

// Lower converts a Rule into the engine's law.Law form (spec §4.2): the
// resulting predicate is the rule's conjunction, evaluated against whatever
// state vector the engine or blueprint passes it.
func Lower(r Rule) law.Law {
	return law.New(r.Name, func(x vector.State) bool {
		ok, _ := r.Evaluate(x)
		return ok
	})
}

// LowerAll lowers a list of rules to laws, preserving order (spec §4.3:
// "Ties between multiple laws failing at the same subsegment are broken
// by law order").
func LowerAll(rules []Rule) []law.Law {
	laws := make([]law.Law, len(rules))
	for i, r := range rules {
		laws[i] = Lower(r)
	}
	return laws
}

// FailureReason renders a human-readable reason for a failed rule,
// naming the first condition that failed.
func FailureReason(r Rule, x vector.State) string {
	ok, label := r.Evaluate(x)
	if ok {
		return ""
	}
	return fmt.Sprintf("rule %q failed: condition %q did not hold", r.Name, label)
}

// #endregion lowering
