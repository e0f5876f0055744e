package rule

import (
	"testing"

	"github.com/ashgrove/newtonforge/internal/vector"
)

func approvedFlag(x vector.State) bool { return x[1] >= 0.5 }
func amountUnder(threshold float64) func(vector.State) bool {
	return func(x vector.State) bool { return x[0] <= threshold }
}

func TestRuleEvaluateAllPass(t *testing.T) {
	r := New("small or approved",
		Condition{Label: "amount under threshold", Check: amountUnder(10000)},
	)
	ok, _ := r.Evaluate(vector.State{500, 0})
	if !ok {
		t.Error("expected rule to pass for a small amount")
	}
}

func TestRuleEvaluateFirstFailureLabel(t *testing.T) {
	r := New("prerequisite before target",
		Condition{Label: "approved before pay", Check: approvedFlag},
	)
	ok, label := r.Evaluate(vector.State{20000, 0})
	if ok {
		t.Fatal("expected rule to fail: not approved")
	}
	if label != "approved before pay" {
		t.Errorf("failed label = %q, want %q", label, "approved before pay")
	}
}

func TestLowerPreservesPassFail(t *testing.T) {
	r := New("amount gate", Condition{Label: "under cap", Check: amountUnder(100)})
	l := Lower(r)
	if !l.Holds(vector.State{50}) {
		t.Error("lowered law should hold for amount under cap")
	}
	if l.Holds(vector.State{500}) {
		t.Error("lowered law should not hold for amount over cap")
	}
}

func TestLowerAllPreservesOrder(t *testing.T) {
	rules := []Rule{
		New("first", Condition{Label: "a", Check: func(x vector.State) bool { return true }}),
		New("second", Condition{Label: "b", Check: func(x vector.State) bool { return true }}),
	}
	laws := LowerAll(rules)
	if laws[0].Name != "first" || laws[1].Name != "second" {
		t.Errorf("LowerAll did not preserve order: %v", laws)
	}
}

func TestFailureReason(t *testing.T) {
	r := New("needs approval", Condition{Label: "approved", Check: approvedFlag})
	reason := FailureReason(r, vector.State{0, 0})
	if reason == "" {
		t.Fatal("expected a non-empty failure reason")
	}
}
