// Package budget implements an escalation policy that decides whether a
// rejected verification should be retried at a deeper, more precise budget
// profile (spec §4.3's two named profiles; §9 open question (b) notes the
// "depth exceeded" synthetic witness carries law index -1 and leaves
// unspecified what, if anything, a caller should do about it).
//
// Adapted from internal/orchestrator.RetryEngine.ShouldRetry, which decides
// whether to retry an LLM turn with a different strategy based on the
// attempt history; here the "strategy" is a verification Budget and the
// failure signal is a depth-exceeded witness rather than an evaluator
// verdict.
package budget

import "github.com/ashgrove/newtonforge/internal/engine"

// #region policy

// maxEscalations bounds how many times ShouldEscalate will suggest a deeper
// budget before giving up, mirroring orchestrator.maxRetries.
const maxEscalations = 1

// Policy decides whether a Reject verdict caused by exhausting the
// subdivision budget (LawIndex == -1, Reason == "depth exceeded") is worth
// retrying at HighPrecisionBudget.
type Policy struct {
	escalated int
}

// NewPolicy returns a fresh escalation policy for one proposal.
func NewPolicy() *Policy {
	return &Policy{}
}

// ShouldEscalate reports whether v warrants a retry, and if so, the budget
// to retry with. It returns false once maxEscalations has been used, or if
// v was not a depth-exceeded rejection (any other verdict is a genuine
// domain result, not a resource exhaustion — escalating would not help).
func (p *Policy) ShouldEscalate(v engine.Verdict, current engine.Budget) (bool, engine.Budget) {
	if v.IsCommit() {
		return false, current
	}
	if v.Witness.LawIndex != -1 || v.Witness.Reason != "depth exceeded" {
		return false, current
	}
	if p.escalated >= maxEscalations {
		return false, current
	}
	p.escalated++
	return true, engine.HighPrecisionBudget()
}

// #endregion policy
