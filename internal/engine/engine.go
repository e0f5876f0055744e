// Package engine implements the Newton verification engine (spec §4.3): a
// depth-bounded recursive subdivision of a cubic Bézier curve that certifies
// the entire trajectory lies within the lawful region Ω = ⋂ᵢΩᵢ, or produces
// a witness locating the first violation.
//
// Structurally this follows the two-phase shape of internal/gate.Evaluate
// (a hard-veto pass that can short-circuit, followed by a soft pass) — here
// reworked into a hard quick-reject pass, a quick-accept pass, and recursion
// — and the staged pipeline control flow of internal/replay.Replay.
package engine

import (
	"fmt"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/law"
	"github.com/ashgrove/newtonforge/internal/vector"
)

// #region work-item

// workItem is one entry of the engine's explicit depth-bounded stack.
// [a,b] is the global parameter interval this segment covers on the
// original curve.
type workItem struct {
	segment bezier.ControlPoints
	a, b    float64
	depth   int
}

// #endregion work-item

// #region verify

// Verify certifies cp against laws under budget. Verdict is Commit if the
// entire curve lies inside ⋂ᵢΩᵢ; otherwise Reject(witness) locates the
// earliest certifiable violation (spec §4.3).
func Verify(cp bezier.ControlPoints, laws []law.Law, budget Budget) Verdict {
	stack := []workItem{{segment: cp, a: 0, b: 1, depth: 0}}

	for len(stack) > 0 {
		n := len(stack) - 1
		item := stack[n]
		stack = stack[:n]

		// 1. Depth exceeded.
		if item.depth > budget.MaxDepth {
			tMid := (item.a + item.b) / 2
			state := item.segment.Evaluate(0.5)
			for i, l := range laws {
				if !l.Holds(state) {
					return RejectVerdict(Witness{
						LawIndex: i,
						LawName:  l.Name,
						Time:     tMid,
						State:    state,
						Reason:   fmt.Sprintf("law %q violated after exhausting subdivision budget", l.Name),
					})
				}
			}
			return RejectVerdict(Witness{
				LawIndex: -1,
				LawName:  "",
				Time:     0,
				State:    state,
				Reason:   "depth exceeded",
			})
		}

		// 2. Hull quick-reject (conservative control-point check).
		points := [4]vector.State{item.segment.P0, item.segment.P1, item.segment.P2, item.segment.P3}
		for k, pt := range points {
			for i, l := range laws {
				if l.Holds(pt) {
					continue
				}
				tLocal := float64(k) / 3.0
				tGlobal := item.a + tLocal*(item.b-item.a)
				curvePoint := cp.Evaluate(tGlobal)
				if l.Holds(curvePoint) {
					// Control point violation was non-conclusive: the curve
					// itself does not cross Ω at this parameter. Fall through.
					continue
				}
				w := Witness{
					LawIndex: i,
					LawName:  l.Name,
					Time:     tGlobal,
					State:    curvePoint,
					Reason:   fmt.Sprintf("law %q violated", l.Name),
				}
				if l.Measure != nil {
					w.Repair = estimateRepair(cp, l.Measure, tGlobal, DefaultRepairConfig())
				}
				return RejectVerdict(w)
			}
		}

		// 3. Hull quick-accept.
		allSatisfy := true
		for _, pt := range points {
			for _, l := range laws {
				if !l.Holds(pt) {
					allSatisfy = false
					break
				}
			}
			if !allSatisfy {
				break
			}
		}
		if allSatisfy {
			continue
		}

		// 4. Subdivide at s=0.5; push right then left so left (earlier
		// global t) is processed next.
		mid := (item.a + item.b) / 2
		left, right := bezier.DeCasteljauSplit(item.segment, 0.5)
		stack = append(stack, workItem{segment: right, a: mid, b: item.b, depth: item.depth + 1})
		stack = append(stack, workItem{segment: left, a: item.a, b: mid, depth: item.depth + 1})
	}

	return CommitVerdict()
}

// #endregion verify

// #region repair

// estimateRepair implements spec §4.4: find the control point with the
// largest Bernstein weight at t*, and estimate, by one-sided finite
// differences along each of its dimensions, the gradient of
// max(0, -measure(γ(t*))) with respect to that control point. The
// resulting advisory nudge is Δ = -η·gradient.
func estimateRepair(cp bezier.ControlPoints, measure law.Measure, t float64, cfg RepairConfig) vector.State {
	weights := [4]float64{
		bezier.Bernstein(0, 3, t),
		bezier.Bernstein(1, 3, t),
		bezier.Bernstein(2, 3, t),
		bezier.Bernstein(3, 3, t),
	}
	kStar := 0
	for k := 1; k < 4; k++ {
		if weights[k] > weights[kStar] {
			kStar = k
		}
	}

	pts := [4]vector.State{cp.P0, cp.P1, cp.P2, cp.P3}
	dim := cp.Dim()

	baseState := cp.Evaluate(t)
	baseVal := violationPenalty(measure(baseState))

	grad := make(vector.State, dim)
	for d := 0; d < dim; d++ {
		perturbed := pts
		nudged := pts[kStar].Clone()
		nudged[d] += cfg.Epsilon
		perturbed[kStar] = nudged

		perturbedCP := bezier.ControlPoints{P0: perturbed[0], P1: perturbed[1], P2: perturbed[2], P3: perturbed[3]}
		val := violationPenalty(measure(perturbedCP.Evaluate(t)))
		grad[d] = (val - baseVal) / cfg.Epsilon
	}

	return grad.Scale(-cfg.Eta)
}

func violationPenalty(measure float64) float64 {
	if measure > 0 {
		return 0
	}
	return -measure
}

// #endregion repair

// #region introspection

// IsLawful reports whether x satisfies every law (spec §6).
func IsLawful(x vector.State, laws []law.Law) bool {
	for _, l := range laws {
		if !l.Holds(x) {
			return false
		}
	}
	return true
}

// Violations returns a Witness for every law that x currently violates,
// for introspection against the committed state (spec §6). Time is 0
// (there is no curve parameter outside a verification run).
func Violations(x vector.State, laws []law.Law) []Witness {
	var out []Witness
	for i, l := range laws {
		if l.Holds(x) {
			continue
		}
		out = append(out, Witness{
			LawIndex: i,
			LawName:  l.Name,
			Time:     0,
			State:    x,
			Reason:   fmt.Sprintf("law %q violated at current state", l.Name),
		})
	}
	return out
}

// #endregion introspection
