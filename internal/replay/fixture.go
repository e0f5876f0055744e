// Package replay re-runs a recorded sequence of geometric verification
// cases against the live engine and reports whether today's verdict still
// matches what was recorded, so a change to the law set or the engine's
// subdivision tuning can be checked for regressions before it ships.
//
// Grounded on internal/replay.Fixture's JSON fixture shape (a top-level
// Description, a list of per-turn cases, and a list of expected results)
// generalized from the teacher's prompt/response/signals turn shape to
// this domain's control-points/laws/budget case shape; the
// printComparison table format in the sibling cmd/replay is carried over
// unchanged in spirit from cmd/replay/main.go's table.
package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/law"
	"github.com/ashgrove/newtonforge/internal/lawspec"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a replay fixture.
type Fixture struct {
	Description string `json:"description"`
	Cases       []Case `json:"cases"`
}

// Case is one recorded verification to re-run.
type Case struct {
	Label         string             `json:"label"`
	ControlPoints ControlPointsJSON  `json:"control_points"`
	Laws          []lawspec.Spec     `json:"laws"`
	MaxDepth      int                `json:"max_depth,omitempty"`
	HighPrecision bool               `json:"high_precision,omitempty"`
	ExpectedAction string            `json:"expected_action"` // "commit" | "reject"
}

// ControlPointsJSON is the JSON-friendly shape of bezier.ControlPoints.
type ControlPointsJSON struct {
	P0 []float64 `json:"p0"`
	P1 []float64 `json:"p1"`
	P2 []float64 `json:"p2"`
	P3 []float64 `json:"p3"`
}

func (c ControlPointsJSON) toControlPoints() bezier.ControlPoints {
	return bezier.ControlPoints{P0: c.P0, P1: c.P1, P2: c.P2, P3: c.P3}
}

// #endregion fixture-types

// #region load

// LoadFixture reads and parses a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture: %w", err)
	}
	return f, nil
}

// WriteFixture serializes a fixture to path as indented JSON, for tools
// (cmd/fixture-export) that build one from a live ledger.
func WriteFixture(path string, f Fixture) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal fixture: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// #endregion load

// #region run

// Result captures one case's re-run outcome.
type Result struct {
	Label          string
	ExpectedAction string
	ActualAction   string
	Match          bool
}

// Run re-verifies every case in the fixture against the live engine.
func Run(f Fixture) []Result {
	results := make([]Result, len(f.Cases))
	for i, c := range f.Cases {
		actualLaws := lawsFromSpecs(c.Laws)
		budget := engine.DefaultBudget()
		if c.HighPrecision {
			budget = engine.HighPrecisionBudget()
		}
		if c.MaxDepth > 0 {
			budget.MaxDepth = c.MaxDepth
		}

		verdict := engine.Verify(c.ControlPoints.toControlPoints(), actualLaws, budget)
		actual := "reject"
		if verdict.IsCommit() {
			actual = "commit"
		}

		results[i] = Result{
			Label:          c.Label,
			ExpectedAction: c.ExpectedAction,
			ActualAction:   actual,
			Match:          actual == c.ExpectedAction,
		}
	}
	return results
}

func lawsFromSpecs(specs []lawspec.Spec) []law.Law {
	laws := make([]law.Law, len(specs))
	for i, s := range specs {
		laws[i] = s.Law()
	}
	return laws
}

// #endregion run
