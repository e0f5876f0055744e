package replay

import (
	"testing"

	"github.com/ashgrove/newtonforge/internal/lawspec"
)

func halfSpaceLaws() []lawspec.Spec {
	return []lawspec.Spec{
		{Name: "x>0", Dim: 0, Bound: 0, Sign: 1},
		{Name: "y>0", Dim: 1, Bound: 0, Sign: 1},
	}
}

func TestRunMatchesRecordedOutcomes(t *testing.T) {
	f := Fixture{
		Description: "S1 commit and S2 reject",
		Cases: []Case{
			{
				Label:          "S1",
				ControlPoints:  ControlPointsJSON{P0: []float64{1, 1}, P1: []float64{1.667, 1.667}, P2: []float64{2.333, 2.333}, P3: []float64{3, 3}},
				Laws:           halfSpaceLaws(),
				ExpectedAction: "commit",
			},
			{
				Label:          "S2",
				ControlPoints:  ControlPointsJSON{P0: []float64{1, 1}, P1: []float64{0.333, 0.333}, P2: []float64{-0.333, -0.333}, P3: []float64{-1, -1}},
				Laws:           halfSpaceLaws(),
				ExpectedAction: "reject",
			},
		},
	}

	results := Run(f)
	if len(results) != 2 {
		t.Fatalf("Run() = %d results, want 2", len(results))
	}
	for _, r := range results {
		if !r.Match {
			t.Errorf("case %q: expected %q, got %q", r.Label, r.ExpectedAction, r.ActualAction)
		}
	}
}

func TestRunReportsMismatch(t *testing.T) {
	f := Fixture{
		Cases: []Case{
			{
				Label:          "wrong-expectation",
				ControlPoints:  ControlPointsJSON{P0: []float64{1, 1}, P1: []float64{1.667, 1.667}, P2: []float64{2.333, 2.333}, P3: []float64{3, 3}},
				Laws:           halfSpaceLaws(),
				ExpectedAction: "reject",
			},
		},
	}
	results := Run(f)
	if results[0].Match {
		t.Error("expected a mismatch between the recorded reject and the engine's actual commit")
	}
	if results[0].ActualAction != "commit" {
		t.Errorf("ActualAction = %q, want commit", results[0].ActualAction)
	}
}

func TestLoadFixtureRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/fixture.json"
	original := Fixture{
		Description: "round trip",
		Cases: []Case{
			{
				Label:          "S1",
				ControlPoints:  ControlPointsJSON{P0: []float64{1, 1}, P1: []float64{1.667, 1.667}, P2: []float64{2.333, 2.333}, P3: []float64{3, 3}},
				Laws:           halfSpaceLaws(),
				ExpectedAction: "commit",
			},
		},
	}
	if err := WriteFixture(path, original); err != nil {
		t.Fatalf("WriteFixture: %v", err)
	}
	loaded, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if loaded.Description != original.Description || len(loaded.Cases) != 1 {
		t.Fatalf("LoadFixture() = %+v, want round-tripped original", loaded)
	}
}
