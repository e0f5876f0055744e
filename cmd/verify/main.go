// Command verify exposes the engine's verify(control_points, laws, budget?)
// surface (spec §6) to geometric clients that have no field layer at all:
// feed it a JSON control-point quadruple and a JSON array of half-space
// law specs, get back a verdict.
//
// Flag handling follows cmd/inspect's flag.String/flag.Int usage pattern
// from the teacher repo.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/lawspec"
)

// #region main

func main() {
	cpPath := flag.String("control-points", "", "path to a JSON {p0,p1,p2,p3} control-point file")
	lawsPath := flag.String("laws", "", "path to a JSON array of half-space law specs")
	maxDepth := flag.Int("max-depth", 0, "override budget max depth (0 = default profile)")
	highPrecision := flag.Bool("high-precision", false, "use the high-precision budget profile (depth 40, tolerance 1e-15)")
	jsonOut := flag.Bool("json", false, "output the verdict as JSON")
	flag.Parse()

	if *cpPath == "" || *lawsPath == "" {
		fmt.Fprintln(os.Stderr, "usage: verify --control-points cp.json --laws laws.json [--max-depth N | --high-precision] [--json]")
		os.Exit(2)
	}

	cp, err := loadControlPoints(*cpPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load control points: %v\n", err)
		os.Exit(1)
	}

	lawsData, err := os.ReadFile(*lawsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read laws: %v\n", err)
		os.Exit(1)
	}
	laws, err := lawspec.ParseAll(lawsData)
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse laws: %v\n", err)
		os.Exit(1)
	}

	budget := engine.DefaultBudget()
	if *highPrecision {
		budget = engine.HighPrecisionBudget()
	}
	if *maxDepth > 0 {
		budget.MaxDepth = *maxDepth
	}

	verdict := engine.Verify(cp, laws, budget)

	if *jsonOut {
		data, _ := json.MarshalIndent(verdict, "", "  ")
		fmt.Println(string(data))
		return
	}

	if verdict.IsCommit() {
		fmt.Println("COMMIT")
		return
	}
	fmt.Println("REJECT")
	fmt.Printf("  law:    %s (index %d)\n", verdict.Witness.LawName, verdict.Witness.LawIndex)
	fmt.Printf("  time:   %.6f\n", verdict.Witness.Time)
	fmt.Printf("  state:  %v\n", verdict.Witness.State)
	if verdict.Witness.Repair != nil {
		fmt.Printf("  repair: %v\n", verdict.Witness.Repair)
	}
	fmt.Printf("  reason: %s\n", verdict.Witness.Reason)
	os.Exit(1)
}

// #endregion main

// #region load

type controlPointsFile struct {
	P0 []float64 `json:"p0"`
	P1 []float64 `json:"p1"`
	P2 []float64 `json:"p2"`
	P3 []float64 `json:"p3"`
}

func loadControlPoints(path string) (bezier.ControlPoints, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bezier.ControlPoints{}, fmt.Errorf("read %s: %w", path, err)
	}
	var f controlPointsFile
	if err := json.Unmarshal(data, &f); err != nil {
		return bezier.ControlPoints{}, fmt.Errorf("parse %s: %w", path, err)
	}
	cp := bezier.ControlPoints{P0: f.P0, P1: f.P1, P2: f.P2, P3: f.P3}
	if cp.Dim() < 0 {
		return bezier.ControlPoints{}, fmt.Errorf("%s: control points must share a common dimension", path)
	}
	return cp, nil
}

// #endregion load
