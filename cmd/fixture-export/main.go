// Command fixture-export snapshots recent ledger entries into a replay
// fixture, so a later engine or law-set change can be checked against
// what actually happened in a production run.
//
// A ledger entry only carries law names, not predicates (spec §3: "Ledger
// entry ... law-name list"), so the exporter cannot reconstruct the laws
// that produced each verdict on its own. Callers supply the law spec file
// that was in effect for the exported range via --laws; this mirrors
// cmd/fixture-export/main.go's original dependence on GateConfig
// thresholds captured at decision time, here made explicit instead of
// implicit in the row.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ashgrove/newtonforge/internal/ledger"
	"github.com/ashgrove/newtonforge/internal/lawspec"
	"github.com/ashgrove/newtonforge/internal/replay"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a ledger SQLite mirror")
	lawsPath := flag.String("laws", "", "path to the JSON law specs in effect for this export")
	last := flag.Int("last", 10, "number of most recent entries to export")
	outPath := flag.String("out", "", "output fixture JSON path")
	flag.Parse()

	if *dbPath == "" || *lawsPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "usage: fixture-export --db path/to/ledger.db --laws laws.json --out fixture.json [--last N]")
		os.Exit(2)
	}

	if err := run(*dbPath, *lawsPath, *last, *outPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region export

func run(dbPath, lawsPath string, last int, outPath string) error {
	store, err := ledger.NewSQLStore(dbPath, nil)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer store.Close()

	lawsData, err := os.ReadFile(lawsPath)
	if err != nil {
		return fmt.Errorf("read laws: %w", err)
	}
	var specs []lawspec.Spec
	if err := json.Unmarshal(lawsData, &specs); err != nil {
		return fmt.Errorf("parse laws: %w", err)
	}

	rows, err := store.List()
	if err != nil {
		return fmt.Errorf("list entries: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no entries found in %s", dbPath)
	}
	if last > 0 && len(rows) > last {
		rows = rows[len(rows)-last:]
	}

	cases := make([]replay.Case, len(rows))
	for i, r := range rows {
		action := "reject"
		if r.Committed {
			action = "commit"
		}
		cases[i] = replay.Case{
			Label: fmt.Sprintf("seq-%d-%s", r.SequenceIndex, r.ForgeName),
			ControlPoints: replay.ControlPointsJSON{
				P0: r.ControlPoints.P0,
				P1: r.ControlPoints.P1,
				P2: r.ControlPoints.P2,
				P3: r.ControlPoints.P3,
			},
			Laws:           specs,
			ExpectedAction: action,
		}
	}

	fixture := replay.Fixture{
		Description: fmt.Sprintf("export of %d entries from %s", len(cases), dbPath),
		Cases:       cases,
	}

	if err := replay.WriteFixture(outPath, fixture); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d cases)\n", outPath, len(cases))
	return nil
}

// #endregion export
