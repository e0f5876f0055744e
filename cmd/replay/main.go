package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ashgrove/newtonforge/internal/replay"
)

// #region main

func main() {
	fixturePath := flag.String("fixture", "", "path to a replay fixture JSON")
	flag.Parse()

	if *fixturePath == "" {
		fmt.Fprintln(os.Stderr, "usage: replay --fixture path/to/fixture.json")
		os.Exit(2)
	}

	fixture, err := replay.LoadFixture(*fixturePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load fixture: %v\n", err)
		os.Exit(2)
	}

	results := replay.Run(fixture)
	os.Exit(printComparison(fixture.Description, results))
}

// #endregion main

// #region output

func printComparison(description string, results []replay.Result) int {
	if description != "" {
		fmt.Println(description)
	}
	fmt.Printf("%-24s| %-15s| %-15s| %s\n", "Case", "Expected", "Replayed", "Match")
	fmt.Printf("%-24s+%-15s+%-15s+%s\n",
		"------------------------", "----------------", "----------------", "------")

	matches := 0
	for _, r := range results {
		match := "DIFF"
		if r.Match {
			match = "OK"
			matches++
		}
		fmt.Printf("%-24s| %-15s| %-15s| %s\n", r.Label, r.ExpectedAction, r.ActualAction, match)
	}

	diverge := len(results) - matches
	fmt.Printf("\nSummary: %d total, %d match, %d diverge\n", len(results), matches, diverge)

	if diverge > 0 {
		return 1
	}
	return 0
}

// #endregion output
