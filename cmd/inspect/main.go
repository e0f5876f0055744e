package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/ashgrove/newtonforge/internal/annotation"
	"github.com/ashgrove/newtonforge/internal/ledger"
)

// #region main

func main() {
	dbPath := flag.String("db", "", "path to a ledger SQLite mirror")
	last := flag.Int("last", 20, "show N most recent entries")
	forge := flag.String("forge", "", "filter to one forge name")
	seq := flag.Int("seq", -1, "show single entry detail by sequence index")
	verifyIntegrity := flag.Bool("verify", false, "recompute every row's hash and report mismatches")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	annotateSeq := flag.Int("annotate", -1, "attach a note to the entry at this sequence index")
	note := flag.String("note", "", "note text for --annotate")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db path/to/ledger.db [--last N] [--forge name] [--seq N] [--verify] [--annotate N --note text] [--json]")
		os.Exit(2)
	}

	store, err := ledger.NewSQLStore(*dbPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	notes, err := annotation.NewStore(store.DB())
	if err != nil {
		fmt.Fprintf(os.Stderr, "open annotation store: %v\n", err)
		os.Exit(1)
	}

	if *annotateSeq >= 0 {
		if *note == "" {
			fmt.Fprintln(os.Stderr, "--annotate requires --note text")
			os.Exit(2)
		}
		if err := notes.Save(*annotateSeq, *note); err != nil {
			fmt.Fprintf(os.Stderr, "save note: %v\n", err)
			os.Exit(1)
		}
		return
	}

	rows, err := store.List()
	if err != nil {
		fmt.Fprintf(os.Stderr, "list entries: %v\n", err)
		os.Exit(1)
	}

	if *verifyIntegrity {
		os.Exit(runVerify(rows))
	}
	if *seq >= 0 {
		if err := runDetail(rows, *seq, *jsonOut, notes); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}
	if err := runList(rows, *last, *forge, *jsonOut); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region list-mode

func runList(rows []ledger.RawRow, last int, forgeFilter string, jsonOut bool) error {
	if forgeFilter != "" {
		filtered := rows[:0]
		for _, r := range rows {
			if r.ForgeName == forgeFilter {
				filtered = append(filtered, r)
			}
		}
		rows = filtered
	}
	if len(rows) == 0 {
		fmt.Fprintln(os.Stderr, "no entries found")
		return nil
	}
	if last > 0 && len(rows) > last {
		rows = rows[len(rows)-last:]
	}

	if jsonOut {
		return printJSON(rows)
	}

	fmt.Printf("%-6s  %-8s  %-10s  %-16s  %s\n", "Seq", "Verdict", "Law Ver", "Forge", "Time")
	fmt.Printf("%-6s  %-8s  %-10s  %-16s  %s\n", "------", "--------", "----------", "----------------", "--------------------")
	for _, r := range rows {
		verdict := "reject"
		if r.Committed {
			verdict = "commit"
		}
		fmt.Printf("%-6d  %-8s  %-10d  %-16s  %s\n", r.SequenceIndex, verdict, r.LawVersion, r.ForgeName, r.CreatedAt.Format("2006-01-02T15:04:05Z"))
	}
	return nil
}

// #endregion list-mode

// #region detail-mode

func runDetail(rows []ledger.RawRow, seq int, jsonOut bool, notes *annotation.Store) error {
	for _, r := range rows {
		if r.SequenceIndex != seq {
			continue
		}
		if jsonOut {
			return printJSON(r)
		}
		fmt.Printf("Sequence:   %d\n", r.SequenceIndex)
		fmt.Printf("Entry ID:   %s\n", r.EntryID)
		fmt.Printf("Hash:       %s\n", r.Hash)
		fmt.Printf("Law ver:    %d\n", r.LawVersion)
		fmt.Printf("Laws:       %v\n", r.LawNames)
		fmt.Printf("Forge:      %s\n", r.ForgeName)
		fmt.Printf("Blueprint:  %s\n", r.BlueprintType)
		fmt.Printf("Created:    %s\n", r.CreatedAt.Format("2006-01-02T15:04:05Z"))
		if r.Committed {
			fmt.Println("Verdict:    commit")
		} else {
			fmt.Println("Verdict:    reject")
			fmt.Printf("Reason:     %s\n", r.WitnessReason)
		}
		return printNotes(notes, seq)
	}
	return fmt.Errorf("no entry with sequence index %d", seq)
}

// printNotes prints every annotation attached to seq, flagging any that
// contain follow-up trigger language.
func printNotes(notes *annotation.Store, seq int) error {
	all, err := notes.All(seq)
	if err != nil {
		return fmt.Errorf("load notes: %w", err)
	}
	if len(all) == 0 {
		return nil
	}
	fmt.Println("Notes:")
	for _, n := range all {
		fmt.Printf("  [%s] %s\n", n.CreatedAt.Format("2006-01-02T15:04:05Z"), n.Text)
		if followUp := annotation.ExtractFollowUp(n.Text); len(followUp) > 0 {
			fmt.Printf("    follow-up: %v\n", followUp)
		}
	}
	return nil
}

// #endregion detail-mode

// #region verify-mode

func runVerify(rows []ledger.RawRow) int {
	mismatches := 0
	for _, r := range rows {
		recomputed := ledger.RecomputeHash(r.ControlPoints, r.LawVersion, r.LawNames, r.Committed, r.SequenceIndex)
		if recomputed != r.Hash {
			fmt.Printf("MISMATCH at seq %d: stored %s, recomputed %s\n", r.SequenceIndex, r.Hash, recomputed)
			mismatches++
		}
	}
	if mismatches == 0 {
		fmt.Printf("verified %d entries, all hashes consistent\n", len(rows))
		return 0
	}
	fmt.Printf("%d of %d entries failed hash verification\n", mismatches, len(rows))
	return 1
}

// #endregion verify-mode

// #region output

func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// #endregion output
