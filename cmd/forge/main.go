// Command forge is an interactive REPL around a demonstration invoice
// blueprint (spec §8 scenarios S5/S6): type a forge name to run it, "set
// amount <value>" to adjust the invoice total outside a transaction, and
// "status" to print the committed state. Every forge invocation appends to
// a ledger mirrored in SQLite.
//
// Grounded on cmd/controller/main.go's bufio.Scanner REPL loop and envOr
// helper, generalized from a single free-form prompt to a small fixed
// command set.
package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/ashgrove/newtonforge/internal/blueprint"
	"github.com/ashgrove/newtonforge/internal/coupling"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/field"
	"github.com/ashgrove/newtonforge/internal/ledger"
	"github.com/ashgrove/newtonforge/internal/numeric"
	"github.com/ashgrove/newtonforge/internal/rule"
	"github.com/ashgrove/newtonforge/internal/schema"
	"github.com/ashgrove/newtonforge/internal/vector"

	"database/sql"

	_ "modernc.org/sqlite"
)

const payThreshold = 10000.0

// #region main

func main() {
	schemaDBPath := envOr("NEWTON_SCHEMA_DB", "newton_schema.db")
	ledgerDBPath := envOr("NEWTON_LEDGER_DB", "newton_ledger.db")

	schemaDB, err := sql.Open("sqlite", schemaDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open schema db: %v\n", err)
		os.Exit(1)
	}
	defer schemaDB.Close()

	schemaStore, err := schema.NewStore(schemaDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init schema store: %v\n", err)
		os.Exit(1)
	}

	couplingStore, err := coupling.NewStore(schemaDB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init coupling store: %v\n", err)
		os.Exit(1)
	}

	sqlLedger, err := ledger.NewSQLStore(ledgerDBPath, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open ledger db: %v\n", err)
		os.Exit(1)
	}
	defer sqlLedger.Close()

	l := ledger.New()

	amountVal, _ := numeric.FromString("100.00")
	amount := field.New("amount", field.DecimalValue(amountVal))
	status := field.NewLabelled("status", field.NewStatePath("draft", "submitted", "approved", "paid"), "draft")
	approved := field.New("approved", field.BoolValue(false))

	bp := blueprint.New("Invoice", l, engine.DefaultBudget())
	bp.RegisterField(amount)
	bp.RegisterField(status)
	bp.RegisterField(approved)
	bp.Register()

	paid := float64(status.Path.IndexOf("paid"))
	bp.AddRule(rule.New("paid requires approval over threshold",
		rule.Condition{
			Label: "not paid, or amount under threshold or approved",
			Check: func(x vector.State) bool {
				return x[1] != paid || x[0] <= payThreshold || x[2] >= 0.5
			},
		},
	))

	bp.DefineForge("submit", func() []blueprint.Action {
		status.MoveTo("submitted")
		return []blueprint.Action{blueprint.Commit()}
	})
	bp.DefineForge("approve", func() []blueprint.Action {
		status.MoveTo("approved")
		approved.Write(field.BoolValue(true))
		return []blueprint.Action{blueprint.Commit()}
	})
	bp.DefineForge("pay", func() []blueprint.Action {
		status.MoveTo("paid")
		return []blueprint.Action{blueprint.Commit()}
	})

	if err := schemaStore.Declare("amount", "decimal", nil, amount.Index); err != nil {
		fmt.Fprintf(os.Stderr, "declare amount: %v\n", err)
	}
	if err := schemaStore.Declare("status", "label", []string{"draft", "submitted", "approved", "paid"}, status.Index); err != nil {
		fmt.Fprintf(os.Stderr, "declare status: %v\n", err)
	}
	if err := schemaStore.Declare("approved", "bool", nil, approved.Index); err != nil {
		fmt.Fprintf(os.Stderr, "declare approved: %v\n", err)
	}

	fmt.Println("Newton forge REPL ready.")
	fmt.Printf("  schema db: %s | ledger db: %s\n", schemaDBPath, ledgerDBPath)
	fmt.Println("Commands: submit | approve | pay | set amount <value> | status | quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}

		switch {
		case line == "status":
			printStatus(amount, status, approved)
		case strings.HasPrefix(line, "set amount "):
			raw := strings.TrimSpace(strings.TrimPrefix(line, "set amount "))
			v, err := numeric.FromString(raw)
			if err != nil {
				fmt.Printf("invalid amount %q: %v\n", raw, err)
				continue
			}
			amount.Write(field.DecimalValue(v))
			fmt.Printf("amount set to %s\n", raw)
		case line == "submit" || line == "approve" || line == "pay":
			verdict := bp.Forge(line)
			if entry, ok := l.Last(); ok {
				if err := sqlLedger.Record(entry); err != nil {
					fmt.Printf("ledger mirror error: %v\n", err)
				}
			}
			reportVerdict(line, verdict)
			if !verdict.IsCommit() && verdict.Witness != nil && verdict.Witness.Repair != nil {
				_ = couplingStore.LearnFromRepair(verdict.Witness.Repair, 1e-9, 0.5)
			}
		default:
			fmt.Printf("unrecognized command %q\n", line)
		}
	}

	fmt.Println("goodbye.")
}

// #endregion main

// #region helpers

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printStatus(amount, status, approved *field.Cell) {
	fmt.Printf("amount=%s status=%s approved=%v\n", amount.Read().Decimal.String(), status.Read().Label, approved.Read().Bool)
}

func reportVerdict(forgeName string, v engine.Verdict) {
	if v.IsCommit() {
		fmt.Printf("[%s] COMMIT\n", forgeName)
		return
	}
	fmt.Printf("[%s] REJECT: %s\n", forgeName, v.Witness.Reason)
}

// #endregion helpers
