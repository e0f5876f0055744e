package ledger

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ashgrove/newtonforge/internal/bezier"
	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/sealing"
	_ "modernc.org/sqlite"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS ledger_entries (
	sequence_index  INTEGER PRIMARY KEY,
	entry_id        TEXT NOT NULL,
	hash            TEXT NOT NULL,
	control_points  TEXT NOT NULL,
	law_version     INTEGER NOT NULL,
	law_names       TEXT NOT NULL,
	verdict_action  TEXT NOT NULL,
	witness_json    TEXT,
	forge_name      TEXT,
	blueprint_type  TEXT,
	created_at      TEXT NOT NULL
);
`

// #endregion schema

// #region store

// SQLStore durably mirrors a Ledger's entries to SQLite, one row per
// Append, so a process restart does not lose the forge history (spec §3:
// "Ledger ... process-lived; optionally shared across blueprints" gains a
// durable backing in addition to the in-memory copy).
//
// Grounded on internal/state.Store's constructor (WAL pragma, schema
// migration, owned *sql.DB) generalized from a single mutable
// active-version row to an append-only entry table. When a non-nil
// Sealer is supplied, a witness's human-readable reason text is sealed
// before it is persisted — see internal/sealing.
type SQLStore struct {
	db     *sql.DB
	sealer *sealing.Sealer
}

// NewSQLStore opens (or creates) the SQLite file at dbPath and migrates
// the ledger_entries table. sealer may be nil, in which case witness
// reason text is stored in plaintext.
func NewSQLStore(dbPath string, sealer *sealing.Sealer) (*SQLStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &SQLStore{db: db, sealer: sealer}, nil
}

// Close closes the underlying database connection.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// DB returns the underlying connection so another store (e.g.
// internal/annotation) can share this mirror's SQLite file without opening
// a second connection.
func (s *SQLStore) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region record

// witnessRow is the JSON shape persisted in ledger_entries.witness_json.
type witnessRow struct {
	LawIndex int       `json:"law_index"`
	LawName  string    `json:"law_name"`
	Time     float64   `json:"time"`
	State    []float64 `json:"state"`
	Repair   []float64 `json:"repair,omitempty"`
	Reason   string    `json:"reason"`
	Sealed   bool      `json:"sealed"`
}

// Record persists one ledger entry. Call it once per Ledger.Append, in
// the same order entries were appended, to keep the mirror consistent
// with the in-memory ledger's sequence.
func (s *SQLStore) Record(e Entry) error {
	cpJSON, err := json.Marshal(e.ControlPoints)
	if err != nil {
		return fmt.Errorf("marshal control points: %w", err)
	}
	namesJSON, err := json.Marshal(e.LawNames)
	if err != nil {
		return fmt.Errorf("marshal law names: %w", err)
	}

	var witnessJSON sql.NullString
	if !e.Verdict.IsCommit() {
		w := e.Verdict.Witness
		reason := w.Reason
		sealed := false
		if s.sealer != nil {
			sealedReason, err := s.sealer.Seal(reason)
			if err != nil {
				return fmt.Errorf("seal witness reason: %w", err)
			}
			reason = sealedReason
			sealed = true
		}
		row := witnessRow{
			LawIndex: w.LawIndex,
			LawName:  w.LawName,
			Time:     w.Time,
			State:    []float64(w.State),
			Repair:   []float64(w.Repair),
			Reason:   reason,
			Sealed:   sealed,
		}
		b, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("marshal witness: %w", err)
		}
		witnessJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.Exec(
		`INSERT INTO ledger_entries
		 (sequence_index, entry_id, hash, control_points, law_version, law_names, verdict_action, witness_json, forge_name, blueprint_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SequenceIndex, e.EntryID, e.Hash, string(cpJSON), e.LawVersion, string(namesJSON),
		string(e.Verdict.Action), nullableString(witnessJSON), nullableField(e.ForgeName), nullableField(e.BlueprintType),
		e.Timestamp.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

func nullableString(s sql.NullString) interface{} {
	if !s.Valid {
		return nil
	}
	return s.String
}

func nullableField(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion record

// #region read

// Count returns the number of rows persisted.
func (s *SQLStore) Count() (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM ledger_entries`).Scan(&n)
	return n, err
}

// UnsealReason returns the plaintext reason for the witness JSON
// persisted alongside a rejected entry, reversing sealing if the row was
// sealed when written.
func (s *SQLStore) UnsealReason(sequenceIndex int) (string, error) {
	var witnessJSON sql.NullString
	err := s.db.QueryRow(`SELECT witness_json FROM ledger_entries WHERE sequence_index = ?`, sequenceIndex).Scan(&witnessJSON)
	if err != nil {
		return "", fmt.Errorf("read witness: %w", err)
	}
	if !witnessJSON.Valid {
		return "", nil
	}
	var row witnessRow
	if err := json.Unmarshal([]byte(witnessJSON.String), &row); err != nil {
		return "", fmt.Errorf("unmarshal witness: %w", err)
	}
	if !row.Sealed {
		return row.Reason, nil
	}
	if s.sealer == nil {
		return "", fmt.Errorf("row is sealed but store has no sealer configured")
	}
	return s.sealer.Unseal(row.Reason)
}

// RawRow is one persisted row, unpacked enough to recompute and verify its
// hash or render a listing, without needing a full engine.Verdict.
type RawRow struct {
	SequenceIndex int
	EntryID       string
	Hash          string
	ControlPoints bezier.ControlPoints
	LawVersion    int
	LawNames      []string
	Committed     bool
	WitnessReason string // "" for a committed row; unsealed on a rejected row unless the row is sealed and this store has no sealer
	ForgeName     string
	BlueprintType string
	CreatedAt     time.Time
}

// List returns every persisted row, oldest first.
func (s *SQLStore) List() ([]RawRow, error) {
	rows, err := s.db.Query(
		`SELECT sequence_index, entry_id, hash, control_points, law_version, law_names, verdict_action, witness_json, forge_name, blueprint_type, created_at
		 FROM ledger_entries ORDER BY sequence_index ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()

	var out []RawRow
	for rows.Next() {
		var r RawRow
		var cpJSON, namesJSON, action, createdAt string
		var witnessJSON, forgeName, blueprintType sql.NullString
		if err := rows.Scan(&r.SequenceIndex, &r.EntryID, &r.Hash, &cpJSON, &r.LawVersion, &namesJSON, &action, &witnessJSON, &forgeName, &blueprintType, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if err := json.Unmarshal([]byte(cpJSON), &r.ControlPoints); err != nil {
			return nil, fmt.Errorf("unmarshal control points: %w", err)
		}
		if err := json.Unmarshal([]byte(namesJSON), &r.LawNames); err != nil {
			return nil, fmt.Errorf("unmarshal law names: %w", err)
		}
		r.Committed = action == string(engine.Commit)
		r.ForgeName = forgeName.String
		r.BlueprintType = blueprintType.String
		r.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)

		if witnessJSON.Valid {
			var wr witnessRow
			if err := json.Unmarshal([]byte(witnessJSON.String), &wr); err != nil {
				return nil, fmt.Errorf("unmarshal witness: %w", err)
			}
			reason := wr.Reason
			if wr.Sealed && s.sealer != nil {
				reason, err = s.sealer.Unseal(reason)
				if err != nil {
					return nil, fmt.Errorf("unseal witness reason: %w", err)
				}
			}
			r.WitnessReason = reason
		}

		out = append(out, r)
	}
	return out, rows.Err()
}

// #endregion read
