package ledger

import (
	"path/filepath"
	"testing"

	"github.com/ashgrove/newtonforge/internal/engine"
	"github.com/ashgrove/newtonforge/internal/sealing"
)

func newTestSQLStore(t *testing.T, sealer *sealing.Sealer) *SQLStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	s, err := NewSQLStore(path, sealer)
	if err != nil {
		t.Fatalf("NewSQLStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLStoreRecordAndCount(t *testing.T) {
	s := newTestSQLStore(t, nil)
	l := New()
	e := l.Append(sampleControlPoints(), []string{"x>0", "y>0"}, engine.CommitVerdict(), "submit", "Invoice")
	if err := s.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	n, err := s.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Fatalf("Count() = %d, want 1", n)
	}
}

func TestSQLStoreRecordRejectionPlaintext(t *testing.T) {
	s := newTestSQLStore(t, nil)
	l := New()
	verdict := engine.RejectVerdict(engine.Witness{
		LawIndex: 1,
		LawName:  "y non-negative",
		Time:     0.75,
		Reason:   "state violated y non-negative at t=0.75",
	})
	e := l.Append(sampleControlPoints(), []string{"y non-negative"}, verdict, "pay", "Invoice")
	if err := s.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	reason, err := s.UnsealReason(e.SequenceIndex)
	if err != nil {
		t.Fatalf("UnsealReason: %v", err)
	}
	if reason != verdict.Witness.Reason {
		t.Errorf("UnsealReason() = %q, want %q", reason, verdict.Witness.Reason)
	}
}

func TestSQLStoreRecordRejectionSealed(t *testing.T) {
	sealer := sealing.NewSealer(t.TempDir())
	s := newTestSQLStore(t, sealer)
	l := New()
	verdict := engine.RejectVerdict(engine.Witness{
		LawIndex: 0,
		LawName:  "amount ceiling",
		Time:     1.0,
		Reason:   "amount exceeded threshold without approval",
	})
	e := l.Append(sampleControlPoints(), []string{"amount ceiling"}, verdict, "pay", "Invoice")
	if err := s.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}

	var raw string
	if err := s.db.QueryRow(`SELECT witness_json FROM ledger_entries WHERE sequence_index = ?`, e.SequenceIndex).Scan(&raw); err != nil {
		t.Fatalf("read raw witness_json: %v", err)
	}
	if len(raw) == 0 {
		t.Fatal("expected non-empty witness_json")
	}

	reason, err := s.UnsealReason(e.SequenceIndex)
	if err != nil {
		t.Fatalf("UnsealReason: %v", err)
	}
	if reason != verdict.Witness.Reason {
		t.Errorf("UnsealReason() = %q, want %q", reason, verdict.Witness.Reason)
	}
}

func TestSQLStoreListAndRecomputeHash(t *testing.T) {
	s := newTestSQLStore(t, nil)
	l := New()
	e0 := l.Append(sampleControlPoints(), []string{"x>0"}, engine.CommitVerdict(), "submit", "Invoice")
	e1 := l.Append(sampleControlPoints(), []string{"x>0"}, engine.RejectVerdict(engine.Witness{LawIndex: 0, LawName: "x>0", Reason: "violated"}), "pay", "Invoice")
	if err := s.Record(e0); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := s.Record(e1); err != nil {
		t.Fatalf("Record: %v", err)
	}

	rows, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("List() = %d rows, want 2", len(rows))
	}
	for i, row := range rows {
		recomputed := RecomputeHash(row.ControlPoints, row.LawVersion, row.LawNames, row.Committed, row.SequenceIndex)
		if recomputed != row.Hash {
			t.Errorf("row %d: RecomputeHash() = %q, want %q", i, recomputed, row.Hash)
		}
	}
	if rows[0].Committed != true || rows[1].Committed != false {
		t.Errorf("Committed flags = %v, %v, want true, false", rows[0].Committed, rows[1].Committed)
	}
	if rows[1].WitnessReason != "violated" {
		t.Errorf("WitnessReason = %q, want %q", rows[1].WitnessReason, "violated")
	}
}

func TestSQLStoreCommitHasNoWitness(t *testing.T) {
	s := newTestSQLStore(t, nil)
	l := New()
	e := l.Append(sampleControlPoints(), []string{"x>0"}, engine.CommitVerdict(), "submit", "Invoice")
	if err := s.Record(e); err != nil {
		t.Fatalf("Record: %v", err)
	}
	reason, err := s.UnsealReason(e.SequenceIndex)
	if err != nil {
		t.Fatalf("UnsealReason: %v", err)
	}
	if reason != "" {
		t.Errorf("UnsealReason() on a commit entry = %q, want empty", reason)
	}
}
