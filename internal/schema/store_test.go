package schema

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	s, err := NewStore(db)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return s
}

func TestDeclareAndList(t *testing.T) {
	s := newTestStore(t)
	if err := s.Declare("amount", "decimal", nil, 0); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if err := s.Declare("status", "label", []string{"draft", "submitted", "approved", "paid"}, 1); err != nil {
		t.Fatalf("Declare: %v", err)
	}

	decls, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(decls) != 2 {
		t.Fatalf("List returned %d decls, want 2", len(decls))
	}
	if decls[0].Name != "amount" || decls[1].Name != "status" {
		t.Errorf("List order = %v, want amount then status (by dim_index)", decls)
	}
	if len(decls[1].StatePath) != 4 || decls[1].StatePath[2] != "approved" {
		t.Errorf("state path round-trip failed: %v", decls[1].StatePath)
	}
}

func TestDeclareIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.Declare("amount", "decimal", nil, 0); err != nil {
		t.Fatalf("Declare: %v", err)
	}
	if err := s.Declare("amount", "double", nil, 0); err != nil {
		t.Fatalf("re-Declare: %v", err)
	}
	decls, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(decls) != 1 {
		t.Fatalf("expected re-declaration to update in place, got %d rows", len(decls))
	}
	if decls[0].Kind != "double" {
		t.Errorf("Kind = %q, want updated value %q", decls[0].Kind, "double")
	}
}
