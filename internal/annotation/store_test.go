package annotation

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

func TestSaveAndLatest(t *testing.T) {
	s := newTestStore(t)
	if err := s.Save(7, "first note"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(7, "second note"); err != nil {
		t.Fatalf("Save: %v", err)
	}
	latest, err := s.Latest(7)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if latest == nil || latest.Text != "second note" {
		t.Fatalf("Latest() = %+v, want second note", latest)
	}
}

func TestLatestNoRows(t *testing.T) {
	s := newTestStore(t)
	n, err := s.Latest(42)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if n != nil {
		t.Errorf("Latest() on empty store = %+v, want nil", n)
	}
}

func TestAllOrdersOldestFirst(t *testing.T) {
	s := newTestStore(t)
	s.Save(1, "a")
	s.Save(1, "b")
	s.Save(1, "c")
	notes, err := s.All(1)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(notes) != 3 || notes[0].Text != "a" || notes[2].Text != "c" {
		t.Fatalf("All() = %+v, want [a b c]", notes)
	}
}

func TestAllScopedBySequenceIndex(t *testing.T) {
	s := newTestStore(t)
	s.Save(1, "for entry one")
	s.Save(2, "for entry two")
	notes, err := s.All(1)
	if err != nil {
		t.Fatalf("All: %v", err)
	}
	if len(notes) != 1 || notes[0].Text != "for entry one" {
		t.Fatalf("All(1) = %+v, want only entry-one notes", notes)
	}
}

func TestExtractFollowUp(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"need to check why dimension 3 keeps tripping the bound", 1},
		{"TODO revisit this once the coupling graph stabilizes", 2},
		{"this rejection is fully explained, nothing else to do", 0},
	}
	for _, c := range cases {
		got := ExtractFollowUp(c.text)
		if len(got) != c.want {
			t.Errorf("ExtractFollowUp(%q) = %v, want %d matches", c.text, got, c.want)
		}
	}
}
