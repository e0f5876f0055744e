// Package annotation persists free-text investigation notes attached to a
// rejected verdict's witness (spec §4.2: Witness carries a Reason string),
// so a human reviewing a ledger entry later can record why a rejection
// happened and what follow-up it needs.
//
// Adapted from internal/interior.InteriorStore's reflection-log shape
// (create-table-if-needed constructor, append-only Save, Latest-by-id
// query); ExtractCuriosity is renamed ExtractFollowUp and its trigger
// phrases are retargeted from first-person curiosity ("I wonder") to
// investigation language an annotator would use about a witness ("need to
// check", "unclear why") — see DESIGN.md.
package annotation

import (
	"database/sql"
	"strings"
	"time"
)

// #region types

// Note is one investigation note attached to a witness by sequence index.
type Note struct {
	SequenceIndex int
	Text          string
	CreatedAt     time.Time
}

// #endregion types

// #region store

// Store persists notes in SQLite.
type Store struct {
	db *sql.DB
}

// NewStore creates the witness_notes table if needed and returns a Store.
func NewStore(db *sql.DB) (*Store, error) {
	s := &Store{db: db}
	if err := s.init(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS witness_notes (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		sequence_index INTEGER NOT NULL,
		note_text      TEXT NOT NULL,
		created_at     TEXT NOT NULL
	)`)
	return err
}

// Save appends a note for the ledger entry at the given sequence index.
func (s *Store) Save(sequenceIndex int, text string) error {
	_, err := s.db.Exec(
		`INSERT INTO witness_notes (sequence_index, note_text, created_at) VALUES (?, ?, ?)`,
		sequenceIndex, text, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Latest returns the most recently saved note for sequenceIndex, or nil if
// none exists.
func (s *Store) Latest(sequenceIndex int) (*Note, error) {
	row := s.db.QueryRow(
		`SELECT sequence_index, note_text, created_at FROM witness_notes
		 WHERE sequence_index = ? ORDER BY id DESC LIMIT 1`,
		sequenceIndex,
	)
	var n Note
	var createdAt string
	if err := row.Scan(&n.SequenceIndex, &n.Text, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return &n, nil
}

// All returns every note recorded for sequenceIndex, oldest first.
func (s *Store) All(sequenceIndex int) ([]Note, error) {
	rows, err := s.db.Query(
		`SELECT sequence_index, note_text, created_at FROM witness_notes
		 WHERE sequence_index = ? ORDER BY id ASC`,
		sequenceIndex,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		var createdAt string
		if err := rows.Scan(&n.SequenceIndex, &n.Text, &createdAt); err != nil {
			return nil, err
		}
		n.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// #endregion store

// #region follow-up

// ExtractFollowUp scans note text for signals that the annotator flagged
// unresolved follow-up work, rather than just recording an observation.
func ExtractFollowUp(text string) []string {
	lower := strings.ToLower(text)
	triggers := []string{
		"need to check",
		"needs investigation",
		"unclear why",
		"not sure why",
		"follow up",
		"follow-up",
		"revisit this",
		"todo",
	}
	var found []string
	for _, t := range triggers {
		if strings.Contains(lower, t) {
			found = append(found, t)
		}
	}
	return found
}

// #endregion follow-up
