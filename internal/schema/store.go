// Package schema persists a blueprint's declared field layout (name, typed
// kind, optional state-path labels) so that "Blueprint instance: ...
// long-lived" (spec §3) survives a process restart, not just a single run.
//
// Adapted from internal/projection.PreferenceStore's CRUD-over-a-small-table
// shape (create-table-if-needed constructor, duplicate-checked insert,
// ordered list query); the free-text preference-detection helpers
// (DetectPreference, DetectCorrection, ProjectToPrompt, WrapPrompt) have no
// analogue in a field-declaration store and are not carried over — see
// DESIGN.md.
package schema

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// #region types

// FieldDecl is one persisted field declaration.
type FieldDecl struct {
	ID          int
	Name        string
	Kind        string // caller-chosen kind name, e.g. "decimal", "label", "bool"
	StatePath   []string // nil for non-labelled kinds
	DimIndex    int
	CreatedAt   time.Time
}

// #endregion types

// #region store

// Store manages the field_schema table.
type Store struct {
	db *sql.DB
}

// NewStore creates the table if needed and returns a Store.
func NewStore(db *sql.DB) (*Store, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS field_schema (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		name        TEXT NOT NULL UNIQUE,
		kind        TEXT NOT NULL,
		state_path  TEXT,
		dim_index   INTEGER NOT NULL,
		created_at  TEXT NOT NULL
	)`)
	if err != nil {
		return nil, fmt.Errorf("create field_schema table: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion store

// #region declare

// Declare records a field's layout. Idempotent: re-declaring the same name
// updates its kind/state-path/index rather than duplicating the row,
// matching spec §3's "registration is idempotent" for blueprint instances.
func (s *Store) Declare(name, kind string, statePath []string, dimIndex int) error {
	var pathJSON sql.NullString
	if statePath != nil {
		b, err := json.Marshal(statePath)
		if err != nil {
			return fmt.Errorf("marshal state path: %w", err)
		}
		pathJSON = sql.NullString{String: string(b), Valid: true}
	}

	var existing int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM field_schema WHERE name = ?`, name).Scan(&existing)
	if err != nil {
		return fmt.Errorf("check existing field: %w", err)
	}

	if existing > 0 {
		_, err := s.db.Exec(
			`UPDATE field_schema SET kind = ?, state_path = ?, dim_index = ? WHERE name = ?`,
			kind, pathJSON, dimIndex, name,
		)
		if err != nil {
			return fmt.Errorf("update field declaration: %w", err)
		}
		return nil
	}

	_, err = s.db.Exec(
		`INSERT INTO field_schema (name, kind, state_path, dim_index, created_at) VALUES (?, ?, ?, ?, ?)`,
		name, kind, pathJSON, dimIndex, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert field declaration: %w", err)
	}
	return nil
}

// List returns all declared fields, ordered by dimension index.
func (s *Store) List() ([]FieldDecl, error) {
	rows, err := s.db.Query(`SELECT id, name, kind, state_path, dim_index, created_at FROM field_schema ORDER BY dim_index`)
	if err != nil {
		return nil, fmt.Errorf("list field declarations: %w", err)
	}
	defer rows.Close()

	var decls []FieldDecl
	for rows.Next() {
		var d FieldDecl
		var pathJSON sql.NullString
		var createdAt string
		if err := rows.Scan(&d.ID, &d.Name, &d.Kind, &pathJSON, &d.DimIndex, &createdAt); err != nil {
			return nil, fmt.Errorf("scan field declaration: %w", err)
		}
		if pathJSON.Valid {
			if err := json.Unmarshal([]byte(pathJSON.String), &d.StatePath); err != nil {
				return nil, fmt.Errorf("unmarshal state path: %w", err)
			}
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		decls = append(decls, d)
	}
	return decls, rows.Err()
}

// #endregion declare
