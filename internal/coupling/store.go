// Package coupling tracks which state-vector dimensions have historically
// co-occurred in a confirmed law violation, and uses that history to extend
// the engine's single-control-point repair direction (spec §4.4) into a
// multi-dimension advisory nudge.
//
// Directly adapted from internal/graph.GraphStore (AddEdge, IncrementEdge,
// Walk, DecayAll, SeverNode), generalizing its string evidence-node IDs to
// integer state-vector dimension indices and dropping the per-edge "type"
// column (every edge here means the same thing: "these two dimensions
// co-violated a law together").
package coupling

import (
	"database/sql"
	"fmt"
	"math"
	"time"
)

// #region schema

const schema = `
CREATE TABLE IF NOT EXISTS dimension_edges (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	source_dim  INTEGER NOT NULL,
	target_dim  INTEGER NOT NULL,
	weight      REAL NOT NULL DEFAULT 0.1,
	created_at  TEXT NOT NULL,
	updated_at  TEXT NOT NULL,
	UNIQUE(source_dim, target_dim)
);
CREATE INDEX IF NOT EXISTS idx_dimension_edges_source ON dimension_edges(source_dim);
`

// #endregion schema

// #region types

// Edge is a weighted link between two dimensions that have co-violated a
// law together.
type Edge struct {
	ID         int64
	SourceDim  int
	TargetDim  int
	Weight     float64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WalkResult holds an ordered path from a graph walk, mirroring
// graph.WalkResult but over dimension indices.
type WalkResult struct {
	Dims   []int
	Scores []float64
}

// Store manages the dimension_edges table.
type Store struct {
	db *sql.DB
}

// #endregion types

// #region constructor

// NewStore creates the table if needed and returns a Store.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("coupling schema: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion constructor

// #region record

// RecordCoViolation increases the coupling weight between two dimensions
// that were both implicated in the same confirmed violation, capped at 1.0.
// Creates the edge with weight=delta if it doesn't exist yet. Both
// directions are recorded so Neighbors works from either side.
func (s *Store) RecordCoViolation(dimA, dimB int, delta float64) error {
	if dimA == dimB {
		return nil
	}
	if err := s.incrementEdge(dimA, dimB, delta); err != nil {
		return err
	}
	return s.incrementEdge(dimB, dimA, delta)
}

func (s *Store) incrementEdge(source, target int, delta float64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`INSERT INTO dimension_edges (source_dim, target_dim, weight, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_dim, target_dim) DO UPDATE SET
		   weight = MIN(1.0, dimension_edges.weight + ?),
		   updated_at = ?`,
		source, target, delta, now, now,
		delta, now,
	)
	return err
}

// #endregion record

// #region query

// Neighbors returns all dimensions coupled to dim with weight >= minWeight,
// ordered by weight descending.
func (s *Store) Neighbors(dim int, minWeight float64) ([]Edge, error) {
	rows, err := s.db.Query(
		`SELECT id, source_dim, target_dim, weight, created_at, updated_at
		 FROM dimension_edges
		 WHERE source_dim = ? AND weight >= ?
		 ORDER BY weight DESC`,
		dim, minWeight,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var edges []Edge
	for rows.Next() {
		var e Edge
		var createdAt, updatedAt string
		if err := rows.Scan(&e.ID, &e.SourceDim, &e.TargetDim, &e.Weight, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		e.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// Walk performs a BFS from dim, following edges with weight >= minWeight,
// up to maxDepth hops and maxNodes total dimensions.
func (s *Store) Walk(dim int, maxDepth int, minWeight float64, maxNodes int) (WalkResult, error) {
	if maxDepth <= 0 {
		maxDepth = 3
	}
	if maxNodes <= 0 {
		maxNodes = 8
	}

	result := WalkResult{Dims: []int{dim}, Scores: []float64{1.0}}
	visited := map[int]bool{dim: true}

	type queueItem struct {
		dim   int
		depth int
		score float64
	}
	queue := []queueItem{{dim, 0, 1.0}}

	for len(queue) > 0 {
		if len(result.Dims) >= maxNodes {
			break
		}
		current := queue[0]
		queue = queue[1:]
		if current.depth >= maxDepth {
			continue
		}

		neighbors, err := s.Neighbors(current.dim, minWeight)
		if err != nil {
			return result, fmt.Errorf("walk neighbors: %w", err)
		}
		for _, edge := range neighbors {
			if len(result.Dims) >= maxNodes {
				break
			}
			if visited[edge.TargetDim] {
				continue
			}
			visited[edge.TargetDim] = true
			cumScore := current.score * edge.Weight
			result.Dims = append(result.Dims, edge.TargetDim)
			result.Scores = append(result.Scores, cumScore)
			queue = append(queue, queueItem{edge.TargetDim, current.depth + 1, cumScore})
		}
	}

	return result, nil
}

// #endregion query

// #region maintenance

// DecayAll applies exponential decay to all edge weights based on time
// since last update. Edges that fall below 0.01 are deleted. Returns the
// number of deleted edges.
func (s *Store) DecayAll(halfLifeHours float64) (int64, error) {
	now := time.Now().UTC()
	halfLifeSec := halfLifeHours * 3600.0

	rows, err := s.db.Query(`SELECT id, weight, updated_at FROM dimension_edges`)
	if err != nil {
		return 0, err
	}

	type decayItem struct {
		id        int64
		newWeight float64
	}
	var updates []decayItem
	var deletes []int64

	for rows.Next() {
		var id int64
		var weight float64
		var updatedAt string
		if err := rows.Scan(&id, &weight, &updatedAt); err != nil {
			rows.Close()
			return 0, err
		}
		t, _ := time.Parse(time.RFC3339, updatedAt)
		ageSec := now.Sub(t).Seconds()
		if ageSec <= 0 {
			continue
		}
		decayed := weight * math.Exp(-ageSec*math.Ln2/halfLifeSec)
		if decayed < 0.01 {
			deletes = append(deletes, id)
		} else {
			updates = append(updates, decayItem{id, decayed})
		}
	}
	rows.Close()

	nowStr := now.Format(time.RFC3339)
	for _, u := range updates {
		if _, err := s.db.Exec(`UPDATE dimension_edges SET weight = ?, updated_at = ? WHERE id = ?`, u.newWeight, nowStr, u.id); err != nil {
			return 0, err
		}
	}
	for _, id := range deletes {
		if _, err := s.db.Exec(`DELETE FROM dimension_edges WHERE id = ?`, id); err != nil {
			return 0, err
		}
	}
	return int64(len(deletes)), nil
}

// Sever deletes all edges touching dim, e.g. when a field is dropped from
// a blueprint's layout.
func (s *Store) Sever(dim int) error {
	_, err := s.db.Exec(`DELETE FROM dimension_edges WHERE source_dim = ? OR target_dim = ?`, dim, dim)
	return err
}

// #endregion maintenance
