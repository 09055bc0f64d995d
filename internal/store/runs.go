package store

import (
	"database/sql"
	"fmt"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// --- Run operations ---

func insertRun(e execer, r *Run) (int64, error) {
	res, err := e.Exec(
		"INSERT INTO runs (path, collected_at, module_count, test_count) VALUES (?, ?, ?, ?)",
		r.Path, r.CollectedAt, r.ModuleCount, r.TestCount,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	r.ID = id
	return id, nil
}

func (s *Store) InsertRun(r *Run) (int64, error) {
	return insertRun(s.db, r)
}

const runCols = "id, path, collected_at, module_count, test_count"

func scanRun(scanner interface{ Scan(...any) error }) (*Run, error) {
	r := &Run{}
	err := scanner.Scan(&r.ID, &r.Path, &r.CollectedAt, &r.ModuleCount, &r.TestCount)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// RunByID returns the run with the given id, or nil when none exists.
func (s *Store) RunByID(id int64) (*Run, error) {
	row := s.db.QueryRow("SELECT "+runCols+" FROM runs WHERE id = ?", id)
	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("run by id: %w", err)
	}
	return r, nil
}

// Runs returns every saved run, newest first.
func (s *Store) Runs() ([]*Run, error) {
	rows, err := s.db.Query("SELECT " + runCols + " FROM runs ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()
	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// --- Node operations ---

func insertNode(e execer, n *Node) (int64, error) {
	res, err := e.Exec(
		"INSERT INTO nodes (run_id, parent_id, kind, title, doc, src, ordinal) VALUES (?, ?, ?, ?, ?, ?, ?)",
		n.RunID, n.ParentID, n.Kind, n.Title, n.Doc, n.Src, n.Ordinal,
	)
	if err != nil {
		return 0, fmt.Errorf("insert node: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	n.ID = id
	return id, nil
}

func (s *Store) InsertNode(n *Node) (int64, error) {
	return insertNode(s.db, n)
}

// NodesByRun returns every node of a run, parents before children, siblings
// in ordinal order.
func (s *Store) NodesByRun(runID int64) ([]*Node, error) {
	rows, err := s.db.Query(
		"SELECT id, run_id, parent_id, kind, title, doc, src, ordinal FROM nodes WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("nodes by run: %w", err)
	}
	defer rows.Close()
	var nodes []*Node
	for rows.Next() {
		n := &Node{}
		if err := rows.Scan(&n.ID, &n.RunID, &n.ParentID, &n.Kind, &n.Title, &n.Doc, &n.Src, &n.Ordinal); err != nil {
			return nil, fmt.Errorf("scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	return nodes, rows.Err()
}

// --- Transactions ---

// Tx wraps a write transaction over the catalog.
type Tx struct {
	tx *sql.Tx
}

// Begin starts a write transaction.
func (s *Store) Begin() (*Tx, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	return &Tx{tx: tx}, nil
}

func (t *Tx) InsertRun(r *Run) (int64, error)   { return insertRun(t.tx, r) }
func (t *Tx) InsertNode(n *Node) (int64, error) { return insertNode(t.tx, n) }

func (t *Tx) Commit() error   { return t.tx.Commit() }
func (t *Tx) Rollback() error { return t.tx.Rollback() }
