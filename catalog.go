package rollcall

import (
	"fmt"
	"time"

	"github.com/jmorrow/rollcall/internal/discover"
	"github.com/jmorrow/rollcall/internal/store"
)

// CountTests returns the number of Function leaves in the tree.
func (t ModuleTree) CountTests() int {
	if !t.Type.Container() {
		return 1
	}
	count := 0
	for _, child := range t.Children {
		count += child.CountTests()
	}
	return count
}

// OpenCatalog opens (creating if needed) the run catalog at dbPath and
// applies the schema.
func OpenCatalog(dbPath string) (*Store, error) {
	s, err := store.NewStore(dbPath)
	if err != nil {
		return nil, err
	}
	if err := s.Migrate(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// SaveRun writes one collection result to the catalog as a run row plus one
// node row per tree node, transactionally, and returns the new run id.
func SaveRun(s *Store, path string, trees []ModuleTree) (int64, error) {
	tests := 0
	for _, tree := range trees {
		tests += tree.CountTests()
	}
	run := &store.Run{
		Path:        path,
		CollectedAt: time.Now().UTC(),
		ModuleCount: len(trees),
		TestCount:   tests,
	}

	tx, err := s.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	runID, err := tx.InsertRun(run)
	if err != nil {
		return 0, err
	}
	for i, tree := range trees {
		if err := saveTree(tx, runID, nil, i, tree); err != nil {
			return 0, err
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// saveTree inserts a tree node and recurses into its children. Nodes are
// written in pre-order, so a parent's row id always precedes its children's.
func saveTree(tx *store.Tx, runID int64, parentID *int64, ordinal int, tree ModuleTree) error {
	node := &store.Node{
		RunID:    runID,
		ParentID: parentID,
		Kind:     string(tree.Type),
		Title:    tree.Title,
		Doc:      tree.Doc,
		Src:      tree.Src,
		Ordinal:  ordinal,
	}
	id, err := tx.InsertNode(node)
	if err != nil {
		return err
	}
	for i, child := range tree.Children {
		if err := saveTree(tx, runID, &id, i, child); err != nil {
			return err
		}
	}
	return nil
}

// LoadRun reconstructs a saved run's module trees from its node rows.
func LoadRun(s *Store, runID int64) ([]ModuleTree, error) {
	run, err := s.RunByID(runID)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, fmt.Errorf("run %d not found", runID)
	}

	nodes, err := s.NodesByRun(runID)
	if err != nil {
		return nil, err
	}

	// Rows come back in insertion (pre-order) order, so siblings arrive in
	// ordinal order and each parent's row precedes its children's.
	byID := make(map[int64]*store.Node, len(nodes))
	childIDs := make(map[int64][]int64)
	var rootIDs []int64
	for _, n := range nodes {
		byID[n.ID] = n
		if n.ParentID == nil {
			rootIDs = append(rootIDs, n.ID)
			continue
		}
		if _, ok := byID[*n.ParentID]; !ok {
			return nil, fmt.Errorf("run %d: node %d references missing parent %d", runID, n.ID, *n.ParentID)
		}
		childIDs[*n.ParentID] = append(childIDs[*n.ParentID], n.ID)
	}

	var build func(id int64) ModuleTree
	build = func(id int64) ModuleTree {
		n := byID[id]
		tree := ModuleTree{
			Type:  discover.Kind(n.Kind),
			Title: n.Title,
			Doc:   n.Doc,
			Src:   n.Src,
		}
		for _, childID := range childIDs[id] {
			tree.Children = append(tree.Children, build(childID))
		}
		return tree
	}

	trees := make([]ModuleTree, 0, len(rootIDs))
	for _, id := range rootIDs {
		trees = append(trees, build(id))
	}
	return trees, nil
}
