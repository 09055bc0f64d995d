package store

import "time"

// Run is one completed collection pass saved to the catalog.
type Run struct {
	ID          int64
	Path        string
	CollectedAt time.Time
	ModuleCount int
	TestCount   int
}

// Node is one flattened tree node of a saved run. ParentID is nil for root
// (module) nodes; Ordinal is the node's position among its siblings.
type Node struct {
	ID       int64
	RunID    int64
	ParentID *int64
	Kind     string
	Title    string
	Doc      string
	Src      string
	Ordinal  int
}
