package rollcall

import (
	"context"
	"fmt"

	"github.com/jmorrow/rollcall/internal/discover"
)

// ModuleTree is one annotated node of a collected test hierarchy: a module
// at the root, classes in the middle, functions at the leaves. Containers
// carry Children and no Src; functions carry Src and no Children. Doc is
// always present, empty when the source has no docstring.
type ModuleTree struct {
	Type     discover.Kind `json:"type"`
	Title    string        `json:"title"`
	Doc      string        `json:"doc"`
	Children []ModuleTree  `json:"children,omitempty"`
	Src      string        `json:"src,omitempty"`
}

// Collector assembles the flat list of discovered test functions into
// annotated module trees. It implements discover.Listener and is handed
// explicitly to discover.Run; the callback fires once, synchronously, at
// the end of a pass, and writes the result field exactly once.
type Collector struct {
	modules []ModuleTree
}

// Modules returns the trees assembled by the last collection pass, in
// discovery order.
func (c *Collector) Modules() []ModuleTree {
	return c.modules
}

// CollectionFinished builds each leaf's ancestor chain, merges overlapping
// chains into deduplicated root trees, and annotates every node.
func (c *Collector) CollectionFinished(items []*discover.Item) {
	f := newForest()
	for _, leaf := range items {
		f.add(newChain(leaf))
	}

	roots := f.trees()
	modules := make([]ModuleTree, 0, len(roots))
	for _, root := range roots {
		modules = append(modules, annotate(root))
	}
	c.modules = modules
}

// annotate materializes an intermediate node into its output form: kind and
// name from the discovered item, docstring reindented, and either the
// reindented source text for a function or the recursively annotated
// children for a container, in insertion order.
func annotate(n *hierarchyNode) ModuleTree {
	item := n.item
	tree := ModuleTree{
		Type:  item.Kind(),
		Title: item.Name(),
		Doc:   Reindent(item.Doc()),
	}
	if !item.Kind().Container() {
		tree.Src = Reindent(item.Src())
		return tree
	}
	tree.Children = make([]ModuleTree, 0, len(n.order))
	for _, key := range n.order {
		tree.Children = append(tree.Children, annotate(n.children[key]))
	}
	return tree
}

// CollectError reports a collection pass that ended with a non-OK exit
// code. No trees are returned alongside it: collection either fully
// succeeds or fails whole.
type CollectError struct {
	Code discover.ExitCode
}

func (e *CollectError) Error() string {
	return fmt.Sprintf("collection failed: %s (exit code %d)", e.Code, int(e.Code))
}

// Collect discovers the tests under path and returns their annotated module
// trees. Each call runs one fresh, full discovery pass; nothing is retained
// between calls. A non-OK exit code from discovery is returned as a
// *CollectError with no partial result.
func Collect(ctx context.Context, path string) ([]ModuleTree, error) {
	collector := &Collector{}
	if code := discover.Run(ctx, path, collector); code != discover.ExitOK {
		return nil, &CollectError{Code: code}
	}
	return collector.Modules(), nil
}
