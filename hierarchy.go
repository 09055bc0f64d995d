package rollcall

import "github.com/jmorrow/rollcall/internal/discover"

// nodeKey identifies a child within one container. Keying by kind as well as
// name keeps a class and a same-named sibling module apart instead of
// merging them, and it means a merge can only ever meet two leaves or two
// containers of the same kind.
type nodeKey struct {
	kind discover.Kind
	name string
}

// hierarchyNode is one node of the intermediate tree built from leaf parent
// chains, before annotation. children is an ordered map: the map gives
// merge lookups, order preserves first-seen discovery order.
type hierarchyNode struct {
	item     *discover.Item
	children map[nodeKey]*hierarchyNode
	order    []nodeKey
}

func (n *hierarchyNode) key() nodeKey {
	return nodeKey{kind: n.item.Kind(), name: n.item.Name()}
}

// insert adds child under n, assuming its key is not yet present.
func (n *hierarchyNode) insert(child *hierarchyNode) {
	key := child.key()
	if n.children == nil {
		n.children = make(map[nodeKey]*hierarchyNode)
	}
	n.children[key] = child
	n.order = append(n.order, key)
}

// newChain builds the single-path hierarchy for one leaf: the unbroken chain
// from the outermost container just below the session root down to the leaf,
// with exactly one child at each level. Chains from sibling leaves overlap
// and are reconciled by merge.
func newChain(leaf *discover.Item) *hierarchyNode {
	node := &hierarchyNode{item: leaf}
	for level := leaf.Parent(); level.Parent() != nil; level = level.Parent() {
		wrapper := &hierarchyNode{item: level}
		wrapper.insert(node)
		node = wrapper
	}
	return node
}

// merge reconciles child into parent's children. A new key is inserted as
// is; an existing container recurses over the incoming grandchildren; an
// existing leaf makes the merge a no-op, so the first definition wins when
// the discovery framework's per-container uniqueness guarantee is broken.
func merge(parent, child *hierarchyNode) {
	existing, ok := parent.children[child.key()]
	if !ok {
		parent.insert(child)
		return
	}
	for _, key := range child.order {
		merge(existing, child.children[key])
	}
}

// forest accumulates per-leaf chains into deduplicated root trees, keeping
// the order roots were first seen.
type forest struct {
	roots map[nodeKey]*hierarchyNode
	order []nodeKey
}

func newForest() *forest {
	return &forest{roots: make(map[nodeKey]*hierarchyNode)}
}

// add merges one leaf's chain into the forest. The first chain under a root
// key is stored as is; later chains merge their sole child into the stored
// root.
func (f *forest) add(chain *hierarchyNode) {
	key := chain.key()
	root, ok := f.roots[key]
	if !ok {
		f.roots[key] = chain
		f.order = append(f.order, key)
		return
	}
	for _, k := range chain.order {
		merge(root, chain.children[k])
	}
}

// trees returns the root nodes in first-seen order.
func (f *forest) trees() []*hierarchyNode {
	roots := make([]*hierarchyNode, 0, len(f.order))
	for _, key := range f.order {
		roots = append(roots, f.roots[key])
	}
	return roots
}
