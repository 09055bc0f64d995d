package discover

// Kind classifies a collected item. The discovery pass tags every item with
// its kind exactly once; consumers branch on the tag and never need to
// inspect anything else to tell containers from leaves.
type Kind string

const (
	// KindSession marks the synthetic root of a collection run. It is the
	// only item whose Parent is nil and it never appears in collected trees.
	KindSession Kind = "Session"

	// KindModule is a collected test file.
	KindModule Kind = "Module"

	// KindClass is a collected test class (pytest's Test* convention).
	KindClass Kind = "Class"

	// KindFunction is a collected test function or method, the leaf of the
	// hierarchy. Function items are the only items carrying source text.
	KindFunction Kind = "Function"
)

// Container reports whether items of this kind may enclose other items.
func (k Kind) Container() bool {
	return k != KindFunction
}

// Item is one node discovered during collection: the session root, a module,
// a class, or a test function. Items are immutable once built; the parent
// chain links every item up to the session root.
type Item struct {
	kind   Kind
	name   string
	doc    string
	src    string
	parent *Item
}

// NewSession returns the root item for a collection run.
func NewSession() *Item {
	return &Item{kind: KindSession}
}

// NewItem builds a discovered item under parent. Containers pass src == "";
// a missing docstring is the empty string, never an error.
func NewItem(kind Kind, name, doc, src string, parent *Item) *Item {
	return &Item{kind: kind, name: name, doc: doc, src: src, parent: parent}
}

// Kind returns the item's classification tag.
func (i *Item) Kind() Kind { return i.kind }

// Name returns the item's display name: a root-relative path for modules,
// the source-level identifier for classes and functions. Names are unique
// among siblings.
func (i *Item) Name() string { return i.name }

// Doc returns the item's docstring, or "" when the source has none.
func (i *Item) Doc() string { return i.doc }

// Src returns the full source text of a function item, decorators included.
// Empty for containers.
func (i *Item) Src() string { return i.src }

// Parent returns the enclosing item, or nil for the session root.
func (i *Item) Parent() *Item { return i.parent }
