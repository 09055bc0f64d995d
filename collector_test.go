package rollcall

import (
	"errors"
	"testing"

	"github.com/jmorrow/rollcall/internal/discover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectionFinished_AssemblesAnnotatedTrees(t *testing.T) {
	t.Parallel()
	c := &Collector{}
	c.CollectionFinished(fixtureItems())

	trees := c.Modules()
	require.Len(t, trees, 2)

	modA := trees[0]
	assert.Equal(t, discover.KindModule, modA.Type)
	assert.Equal(t, "a_test.py", modA.Title)
	assert.Equal(t, "module a", modA.Doc)
	assert.Empty(t, modA.Src)
	require.Len(t, modA.Children, 2)

	cls := modA.Children[0]
	assert.Equal(t, discover.KindClass, cls.Type)
	assert.Equal(t, "TestOne", cls.Title)
	require.Len(t, cls.Children, 2)
	assert.Equal(t, []string{"test_x", "test_y"}, []string{cls.Children[0].Title, cls.Children[1].Title})

	leaf := cls.Children[0]
	assert.Equal(t, discover.KindFunction, leaf.Type)
	assert.Equal(t, "def test_x(self):\n    pass", leaf.Src)
	assert.Nil(t, leaf.Children)

	top := modA.Children[1]
	assert.Equal(t, discover.KindFunction, top.Type)
	assert.Equal(t, "test_top", top.Title)
}

func TestCollectionFinished_EveryLeafAppearsExactlyOnce(t *testing.T) {
	t.Parallel()
	items := fixtureItems()
	c := &Collector{}
	c.CollectionFinished(items)

	counts := make(map[string]int)
	var walk func(tree ModuleTree)
	walk = func(tree ModuleTree) {
		if tree.Type == discover.KindFunction {
			counts[tree.Title]++
		}
		for _, child := range tree.Children {
			walk(child)
		}
	}
	for _, tree := range c.Modules() {
		walk(tree)
	}

	require.Len(t, counts, len(items))
	for name, n := range counts {
		assert.Equal(t, 1, n, "leaf %s", name)
	}
}

func TestCollectionFinished_ReindentsDocAndSrc(t *testing.T) {
	t.Parallel()
	session := discover.NewSession()
	mod := discover.NewItem(discover.KindModule, "m_test.py", "\n    Module doc.\n", "", session)
	leaf := discover.NewItem(discover.KindFunction, "test_a",
		"\n        Case doc.\n        ",
		"    def test_a(self):\n        pass", mod)

	c := &Collector{}
	c.CollectionFinished([]*discover.Item{leaf})

	trees := c.Modules()
	require.Len(t, trees, 1)
	assert.Equal(t, "Module doc.", trees[0].Doc)
	require.Len(t, trees[0].Children, 1)
	assert.Equal(t, "Case doc.\n", trees[0].Children[0].Doc)
	assert.Equal(t, "def test_a(self):\n    pass", trees[0].Children[0].Src)
}

func TestCollectionFinished_NoItemsYieldsNoTrees(t *testing.T) {
	t.Parallel()
	c := &Collector{}
	c.CollectionFinished(nil)
	assert.Empty(t, c.Modules())
}

func TestCountTests(t *testing.T) {
	t.Parallel()
	c := &Collector{}
	c.CollectionFinished(fixtureItems())

	trees := c.Modules()
	require.Len(t, trees, 2)
	assert.Equal(t, 3, trees[0].CountTests())
	assert.Equal(t, 1, trees[1].CountTests())
}

func TestCollectError_CarriesExitCode(t *testing.T) {
	t.Parallel()
	err := error(&CollectError{Code: discover.ExitNoTestsCollected})

	var cerr *CollectError
	require.True(t, errors.As(err, &cerr))
	assert.Equal(t, discover.ExitNoTestsCollected, cerr.Code)
	assert.Contains(t, err.Error(), "no tests collected")
	assert.Contains(t, err.Error(), "5")
}
