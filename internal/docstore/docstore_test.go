package docstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/xpathlang/internal/docstore"
)

func book(title string) docstore.NodeSpec {
	return docstore.NodeSpec{
		Type:  "element",
		Local: "book",
		Attrs: []docstore.NodeSpec{{Type: "attr", Local: "title", Text: title}},
		Kids:  []docstore.NodeSpec{{Type: "text", Text: title}},
	}
}

func openTestStore(t *testing.T) *docstore.Store {
	t.Helper()
	store, err := docstore.Connect(":memory:", false)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutAndAllRehydratesTree(t *testing.T) {
	store := openTestStore(t)

	root := docstore.NodeSpec{Type: "element", Local: "catalog", Kids: []docstore.NodeSpec{book("Go in Practice")}}
	require.NoError(t, store.Put("docs/a.xml", root, map[string]string{"": "urn:example"}))

	all, err := store.All()
	require.NoError(t, err)
	require.Contains(t, all, "docs/a.xml")

	loaded := all["docs/a.xml"]
	assert.Equal(t, "catalog", loaded.Root.LocalName())
	require.Len(t, loaded.Root.Children(), 1)
	assert.Equal(t, "book", loaded.Root.Children()[0].LocalName())
	assert.Equal(t, "urn:example", loaded.Namespaces[""])
}

func TestListReturnsRegisteredNames(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("docs/a.xml", book("A"), nil))
	require.NoError(t, store.Put("docs/b.xml", book("B"), nil))

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"docs/a.xml", "docs/b.xml"}, names)
}

func TestCollectionsResolvesGlobsAgainstRegisteredNames(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("docs/a.xml", book("A"), nil))
	require.NoError(t, store.Put("docs/b.xml", book("B"), nil))
	require.NoError(t, store.Put("other/c.xml", book("C"), nil))

	cols, err := store.Collections([]string{"docs/**/*.xml", "other/*.xml", "nomatch/*.xml"})
	require.NoError(t, err)

	assert.Len(t, cols["docs/**/*.xml"], 2)
	assert.Len(t, cols["other/*.xml"], 1)
	assert.Empty(t, cols["nomatch/*.xml"])
}

func TestPutOverwritesExistingDocument(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Put("docs/a.xml", book("first"), nil))
	require.NoError(t, store.Put("docs/a.xml", book("second"), nil))

	all, err := store.All()
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "second", all["docs/a.xml"].Root.Children()[0].Children()[0].TextContent())
}
