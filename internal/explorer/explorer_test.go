package explorer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvai/classdesk/internal/catalog"
)

func testTree() []catalog.FileItem {
	return []catalog.FileItem{
		{
			ID: "f1", Name: "我的收藏", Kind: catalog.FileKindFolder,
			Children: []catalog.FileItem{
				{
					ID: "f1-a", Name: "竞赛", Kind: catalog.FileKindFolder,
					Children: []catalog.FileItem{
						{ID: "f1-a-1", Name: "真题.pdf", Kind: catalog.FileKindFile, Category: catalog.CategoryTestPaper},
					},
				},
				{ID: "f1-1", Name: "奥数竞赛重点.pptx", Kind: catalog.FileKindFile, Category: catalog.CategoryPPT},
			},
		},
		{ID: "file1", Name: "个人错题集.pdf", Kind: catalog.FileKindFile, Category: catalog.CategoryTestPaper},
	}
}

func ids(items []catalog.FileItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestListRoot(t *testing.T) {
	e := New(testTree())
	assert.Equal(t, []string{"f1", "file1"}, ids(e.List()))
}

func TestNavigateInto(t *testing.T) {
	e := New(testTree())
	root := e.List()

	require.NoError(t, e.NavigateInto(root[0]))
	assert.Equal(t, []string{"f1-a", "f1-1"}, ids(e.List()))

	require.NoError(t, e.NavigateInto(e.List()[0]))
	assert.Equal(t, []string{"f1-a-1"}, ids(e.List()))
	assert.Equal(t, 2, e.Depth())
}

func TestNavigateIntoFileFails(t *testing.T) {
	e := New(testTree())
	err := e.NavigateInto(e.List()[1])
	assert.ErrorIs(t, err, ErrNotFolder)
	assert.Equal(t, 0, e.Depth())
}

func TestJumpTo(t *testing.T) {
	tests := []struct {
		name      string
		index     int
		wantDepth int
		wantList  []string
	}{
		{"root", -1, 0, []string{"f1", "file1"}},
		{"first crumb", 0, 1, []string{"f1-a", "f1-1"}},
		{"current crumb", 1, 2, []string{"f1-a-1"}},
		{"past end", 5, 2, []string{"f1-a-1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(testTree())
			require.NoError(t, e.NavigateInto(e.List()[0]))
			require.NoError(t, e.NavigateInto(e.List()[0]))

			e.JumpTo(tt.index)
			assert.Equal(t, tt.wantDepth, e.Depth())
			assert.Equal(t, tt.wantList, ids(e.List()))
		})
	}
}

func TestListUnknownFolderIsEmpty(t *testing.T) {
	e := New(testTree())
	require.NoError(t, e.NavigateInto(catalog.FileItem{ID: "gone", Kind: catalog.FileKindFolder}))
	assert.Empty(t, e.List())
}

func TestFindDepthFirst(t *testing.T) {
	e := New(testTree())

	item, ok := e.Find("f1-a-1")
	require.True(t, ok)
	assert.Equal(t, "真题.pdf", item.Name)

	_, ok = e.Find("missing")
	assert.False(t, ok)
}

func TestResetAndPathCopy(t *testing.T) {
	e := New(testTree())
	require.NoError(t, e.NavigateInto(e.List()[0]))

	p := e.Path()
	p[0].Name = "changed"
	assert.Equal(t, "我的收藏", e.Path()[0].Name)

	e.Reset()
	assert.Empty(t, e.Path())
}
