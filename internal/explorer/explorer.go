// Package explorer browses the personal-files tree with a breadcrumb path.
package explorer

import (
	"errors"

	"github.com/vvai/classdesk/internal/catalog"
)

// ErrNotFolder is returned when navigating into a file.
var ErrNotFolder = errors.New("item is not a folder")

// Explorer is a read-only browser over a static file tree.
type Explorer struct {
	root []catalog.FileItem
	path []catalog.FileItem
}

// New creates an Explorer positioned at the root of tree.
func New(tree []catalog.FileItem) *Explorer {
	return &Explorer{root: tree}
}

// List returns the items of the current folder. With an empty path it
// returns the root items; if the current folder no longer resolves the
// listing is empty.
func (e *Explorer) List() []catalog.FileItem {
	if len(e.path) == 0 {
		return append([]catalog.FileItem(nil), e.root...)
	}
	folder, ok := e.Find(e.path[len(e.path)-1].ID)
	if !ok {
		return nil
	}
	return append([]catalog.FileItem(nil), folder.Children...)
}

// NavigateInto appends a folder to the breadcrumb path.
func (e *Explorer) NavigateInto(item catalog.FileItem) error {
	if !item.IsFolder() {
		return ErrNotFolder
	}
	e.path = append(e.path, item)
	return nil
}

// JumpTo truncates the path to index+1 entries. -1 returns to root;
// indexes past the end leave the path unchanged.
func (e *Explorer) JumpTo(index int) {
	switch {
	case index < 0:
		e.path = nil
	case index+1 < len(e.path):
		e.path = e.path[:index+1]
	}
}

// Reset clears the breadcrumb path.
func (e *Explorer) Reset() {
	e.path = nil
}

// Path returns a copy of the breadcrumb path, outermost folder first.
func (e *Explorer) Path() []catalog.FileItem {
	return append([]catalog.FileItem(nil), e.path...)
}

// Depth returns the breadcrumb length.
func (e *Explorer) Depth() int {
	return len(e.path)
}

// Find does a depth-first search of the whole tree by id.
func (e *Explorer) Find(id string) (catalog.FileItem, bool) {
	return find(e.root, id)
}

func find(nodes []catalog.FileItem, id string) (catalog.FileItem, bool) {
	for _, n := range nodes {
		if n.ID == id {
			return n, true
		}
		if len(n.Children) > 0 {
			if found, ok := find(n.Children, id); ok {
				return found, true
			}
		}
	}
	return catalog.FileItem{}, false
}
