package objects

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Tree is a directory listing. Entries keep the order they were given in.
type Tree struct {
	entries []TreeEntry
}

// NewTree creates a tree object from the list of Tree Entries.
// Order is preserved; use SortEntries first for git's canonical order.
func NewTree(treeEntries []TreeEntry) *Tree {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)
	return &Tree{entries: entries}
}

// SortEntries returns a copy of entries in git's tree order:
// - Entries are sorted by name
// - Directory names are treated as if they have a trailing "/" for comparison
func SortEntries(treeEntries []TreeEntry) []TreeEntry {
	entries := make([]TreeEntry, len(treeEntries))
	copy(entries, treeEntries)
	slices.SortStableFunc(entries, compareTreeEntries)
	return entries
}

func compareTreeEntries(a, b TreeEntry) int {
	return strings.Compare(sortableName(a), sortableName(b))
}

func sortableName(entry TreeEntry) string {
	if entry.IsDirectory() {
		return entry.Name() + "/"
	}
	return entry.Name()
}

func (t *Tree) Type() ObjectType {
	return TreeObjectType
}

// Entries returns a copy of the tree entries in order.
func (t *Tree) Entries() []TreeEntry {
	return slices.Clone(t.entries)
}

func (t *Tree) Len() int {
	return len(t.entries)
}

// Content returns the concatenated entry records, e.g.
// 100644 README.md\0[binary SHA for README blob]
// 40000 src\0[binary SHA for src/ tree]
func (t *Tree) Content() []byte {
	var buf bytes.Buffer
	for _, entry := range t.entries {
		buf.Write(MarshalEntry(entry))
	}
	return buf.Bytes()
}

func (t *Tree) Size() int {
	return len(t.Content())
}

// FindEntry finds an entry by name
func (t *Tree) FindEntry(name string) (TreeEntry, bool) {
	for _, entry := range t.entries {
		if entry.Name() == name {
			return entry, true
		}
	}
	return TreeEntry{}, false
}

func (t *Tree) String() string {
	return fmt.Sprintf("Tree{entries: %d}", len(t.entries))
}

func (*Tree) object() {}
