package cmd

import (
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/utils"
)

// listedEntry is one line of tree output.
type listedEntry struct {
	path       string
	entry      objects.TreeEntry
	objectType objects.ObjectType
}

// resolveEntryType peeks at the referenced object's header to learn its type.
// A missing object falls back to the type implied by the entry mode.
func resolveEntryType(store *objects.ObjectStore, entry objects.TreeEntry) (objects.ObjectType, error) {
	objectType, err := store.ReadType(entry.Hash().String())
	if errors.Is(err, objects.ErrObjectNotFound) {
		if entry.IsDirectory() {
			return objects.TreeObjectType, nil
		}
		return objects.BlobObjectType, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve entry %s: %w", entry.Name(), err)
	}
	return objectType, nil
}

// collectEntries lists a tree's entries, descending into subtrees when recursive.
// Recursive listings report only non-tree entries, with paths relative to the top tree.
func collectEntries(store *objects.ObjectStore, tree *objects.Tree, prefix string, recursive bool) ([]listedEntry, error) {
	var listed []listedEntry

	for _, entry := range tree.Entries() {
		objectType, err := resolveEntryType(store, entry)
		if err != nil {
			return nil, err
		}
		entryPath := path.Join(prefix, entry.Name())

		if recursive && objectType == objects.TreeObjectType {
			subtree, err := readTree(store, entry.Hash().String())
			if err != nil {
				return nil, fmt.Errorf("failed to read subtree %s: %w", entryPath, err)
			}
			children, err := collectEntries(store, subtree, entryPath, recursive)
			if err != nil {
				return nil, err
			}
			listed = append(listed, children...)
			continue
		}

		listed = append(listed, listedEntry{path: entryPath, entry: entry, objectType: objectType})
	}

	return listed, nil
}

// readTree reads hash and requires it to be a tree.
func readTree(store *objects.ObjectStore, hash string) (*objects.Tree, error) {
	obj, err := store.ReadObject(hash)
	if err != nil {
		return nil, err
	}

	tree, ok := obj.(*objects.Tree)
	if !ok {
		return nil, fmt.Errorf("object %s is a %s, not a tree", hash, obj.Type())
	}
	return tree, nil
}

// printEntries writes "<mode> <type> <hash>\t<path>" lines, or bare paths when nameOnly.
func printEntries(out io.Writer, listed []listedEntry, nameOnly bool) {
	for _, l := range listed {
		if nameOnly {
			fmt.Fprintln(out, l.path)
			continue
		}
		fmt.Fprintf(out, "%s %s %s\t%s\n",
			utils.PadMode(string(l.entry.Mode())), l.objectType, l.entry.Hash(), l.path)
	}
}
