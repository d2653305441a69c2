package objects

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/KostasZigo/gitodb/internal/constants"
)

// newTestStore creates an ObjectStore over a fresh objects directory.
func newTestStore(t *testing.T, opts ...StoreOption) *ObjectStore {
	t.Helper()

	root := filepath.Join(t.TempDir(), constants.GitodbDir, constants.Objects)
	if err := os.MkdirAll(root, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create objects directory: %v", err)
	}

	return NewObjectStore(root, opts...)
}

// repeatedHash returns a 20-byte hash filled with b.
func repeatedHash(b byte) []byte {
	return bytes.Repeat([]byte{b}, constants.HashByteLength)
}

// createTreeEntry creates tree entry and fails test on error.
func createTreeEntry(t *testing.T, mode FileMode, name string, hash []byte) TreeEntry {
	t.Helper()

	entry, err := NewTreeEntry(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry: %v", err)
	}

	return entry
}

// assertTreeEntryEqual verifies two tree entries match.
func assertTreeEntryEqual(t *testing.T, actual, expected TreeEntry) {
	t.Helper()

	if actual.Name() != expected.Name() {
		t.Errorf("Entry name mismatch: expected %s, got %s", expected.Name(), actual.Name())
	}
	if actual.Hash() != expected.Hash() {
		t.Errorf("Entry hash mismatch: expected %s, got %s", expected.Hash(), actual.Hash())
	}
	if actual.Mode() != expected.Mode() {
		t.Errorf("Entry mode mismatch: expected %s, got %s", expected.Mode(), actual.Mode())
	}
}

// assertEntriesEqual verifies two entry lists match in length and order.
func assertEntriesEqual(t *testing.T, actual, expected []TreeEntry) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("Expected %d entries, got %d", len(expected), len(actual))
	}
	for i := range expected {
		assertTreeEntryEqual(t, actual[i], expected[i])
	}
}

// mustDeserialize decodes data and fails test on error.
func mustDeserialize(t *testing.T, data []byte) Object {
	t.Helper()

	obj, err := Deserialize(data)
	if err != nil {
		t.Fatalf("Failed to deserialize %q: %v", data, err)
	}

	return obj
}

// mustWrite stores data and fails test on error.
func mustWrite(t *testing.T, store *ObjectStore, data []byte) string {
	t.Helper()

	hash, err := store.Write(data)
	if err != nil {
		t.Fatalf("Failed to write object: %v", err)
	}

	return hash
}
