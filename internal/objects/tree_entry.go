package objects

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/KostasZigo/gitodb/internal/constants"
)

type FileMode string

// Well-known modes. Trees may carry any other mode string as long as it
// holds no space or NUL.
const (
	ModeRegularFile FileMode = "100644" // Regular non-executable file
	ModeExecutable  FileMode = "100755" // Executable file
	ModeSymlink     FileMode = "120000" // Symbolic link
	ModeDirectory   FileMode = "40000"  // Directory (tree), as git writes it
	ModeSubmodule   FileMode = "160000" // Git submodule

	// modeDirectoryPadded is the zero-padded form some tools print.
	modeDirectoryPadded FileMode = "040000"
)

func (m FileMode) IsDirectory() bool {
	return m == ModeDirectory || m == modeDirectoryPadded
}

// TreeEntry is one record of a tree: mode, name and the raw id of the referenced object.
type TreeEntry struct {
	mode FileMode
	name string
	hash ObjectID
}

// NewTreeEntry validates and builds an entry. hash must be exactly 20 raw bytes.
func NewTreeEntry(mode FileMode, name string, hash []byte) (TreeEntry, error) {
	if len(hash) != constants.HashByteLength {
		return TreeEntry{}, fmt.Errorf("%w: got %d bytes, want %d", ErrInvalidHashLength, len(hash), constants.HashByteLength)
	}
	if err := validateEntry(mode, name); err != nil {
		return TreeEntry{}, err
	}
	return TreeEntry{
		mode: mode,
		name: name,
		hash: ObjectID(hash),
	}, nil
}

// NewTreeEntryFromID builds an entry referencing a hex identifier.
func NewTreeEntryFromID(mode FileMode, name string, id string) (TreeEntry, error) {
	oid, err := ParseID(id)
	if err != nil {
		return TreeEntry{}, err
	}
	return NewTreeEntry(mode, name, oid[:])
}

func validateEntry(mode FileMode, name string) error {
	switch {
	case mode == "":
		return fmt.Errorf("%w: empty mode", ErrInvalidEntry)
	case strings.ContainsAny(string(mode), " \x00"):
		return fmt.Errorf("%w: mode %q contains a space or NUL", ErrInvalidEntry, mode)
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidEntry)
	case strings.IndexByte(name, constants.NullByte) >= 0:
		return fmt.Errorf("%w: name %q contains NUL", ErrInvalidEntry, name)
	}
	return nil
}

func (e TreeEntry) Mode() FileMode {
	return e.mode
}

func (e TreeEntry) Name() string {
	return e.name
}

func (e TreeEntry) Hash() ObjectID {
	return e.hash
}

func (e TreeEntry) IsDirectory() bool {
	return e.mode.IsDirectory()
}

func (e TreeEntry) IsExecutable() bool {
	return e.mode == ModeExecutable
}

// MarshalEntry encodes one record:
// <mode> <name>\0<20-byte binary SHA>
func MarshalEntry(e TreeEntry) []byte {
	buf := make([]byte, 0, len(e.mode)+len(e.name)+2+constants.HashByteLength)
	buf = append(buf, e.mode...)
	buf = append(buf, constants.SpaceByte)
	buf = append(buf, e.name...)
	buf = append(buf, constants.NullByte)
	buf = append(buf, e.hash[:]...)
	return buf
}

// UnmarshalEntry decodes exactly one record. The last 20 bytes are the hash,
// the byte before them terminates the name.
func UnmarshalEntry(record []byte) (TreeEntry, error) {
	space := bytes.IndexByte(record, constants.SpaceByte)
	if space < 0 {
		return TreeEntry{}, fmt.Errorf("%w: no space after mode", ErrMalformedEntry)
	}

	nameEnd := len(record) - constants.HashByteLength - 1
	if nameEnd <= space {
		return TreeEntry{}, fmt.Errorf("%w: record of %d bytes leaves no room for a name", ErrMalformedEntry, len(record))
	}
	if record[nameEnd] != constants.NullByte {
		return TreeEntry{}, fmt.Errorf("%w: name is not NUL terminated", ErrMalformedEntry)
	}

	mode := FileMode(record[:space])
	name := string(record[space+1 : nameEnd])
	if err := validateEntry(mode, name); err != nil {
		return TreeEntry{}, fmt.Errorf("%w: %w", ErrMalformedEntry, err)
	}

	return TreeEntry{
		mode: mode,
		name: name,
		hash: ObjectID(record[nameEnd+1:]),
	}, nil
}

// parseEntries splits a tree payload into records. Entry count is not stored,
// so each record ends 20 bytes past the next NUL.
func parseEntries(payload []byte) ([]TreeEntry, error) {
	var entries []TreeEntry

	offset := 0
	for offset < len(payload) {
		nul := bytes.IndexByte(payload[offset:], constants.NullByte)
		if nul < 0 {
			return nil, fmt.Errorf("%w: entry at offset %d has no name terminator", ErrMalformedEntry, offset)
		}

		end := offset + nul + 1 + constants.HashByteLength
		if end > len(payload) {
			return nil, fmt.Errorf("%w: entry at offset %d truncated (%d of %d hash bytes)",
				ErrMalformedEntry, offset, len(payload)-(offset+nul+1), constants.HashByteLength)
		}

		entry, err := UnmarshalEntry(payload[offset:end])
		if err != nil {
			return nil, fmt.Errorf("entry at offset %d: %w", offset, err)
		}
		entries = append(entries, entry)
		offset = end
	}

	return entries, nil
}
