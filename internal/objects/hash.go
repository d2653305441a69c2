package objects

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/KostasZigo/gitodb/internal/constants"
)

// ObjectID is the raw 20-byte SHA-1 identifier of an object's canonical serialization.
type ObjectID [constants.HashByteLength]byte

// ComputeID hashes data exactly as given, header included.
func ComputeID(data []byte) ObjectID {
	return ObjectID(sha1.Sum(data))
}

// ParseID decodes a 40-character hex identifier. Input is case-insensitive.
func ParseID(s string) (ObjectID, error) {
	var id ObjectID
	if len(s) != constants.HashStringLength {
		return id, fmt.Errorf("%w: %q has %d characters, want %d", ErrInvalidID, s, len(s), constants.HashStringLength)
	}
	if _, err := hex.Decode(id[:], []byte(strings.ToLower(s))); err != nil {
		return id, fmt.Errorf("%w: %q: %v", ErrInvalidID, s, err)
	}
	return id, nil
}

// String returns the 40-character lowercase hex form.
func (id ObjectID) String() string {
	return hex.EncodeToString(id[:])
}

// Bytes returns a copy of the raw identifier.
func (id ObjectID) Bytes() []byte {
	out := make([]byte, len(id))
	copy(out, id[:])
	return out
}

func (id ObjectID) IsZero() bool {
	return id == ObjectID{}
}
