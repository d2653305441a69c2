package objects

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the codec and the object store.
// Callers inspect them with errors.Is; the structured errors below also match.
var (
	// ErrMalformedObject reports a header without NUL or space, or a non-numeric length.
	ErrMalformedObject = errors.New("malformed object")

	// ErrLengthMismatch reports a header length that differs from the payload length.
	ErrLengthMismatch = errors.New("object length mismatch")

	// ErrUnknownObjectType reports a header tag other than blob or tree.
	ErrUnknownObjectType = errors.New("unknown object type")

	// ErrMalformedEntry reports a tree entry record that cannot be segmented.
	ErrMalformedEntry = errors.New("malformed tree entry")

	// ErrInvalidHashLength reports a tree entry hash that is not exactly 20 bytes.
	ErrInvalidHashLength = errors.New("invalid hash length")

	// ErrInvalidEntry reports an empty mode or name, or one containing a forbidden byte.
	ErrInvalidEntry = errors.New("invalid tree entry")

	// ErrInvalidID reports an identifier that is not 40 hexadecimal characters.
	ErrInvalidID = errors.New("invalid object id")

	// ErrObjectNotFound reports that no file exists at the derived object path.
	ErrObjectNotFound = errors.New("object not found")

	// ErrStoreIO reports an underlying filesystem or compression failure.
	ErrStoreIO = errors.New("object store i/o error")
)

// LengthMismatchError carries both sides of a failed length check.
type LengthMismatchError struct {
	Declared int
	Actual   int
}

func (e *LengthMismatchError) Error() string {
	return fmt.Sprintf("%s: header declares %d bytes, payload has %d", ErrLengthMismatch, e.Declared, e.Actual)
}

func (e *LengthMismatchError) Is(target error) bool {
	return target == ErrLengthMismatch
}

// UnknownTypeError carries the unrecognized header tag.
type UnknownTypeError struct {
	Tag string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownObjectType, e.Tag)
}

func (e *UnknownTypeError) Is(target error) bool {
	return target == ErrUnknownObjectType
}

// storeError wraps an underlying failure so that it matches both ErrStoreIO
// and the original cause.
func storeError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreIO, op, err)
}
