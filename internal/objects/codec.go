package objects

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/KostasZigo/gitodb/internal/constants"
)

// Serialize returns the canonical encoding "<type> <size>\0<content>".
// The object id is the SHA-1 of exactly these bytes.
func Serialize(obj Object) []byte {
	var content []byte
	switch o := obj.(type) {
	case *Blob:
		content = o.Content()
	case *Tree:
		content = o.Content()
	default:
		panic(fmt.Sprintf("objects: unsupported object %T", obj))
	}

	head := header(obj.Type(), len(content))
	data := make([]byte, 0, len(head)+len(content))
	data = append(data, head...)
	return append(data, content...)
}

// Hash computes an object's id without storing it.
func Hash(obj Object) ObjectID {
	return ComputeID(Serialize(obj))
}

func header(objectType ObjectType, size int) []byte {
	h := make([]byte, 0, len(objectType)+22)
	h = append(h, objectType...)
	h = append(h, constants.SpaceByte)
	h = strconv.AppendInt(h, int64(size), 10)
	return append(h, constants.NullByte)
}

// Deserialize decodes a canonical encoding back into a *Blob or *Tree.
// The declared length must equal the payload length.
func Deserialize(data []byte) (Object, error) {
	tag, length, payload, err := splitHeader(data)
	if err != nil {
		return nil, err
	}
	if len(payload) != length {
		return nil, &LengthMismatchError{Declared: length, Actual: len(payload)}
	}

	switch ObjectType(tag) {
	case BlobObjectType:
		return NewBlob(payload), nil
	case TreeObjectType:
		entries, err := parseEntries(payload)
		if err != nil {
			return nil, err
		}
		return &Tree{entries: entries}, nil
	default:
		return nil, &UnknownTypeError{Tag: tag}
	}
}

// ParseHeader reads the type tag and declared length without touching the payload.
// The tag is returned as-is; callers check it with IsValid.
func ParseHeader(data []byte) (ObjectType, int, error) {
	tag, length, _, err := splitHeader(data)
	if err != nil {
		return "", 0, err
	}
	return ObjectType(tag), length, nil
}

// PeekType returns only the type tag of a raw decompressed object.
// data may be just a prefix of the object as long as it holds the whole header.
func PeekType(data []byte) (ObjectType, error) {
	nul := bytes.IndexByte(data, constants.NullByte)
	if nul < 0 {
		return "", fmt.Errorf("%w: no NUL after header", ErrMalformedObject)
	}
	space := bytes.IndexByte(data[:nul], constants.SpaceByte)
	if space < 0 {
		return "", fmt.Errorf("%w: no space in header %q", ErrMalformedObject, data[:nul])
	}

	objectType := ObjectType(data[:space])
	if !objectType.IsValid() {
		return "", &UnknownTypeError{Tag: string(objectType)}
	}
	return objectType, nil
}

func splitHeader(data []byte) (tag string, length int, payload []byte, err error) {
	nul := bytes.IndexByte(data, constants.NullByte)
	if nul < 0 {
		return "", 0, nil, fmt.Errorf("%w: no NUL after header", ErrMalformedObject)
	}
	head, payload := data[:nul], data[nul+1:]

	space := bytes.IndexByte(head, constants.SpaceByte)
	if space < 0 {
		return "", 0, nil, fmt.Errorf("%w: no space in header %q", ErrMalformedObject, head)
	}

	lengthField := string(head[space+1:])
	// Lengths are canonical decimal, without leading zeros.
	if len(lengthField) > 1 && lengthField[0] == '0' {
		return "", 0, nil, fmt.Errorf("%w: length %q has a leading zero", ErrMalformedObject, lengthField)
	}
	n, err := strconv.ParseUint(lengthField, 10, strconv.IntSize-1)
	if err != nil {
		return "", 0, nil, fmt.Errorf("%w: bad length %q", ErrMalformedObject, lengthField)
	}

	return string(head[:space]), int(n), payload, nil
}
