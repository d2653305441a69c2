package objects

import (
	"fmt"
	"os"
)

// Blob holds an opaque byte payload.
type Blob struct {
	content []byte
}

// NewBlob wraps content. The slice is copied so later caller writes do not leak in.
func NewBlob(content []byte) *Blob {
	c := make([]byte, len(content))
	copy(c, content)
	return &Blob{content: c}
}

func NewBlobFromFile(filepath string) (*Blob, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filepath, err)
	}
	return &Blob{content: content}, nil
}

func (b *Blob) Type() ObjectType {
	return BlobObjectType
}

func (b *Blob) Content() []byte {
	return b.content
}

func (b *Blob) Size() int {
	return len(b.content)
}

func (b *Blob) String() string {
	return fmt.Sprintf("Blob{size: %d bytes}", b.Size())
}

func (*Blob) object() {}
