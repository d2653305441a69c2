package objects

// ObjectType is the tag written at the start of every object header.
type ObjectType string

const (
	BlobObjectType ObjectType = "blob"
	TreeObjectType ObjectType = "tree"
)

func (ot ObjectType) IsValid() bool {
	switch ot {
	case BlobObjectType, TreeObjectType:
		return true
	default:
		return false
	}
}

// Object is a stored object: a *Blob or a *Tree.
// The set of implementations is closed; codec switches handle exactly those two.
type Object interface {
	// Type returns the header tag for the object kind.
	Type() ObjectType

	// Content returns the payload that follows the header.
	// Format of the full object: "<type> <size>\0<content>"
	Content() []byte

	object()
}
