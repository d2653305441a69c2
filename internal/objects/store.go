package objects

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"

	"github.com/KostasZigo/gitodb/internal/constants"
)

// ObjectStore manages loose objects under root/<2 hex chars>/<38 hex chars>.
// Each file is the zlib-compressed canonical serialization of one object.
type ObjectStore struct {
	root  string // Path to the objects directory itself
	level int
}

type StoreOption func(*ObjectStore)

// WithCompressionLevel sets the zlib level used on write (-1 through 9).
func WithCompressionLevel(level int) StoreOption {
	return func(store *ObjectStore) {
		store.level = level
	}
}

// NewObjectStore creates a store rooted at an existing objects directory.
func NewObjectStore(root string, opts ...StoreOption) *ObjectStore {
	store := &ObjectStore{
		root:  root,
		level: zlib.DefaultCompression,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (store *ObjectStore) Root() string {
	return store.root
}

// ObjectPath returns root/ab/cdef... for the given id.
func (store *ObjectStore) ObjectPath(id ObjectID) string {
	hex := id.String()
	return filepath.Join(store.root, hex[:constants.HashDirPrefixLength], hex[constants.HashDirPrefixLength:])
}

// Write hashes data as given, compresses it and stores it under the derived path.
// An existing file for the same id is replaced; its content is identical by construction.
func (store *ObjectStore) Write(data []byte) (string, error) {
	id := ComputeID(data)
	objectFile := store.ObjectPath(id)
	objectDir := filepath.Dir(objectFile)

	if err := ensureDir(objectDir); err != nil {
		return "", storeError("create object directory", err)
	}

	compressedData, err := store.compressObject(data)
	if err != nil {
		return "", storeError("compress object", err)
	}

	if err := replaceFile(objectDir, objectFile, compressedData); err != nil {
		return "", storeError("write object file", err)
	}

	slog.Debug("Stored object",
		"hash", id.String(),
		"path", objectFile,
		"bytes", len(data),
		"compressed", len(compressedData))

	return id.String(), nil
}

// WriteObject serializes and stores obj.
func (store *ObjectStore) WriteObject(obj Object) (string, error) {
	return store.Write(Serialize(obj))
}

// ensureDir creates dir if needed. An existing directory is success; a missing
// parent (the store root itself) is an error.
func ensureDir(dir string) error {
	err := os.Mkdir(dir, constants.DirPerms)
	if err == nil || !errors.Is(err, fs.ErrExist) {
		return err
	}

	info, statErr := os.Stat(dir)
	if statErr != nil {
		return statErr
	}
	if !info.IsDir() {
		return fmt.Errorf("%s exists and is not a directory", dir)
	}
	return nil
}

// replaceFile writes data to a temp file in dir and renames it over target.
func replaceFile(dir, target string, data []byte) error {
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, constants.ObjectPerms); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}

func (store *ObjectStore) compressObject(data []byte) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, store.level)
	if err != nil {
		return nil, err
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, err
	}

	// Close flushes buffered data and writes the adler-32 trailer
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

// Read returns the decompressed serialization stored under hash.
// hash is accepted in either case.
func (store *ObjectStore) Read(hash string) ([]byte, error) {
	id, reader, err := store.open(hash)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, storeError(fmt.Sprintf("decompress object %s", id), err)
	}

	if actual := ComputeID(data); actual != id {
		return nil, fmt.Errorf("%w: object %s: content hashes to %s", ErrStoreIO, id, actual)
	}

	slog.Debug("Read object",
		"hash", id.String(),
		"bytes", len(data))

	return data, nil
}

// ReadObject reads and decodes the object stored under hash.
func (store *ObjectStore) ReadObject(hash string) (Object, error) {
	data, err := store.Read(hash)
	if err != nil {
		return nil, err
	}

	obj, err := Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("object %s: %w", hash, err)
	}
	return obj, nil
}

// ReadHeader decompresses only the header of the object stored under hash
// and returns its type and declared payload size.
func (store *ObjectStore) ReadHeader(hash string) (ObjectType, int, error) {
	id, reader, err := store.open(hash)
	if err != nil {
		return "", 0, err
	}
	defer reader.Close()

	// A clean end of stream inside the limit is fine; a truncated one is not.
	buf, err := io.ReadAll(io.LimitReader(reader, constants.MaxHeaderLength))
	if err != nil {
		return "", 0, storeError(fmt.Sprintf("decompress object %s", id), err)
	}

	objectType, err := PeekType(buf)
	if err != nil {
		return "", 0, fmt.Errorf("object %s: %w", id, err)
	}
	_, size, err := ParseHeader(buf)
	if err != nil {
		return "", 0, fmt.Errorf("object %s: %w", id, err)
	}
	return objectType, size, nil
}

// ReadType returns the type tag of the object stored under hash without
// decompressing its payload.
func (store *ObjectStore) ReadType(hash string) (ObjectType, error) {
	objectType, _, err := store.ReadHeader(hash)
	return objectType, err
}

// Exists checks if an object exists in storage
func (store *ObjectStore) Exists(hash string) bool {
	id, err := ParseID(hash)
	if err != nil {
		return false
	}
	_, err = os.Stat(store.ObjectPath(id))
	return err == nil
}

// open returns a decompressing reader over the object file. Closing it closes the file.
func (store *ObjectStore) open(hash string) (ObjectID, io.ReadCloser, error) {
	id, err := ParseID(hash)
	if err != nil {
		return id, nil, err
	}

	objectFile := store.ObjectPath(id)
	file, err := os.Open(objectFile)
	if errors.Is(err, fs.ErrNotExist) {
		return id, nil, fmt.Errorf("%w: %s", ErrObjectNotFound, id)
	}
	if err != nil {
		return id, nil, storeError(fmt.Sprintf("open object %s", id), err)
	}

	reader, err := zlib.NewReader(file)
	if err != nil {
		file.Close()
		return id, nil, storeError(fmt.Sprintf("decompress object %s", id), err)
	}

	return id, &objectReader{ReadCloser: reader, file: file}, nil
}

type objectReader struct {
	io.ReadCloser
	file *os.File
}

func (r *objectReader) Close() error {
	err := r.ReadCloser.Close()
	if fileErr := r.file.Close(); err == nil {
		err = fileErr
	}
	return err
}
