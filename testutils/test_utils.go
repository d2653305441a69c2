package testutils

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zlib"

	"github.com/KostasZigo/gitodb/internal/constants"
)

// RandomBytes generates n random bytes
func RandomBytes(n int) []byte {
	b := make([]byte, n)
	rand.Read(b)
	return b
}

// RandomString generates a random hex string of n bytes
func RandomString(n int) string {
	return hex.EncodeToString(RandomBytes(n))
}

// RandomHash generates a random 40-character SHA-1 hash
func RandomHash() string {
	return RandomString(constants.HashByteLength)
}

// ObjectsDir returns the objects directory of a repository rooted at repoPath.
func ObjectsDir(repoPath string) string {
	return filepath.Join(repoPath, constants.GitodbDir, constants.Objects)
}

// ObjectPath returns the loose object path for a hex hash inside repoPath.
func ObjectPath(repoPath, hash string) string {
	return filepath.Join(ObjectsDir(repoPath), hash[:constants.HashDirPrefixLength], hash[constants.HashDirPrefixLength:])
}

// SetupTestRepoWithGitodbDir creates a temporary directory with .gitodb/objects structure.
// This is useful for tests that need the repository structure but not full initialization.
func SetupTestRepoWithGitodbDir(t *testing.T) string {
	t.Helper()

	repoPath := t.TempDir()
	if err := os.MkdirAll(ObjectsDir(repoPath), constants.DirPerms); err != nil {
		t.Fatalf("Failed to create %s/%s: %v", constants.GitodbDir, constants.Objects, err)
	}

	return repoPath
}

// SetupTestRepoWithConfig creates .gitodb/objects plus a config file with the given content.
func SetupTestRepoWithConfig(t *testing.T, config string) string {
	t.Helper()

	repoPath := SetupTestRepoWithGitodbDir(t)
	configPath := filepath.Join(repoPath, constants.GitodbDir, constants.ConfigFile)
	if err := os.WriteFile(configPath, []byte(config), constants.FilePerms); err != nil {
		t.Fatalf("Failed to create %s file: %v", constants.ConfigFile, err)
	}

	return repoPath
}

// CreateTestFile creates a file with given content in the specified directory.
// Returns the full path to the created file.
func CreateTestFile(t *testing.T, dir, filename string, content []byte) string {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	if err := os.WriteFile(filePath, content, constants.FilePerms); err != nil {
		t.Fatalf("Failed to create test file %s: %v", filename, err)
	}

	return filePath
}

// DecompressFile reads a zlib-compressed file and returns its inflated bytes.
func DecompressFile(t *testing.T, path string) []byte {
	t.Helper()

	compressedData, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read object file: %v", err)
	}

	reader, err := zlib.NewReader(bytes.NewReader(compressedData))
	if err != nil {
		t.Fatalf("Failed to create zlib reader: %v", err)
	}
	defer reader.Close()

	var buffer bytes.Buffer
	if _, err := buffer.ReadFrom(reader); err != nil {
		t.Fatalf("Failed to read decompressed data: %v", err)
	}

	return buffer.Bytes()
}

// AssertFileExists checks that a file exists at the given path.
// Fails the test if the file doesn't exist.
func AssertFileExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected file to exist at %s", path)
	}
}

// AssertFileNotExists checks that a file does NOT exist at the given path.
// Fails the test if the file exists.
func AssertFileNotExists(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to NOT exist at %s", path)
	}
}

// AssertDirExists checks that a directory exists at the given path.
// Fails the test if the directory doesn't exist.
func AssertDirExists(t *testing.T, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Expected directory to exist at %s", path)
		return
	}
	if err != nil {
		t.Errorf("Failed to stat directory %s: %v", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("Expected %s to be a directory, but it's a file", path)
	}
}

// AssertRepositoryStructure validates the .gitodb directory structure:
// objects/ exists and config is present.
func AssertRepositoryStructure(t *testing.T, repoPath string) {
	t.Helper()

	gitodbDir := filepath.Join(repoPath, constants.GitodbDir)
	AssertDirExists(t, gitodbDir)
	AssertDirExists(t, filepath.Join(gitodbDir, constants.Objects))
	AssertFileExists(t, filepath.Join(gitodbDir, constants.ConfigFile))
}
