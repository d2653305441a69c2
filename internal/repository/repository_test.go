package repository

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/klauspost/compress/zlib"

	"github.com/KostasZigo/gitodb/internal/config"
	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/testutils"
)

// TestInitRepository verifies successful repository initialization.
func TestInitRepository(t *testing.T) {
	repoPath := t.TempDir()

	if err := InitRepository(repoPath); err != nil {
		t.Fatalf("InitRepository failed: %v", err)
	}

	testutils.AssertRepositoryStructure(t, repoPath)
}

// TestInitRepository_AlreadyExists verifies error when repository exists.
func TestInitRepository_AlreadyExists(t *testing.T) {
	repoPath := t.TempDir()

	// Initialize once
	if err := InitRepository(repoPath); err != nil {
		t.Fatalf("First initialization failed: %v", err)
	}

	// Try to initialize again - should fail
	err := InitRepository(repoPath)
	if err == nil {
		t.Fatal("Expected error when repository already exists, but got nil")
	}
	if !strings.Contains(err.Error(), "repository already exists") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestInitRepository_MkdirAllFailure verifies cleanup on directory creation failure.
func TestInitRepository_MkdirAllFailure(t *testing.T) {
	repoPath := t.TempDir()
	// Mock os.MkdirAll to fail after first call
	mockError := errors.New("mocked mkdir failure")
	callCount := 0
	patches := gomonkey.ApplyFunc(os.MkdirAll, func(path string, perm os.FileMode) error {
		callCount++
		if callCount > 1 {
			return mockError
		}
		// Let first call succeed (creates .gitodb directory)
		return os.Mkdir(path, perm)
	})
	defer patches.Reset()

	err := InitRepository(repoPath)
	if err == nil {
		t.Error("Expected error when os.MkdirAll fails, but got nil")
	}

	if !errors.Is(err, mockError) {
		t.Errorf("Expected error to wrap the mock error, but got: %v", err)
	}

	// Verify cleanup was called
	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.GitodbDir))
}

// TestInitRepository_ConfigSaveFailure verifies cleanup when the config cannot be written.
func TestInitRepository_ConfigSaveFailure(t *testing.T) {
	repoPath := t.TempDir()

	mockError := errors.New("mocked save failure")
	patches := gomonkey.ApplyMethod(&config.Config{}, "Save", func(_ *config.Config) error {
		return mockError
	})
	defer patches.Reset()

	err := InitRepository(repoPath)
	if !errors.Is(err, mockError) {
		t.Fatalf("Expected error to wrap the mock error, but got: %v", err)
	}

	testutils.AssertFileNotExists(t, filepath.Join(repoPath, constants.GitodbDir))
}

// TestDiscover_FromSubdirectory verifies the walk up to the enclosing repository.
func TestDiscover_FromSubdirectory(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithGitodbDir(t)
	nested := filepath.Join(repoPath, "a", "b", "c")
	if err := os.MkdirAll(nested, constants.DirPerms); err != nil {
		t.Fatalf("Failed to create nested directory: %v", err)
	}

	found, err := Discover(nested)
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}

	expected, _ := filepath.Abs(filepath.Join(repoPath, constants.GitodbDir))
	if found != expected {
		t.Errorf("Expected %s, got %s", expected, found)
	}
}

// TestDiscover_NotFound verifies an error outside any repository.
func TestDiscover_NotFound(t *testing.T) {
	_, err := Discover(t.TempDir())
	if err == nil {
		t.Fatal("Expected error outside a repository")
	}
	if !strings.Contains(err.Error(), constants.GitodbDir+" directory not found") {
		t.Errorf("Unexpected error: %v", err)
	}
}

// TestOpen_ObjectStoreUsesConfiguredLevel verifies config reaches the object store.
func TestOpen_ObjectStoreUsesConfiguredLevel(t *testing.T) {
	repoPath := testutils.SetupTestRepoWithConfig(t, "[core]\ncompression = 0\n")

	repo, err := Open(filepath.Join(repoPath, constants.GitodbDir))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if repo.Config.Compression != zlib.NoCompression {
		t.Fatalf("Expected compression 0, got %d", repo.Config.Compression)
	}

	store := repo.ObjectStore()
	if store.Root() != testutils.ObjectsDir(repoPath) {
		t.Errorf("Expected store root %s, got %s", testutils.ObjectsDir(repoPath), store.Root())
	}

	hash, err := store.WriteObject(objects.NewBlob([]byte("hello")))
	if err != nil {
		t.Fatalf("WriteObject failed: %v", err)
	}
	testutils.AssertFileExists(t, testutils.ObjectPath(repoPath, hash))
}

// TestOpen_Missing verifies opening a non-existent directory fails.
func TestOpen_Missing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), constants.GitodbDir)); err == nil {
		t.Error("Expected error for missing repository")
	}
}
