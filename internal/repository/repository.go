package repository

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KostasZigo/gitodb/internal/config"
	"github.com/KostasZigo/gitodb/internal/constants"
	"github.com/KostasZigo/gitodb/internal/objects"
)

// Repository is an opened .gitodb directory with its settings loaded.
type Repository struct {
	// Dir is the .gitodb metadata directory.
	Dir    string
	Config *config.Config
}

// InitRepository creates .gitodb/objects and a default config under path.
func InitRepository(path string) error {
	// Resolves and adds OS specific separator
	gitodbDir := filepath.Join(path, constants.GitodbDir)

	if err := checkRepositoryDoesNotExist(gitodbDir); err != nil {
		return err
	}

	// Track if initialization of gitodb directories and files was successful.
	// If it was not, the deferred clean-up removes whatever got created.
	var initSuccess bool
	defer func() {
		if !initSuccess {
			cleanupRepository(gitodbDir)
		}
	}()

	directories := []string{
		gitodbDir,
		filepath.Join(gitodbDir, constants.Objects),
	}

	for _, directory := range directories {
		if err := os.MkdirAll(directory, constants.DirPerms); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", directory, err)
		}
	}

	if err := config.Default(filepath.Join(gitodbDir, constants.ConfigFile)).Save(); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	initSuccess = true
	return nil
}

func checkRepositoryDoesNotExist(path string) error {
	_, err := os.Stat(path)

	// If path doesn't exist there is no error
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("failed to check repository path: %w", err)
	}

	return fmt.Errorf("repository already exists at %s", path)
}

// Removes the entire .gitodb directory if it exists
func cleanupRepository(gitodbDir string) {
	if _, err := os.Stat(gitodbDir); err == nil {
		slog.Debug("Cleaning up partial repository initialization",
			"path", gitodbDir)

		if err := os.RemoveAll(gitodbDir); err != nil {
			slog.Warn("Failed to cleanup repository directory",
				"path", gitodbDir,
				"error", err)
		} else {
			slog.Debug("Successfully cleaned up repository directory",
				"path", gitodbDir)
		}
	}
}

// Discover locates the .gitodb directory by walking up from start.
func Discover(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	for {
		gitodbPath := filepath.Join(dir, constants.GitodbDir)
		if info, err := os.Stat(gitodbPath); err == nil && info.IsDir() {
			return gitodbPath, nil
		}

		// Dir returns all but the last element of path
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root without finding .gitodb
			return "", fmt.Errorf("%s directory not found", constants.GitodbDir)
		}
		dir = parent
	}
}

// Open loads the repository rooted at an existing .gitodb directory.
func Open(gitodbDir string) (*Repository, error) {
	info, err := os.Stat(gitodbDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %s: %w", gitodbDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("failed to open repository %s: not a directory", gitodbDir)
	}

	cfg, err := config.Load(filepath.Join(gitodbDir, constants.ConfigFile))
	if err != nil {
		return nil, err
	}

	return &Repository{
		Dir:    gitodbDir,
		Config: cfg,
	}, nil
}

// ObjectsDir returns the store root passed to the object store.
func (repo *Repository) ObjectsDir() string {
	return filepath.Join(repo.Dir, constants.Objects)
}

// ObjectStore returns a store over the repository's objects directory using
// the configured compression level.
func (repo *Repository) ObjectStore() *objects.ObjectStore {
	return objects.NewObjectStore(repo.ObjectsDir(),
		objects.WithCompressionLevel(repo.Config.Compression))
}
