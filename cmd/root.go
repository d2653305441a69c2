package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitodb/internal/repository"
)

// rootCmd defines the base command for the gitodb CLI.
// All subcommands (init, hash-object, cat-file, etc.) register under this root.
// Uses cobra for command parsing, flag handling, and help generation.
var rootCmd = &cobra.Command{
	Use:   "gitodb",
	Short: "A content-addressable blob and tree object database",
	Long: `gitodb stores files as content-addressed objects the way git's loose object
database does: blobs and trees, zlib-compressed, under their SHA-1 id.`,
	PersistentPreRun: setupLogging,
}

var (
	gitDirFlag  string
	verboseFlag bool
)

// logLevel is shared by the installed handler so the repository config can
// adjust it once loaded.
var logLevel = new(slog.LevelVar)

func init() {
	rootCmd.PersistentFlags().StringVar(&gitDirFlag, "git-dir", "", "Path to the .gitodb directory (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command and handles exit codes.
// Called from main.go to start CLI execution.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setupLogging installs a text handler on stderr. --verbose forces debug level.
func setupLogging(cmd *cobra.Command, _ []string) {
	if verboseFlag {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}

	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: logLevel})
	slog.SetDefault(slog.New(handler))
}

// openRepository opens the repository named by --git-dir, or the one
// enclosing the working directory.
func openRepository() (*repository.Repository, error) {
	dir := gitDirFlag
	if dir == "" {
		found, err := repository.Discover(".")
		if err != nil {
			return nil, err
		}
		dir = found
	}

	repo, err := repository.Open(dir)
	if err != nil {
		return nil, err
	}

	if !verboseFlag {
		logLevel.Set(repo.Config.LogLevel)
	}
	slog.Debug("Opened repository", "path", repo.Dir)

	return repo, nil
}
