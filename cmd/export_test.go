package cmd

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/KostasZigo/gitodb/internal/objects"
	"github.com/KostasZigo/gitodb/testutils"
)

// createTestRootCmd creates a fresh root command carrying the global flags and
// the given subcommand. Flag values left over from earlier runs are reset.
func createTestRootCmd(cmd *cobra.Command) *cobra.Command {
	testRootCmd := &cobra.Command{
		Use:              "gitodb",
		PersistentPreRun: setupLogging,
	}
	testRootCmd.PersistentFlags().AddFlagSet(rootCmd.PersistentFlags())
	resetFlags(testRootCmd.PersistentFlags())

	resetCommand(cmd)
	testRootCmd.AddCommand(cmd)
	return testRootCmd
}

func resetCommand(cmd *cobra.Command) {
	resetFlags(cmd.Flags())
	if cmd.Runnable() {
		cmd.SilenceUsage = true
	}
	for _, sub := range cmd.Commands() {
		resetCommand(sub)
	}
}

func resetFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

// captureStdout returns command stdout output as string.
func captureStdout(cmd *cobra.Command) *bytes.Buffer {
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	return &stdout
}

// captureStderr returns command stderr output as string.
func captureStderr(cmd *cobra.Command) *bytes.Buffer {
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	return &stderr
}

// runCommand executes cmd under a fresh root with args and stdin, returning stdout.
func runCommand(t *testing.T, cmd *cobra.Command, stdin string, args ...string) (string, error) {
	t.Helper()

	testRootCmd := createTestRootCmd(cmd)
	stdout := captureStdout(testRootCmd)
	captureStderr(testRootCmd)
	testRootCmd.SetIn(strings.NewReader(stdin))
	testRootCmd.SetArgs(args)

	err := testRootCmd.Execute()
	return stdout.String(), err
}

// changeToRepoDir changes working directory to repo path and registers cleanup.
func changeToRepoDir(t *testing.T, repoPath string) {
	t.Helper()

	oldDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}

	if err := os.Chdir(repoPath); err != nil {
		t.Fatalf("Failed to change to directory %s: %v", repoPath, err)
	}

	t.Cleanup(func() {
		os.Chdir(oldDir)
	})
}

// storeObject writes obj into the repository at repoPath and returns its id.
func storeObject(t *testing.T, repoPath string, obj objects.Object) string {
	t.Helper()

	hash, err := objects.NewObjectStore(testutils.ObjectsDir(repoPath)).WriteObject(obj)
	if err != nil {
		t.Fatalf("Failed to store %s: %v", obj.Type(), err)
	}
	return hash
}

// mustEntry builds a tree entry referencing a hex id.
func mustEntry(t *testing.T, mode objects.FileMode, name, hash string) objects.TreeEntry {
	t.Helper()

	entry, err := objects.NewTreeEntryFromID(mode, name, hash)
	if err != nil {
		t.Fatalf("Failed to create tree entry %s: %v", name, err)
	}
	return entry
}
