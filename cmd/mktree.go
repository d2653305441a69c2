package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitodb/internal/objects"
)

var mktreeCmd = &cobra.Command{
	Use:   "mktree [--missing]",
	Short: "Build a tree object from ls-tree formatted text",
	Long: `Read "<mode> <type> <id>\t<name>" lines from standard input, write the
tree they describe into the object store and print its id.

Entries are sorted into canonical order before the tree is written, so the
output of ls-tree fed back to mktree reproduces the original tree id.`,
	SilenceUsage: true,
	Args:         exactArgs(0, "entries are read from stdin"),
	RunE:         runMktree,
}

var missingFlag bool

func init() {
	rootCmd.AddCommand(mktreeCmd)

	mktreeCmd.Flags().BoolVar(&missingFlag, "missing", false, "Allow entries that reference objects not in the store")
}

func runMktree(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	store := repo.ObjectStore()

	entries, err := readTreeEntries(cmd, store)
	if err != nil {
		return err
	}

	hash, err := store.WriteObject(objects.NewTree(objects.SortEntries(entries)))
	if err != nil {
		return fmt.Errorf("failed to store tree: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

// readTreeEntries parses stdin into entries. Blank lines are skipped.
func readTreeEntries(cmd *cobra.Command, store *objects.ObjectStore) ([]objects.TreeEntry, error) {
	var entries []objects.TreeEntry
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		entry, declared, err := parseTreeLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if seen[entry.Name()] {
			return nil, fmt.Errorf("line %d: duplicate entry name %q", lineNo, entry.Name())
		}
		seen[entry.Name()] = true

		if !missingFlag {
			if err := checkReferencedObject(store, entry, declared); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}

	return entries, nil
}

// parseTreeLine parses "<mode> <type> <id>\t<name>".
func parseTreeLine(line string) (objects.TreeEntry, objects.ObjectType, error) {
	meta, name, ok := strings.Cut(line, "\t")
	if !ok {
		return objects.TreeEntry{}, "", fmt.Errorf("missing tab before name in %q", line)
	}

	fields := strings.Fields(meta)
	if len(fields) != 3 {
		return objects.TreeEntry{}, "", fmt.Errorf("expected \"<mode> <type> <id>\", got %q", meta)
	}

	declared := objects.ObjectType(fields[1])
	if !declared.IsValid() {
		return objects.TreeEntry{}, "", &objects.UnknownTypeError{Tag: fields[1]}
	}

	mode := objects.FileMode(fields[0])
	if mode.IsDirectory() {
		mode = objects.ModeDirectory
	}

	entry, err := objects.NewTreeEntryFromID(mode, name, fields[2])
	if err != nil {
		return objects.TreeEntry{}, "", err
	}
	return entry, declared, nil
}

// checkReferencedObject requires the entry's object to exist with the declared type.
func checkReferencedObject(store *objects.ObjectStore, entry objects.TreeEntry, declared objects.ObjectType) error {
	actual, err := store.ReadType(entry.Hash().String())
	if err != nil {
		return fmt.Errorf("entry %s: %w", entry.Name(), err)
	}
	if actual != declared {
		return fmt.Errorf("entry %s: object %s is a %s, not a %s", entry.Name(), entry.Hash(), actual, declared)
	}
	return nil
}
