package cmd

import (
	"github.com/spf13/cobra"
)

var lsTreeCmd = &cobra.Command{
	Use:   "ls-tree [-r] [--name-only] <tree>",
	Short: "List the contents of a tree object",
	Long: `List the entries of a tree object as "<mode> <type> <id>\t<name>".
Each entry's type is read from the header of the object it references.
With -r, subtrees are expanded and only their non-tree entries are shown.`,
	SilenceUsage: true,
	Args:         exactArgs(1, "tree"),
	RunE:         runLsTree,
}

var (
	recurseFlag  bool
	nameOnlyFlag bool
)

func init() {
	rootCmd.AddCommand(lsTreeCmd)

	lsTreeCmd.Flags().BoolVarP(&recurseFlag, "recursive", "r", false, "Recurse into sub-trees")
	lsTreeCmd.Flags().BoolVar(&nameOnlyFlag, "name-only", false, "List only entry names")
}

func runLsTree(cmd *cobra.Command, args []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}
	store := repo.ObjectStore()

	tree, err := readTree(store, args[0])
	if err != nil {
		return err
	}

	listed, err := collectEntries(store, tree, "", recurseFlag)
	if err != nil {
		return err
	}

	printEntries(cmd.OutOrStdout(), listed, nameOnlyFlag)
	return nil
}
