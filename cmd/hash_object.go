package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitodb/internal/objects"
)

var hashObjectCmd = &cobra.Command{
	Use:   "hash-object [-w] (--stdin | <filepath>)",
	Short: "Compute object hash and optionally create and store a blob from a file",
	Long: `Compute the object id (SHA-1 hash) of a blob holding a file's content.
Optionally write the blob into the object store.

Examples:
  # Compute hash without storing
  gitodb hash-object myfile.txt

  # Compute hash and store in .gitodb/objects
  gitodb hash-object -w myfile.txt

  # Hash standard input
  echo hello | gitodb hash-object --stdin`,
	SilenceUsage: true,
	Args:         hashObjectArgs,
	RunE:         runHashObject,
}

var (
	writeFlag bool
	stdinFlag bool
)

func init() {
	rootCmd.AddCommand(hashObjectCmd)

	hashObjectCmd.Flags().BoolVarP(&writeFlag, "write", "w", false, "Write the object into the object store")
	hashObjectCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read the object content from standard input")
}

// hashObjectArgs requires a file path unless --stdin is given.
func hashObjectArgs(cmd *cobra.Command, args []string) error {
	if stdinFlag {
		return exactArgs(0, "content is read from stdin")(cmd, args)
	}
	return exactArgs(1, "filepath")(cmd, args)
}

// runHashObject computes hash and optionally stores blob object.
func runHashObject(cmd *cobra.Command, args []string) error {
	blob, err := readBlob(cmd, args)
	if err != nil {
		return err
	}
	data := objects.Serialize(blob)

	hash := objects.ComputeID(data).String()
	if writeFlag {
		repo, err := openRepository()
		if err != nil {
			return err
		}

		hash, err = repo.ObjectStore().Write(data)
		if err != nil {
			return fmt.Errorf("failed to store object: %w", err)
		}
	}

	fmt.Fprintln(cmd.OutOrStdout(), hash)
	return nil
}

func readBlob(cmd *cobra.Command, args []string) (*objects.Blob, error) {
	if stdinFlag {
		content, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return objects.NewBlob(content), nil
	}
	return objects.NewBlobFromFile(args[0])
}
