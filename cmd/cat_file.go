package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KostasZigo/gitodb/internal/objects"
)

var catFileCmd = &cobra.Command{
	Use:   "cat-file (-p | -t | -s | -e) <object>",
	Short: "Provide content, type or size information for an object",
	Long: `Read an object from the object store by its id.

  -p  pretty-print: raw content for blobs, one line per entry for trees
  -t  print the object type
  -s  print the payload size in bytes
  -e  exit with zero status if the object exists and is valid`,
	SilenceUsage: true,
	Args:         exactArgs(1, "object"),
	RunE:         runCatFile,
}

var (
	prettyFlag bool
	typeFlag   bool
	sizeFlag   bool
	existFlag  bool
)

func init() {
	rootCmd.AddCommand(catFileCmd)

	catFileCmd.Flags().BoolVarP(&prettyFlag, "pretty", "p", false, "Pretty-print the object content")
	catFileCmd.Flags().BoolVarP(&typeFlag, "type", "t", false, "Show the object type")
	catFileCmd.Flags().BoolVarP(&sizeFlag, "size", "s", false, "Show the object size")
	catFileCmd.Flags().BoolVarP(&existFlag, "exists", "e", false, "Check that the object exists")
	catFileCmd.MarkFlagsMutuallyExclusive("pretty", "type", "size", "exists")
	catFileCmd.MarkFlagsOneRequired("pretty", "type", "size", "exists")
}

func runCatFile(cmd *cobra.Command, args []string) error {
	hash := args[0]

	repo, err := openRepository()
	if err != nil {
		return err
	}
	store := repo.ObjectStore()
	out := cmd.OutOrStdout()

	switch {
	case existFlag:
		// The header must decode, not just the file exist.
		_, _, err := store.ReadHeader(hash)
		return err

	case typeFlag:
		objectType, err := store.ReadType(hash)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, objectType)
		return nil

	case sizeFlag:
		_, size, err := store.ReadHeader(hash)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, size)
		return nil
	}

	obj, err := store.ReadObject(hash)
	if err != nil {
		return err
	}

	switch o := obj.(type) {
	case *objects.Blob:
		_, err = out.Write(o.Content())
		return err
	case *objects.Tree:
		listed, err := collectEntries(store, o, "", false)
		if err != nil {
			return err
		}
		printEntries(out, listed, false)
		return nil
	default:
		return errors.New("unsupported object")
	}
}
