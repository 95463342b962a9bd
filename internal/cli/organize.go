package cli

import (
	"fmt"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsops/fileops"
)

func (a *app) renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename DIR OLD NEW",
		Short: "Rename a file inside its directory",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			if err := a.files.RenameFile(dir, args[1], args[2]); err != nil {
				return err
			}
			clog.FromContext(cmd.Context()).Info("renamed file", "from", args[1], "to", args[2])
			return nil
		},
	}
}

func (a *app) moveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "move NAME FROM TO",
		Short: "Move a file to another directory",
		Example: `  # Move an incoming file into documents
  fsops move dharma.txt inbox documents`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dirPair(args[1], args[2])
			if err != nil {
				return err
			}
			if err := a.files.MoveFile(args[0], from, to); err != nil {
				return err
			}
			clog.FromContext(cmd.Context()).Info("moved file", "name", args[0], "from", from, "to", to)
			return nil
		},
	}
}

func (a *app) copyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "copy NAME FROM TO",
		Short: "Copy a file to another directory",
		Long: `Copy NAME from one directory to another. The copy is named NAME with "1"
appended; the new name is printed.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, to, err := dirPair(args[1], args[2])
			if err != nil {
				return err
			}
			name, err := a.files.CopyFile(args[0], from, to)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}

func (a *app) extCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ext DIR NAME EXT",
		Short: "Change the extension of a file",
		Long: `Replace the extension of NAME with EXT and print the new name. A leading
dot on EXT is optional; an empty EXT removes the extension.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			name, err := a.files.ChangeExtension(dir, args[1], args[2])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), name)
			return err
		},
	}
}

func dirPair(from, to string) (fileops.Directory, fileops.Directory, error) {
	src, err := fileops.ParseDirectory(from)
	if err != nil {
		return "", "", err
	}
	dst, err := fileops.ParseDirectory(to)
	if err != nil {
		return "", "", err
	}
	return src, dst, nil
}
