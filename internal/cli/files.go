package cli

import (
	"fmt"
	"io"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsops/fileops"
)

// nilText is printed when a bounded read falls outside the file.
const nilText = "Returned nil."

func (a *app) writeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "write DIR NAME [CONTENT]",
		Short: "Create or replace a file",
		Long: `Write CONTENT to NAME in DIR. Without CONTENT the text is read from stdin.

DIR is one of documents, inbox, library or temp.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}

			var content string
			if len(args) == 3 {
				content = args[2]
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				content = string(data)
			}

			if err := a.files.WriteFile(dir, args[1], content); err != nil {
				return err
			}
			clog.FromContext(cmd.Context()).Info("wrote file", "path", a.files.Path(dir, args[1]))
			return nil
		},
	}
}

func (a *app) readCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read DIR NAME",
		Short: "Print a whole file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			text, err := a.files.ReadFile(dir, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), text)
			return err
		},
	}
}

type readBytesOptions struct {
	length int64
	offset int64
}

func (a *app) readBytesCmd() *cobra.Command {
	opts := &readBytesOptions{}

	cmd := &cobra.Command{
		Use:   "read-bytes DIR NAME",
		Short: "Print a byte window of a file",
		Long: `Print LENGTH bytes of NAME starting at OFFSET.

A window that extends past the end of the file is not an error: "Returned nil."
is printed instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			text, ok, err := a.files.ReadBytes(dir, args[1], opts.length, opts.offset)
			if err != nil {
				return err
			}
			if !ok {
				text = nilText
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
			return err
		},
	}

	cmd.Flags().Int64VarP(&opts.length, "length", "n", fileops.DefaultWindow, "Number of bytes to read")
	cmd.Flags().Int64VarP(&opts.offset, "offset", "o", 0, "Byte offset to start reading at")

	return cmd
}

func (a *app) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete DIR NAME",
		Short: "Delete a file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			if err := a.files.DeleteFile(dir, args[1]); err != nil {
				return err
			}
			clog.FromContext(cmd.Context()).Info("deleted file", "path", a.files.Path(dir, args[1]))
			return nil
		},
	}
}
