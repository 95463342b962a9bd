package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jmgilman/go/fsops/fileops"
)

type listOptions struct {
	pattern   string
	recursive bool
}

func (a *app) listCmd() *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:   "list DIR",
		Short: "List the entries of a directory",
		Example: `  # Text files in documents
  fsops list documents --pattern '*.txt'

  # Every file below documents, including the inbox
  fsops list documents --recursive --pattern '**/*.{txt,md}'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}

			var names []string
			if opts.recursive {
				pattern := opts.pattern
				if pattern == "" {
					pattern = "**"
				}
				names, err = a.files.Find(dir, pattern)
			} else {
				names, err = a.files.List(dir, opts.pattern)
			}
			if err != nil {
				return err
			}

			for _, name := range names {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), name); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&opts.pattern, "pattern", "p", "", "Only list names matching the glob pattern")
	cmd.Flags().BoolVarP(&opts.recursive, "recursive", "r", false, "List files in subdirectories as well")

	return cmd
}

func (a *app) attrsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "attrs DIR NAME",
		Short: "Print the attributes of a file as JSON",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := fileops.ParseDirectory(args[0])
			if err != nil {
				return err
			}
			attrs, err := a.files.Attributes(dir, args[1])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), attrs.String())
			return err
		},
	}
}

func (a *app) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML",
		Long: `Print the configuration after merging fsops.yaml, FSOPS_* environment
variables and flags. The secret key is masked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(a.cfg.Redacted()); err != nil {
				return fmt.Errorf("failed to encode config: %w", err)
			}
			return enc.Close()
		},
	}
}
