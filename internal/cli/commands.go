// Package cli implements the fsops command line.
package cli

import (
	"log/slog"

	"github.com/chainguard-dev/clog"
	"github.com/chainguard-dev/clog/slag"
	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmgilman/go/fsops/fileops"
	"github.com/jmgilman/go/fsops/internal/config"
)

// globalOptions holds flags that apply to all commands.
type globalOptions struct {
	configFile string
	logLevel   slag.Level
	quiet      bool
	verbose    int
}

// app carries the state shared by the commands of one invocation.
type app struct {
	opts  globalOptions
	v     *viper.Viper
	cfg   *config.Config
	files *fileops.Manager
}

// viperFlags are persistent flags that override config keys of the same name.
var viperFlags = []string{"backend", "root", "decode"}

// New returns the root command.
func New() *cobra.Command {
	a := &app{v: config.NewViper()}

	cmd := &cobra.Command{
		Use:   "fsops",
		Short: "Manage application files with categorized error reports",
		Long: `fsops writes, reads, moves and inspects files in the documents, inbox,
library and temp directories of a local, in-memory or S3-compatible store.

Failures are printed as diagnostic reports naming the failed operation,
the reason and the call site.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.opts.configFile, "config", "c", "", "Config file (default: ./fsops.yaml if present)")
	pf.String("backend", string(config.BackendLocal), "Storage backend: local, memory or minio")
	pf.String("root", ".", "Directory the local backend is rooted at")
	pf.String("decode", "strict", "Handling of invalid UTF-8: strict or lossy")
	pf.Var(&a.opts.logLevel, "log-level", "Log level: debug, info, warn or error (overrides log.level)")
	pf.BoolVarP(&a.opts.quiet, "quiet", "q", false, "Print less information")
	pf.CountVarP(&a.opts.verbose, "verbose", "v", "Print more information (can be specified twice)")
	for _, key := range viperFlags {
		_ = a.v.BindPFlag(key, pf.Lookup(key))
	}

	cmd.AddCommand(a.writeCmd())
	cmd.AddCommand(a.readCmd())
	cmd.AddCommand(a.readBytesCmd())
	cmd.AddCommand(a.deleteCmd())
	cmd.AddCommand(a.renameCmd())
	cmd.AddCommand(a.moveCmd())
	cmd.AddCommand(a.copyCmd())
	cmd.AddCommand(a.extCmd())
	cmd.AddCommand(a.listCmd())
	cmd.AddCommand(a.attrsCmd())
	cmd.AddCommand(a.demoCmd())
	cmd.AddCommand(a.configCmd())

	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(a.v, a.opts.configFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = a.opts.logLevel.String()
	}
	a.cfg = cfg

	base, _ := cfg.LogLevel()
	level := slag.Level(base)
	// Adjust log level based on verbose/quiet flags
	if a.opts.quiet {
		level = slag.Level(slog.LevelError)
	} else if a.opts.verbose > 0 {
		if a.opts.verbose == 1 {
			level = slag.Level(slog.LevelDebug)
		} else {
			level = slag.Level(slog.LevelDebug - 1)
		}
	}

	slog.SetDefault(slog.New(charmlog.NewWithOptions(cmd.ErrOrStderr(), charmlog.Options{
		ReportTimestamp: true,
		Level:           charmlog.Level(level),
	})))

	ctx := clog.WithLogger(cmd.Context(), clog.New(slog.Default().Handler()).With("backend", cfg.Backend))
	cmd.SetContext(ctx)

	fsys, err := cfg.Open(ctx)
	if err != nil {
		return err
	}
	policy, _ := cfg.DecodePolicy()
	a.files = fileops.New(fsys,
		fileops.WithDecodePolicy(policy),
		fileops.WithLogger(slog.Default()),
	)

	clog.FromContext(ctx).Debug("configured filesystem", "root", cfg.Root, "decode", policy)
	return nil
}
