package cli

import (
	"context"
	"embed"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/chainguard-dev/clog"
	"github.com/spf13/cobra"

	"github.com/jmgilman/go/fsops/errors"
	"github.com/jmgilman/go/fsops/fileops"
	"github.com/jmgilman/go/fsops/fs/billy"
	"github.com/jmgilman/go/fsops/fs/core"
	"github.com/jmgilman/go/fsops/fs/minio"
)

//go:embed seed
var seed embed.FS

const (
	seedRoot    = "seed"
	welcomeName = "welcome.txt"

	karmaText  = "We were talking\nAbout the space\nBetween us all"
	dharmaText = "And the people\nWho hide themselves\nBehind a wall"
)

type demoOptions struct {
	offsets []int64
}

func (a *app) demoCmd() *cobra.Command {
	opts := &demoOptions{}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the file handling walkthrough",
		Long: `Write karma.txt and dharma.txt to documents, read dharma.txt in 48 byte
windows, move a seeded inbox file into documents and list the result.

Failures are printed as diagnostic reports and do not stop the walkthrough.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runDemo(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Int64SliceVar(&opts.offsets, "offsets", []int64{0, 1}, "Offsets to read dharma.txt at")

	return cmd
}

func (a *app) runDemo(ctx context.Context, w io.Writer, opts *demoOptions) error {
	log := clog.FromContext(ctx)
	m := a.files

	if err := m.Init(); err != nil {
		return err
	}
	if err := a.seed(ctx); err != nil {
		return fmt.Errorf("failed to seed inbox: %w", err)
	}

	fmt.Fprintf(w, "path: %s\n", a.location(fileops.Documents))

	file := m.File("dharma.txt", fileops.Documents)
	if err := m.WriteFile(file.Dir(), "karma.txt", karmaText); err != nil {
		return err
	}
	if err := file.Write(dharmaText); err != nil {
		return err
	}

	for _, offset := range opts.offsets {
		text, ok, err := file.Read(offset)
		switch {
		case err != nil:
			handle(ctx, w, err)
		case !ok:
			fmt.Fprintln(w, nilText)
		default:
			fmt.Fprintln(w, text)
		}
	}

	welcome := m.File(welcomeName, fileops.Inbox)
	if ok, _ := m.Exists(fileops.Inbox, welcomeName); ok {
		if err := welcome.MoveTo(fileops.Documents); err != nil {
			handle(ctx, w, err)
		}
	}

	names, err := m.List(fileops.Documents, "*.txt")
	if err != nil {
		handle(ctx, w, err)
	} else {
		fmt.Fprintf(w, "documents: %s\n", strings.Join(names, ", "))
	}

	if attrs, err := m.Attributes(fileops.Documents, "karma.txt"); err != nil {
		handle(ctx, w, err)
	} else {
		fmt.Fprintln(w, attrs.String())
	}

	// Nothing was written to temp, so this reports a Delete failure.
	if err := m.File(file.Name(), fileops.Temp).Delete(); err != nil {
		handle(ctx, w, err)
	}

	log.Info("demo finished")
	return nil
}

// seed copies the embedded inbox files unless a previous run already did.
func (a *app) seed(ctx context.Context) error {
	for _, dir := range []fileops.Directory{fileops.Inbox, fileops.Documents} {
		ok, err := a.files.Exists(dir, welcomeName)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	clog.FromContext(ctx).Debug("seeding inbox")
	return core.CopyTree(seed, a.files.FS(), seedRoot)
}

// location describes where dir lives for the configured backend.
func (a *app) location(dir fileops.Directory) string {
	switch fsys := a.files.FS().(type) {
	case *billy.LocalFS:
		return filepath.Join(fsys.Root(), filepath.FromSlash(string(dir)))
	case *minio.RemoteFS:
		return "s3://" + path.Join(a.cfg.MinIO.Bucket, fsys.Prefix(), string(dir))
	default:
		return string(dir)
	}
}

// handle prints the diagnostic report for err and logs it.
func handle(ctx context.Context, w io.Writer, err error) {
	clog.FromContext(ctx).Warn("operation failed", "error", err)
	fmt.Fprint(w, errors.Format(err))
}
