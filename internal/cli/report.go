package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chainguard-dev/clog"

	"github.com/jmgilman/go/fsops/errors"
)

// PrintError writes the diagnostic report for err to w. The full error
// chain is only logged at debug level.
func PrintError(ctx context.Context, w io.Writer, err error) {
	if err == nil {
		return
	}
	clog.FromContext(ctx).Debug("command failed", "error", err)
	text := errors.Format(err)
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	fmt.Fprint(w, text)
}
