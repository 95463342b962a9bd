package core

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Providers fail with *fs.PathError values wrapping the io/fs sentinels.
// The aliases let callers match them without importing io/fs.
var (
	ErrNotExist   = fs.ErrNotExist
	ErrExist      = fs.ErrExist
	ErrPermission = fs.ErrPermission
	ErrClosed     = fs.ErrClosed
)

// ErrUnsupported marks an operation or flag a provider cannot honor, such as
// O_APPEND on object storage or copying a directory with CopyFile.
var ErrUnsupported = errors.New("operation not supported")

// Unsupported returns a *fs.PathError for op on name that wraps
// ErrUnsupported. A non-empty detail names the rejected flag or mode.
func Unsupported(op, name, detail string) error {
	err := ErrUnsupported
	if detail != "" {
		err = fmt.Errorf("%w: %s", ErrUnsupported, detail)
	}
	return &fs.PathError{Op: op, Path: name, Err: err}
}

// writeFlags open a destination for a full rewrite.
const writeFlags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
