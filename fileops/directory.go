package fileops

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Directory is one of the well-known application directories. Its value is
// the path of the directory below the filesystem root.
type Directory string

const (
	// Documents holds user-visible files.
	Documents Directory = "Documents"

	// Inbox receives incoming files. It lives inside Documents.
	Inbox Directory = "Documents/Inbox"

	// Library holds application support files.
	Library Directory = "Library"

	// Temp holds scratch files.
	Temp Directory = "tmp"
)

// ErrUnknownDirectory is wrapped when an operation names a directory that
// is not one of Directories().
var ErrUnknownDirectory = stderrors.New("unknown directory")

// Directories returns the well-known directories in creation order.
func Directories() []Directory {
	return []Directory{Documents, Inbox, Library, Temp}
}

// Valid reports whether d is a well-known directory.
func (d Directory) Valid() bool {
	switch d {
	case Documents, Inbox, Library, Temp:
		return true
	default:
		return false
	}
}

// Label returns the short name used on the command line.
func (d Directory) Label() string {
	switch d {
	case Documents:
		return "documents"
	case Inbox:
		return "inbox"
	case Library:
		return "library"
	case Temp:
		return "temp"
	default:
		return string(d)
	}
}

// ParseDirectory accepts a label ("inbox"), a path ("Documents/Inbox") or
// "tmp", ignoring case.
func ParseDirectory(s string) (Directory, error) {
	s = strings.TrimSpace(s)
	for _, d := range Directories() {
		if strings.EqualFold(s, d.Label()) || strings.EqualFold(s, string(d)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w %q (want documents, inbox, library or temp)", ErrUnknownDirectory, s)
}
