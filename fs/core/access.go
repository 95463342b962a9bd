package core

import (
	"errors"
	"io/fs"
)

// AccessFS is an optional provider capability answering whether the current
// process may read or write a path.
//
//	if afs, ok := filesystem.(AccessFS); ok {
//	    ok, err := afs.Writable("Documents/karma.txt")
//	}
type AccessFS interface {
	// Readable reports whether the named file can be opened for reading.
	Readable(name string) (bool, error)

	// Writable reports whether the named file can be opened for writing.
	Writable(name string) (bool, error)
}

// Readable reports whether name can be read from fsys.
//
// Providers implementing AccessFS answer directly. For other providers the
// file is opened and closed again. A missing file yields (false, nil).
func Readable(fsys ReadFS, name string) (bool, error) {
	if afs, ok := fsys.(AccessFS); ok {
		return afs.Readable(name)
	}

	f, err := fsys.Open(name)
	if err != nil {
		return accessResult(err)
	}
	return true, f.Close()
}

// Writable reports whether name can be written in fsys.
//
// Providers implementing AccessFS answer directly. For other providers the
// owner write bit of the file mode decides. A missing file yields
// (false, nil).
func Writable(fsys ReadFS, name string) (bool, error) {
	if afs, ok := fsys.(AccessFS); ok {
		return afs.Writable(name)
	}

	info, err := fsys.Stat(name)
	if err != nil {
		return accessResult(err)
	}
	return info.Mode().Perm()&0o200 != 0, nil
}

func accessResult(err error) (bool, error) {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false, nil
	}
	return false, err
}
