package core

import (
	"io"
	"io/fs"
)

// FSType represents the underlying type of filesystem implementation.
type FSType int

const (
	// FSTypeUnknown indicates the filesystem type is unknown or unspecified.
	FSTypeUnknown FSType = iota
	// FSTypeLocal indicates a disk-backed filesystem.
	FSTypeLocal
	// FSTypeMemory indicates an in-memory filesystem.
	FSTypeMemory
	// FSTypeRemote indicates object storage reached over the network.
	FSTypeRemote
)

// String returns a string representation of the FSType.
func (t FSType) String() string {
	switch t {
	case FSTypeLocal:
		return "local"
	case FSTypeMemory:
		return "memory"
	case FSTypeRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// FS is the full provider contract used by the file manager.
// It embeds fs.FS so providers can be handed to io/fs helpers directly.
type FS interface {
	fs.FS
	ReadFS
	WriteFS
	ManageFS
	WalkFS
	ChrootFS

	// Type returns the underlying filesystem type.
	Type() FSType
}

// ReadFS defines read-only filesystem operations.
// A bounded reader only needs this subset.
type ReadFS interface {
	// Open opens the named file for reading.
	// The returned file should be closed when no longer needed. Callers can
	// type-assert to io.Seeker or io.ReaderAt for random access.
	Open(name string) (fs.File, error)

	// Stat returns file metadata.
	// If there is an error, it will be of type *fs.PathError.
	Stat(name string) (fs.FileInfo, error)

	// ReadDir returns the entries of the named directory sorted by filename.
	ReadDir(name string) ([]fs.DirEntry, error)

	// ReadFile reads the named file and returns its contents.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether the named file or directory exists.
	// A false result with a non-nil error means existence could not be
	// determined.
	Exists(name string) (bool, error)
}

// WriteFS defines write operations.
//
// Not all providers support all OpenFile flags. Providers document which
// flags they accept.
type WriteFS interface {
	// Create creates or truncates the named file for writing.
	Create(name string) (File, error)

	// OpenFile opens a file with the specified flags and permissions.
	OpenFile(name string, flag int, perm fs.FileMode) (File, error)

	// WriteFile writes data to the named file, creating it if necessary
	// and truncating it otherwise.
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Mkdir creates a single directory. The parent must exist.
	Mkdir(name string, perm fs.FileMode) error

	// MkdirAll creates a directory along with any necessary parents.
	// It is a no-op when the directory already exists.
	MkdirAll(path string, perm fs.FileMode) error
}

// ManageFS defines file and directory management operations.
type ManageFS interface {
	// Remove removes the named file or empty directory.
	Remove(name string) error

	// RemoveAll removes path and any children it contains.
	// A missing path is not an error.
	RemoveAll(path string) error

	// Rename renames (moves) oldpath to newpath.
	// Object storage providers implement this as copy followed by delete.
	Rename(oldpath, newpath string) error
}

// WalkFS defines directory tree traversal.
type WalkFS interface {
	// Walk walks the tree rooted at root in lexical order, calling walkFn for
	// each file or directory including root.
	Walk(root string, walkFn fs.WalkDirFunc) error
}

// ChrootFS defines the ability to create scoped filesystem views.
type ChrootFS interface {
	// Chroot returns a filesystem whose operations are relative to dir.
	Chroot(dir string) (FS, error)
}

// File represents an open file handle.
// File extends fs.File with io.Writer.
type File interface {
	fs.File

	io.Writer

	// Name returns the name of the file as provided to Open or Create.
	Name() string
}

// Optional File capabilities (use type assertions):
//
// - io.Seeker: Seek(offset int64, whence int) (int64, error)
// - io.ReaderAt: ReadAt(p []byte, off int64) (n int, err error)
// - Truncater: Truncate(size int64) error
// - Syncer: Sync() error

// Truncater allows truncating a file to a specified size.
//
//	if t, ok := file.(Truncater); ok {
//	    err := t.Truncate(size)
//	}
type Truncater interface {
	// Truncate changes the size of the file without moving the offset.
	Truncate(size int64) error
}

// Syncer allows syncing file contents to stable storage.
//
// In-memory providers implement Sync as a no-op.
type Syncer interface {
	Sync() error
}
