package billy

import (
	"io"
	"io/fs"

	"github.com/go-git/go-billy/v5"

	"github.com/jmgilman/go/fsops/fs/core"
)

// File wraps billy.File to implement core.File.
// The name is stored because billy backends disagree on what Name returns,
// and the filesystem is kept to answer Stat.
type File struct {
	file billy.File
	fs   billy.Basic
	name string
}

// Read implements io.Reader.
func (f *File) Read(p []byte) (int, error) {
	return f.file.Read(p)
}

// Write implements io.Writer.
func (f *File) Write(p []byte) (int, error) {
	return f.file.Write(p)
}

// Close implements io.Closer.
func (f *File) Close() error {
	return f.file.Close()
}

// Stat implements fs.File.Stat through the owning filesystem, since
// billy.File has no Stat of its own.
func (f *File) Stat() (fs.FileInfo, error) {
	return f.fs.Stat(f.name)
}

// Name returns the name provided to Open/Create.
func (f *File) Name() string {
	return f.name
}

// Seek implements io.Seeker.
func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.file.Seek(offset, whence)
}

// ReadAt implements io.ReaderAt. It does not move the file offset.
func (f *File) ReadAt(p []byte, off int64) (int, error) {
	return f.file.ReadAt(p, off)
}

// Truncate implements core.Truncater.
func (f *File) Truncate(size int64) error {
	return f.file.Truncate(size)
}

// Sync implements core.Syncer. It is a no-op for backends without Sync,
// such as memfs.
func (f *File) Sync() error {
	if syncer, ok := f.file.(interface{ Sync() error }); ok {
		return syncer.Sync()
	}
	return nil
}

// Compile-time interface checks.
var (
	_ core.File      = (*File)(nil)
	_ io.Seeker      = (*File)(nil)
	_ io.ReaderAt    = (*File)(nil)
	_ core.Truncater = (*File)(nil)
	_ core.Syncer    = (*File)(nil)
)
