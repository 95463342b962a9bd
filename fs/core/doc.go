// Package core defines the filesystem contract that the bounded reader and
// the file manager are written against.
//
// Providers live in sibling packages:
//
//   - github.com/jmgilman/go/fsops/fs/billy - local disk and in-memory (go-billy)
//   - github.com/jmgilman/go/fsops/fs/minio - S3-compatible object storage
//
// # Interface Hierarchy
//
// FS is composed of five sub-interfaces:
//
//   - ReadFS: Open, Stat, ReadDir, ReadFile, Exists
//   - WriteFS: Create, OpenFile, WriteFile, Mkdir, MkdirAll
//   - ManageFS: Remove, RemoveAll, Rename
//   - WalkFS: Walk
//   - ChrootFS: Chroot
//
// Optional capabilities are discovered with type assertions: AccessFS on
// providers, and io.Seeker, io.ReaderAt, Truncater and Syncer on files.
//
// # Usage Example
//
//	func Archive(filesystem core.FS, name string) error {
//	    return core.CopyFile(filesystem, filesystem, path.Join("Documents", name), path.Join("Library", name))
//	}
//
// Paths are opaque slash-separated strings relative to the provider root.
package core
