package billy

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"

	"github.com/jmgilman/go/fsops/fs/core"
)

// LocalFS adapts billy's osfs to core.FS. All paths are resolved below the
// configured root directory.
type LocalFS struct {
	base
	root string
}

// MemoryFS adapts billy's memfs to core.FS.
type MemoryFS struct {
	base
}

// Option configures filesystem creation.
type Option func(*config)

type config struct {
	root string
}

// WithRoot sets the directory a local filesystem is rooted at.
// Defaults to "/". NewMemory ignores it.
func WithRoot(dir string) Option {
	return func(c *config) {
		c.root = dir
	}
}

func newConfig(opts []Option) config {
	cfg := config{root: "/"}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewLocal creates a go-billy-backed local filesystem.
func NewLocal(opts ...Option) *LocalFS {
	cfg := newConfig(opts)
	return &LocalFS{
		base: base{bfs: osfs.New(cfg.root), openCheck: true},
		root: cfg.root,
	}
}

// NewMemory creates a go-billy-backed in-memory filesystem.
// The filesystem is initially empty.
func NewMemory(_ ...Option) *MemoryFS {
	return &MemoryFS{
		base: base{bfs: memfs.New()},
	}
}

// Root returns the directory the local filesystem is rooted at.
func (lfs *LocalFS) Root() string {
	return lfs.root
}

// Chroot returns a filesystem scoped to the given directory.
func (lfs *LocalFS) Chroot(dir string) (core.FS, error) {
	chrootFS, err := lfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &LocalFS{
		base: base{bfs: chrootFS, openCheck: true},
		root: filepath.Join(lfs.root, normalize(dir)),
	}, nil
}

// Type returns FSTypeLocal.
func (lfs *LocalFS) Type() core.FSType {
	return core.FSTypeLocal
}

// Chroot returns a filesystem scoped to the given directory.
func (mfs *MemoryFS) Chroot(dir string) (core.FS, error) {
	chrootFS, err := mfs.chroot(dir)
	if err != nil {
		return nil, err
	}
	return &MemoryFS{base: base{bfs: chrootFS}}, nil
}

// Type returns FSTypeMemory.
func (mfs *MemoryFS) Type() core.FSType {
	return core.FSTypeMemory
}

// base holds the operations shared by both providers.
type base struct {
	bfs billy.Filesystem

	// openCheck makes access checks open the file instead of trusting
	// mode bits, so the operating system has the final say.
	openCheck bool
}

// Unwrap returns the underlying billy.Filesystem.
func (b *base) Unwrap() billy.Filesystem {
	return b.bfs
}

// normalize converts paths to use forward slashes consistently.
// billy handles containment below the root.
func normalize(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

// dirEntry wraps fs.FileInfo to implement fs.DirEntry.
type dirEntry struct {
	info fs.FileInfo
}

func (d *dirEntry) Name() string               { return d.info.Name() }
func (d *dirEntry) IsDir() bool                { return d.info.IsDir() }
func (d *dirEntry) Type() fs.FileMode          { return d.info.Mode().Type() }
func (d *dirEntry) Info() (fs.FileInfo, error) { return d.info, nil }

func (b *base) wrap(f billy.File, name string) *File {
	return &File{file: f, fs: b.bfs, name: name}
}

// Open opens the named file for reading.
func (b *base) Open(name string) (fs.File, error) {
	name = normalize(name)
	f, err := b.bfs.Open(name)
	if err != nil {
		return nil, err
	}
	return b.wrap(f, name), nil
}

// Stat returns file metadata for the named file.
func (b *base) Stat(name string) (fs.FileInfo, error) {
	return b.bfs.Stat(normalize(name))
}

// ReadDir returns the entries of the named directory sorted by filename.
func (b *base) ReadDir(name string) ([]fs.DirEntry, error) {
	infos, err := b.bfs.ReadDir(normalize(name))
	if err != nil {
		return nil, err
	}
	entries := make([]fs.DirEntry, len(infos))
	for i, info := range infos {
		entries[i] = &dirEntry{info: info}
	}
	return entries, nil
}

// ReadFile reads the named file and returns its contents.
func (b *base) ReadFile(name string) ([]byte, error) {
	f, err := b.bfs.Open(normalize(name))
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(f)
}

// Exists reports whether the named file or directory exists.
func (b *base) Exists(name string) (bool, error) {
	_, err := b.bfs.Stat(normalize(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// Create creates or truncates the named file for writing.
func (b *base) Create(name string) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.Create(name)
	if err != nil {
		return nil, err
	}
	return b.wrap(f, name), nil
}

// OpenFile opens a file with the specified flags and permissions.
func (b *base) OpenFile(name string, flag int, perm fs.FileMode) (core.File, error) {
	name = normalize(name)
	f, err := b.bfs.OpenFile(name, flag, perm)
	if err != nil {
		return nil, err
	}
	return b.wrap(f, name), nil
}

// WriteFile writes data to the named file, creating it if necessary.
func (b *base) WriteFile(name string, data []byte, perm fs.FileMode) (err error) {
	f, err := b.bfs.OpenFile(normalize(name), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	_, err = f.Write(data)
	return err
}

// Mkdir creates a new directory. The parent must already exist.
func (b *base) Mkdir(name string, perm fs.FileMode) error {
	name = normalize(name)
	if _, err := b.bfs.Stat(name); err == nil {
		return &fs.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}
	parent := filepath.Dir(name)
	if parent != "." && parent != "/" {
		if _, err := b.bfs.Stat(parent); err != nil {
			return err
		}
	}
	return b.bfs.MkdirAll(name, perm)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (b *base) MkdirAll(path string, perm fs.FileMode) error {
	return b.bfs.MkdirAll(normalize(path), perm)
}

// Remove removes the named file or empty directory.
func (b *base) Remove(name string) error {
	return b.bfs.Remove(normalize(name))
}

// RemoveAll removes path and any children it contains.
func (b *base) RemoveAll(path string) error {
	path = normalize(path)
	info, err := b.bfs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if !info.IsDir() {
		return b.bfs.Remove(path)
	}

	entries, err := b.bfs.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := b.RemoveAll(normalize(filepath.Join(path, entry.Name()))); err != nil {
			return err
		}
	}
	return b.bfs.Remove(path)
}

// Rename renames (moves) oldpath to newpath.
func (b *base) Rename(oldpath, newpath string) error {
	return b.bfs.Rename(normalize(oldpath), normalize(newpath))
}

// Walk walks the file tree rooted at root, calling walkFn for each file or
// directory in the tree, including root.
func (b *base) Walk(root string, walkFn fs.WalkDirFunc) error {
	root = normalize(root)
	info, err := b.bfs.Stat(root)
	if err != nil {
		err = walkFn(root, nil, err)
	} else {
		err = b.walk(root, &dirEntry{info: info}, walkFn)
	}
	if errors.Is(err, fs.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}
	return err
}

func (b *base) walk(path string, d fs.DirEntry, walkFn fs.WalkDirFunc) error {
	if err := walkFn(path, d, nil); err != nil || !d.IsDir() {
		if errors.Is(err, fs.SkipDir) && d.IsDir() {
			err = nil
		}
		return err
	}

	entries, err := b.bfs.ReadDir(path)
	if err != nil {
		if err := walkFn(path, d, err); err != nil {
			return err
		}
	}

	for _, entry := range entries {
		newPath := normalize(filepath.Join(path, entry.Name()))
		if err := b.walk(newPath, &dirEntry{info: entry}, walkFn); err != nil {
			if errors.Is(err, fs.SkipDir) {
				continue
			}
			return err
		}
	}
	return nil
}

func (b *base) chroot(dir string) (billy.Filesystem, error) {
	dir = normalize(dir)
	info, err := b.bfs.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &fs.PathError{Op: "chroot", Path: dir, Err: errors.New("not a directory")}
	}
	return b.bfs.Chroot(dir)
}

// Readable reports whether the named file can be opened for reading.
// A missing file yields (false, nil).
func (b *base) Readable(name string) (bool, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return accessResult(err)
	}
	if info.Mode().Perm()&0o444 == 0 {
		return false, nil
	}
	if !b.openCheck || info.IsDir() {
		return true, nil
	}

	f, err := b.bfs.Open(name)
	if err != nil {
		return accessResult(err)
	}
	return true, f.Close()
}

// Writable reports whether the named file can be opened for writing.
// A missing file yields (false, nil).
func (b *base) Writable(name string) (bool, error) {
	name = normalize(name)
	info, err := b.bfs.Stat(name)
	if err != nil {
		return accessResult(err)
	}
	if info.Mode().Perm()&0o222 == 0 {
		return false, nil
	}
	if !b.openCheck || info.IsDir() {
		return true, nil
	}

	f, err := b.bfs.OpenFile(name, os.O_WRONLY, 0)
	if err != nil {
		return accessResult(err)
	}
	return true, f.Close()
}

func accessResult(err error) (bool, error) {
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
		return false, nil
	}
	return false, err
}

// Compile-time interface checks.
var (
	_ core.FS       = (*LocalFS)(nil)
	_ core.FS       = (*MemoryFS)(nil)
	_ core.AccessFS = (*LocalFS)(nil)
	_ core.AccessFS = (*MemoryFS)(nil)
)
