package fileops

import (
	stderrors "errors"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jmgilman/go/fsops/bounded"
	"github.com/jmgilman/go/fsops/errors"
	"github.com/jmgilman/go/fsops/fs/core"
)

// Reasons carried by the reports each operation returns.
const (
	ReasonRead       = bounded.ReasonReadFailed
	ReasonWrite      = "Error during write file."
	ReasonDelete     = "Error during delete file."
	ReasonRename     = "Error during rename file."
	ReasonMove       = "Error during move file."
	ReasonCopy       = "Error during copy file."
	ReasonList       = "Error during list directory."
	ReasonAttributes = "Error during read attributes."
	ReasonAccess     = "Error during access check."
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// ErrInvalidName is wrapped when a file name is empty, "." or "..", or
// contains a path separator.
var ErrInvalidName = stderrors.New("invalid file name")

// Manager performs file operations inside the well-known directories of a
// filesystem. Every failure is an errors.Report whose category names the
// operation, whose cause is the underlying error and whose context carries
// the affected path.
type Manager struct {
	fsys   core.FS
	reader *bounded.Reader
	policy bounded.DecodePolicy
	logger *slog.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithDecodePolicy sets how ReadFile and ReadBytes treat invalid UTF-8.
// Defaults to bounded.DecodeStrict.
func WithDecodePolicy(p bounded.DecodePolicy) Option {
	return func(m *Manager) {
		m.policy = p
	}
}

// New creates a Manager over fsys.
func New(fsys core.FS, opts ...Option) *Manager {
	m := &Manager{
		fsys:   fsys,
		policy: bounded.DecodeStrict,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.reader = bounded.New(fsys, bounded.WithDecodePolicy(m.policy), bounded.WithLogger(m.logger))
	return m
}

// FS returns the underlying filesystem.
func (m *Manager) FS() core.FS {
	return m.fsys
}

// Path returns the path of name inside dir.
func (m *Manager) Path(dir Directory, name string) string {
	return path.Join(string(dir), name)
}

// Init creates every well-known directory.
func (m *Manager) Init() error {
	for _, d := range Directories() {
		if err := m.fsys.MkdirAll(string(d), dirPerm); err != nil {
			return fail(err, errors.CategoryWrite, ReasonWrite, string(d))
		}
	}
	return nil
}

// WriteFile creates or replaces name in dir with content.
func (m *Manager) WriteFile(dir Directory, name, content string) error {
	p, err := m.resolve(dir, name)
	if err != nil {
		return fail(err, errors.CategoryWrite, ReasonWrite, p)
	}
	if err := m.fsys.MkdirAll(string(dir), dirPerm); err != nil {
		return fail(err, errors.CategoryWrite, ReasonWrite, p)
	}
	if err := m.fsys.WriteFile(p, []byte(content), filePerm); err != nil {
		return fail(err, errors.CategoryWrite, ReasonWrite, p)
	}

	m.logger.Debug("wrote file", "path", p, "bytes", len(content))
	return nil
}

// ReadFile returns the whole content of name in dir.
func (m *Manager) ReadFile(dir Directory, name string) (string, error) {
	p, err := m.resolve(dir, name)
	if err != nil {
		return "", fail(err, errors.CategoryRead, ReasonRead, p)
	}

	data, err := m.fsys.ReadFile(p)
	if err != nil {
		return "", fail(err, errors.CategoryRead, ReasonRead, p)
	}
	text, err := bounded.Decode(data, m.policy)
	if err != nil {
		return "", fail(err, errors.CategoryRead, ReasonRead, p)
	}
	return text, nil
}

// ReadBytes reads length bytes of name in dir starting at offset. It
// returns ok == false when the window extends past the end of the file.
func (m *Manager) ReadBytes(dir Directory, name string, length, offset int64) (text string, ok bool, err error) {
	p, err := m.resolve(dir, name)
	if err != nil {
		return "", false, fail(err, errors.CategoryRead, ReasonRead, p)
	}
	return m.reader.ReadBytes(p, length, offset)
}

// DeleteFile removes name from dir. A missing file is an error.
func (m *Manager) DeleteFile(dir Directory, name string) error {
	p, err := m.resolve(dir, name)
	if err != nil {
		return fail(err, errors.CategoryDelete, ReasonDelete, p)
	}
	if err := m.mustExist(p); err != nil {
		return fail(err, errors.CategoryDelete, ReasonDelete, p)
	}
	if err := m.fsys.Remove(p); err != nil {
		return fail(err, errors.CategoryDelete, ReasonDelete, p)
	}

	m.logger.Debug("deleted file", "path", p)
	return nil
}

// RenameFile renames oldName to newName inside dir. The new name must not
// be taken.
func (m *Manager) RenameFile(dir Directory, oldName, newName string) error {
	from, to, err := m.resolvePair(dir, oldName, dir, newName)
	if err != nil {
		return fail(err, errors.CategoryRename, ReasonRename, from, "destination", to)
	}
	if err := m.relocate(from, to); err != nil {
		return fail(err, errors.CategoryRename, ReasonRename, from, "destination", to)
	}

	m.logger.Debug("renamed file", "path", from, "destination", to)
	return nil
}

// MoveFile moves name from one directory to another, keeping its name.
func (m *Manager) MoveFile(name string, from, to Directory) error {
	src, dst, err := m.resolvePair(from, name, to, name)
	if err != nil {
		return fail(err, errors.CategoryMove, ReasonMove, src, "destination", dst)
	}
	if err := m.fsys.MkdirAll(string(to), dirPerm); err != nil {
		return fail(err, errors.CategoryMove, ReasonMove, src, "destination", dst)
	}
	if err := m.relocate(src, dst); err != nil {
		return fail(err, errors.CategoryMove, ReasonMove, src, "destination", dst)
	}

	m.logger.Debug("moved file", "path", src, "destination", dst)
	return nil
}

// CopyFile copies name from one directory to another. The copy is named
// name with "1" appended; the name is returned.
func (m *Manager) CopyFile(name string, from, to Directory) (string, error) {
	copyName := name + "1"
	src, dst, err := m.resolvePair(from, name, to, copyName)
	if err != nil {
		return "", fail(err, errors.CategoryWrite, ReasonCopy, src, "destination", dst)
	}
	if err := m.mustExist(src); err != nil {
		return "", fail(err, errors.CategoryWrite, ReasonCopy, src, "destination", dst)
	}
	if err := m.mustNotExist(dst); err != nil {
		return "", fail(err, errors.CategoryWrite, ReasonCopy, src, "destination", dst)
	}
	if err := core.CopyFile(m.fsys, m.fsys, src, dst); err != nil {
		return "", fail(err, errors.CategoryWrite, ReasonCopy, src, "destination", dst)
	}

	m.logger.Debug("copied file", "path", src, "destination", dst)
	return copyName, nil
}

// ChangeExtension replaces the extension of name in dir with ext and
// returns the new name. A leading dot on ext is optional; an empty ext
// removes the extension.
func (m *Manager) ChangeExtension(dir Directory, name, ext string) (string, error) {
	newName := ReplaceExtension(name, ext)
	from, to, err := m.resolvePair(dir, name, dir, newName)
	if err != nil {
		return "", fail(err, errors.CategoryRename, ReasonRename, from, "destination", to)
	}
	if from == to {
		if err := m.mustExist(from); err != nil {
			return "", fail(err, errors.CategoryRename, ReasonRename, from)
		}
		return newName, nil
	}
	if err := m.relocate(from, to); err != nil {
		return "", fail(err, errors.CategoryRename, ReasonRename, from, "destination", to)
	}

	m.logger.Debug("changed extension", "path", from, "destination", to)
	return newName, nil
}

// ReplaceExtension returns name with its extension replaced by ext. Dot
// files such as ".profile" have no extension.
func ReplaceExtension(name, ext string) string {
	base := name
	if e := path.Ext(name); e != "" && e != name {
		base = strings.TrimSuffix(name, e)
	}
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// List returns the sorted names of the entries in dir. A non-empty pattern
// filters names with doublestar syntax, e.g. "*.{txt,md}".
func (m *Manager) List(dir Directory, pattern string) ([]string, error) {
	p := string(dir)
	if !dir.Valid() {
		return nil, fail(ErrUnknownDirectory, errors.CategoryRead, ReasonList, p)
	}
	if pattern != "" && !doublestar.ValidatePattern(pattern) {
		return nil, fail(doublestar.ErrBadPattern, errors.CategoryRead, ReasonList, p, "pattern", pattern)
	}

	entries, err := m.fsys.ReadDir(p)
	if err != nil {
		return nil, fail(err, errors.CategoryRead, ReasonList, p)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if pattern != "" {
			if ok, _ := doublestar.Match(pattern, e.Name()); !ok {
				continue
			}
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Find returns the files below dir whose path relative to dir matches
// pattern, e.g. "**/*.txt". Results are relative to dir and sorted.
func (m *Manager) Find(dir Directory, pattern string) ([]string, error) {
	p := string(dir)
	if !dir.Valid() {
		return nil, fail(ErrUnknownDirectory, errors.CategoryRead, ReasonList, p)
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fail(doublestar.ErrBadPattern, errors.CategoryRead, ReasonList, p, "pattern", pattern)
	}

	matches, err := doublestar.Glob(m.fsys, p+"/"+pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fail(err, errors.CategoryRead, ReasonList, p, "pattern", pattern)
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, strings.TrimPrefix(match, p+"/"))
	}
	sort.Strings(out)
	return out, nil
}

// Attributes returns metadata for name in dir.
func (m *Manager) Attributes(dir Directory, name string) (*Attributes, error) {
	p, err := m.resolve(dir, name)
	if err != nil {
		return nil, fail(err, errors.CategoryRead, ReasonAttributes, p)
	}
	info, err := m.fsys.Stat(p)
	if err != nil {
		return nil, fail(err, errors.CategoryRead, ReasonAttributes, p)
	}
	return newAttributes(p, info), nil
}

// Exists reports whether name exists in dir.
func (m *Manager) Exists(dir Directory, name string) (bool, error) {
	return m.check(dir, name, m.fsys.Exists)
}

// Readable reports whether name in dir can be read.
func (m *Manager) Readable(dir Directory, name string) (bool, error) {
	return m.check(dir, name, func(p string) (bool, error) {
		return core.Readable(m.fsys, p)
	})
}

// Writable reports whether name in dir can be written.
func (m *Manager) Writable(dir Directory, name string) (bool, error) {
	return m.check(dir, name, func(p string) (bool, error) {
		return core.Writable(m.fsys, p)
	})
}

func (m *Manager) check(dir Directory, name string, test func(string) (bool, error)) (bool, error) {
	p, err := m.resolve(dir, name)
	if err != nil {
		return false, fail(err, errors.CategoryRead, ReasonAccess, p)
	}
	ok, err := test(p)
	if err != nil {
		return false, fail(err, errors.CategoryRead, ReasonAccess, p)
	}
	return ok, nil
}

// resolve validates dir and name and returns the joined path. The path is
// returned even on error so reports can name it.
func (m *Manager) resolve(dir Directory, name string) (string, error) {
	p := m.Path(dir, name)
	if !dir.Valid() {
		return p, ErrUnknownDirectory
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return p, ErrInvalidName
	}
	return p, nil
}

func (m *Manager) resolvePair(fromDir Directory, fromName string, toDir Directory, toName string) (string, string, error) {
	from, err := m.resolve(fromDir, fromName)
	to, terr := m.resolve(toDir, toName)
	if err == nil {
		err = terr
	}
	return from, to, err
}

// relocate renames from to to after checking from exists and to does not.
// Providers differ on whether Rename replaces an existing destination.
func (m *Manager) relocate(from, to string) error {
	if err := m.mustExist(from); err != nil {
		return err
	}
	if err := m.mustNotExist(to); err != nil {
		return err
	}
	return m.fsys.Rename(from, to)
}

func (m *Manager) mustExist(p string) error {
	ok, err := m.fsys.Exists(p)
	switch {
	case err != nil:
		return err
	case !ok:
		return &fs.PathError{Op: "stat", Path: p, Err: fs.ErrNotExist}
	}
	return nil
}

func (m *Manager) mustNotExist(p string) error {
	ok, err := m.fsys.Exists(p)
	switch {
	case err != nil:
		return err
	case ok:
		return &fs.PathError{Op: "stat", Path: p, Err: fs.ErrExist}
	}
	return nil
}

// fail builds the report for a failed operation. The call site is the
// function that called fail. kv holds extra context pairs.
func fail(err error, category errors.Category, reason, p string, kv ...string) errors.Report {
	ctx := map[string]interface{}{"path": p}
	for i := 0; i+1 < len(kv); i += 2 {
		ctx[kv[i]] = kv[i+1]
	}
	return errors.WrapWithContext(err, category, reason, errors.Caller(1), ctx)
}
