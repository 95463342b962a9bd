package fileops_test

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsops/bounded"
	"github.com/jmgilman/go/fsops/errors"
	"github.com/jmgilman/go/fsops/fileops"
	"github.com/jmgilman/go/fsops/fs/billy"
)

const (
	karma  = "We were talking\nAbout the space\nBetween us all\n"
	dharma = "And the people\nWho hide themselves\nBehind a wall"
)

func newManager(t *testing.T, opts ...fileops.Option) *fileops.Manager {
	t.Helper()
	m := fileops.New(billy.NewMemory(), opts...)
	require.NoError(t, m.Init())
	return m
}

// requireReport asserts err is a report of the given category whose path
// context and call site match.
func requireReport(t *testing.T, err error, category errors.Category, path, function string) errors.Report {
	t.Helper()
	require.Error(t, err)

	var r errors.Report
	require.True(t, errors.As(err, &r), "want errors.Report, got %T", err)
	assert.Equal(t, category, r.Category())
	assert.Equal(t, path, r.Context()["path"])
	assert.Equal(t, function, r.Site().Function)
	assert.NotNil(t, r.Unwrap(), "report should wrap its cause")
	return r
}

func TestInit(t *testing.T) {
	m := newManager(t)
	for _, d := range fileops.Directories() {
		info, err := m.FS().Stat(string(d))
		require.NoError(t, err, d)
		assert.True(t, info.IsDir(), d)
	}
}

func TestPath(t *testing.T) {
	m := newManager(t)
	assert.Equal(t, "Documents/karma.txt", m.Path(fileops.Documents, "karma.txt"))
	assert.Equal(t, "Documents/Inbox/dharma.txt", m.Path(fileops.Inbox, "dharma.txt"))
	assert.Equal(t, "tmp/scratch", m.Path(fileops.Temp, "scratch"))
}

func TestWriteAndReadFile(t *testing.T) {
	m := fileops.New(billy.NewMemory())

	// WriteFile creates the directory on demand.
	require.NoError(t, m.WriteFile(fileops.Library, "karma.txt", karma))

	got, err := m.ReadFile(fileops.Library, "karma.txt")
	require.NoError(t, err)
	assert.Equal(t, karma, got)

	require.NoError(t, m.WriteFile(fileops.Library, "karma.txt", "short"))
	got, err = m.ReadFile(fileops.Library, "karma.txt")
	require.NoError(t, err)
	assert.Equal(t, "short", got)
}

func TestWriteFile_InvalidArguments(t *testing.T) {
	m := newManager(t)

	tests := []struct {
		name    string
		dir     fileops.Directory
		file    string
		wantErr error
	}{
		{"unknown directory", fileops.Directory("Desktop"), "karma.txt", fileops.ErrUnknownDirectory},
		{"empty name", fileops.Documents, "", fileops.ErrInvalidName},
		{"dot dot", fileops.Documents, "..", fileops.ErrInvalidName},
		{"separator", fileops.Documents, "../escape.txt", fileops.ErrInvalidName},
		{"backslash", fileops.Documents, `sub\file.txt`, fileops.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.WriteFile(tt.dir, tt.file, karma)
			requireReport(t, err, errors.CategoryWrite, m.Path(tt.dir, tt.file), "fileops.(*Manager).WriteFile")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadFile_Missing(t *testing.T) {
	m := newManager(t)

	_, err := m.ReadFile(fileops.Documents, "missing.txt")
	r := requireReport(t, err, errors.CategoryRead, "Documents/missing.txt", "fileops.(*Manager).ReadFile")
	assert.Equal(t, fileops.ReasonRead, r.Reason())
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, r.Format(), "operation: [Read];")
}

func TestReadFile_DecodePolicy(t *testing.T) {
	invalid := "caf\xe9"

	strict := newManager(t)
	require.NoError(t, strict.WriteFile(fileops.Documents, "latin1.txt", invalid))
	_, err := strict.ReadFile(fileops.Documents, "latin1.txt")
	requireReport(t, err, errors.CategoryRead, "Documents/latin1.txt", "fileops.(*Manager).ReadFile")
	assert.ErrorIs(t, err, bounded.ErrInvalidUTF8)

	lossy := newManager(t, fileops.WithDecodePolicy(bounded.DecodeLossy))
	require.NoError(t, lossy.WriteFile(fileops.Documents, "latin1.txt", invalid))
	got, err := lossy.ReadFile(fileops.Documents, "latin1.txt")
	require.NoError(t, err)
	assert.Equal(t, "caf\uFFFD", got)
}

func TestReadBytes(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	tests := []struct {
		length, offset int64
		want           string
		ok             bool
	}{
		{48, 0, "", false},
		{47, 0, karma, true},
		{10, 37, "en us all\n", true},
		{10, 40, "", false},
		{7, 40, "us all\n", true},
	}

	for _, tt := range tests {
		text, ok, err := m.ReadBytes(fileops.Documents, "karma.txt", tt.length, tt.offset)
		require.NoError(t, err)
		assert.Equal(t, tt.ok, ok, "length=%d offset=%d", tt.length, tt.offset)
		assert.Equal(t, tt.want, text, "length=%d offset=%d", tt.length, tt.offset)
	}
}

func TestReadBytes_Errors(t *testing.T) {
	m := newManager(t)

	_, ok, err := m.ReadBytes(fileops.Documents, "missing.txt", 10, 0)
	assert.False(t, ok)
	r := requireReport(t, err, errors.CategoryRead, "Documents/missing.txt", "bounded.(*Reader).ReadBytes")
	assert.Equal(t, int64(10), r.Context()["length"])

	_, _, err = m.ReadBytes(fileops.Directory("Desktop"), "karma.txt", 10, 0)
	requireReport(t, err, errors.CategoryRead, "Desktop/karma.txt", "fileops.(*Manager).ReadBytes")
	assert.ErrorIs(t, err, fileops.ErrUnknownDirectory)
}

func TestDeleteFile(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Temp, "scratch.txt", "x"))

	require.NoError(t, m.DeleteFile(fileops.Temp, "scratch.txt"))
	exists, err := m.Exists(fileops.Temp, "scratch.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	err = m.DeleteFile(fileops.Temp, "scratch.txt")
	requireReport(t, err, errors.CategoryDelete, "tmp/scratch.txt", "fileops.(*Manager).DeleteFile")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestRenameFile(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "dharma.txt", dharma))
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	require.NoError(t, m.RenameFile(fileops.Documents, "dharma.txt", "dharma2.txt"))
	got, err := m.ReadFile(fileops.Documents, "dharma2.txt")
	require.NoError(t, err)
	assert.Equal(t, dharma, got)

	tests := []struct {
		name     string
		old, new string
		wantErr  error
	}{
		{"missing source", "dharma.txt", "other.txt", fs.ErrNotExist},
		{"taken destination", "dharma2.txt", "karma.txt", fs.ErrExist},
		{"invalid destination", "dharma2.txt", "a/b.txt", fileops.ErrInvalidName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.RenameFile(fileops.Documents, tt.old, tt.new)
			r := requireReport(t, err, errors.CategoryRename, m.Path(fileops.Documents, tt.old), "fileops.(*Manager).RenameFile")
			assert.Equal(t, m.Path(fileops.Documents, tt.new), r.Context()["destination"])
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// A failed rename leaves both files untouched.
	got, err = m.ReadFile(fileops.Documents, "karma.txt")
	require.NoError(t, err)
	assert.Equal(t, karma, got)
}

func TestMoveFile(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Inbox, "dharma.txt", dharma))

	require.NoError(t, m.MoveFile("dharma.txt", fileops.Inbox, fileops.Documents))

	exists, err := m.Exists(fileops.Inbox, "dharma.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	got, err := m.ReadFile(fileops.Documents, "dharma.txt")
	require.NoError(t, err)
	assert.Equal(t, dharma, got)

	err = m.MoveFile("dharma.txt", fileops.Inbox, fileops.Documents)
	requireReport(t, err, errors.CategoryMove, "Documents/Inbox/dharma.txt", "fileops.(*Manager).MoveFile")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCopyFile(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	name, err := m.CopyFile("karma.txt", fileops.Documents, fileops.Library)
	require.NoError(t, err)
	assert.Equal(t, "karma.txt1", name)

	got, err := m.ReadFile(fileops.Library, "karma.txt1")
	require.NoError(t, err)
	assert.Equal(t, karma, got)

	original, err := m.ReadFile(fileops.Documents, "karma.txt")
	require.NoError(t, err)
	assert.Equal(t, karma, original)

	_, err = m.CopyFile("karma.txt", fileops.Documents, fileops.Library)
	r := requireReport(t, err, errors.CategoryWrite, "Documents/karma.txt", "fileops.(*Manager).CopyFile")
	assert.Equal(t, fileops.ReasonCopy, r.Reason())
	assert.ErrorIs(t, err, fs.ErrExist)

	_, err = m.CopyFile("missing.txt", fileops.Documents, fileops.Library)
	requireReport(t, err, errors.CategoryWrite, "Documents/missing.txt", "fileops.(*Manager).CopyFile")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestChangeExtension(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	name, err := m.ChangeExtension(fileops.Documents, "karma.txt", "md")
	require.NoError(t, err)
	assert.Equal(t, "karma.md", name)

	got, err := m.ReadFile(fileops.Documents, "karma.md")
	require.NoError(t, err)
	assert.Equal(t, karma, got)

	name, err = m.ChangeExtension(fileops.Documents, "karma.md", ".md")
	require.NoError(t, err)
	assert.Equal(t, "karma.md", name)

	_, err = m.ChangeExtension(fileops.Documents, "karma.txt", "md")
	requireReport(t, err, errors.CategoryRename, "Documents/karma.txt", "fileops.(*Manager).ChangeExtension")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestReplaceExtension(t *testing.T) {
	tests := []struct {
		name, ext, want string
	}{
		{"karma.txt", "md", "karma.md"},
		{"karma.txt", ".md", "karma.md"},
		{"karma", "txt", "karma.txt"},
		{"archive.tar.gz", "zip", "archive.tar.zip"},
		{"karma.txt", "", "karma"},
		{".profile", "bak", ".profile.bak"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"->"+tt.ext, func(t *testing.T) {
			assert.Equal(t, tt.want, fileops.ReplaceExtension(tt.name, tt.ext))
		})
	}
}

func TestList(t *testing.T) {
	m := newManager(t)
	for _, name := range []string{"karma.txt", "dharma.txt", "notes.md", "image.png"} {
		require.NoError(t, m.WriteFile(fileops.Documents, name, name))
	}

	tests := []struct {
		pattern string
		want    []string
	}{
		{"", []string{"Inbox", "dharma.txt", "image.png", "karma.txt", "notes.md"}},
		{"*.txt", []string{"dharma.txt", "karma.txt"}},
		{"*.{txt,md}", []string{"dharma.txt", "karma.txt", "notes.md"}},
		{"?arma.txt", []string{"karma.txt"}},
		{"*.pdf", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := m.List(fileops.Documents, tt.pattern)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("List(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestList_Errors(t *testing.T) {
	m := fileops.New(billy.NewMemory())

	_, err := m.List(fileops.Library, "")
	requireReport(t, err, errors.CategoryRead, "Library", "fileops.(*Manager).List")
	assert.ErrorIs(t, err, fs.ErrNotExist)

	_, err = m.List(fileops.Library, "[")
	r := requireReport(t, err, errors.CategoryRead, "Library", "fileops.(*Manager).List")
	assert.Equal(t, "[", r.Context()["pattern"])

	_, err = m.List(fileops.Directory("Desktop"), "")
	assert.ErrorIs(t, err, fileops.ErrUnknownDirectory)
}

func TestFind(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))
	require.NoError(t, m.WriteFile(fileops.Inbox, "dharma.txt", dharma))
	require.NoError(t, m.WriteFile(fileops.Inbox, "notes.md", "notes"))

	got, err := m.Find(fileops.Documents, "**/*.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"Inbox/dharma.txt", "karma.txt"}, got)

	_, err = m.Find(fileops.Documents, "[")
	requireReport(t, err, errors.CategoryRead, "Documents", "fileops.(*Manager).Find")
}

func TestAttributes(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	attrs, err := m.Attributes(fileops.Documents, "karma.txt")
	require.NoError(t, err)
	assert.Equal(t, "Documents/karma.txt", attrs.Path())
	assert.Equal(t, "karma.txt", attrs.Name())
	assert.Equal(t, int64(len(karma)), attrs.Size())
	assert.False(t, attrs.IsDir())

	got, err := attrs.ToMap()
	require.NoError(t, err)
	want := map[string]any{
		"path":   "Documents/karma.txt",
		"name":   "karma.txt",
		"size":   float64(len(karma)),
		"mode":   attrs.Mode().String(),
		"is_dir": false,
	}
	ignoreTime := cmpopts.IgnoreMapEntries(func(k string, _ any) bool { return k == "mod_time" })
	if diff := cmp.Diff(want, got, ignoreTime); diff != "" {
		t.Errorf("ToMap() mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, got, "mod_time")
	assert.True(t, strings.HasPrefix(attrs.String(), "{"))

	dir, err := m.Attributes(fileops.Documents, "Inbox")
	require.NoError(t, err)
	assert.True(t, dir.IsDir())

	_, err = m.Attributes(fileops.Documents, "missing.txt")
	requireReport(t, err, errors.CategoryRead, "Documents/missing.txt", "fileops.(*Manager).Attributes")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestAccessChecks(t *testing.T) {
	m := newManager(t)
	require.NoError(t, m.WriteFile(fileops.Documents, "karma.txt", karma))

	tests := []struct {
		file  string
		check func(fileops.Directory, string) (bool, error)
		want  bool
	}{
		{"karma.txt", m.Exists, true},
		{"karma.txt", m.Readable, true},
		{"karma.txt", m.Writable, true},
		{"missing.txt", m.Exists, false},
		{"missing.txt", m.Readable, false},
		{"missing.txt", m.Writable, false},
	}

	for _, tt := range tests {
		got, err := tt.check(fileops.Documents, tt.file)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, tt.file)
	}

	_, err := m.Readable(fileops.Directory("Desktop"), "karma.txt")
	assert.True(t, errors.IsCategory(err, errors.CategoryRead))
	assert.ErrorIs(t, err, fileops.ErrUnknownDirectory)
}

func TestManager_LocalProvider(t *testing.T) {
	m := fileops.New(billy.NewLocal(billy.WithRoot(t.TempDir())))
	require.NoError(t, m.Init())

	f := m.File("dharma.txt", fileops.Inbox)
	require.NoError(t, f.Write(dharma))
	require.NoError(t, f.MoveTo(fileops.Documents))
	assert.Equal(t, "Documents/dharma.txt", f.Path())

	name, err := m.ChangeExtension(fileops.Documents, "dharma.txt", "md")
	require.NoError(t, err)

	text, ok, err := m.ReadBytes(fileops.Documents, name, 14, 0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "And the people", text)
}
