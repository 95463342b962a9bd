package cli

import (
	"bytes"
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/fsops/errors"
)

const karma = "We were talking\nAbout the space\nBetween us all\n"

// execute runs the command line against a local backend rooted at root.
func execute(t *testing.T, root, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--backend", "local", "--root", root, "--quiet"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func mustExecute(t *testing.T, root string, args ...string) string {
	t.Helper()
	out, err := execute(t, root, "", args...)
	require.NoError(t, err, errors.Format(err))
	return out
}

func TestWriteAndRead(t *testing.T) {
	root := t.TempDir()

	mustExecute(t, root, "write", "documents", "karma.txt", karma)
	assert.Equal(t, karma, mustExecute(t, root, "read", "documents", "karma.txt"))

	_, err := execute(t, root, "from stdin", "write", "inbox", "stdin.txt")
	require.NoError(t, err)
	assert.Equal(t, "from stdin", mustExecute(t, root, "read", "Documents/Inbox", "stdin.txt"))
}

func TestReadBytes(t *testing.T) {
	root := t.TempDir()
	mustExecute(t, root, "write", "documents", "karma.txt", karma)

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"default window past end", nil, nilText + "\n"},
		{"whole file", []string{"--length", "47"}, karma + "\n"},
		{"tail", []string{"-n", "7", "-o", "40"}, "us all\n\n"},
		{"tail past end", []string{"-n", "10", "-o", "40"}, nilText + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"read-bytes", "documents", "karma.txt"}, tt.args...)
			assert.Equal(t, tt.want, mustExecute(t, root, args...))
		})
	}
}

func TestReadFailureIsReport(t *testing.T) {
	root := t.TempDir()

	_, err := execute(t, root, "", "read", "documents", "missing.txt")
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryRead))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, errors.Format(err), "operation: [Read];")
	assert.Contains(t, errors.Format(err), "in method: [fileops.(*Manager).ReadFile];")

	_, err = execute(t, root, "", "read-bytes", "documents", "missing.txt")
	assert.True(t, errors.IsCategory(err, errors.CategoryRead))
}

func TestOrganize(t *testing.T) {
	root := t.TempDir()
	mustExecute(t, root, "write", "inbox", "dharma.txt", "And the people")

	mustExecute(t, root, "move", "dharma.txt", "inbox", "documents")
	assert.Equal(t, "dharma.txt1\n", mustExecute(t, root, "copy", "dharma.txt", "documents", "library"))
	assert.Equal(t, "dharma.md\n", mustExecute(t, root, "ext", "documents", "dharma.txt", "md"))
	mustExecute(t, root, "rename", "library", "dharma.txt1", "backup.txt")

	assert.Equal(t, "Inbox\ndharma.md\n", mustExecute(t, root, "list", "documents"))
	assert.Equal(t, "backup.txt\n", mustExecute(t, root, "list", "library", "-p", "*.txt"))

	mustExecute(t, root, "delete", "library", "backup.txt")
	assert.Empty(t, mustExecute(t, root, "list", "library"))

	_, err := execute(t, root, "", "delete", "library", "backup.txt")
	assert.True(t, errors.IsCategory(err, errors.CategoryDelete))

	_, err = execute(t, root, "", "move", "dharma.txt", "inbox", "documents")
	assert.True(t, errors.IsCategory(err, errors.CategoryMove))

	_, err = execute(t, root, "", "rename", "documents", "missing.md", "other.md")
	assert.True(t, errors.IsCategory(err, errors.CategoryRename))
}

func TestListRecursive(t *testing.T) {
	root := t.TempDir()
	mustExecute(t, root, "write", "documents", "karma.txt", karma)
	mustExecute(t, root, "write", "inbox", "dharma.txt", "And the people")
	mustExecute(t, root, "write", "inbox", "notes.md", "notes")

	assert.Equal(t, "Inbox/dharma.txt\nkarma.txt\n",
		mustExecute(t, root, "list", "documents", "-r", "-p", "**/*.txt"))
	assert.Equal(t, "Inbox/dharma.txt\nInbox/notes.md\nkarma.txt\n",
		mustExecute(t, root, "list", "documents", "-r"))
}

func TestAttrs(t *testing.T) {
	root := t.TempDir()
	mustExecute(t, root, "write", "documents", "karma.txt", karma)

	out := mustExecute(t, root, "attrs", "documents", "karma.txt")
	assert.Contains(t, out, `"name":"karma.txt"`)
	assert.Contains(t, out, `"size":47`)
	assert.Contains(t, out, `"is_dir":false`)
}

func TestInvalidArguments(t *testing.T) {
	root := t.TempDir()

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown directory", []string{"read", "desktop", "karma.txt"}, "unknown directory"},
		{"missing args", []string{"read", "documents"}, "accepts 2 arg(s)"},
		{"unknown backend", []string{"--backend", "ftp", "list", "documents"}, "unknown backend"},
		{"bad decode", []string{"--decode", "latin1", "list", "documents"}, "unknown decode policy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, root, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDemo(t *testing.T) {
	root := t.TempDir()

	out := mustExecute(t, root, "demo")
	assert.Contains(t, out, "path: "+root)
	assert.Contains(t, out, "And the people\nWho hide themselves\nBehind a wall\n")
	assert.Contains(t, out, nilText)
	assert.Contains(t, out, "documents: dharma.txt, karma.txt, welcome.txt\n")
	assert.Contains(t, out, `"name":"karma.txt"`)
	assert.Contains(t, out, "operation: [Delete];")

	// A second run finds the seeded file already moved.
	out = mustExecute(t, root, "demo")
	assert.NotContains(t, out, "operation: [Move];")
	assert.Equal(t, "Welcome to fsops.\nMove me into documents.\n",
		mustExecute(t, root, "read", "documents", "welcome.txt"))
}

func TestDemo_MemoryBackend(t *testing.T) {
	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend", "memory", "-q", "demo", "--offsets", "0"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "path: Documents\n")
	assert.NotContains(t, out.String(), nilText)
}

func TestConfigCommand(t *testing.T) {
	t.Setenv("FSOPS_MINIO_SECRET_KEY", "hunter2")

	cmd := New()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--backend", "memory", "--decode", "lossy", "config"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "backend: memory\n")
	assert.Contains(t, out.String(), "decode: lossy\n")
	assert.Contains(t, out.String(), "********")
	assert.NotContains(t, out.String(), "hunter2")
}

// executeMemory runs the command line against a fresh memory backend and
// returns stdout, stderr and the command error.
func executeMemory(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := New()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--backend", "memory"}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLogLevelFlag(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantDebug bool
	}{
		{"default info", nil, false},
		{"debug", []string{"--log-level", "debug"}, true},
		{"warn", []string{"--log-level", "warn"}, false},
		{"quiet wins", []string{"--log-level", "debug", "-q"}, false},
		{"verbose wins", []string{"--log-level", "error", "-v"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := executeMemory(t, append(tt.args, "config")...)
			require.NoError(t, err)
			if tt.wantDebug {
				assert.Contains(t, stderr, "configured filesystem")
			} else {
				assert.NotContains(t, stderr, "configured filesystem")
			}
		})
	}

	_, _, err := executeMemory(t, "--log-level", "loud", "config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log-level")
}

func TestPrintError(t *testing.T) {
	tests := []struct {
		name       string
		flags      []string
		wantLogged bool
	}{
		{"quiet", []string{"-q"}, false},
		{"default", nil, false},
		{"verbose", []string{"-v"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := New()
			var stderr bytes.Buffer
			cmd.SetOut(&bytes.Buffer{})
			cmd.SetErr(&stderr)
			cmd.SetArgs(append(append([]string{"--backend", "memory"}, tt.flags...), "read", "documents", "missing.txt"))

			err := cmd.ExecuteContext(context.Background())
			require.Error(t, err)
			PrintError(context.Background(), &stderr, err)

			assert.Equal(t, 1, strings.Count(stderr.String(), "operation: [Read];"), stderr.String())
			if tt.wantLogged {
				assert.Contains(t, stderr.String(), "command failed")
			} else {
				assert.NotContains(t, stderr.String(), "command failed")
			}
		})
	}

	var buf bytes.Buffer
	PrintError(context.Background(), &buf, fs.ErrClosed)
	assert.Equal(t, fs.ErrClosed.Error()+"\n", buf.String())

	buf.Reset()
	PrintError(context.Background(), &buf, nil)
	assert.Empty(t, buf.String())
}
