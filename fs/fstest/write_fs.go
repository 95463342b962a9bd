package fstest

import (
	"bytes"
	"os"
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// TestWriteFS tests Create, OpenFile, WriteFile and MkdirAll.
func TestWriteFS(t *testing.T, filesystem core.FS) {
	TestWriteFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestWriteFSWithConfig tests write operations with behavior configuration.
func TestWriteFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	run(t, config, "WriteFS", "CreateAndWrite", func(t *testing.T) {
		data := []byte("And the people\nWho hide themselves\nBehind a wall")

		f, err := filesystem.Create("dharma.txt")
		if err != nil {
			t.Fatalf("Create(): got error %v, want nil", err)
		}
		if n, err := f.Write(data); err != nil || n != len(data) {
			_ = f.Close()
			t.Fatalf("Write(): wrote %d bytes, error %v; want %d, nil", n, err, len(data))
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v, want nil", err)
		}
		if f.Name() != "dharma.txt" {
			t.Errorf("Name(): got %q, want %q", f.Name(), "dharma.txt")
		}

		assertContent(t, filesystem, "dharma.txt", data)
	})

	run(t, config, "WriteFS", "WriteFileTruncates", func(t *testing.T) {
		mustWrite(t, filesystem, "over.txt", []byte("a much longer first version"))
		mustWrite(t, filesystem, "over.txt", []byte("short"))
		assertContent(t, filesystem, "over.txt", []byte("short"))
	})

	run(t, config, "WriteFS", "OpenFileTruncate", func(t *testing.T) {
		mustWrite(t, filesystem, "flags.txt", []byte("old content"))

		f, err := filesystem.OpenFile("flags.txt", os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
		if err != nil {
			t.Fatalf("OpenFile(): got error %v, want nil", err)
		}
		if _, err := f.Write([]byte("new")); err != nil {
			_ = f.Close()
			t.Fatalf("Write(): got error %v", err)
		}
		if err := f.Close(); err != nil {
			t.Fatalf("Close(): got error %v", err)
		}

		assertContent(t, filesystem, "flags.txt", []byte("new"))
	})

	run(t, config, "WriteFS", "MkdirAll", func(t *testing.T) {
		if err := filesystem.MkdirAll("Library/Caches/deep", 0o755); err != nil {
			t.Fatalf("MkdirAll(): got error %v, want nil", err)
		}
		if err := filesystem.MkdirAll("Library/Caches/deep", 0o755); err != nil {
			t.Errorf("MkdirAll() on existing path: got error %v, want nil", err)
		}
		if config.VirtualDirectories {
			return
		}
		info, err := filesystem.Stat("Library/Caches/deep")
		if err != nil || !info.IsDir() {
			t.Errorf("Stat(Library/Caches/deep): got %v, %v; want a directory", info, err)
		}
	})

	run(t, config, "WriteFS", "WriteInNestedDir", func(t *testing.T) {
		if !config.ImplicitParentDirs {
			if err := filesystem.MkdirAll("Inbox/2024", 0o755); err != nil {
				t.Fatalf("MkdirAll(): setup failed: %v", err)
			}
		}
		mustWrite(t, filesystem, "Inbox/2024/note.txt", []byte("note"))
		assertContent(t, filesystem, "Inbox/2024/note.txt", []byte("note"))
	})
}

func assertContent(t *testing.T, filesystem core.FS, name string, want []byte) {
	t.Helper()
	got, err := filesystem.ReadFile(name)
	if err != nil {
		t.Errorf("ReadFile(%q): got error %v, want nil", name, err)
		return
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile(%q): got %q, want %q", name, got, want)
	}
}
