package fstest

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// TestManageFS tests Remove, RemoveAll and Rename.
func TestManageFS(t *testing.T, filesystem core.FS) {
	TestManageFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestManageFSWithConfig tests management operations with behavior configuration.
func TestManageFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	prepare := func(t *testing.T, dir string) {
		t.Helper()
		if config.ImplicitParentDirs {
			return
		}
		if err := filesystem.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("MkdirAll(%q): setup failed: %v", dir, err)
		}
	}

	run(t, config, "ManageFS", "Remove", func(t *testing.T) {
		mustWrite(t, filesystem, "Temp.txt", []byte("scratch"))
		if err := filesystem.Remove("Temp.txt"); err != nil {
			t.Fatalf("Remove(): got error %v, want nil", err)
		}
		assertNotExist(t, filesystem, "Temp.txt")
	})

	run(t, config, "ManageFS", "RemoveNotExist", func(t *testing.T) {
		err := filesystem.Remove("never-existed.txt")
		if config.IdempotentDelete {
			if err != nil {
				t.Errorf("Remove(missing): got error %v, want nil", err)
			}
			return
		}
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Remove(missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "ManageFS", "RemoveAll", func(t *testing.T) {
		prepare(t, "Temp/sub")
		mustWrite(t, filesystem, "Temp/a.txt", []byte("a"))
		mustWrite(t, filesystem, "Temp/sub/b.txt", []byte("b"))

		if err := filesystem.RemoveAll("Temp"); err != nil {
			t.Fatalf("RemoveAll(): got error %v, want nil", err)
		}
		assertNotExist(t, filesystem, "Temp/a.txt")
		assertNotExist(t, filesystem, "Temp/sub/b.txt")

		if err := filesystem.RemoveAll("Temp"); err != nil {
			t.Errorf("RemoveAll() on missing path: got error %v, want nil", err)
		}
	})

	run(t, config, "ManageFS", "RenameInPlace", func(t *testing.T) {
		prepare(t, "Documents")
		mustWrite(t, filesystem, "Documents/dharma.txt", []byte("dharma"))

		if err := filesystem.Rename("Documents/dharma.txt", "Documents/dharma.md"); err != nil {
			t.Fatalf("Rename(): got error %v, want nil", err)
		}
		assertNotExist(t, filesystem, "Documents/dharma.txt")
		assertContent(t, filesystem, "Documents/dharma.md", []byte("dharma"))
	})

	run(t, config, "ManageFS", "RenameAcrossDirectories", func(t *testing.T) {
		prepare(t, "Inbox")
		prepare(t, "Library")
		mustWrite(t, filesystem, "Inbox/moved.txt", []byte("moved"))

		if err := filesystem.Rename("Inbox/moved.txt", "Library/moved.txt"); err != nil {
			t.Fatalf("Rename(): got error %v, want nil", err)
		}
		assertNotExist(t, filesystem, "Inbox/moved.txt")
		assertContent(t, filesystem, "Library/moved.txt", []byte("moved"))
	})

	run(t, config, "ManageFS", "RenameNotExist", func(t *testing.T) {
		if err := filesystem.Rename("ghost.txt", "still-ghost.txt"); err == nil {
			t.Errorf("Rename(missing): got nil error, want an error")
		}
	})
}

func assertNotExist(t *testing.T, filesystem core.FS, name string) {
	t.Helper()
	exists, err := filesystem.Exists(name)
	if err != nil {
		t.Errorf("Exists(%q): got error %v, want nil", name, err)
		return
	}
	if exists {
		t.Errorf("Exists(%q): got true, want false", name)
	}
}
