package fstest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// TestReadFS tests Open, Stat, ReadDir, ReadFile and Exists.
func TestReadFS(t *testing.T, filesystem core.FS) {
	TestReadFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestReadFSWithConfig tests read operations with behavior configuration.
func TestReadFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	content := []byte("We were talking\nAbout the space\nBetween us all")

	if !config.ImplicitParentDirs {
		if err := filesystem.MkdirAll("Documents", 0o755); err != nil {
			t.Fatalf("MkdirAll(Documents): setup failed: %v", err)
		}
	}
	mustWrite(t, filesystem, "Documents/karma.txt", content)

	run(t, config, "ReadFS", "Open", func(t *testing.T) {
		f, err := filesystem.Open("Documents/karma.txt")
		if err != nil {
			t.Fatalf("Open(%q): got error %v, want nil", "Documents/karma.txt", err)
		}
		defer func() { _ = f.Close() }()

		data, err := io.ReadAll(f)
		if err != nil {
			t.Fatalf("ReadAll(): got error %v", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadAll(): got %q, want %q", data, content)
		}
	})

	run(t, config, "ReadFS", "StatFile", func(t *testing.T) {
		info, err := filesystem.Stat("Documents/karma.txt")
		if err != nil {
			t.Fatalf("Stat(): got error %v, want nil", err)
		}
		if info.IsDir() {
			t.Errorf("Stat(): IsDir() = true, want false")
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(): Size() = %d, want %d", info.Size(), len(content))
		}
		if info.Name() != "karma.txt" {
			t.Errorf("Stat(): Name() = %q, want %q", info.Name(), "karma.txt")
		}
	})

	run(t, config, "ReadFS", "StatDir", func(t *testing.T) {
		if config.VirtualDirectories {
			t.Skip("directories are virtual")
		}
		info, err := filesystem.Stat("Documents")
		if err != nil {
			t.Fatalf("Stat(Documents): got error %v, want nil", err)
		}
		if !info.IsDir() {
			t.Errorf("Stat(Documents): IsDir() = false, want true")
		}
	})

	run(t, config, "ReadFS", "ReadDir", func(t *testing.T) {
		entries, err := filesystem.ReadDir("Documents")
		if err != nil {
			t.Fatalf("ReadDir(Documents): got error %v, want nil", err)
		}
		if len(entries) != 1 || entries[0].Name() != "karma.txt" || entries[0].IsDir() {
			t.Errorf("ReadDir(Documents): got %v, want [karma.txt]", names(entries))
		}
	})

	run(t, config, "ReadFS", "ReadFile", func(t *testing.T) {
		data, err := filesystem.ReadFile("Documents/karma.txt")
		if err != nil {
			t.Fatalf("ReadFile(): got error %v, want nil", err)
		}
		if !bytes.Equal(data, content) {
			t.Errorf("ReadFile(): got %q, want %q", data, content)
		}
	})

	run(t, config, "ReadFS", "OpenNotExist", func(t *testing.T) {
		_, err := filesystem.Open("Documents/missing.txt")
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Open(missing): got error %v, want fs.ErrNotExist", err)
		}
	})

	run(t, config, "ReadFS", "Exists", func(t *testing.T) {
		for name, want := range map[string]bool{
			"Documents/karma.txt":   true,
			"Documents/missing.txt": false,
		} {
			got, err := filesystem.Exists(name)
			if err != nil {
				t.Errorf("Exists(%q): got error %v, want nil", name, err)
				continue
			}
			if got != want {
				t.Errorf("Exists(%q): got %v, want %v", name, got, want)
			}
		}
	})
}

func names(entries []fs.DirEntry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name()
	}
	return out
}
