package fstest

import (
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// TestAccessFS tests core.Readable and core.Writable against the provider,
// whether or not it implements core.AccessFS itself.
func TestAccessFS(t *testing.T, filesystem core.FS) {
	TestAccessFSWithConfig(t, filesystem, POSIXTestConfig())
}

// TestAccessFSWithConfig tests access checks with behavior configuration.
func TestAccessFSWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	mustWrite(t, filesystem, "access.txt", []byte("access"))

	run(t, config, "AccessFS", "ExistingFile", func(t *testing.T) {
		readable, err := core.Readable(filesystem, "access.txt")
		if err != nil || !readable {
			t.Errorf("Readable(access.txt): got %v, %v; want true, nil", readable, err)
		}
		writable, err := core.Writable(filesystem, "access.txt")
		if err != nil || !writable {
			t.Errorf("Writable(access.txt): got %v, %v; want true, nil", writable, err)
		}
	})

	run(t, config, "AccessFS", "MissingFile", func(t *testing.T) {
		readable, err := core.Readable(filesystem, "missing.txt")
		if err != nil || readable {
			t.Errorf("Readable(missing.txt): got %v, %v; want false, nil", readable, err)
		}
		writable, err := core.Writable(filesystem, "missing.txt")
		if err != nil || writable {
			t.Errorf("Writable(missing.txt): got %v, %v; want false, nil", writable, err)
		}
	})
}
