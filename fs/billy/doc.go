// Package billy provides go-billy-backed implementations of core.FS.
//
// LocalFS wraps osfs and is rooted at a configurable directory; MemoryFS
// wraps memfs and starts empty. Both implement core.AccessFS, and their
// files support io.Seeker and io.ReaderAt, which the bounded reader uses to
// position reads without consuming the prefix.
//
// Usage:
//
//	local := billy.NewLocal(billy.WithRoot("/var/lib/fsops"))
//	data, err := local.ReadFile("Documents/karma.txt")
//
//	mem := billy.NewMemory()
//	err := mem.WriteFile("Temp/scratch.txt", []byte("data"), 0644)
//
// # Thread Safety
//
// FS instances are safe for concurrent use by multiple goroutines.
// File handles are not.
package billy
