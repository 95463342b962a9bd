// Package fstest provides a conformance test suite for core.FS providers.
//
// Providers call TestSuite from their own tests with a constructor that
// returns a fresh, empty filesystem:
//
//	func TestMyProvider(t *testing.T) {
//	    fstest.TestSuite(t, func() core.FS {
//	        return myprovider.New()
//	    })
//	}
//
// The suite checks the contracts the bounded reader and the file manager
// rely on: reads, writes, removal, renames, random access on open files,
// access checks and bounded reads.
package fstest

import (
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// FSTestConfig describes provider behavior the suite has to accommodate.
type FSTestConfig struct {
	// VirtualDirectories indicates directories are key prefixes (S3) and
	// cannot be stat'd on their own.
	VirtualDirectories bool

	// IdempotentDelete indicates Remove on a missing file returns nil.
	IdempotentDelete bool

	// ImplicitParentDirs indicates files can be created without creating
	// their parent directories first.
	ImplicitParentDirs bool

	// SkipTests lists "Group/SubTest" or "Group" names to skip.
	SkipTests []string
}

// POSIXTestConfig returns configuration for local and in-memory providers.
func POSIXTestConfig() FSTestConfig {
	return FSTestConfig{}
}

// S3TestConfig returns configuration for object storage providers.
func S3TestConfig() FSTestConfig {
	return FSTestConfig{
		VirtualDirectories: true,
		IdempotentDelete:   true,
		ImplicitParentDirs: true,
	}
}

// TestSuite runs every group with POSIXTestConfig.
func TestSuite(t *testing.T, newFS func() core.FS) {
	TestSuiteWithConfig(t, newFS, POSIXTestConfig())
}

// TestSuiteWithConfig runs every group against a fresh filesystem each.
func TestSuiteWithConfig(t *testing.T, newFS func() core.FS, config FSTestConfig) {
	groups := []struct {
		name string
		run  func(*testing.T, core.FS, FSTestConfig)
	}{
		{"ReadFS", TestReadFSWithConfig},
		{"WriteFS", TestWriteFSWithConfig},
		{"ManageFS", TestManageFSWithConfig},
		{"FileCapabilities", TestFileCapabilitiesWithConfig},
		{"AccessFS", TestAccessFSWithConfig},
		{"BoundedRead", TestBoundedReadWithConfig},
	}

	for _, g := range groups {
		t.Run(g.name, func(t *testing.T) {
			if config.skip(g.name) {
				t.Skip("Skipped by provider configuration")
			}
			g.run(t, newFS(), config)
		})
	}
}

func (c FSTestConfig) skip(name string) bool {
	for _, s := range c.SkipTests {
		if s == name {
			return true
		}
	}
	return false
}

// run executes fn as subtest group/name unless configured to skip.
func run(t *testing.T, config FSTestConfig, group, name string, fn func(t *testing.T)) {
	t.Helper()
	t.Run(name, func(t *testing.T) {
		if config.skip(group + "/" + name) {
			t.Skip("Skipped by provider configuration")
		}
		fn(t)
	})
}

// mustWrite writes data to name, failing the test on error.
func mustWrite(t *testing.T, filesystem core.FS, name string, data []byte) {
	t.Helper()
	if err := filesystem.WriteFile(name, data, 0o644); err != nil {
		t.Fatalf("WriteFile(%q): setup failed: %v", name, err)
	}
}
