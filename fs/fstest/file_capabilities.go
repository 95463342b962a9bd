package fstest

import (
	"errors"
	"io"
	"testing"

	"github.com/jmgilman/go/fsops/fs/core"
)

// TestFileCapabilities tests the optional random access capabilities of
// files returned by Open. Capabilities the provider does not offer are
// skipped.
func TestFileCapabilities(t *testing.T, filesystem core.FS) {
	TestFileCapabilitiesWithConfig(t, filesystem, POSIXTestConfig())
}

// TestFileCapabilitiesWithConfig tests file capabilities with behavior configuration.
func TestFileCapabilitiesWithConfig(t *testing.T, filesystem core.FS, config FSTestConfig) {
	content := []byte("0123456789abcdefghij")
	mustWrite(t, filesystem, "random.txt", content)

	run(t, config, "FileCapabilities", "Seeker", func(t *testing.T) {
		f, err := filesystem.Open("random.txt")
		if err != nil {
			t.Fatalf("Open(): got error %v", err)
		}
		defer func() { _ = f.Close() }()

		seeker, ok := f.(io.Seeker)
		if !ok {
			t.Skip("file does not implement io.Seeker")
		}

		for _, tc := range []struct {
			offset int64
			whence int
			want   int64
		}{
			{10, io.SeekStart, 10},
			{-5, io.SeekEnd, 15},
			{2, io.SeekCurrent, 17},
			{0, io.SeekStart, 0},
		} {
			pos, err := seeker.Seek(tc.offset, tc.whence)
			if err != nil {
				t.Fatalf("Seek(%d, %d): got error %v", tc.offset, tc.whence, err)
			}
			if pos != tc.want {
				t.Errorf("Seek(%d, %d): got position %d, want %d", tc.offset, tc.whence, pos, tc.want)
			}
		}

		if _, err := seeker.Seek(10, io.SeekStart); err != nil {
			t.Fatalf("Seek(10): got error %v", err)
		}
		buf := make([]byte, 5)
		if _, err := io.ReadFull(f, buf); err != nil {
			t.Fatalf("ReadFull() after Seek: got error %v", err)
		}
		if string(buf) != "abcde" {
			t.Errorf("ReadFull() after Seek: got %q, want %q", buf, "abcde")
		}
	})

	run(t, config, "FileCapabilities", "ReaderAt", func(t *testing.T) {
		f, err := filesystem.Open("random.txt")
		if err != nil {
			t.Fatalf("Open(): got error %v", err)
		}
		defer func() { _ = f.Close() }()

		ra, ok := f.(io.ReaderAt)
		if !ok {
			t.Skip("file does not implement io.ReaderAt")
		}

		buf := make([]byte, 4)
		n, err := ra.ReadAt(buf, 6)
		if err != nil || n != 4 || string(buf) != "6789" {
			t.Errorf("ReadAt(4, 6): got %q, %d, %v; want %q, 4, nil", buf[:n], n, err, "6789")
		}

		n, err = ra.ReadAt(buf, 18)
		if n != 2 || !errors.Is(err, io.EOF) {
			t.Errorf("ReadAt past end: got %d, %v; want 2, io.EOF", n, err)
		}
	})

	run(t, config, "FileCapabilities", "StatOnHandle", func(t *testing.T) {
		f, err := filesystem.Open("random.txt")
		if err != nil {
			t.Fatalf("Open(): got error %v", err)
		}
		defer func() { _ = f.Close() }()

		info, err := f.Stat()
		if err != nil {
			t.Fatalf("Stat(): got error %v", err)
		}
		if info.Size() != int64(len(content)) {
			t.Errorf("Stat(): Size() = %d, want %d", info.Size(), len(content))
		}
	})
}
